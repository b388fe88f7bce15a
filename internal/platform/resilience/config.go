package resilience

import "time"

// CircuitBreakerConfig zero values fall back to 5 failures, a 15s open
// window and 2 half-open trial calls.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func (c CircuitBreakerConfig) withDefaults() CircuitBreakerConfig {
	if c.FailureThreshold < 1 {
		c.FailureThreshold = 5
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = 15 * time.Second
	}
	if c.HalfOpenMaxReq < 1 {
		c.HalfOpenMaxReq = 2
	}
	return c
}

// RetryConfig bounds provider retries; the wait before attempt n+1 is n*Backoff.
type RetryConfig struct {
	MaxAttempts int
	Backoff     time.Duration
}

func (r RetryConfig) WithDefaults() RetryConfig {
	if r.MaxAttempts < 1 {
		r.MaxAttempts = 3
	}
	if r.Backoff <= 0 {
		r.Backoff = 300 * time.Millisecond
	}
	return r
}

// Delay is the wait after the given failed attempt, counted from 1.
func (r RetryConfig) Delay(attempt int) time.Duration {
	return time.Duration(attempt) * r.Backoff
}
