package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/NachoSamo/SamoScore/internal/domain/match"
	"github.com/NachoSamo/SamoScore/internal/platform/logging"
)

const (
	SessionStoreMemory   = "memory"
	SessionStoreRedis    = "redis"
	SessionStorePostgres = "postgres"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	PublicBaseURL      string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	ShutdownTimeout    time.Duration
	CORSAllowedOrigins []string
	SwaggerEnabled     bool
	MetricsEnabled     bool

	DBURL                   string
	DBDisablePreparedBinary bool
	RedisURL                string
	SessionStore            string
	SessionTTL              time.Duration
	PrincipalCacheTTL       time.Duration

	TheSportsDBBaseURL             string
	TheSportsDBAPIKey              string
	TheSportsDBTimeout             time.Duration
	TheSportsDBMaxRetries          int
	TheSportsDBRetryBackoff        time.Duration
	TheSportsDBCircuitEnabled      bool
	TheSportsDBCircuitFailureCount int
	TheSportsDBCircuitOpenTimeout  time.Duration
	TheSportsDBCircuitHalfOpenMax  int

	CacheEnabled      bool
	CacheTTL          time.Duration
	CacheLiveTTL      time.Duration
	CacheFinishedTTL  time.Duration
	CacheReferenceTTL time.Duration

	MatchGroupingStrategy match.Strategy
	DefaultSport          string
	DefaultSeason         string
	Location              *time.Location
	FeedWorkers           int
	StreamInterval        time.Duration

	FavoritesWriteTimeout    time.Duration
	FavoritesIdleTTL         time.Duration
	FavoritesJanitorInterval time.Duration
	MaxAvatarBytes           int

	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceLogsEnabled         bool
	BetterStackEnabled         bool
	BetterStackEndpoint        string
	BetterStackToken           string
	BetterStackTimeout         time.Duration
	BetterStackMinLevel        logging.Level
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration

	LogLevel logging.Level
	LogFile  logging.FileOptions
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}

	cfg := Config{
		AppEnv:              appEnv,
		ServiceName:         getEnv("APP_SERVICE_NAME", "samoscore-api"),
		ServiceVersion:      getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:            getEnv("APP_HTTP_ADDR", ":8080"),
		PublicBaseURL:       strings.TrimRight(strings.TrimSpace(getEnv("PUBLIC_BASE_URL", "http://localhost:8080")), "/"),
		CORSAllowedOrigins:  splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		DBURL:               strings.TrimSpace(getEnv("DB_URL", "")),
		RedisURL:            strings.TrimSpace(getEnv("REDIS_URL", "")),
		SessionStore:        strings.ToLower(strings.TrimSpace(getEnv("SESSION_STORE", SessionStoreMemory))),
		TheSportsDBBaseURL:  strings.TrimSpace(getEnv("THESPORTSDB_BASE_URL", "https://www.thesportsdb.com/api/v1/json")),
		TheSportsDBAPIKey:   strings.TrimSpace(getEnv("THESPORTSDB_API_KEY", "123")),
		DefaultSport:        strings.TrimSpace(getEnv("DEFAULT_SPORT", "Soccer")),
		DefaultSeason:       strings.TrimSpace(getEnv("DEFAULT_SEASON", "2025-2026")),
		PprofAddr:           strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
		BetterStackEndpoint: strings.TrimSpace(getEnv("BETTERSTACK_ENDPOINT", "")),
		BetterStackToken:    strings.TrimSpace(getEnv("BETTERSTACK_TOKEN", "")),
		BetterStackMinLevel: parseLogLevel(getEnv("BETTERSTACK_MIN_LEVEL", "error")),
		LogLevel:            parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}

	var errs []error
	boolVar := func(dst *bool, key, fallback string) {
		v, err := strconv.ParseBool(getEnv(key, fallback))
		if err != nil {
			errs = append(errs, fmt.Errorf("parse %s: %w", key, err))
			return
		}
		*dst = v
	}
	durationVar := func(dst *time.Duration, key, fallback string) {
		v, err := time.ParseDuration(getEnv(key, fallback))
		if err != nil {
			errs = append(errs, fmt.Errorf("parse %s: %w", key, err))
			return
		}
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be > 0", key))
			return
		}
		*dst = v
	}
	intVar := func(dst *int, key string, fallback, min int) {
		v, err := getEnvAsInt(key, fallback)
		if err != nil {
			errs = append(errs, fmt.Errorf("parse %s: %w", key, err))
			return
		}
		if v < min {
			errs = append(errs, fmt.Errorf("%s must be >= %d", key, min))
			return
		}
		*dst = v
	}

	boolVar(&cfg.SwaggerEnabled, "SWAGGER_ENABLED", swaggerDefault)
	boolVar(&cfg.MetricsEnabled, "METRICS_ENABLED", "true")
	boolVar(&cfg.DBDisablePreparedBinary, "DB_DISABLE_PREPARED_BINARY_RESULT", "true")
	durationVar(&cfg.ReadTimeout, "APP_READ_TIMEOUT", "10s")
	durationVar(&cfg.WriteTimeout, "APP_WRITE_TIMEOUT", "15s")
	durationVar(&cfg.ShutdownTimeout, "APP_SHUTDOWN_TIMEOUT", "10s")

	durationVar(&cfg.SessionTTL, "SESSION_TTL", "168h")
	durationVar(&cfg.PrincipalCacheTTL, "PRINCIPAL_CACHE_TTL", "30s")

	durationVar(&cfg.TheSportsDBTimeout, "THESPORTSDB_TIMEOUT", "10s")
	intVar(&cfg.TheSportsDBMaxRetries, "THESPORTSDB_MAX_RETRIES", 3, 1)
	durationVar(&cfg.TheSportsDBRetryBackoff, "THESPORTSDB_RETRY_BACKOFF", "300ms")
	boolVar(&cfg.TheSportsDBCircuitEnabled, "THESPORTSDB_CIRCUIT_ENABLED", "true")
	intVar(&cfg.TheSportsDBCircuitFailureCount, "THESPORTSDB_CIRCUIT_FAILURE_COUNT", 5, 1)
	durationVar(&cfg.TheSportsDBCircuitOpenTimeout, "THESPORTSDB_CIRCUIT_OPEN_TIMEOUT", "15s")
	intVar(&cfg.TheSportsDBCircuitHalfOpenMax, "THESPORTSDB_CIRCUIT_HALF_OPEN_MAX_REQ", 2, 1)

	boolVar(&cfg.CacheEnabled, "CACHE_ENABLED", "true")
	durationVar(&cfg.CacheTTL, "CACHE_TTL", "2m")
	durationVar(&cfg.CacheLiveTTL, "CACHE_LIVE_TTL", "20s")
	durationVar(&cfg.CacheFinishedTTL, "CACHE_FINISHED_TTL", "30m")
	durationVar(&cfg.CacheReferenceTTL, "CACHE_REFERENCE_TTL", "6h")

	intVar(&cfg.FeedWorkers, "FEED_WORKERS", 4, 1)
	durationVar(&cfg.StreamInterval, "STREAM_INTERVAL", "30s")
	durationVar(&cfg.FavoritesWriteTimeout, "FAVORITES_WRITE_TIMEOUT", "10s")
	durationVar(&cfg.FavoritesIdleTTL, "FAVORITES_IDLE_TTL", "30m")
	durationVar(&cfg.FavoritesJanitorInterval, "FAVORITES_JANITOR_INTERVAL", "1m")
	intVar(&cfg.MaxAvatarBytes, "MAX_AVATAR_BYTES", 5<<20, 1)

	boolVar(&cfg.PprofEnabled, "PPROF_ENABLED", "false")
	boolVar(&cfg.UptraceEnabled, "UPTRACE_ENABLED", "false")
	boolVar(&cfg.UptraceLogsEnabled, "UPTRACE_LOGS_ENABLED", "false")
	boolVar(&cfg.BetterStackEnabled, "BETTERSTACK_ENABLED", "false")
	durationVar(&cfg.BetterStackTimeout, "BETTERSTACK_TIMEOUT", "3s")
	boolVar(&cfg.PyroscopeEnabled, "PYROSCOPE_ENABLED", "false")
	durationVar(&cfg.PyroscopeUploadRate, "PYROSCOPE_UPLOAD_RATE", "15s")

	intVar(&cfg.LogFile.MaxSizeMB, "LOG_FILE_MAX_SIZE_MB", 100, 1)
	intVar(&cfg.LogFile.MaxBackups, "LOG_FILE_MAX_BACKUPS", 3, 0)
	intVar(&cfg.LogFile.MaxAgeDays, "LOG_FILE_MAX_AGE_DAYS", 14, 0)
	cfg.LogFile.Path = strings.TrimSpace(getEnv("LOG_FILE", ""))

	if len(errs) > 0 {
		return Config{}, errs[0]
	}

	strategy, err := match.ParseStrategy(getEnv("MATCH_GROUPING_STRATEGY", string(match.StrategyDisplay)))
	if err != nil {
		return Config{}, fmt.Errorf("parse MATCH_GROUPING_STRATEGY: %w", err)
	}
	cfg.MatchGroupingStrategy = strategy

	loc, err := time.LoadLocation(getEnv("APP_TIMEZONE", "UTC"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	switch cfg.SessionStore {
	case SessionStoreMemory:
	case SessionStoreRedis:
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("REDIS_URL is required when SESSION_STORE=redis")
		}
	case SessionStorePostgres:
		if cfg.DBURL == "" {
			return Config{}, fmt.Errorf("DB_URL is required when SESSION_STORE=postgres")
		}
	default:
		return Config{}, fmt.Errorf("invalid SESSION_STORE %q: valid values are %s, %s, %s", cfg.SessionStore, SessionStoreMemory, SessionStoreRedis, SessionStorePostgres)
	}

	if cfg.DefaultSport == "" {
		return Config{}, fmt.Errorf("DEFAULT_SPORT cannot be empty")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	if cfg.BetterStackEnabled && cfg.BetterStackEndpoint == "" {
		return Config{}, fmt.Errorf("BETTERSTACK_ENDPOINT is required when BETTERSTACK_ENABLED=true")
	}

	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	cfg.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))
	cfg.PyroscopeBasicAuthUser = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", ""))
	cfg.PyroscopeBasicAuthPassword = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""))
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
