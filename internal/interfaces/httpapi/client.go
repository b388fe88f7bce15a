package httpapi

import (
	"net"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const (
	clientIDHeader  = "X-Client-ID"
	requestIDHeader = "X-Request-ID"

	maxRequestIDLength = 64
)

// Proxy headers in the order the edge sets them; RemoteAddr is the fallback.
var clientIPHeaders = []string{"CF-Connecting-IP", "Fly-Client-IP", "X-Forwarded-For", "X-Real-IP"}

func clientIP(r *http.Request) string {
	for _, header := range clientIPHeaders {
		if ip := parseIP(r.Header.Get(header)); ip != "" {
			return ip
		}
	}
	return parseIP(r.RemoteAddr)
}

// parseIP takes the first hop of a forwarded list and strips any port.
func parseIP(raw string) string {
	value, _, _ := strings.Cut(raw, ",")
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if host, _, err := net.SplitHostPort(value); err == nil {
		value = host
	}
	if ip := net.ParseIP(value); ip != nil {
		return ip.String()
	}
	return ""
}

// supersedeKey scopes "newest request wins" for feed loads. Signed-in
// callers are keyed by session, anonymous ones by the optional client id
// header. An empty key opts out.
func supersedeKey(r *http.Request) string {
	if principal, ok := principalFromContext(r.Context()); ok && principal.SessionID != "" {
		return "session:" + principal.SessionID
	}
	if id := strings.TrimSpace(r.Header.Get(clientIDHeader)); id != "" {
		return "client:" + id
	}
	return ""
}

// requestIDFrom echoes a caller supplied request id when it is short and
// printable, otherwise it mints a new one.
func requestIDFrom(r *http.Request) string {
	id := strings.TrimSpace(r.Header.Get(requestIDHeader))
	if id == "" || len(id) > maxRequestIDLength {
		return uuid.NewString()
	}
	for _, c := range id {
		if c < 0x21 || c > 0x7e {
			return uuid.NewString()
		}
	}
	return id
}
