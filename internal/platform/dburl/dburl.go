// Package dburl massages Postgres connection strings and SQL text for the
// API server and the migration tool.
package dburl

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	preparedBinaryParam = "disable_prepared_binary_result"
	maxTraceQueryLength = 512
)

var (
	whitespace     = regexp.MustCompile(`\s+`)
	quotedLiterals = regexp.MustCompile(`'(?:[^']|'')*'`)
)

// DisablePreparedBinary sets disable_prepared_binary_result=yes unless the
// URL already carries a value. Key/value DSNs are returned untouched.
func DisablePreparedBinary(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return raw
	}

	query := parsed.Query()
	if query.Get(preparedBinaryParam) != "" {
		return raw
	}
	query.Set(preparedBinaryParam, "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// Name extracts the database name from either a URL or a key/value DSN.
func Name(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if parsed, err := url.Parse(trimmed); err == nil && parsed.Scheme != "" {
		return strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
	}

	for _, token := range strings.Fields(trimmed) {
		if name, ok := strings.CutPrefix(token, "dbname="); ok {
			return strings.Trim(name, `"'`)
		}
	}
	return ""
}

// Redact drops the password so the URL can be logged.
func Redact(raw string) string {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Scheme == "" {
		return "postgres"
	}
	if parsed.User != nil {
		parsed.User = url.User(parsed.User.Username())
	}
	parsed.RawQuery = ""
	return parsed.String()
}

// TraceQuery collapses whitespace, blanks out string literals and caps the
// length so statements can be attached to spans.
func TraceQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := whitespace.ReplaceAllString(query, " ")
	normalized = quotedLiterals.ReplaceAllString(normalized, "'?'")
	if len(normalized) <= maxTraceQueryLength {
		return normalized
	}
	return normalized[:maxTraceQueryLength] + "..."
}
