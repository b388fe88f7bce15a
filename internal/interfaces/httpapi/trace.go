package httpapi

import (
	"context"
	"strings"
	"unicode"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var (
	apiTracer = otel.Tracer("samoscore/internal/interfaces/httpapi")
	noopSpan  = trace.SpanFromContext(context.Background())
)

// startSpan only opens child spans for exported handler methods and only
// under an existing request span. Middleware and helpers stay inside the
// otelhttp server span.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() || !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name)
}

func shouldCreateHTTPAPISpan(name string) bool {
	method, ok := strings.CutPrefix(name, handlerSpanPrefix)
	if !ok || method == "" {
		return false
	}
	return unicode.IsUpper([]rune(method)[0])
}
