package httpapi

import (
	"net/http"

	"github.com/NachoSamo/SamoScore/internal/platform/logging"
)

type RouterConfig struct {
	Handler  *Handler
	Verifier TokenVerifier
	Logger   *logging.Logger
	// Metrics serves the Prometheus exposition at /metrics when set.
	Metrics            http.Handler
	Observer           HTTPObserver
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
}

func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	routes := &routeRegistrar{
		mux:      http.NewServeMux(),
		handler:  cfg.Handler,
		verifier: cfg.Verifier,
		observer: cfg.Observer,
	}
	routes.registerSystemRoutes(cfg.SwaggerEnabled, cfg.Metrics)
	routes.registerPublicRoutes()
	routes.registerAuthorizedRoutes()

	return RequestTracing(RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, routes.mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
