package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"

	"github.com/NachoSamo/SamoScore/internal/domain/match"
	"github.com/NachoSamo/SamoScore/internal/domain/user"
	"github.com/NachoSamo/SamoScore/internal/platform/logging"
	"github.com/NachoSamo/SamoScore/internal/usecase"
)

const maxJSONBodyBytes = 64 << 10

type HandlerConfig struct {
	Feed      *usecase.FeedService
	Matches   *usecase.MatchService
	Leagues   *usecase.LeagueService
	Profiles  *usecase.ProfileService
	Auth      *usecase.AuthService
	Favorites *usecase.FavoriteService

	// StreamInterval is how often the live stream pushes a fresh feed.
	StreamInterval time.Duration
	// AllowedOrigins gates websocket upgrades the same way CORS gates XHR.
	AllowedOrigins []string
	Clock          clockwork.Clock
	Logger         *logging.Logger
}

type Handler struct {
	feed           *usecase.FeedService
	matches        *usecase.MatchService
	leagues        *usecase.LeagueService
	profiles       *usecase.ProfileService
	auth           *usecase.AuthService
	favorites      *usecase.FavoriteService
	classifier     *match.Classifier
	streamInterval time.Duration
	upgrader       websocket.Upgrader
	clock          clockwork.Clock
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.StreamInterval <= 0 {
		cfg.StreamInterval = 30 * time.Second
	}

	strategy := match.StrategyDisplay
	if cfg.Feed != nil {
		strategy = cfg.Feed.Strategy()
	}

	return &Handler{
		feed:           cfg.Feed,
		matches:        cfg.Matches,
		leagues:        cfg.Leagues,
		profiles:       cfg.Profiles,
		auth:           cfg.Auth,
		favorites:      cfg.Favorites,
		classifier:     match.NewClassifier(strategy),
		streamInterval: cfg.StreamInterval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     originChecker(cfg.AllowedOrigins),
		},
		clock:     cfg.Clock,
		logger:    cfg.Logger.Named("httpapi"),
		validator: validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a JSON body into dst, rejecting unknown fields, then
// runs the validator tags.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(io.LimitReader(r.Body, maxJSONBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func requirePrincipal(ctx context.Context) (user.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	return principal, nil
}

func originChecker(allowed []string) func(*http.Request) bool {
	allowAll := false
	allowMap := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		candidate := strings.TrimSpace(origin)
		if candidate == "*" {
			allowAll = true
		} else if candidate != "" {
			allowMap[candidate] = struct{}{}
		}
	}
	return func(r *http.Request) bool {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" || allowAll {
			return true
		}
		_, ok := allowMap[origin]
		return ok
	}
}
