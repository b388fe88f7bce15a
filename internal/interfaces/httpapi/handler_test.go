package httpapi

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/NachoSamo/SamoScore/internal/domain/match"
	"github.com/NachoSamo/SamoScore/internal/infrastructure/repository/memory"
	usecasemock "github.com/NachoSamo/SamoScore/internal/mocks/usecase"
	"github.com/NachoSamo/SamoScore/internal/platform/logging"
	"github.com/NachoSamo/SamoScore/internal/usecase"
)

var testNow = time.Date(2026, time.October, 16, 15, 0, 0, 0, time.UTC)

type testAPI struct {
	router   http.Handler
	handler  *Handler
	provider *usecasemock.SportsDataProvider
	clock    *clockwork.FakeClock
}

type envelope[T any] struct {
	Data  T `json:"data"`
	Error *struct {
		Code   int    `json:"code"`
		Status string `json:"status"`
	} `json:"error"`
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	clock := clockwork.NewFakeClockAt(testNow)
	logger := logging.NewNop()
	provider := usecasemock.NewSportsDataProvider(t)

	favorites := usecase.NewFavoriteService(memory.NewFavoriteRepository(), usecase.FavoriteServiceConfig{
		IdleTTL:      time.Hour,
		WriteTimeout: time.Second,
		Clock:        clock,
		Logger:       logger,
	})
	feed, err := usecase.NewFeedService(provider, favorites, usecase.FeedServiceConfig{
		Strategy: match.StrategyDisplay,
		Clock:    clock,
		Logger:   logger,
	})
	if err != nil {
		t.Fatalf("new feed service: %v", err)
	}
	t.Cleanup(feed.Close)

	profiles := usecase.NewProfileService(memory.NewProfileRepository(), memory.NewStorageObjectRepository(), usecase.ProfileServiceConfig{
		PublicBaseURL:  "https://api.samoscore.test",
		MaxAvatarBytes: 1024,
		Clock:          clock,
	})
	auth := usecase.NewAuthService(memory.NewAccountRepository(), memory.NewSessionRepository(clock), profiles, usecase.AuthServiceConfig{
		BcryptCost: bcrypt.MinCost,
		Clock:      clock,
		Logger:     logger,
	})
	auth.Subscribe(favorites)

	handler := NewHandler(HandlerConfig{
		Feed:           feed,
		Matches:        usecase.NewMatchService(provider, logger),
		Leagues:        usecase.NewLeagueService(provider, "2025-2026", logger),
		Profiles:       profiles,
		Auth:           auth,
		Favorites:      favorites,
		StreamInterval: time.Minute,
		AllowedOrigins: []string{"*"},
		Clock:          clock,
		Logger:         logger,
	})

	return &testAPI{
		router: NewRouter(RouterConfig{
			Handler:  handler,
			Verifier: auth,
			Logger:   logger,
		}),
		handler:  handler,
		provider: provider,
		clock:    clock,
	}
}

func (a *testAPI) do(t *testing.T, method, target, token string, body []byte, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) signUp(t *testing.T, email string) authDTO {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/v1/auth/sign-up", "", []byte(`{"email":"`+email+`","password":"secret123"}`), nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("sign up: status %d body %s", rec.Code, rec.Body.String())
	}
	return decodeData[authDTO](t, rec)
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out envelope[T]
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return out.Data
}

func todaysMatches() []match.Match {
	return []match.Match{
		{ID: "1", LeagueID: "4328", Sport: "Soccer", Home: match.Side{ID: "133604", Name: "Arsenal"}, Away: match.Side{ID: "133610", Name: "Chelsea"}, RawStatus: "Second Half"},
		{ID: "2", LeagueID: "4335", Sport: "Soccer", Home: match.Side{ID: "133739", Name: "Barcelona"}, Away: match.Side{ID: "133738", Name: "Real Madrid"}, RawStatus: "Match Finished"},
		{ID: "3", LeagueID: "4331", Sport: "Soccer", Home: match.Side{ID: "133664", Name: "Bayern"}, Away: match.Side{ID: "133650", Name: "Dortmund"}, RawStatus: "Not Started"},
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	rec := api.do(t, http.MethodGet, "/healthz", "", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestListMatches_AnonymousGetsEveryMatchGrouped(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	api.provider.On("EventsByDay", mock.Anything, "2026-10-16", "Soccer").Return(todaysMatches(), nil).Once()

	rec := api.do(t, http.MethodGet, "/v1/matches", "", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body %s", rec.Code, rec.Body.String())
	}

	got := decodeData[feedDTO](t, rec)
	if got.Filtered || got.Total != 3 || got.Strategy != "display" {
		t.Fatalf("unexpected feed header: %+v", got)
	}
	if len(got.Live) != 1 || got.Live[0].ID != "1" || got.Live[0].Status != "live" {
		t.Fatalf("unexpected live group: %+v", got.Live)
	}
	if len(got.Finished) != 1 || got.Finished[0].ID != "2" {
		t.Fatalf("unexpected finished group: %+v", got.Finished)
	}
	if len(got.Upcoming) != 1 || got.Upcoming[0].ID != "3" {
		t.Fatalf("unexpected upcoming group: %+v", got.Upcoming)
	}
}

func TestListMatches_InvalidDateIsRejected(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	rec := api.do(t, http.MethodGet, "/v1/matches?date=16-10-2026", "", nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body %s", rec.Code, rec.Body.String())
	}
}

func TestListMatches_BadTokenIsRejectedEvenOnPublicRoute(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	rec := api.do(t, http.MethodGet, "/v1/matches", "not-a-session", nil, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestFavorites_FilterTheSignedInFeed(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	session := api.signUp(t, "nacho@example.com")

	rec := api.do(t, http.MethodPost, "/v1/me/favorites/leagues", session.AccessToken,
		[]byte(`{"id_league":4335,"str_league":"Spanish La Liga","str_sport":"Soccer"}`), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("add favorite: status %d body %s", rec.Code, rec.Body.String())
	}
	favs := decodeData[favoritesDTO](t, rec)
	if len(favs.Leagues) != 1 || favs.Leagues[0].LeagueID != 4335 {
		t.Fatalf("unexpected favorites after add: %+v", favs)
	}

	rec = api.do(t, http.MethodGet, "/v1/me/favorites/leagues/0004335", session.AccessToken, nil, nil)
	check := decodeData[favoriteCheckDTO](t, rec)
	if !check.IsFavorite || check.ID != "4335" {
		t.Fatalf("expected normalized id to be a favorite, got %+v", check)
	}

	api.provider.On("EventsByDay", mock.Anything, "2026-10-16", "Soccer").Return(todaysMatches(), nil).Once()
	rec = api.do(t, http.MethodGet, "/v1/matches", session.AccessToken, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("matches: status %d body %s", rec.Code, rec.Body.String())
	}
	feed := decodeData[feedDTO](t, rec)
	if !feed.Filtered || feed.Total != 1 || len(feed.Finished) != 1 || feed.Finished[0].ID != "2" {
		t.Fatalf("expected only the favorite league match, got %+v", feed)
	}

	rec = api.do(t, http.MethodDelete, "/v1/me/favorites/leagues/4335", session.AccessToken, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove favorite: status %d body %s", rec.Code, rec.Body.String())
	}
	if favs := decodeData[favoritesDTO](t, rec); len(favs.Leagues) != 0 {
		t.Fatalf("expected no leagues after remove, got %+v", favs.Leagues)
	}
}

func TestFavorites_RejectUnknownKindAndBadPayload(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	session := api.signUp(t, "kinds@example.com")

	rec := api.do(t, http.MethodPost, "/v1/me/favorites/players", session.AccessToken, []byte(`{}`), nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown kind, got %d", rec.Code)
	}
	rec = api.do(t, http.MethodPost, "/v1/me/favorites/teams", session.AccessToken, []byte(`{"id_team":0,"str_team":"x"}`), nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid team, got %d", rec.Code)
	}
	rec = api.do(t, http.MethodPost, "/v1/me/favorites/sports", session.AccessToken, []byte(`{"str_sport":"   "}`), nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank sport, got %d", rec.Code)
	}
	rec = api.do(t, http.MethodGet, "/v1/me/favorites/teams/abc", session.AccessToken, nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non numeric id, got %d", rec.Code)
	}
}

func TestAuth_SessionLifecycle(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	signedUp := api.signUp(t, "Life@Example.com")
	if signedUp.TokenType != "Bearer" || signedUp.User.Email != "life@example.com" {
		t.Fatalf("unexpected sign up result: %+v", signedUp)
	}
	if signedUp.Profile.FullName != "life" || signedUp.Profile.HasCompletedOnboarding {
		t.Fatalf("unexpected initial profile: %+v", signedUp.Profile)
	}

	rec := api.do(t, http.MethodPost, "/v1/auth/sign-up", "", []byte(`{"email":"life@example.com","password":"secret123"}`), nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", rec.Code)
	}

	rec = api.do(t, http.MethodPost, "/v1/auth/sign-in", "", []byte(`{"email":"life@example.com","password":"wrong-password"}`), nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", rec.Code)
	}

	rec = api.do(t, http.MethodPost, "/v1/auth/sign-in", "", []byte(`{"email":"life@example.com","password":"secret123"}`), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("sign in: status %d body %s", rec.Code, rec.Body.String())
	}
	signedIn := decodeData[authDTO](t, rec)

	rec = api.do(t, http.MethodGet, "/v1/auth/session", signedIn.AccessToken, nil, nil)
	if got := decodeData[sessionDTO](t, rec); got.User.UserID != signedUp.User.UserID {
		t.Fatalf("unexpected session user: %+v", got)
	}

	rec = api.do(t, http.MethodPost, "/v1/auth/sign-out", signedIn.AccessToken, nil, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("sign out: status %d body %s", rec.Code, rec.Body.String())
	}
	rec = api.do(t, http.MethodGet, "/v1/auth/session", signedIn.AccessToken, nil, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected revoked token to be rejected, got %d", rec.Code)
	}

	rec = api.do(t, http.MethodGet, "/v1/auth/session", signedUp.AccessToken, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected the other session to stay valid, got %d", rec.Code)
	}
}

func TestProfile_RequiresAuth(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	rec := api.do(t, http.MethodGet, "/v1/me/profile", "", nil, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestProfile_UpdateAndOnboarding(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	session := api.signUp(t, "profile@example.com")

	rec := api.do(t, http.MethodPatch, "/v1/me/profile", session.AccessToken, []byte(`{"full_name":"Nacho Samo","fav_sport":"Basketball"}`), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: status %d body %s", rec.Code, rec.Body.String())
	}
	if got := decodeData[profileDTO](t, rec); got.FullName != "Nacho Samo" || got.FavoriteSport != "Basketball" {
		t.Fatalf("unexpected profile: %+v", got)
	}

	rec = api.do(t, http.MethodPatch, "/v1/me/profile", session.AccessToken, []byte(`{"nickname":"x"}`), nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected unknown fields to be rejected, got %d", rec.Code)
	}

	rec = api.do(t, http.MethodPost, "/v1/me/onboarding/complete", session.AccessToken, nil, nil)
	if got := decodeData[profileDTO](t, rec); !got.HasCompletedOnboarding {
		t.Fatalf("expected onboarding completed, got %+v", got)
	}
}

func TestProfile_AvatarUploadIsServedPublicly(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	session := api.signUp(t, "avatar@example.com")
	image := []byte("\x89PNG\r\n\x1a\nfake")

	rec := api.do(t, http.MethodPut, "/v1/me/avatar", session.AccessToken, image, http.Header{"Content-Type": {"image/png"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("upload: status %d body %s", rec.Code, rec.Body.String())
	}
	prof := decodeData[profileDTO](t, rec)
	wantPrefix := "https://api.samoscore.test/storage/v1/object/public/profilePictures/" + session.User.UserID + "/avatar.png?t="
	if !strings.HasPrefix(prof.AvatarURL, wantPrefix) {
		t.Fatalf("unexpected avatar url %q", prof.AvatarURL)
	}

	rec = api.do(t, http.MethodGet, "/storage/v1/object/public/profilePictures/"+session.User.UserID+"/avatar.png", "", nil, nil)
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/png" || !bytes.Equal(rec.Body.Bytes(), image) {
		t.Fatalf("unexpected public object: status %d type %q", rec.Code, rec.Header().Get("Content-Type"))
	}

	rec = api.do(t, http.MethodPut, "/v1/me/avatar", session.AccessToken, bytes.Repeat([]byte{1}, 2048), http.Header{"Content-Type": {"image/png"}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected oversized avatar to be rejected, got %d", rec.Code)
	}
}

func TestClassifyStatus(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	rec := api.do(t, http.MethodGet, "/v1/statuses/classify?raw=FT", "", nil, nil)
	got := decodeData[classifyDTO](t, rec)
	if got.Status != "finished" || !got.FinishedForDisplay || got.Strategy != "display" {
		t.Fatalf("unexpected classification: %+v", got)
	}

	rec = api.do(t, http.MethodGet, "/v1/statuses/classify?raw=x&strategy=fuzzy", "", nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown strategy, got %d", rec.Code)
	}
}

func TestGetMatchDetails_NotFound(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	api.provider.On("LookupEvent", mock.Anything, "999").Return(match.EventRecord{}, false, nil).Once()

	rec := api.do(t, http.MethodGet, "/v1/matches/999", "", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body %s", rec.Code, rec.Body.String())
	}
}

func TestStreamMatches_PushesFeedOnConnect(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	api.provider.On("EventsByDay", mock.Anything, "2026-10-16", "Soccer").Return(todaysMatches(), nil)

	server := httptest.NewServer(api.router)
	t.Cleanup(server.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, "ws"+strings.TrimPrefix(server.URL, "http")+"/v1/matches/stream", nil)
	if err != nil {
		t.Fatalf("dial stream: %v", err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read first frame: %v", err)
	}
	var frame streamFrame
	if err := sonic.Unmarshal(payload, &frame); err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	if frame.Type != "feed" || frame.Data == nil || frame.Data.Total != 3 {
		t.Fatalf("unexpected first frame: %s", payload)
	}

	api.clock.BlockUntilContext(ctx, 1)
	api.clock.Advance(time.Minute)

	_, payload, err = conn.ReadMessage()
	if err != nil {
		t.Fatalf("read second frame: %v", err)
	}
	if !strings.Contains(string(payload), `"type":"feed"`) {
		t.Fatalf("unexpected second frame: %s", payload)
	}
}

func TestOpenAPI_ConditionalGet(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	router := NewRouter(RouterConfig{Handler: api.handler, Logger: logging.NewNop(), SwaggerEnabled: true})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))
	etag := rec.Header().Get("ETag")
	if rec.Code != http.StatusOK || etag == "" || !bytes.Contains(rec.Body.Bytes(), []byte("/v1/matches")) {
		t.Fatalf("unexpected openapi response %d etag=%q", rec.Code, etag)
	}

	req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", rec.Code)
	}
}
