package httpapi

import "net/http"

type routeRegistrar struct {
	mux      *http.ServeMux
	handler  *Handler
	verifier TokenVerifier
	observer HTTPObserver
}

func (rr *routeRegistrar) public(pattern string, fn http.HandlerFunc) {
	rr.mux.Handle(pattern, instrumentRoute(rr.observer, pattern, fn))
}

// optional attaches the principal when a valid token is sent and lets
// anonymous callers through.
func (rr *routeRegistrar) optional(pattern string, fn http.HandlerFunc) {
	rr.mux.Handle(pattern, instrumentRoute(rr.observer, pattern, OptionalAuth(rr.verifier, fn)))
}

func (rr *routeRegistrar) authorized(pattern string, fn http.HandlerFunc) {
	rr.mux.Handle(pattern, instrumentRoute(rr.observer, pattern, RequireAuth(rr.verifier, fn)))
}

func (rr *routeRegistrar) registerSystemRoutes(swaggerEnabled bool, metrics http.Handler) {
	rr.mux.HandleFunc("GET /healthz", rr.handler.Healthz)
	if metrics != nil {
		rr.mux.Handle("GET /metrics", metrics)
	}
	if !swaggerEnabled {
		return
	}

	rr.mux.HandleFunc("GET /openapi.yaml", rr.handler.OpenAPI)
	rr.mux.HandleFunc("GET /docs", rr.handler.SwaggerUI)
	rr.mux.HandleFunc("GET /docs/", rr.handler.SwaggerUI)
}

func (rr *routeRegistrar) registerPublicRoutes() {
	rr.optional("GET /v1/matches", rr.handler.ListMatches)
	rr.optional("GET /v1/matches/stream", rr.handler.StreamMatches)
	rr.public("GET /v1/matches/{eventID}", rr.handler.GetMatchDetails)
	rr.public("GET /v1/statuses/classify", rr.handler.ClassifyStatus)

	rr.public("GET /v1/leagues", rr.handler.ListLeagues)
	rr.public("GET /v1/leagues/{leagueID}", rr.handler.GetLeague)
	rr.public("GET /v1/leagues/{leagueID}/standings", rr.handler.ListLeagueStandings)

	rr.public("GET /storage/v1/object/public/{bucket}/{path...}", rr.handler.GetPublicObject)

	rr.public("POST /v1/auth/sign-up", rr.handler.SignUp)
	rr.public("POST /v1/auth/sign-in", rr.handler.SignIn)
}

func (rr *routeRegistrar) registerAuthorizedRoutes() {
	rr.authorized("POST /v1/auth/sign-out", rr.handler.SignOut)
	rr.authorized("GET /v1/auth/session", rr.handler.GetSession)

	rr.authorized("GET /v1/me/profile", rr.handler.GetProfile)
	rr.authorized("PATCH /v1/me/profile", rr.handler.UpdateProfile)
	rr.authorized("POST /v1/me/onboarding/complete", rr.handler.CompleteOnboarding)
	rr.authorized("GET /v1/me/avatar", rr.handler.GetAvatar)
	rr.authorized("PUT /v1/me/avatar", rr.handler.UploadAvatar)

	rr.authorized("GET /v1/me/favorites", rr.handler.ListFavorites)
	rr.authorized("POST /v1/me/favorites/refresh", rr.handler.RefreshFavorites)
	rr.authorized("POST /v1/me/favorites/{kind}", rr.handler.AddFavorite)
	rr.authorized("GET /v1/me/favorites/{kind}/{id}", rr.handler.CheckFavorite)
	rr.authorized("DELETE /v1/me/favorites/{kind}/{id}", rr.handler.RemoveFavorite)
}
