package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/NachoSamo/SamoScore/internal/domain/favorite"
	"github.com/NachoSamo/SamoScore/internal/usecase"
)

func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFavorites")
	defer span.End()

	cache, err := h.favoritesCache(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, favoritesToDTO(cache.Snapshot()))
}

func (h *Handler) RefreshFavorites(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshFavorites")
	defer span.End()

	cache, err := h.favoritesCache(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, favoritesToDTO(cache.Refresh(ctx)))
}

// AddFavorite answers with the collections after the write settles. A blank
// name or id is rejected up front; a failed write shows up as the reloaded
// state rather than an error.
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddFavorite")
	defer span.End()

	kind, err := parseFavoriteKind(r.PathValue("kind"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	cache, err := h.favoritesCache(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var snapshot favorite.Snapshot
	switch kind {
	case favorite.KindLeague:
		var req favoriteLeagueRequest
		if err := h.decodeRequest(ctx, r, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
		snapshot, err = cache.AddLeague(ctx, favorite.League{
			LeagueID: req.LeagueID,
			Name:     strings.TrimSpace(req.Name),
			Sport:    strings.TrimSpace(req.Sport),
			Country:  strings.TrimSpace(req.Country),
			BadgeURL: strings.TrimSpace(req.BadgeURL),
		})
	case favorite.KindTeam:
		var req favoriteTeamRequest
		if err := h.decodeRequest(ctx, r, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
		snapshot, err = cache.AddTeam(ctx, favorite.Team{
			TeamID:     req.TeamID,
			Name:       strings.TrimSpace(req.Name),
			LeagueID:   req.LeagueID,
			LeagueName: strings.TrimSpace(req.LeagueName),
			Sport:      strings.TrimSpace(req.Sport),
			Country:    strings.TrimSpace(req.Country),
			BadgeURL:   strings.TrimSpace(req.BadgeURL),
		})
	case favorite.KindSport:
		var req favoriteSportRequest
		if err := h.decodeRequest(ctx, r, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
		snapshot, err = cache.AddSport(ctx, favorite.Sport{Name: req.Sport})
	}
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, favoritesToDTO(snapshot))
}

func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveFavorite")
	defer span.End()

	kind, err := parseFavoriteKind(r.PathValue("kind"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	cache, err := h.favoritesCache(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := cache.Remove(ctx, kind, strings.TrimSpace(r.PathValue("id")))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, favoritesToDTO(snapshot))
}

func (h *Handler) CheckFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CheckFavorite")
	defer span.End()

	kind, err := parseFavoriteKind(r.PathValue("kind"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	cache, err := h.favoritesCache(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	id, err := normalizeFavoriteID(kind, r.PathValue("id"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, favoriteCheckDTO{
		Kind:       string(kind),
		ID:         id,
		IsFavorite: cache.IsFavorite(kind, id),
	})
}

func (h *Handler) favoritesCache(r *http.Request) (*usecase.FavoritesCache, error) {
	principal, err := requirePrincipal(r.Context())
	if err != nil {
		return nil, err
	}
	return h.favorites.ForPrincipal(r.Context(), principal)
}

func parseFavoriteKind(raw string) (favorite.Kind, error) {
	kind, err := favorite.ParseKind(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return kind, nil
}

// normalizeFavoriteID turns "007" into "7" so lookups hit the same key the
// collections are stored under. Sport names are only trimmed; the cache ignores case.
func normalizeFavoriteID(kind favorite.Kind, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if kind == favorite.KindSport {
		if raw == "" {
			return "", fmt.Errorf("%w: sport name is required", usecase.ErrInvalidInput)
		}
		return raw, nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return "", fmt.Errorf("%w: favorite id %q must be a positive integer", usecase.ErrInvalidInput, raw)
	}
	return strconv.Itoa(id), nil
}
