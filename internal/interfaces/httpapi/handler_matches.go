package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/NachoSamo/SamoScore/internal/domain/match"
	"github.com/NachoSamo/SamoScore/internal/usecase"
)

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	query := h.feedQuery(r)
	result, err := h.feed.Matches(ctx, query)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "date", query.Date, "sport", query.Sport, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, feedToDTO(result, h.classifier))
}

func (h *Handler) GetMatchDetails(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchDetails")
	defer span.End()

	eventID := strings.TrimSpace(r.PathValue("eventID"))
	details, err := h.matches.Details(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match details failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, detailsToDTO(details))
}

// ClassifyStatus exposes the status classifier so clients render badges with
// the same rules the feed groups by.
func (h *Handler) ClassifyStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClassifyStatus")
	defer span.End()

	raw := r.URL.Query().Get("raw")
	classifier := h.classifier
	if value := strings.TrimSpace(r.URL.Query().Get("strategy")); value != "" {
		strategy, err := match.ParseStrategy(value)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
			return
		}
		classifier = match.NewClassifier(strategy)
	}

	writeSuccess(ctx, w, http.StatusOK, classifyDTO{
		Raw:                raw,
		Strategy:           string(classifier.Strategy()),
		Status:             string(classifier.Classify(raw)),
		LiveForDisplay:     match.IsLiveForDisplay(raw),
		FinishedForDisplay: match.IsFinishedForDisplay(raw),
	})
}

// feedQuery reads date and sport from the query string. Signed-in callers
// get their favorites applied.
func (h *Handler) feedQuery(r *http.Request) usecase.FeedQuery {
	query := usecase.FeedQuery{
		Date:         strings.TrimSpace(r.URL.Query().Get("date")),
		Sport:        strings.TrimSpace(r.URL.Query().Get("sport")),
		SupersedeKey: supersedeKey(r),
	}
	if principal, ok := principalFromContext(r.Context()); ok {
		query.Principal = &principal
	}
	return query
}
