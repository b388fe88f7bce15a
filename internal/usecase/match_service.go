package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/NachoSamo/SamoScore/internal/domain/match"
	"github.com/NachoSamo/SamoScore/internal/platform/logging"
)

// MatchService serves the single-match detail view. It classifies with the
// keyword strategy regardless of the feed grouping strategy.
type MatchService struct {
	provider   SportsDataProvider
	classifier *match.Classifier
	logger     *logging.Logger
}

func NewMatchService(provider SportsDataProvider, logger *logging.Logger) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchService{
		provider:   provider,
		classifier: match.NewClassifier(match.StrategyKeyword),
		logger:     logger,
	}
}

func (s *MatchService) Details(ctx context.Context, eventID string) (match.Details, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Details")
	defer span.End()

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return match.Details{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	record, ok, err := s.provider.LookupEvent(ctx, eventID)
	if err != nil {
		return match.Details{}, fmt.Errorf("lookup event: %w", err)
	}
	if !ok {
		return match.Details{}, fmt.Errorf("%w: event %s", ErrNotFound, eventID)
	}

	m := record.Match
	status := s.classifier.Classify(m.RawStatus)
	details := match.Details{
		ID:          m.ID,
		Status:      status,
		RawStatus:   m.RawStatus,
		LeagueID:    m.LeagueID,
		LeagueName:  m.LeagueName,
		LeagueBadge: m.LeagueBadge,
		Date:        m.Date,
		Time:        m.Time,
		Stadium:     record.Venue,
		City:        record.City,
		Home: match.DetailSide{
			ID:        m.Home.ID,
			Name:      m.Home.Name,
			ShortName: match.ShortName(m.Home.Name),
			LogoURL:   m.Home.BadgeURL,
		},
		Away: match.DetailSide{
			ID:        m.Away.ID,
			Name:      m.Away.Name,
			ShortName: match.ShortName(m.Away.Name),
			LogoURL:   m.Away.BadgeURL,
		},
	}
	if !status.HasResult() {
		return details, nil
	}

	details.Score = &match.Score{Home: valueOrZero(m.HomeScore), Away: valueOrZero(m.AwayScore)}

	timeline, err := s.provider.Timeline(ctx, eventID)
	if err != nil {
		s.logger.InfoContext(ctx, "timeline unavailable", "event_id", eventID, "error", err)
		return details, nil
	}
	details.Events = make([]match.TimelineEvent, 0, len(timeline))
	for i, entry := range timeline {
		details.Events = append(details.Events, timelineEvent(i, entry))
	}
	return details, nil
}

func timelineEvent(index int, entry match.TimelineEntry) match.TimelineEvent {
	side := match.SideAway
	if entry.Home {
		side = match.SideHome
	}
	return match.TimelineEvent{
		ID:     fmt.Sprintf("evt-%d", index),
		Time:   entry.Minute + "'",
		Type:   match.EventTypeFromText(entry.Event),
		Player: entry.Player,
		Side:   side,
	}
}

func valueOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
