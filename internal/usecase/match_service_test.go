package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/NachoSamo/SamoScore/internal/domain/match"
	usecasemock "github.com/NachoSamo/SamoScore/internal/mocks/usecase"
)

func intPtr(v int) *int { return &v }

func TestMatchService_DetailsFinishedWithTimeline(t *testing.T) {
	t.Parallel()

	provider := usecasemock.NewSportsDataProvider(t)
	provider.On("LookupEvent", mock.Anything, "2052711").Return(match.EventRecord{
		Match: match.Match{
			ID:         "2052711",
			LeagueID:   "4328",
			LeagueName: "English Premier League",
			Home:       match.Side{ID: "133604", Name: "Arsenal", BadgeURL: "https://img/ars.png"},
			Away:       match.Side{ID: "133610", Name: "Chelsea"},
			RawStatus:  "Match Finished",
			Date:       "2026-10-16",
			Time:       "19:00",
			HomeScore:  intPtr(2),
		},
		Venue: "Emirates Stadium",
		City:  "London",
	}, true, nil).Once()
	provider.On("Timeline", mock.Anything, "2052711").Return([]match.TimelineEntry{
		{Minute: "12", Event: "Goal", Player: "Saka", Home: true},
		{Minute: "55", Event: "Yellow Card", Player: "Palmer"},
		{Minute: "70", Event: "subst", Player: "Havertz", Home: true},
	}, nil).Once()

	got, err := NewMatchService(provider, nil).Details(context.Background(), "2052711")
	if err != nil {
		t.Fatalf("details: %v", err)
	}

	if got.Status != match.StatusFinished {
		t.Fatalf("unexpected status %q", got.Status)
	}
	if got.Score == nil || got.Score.Home != 2 || got.Score.Away != 0 {
		t.Fatalf("unexpected score %+v", got.Score)
	}
	if got.Home.ShortName != "ARS" || got.Away.ShortName != "CHE" {
		t.Fatalf("unexpected short names %q %q", got.Home.ShortName, got.Away.ShortName)
	}
	if got.Stadium != "Emirates Stadium" || got.City != "London" {
		t.Fatalf("unexpected venue %q %q", got.Stadium, got.City)
	}
	if len(got.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got.Events))
	}
	first := got.Events[0]
	if first.ID != "evt-0" || first.Time != "12'" || first.Type != match.EventGoal || first.Side != match.SideHome {
		t.Fatalf("unexpected first event %+v", first)
	}
	if got.Events[1].Type != match.EventYellowCard || got.Events[1].Side != match.SideAway {
		t.Fatalf("unexpected second event %+v", got.Events[1])
	}
	if got.Events[2].Type != match.EventSub {
		t.Fatalf("unexpected third event %+v", got.Events[2])
	}
}

func TestMatchService_DetailsUpcomingSkipsScoreAndTimeline(t *testing.T) {
	t.Parallel()

	provider := usecasemock.NewSportsDataProvider(t)
	provider.On("LookupEvent", mock.Anything, "1").Return(match.EventRecord{
		Match: match.Match{ID: "1", RawStatus: "Not Started", Home: match.Side{Name: "Boca"}, Away: match.Side{Name: "River"}},
	}, true, nil).Once()

	got, err := NewMatchService(provider, nil).Details(context.Background(), "1")
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if got.Status != match.StatusUpcoming || got.Score != nil || got.Events != nil {
		t.Fatalf("unexpected upcoming details %+v", got)
	}
}

func TestMatchService_TimelineFailureIsAbsorbed(t *testing.T) {
	t.Parallel()

	provider := usecasemock.NewSportsDataProvider(t)
	provider.On("LookupEvent", mock.Anything, "1").Return(match.EventRecord{
		Match: match.Match{ID: "1", RawStatus: "Live", HomeScore: intPtr(1), AwayScore: intPtr(1)},
	}, true, nil).Once()
	provider.On("Timeline", mock.Anything, "1").Return(nil, errors.New("premium only")).Once()

	got, err := NewMatchService(provider, nil).Details(context.Background(), "1")
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if got.Status != match.StatusLive || got.Score == nil || len(got.Events) != 0 {
		t.Fatalf("unexpected details %+v", got)
	}
}

func TestMatchService_DetailsErrors(t *testing.T) {
	t.Parallel()

	provider := usecasemock.NewSportsDataProvider(t)
	provider.On("LookupEvent", mock.Anything, "404").Return(match.EventRecord{}, false, nil).Once()
	provider.On("LookupEvent", mock.Anything, "500").Return(match.EventRecord{}, false, ErrDependencyUnavailable).Once()
	service := NewMatchService(provider, nil)

	if _, err := service.Details(context.Background(), " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := service.Details(context.Background(), "404"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := service.Details(context.Background(), "500"); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
