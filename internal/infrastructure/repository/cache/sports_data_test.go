package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/mock"

	"github.com/NachoSamo/SamoScore/internal/domain/league"
	"github.com/NachoSamo/SamoScore/internal/domain/match"
	usecasemock "github.com/NachoSamo/SamoScore/internal/mocks/usecase"
	basecache "github.com/NachoSamo/SamoScore/internal/platform/cache"
)

type fakeRemote struct {
	mu    sync.Mutex
	items map[string][]byte
	ttls  map[string]time.Duration
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{items: make(map[string][]byte), ttls: make(map[string]time.Duration)}
}

func (f *fakeRemote) Get(_ context.Context, key string, dst any) (bool, error) {
	f.mu.Lock()
	raw, ok := f.items[key]
	f.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, sonic.Unmarshal(raw, dst)
}

func (f *fakeRemote) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	raw, err := sonic.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.items[key] = raw
	f.ttls[key] = ttl
	f.mu.Unlock()
	return nil
}

var testTTL = TTLConfig{
	Default:   2 * time.Minute,
	Live:      20 * time.Second,
	Finished:  30 * time.Minute,
	Reference: 6 * time.Hour,
}

func TestTTLConfig_EventsTTL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		statuses []string
		want     time.Duration
	}{
		{name: "empty day", want: testTTL.Default},
		{name: "any live", statuses: []string{"Match Finished", "Live", "Not Started"}, want: testTTL.Live},
		{name: "all finished", statuses: []string{"Match Finished", "FT"}, want: testTTL.Finished},
		{name: "mixed", statuses: []string{"Match Finished", "Not Started"}, want: testTTL.Default},
		{name: "match started", statuses: []string{"Match Started"}, want: testTTL.Live},
		{name: "first half", statuses: []string{"Match Finished", "First Half"}, want: testTTL.Live},
		{name: "second half", statuses: []string{"Second Half"}, want: testTTL.Live},
		{name: "half time", statuses: []string{"HT", "Not Started"}, want: testTTL.Live},
	}
	for _, tc := range cases {
		items := make([]match.Match, 0, len(tc.statuses))
		for _, s := range tc.statuses {
			items = append(items, match.Match{RawStatus: s})
		}
		if got := testTTL.EventsTTL(items); got != tc.want {
			t.Fatalf("%s: got %s want %s", tc.name, got, tc.want)
		}
	}

	if got := testTTL.eventTTL(match.Match{RawStatus: "Second Half"}); got != testTTL.Live {
		t.Fatalf("event details in play: got %s want %s", got, testTTL.Live)
	}
}

func TestSportsDataProvider_EventsCachedByStatusTTL(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClockAt(time.Date(2026, 10, 16, 18, 0, 0, 0, time.UTC))
	next := usecasemock.NewSportsDataProvider(t)
	next.On("EventsByDay", mock.Anything, "2026-10-16", "Soccer").
		Return([]match.Match{{ID: "1", RawStatus: "Live"}}, nil).
		Twice()

	provider := NewSportsDataProvider(next, basecache.NewStoreWithClock(time.Hour, clock), SportsDataConfig{TTL: testTTL})

	for i := 0; i < 3; i++ {
		if _, err := provider.EventsByDay(context.Background(), "2026-10-16", "Soccer"); err != nil {
			t.Fatalf("events: %v", err)
		}
	}

	clock.Advance(21 * time.Second)
	got, err := provider.EventsByDay(context.Background(), "2026-10-16", "Soccer")
	if err != nil {
		t.Fatalf("events after live ttl: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("unexpected events %+v", got)
	}
}

func TestSportsDataProvider_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	next := usecasemock.NewSportsDataProvider(t)
	next.On("AllLeagues", mock.Anything).Return(nil, errors.New("down")).Once()
	next.On("AllLeagues", mock.Anything).Return([]league.League{{ID: "4328"}}, nil).Once()

	provider := NewSportsDataProvider(next, basecache.NewStore(time.Hour), SportsDataConfig{TTL: testTTL})

	if _, err := provider.AllLeagues(context.Background()); err == nil {
		t.Fatalf("expected provider error")
	}
	got, err := provider.AllLeagues(context.Background())
	if err != nil || len(got) != 1 {
		t.Fatalf("expected retry to reach provider, got %+v err=%v", got, err)
	}
}

func TestSportsDataProvider_RemoteCacheSharedBetweenInstances(t *testing.T) {
	t.Parallel()

	remote := newFakeRemote()
	next := usecasemock.NewSportsDataProvider(t)
	next.On("LookupLeague", mock.Anything, "4328").Return(league.League{ID: "4328", Name: "EPL"}, true, nil).Once()

	first := NewSportsDataProvider(next, basecache.NewStore(time.Hour), SportsDataConfig{TTL: testTTL, Remote: remote})
	second := NewSportsDataProvider(next, basecache.NewStore(time.Hour), SportsDataConfig{TTL: testTTL, Remote: remote})

	if _, _, err := first.LookupLeague(context.Background(), "4328"); err != nil {
		t.Fatalf("first lookup: %v", err)
	}
	got, found, err := second.LookupLeague(context.Background(), "4328")
	if err != nil || !found || got.Name != "EPL" {
		t.Fatalf("expected L2 hit, got %+v found=%v err=%v", got, found, err)
	}
	if remote.ttls["league:4328"] != testTTL.Reference {
		t.Fatalf("unexpected remote ttl %s", remote.ttls["league:4328"])
	}
}

func TestSportsDataProvider_CachesMissingEvent(t *testing.T) {
	t.Parallel()

	next := usecasemock.NewSportsDataProvider(t)
	next.On("LookupEvent", mock.Anything, "404").Return(match.EventRecord{}, false, nil).Once()

	provider := NewSportsDataProvider(next, basecache.NewStore(time.Hour), SportsDataConfig{TTL: testTTL})
	for i := 0; i < 2; i++ {
		if _, found, err := provider.LookupEvent(context.Background(), "404"); err != nil || found {
			t.Fatalf("expected cached miss, found=%v err=%v", found, err)
		}
	}
}
