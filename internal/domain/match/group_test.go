package match

import (
	"fmt"
	"math/rand/v2"
	"testing"
)

var sampleStatuses = []string{
	"Match Finished", "FT", "Not Started", "1H", "HT", "First Half", "Second Half",
	"Match Started", "Postponed", "Cancelled", "Live", "", "AET", "finished",
}

func TestGroup_DisplayStrategy(t *testing.T) {
	t.Parallel()

	matches := []Match{
		{ID: "1", RawStatus: "Match Finished"},
		{ID: "2", RawStatus: "Not Started"},
		{ID: "3", RawStatus: "First Half"},
		{ID: "4", RawStatus: "Postponed"},
		{ID: "5", RawStatus: "HT"},
		{ID: "6", RawStatus: "FT"},
		{ID: "7", RawStatus: "1H"},
	}

	groups := Group(matches, NewClassifier(StrategyDisplay))

	assertIDs(t, "live", groups.Live, "3", "5")
	assertIDs(t, "upcoming", groups.Upcoming, "2", "4", "7")
	assertIDs(t, "finished", groups.Finished, "1", "6")
	assertIDs(t, "ordered", groups.Ordered(), "3", "5", "2", "4", "7", "1", "6")
}

func TestGroup_PartitionIsTotalAndDisjoint(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(7, 11))
	for _, strategy := range []Strategy{StrategyKeyword, StrategyDisplay, StrategyUnified} {
		classifier := NewClassifier(strategy)
		for round := 0; round < 50; round++ {
			n := rng.IntN(40)
			matches := make([]Match, n)
			for i := range matches {
				matches[i] = Match{ID: fmt.Sprintf("%d-%d", round, i), RawStatus: sampleStatuses[rng.IntN(len(sampleStatuses))]}
			}

			groups := Group(matches, classifier)
			if groups.Len() != n {
				t.Fatalf("%s: partition size %d, want %d", strategy, groups.Len(), n)
			}

			seen := make(map[string]int, n)
			for _, m := range groups.Ordered() {
				seen[m.ID]++
			}
			for _, m := range matches {
				if seen[m.ID] != 1 {
					t.Fatalf("%s: match %s appears %d times", strategy, m.ID, seen[m.ID])
				}
			}
			assertStable(t, matches, groups.Live)
			assertStable(t, matches, groups.Upcoming)
			assertStable(t, matches, groups.Finished)
		}
	}
}

func TestGroup_EmptyInput(t *testing.T) {
	t.Parallel()

	groups := Group(nil, NewClassifier(StrategyDisplay))
	if groups.Live == nil || groups.Upcoming == nil || groups.Finished == nil {
		t.Fatalf("expected non-nil empty buckets")
	}
	if groups.Len() != 0 {
		t.Fatalf("expected no matches, got %d", groups.Len())
	}
}

func assertIDs(t *testing.T, name string, got []Match, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: got %d matches, want %d", name, len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("%s[%d]: got %s want %s", name, i, got[i].ID, want[i])
		}
	}
}

func assertStable(t *testing.T, input, bucket []Match) {
	t.Helper()
	pos := make(map[string]int, len(input))
	for i, m := range input {
		pos[m.ID] = i
	}
	for i := 1; i < len(bucket); i++ {
		if pos[bucket[i-1].ID] > pos[bucket[i].ID] {
			t.Fatalf("bucket order differs from input order at %d", i)
		}
	}
}
