package favorite

import "testing"

func TestParseKind(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]Kind{"leagues": KindLeague, " Teams ": KindTeam, "SPORTS": KindSport} {
		got, err := ParseKind(raw)
		if err != nil || got != want {
			t.Fatalf("ParseKind(%q) = %s, %v", raw, got, err)
		}
	}
	if _, err := ParseKind("players"); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}

func TestSnapshotKeys(t *testing.T) {
	t.Parallel()

	s := Snapshot{
		Leagues: []League{{LeagueID: 4328}, {LeagueID: 4335}},
		Teams:   []Team{{TeamID: 133604}},
		Sports:  []Sport{{Name: "Soccer"}, {Name: "Basketball"}},
	}
	if keys := s.LeagueKeys(); len(keys) != 2 || keys[0] != "4328" || keys[1] != "4335" {
		t.Fatalf("unexpected league keys %v", keys)
	}
	if keys := s.TeamKeys(); len(keys) != 1 || keys[0] != "133604" {
		t.Fatalf("unexpected team keys %v", keys)
	}
	if names := s.SportNames(); len(names) != 2 || names[1] != "Basketball" {
		t.Fatalf("unexpected sport names %v", names)
	}
}

func TestSportKey_IgnoresCaseAndSpacing(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]string{
		"Soccer":         "soccer",
		" SOCCER ":       "soccer",
		"Ice  Hockey":    "ice hockey",
		"\tice hockey\n": "ice hockey",
	} {
		if got := SportKey(raw); got != want {
			t.Fatalf("SportKey(%q) = %q, want %q", raw, got, want)
		}
	}
	if got := SportName("  Ice \t Hockey "); got != "Ice Hockey" {
		t.Fatalf("SportName kept extra spacing: %q", got)
	}
	if (Sport{Name: "Ice Hockey"}).Key() != (Sport{Name: "ice  hockey"}).Key() {
		t.Fatalf("expected sports differing only in case to share a key")
	}
	if err := (Sport{Name: "   "}).Validate(); err == nil {
		t.Fatalf("expected blank sport to fail validation")
	}
}
