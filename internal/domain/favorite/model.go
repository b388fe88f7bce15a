package favorite

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind selects one of the three favorite collections.
type Kind string

const (
	KindLeague Kind = "leagues"
	KindTeam   Kind = "teams"
	KindSport  Kind = "sports"
)

func ParseKind(raw string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(raw))); k {
	case KindLeague, KindTeam, KindSport:
		return k, nil
	default:
		return "", fmt.Errorf("unknown favorite kind %q", raw)
	}
}

type League struct {
	ID        int64
	UserID    string
	LeagueID  int
	Name      string
	Sport     string
	Country   string
	BadgeURL  string
	CreatedAt time.Time
}

type Team struct {
	ID         int64
	UserID     string
	TeamID     int
	Name       string
	LeagueID   *int
	LeagueName string
	Sport      string
	Country    string
	BadgeURL   string
	CreatedAt  time.Time
}

type Sport struct {
	ID        int64
	UserID    string
	Name      string
	CreatedAt time.Time
}

// Key is the entity id the collections are keyed by.
func (l League) Key() string { return strconv.Itoa(l.LeagueID) }
func (t Team) Key() string   { return strconv.Itoa(t.TeamID) }
func (s Sport) Key() string  { return SportKey(s.Name) }

// SportName collapses runs of whitespace in a sport name.
func SportName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// SportKey is the identity of a sport favorite. Sports are matched case
// insensitively, so "soccer" and "Soccer" are the same favorite.
func SportKey(name string) string {
	return strings.ToLower(SportName(name))
}

func (l League) Validate() error {
	if l.LeagueID <= 0 {
		return fmt.Errorf("league id must be positive")
	}
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("league name is required")
	}
	return nil
}

func (t Team) Validate() error {
	if t.TeamID <= 0 {
		return fmt.Errorf("team id must be positive")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	return nil
}

func (s Sport) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("sport name is required")
	}
	return nil
}

// Snapshot is a point-in-time copy of a user's favorites in insertion order.
type Snapshot struct {
	UserID  string
	Leagues []League
	Teams   []Team
	Sports  []Sport
}

func (s Snapshot) LeagueKeys() []string {
	out := make([]string, 0, len(s.Leagues))
	for _, l := range s.Leagues {
		out = append(out, l.Key())
	}
	return out
}

func (s Snapshot) TeamKeys() []string {
	out := make([]string, 0, len(s.Teams))
	for _, t := range s.Teams {
		out = append(out, t.Key())
	}
	return out
}

func (s Snapshot) SportNames() []string {
	out := make([]string, 0, len(s.Sports))
	for _, sp := range s.Sports {
		out = append(out, sp.Name)
	}
	return out
}
