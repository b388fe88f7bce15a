package match

import "strings"

type EventType string

const (
	EventGoal       EventType = "goal"
	EventYellowCard EventType = "yellow_card"
	EventRedCard    EventType = "red_card"
	EventSub        EventType = "sub"
)

type TeamSide string

const (
	SideHome TeamSide = "home"
	SideAway TeamSide = "away"
)

type Score struct {
	Home int
	Away int
}

type DetailSide struct {
	ID        string
	Name      string
	ShortName string
	LogoURL   string
}

type TimelineEvent struct {
	ID     string
	Time   string
	Type   EventType
	Player string
	Side   TeamSide
}

// Details is the match-detail view. Score and Events are only filled for
// live and finished matches.
type Details struct {
	ID          string
	Status      Status
	RawStatus   string
	LeagueID    string
	LeagueName  string
	LeagueBadge string
	Date        string
	Time        string
	Stadium     string
	City        string
	Home        DetailSide
	Away        DetailSide
	Score       *Score
	Events      []TimelineEvent
}

// EventTypeFromText maps provider timeline text such as "Goal" or
// "Yellow Card". Unknown text is treated as a goal.
func EventTypeFromText(text string) EventType {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "goal"):
		return EventGoal
	case strings.Contains(t, "card") && strings.Contains(t, "yellow"):
		return EventYellowCard
	case strings.Contains(t, "card") && strings.Contains(t, "red"):
		return EventRedCard
	case strings.Contains(t, "sub"):
		return EventSub
	default:
		return EventGoal
	}
}

// ShortName is the first three characters of name, upper-cased.
func ShortName(name string) string {
	runes := []rune(name)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return strings.ToUpper(string(runes))
}

// EventRecord is a provider event plus the venue fields only the
// single-event lookup returns.
type EventRecord struct {
	Match Match
	Venue string
	City  string
}

// TimelineEntry is one raw in-match event from the provider.
type TimelineEntry struct {
	Minute string
	Event  string
	Player string
	Home   bool
}
