package match

// Side is one of the two competitors of a match.
type Side struct {
	ID       string
	Name     string
	BadgeURL string
}

// Match is a single fixture as reported by the sports-data provider.
// RawStatus is the only stored status; the semantic status is always
// derived from it with a Classifier.
type Match struct {
	ID          string
	LeagueID    string
	LeagueName  string
	LeagueBadge string
	Sport       string
	Home        Side
	Away        Side
	RawStatus   string
	Date        string
	Time        string
	HomeScore   *int
	AwayScore   *int
	Thumb       string
	Video       string
}

// Status returns the semantic status of m under c.
func (m Match) Status(c *Classifier) Status {
	return c.Classify(m.RawStatus)
}
