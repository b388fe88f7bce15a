package match

// Groups is a partition of matches for display.
type Groups struct {
	Live     []Match
	Upcoming []Match
	Finished []Match
}

func (g Groups) Len() int {
	return len(g.Live) + len(g.Upcoming) + len(g.Finished)
}

// Ordered returns the matches in display order: live, upcoming, finished.
func (g Groups) Ordered() []Match {
	out := make([]Match, 0, g.Len())
	out = append(out, g.Live...)
	out = append(out, g.Upcoming...)
	return append(out, g.Finished...)
}

// Group partitions matches by c. Postponed and cancelled matches land in
// Upcoming. Every match appears exactly once and bucket order follows input order.
func Group(matches []Match, c *Classifier) Groups {
	groups := Groups{
		Live:     make([]Match, 0),
		Upcoming: make([]Match, 0),
		Finished: make([]Match, 0),
	}
	for _, m := range matches {
		switch c.Classify(m.RawStatus) {
		case StatusLive:
			groups.Live = append(groups.Live, m)
		case StatusFinished:
			groups.Finished = append(groups.Finished, m)
		default:
			groups.Upcoming = append(groups.Upcoming, m)
		}
	}
	return groups
}
