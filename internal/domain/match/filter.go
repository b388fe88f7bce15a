package match

// FavoriteSet is the subset of a user's favorites the event filter reads.
// Ids are the provider's string ids.
type FavoriteSet struct {
	LeagueIDs map[string]struct{}
	TeamIDs   map[string]struct{}
}

func NewFavoriteSet(leagueIDs, teamIDs []string) FavoriteSet {
	set := FavoriteSet{
		LeagueIDs: make(map[string]struct{}, len(leagueIDs)),
		TeamIDs:   make(map[string]struct{}, len(teamIDs)),
	}
	for _, id := range leagueIDs {
		if id != "" {
			set.LeagueIDs[id] = struct{}{}
		}
	}
	for _, id := range teamIDs {
		if id != "" {
			set.TeamIDs[id] = struct{}{}
		}
	}
	return set
}

func (f FavoriteSet) Empty() bool {
	return len(f.LeagueIDs) == 0 && len(f.TeamIDs) == 0
}

// Keep reports whether m involves a favorite league or team.
func (f FavoriteSet) Keep(m Match) bool {
	if _, ok := f.LeagueIDs[m.LeagueID]; ok {
		return true
	}
	if m.Home.ID != "" {
		if _, ok := f.TeamIDs[m.Home.ID]; ok {
			return true
		}
	}
	if m.Away.ID != "" {
		if _, ok := f.TeamIDs[m.Away.ID]; ok {
			return true
		}
	}
	return false
}

// Filter returns matches unchanged when favorites is empty, otherwise only
// the matches favorites keeps, in input order.
func Filter(matches []Match, favorites FavoriteSet) []Match {
	if favorites.Empty() {
		return matches
	}

	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		if favorites.Keep(m) {
			out = append(out, m)
		}
	}
	return out
}
