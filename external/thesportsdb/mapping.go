package thesportsdb

import (
	"github.com/NachoSamo/SamoScore/internal/domain/league"
	"github.com/NachoSamo/SamoScore/internal/domain/leaguestanding"
	"github.com/NachoSamo/SamoScore/internal/domain/match"
)

func mapEvent(item eventItem) match.Match {
	return match.Match{
		ID:          item.IDEvent.String(),
		LeagueID:    item.IDLeague.String(),
		LeagueName:  item.StrLeague.String(),
		LeagueBadge: item.StrLeagueBadge.String(),
		Sport:       item.StrSport.String(),
		Home: match.Side{
			ID:       item.IDHomeTeam.String(),
			Name:     item.StrHomeTeam.String(),
			BadgeURL: item.StrHomeTeamBadge.String(),
		},
		Away: match.Side{
			ID:       item.IDAwayTeam.String(),
			Name:     item.StrAwayTeam.String(),
			BadgeURL: item.StrAwayTeamBadge.String(),
		},
		RawStatus: item.StrStatus.String(),
		Date:      item.DateEvent.String(),
		Time:      kickoffTime(item.StrTime.String()),
		HomeScore: optionalScore(item.IntHomeScore),
		AwayScore: optionalScore(item.IntAwayScore),
		Thumb:     item.StrThumb.String(),
		Video:     item.StrVideo.String(),
	}
}

func mapEventDetail(item eventItem) match.EventRecord {
	return match.EventRecord{
		Match: mapEvent(item),
		Venue: item.StrVenue.String(),
		City:  item.StrCity.String(),
	}
}

func mapTimeline(item timelineItem) match.TimelineEntry {
	return match.TimelineEntry{
		Minute: item.IntTime.String(),
		Event:  item.StrEvent.String(),
		Player: item.StrPlayer.String(),
		Home:   item.StrHome.Truthy(),
	}
}

func mapStanding(item tableItem) leaguestanding.Standing {
	return leaguestanding.Standing{
		ID:             item.IDStanding.String(),
		LeagueID:       item.IDLeague.String(),
		LeagueName:     item.StrLeague.String(),
		Season:         item.StrSeason.String(),
		TeamID:         item.IDTeam.String(),
		TeamName:       item.StrTeam.String(),
		TeamBadgeURL:   item.StrTeamBadge.String(),
		Rank:           item.IntRank.IntOrZero(),
		Played:         item.IntPlayed.IntOrZero(),
		Won:            item.IntWin.IntOrZero(),
		Draw:           item.IntDraw.IntOrZero(),
		Lost:           item.IntLoss.IntOrZero(),
		GoalsFor:       item.IntGoalsFor.IntOrZero(),
		GoalsAgainst:   item.IntGoalsAgainst.IntOrZero(),
		GoalDifference: item.IntGoalDifference.IntOrZero(),
		Points:         item.IntPoints.IntOrZero(),
	}
}

func mapLeague(item leagueItem) league.League {
	return league.League{
		ID:            item.IDLeague.String(),
		Name:          item.StrLeague.String(),
		Sport:         item.StrSport.String(),
		AlternateName: item.StrLeagueAlternate.String(),
		Country:       item.StrCountry.String(),
		BadgeURL:      item.StrBadge.String(),
		CurrentSeason: item.StrCurrentSeason.String(),
	}
}

// kickoffTime keeps "HH:MM" from "HH:MM:SS".
func kickoffTime(raw string) string {
	if len(raw) > 5 {
		return raw[:5]
	}
	return raw
}

func optionalScore(raw flexString) *int {
	v, ok := raw.Int()
	if !ok {
		return nil
	}
	return &v
}
