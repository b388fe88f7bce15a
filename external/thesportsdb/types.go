package thesportsdb

import (
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
)

// flexString accepts JSON strings, numbers, booleans and null. The API is
// inconsistent about quoting numeric fields.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	switch {
	case text == "" || text == "null":
		*f = ""
	case strings.HasPrefix(text, `"`):
		var s string
		if err := sonic.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
	default:
		*f = flexString(text)
	}
	return nil
}

func (f flexString) String() string {
	return strings.TrimSpace(string(f))
}

func (f flexString) Int() (int, bool) {
	v, err := strconv.Atoi(f.String())
	if err != nil {
		return 0, false
	}
	return v, true
}

func (f flexString) IntOrZero() int {
	v, _ := f.Int()
	return v
}

// Truthy treats empty, "no", "false" and "0" as false.
func (f flexString) Truthy() bool {
	switch strings.ToLower(f.String()) {
	case "", "no", "n", "false", "0":
		return false
	default:
		return true
	}
}

type eventsEnvelope struct {
	Events []eventItem `json:"events"`
}

type eventItem struct {
	IDEvent          flexString `json:"idEvent"`
	IDLeague         flexString `json:"idLeague"`
	StrLeague        flexString `json:"strLeague"`
	StrLeagueBadge   flexString `json:"strLeagueBadge"`
	StrSport         flexString `json:"strSport"`
	StrHomeTeam      flexString `json:"strHomeTeam"`
	StrAwayTeam      flexString `json:"strAwayTeam"`
	IDHomeTeam       flexString `json:"idHomeTeam"`
	IDAwayTeam       flexString `json:"idAwayTeam"`
	StrHomeTeamBadge flexString `json:"strHomeTeamBadge"`
	StrAwayTeamBadge flexString `json:"strAwayTeamBadge"`
	IntHomeScore     flexString `json:"intHomeScore"`
	IntAwayScore     flexString `json:"intAwayScore"`
	DateEvent        flexString `json:"dateEvent"`
	StrTime          flexString `json:"strTime"`
	StrStatus        flexString `json:"strStatus"`
	StrThumb         flexString `json:"strThumb"`
	StrVideo         flexString `json:"strVideo"`
	StrVenue         flexString `json:"strVenue"`
	StrCity          flexString `json:"strCity"`
}

type timelineEnvelope struct {
	Timeline []timelineItem `json:"timeline"`
}

type timelineItem struct {
	IntTime   flexString `json:"intTime"`
	StrEvent  flexString `json:"strEvent"`
	StrPlayer flexString `json:"strPlayer"`
	StrHome   flexString `json:"strHome"`
}

type tableEnvelope struct {
	Table []tableItem `json:"table"`
}

type tableItem struct {
	IDStanding        flexString `json:"idStanding"`
	IntRank           flexString `json:"intRank"`
	IDTeam            flexString `json:"idTeam"`
	StrTeam           flexString `json:"strTeam"`
	StrTeamBadge      flexString `json:"strTeamBadge"`
	IDLeague          flexString `json:"idLeague"`
	StrLeague         flexString `json:"strLeague"`
	StrSeason         flexString `json:"strSeason"`
	IntPlayed         flexString `json:"intPlayed"`
	IntWin            flexString `json:"intWin"`
	IntDraw           flexString `json:"intDraw"`
	IntLoss           flexString `json:"intLoss"`
	IntGoalsFor       flexString `json:"intGoalsFor"`
	IntGoalsAgainst   flexString `json:"intGoalsAgainst"`
	IntGoalDifference flexString `json:"intGoalDifference"`
	IntPoints         flexString `json:"intPoints"`
}

type leaguesEnvelope struct {
	Leagues []leagueItem `json:"leagues"`
}

type leagueItem struct {
	IDLeague           flexString `json:"idLeague"`
	StrLeague          flexString `json:"strLeague"`
	StrSport           flexString `json:"strSport"`
	StrLeagueAlternate flexString `json:"strLeagueAlternate"`
	StrCountry         flexString `json:"strCountry"`
	StrBadge           flexString `json:"strBadge"`
	StrCurrentSeason   flexString `json:"strCurrentSeason"`
}
