package standing

import (
	"fmt"
)

// Standing is a team's record in one competition. Counters can only be
// changed through ApplyResult and RevertResult.
type Standing struct {
	competitionID string
	teamID        string
	points        int
	played        int
	won           int
	drawn         int
	lost          int
	goalsFor      int
	goalsAgainst  int
}

// Record is the persisted shape of a Standing.
type Record struct {
	CompetitionID string
	TeamID        string
	Points        int
	Played        int
	Won           int
	Drawn         int
	Lost          int
	GoalsFor      int
	GoalsAgainst  int
}

// New returns the all-zero row created when a team joins a competition.
func New(competitionID, teamID string) Standing {
	return Standing{competitionID: competitionID, teamID: teamID}
}

func FromRecord(r Record) Standing {
	return Standing{
		competitionID: r.CompetitionID,
		teamID:        r.TeamID,
		points:        r.Points,
		played:        r.Played,
		won:           r.Won,
		drawn:         r.Drawn,
		lost:          r.Lost,
		goalsFor:      r.GoalsFor,
		goalsAgainst:  r.GoalsAgainst,
	}
}

func (s Standing) Record() Record {
	return Record{
		CompetitionID: s.competitionID,
		TeamID:        s.teamID,
		Points:        s.points,
		Played:        s.played,
		Won:           s.won,
		Drawn:         s.drawn,
		Lost:          s.lost,
		GoalsFor:      s.goalsFor,
		GoalsAgainst:  s.goalsAgainst,
	}
}

func (s Standing) CompetitionID() string { return s.competitionID }
func (s Standing) TeamID() string        { return s.teamID }
func (s Standing) Points() int           { return s.points }
func (s Standing) Played() int           { return s.played }
func (s Standing) Won() int              { return s.won }
func (s Standing) Drawn() int            { return s.drawn }
func (s Standing) Lost() int             { return s.lost }
func (s Standing) GoalsFor() int         { return s.goalsFor }
func (s Standing) GoalsAgainst() int     { return s.goalsAgainst }

func (s Standing) GoalDifference() int {
	return s.goalsFor - s.goalsAgainst
}

// CheckInvariants verifies played = won + drawn + lost and
// points = 3*won + drawn, and that no counter is negative.
func (s Standing) CheckInvariants() error {
	for name, value := range map[string]int{
		"points":        s.points,
		"played":        s.played,
		"won":           s.won,
		"drawn":         s.drawn,
		"lost":          s.lost,
		"goals for":     s.goalsFor,
		"goals against": s.goalsAgainst,
	} {
		if value < 0 {
			return fmt.Errorf("standing %s/%s: %s is negative (%d)", s.competitionID, s.teamID, name, value)
		}
	}
	if s.played != s.won+s.drawn+s.lost {
		return fmt.Errorf("standing %s/%s: played %d != won %d + drawn %d + lost %d",
			s.competitionID, s.teamID, s.played, s.won, s.drawn, s.lost)
	}
	if s.points != 3*s.won+s.drawn {
		return fmt.Errorf("standing %s/%s: points %d != 3*won %d + drawn %d",
			s.competitionID, s.teamID, s.points, s.won, s.drawn)
	}
	return nil
}

func (s Standing) String() string {
	return fmt.Sprintf("%s: P%d W%d D%d L%d GF%d GA%d Pts%d",
		s.teamID, s.played, s.won, s.drawn, s.lost, s.goalsFor, s.goalsAgainst, s.points)
}
