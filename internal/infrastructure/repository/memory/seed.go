package memory

import (
	"fmt"
	"time"

	"github.com/riskibarqy/football-league/internal/domain/coach"
	"github.com/riskibarqy/football-league/internal/domain/competition"
	"github.com/riskibarqy/football-league/internal/domain/player"
	"github.com/riskibarqy/football-league/internal/domain/standing"
	"github.com/riskibarqy/football-league/internal/domain/team"
)

const (
	CompetitionIDLiga1Indonesia = "idn-liga-1-2025"
	CompetitionIDPremierLeague  = "eng-premier-league-2025"
)

// Seed is the initial content of a Store.
type Seed struct {
	Competitions []competition.Competition
	Teams        []team.Team
	Players      []player.Player
	Coaches      []coach.Assignment
	Standings    []standing.Standing
}

// Merge appends other to s. Later entries with the same id win on load.
func (s Seed) Merge(other Seed) Seed {
	return Seed{
		Competitions: append(append([]competition.Competition(nil), s.Competitions...), other.Competitions...),
		Teams:        append(append([]team.Team(nil), s.Teams...), other.Teams...),
		Players:      append(append([]player.Player(nil), s.Players...), other.Players...),
		Coaches:      append(append([]coach.Assignment(nil), s.Coaches...), other.Coaches...),
		Standings:    append(append([]standing.Standing(nil), s.Standings...), other.Standings...),
	}
}

// DefaultSeed is the development dataset: two competitions with registered
// teams, full squads and coach history.
func DefaultSeed() Seed {
	seasonStart := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
	seasonEnd := time.Date(2026, time.May, 31, 0, 0, 0, 0, time.UTC)

	seed := Seed{
		Competitions: []competition.Competition{
			{
				ID:             CompetitionIDLiga1Indonesia,
				Name:           "Liga 1 Indonesia",
				Season:         "2025/2026",
				StartDate:      seasonStart,
				EndDate:        seasonEnd,
				Status:         competition.StatusInProgress,
				TiebreakPolicy: competition.TiebreakHeadToHeadFirst,
			},
			{
				ID:             CompetitionIDPremierLeague,
				Name:           "Premier League",
				Season:         "2025/2026",
				StartDate:      seasonStart,
				EndDate:        seasonEnd,
				Status:         competition.StatusInProgress,
				TiebreakPolicy: competition.TiebreakGoalDifferenceFirst,
			},
		},
		Teams: []team.Team{
			{ID: "idn-persija", Name: "Persija Jakarta", Short: "PSJ", CountryCode: "ID"},
			{ID: "idn-persib", Name: "Persib Bandung", Short: "PSB", CountryCode: "ID"},
			{ID: "idn-persebaya", Name: "Persebaya Surabaya", Short: "PRB", CountryCode: "ID"},
			{ID: "idn-baliutd", Name: "Bali United", Short: "BU", CountryCode: "ID"},
			{ID: "eng-ars", Name: "Arsenal", Short: "ARS", CountryCode: "GB"},
			{ID: "eng-liv", Name: "Liverpool", Short: "LIV", CountryCode: "GB"},
			{ID: "eng-mci", Name: "Manchester City", Short: "MCI", CountryCode: "GB"},
			{ID: "eng-che", Name: "Chelsea", Short: "CHE", CountryCode: "GB"},
		},
		Coaches: []coach.Assignment{
			{CoachID: "coach-carlos-pena", TeamID: "idn-persija", StartDate: seasonStart},
			{CoachID: "coach-bojan-hodak", TeamID: "idn-persib", StartDate: seasonStart},
			{CoachID: "coach-paul-munster", TeamID: "idn-persebaya", StartDate: seasonStart},
			{CoachID: "coach-stefano-cugurra", TeamID: "idn-baliutd", StartDate: seasonStart},
			{CoachID: "coach-mikel-arteta", TeamID: "eng-ars", StartDate: seasonStart},
			{CoachID: "coach-arne-slot", TeamID: "eng-liv", StartDate: seasonStart},
			{CoachID: "coach-pep-guardiola", TeamID: "eng-mci", StartDate: seasonStart},
			{CoachID: "coach-enzo-maresca", TeamID: "eng-che", StartDate: seasonStart},
		},
	}

	registrations := map[string][]string{
		CompetitionIDLiga1Indonesia: {"idn-persija", "idn-persib", "idn-persebaya", "idn-baliutd"},
		CompetitionIDPremierLeague:  {"eng-ars", "eng-liv", "eng-mci", "eng-che"},
	}
	for competitionID, teamIDs := range registrations {
		for _, teamID := range teamIDs {
			seed.Standings = append(seed.Standings, standing.New(competitionID, teamID))
		}
	}
	for _, item := range seed.Teams {
		seed.Players = append(seed.Players, Squad(item.ID)...)
	}

	return seed
}

// squadShape is a 4-4-2 starting eleven followed by five substitutes.
var squadShape = []player.Position{
	player.PositionGoalkeeper,
	player.PositionDefender, player.PositionDefender, player.PositionDefender, player.PositionDefender,
	player.PositionMidfielder, player.PositionMidfielder, player.PositionMidfielder, player.PositionMidfielder,
	player.PositionForward, player.PositionForward,
	player.PositionGoalkeeper, player.PositionDefender, player.PositionMidfielder, player.PositionForward,
	player.PositionForward,
}

// Squad generates a sixteen man squad for teamID with ids "<team>-p01".."<team>-p16"
// and shirt numbers matching the suffix.
func Squad(teamID string) []player.Player {
	out := make([]player.Player, 0, len(squadShape))
	for i, position := range squadShape {
		number := i + 1
		out = append(out, player.Player{
			ID:          SquadPlayerID(teamID, number),
			TeamID:      teamID,
			Name:        fmt.Sprintf("%s Player %d", teamID, number),
			Position:    position,
			ShirtNumber: number,
		})
	}
	return out
}

func SquadPlayerID(teamID string, number int) string {
	return fmt.Sprintf("%s-p%02d", teamID, number)
}
