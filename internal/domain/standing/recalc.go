package standing

import (
	"sort"

	"github.com/riskibarqy/football-league/internal/domain/match"
)

// Recalculation is the outcome of rebuilding a competition from scratch.
type Recalculation struct {
	Rows             []Standing
	MatchesProcessed int
}

// Recalculate rebuilds every row from zero by applying each finished match of
// the competition once with its stored score. Matches involving a team that
// has no row are skipped. Rows are returned ordered by team id.
func Recalculate(competitionID string, teamIDs []string, matches []match.Match) Recalculation {
	rows := make(map[string]*Standing, len(teamIDs))
	for _, teamID := range teamIDs {
		if _, exists := rows[teamID]; exists {
			continue
		}
		row := New(competitionID, teamID)
		rows[teamID] = &row
	}

	processed := 0
	for _, item := range matches {
		if item.CompetitionID != competitionID || !item.IsFinished() {
			continue
		}
		home, okHome := rows[item.HomeTeamID]
		away, okAway := rows[item.AwayTeamID]
		if !okHome || !okAway {
			continue
		}
		ApplyResult(home, away, item.Score())
		processed++
	}

	out := make([]Standing, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].teamID < out[j].teamID
	})

	return Recalculation{Rows: out, MatchesProcessed: processed}
}
