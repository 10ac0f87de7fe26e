package standing

import "github.com/riskibarqy/football-league/internal/domain/match"

const (
	pointsForWin  = 3
	pointsForDraw = 1
)

// ApplyResult adds one match result to both rows.
func ApplyResult(home, away *Standing, score match.Score) {
	accumulate(home, away, score, 1)
}

// RevertResult removes a result previously added with ApplyResult. It must be
// given the same score that was applied.
func RevertResult(home, away *Standing, score match.Score) {
	accumulate(home, away, score, -1)
}

// accumulate is the single arithmetic shared by apply and revert; sign is
// +1 or -1.
func accumulate(home, away *Standing, score match.Score, sign int) {
	if home == nil || away == nil {
		return
	}

	home.played += sign
	away.played += sign
	home.goalsFor += sign * score.Home
	home.goalsAgainst += sign * score.Away
	away.goalsFor += sign * score.Away
	away.goalsAgainst += sign * score.Home

	switch {
	case score.Home > score.Away:
		home.won += sign
		home.points += sign * pointsForWin
		away.lost += sign
	case score.Home < score.Away:
		away.won += sign
		away.points += sign * pointsForWin
		home.lost += sign
	default:
		home.drawn += sign
		away.drawn += sign
		home.points += sign * pointsForDraw
		away.points += sign * pointsForDraw
	}
}

// Correction moves two rows from reflecting Before to reflecting After.
// Callers snapshot Before, mutate the match score, then Apply.
type Correction struct {
	Before match.Score
	After  match.Score
}

func (c Correction) Changed() bool {
	return c.Before != c.After
}

func (c Correction) Apply(home, away *Standing) {
	RevertResult(home, away, c.Before)
	ApplyResult(home, away, c.After)
}
