package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/football-league/internal/domain/match"
	"github.com/riskibarqy/football-league/internal/domain/standing"
	"github.com/riskibarqy/football-league/internal/domain/store"
	"github.com/riskibarqy/football-league/internal/platform/logging"
)

// scoreLedger keeps the two standing rows of a finished match in step with
// its score. It must run inside the same transaction as the match mutation.
type scoreLedger struct {
	logger *logging.Logger
}

func (l scoreLedger) apply(ctx context.Context, repos store.Repositories, m match.Match) error {
	score := m.Score()
	return l.update(ctx, repos, m, "apply", func(home, away *standing.Standing) {
		standing.ApplyResult(home, away, score)
	})
}

func (l scoreLedger) revert(ctx context.Context, repos store.Repositories, m match.Match) error {
	score := m.Score()
	return l.update(ctx, repos, m, "revert", func(home, away *standing.Standing) {
		standing.RevertResult(home, away, score)
	})
}

// compensate moves the rows from correction.Before to correction.After.
func (l scoreLedger) compensate(ctx context.Context, repos store.Repositories, m match.Match, correction standing.Correction) error {
	if !correction.Changed() {
		return nil
	}
	return l.update(ctx, repos, m, "compensate", correction.Apply)
}

func (l scoreLedger) update(
	ctx context.Context,
	repos store.Repositories,
	m match.Match,
	op string,
	fn func(home, away *standing.Standing),
) error {
	// Rows are locked in team id order so two transactions touching the same
	// pair cannot deadlock.
	first, second := m.HomeTeamID, m.AwayTeamID
	if second < first {
		first, second = second, first
	}
	rows := make(map[string]standing.Standing, 2)
	for _, teamID := range []string{first, second} {
		row, exists, err := repos.Standings.GetForUpdate(ctx, m.CompetitionID, teamID)
		if err != nil {
			return fmt.Errorf("lock standing competition=%s team=%s: %w", m.CompetitionID, teamID, err)
		}
		if !exists {
			l.logger.WarnContext(ctx, "standing row missing, result update skipped",
				"operation", op,
				"match_id", m.ID,
				"competition_id", m.CompetitionID,
				"team_id", teamID,
			)
			return nil
		}
		rows[teamID] = row
	}

	home := rows[m.HomeTeamID]
	away := rows[m.AwayTeamID]
	fn(&home, &away)

	if err := repos.Standings.Save(ctx, home, away); err != nil {
		return fmt.Errorf("save standings for match=%s: %w", m.ID, err)
	}
	l.logger.DebugContext(ctx, "standings updated",
		"operation", op,
		"match_id", m.ID,
		"score", m.Score().String(),
	)
	return nil
}
