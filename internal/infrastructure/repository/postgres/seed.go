package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-league/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/football-league/internal/platform/querybuilder"
)

type competitionInsertModel struct {
	PublicID       string     `db:"public_id"`
	Name           string     `db:"name"`
	Season         string     `db:"season"`
	StartDate      *time.Time `db:"start_date"`
	EndDate        *time.Time `db:"end_date"`
	Status         string     `db:"status"`
	TiebreakPolicy string     `db:"tiebreak_policy"`
}

type teamInsertModel struct {
	PublicID    string `db:"public_id"`
	Name        string `db:"name"`
	Short       string `db:"short"`
	CountryCode string `db:"country_code"`
}

type playerInsertModel struct {
	PublicID     string `db:"public_id"`
	TeamPublicID string `db:"team_public_id"`
	Name         string `db:"name"`
	Position     string `db:"position"`
	ShirtNumber  int    `db:"shirt_number"`
}

type coachAssignmentInsertModel struct {
	CoachPublicID string     `db:"coach_public_id"`
	TeamPublicID  string     `db:"team_public_id"`
	StartDate     time.Time  `db:"start_date"`
	EndDate       *time.Time `db:"end_date"`
}

// BootstrapSeed loads seed into an empty database. It is a no-op once any
// competition exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, seed memory.Seed) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM competitions WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count competitions for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	batches := []struct {
		table  string
		models []any
	}{
		{table: "competitions", models: competitionSeedModels(seed)},
		{table: "teams", models: teamSeedModels(seed)},
		{table: "players", models: playerSeedModels(seed)},
		{table: "coach_assignments", models: coachSeedModels(seed)},
	}
	for _, batch := range batches {
		if len(batch.models) == 0 {
			continue
		}
		query, args, err := qb.InsertModels(batch.table, batch.models, "ON CONFLICT DO NOTHING")
		if err != nil {
			return fmt.Errorf("build seed %s query: %w", batch.table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed %s: %w", batch.table, err)
		}
	}

	standings := NewStandingRepository(tx)
	for _, row := range seed.Standings {
		if err := standings.Create(ctx, row); err != nil {
			return fmt.Errorf("seed standings: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}

func competitionSeedModels(seed memory.Seed) []any {
	out := make([]any, 0, len(seed.Competitions))
	for _, item := range seed.Competitions {
		model := competitionInsertModel{
			PublicID:       item.ID,
			Name:           item.Name,
			Season:         item.Season,
			Status:         string(item.Status),
			TiebreakPolicy: string(item.TiebreakPolicy),
		}
		if !item.StartDate.IsZero() {
			start := item.StartDate
			model.StartDate = &start
		}
		if !item.EndDate.IsZero() {
			end := item.EndDate
			model.EndDate = &end
		}
		out = append(out, model)
	}
	return out
}

func teamSeedModels(seed memory.Seed) []any {
	out := make([]any, 0, len(seed.Teams))
	for _, item := range seed.Teams {
		out = append(out, teamInsertModel{
			PublicID:    item.ID,
			Name:        item.Name,
			Short:       item.Short,
			CountryCode: item.CountryCode,
		})
	}
	return out
}

func playerSeedModels(seed memory.Seed) []any {
	out := make([]any, 0, len(seed.Players))
	for _, item := range seed.Players {
		out = append(out, playerInsertModel{
			PublicID:     item.ID,
			TeamPublicID: item.TeamID,
			Name:         item.Name,
			Position:     string(item.Position),
			ShirtNumber:  item.ShirtNumber,
		})
	}
	return out
}

func coachSeedModels(seed memory.Seed) []any {
	out := make([]any, 0, len(seed.Coaches))
	for _, item := range seed.Coaches {
		out = append(out, coachAssignmentInsertModel{
			CoachPublicID: item.CoachID,
			TeamPublicID:  item.TeamID,
			StartDate:     item.StartDate,
			EndDate:       item.EndDate,
		})
	}
	return out
}
