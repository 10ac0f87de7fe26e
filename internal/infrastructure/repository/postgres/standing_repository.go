package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-league/internal/domain/standing"
	qb "github.com/riskibarqy/football-league/internal/platform/querybuilder"
)

var standingCounterColumns = []string{
	"points", "played", "won", "drawn", "lost", "goals_for", "goals_against", "updated_at",
}

type StandingRepository struct {
	db  queryer
	now func() time.Time
}

func NewStandingRepository(db queryer) *StandingRepository {
	return &StandingRepository{db: db, now: time.Now}
}

func (r *StandingRepository) ListByCompetition(ctx context.Context, competitionID string) ([]standing.Standing, error) {
	query, args, err := qb.Select("*").From("standings").
		Where(qb.Eq("competition_public_id", competitionID)).
		OrderBy("team_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list standings query: %w", err)
	}

	var rows []standingTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list standings competition=%s: %w", competitionID, err)
	}

	out := make([]standing.Standing, 0, len(rows))
	for _, row := range rows {
		out = append(out, standingFromRow(row))
	}
	return out, nil
}

func (r *StandingRepository) GetForUpdate(ctx context.Context, competitionID, teamID string) (standing.Standing, bool, error) {
	query, args, err := qb.Select("*").From("standings").
		Where(
			qb.Eq("competition_public_id", competitionID),
			qb.Eq("team_public_id", teamID),
		).
		ForUpdate().
		ToSQL()
	if err != nil {
		return standing.Standing{}, false, fmt.Errorf("build lock standing query: %w", err)
	}

	var row standingTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return standing.Standing{}, false, nil
		}
		return standing.Standing{}, false, errors.Wrapf(err, "lock standing competition=%s team=%s", competitionID, teamID)
	}
	return standingFromRow(row), true, nil
}

func (r *StandingRepository) Create(ctx context.Context, item standing.Standing) error {
	query, args, err := qb.InsertModel("standings", r.toRow(item), "")
	if err != nil {
		return fmt.Errorf("build insert standing query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("standing competition=%s team=%s already exists: %w", item.CompetitionID(), item.TeamID(), err)
		}
		return errors.Wrapf(err, "insert standing competition=%s team=%s", item.CompetitionID(), item.TeamID())
	}
	return nil
}

func (r *StandingRepository) Save(ctx context.Context, items ...standing.Standing) error {
	for _, item := range items {
		rec := item.Record()
		query, args, err := qb.Update("standings").
			Set("points", rec.Points).
			Set("played", rec.Played).
			Set("won", rec.Won).
			Set("drawn", rec.Drawn).
			Set("lost", rec.Lost).
			Set("goals_for", rec.GoalsFor).
			Set("goals_against", rec.GoalsAgainst).
			Set("updated_at", r.now().UTC()).
			Where(
				qb.Eq("competition_public_id", rec.CompetitionID),
				qb.Eq("team_public_id", rec.TeamID),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update standing query: %w", err)
		}
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return errors.Wrapf(err, "update standing competition=%s team=%s", rec.CompetitionID, rec.TeamID)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("standing competition=%s team=%s not found", rec.CompetitionID, rec.TeamID)
		}
	}
	return nil
}

// ReplaceByCompetition upserts every row in one statement. Rows not in items
// are left alone: recalculation always covers every registered team.
func (r *StandingRepository) ReplaceByCompetition(ctx context.Context, competitionID string, items []standing.Standing) error {
	if len(items) == 0 {
		return nil
	}

	models := make([]any, 0, len(items))
	for _, item := range items {
		if item.CompetitionID() != competitionID {
			return fmt.Errorf("standing for competition %s cannot replace rows of %s", item.CompetitionID(), competitionID)
		}
		models = append(models, r.toRow(item))
	}
	suffix := "ON CONFLICT (competition_public_id, team_public_id) DO UPDATE SET " + qb.ExcludedSet(standingCounterColumns...)
	query, args, err := qb.InsertModels("standings", models, suffix)
	if err != nil {
		return fmt.Errorf("build upsert standings query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "upsert standings competition=%s", competitionID)
	}
	return nil
}

func (r *StandingRepository) toRow(item standing.Standing) standingTableModel {
	rec := item.Record()
	return standingTableModel{
		CompetitionPublicID: rec.CompetitionID,
		TeamPublicID:        rec.TeamID,
		Points:              rec.Points,
		Played:              rec.Played,
		Won:                 rec.Won,
		Drawn:               rec.Drawn,
		Lost:                rec.Lost,
		GoalsFor:            rec.GoalsFor,
		GoalsAgainst:        rec.GoalsAgainst,
		UpdatedAt:           r.now().UTC(),
	}
}

func standingFromRow(row standingTableModel) standing.Standing {
	return standing.FromRecord(standing.Record{
		CompetitionID: row.CompetitionPublicID,
		TeamID:        row.TeamPublicID,
		Points:        row.Points,
		Played:        row.Played,
		Won:           row.Won,
		Drawn:         row.Drawn,
		Lost:          row.Lost,
		GoalsFor:      row.GoalsFor,
		GoalsAgainst:  row.GoalsAgainst,
	})
}
