package postgres

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-league/internal/domain/match"
	qb "github.com/riskibarqy/football-league/internal/platform/querybuilder"
)

type MatchRepository struct {
	db queryer
}

func NewMatchRepository(db queryer) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	return r.get(ctx, matchID, false)
}

func (r *MatchRepository) GetForUpdate(ctx context.Context, matchID string) (match.Match, bool, error) {
	return r.get(ctx, matchID, true)
}

func (r *MatchRepository) get(ctx context.Context, matchID string, lock bool) (match.Match, bool, error) {
	builder := qb.Select("*").From("matches").
		Where(qb.Eq("public_id", matchID)).
		Limit(1)
	if lock {
		builder.ForUpdate()
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build select match query: %w", err)
	}

	var row matchTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, errors.Wrapf(err, "select match=%s", matchID)
	}
	return matchFromRow(row), true, nil
}

func (r *MatchRepository) ListByCompetition(ctx context.Context, competitionID string) ([]match.Match, error) {
	return r.list(ctx, qb.Eq("competition_public_id", competitionID))
}

func (r *MatchRepository) ListFinishedByCompetition(ctx context.Context, competitionID string) ([]match.Match, error) {
	return r.list(ctx,
		qb.Eq("competition_public_id", competitionID),
		qb.Eq("status", string(match.StatusFinished)),
	)
}

func (r *MatchRepository) list(ctx context.Context, conditions ...qb.Condition) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(conditions...).
		OrderBy("scheduled_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}

	var rows []matchTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) error {
	query, args, err := qb.InsertModel("matches", matchInsertModel{
		PublicID:            item.ID,
		CompetitionPublicID: item.CompetitionID,
		HomeTeamPublicID:    item.HomeTeamID,
		AwayTeamPublicID:    item.AwayTeamID,
		HomeCoachPublicID:   item.HomeCoachID,
		AwayCoachPublicID:   item.AwayCoachID,
		ScheduledAt:         item.ScheduledAt.UTC(),
		Status:              string(item.Status),
		HomeScore:           item.HomeScore,
		AwayScore:           item.AwayScore,
		Matchday:            item.Matchday,
		Minute:              item.Minute,
		CreatedAt:           item.CreatedAt.UTC(),
		UpdatedAt:           item.UpdatedAt.UTC(),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("match %s already exists: %w", item.ID, err)
		}
		return errors.Wrapf(err, "insert match=%s", item.ID)
	}
	return nil
}

func (r *MatchRepository) Update(ctx context.Context, item match.Match) error {
	query, args, err := qb.Update("matches").
		Set("status", string(item.Status)).
		Set("home_score", item.HomeScore).
		Set("away_score", item.AwayScore).
		Set("minute", item.Minute).
		Set("scheduled_at", item.ScheduledAt.UTC()).
		Set("updated_at", item.UpdatedAt.UTC()).
		Where(qb.Eq("public_id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrapf(err, "update match=%s", item.ID)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("match %s not found", item.ID)
	}
	return nil
}

func (r *MatchRepository) Delete(ctx context.Context, matchID string) error {
	query, args, err := qb.DeleteFrom("matches").
		Where(qb.Eq("public_id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "delete match=%s", matchID)
	}
	return nil
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:            row.PublicID,
		CompetitionID: row.CompetitionPublicID,
		HomeTeamID:    row.HomeTeamPublicID,
		AwayTeamID:    row.AwayTeamPublicID,
		HomeCoachID:   row.HomeCoachPublicID,
		AwayCoachID:   row.AwayCoachPublicID,
		ScheduledAt:   row.ScheduledAt.UTC(),
		Status:        match.Status(row.Status),
		HomeScore:     row.HomeScore,
		AwayScore:     row.AwayScore,
		Matchday:      row.Matchday,
		Minute:        row.Minute,
		CreatedAt:     row.CreatedAt.UTC(),
		UpdatedAt:     row.UpdatedAt.UTC(),
	}
}

type LineupRepository struct {
	db queryer
}

func NewLineupRepository(db queryer) *LineupRepository {
	return &LineupRepository{db: db}
}

func (r *LineupRepository) ListByMatch(ctx context.Context, matchID string) ([]match.LineupEntry, error) {
	query, args, err := qb.Select("*").From("match_lineups").
		Where(qb.Eq("match_public_id", matchID)).
		OrderBy("team_public_id", "is_starter DESC", "jersey_number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list lineups query: %w", err)
	}

	var rows []lineupTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list lineups match=%s: %w", matchID, err)
	}

	out := make([]match.LineupEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, match.LineupEntry{
			MatchID:      row.MatchPublicID,
			TeamID:       row.TeamPublicID,
			PlayerID:     row.PlayerPublicID,
			IsStarter:    row.IsStarter,
			JerseyNumber: row.JerseyNumber,
			Position:     row.Position,
		})
	}
	return out, nil
}

// ReplaceForTeam must run inside a transaction; the delete and insert are
// otherwise not atomic.
func (r *LineupRepository) ReplaceForTeam(ctx context.Context, matchID, teamID string, entries []match.LineupEntry) error {
	clearQuery, clearArgs, err := qb.DeleteFrom("match_lineups").
		Where(
			qb.Eq("match_public_id", matchID),
			qb.Eq("team_public_id", teamID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear lineup query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return errors.Wrapf(err, "clear lineup match=%s team=%s", matchID, teamID)
	}
	if len(entries) == 0 {
		return nil
	}

	models := make([]any, 0, len(entries))
	for _, item := range entries {
		models = append(models, lineupTableModel{
			MatchPublicID:  matchID,
			TeamPublicID:   teamID,
			PlayerPublicID: item.PlayerID,
			IsStarter:      item.IsStarter,
			JerseyNumber:   item.JerseyNumber,
			Position:       item.Position,
		})
	}
	query, args, err := qb.InsertModels("match_lineups", models, "")
	if err != nil {
		return fmt.Errorf("build insert lineup query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "insert lineup match=%s team=%s", matchID, teamID)
	}
	return nil
}

func (r *LineupRepository) DeleteByMatch(ctx context.Context, matchID string) error {
	query, args, err := qb.DeleteFrom("match_lineups").
		Where(qb.Eq("match_public_id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete lineups query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "delete lineups match=%s", matchID)
	}
	return nil
}
