package postgres

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-league/internal/domain/matchevent"
	qb "github.com/riskibarqy/football-league/internal/platform/querybuilder"
)

type EventRepository struct {
	db queryer
}

func NewEventRepository(db queryer) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, items ...matchevent.Event) error {
	if len(items) == 0 {
		return nil
	}

	models := make([]any, 0, len(items))
	for _, item := range items {
		models = append(models, eventTableModel{
			PublicID:              item.ID,
			MatchPublicID:         item.MatchID,
			TeamPublicID:          item.TeamID,
			PlayerPublicID:        item.PlayerID,
			RelatedPlayerPublicID: item.RelatedPlayerID,
			Kind:                  string(item.Kind),
			Minute:                item.Minute,
			ExtraMinute:           intPtrToNullInt64(item.ExtraMinute),
			Description:           item.Description,
			CreatedAt:             item.CreatedAt.UTC(),
		})
	}
	query, args, err := qb.InsertModels("match_events", models, "")
	if err != nil {
		return fmt.Errorf("build insert events query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "insert %d events match=%s", len(items), items[0].MatchID)
	}
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, matchID, eventID string) (matchevent.Event, bool, error) {
	query, args, err := qb.Select("*").From("match_events").
		Where(
			qb.Eq("match_public_id", matchID),
			qb.Eq("public_id", eventID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return matchevent.Event{}, false, fmt.Errorf("build select event query: %w", err)
	}

	var row eventTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return matchevent.Event{}, false, nil
		}
		return matchevent.Event{}, false, errors.Wrapf(err, "select event=%s", eventID)
	}
	return eventFromRow(row), true, nil
}

func (r *EventRepository) ListByMatch(ctx context.Context, matchID string) ([]matchevent.Event, error) {
	query, args, err := qb.Select("*").From("match_events").
		Where(qb.Eq("match_public_id", matchID)).
		OrderBy("minute", "COALESCE(extra_minute, 0)", "created_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list events query: %w", err)
	}

	var rows []eventTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list events match=%s: %w", matchID, err)
	}

	out := make([]matchevent.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, eventFromRow(row))
	}
	return out, nil
}

func (r *EventRepository) CountByPlayerAndKind(ctx context.Context, matchID, playerID string, kind matchevent.Kind) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From("match_events").
		Where(
			qb.Eq("match_public_id", matchID),
			qb.Eq("player_public_id", playerID),
			qb.Eq("kind", string(kind)),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count events query: %w", err)
	}

	var count int
	if err := sqlx.GetContext(ctx, r.db, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count events match=%s player=%s kind=%s: %w", matchID, playerID, kind, err)
	}
	return count, nil
}

func (r *EventRepository) Delete(ctx context.Context, matchID, eventID string) error {
	query, args, err := qb.DeleteFrom("match_events").
		Where(
			qb.Eq("match_public_id", matchID),
			qb.Eq("public_id", eventID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete event query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "delete event=%s", eventID)
	}
	return nil
}

func (r *EventRepository) DeleteByMatch(ctx context.Context, matchID string) error {
	query, args, err := qb.DeleteFrom("match_events").
		Where(qb.Eq("match_public_id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete events query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "delete events match=%s", matchID)
	}
	return nil
}

func eventFromRow(row eventTableModel) matchevent.Event {
	return matchevent.Event{
		ID:              row.PublicID,
		MatchID:         row.MatchPublicID,
		TeamID:          row.TeamPublicID,
		PlayerID:        row.PlayerPublicID,
		RelatedPlayerID: row.RelatedPlayerPublicID,
		Kind:            matchevent.Kind(row.Kind),
		Minute:          row.Minute,
		ExtraMinute:     nullInt64ToIntPtr(row.ExtraMinute),
		Description:     row.Description,
		CreatedAt:       row.CreatedAt.UTC(),
	}
}
