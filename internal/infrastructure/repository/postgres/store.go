// Package postgres implements the repositories on PostgreSQL through sqlx.
package postgres

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-league/internal/domain/store"
)

// queryer is satisfied by both *sqlx.DB and *sqlx.Tx.
type queryer interface {
	sqlx.ExtContext
}

type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Repositories returns repositories running each statement in its own
// implicit transaction. Use WithinTx for anything that writes.
func (s *Store) Repositories() store.Repositories {
	return repositoriesFor(s.db)
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos store.Repositories) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(ctx, repositoriesFor(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit tx")
	}
	return nil
}

func repositoriesFor(q queryer) store.Repositories {
	return store.Repositories{
		Competitions: NewCompetitionRepository(q),
		Teams:        NewTeamRepository(q),
		Players:      NewPlayerRepository(q),
		Coaches:      NewCoachRepository(q),
		Matches:      NewMatchRepository(q),
		Lineups:      NewLineupRepository(q),
		Events:       NewEventRepository(q),
		Standings:    NewStandingRepository(q),
	}
}
