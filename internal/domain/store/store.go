// Package store describes the transactional unit of work every command runs in.
package store

import (
	"context"

	"github.com/riskibarqy/football-league/internal/domain/coach"
	"github.com/riskibarqy/football-league/internal/domain/competition"
	"github.com/riskibarqy/football-league/internal/domain/match"
	"github.com/riskibarqy/football-league/internal/domain/matchevent"
	"github.com/riskibarqy/football-league/internal/domain/player"
	"github.com/riskibarqy/football-league/internal/domain/standing"
	"github.com/riskibarqy/football-league/internal/domain/team"
)

// Repositories is the set of repositories bound to one unit of work.
type Repositories struct {
	Competitions competition.Repository
	Teams        team.Repository
	Players      player.Repository
	Coaches      coach.Repository
	Matches      match.Repository
	Lineups      match.LineupRepository
	Events       matchevent.Repository
	Standings    standing.Repository
}

// TxRunner runs fn inside a single transaction. Any error returned by fn
// rolls back every write made through repos.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
