package matchevent

import "context"

// Repository exposes match ledger persistence operations.
type Repository interface {
	Create(ctx context.Context, items ...Event) error
	GetByID(ctx context.Context, matchID, eventID string) (Event, bool, error)
	ListByMatch(ctx context.Context, matchID string) ([]Event, error)
	CountByPlayerAndKind(ctx context.Context, matchID, playerID string, kind Kind) (int, error)
	Delete(ctx context.Context, matchID, eventID string) error
	DeleteByMatch(ctx context.Context, matchID string) error
}
