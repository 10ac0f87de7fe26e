package standing

import "context"

// Repository exposes standings persistence operations.
type Repository interface {
	ListByCompetition(ctx context.Context, competitionID string) ([]Standing, error)
	// GetForUpdate loads one row and, inside a transaction, locks it until commit.
	GetForUpdate(ctx context.Context, competitionID, teamID string) (Standing, bool, error)
	Create(ctx context.Context, item Standing) error
	Save(ctx context.Context, items ...Standing) error
	ReplaceByCompetition(ctx context.Context, competitionID string, items []Standing) error
}
