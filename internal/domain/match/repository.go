package match

import "context"

// Repository exposes match persistence operations.
type Repository interface {
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	// GetForUpdate loads a match and, inside a transaction, locks it until commit.
	GetForUpdate(ctx context.Context, matchID string) (Match, bool, error)
	ListByCompetition(ctx context.Context, competitionID string) ([]Match, error)
	ListFinishedByCompetition(ctx context.Context, competitionID string) ([]Match, error)
	Create(ctx context.Context, item Match) error
	Update(ctx context.Context, item Match) error
	Delete(ctx context.Context, matchID string) error
}

// LineupRepository exposes team sheet persistence operations.
type LineupRepository interface {
	ListByMatch(ctx context.Context, matchID string) ([]LineupEntry, error)
	ReplaceForTeam(ctx context.Context, matchID, teamID string, entries []LineupEntry) error
	DeleteByMatch(ctx context.Context, matchID string) error
}
