package coach

import "context"

// Repository exposes coach assignment history lookups.
type Repository interface {
	ListByTeam(ctx context.Context, teamID string) ([]Assignment, error)
}
