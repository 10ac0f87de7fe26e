package usecase

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/football-league/internal/domain/match"
	"github.com/riskibarqy/football-league/internal/domain/matchevent"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidState          = errors.New("invalid state")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// classifyDomainError tags domain rule violations with the matching usecase
// sentinel so callers only need to check ErrInvalidState or ErrInvalidInput.
func classifyDomainError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, match.ErrInvalidTransition),
		errors.Is(err, match.ErrLineupIncomplete),
		errors.Is(err, match.ErrNegativeScore):
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	case errors.Is(err, match.ErrInvalidLineup),
		errors.Is(err, matchevent.ErrInvalidMinute),
		errors.Is(err, matchevent.ErrInvalidEvent):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return err
	}
}
