package match

import (
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	RequiredStarters = 11
	MinSubstitutes   = 1
	MaxJerseyNumber  = 99
)

var (
	// ErrLineupIncomplete is returned by the lineup gate at kickoff.
	ErrLineupIncomplete = errors.New("lineup does not satisfy kickoff requirements")
	// ErrInvalidLineup is returned when a submitted lineup is malformed.
	ErrInvalidLineup = errors.New("invalid lineup")
)

// LineupEntry is one player named on a team sheet.
type LineupEntry struct {
	MatchID      string
	TeamID       string
	PlayerID     string
	IsStarter    bool
	JerseyNumber int
	Position     string
}

// ValidateLineupGate requires exactly 11 starters and at least one
// substitute for each side.
func ValidateLineupGate(homeTeamID, awayTeamID string, entries []LineupEntry) error {
	sides := []struct {
		side   Side
		teamID string
	}{
		{side: SideHome, teamID: homeTeamID},
		{side: SideAway, teamID: awayTeamID},
	}

	for _, s := range sides {
		starters, substitutes := countLineup(s.teamID, entries)
		if starters != RequiredStarters {
			return errors.Wrapf(ErrLineupIncomplete,
				"%s side (team %s) has %d starters, exactly %d required",
				s.side, s.teamID, starters, RequiredStarters)
		}
		if substitutes < MinSubstitutes {
			return errors.Wrapf(ErrLineupIncomplete,
				"%s side (team %s) has %d substitutes, at least %d required",
				s.side, s.teamID, substitutes, MinSubstitutes)
		}
	}

	return nil
}

func countLineup(teamID string, entries []LineupEntry) (starters, substitutes int) {
	for _, item := range entries {
		if item.TeamID != teamID {
			continue
		}
		if item.IsStarter {
			starters++
		} else {
			substitutes++
		}
	}
	return starters, substitutes
}

// ValidateTeamSheet checks a single team's submitted lineup. A sheet may be
// partial before kickoff, but never has more than 11 starters, duplicate
// players or duplicate jersey numbers.
func ValidateTeamSheet(teamID string, entries []LineupEntry) error {
	if len(entries) == 0 {
		return errors.Wrap(ErrInvalidLineup, "lineup must contain at least one player")
	}

	players := make(map[string]struct{}, len(entries))
	jerseys := make(map[int]string, len(entries))
	starters := 0
	for _, item := range entries {
		playerID := strings.TrimSpace(item.PlayerID)
		if playerID == "" {
			return errors.Wrap(ErrInvalidLineup, "player id cannot be empty")
		}
		if item.TeamID != teamID {
			return errors.Wrapf(ErrInvalidLineup, "player %s is listed for team %s, expected %s", playerID, item.TeamID, teamID)
		}
		if _, exists := players[playerID]; exists {
			return errors.Wrapf(ErrInvalidLineup, "duplicate player %s", playerID)
		}
		players[playerID] = struct{}{}

		if item.JerseyNumber < 1 || item.JerseyNumber > MaxJerseyNumber {
			return errors.Wrapf(ErrInvalidLineup, "jersey number %d for player %s must be between 1 and %d", item.JerseyNumber, playerID, MaxJerseyNumber)
		}
		if other, exists := jerseys[item.JerseyNumber]; exists {
			return errors.Wrapf(ErrInvalidLineup, "duplicate jersey number %d for players %s and %s", item.JerseyNumber, other, playerID)
		}
		jerseys[item.JerseyNumber] = playerID

		if item.IsStarter {
			starters++
		}
	}
	if starters > RequiredStarters {
		return errors.Wrapf(ErrInvalidLineup, "lineup has %d starters, at most %d allowed", starters, RequiredStarters)
	}

	return nil
}
