package matchevent

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/football-league/internal/domain/match"
)

// ValidateTiming checks minute and optional stoppage minute ranges.
func ValidateTiming(minute int, extraMinute *int) error {
	if minute < MinMinute || minute > MaxMinute {
		return errors.Wrapf(ErrInvalidMinute, "minute %d must be between %d and %d", minute, MinMinute, MaxMinute)
	}
	if extraMinute != nil && (*extraMinute < MinExtraMinute || *extraMinute > MaxExtraMinute) {
		return errors.Wrapf(ErrInvalidMinute, "extra minute %d must be between %d and %d", *extraMinute, MinExtraMinute, MaxExtraMinute)
	}
	return nil
}

// GoalKind picks the goal event kind. Own goal takes precedence over penalty.
func GoalKind(isOwnGoal, isPenalty bool) Kind {
	switch {
	case isOwnGoal:
		return KindOwnGoal
	case isPenalty:
		return KindPenaltyScored
	default:
		return KindGoal
	}
}

// CreditsAssist reports whether an assist may accompany a goal of this kind.
func CreditsAssist(kind Kind) bool {
	return kind == KindGoal
}

// ResolveCardKind escalates a non-red card to a second yellow when the
// player already holds a yellow in the match.
func ResolveCardKind(isRed bool, priorYellows int) Kind {
	switch {
	case isRed:
		return KindRedCard
	case priorYellows > 0:
		return KindSecondYellow
	default:
		return KindYellowCard
	}
}

func IsScoring(kind Kind) bool {
	switch kind {
	case KindGoal, KindPenaltyScored, KindOwnGoal:
		return true
	default:
		return false
	}
}

// ScoreDelta is the score contribution of an event to its match. Own goals
// count for the side opposite to the event's team.
func ScoreDelta(event Event, m match.Match) (match.Score, error) {
	if !IsScoring(event.Kind) {
		return match.Score{}, nil
	}

	side, ok := m.SideOf(event.TeamID)
	if !ok {
		return match.Score{}, errors.Wrapf(ErrInvalidEvent, "team %s does not play in match %s", event.TeamID, m.ID)
	}
	if event.Kind == KindOwnGoal {
		side = opposite(side)
	}

	if side == match.SideHome {
		return match.Score{Home: 1}, nil
	}
	return match.Score{Away: 1}, nil
}

func opposite(side match.Side) match.Side {
	if side == match.SideHome {
		return match.SideAway
	}
	return match.SideHome
}

// SortLedger orders events in place by their ledger position.
func SortLedger(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Less(events[j])
	})
}

// ReplayScore derives a match score from its ledger.
func ReplayScore(events []Event, m match.Match) (match.Score, error) {
	var total match.Score
	for _, item := range events {
		delta, err := ScoreDelta(item, m)
		if err != nil {
			return match.Score{}, err
		}
		total.Home += delta.Home
		total.Away += delta.Away
	}
	return total, nil
}
