package matchevent

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

type Kind string

const (
	KindGoal            Kind = "GOAL"
	KindOwnGoal         Kind = "OWN_GOAL"
	KindAssist          Kind = "ASSIST"
	KindYellowCard      Kind = "YELLOW_CARD"
	KindRedCard         Kind = "RED_CARD"
	KindSecondYellow    Kind = "SECOND_YELLOW"
	KindSubstitutionIn  Kind = "SUBSTITUTION_IN"
	KindSubstitutionOut Kind = "SUBSTITUTION_OUT"
	KindPenaltyScored   Kind = "PENALTY_SCORED"
	KindPenaltyMissed   Kind = "PENALTY_MISSED"
)

var allKinds = map[Kind]struct{}{
	KindGoal:            {},
	KindOwnGoal:         {},
	KindAssist:          {},
	KindYellowCard:      {},
	KindRedCard:         {},
	KindSecondYellow:    {},
	KindSubstitutionIn:  {},
	KindSubstitutionOut: {},
	KindPenaltyScored:   {},
	KindPenaltyMissed:   {},
}

const (
	MinMinute      = 1
	MaxMinute      = 120
	MinExtraMinute = 1
	MaxExtraMinute = 15
)

var (
	ErrInvalidMinute = errors.New("invalid event minute")
	ErrInvalidEvent  = errors.New("invalid match event")
)

// Event is one entry of a match ledger. Events are never edited, only
// created and deleted.
type Event struct {
	ID              string
	MatchID         string
	TeamID          string
	PlayerID        string
	RelatedPlayerID string
	Kind            Kind
	Minute          int
	ExtraMinute     *int
	Description     string
	CreatedAt       time.Time
}

func (e Event) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return errors.Wrap(ErrInvalidEvent, "event id is required")
	}
	if strings.TrimSpace(e.MatchID) == "" {
		return errors.Wrap(ErrInvalidEvent, "event match id is required")
	}
	if strings.TrimSpace(e.TeamID) == "" {
		return errors.Wrap(ErrInvalidEvent, "event team id is required")
	}
	if strings.TrimSpace(e.PlayerID) == "" {
		return errors.Wrap(ErrInvalidEvent, "event player id is required")
	}
	if !IsKnownKind(e.Kind) {
		return errors.Wrapf(ErrInvalidEvent, "unknown event kind %q", e.Kind)
	}

	return ValidateTiming(e.Minute, e.ExtraMinute)
}

func IsKnownKind(kind Kind) bool {
	_, ok := allKinds[kind]
	return ok
}

// ExtraMinuteValue returns the stoppage minute, 0 when absent.
func (e Event) ExtraMinuteValue() int {
	if e.ExtraMinute == nil {
		return 0
	}
	return *e.ExtraMinute
}

// Less orders events by minute, extra minute, creation time and id.
func (e Event) Less(other Event) bool {
	if e.Minute != other.Minute {
		return e.Minute < other.Minute
	}
	if e.ExtraMinuteValue() != other.ExtraMinuteValue() {
		return e.ExtraMinuteValue() < other.ExtraMinuteValue()
	}
	if !e.CreatedAt.Equal(other.CreatedAt) {
		return e.CreatedAt.Before(other.CreatedAt)
	}
	return e.ID < other.ID
}
