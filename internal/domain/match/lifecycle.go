package match

import (
	"time"

	"github.com/cockroachdb/errors"
)

var (
	ErrInvalidTransition = errors.New("invalid match status transition")
	ErrNegativeScore     = errors.New("match score cannot become negative")
)

func transitionError(action string, current Status) error {
	return errors.Wrapf(ErrInvalidTransition, "cannot %s match: current status is %s", action, current)
}

// Start kicks the match off. From SCHEDULED the lineup gate must pass;
// from HALF_TIME the second half begins without a lineup re-check.
func (m *Match) Start(lineups []LineupEntry) error {
	switch m.Status {
	case StatusScheduled:
		if err := ValidateLineupGate(m.HomeTeamID, m.AwayTeamID, lineups); err != nil {
			return err
		}
		m.Status = StatusLive
		m.Minute = firstHalfKickoffMinute
	case StatusHalfTime:
		m.Status = StatusLive
		m.Minute = secondHalfKickoffMinute
	default:
		return transitionError("start", m.Status)
	}
	return nil
}

// HalfTime pauses a live match. The minute is display state only and is kept.
func (m *Match) HalfTime() error {
	if m.Status != StatusLive {
		return transitionError("call half time on", m.Status)
	}
	m.Status = StatusHalfTime
	return nil
}

func (m *Match) End() error {
	if !m.IsInPlay() {
		return transitionError("end", m.Status)
	}
	m.Status = StatusFinished
	m.Minute = fullTimeMinute
	return nil
}

func (m *Match) Postpone() error {
	if m.Status != StatusScheduled {
		return transitionError("postpone", m.Status)
	}
	m.Status = StatusPostponed
	return nil
}

func (m *Match) Cancel() error {
	if m.Status != StatusScheduled && m.Status != StatusPostponed {
		return transitionError("cancel", m.Status)
	}
	m.Status = StatusCancelled
	return nil
}

func (m *Match) Reschedule(at time.Time) error {
	if m.Status != StatusPostponed {
		return transitionError("reschedule", m.Status)
	}
	if at.IsZero() {
		return errors.New("reschedule date is required")
	}
	m.Status = StatusScheduled
	m.ScheduledAt = at
	return nil
}

// CheckDeletable rejects deletion of a match that is being played.
func (m Match) CheckDeletable() error {
	if m.IsInPlay() {
		return transitionError("delete", m.Status)
	}
	return nil
}

// AcceptsGoalEvents gates goals, penalties and substitutions. Finished
// matches stay open so history can be corrected.
func (m Match) AcceptsGoalEvents() bool {
	return m.IsInPlay() || m.Status == StatusFinished
}

// AcceptsCardEvents gates cards, which are only recordable while in play.
func (m Match) AcceptsCardEvents() bool {
	return m.IsInPlay()
}

// AcceptsLineups reports whether lineups may still be submitted.
func (m Match) AcceptsLineups() bool {
	return m.Status == StatusScheduled || m.Status == StatusPostponed
}

// AdjustScore adds sign*delta to the score.
func (m *Match) AdjustScore(delta Score, sign int) error {
	home := m.HomeScore + sign*delta.Home
	away := m.AwayScore + sign*delta.Away
	if home < 0 || away < 0 {
		return errors.Wrapf(ErrNegativeScore, "score %s adjusted by %s with sign %d", m.Score(), delta, sign)
	}
	m.HomeScore = home
	m.AwayScore = away
	return nil
}
