package match

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func fullSheet(teamID string, starters, substitutes int) []LineupEntry {
	out := make([]LineupEntry, 0, starters+substitutes)
	for i := 0; i < starters+substitutes; i++ {
		out = append(out, LineupEntry{
			TeamID:       teamID,
			PlayerID:     teamID + "-p" + string(rune('a'+i)),
			IsStarter:    i < starters,
			JerseyNumber: i + 1,
		})
	}
	return out
}

func scheduledMatch() Match {
	return Match{
		ID:            "m1",
		CompetitionID: "c1",
		HomeTeamID:    "home",
		AwayTeamID:    "away",
		ScheduledAt:   time.Date(2025, 8, 10, 15, 0, 0, 0, time.UTC),
		Status:        StatusScheduled,
		Matchday:      1,
	}
}

func TestMatchStart_LineupGate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		lineups  []LineupEntry
		wantErr  bool
		wantText string
	}{
		{
			name:    "eleven starters and one substitute per side",
			lineups: append(fullSheet("home", 11, 1), fullSheet("away", 11, 1)...),
		},
		{
			name:     "ten home starters",
			lineups:  append(fullSheet("home", 10, 2), fullSheet("away", 11, 1)...),
			wantErr:  true,
			wantText: "home side",
		},
		{
			name:     "away without substitutes",
			lineups:  append(fullSheet("home", 11, 3), fullSheet("away", 11, 0)...),
			wantErr:  true,
			wantText: "substitutes",
		},
		{
			name:     "no lineups",
			wantErr:  true,
			wantText: "starters",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := scheduledMatch()
			err := m.Start(tc.lineups)
			if !tc.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if m.Status != StatusLive || m.Minute != 1 {
					t.Fatalf("unexpected state after start: status=%s minute=%d", m.Status, m.Minute)
				}
				return
			}

			if !errors.Is(err, ErrLineupIncomplete) {
				t.Fatalf("expected ErrLineupIncomplete, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.wantText) {
				t.Fatalf("expected error to mention %q, got %q", tc.wantText, err.Error())
			}
			if m.Status != StatusScheduled || m.Minute != 0 {
				t.Fatalf("match mutated on failed start: status=%s minute=%d", m.Status, m.Minute)
			}
		})
	}
}

func TestMatchLifecycle_FullRun(t *testing.T) {
	m := scheduledMatch()
	if err := m.Start(append(fullSheet("home", 11, 1), fullSheet("away", 11, 1)...)); err != nil {
		t.Fatalf("start: %v", err)
	}
	m.Minute = 45
	if err := m.HalfTime(); err != nil {
		t.Fatalf("halftime: %v", err)
	}
	if m.Status != StatusHalfTime || m.Minute != 45 {
		t.Fatalf("unexpected halftime state: %s %d", m.Status, m.Minute)
	}
	if err := m.Start(nil); err != nil {
		t.Fatalf("second half start should skip lineup gate: %v", err)
	}
	if m.Status != StatusLive || m.Minute != 46 {
		t.Fatalf("unexpected second half state: %s %d", m.Status, m.Minute)
	}
	if err := m.End(); err != nil {
		t.Fatalf("end: %v", err)
	}
	if m.Status != StatusFinished || m.Minute != 90 {
		t.Fatalf("unexpected final state: %s %d", m.Status, m.Minute)
	}
}

func TestMatchLifecycle_IllegalTransitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status Status
		apply  func(m *Match) error
	}{
		{name: "halftime when scheduled", status: StatusScheduled, apply: (*Match).HalfTime},
		{name: "halftime twice", status: StatusHalfTime, apply: (*Match).HalfTime},
		{name: "end when scheduled", status: StatusScheduled, apply: (*Match).End},
		{name: "end when finished", status: StatusFinished, apply: (*Match).End},
		{name: "start when live", status: StatusLive, apply: func(m *Match) error { return m.Start(nil) }},
		{name: "start when finished", status: StatusFinished, apply: func(m *Match) error { return m.Start(nil) }},
		{name: "postpone when live", status: StatusLive, apply: (*Match).Postpone},
		{name: "cancel when finished", status: StatusFinished, apply: (*Match).Cancel},
		{name: "reschedule when scheduled", status: StatusScheduled, apply: func(m *Match) error { return m.Reschedule(time.Now()) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := scheduledMatch()
			m.Status = tc.status
			m.Minute = 33
			before := m

			err := tc.apply(&m)
			if !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("expected ErrInvalidTransition, got %v", err)
			}
			if !strings.Contains(err.Error(), string(tc.status)) {
				t.Fatalf("expected error to report current status %s, got %q", tc.status, err.Error())
			}
			if m != before {
				t.Fatalf("match mutated on illegal transition: before=%+v after=%+v", before, m)
			}
		})
	}
}

func TestMatchAdministrativeTransitions(t *testing.T) {
	m := scheduledMatch()
	if err := m.Postpone(); err != nil {
		t.Fatalf("postpone: %v", err)
	}
	next := m.ScheduledAt.Add(7 * 24 * time.Hour)
	if err := m.Reschedule(next); err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if m.Status != StatusScheduled || !m.ScheduledAt.Equal(next) {
		t.Fatalf("unexpected state after reschedule: %+v", m)
	}
	if err := m.Cancel(); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if m.Status != StatusCancelled {
		t.Fatalf("expected cancelled, got %s", m.Status)
	}
}

func TestMatchCheckDeletable(t *testing.T) {
	t.Parallel()

	for status, deletable := range map[Status]bool{
		StatusScheduled: true,
		StatusLive:      false,
		StatusHalfTime:  false,
		StatusFinished:  true,
		StatusPostponed: true,
		StatusCancelled: true,
	} {
		m := scheduledMatch()
		m.Status = status
		err := m.CheckDeletable()
		if deletable && err != nil {
			t.Fatalf("status %s: unexpected error %v", status, err)
		}
		if !deletable && !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("status %s: expected ErrInvalidTransition, got %v", status, err)
		}
	}
}

func TestMatchEventGates(t *testing.T) {
	t.Parallel()

	m := scheduledMatch()
	m.Status = StatusFinished
	if !m.AcceptsGoalEvents() {
		t.Fatalf("finished match should accept goal events")
	}
	if m.AcceptsCardEvents() {
		t.Fatalf("finished match should reject card events")
	}
	m.Status = StatusScheduled
	if m.AcceptsGoalEvents() || m.AcceptsCardEvents() {
		t.Fatalf("scheduled match should reject events")
	}
}

func TestMatchAdjustScore(t *testing.T) {
	t.Parallel()

	m := scheduledMatch()
	if err := m.AdjustScore(Score{Home: 1}, 1); err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if err := m.AdjustScore(Score{Away: 1}, -1); !errors.Is(err, ErrNegativeScore) {
		t.Fatalf("expected ErrNegativeScore, got %v", err)
	}
	if m.Score() != (Score{Home: 1}) {
		t.Fatalf("unexpected score %s", m.Score())
	}
}
