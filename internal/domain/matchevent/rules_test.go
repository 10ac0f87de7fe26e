package matchevent

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/football-league/internal/domain/match"
)

func intPtr(v int) *int { return &v }

func TestValidateTiming(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		minute  int
		extra   *int
		wantErr bool
	}{
		{name: "first minute", minute: 1},
		{name: "extra time end", minute: 120},
		{name: "stoppage", minute: 90, extra: intPtr(15)},
		{name: "zero minute", minute: 0, wantErr: true},
		{name: "past extra time", minute: 121, wantErr: true},
		{name: "zero stoppage", minute: 45, extra: intPtr(0), wantErr: true},
		{name: "long stoppage", minute: 90, extra: intPtr(16), wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTiming(tc.minute, tc.extra)
			if tc.wantErr && !errors.Is(err, ErrInvalidMinute) {
				t.Fatalf("expected ErrInvalidMinute, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestGoalKindPrecedence(t *testing.T) {
	t.Parallel()

	if got := GoalKind(true, true); got != KindOwnGoal {
		t.Fatalf("own goal flag must win, got %s", got)
	}
	if got := GoalKind(false, true); got != KindPenaltyScored {
		t.Fatalf("expected penalty, got %s", got)
	}
	if got := GoalKind(false, false); got != KindGoal {
		t.Fatalf("expected goal, got %s", got)
	}
	if CreditsAssist(KindOwnGoal) || CreditsAssist(KindPenaltyScored) || !CreditsAssist(KindGoal) {
		t.Fatalf("assists only accompany open play goals")
	}
}

func TestResolveCardKind(t *testing.T) {
	t.Parallel()

	if got := ResolveCardKind(false, 0); got != KindYellowCard {
		t.Fatalf("expected yellow, got %s", got)
	}
	if got := ResolveCardKind(false, 1); got != KindSecondYellow {
		t.Fatalf("expected second yellow, got %s", got)
	}
	if got := ResolveCardKind(true, 1); got != KindRedCard {
		t.Fatalf("red flag must win, got %s", got)
	}
}

func TestScoreDelta_OwnGoalCreditsOpponent(t *testing.T) {
	t.Parallel()

	m := match.Match{ID: "m1", HomeTeamID: "a", AwayTeamID: "b"}

	delta, err := ScoreDelta(Event{TeamID: "a", Kind: KindOwnGoal}, m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delta != (match.Score{Away: 1}) {
		t.Fatalf("own goal by home side should credit away, got %s", delta)
	}

	delta, err = ScoreDelta(Event{TeamID: "b", Kind: KindPenaltyScored}, m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delta != (match.Score{Away: 1}) {
		t.Fatalf("penalty by away side should credit away, got %s", delta)
	}

	delta, err = ScoreDelta(Event{TeamID: "a", Kind: KindYellowCard}, m)
	if err != nil || delta != (match.Score{}) {
		t.Fatalf("card must not score, got %s err=%v", delta, err)
	}

	if _, err := ScoreDelta(Event{TeamID: "z", Kind: KindGoal}, m); !errors.Is(err, ErrInvalidEvent) {
		t.Fatalf("expected ErrInvalidEvent for foreign team, got %v", err)
	}
}

func TestSortLedgerAndReplay(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 8, 10, 15, 0, 0, 0, time.UTC)
	m := match.Match{ID: "m1", HomeTeamID: "a", AwayTeamID: "b"}
	events := []Event{
		{ID: "e3", TeamID: "a", Kind: KindGoal, Minute: 90, ExtraMinute: intPtr(2), CreatedAt: base},
		{ID: "e2", TeamID: "a", Kind: KindOwnGoal, Minute: 90, CreatedAt: base},
		{ID: "e1", TeamID: "b", Kind: KindGoal, Minute: 12, CreatedAt: base},
		{ID: "e0", TeamID: "a", Kind: KindAssist, Minute: 90, ExtraMinute: intPtr(2), CreatedAt: base.Add(-time.Second)},
	}

	SortLedger(events)
	want := []string{"e1", "e2", "e0", "e3"}
	for i, id := range want {
		if events[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, events[i].ID)
		}
	}

	score, err := ReplayScore(events, m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != (match.Score{Home: 1, Away: 2}) {
		t.Fatalf("unexpected replayed score %s", score)
	}
}
