package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/football-league/internal/domain/matchevent"
	"github.com/riskibarqy/football-league/internal/infrastructure/repository/memory"
)

func TestEventService_LateOwnGoalTurnsWinIntoDraw(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	comp := memory.CompetitionIDPremierLeague

	m := h.kickOff(t, comp, teamA, teamB)
	h.goal(t, m.ID, teamA, 9, 12, false)
	h.goal(t, m.ID, teamB, 10, 40, false)
	h.goal(t, m.ID, teamA, 10, 77, false)
	h.end(t, m.ID)

	assertRecord(t, h.standingOf(t, comp, teamA), 3, 1, 0, 0, 2, 1)
	assertRecord(t, h.standingOf(t, comp, teamB), 0, 0, 0, 1, 1, 2)
	assertRecord(t, h.standingOf(t, comp, teamC), 0, 0, 0, 0, 0, 0)

	result := h.goal(t, m.ID, teamA, 4, 88, true)
	if result.Score.Home != 2 || result.Score.Away != 2 {
		t.Fatalf("expected 2-2 after own goal, got %s", result.Score)
	}
	if result.Goal.Kind != matchevent.KindOwnGoal {
		t.Fatalf("expected own goal kind, got %s", result.Goal.Kind)
	}

	assertRecord(t, h.standingOf(t, comp, teamA), 1, 0, 1, 0, 2, 2)
	assertRecord(t, h.standingOf(t, comp, teamB), 1, 0, 1, 0, 2, 2)
	assertRecord(t, h.standingOf(t, comp, teamC), 0, 0, 0, 0, 0, 0)

	table, err := h.standings.GetStandings(context.Background(), comp)
	if err != nil {
		t.Fatalf("get standings: %v", err)
	}
	for _, row := range table.Rows {
		if row.Standing.TeamID() == teamA && row.Standing.Points() != 1 {
			t.Fatalf("cached table not invalidated: %+v", row.Standing)
		}
	}
}

func TestEventService_OwnGoalCreditsOpponentAndDeleteReverts(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	m := h.kickOff(t, memory.CompetitionIDPremierLeague, teamA, teamB)

	result := h.goal(t, m.ID, teamA, 3, 20, true)
	if result.Score.Home != 0 || result.Score.Away != 1 {
		t.Fatalf("expected own goal by home side to count for away, got %s", result.Score)
	}
	if result.Assist != nil {
		t.Fatalf("own goals never carry an assist")
	}

	score, err := h.events.Delete(ctx, m.ID, result.Goal.ID)
	if err != nil {
		t.Fatalf("delete own goal: %v", err)
	}
	if score.Home != 0 || score.Away != 0 {
		t.Fatalf("expected 0-0 after delete, got %s", score)
	}

	events, err := h.events.ListByMatch(ctx, m.ID)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected empty ledger, got %d events", len(events))
	}
}

func TestEventService_GoalWithAssistAndDeleteKeepsAssist(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	m := h.kickOff(t, memory.CompetitionIDPremierLeague, teamA, teamB)

	result, err := h.events.RecordGoal(ctx, RecordGoalInput{
		MatchID:        m.ID,
		TeamID:         teamB,
		ScorerID:       memory.SquadPlayerID(teamB, 9),
		AssistPlayerID: memory.SquadPlayerID(teamB, 7),
		Minute:         45,
		ExtraMinute:    intPtr(2),
	})
	if err != nil {
		t.Fatalf("record goal: %v", err)
	}
	if result.Assist == nil || result.Assist.RelatedPlayerID != result.Goal.PlayerID {
		t.Fatalf("expected linked assist, got %+v", result.Assist)
	}

	if _, err := h.events.Delete(ctx, m.ID, result.Goal.ID); err != nil {
		t.Fatalf("delete goal: %v", err)
	}
	events, err := h.events.ListByMatch(ctx, m.ID)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 1 || events[0].Kind != matchevent.KindAssist {
		t.Fatalf("expected only the assist to remain, got %+v", events)
	}
}

func TestEventService_AssistDroppedForPenalty(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	m := h.kickOff(t, memory.CompetitionIDPremierLeague, teamA, teamB)

	result, err := h.events.RecordGoal(context.Background(), RecordGoalInput{
		MatchID:        m.ID,
		TeamID:         teamA,
		ScorerID:       memory.SquadPlayerID(teamA, 9),
		AssistPlayerID: memory.SquadPlayerID(teamA, 7),
		Minute:         30,
		IsPenalty:      true,
	})
	if err != nil {
		t.Fatalf("record penalty: %v", err)
	}
	if result.Goal.Kind != matchevent.KindPenaltyScored || result.Assist != nil {
		t.Fatalf("expected assist-free penalty, got %+v", result)
	}
	if result.Score.Home != 1 {
		t.Fatalf("expected penalty to count, got %s", result.Score)
	}
}

func TestEventService_SecondYellowEscalates(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	m := h.kickOff(t, memory.CompetitionIDPremierLeague, teamA, teamB)
	playerID := memory.SquadPlayerID(teamB, 6)

	first, err := h.events.RecordCard(ctx, RecordCardInput{MatchID: m.ID, TeamID: teamB, PlayerID: playerID, Minute: 25})
	if err != nil {
		t.Fatalf("record first card: %v", err)
	}
	second, err := h.events.RecordCard(ctx, RecordCardInput{MatchID: m.ID, TeamID: teamB, PlayerID: playerID, Minute: 61})
	if err != nil {
		t.Fatalf("record second card: %v", err)
	}
	red, err := h.events.RecordCard(ctx, RecordCardInput{MatchID: m.ID, TeamID: teamA, PlayerID: memory.SquadPlayerID(teamA, 3), Minute: 70, IsRed: true})
	if err != nil {
		t.Fatalf("record red card: %v", err)
	}

	if first.Kind != matchevent.KindYellowCard {
		t.Fatalf("expected yellow, got %s", first.Kind)
	}
	if second.Kind != matchevent.KindSecondYellow {
		t.Fatalf("expected second yellow, got %s", second.Kind)
	}
	if red.Kind != matchevent.KindRedCard {
		t.Fatalf("expected red, got %s", red.Kind)
	}
}

func TestEventService_CardsRejectedOnFinishedMatch(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	m := h.kickOff(t, memory.CompetitionIDPremierLeague, teamA, teamB)
	h.end(t, m.ID)

	_, err := h.events.RecordCard(ctx, RecordCardInput{MatchID: m.ID, TeamID: teamA, PlayerID: memory.SquadPlayerID(teamA, 5), Minute: 90})
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for card on finished match, got %v", err)
	}

	// Substitutions follow the goal rule and stay open after full time.
	if _, err := h.events.RecordSubstitution(ctx, RecordSubstitutionInput{
		MatchID:     m.ID,
		TeamID:      teamA,
		PlayerOutID: memory.SquadPlayerID(teamA, 10),
		PlayerInID:  memory.SquadPlayerID(teamA, 12),
		Minute:      89,
	}); err != nil {
		t.Fatalf("record substitution on finished match: %v", err)
	}
}

func TestEventService_RejectsEventsBeforeKickoff(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	m := h.createMatch(t, memory.CompetitionIDPremierLeague, teamA, teamB)

	_, err := h.events.RecordGoal(context.Background(), RecordGoalInput{
		MatchID:  m.ID,
		TeamID:   teamA,
		ScorerID: memory.SquadPlayerID(teamA, 9),
		Minute:   5,
	})
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestEventService_ValidatesParticipants(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	m := h.kickOff(t, memory.CompetitionIDPremierLeague, teamA, teamB)

	tests := []struct {
		name  string
		input RecordGoalInput
		want  error
	}{
		{
			name:  "team not in match",
			input: RecordGoalInput{MatchID: m.ID, TeamID: teamC, ScorerID: memory.SquadPlayerID(teamC, 9), Minute: 10},
			want:  ErrInvalidInput,
		},
		{
			name:  "player from other team",
			input: RecordGoalInput{MatchID: m.ID, TeamID: teamA, ScorerID: memory.SquadPlayerID(teamB, 9), Minute: 10},
			want:  ErrInvalidInput,
		},
		{
			name:  "unknown player",
			input: RecordGoalInput{MatchID: m.ID, TeamID: teamA, ScorerID: "ghost", Minute: 10},
			want:  ErrNotFound,
		},
		{
			name:  "minute out of range",
			input: RecordGoalInput{MatchID: m.ID, TeamID: teamA, ScorerID: memory.SquadPlayerID(teamA, 9), Minute: 121},
			want:  ErrInvalidInput,
		},
		{
			name:  "self assist",
			input: RecordGoalInput{MatchID: m.ID, TeamID: teamA, ScorerID: memory.SquadPlayerID(teamA, 9), AssistPlayerID: memory.SquadPlayerID(teamA, 9), Minute: 10},
			want:  ErrInvalidInput,
		},
		{
			name:  "unknown match",
			input: RecordGoalInput{MatchID: "missing", TeamID: teamA, ScorerID: memory.SquadPlayerID(teamA, 9), Minute: 10},
			want:  ErrNotFound,
		},
	}

	for _, tt := range tests {
		if _, err := h.events.RecordGoal(ctx, tt.input); !errors.Is(err, tt.want) {
			t.Fatalf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}

	score, err := h.matches.Get(ctx, m.ID)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if score.HomeScore != 0 || score.AwayScore != 0 {
		t.Fatalf("rejected goals must not change the score, got %s", score.Score())
	}
}

func TestEventService_LedgerReplaysToScore(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	m := h.kickOff(t, memory.CompetitionIDPremierLeague, teamA, teamB)

	h.goal(t, m.ID, teamA, 9, 10, false)
	h.goal(t, m.ID, teamB, 2, 15, true)
	h.goal(t, m.ID, teamB, 11, 50, false)
	if _, err := h.events.RecordPenaltyMiss(ctx, RecordPenaltyMissInput{MatchID: m.ID, TeamID: teamB, PlayerID: memory.SquadPlayerID(teamB, 9), Minute: 60}); err != nil {
		t.Fatalf("record penalty miss: %v", err)
	}

	current, err := h.matches.Get(ctx, m.ID)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	events, err := h.events.ListByMatch(ctx, m.ID)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	replayed, err := matchevent.ReplayScore(events, current)
	if err != nil {
		t.Fatalf("replay score: %v", err)
	}
	if replayed != current.Score() || replayed.Home != 2 || replayed.Away != 1 {
		t.Fatalf("ledger replay %s does not match score %s", replayed, current.Score())
	}
	for i := 1; i < len(events); i++ {
		if events[i].Minute < events[i-1].Minute {
			t.Fatalf("ledger not in minute order: %+v", events)
		}
	}
}

func intPtr(v int) *int { return &v }
