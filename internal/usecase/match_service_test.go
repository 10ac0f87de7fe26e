package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/football-league/internal/domain/match"
	"github.com/riskibarqy/football-league/internal/infrastructure/repository/memory"
)

func TestMatchService_Create_CapturesActiveCoaches(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	m := h.createMatch(t, memory.CompetitionIDPremierLeague, teamA, teamB)

	if m.Status != match.StatusScheduled || m.HomeScore != 0 || m.AwayScore != 0 {
		t.Fatalf("unexpected new match state: %+v", m)
	}
	if m.HomeCoachID != "coach-mikel-arteta" || m.AwayCoachID != "coach-arne-slot" {
		t.Fatalf("unexpected coaches: home=%s away=%s", m.HomeCoachID, m.AwayCoachID)
	}
}

func TestMatchService_Create_Validation(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	at := time.Date(2025, time.October, 4, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input CreateMatchInput
		want  error
	}{
		{name: "same team", input: CreateMatchInput{CompetitionID: memory.CompetitionIDPremierLeague, HomeTeamID: teamA, AwayTeamID: teamA, ScheduledAt: at, Matchday: 1}, want: ErrInvalidInput},
		{name: "missing team id", input: CreateMatchInput{CompetitionID: memory.CompetitionIDPremierLeague, HomeTeamID: teamA, ScheduledAt: at, Matchday: 1}, want: ErrInvalidInput},
		{name: "unknown competition", input: CreateMatchInput{CompetitionID: "missing", HomeTeamID: teamA, AwayTeamID: teamB, ScheduledAt: at, Matchday: 1}, want: ErrNotFound},
		{name: "unknown team", input: CreateMatchInput{CompetitionID: memory.CompetitionIDPremierLeague, HomeTeamID: teamA, AwayTeamID: "eng-tot", ScheduledAt: at, Matchday: 1}, want: ErrNotFound},
	}

	for _, tt := range tests {
		if _, err := h.matches.Create(ctx, tt.input); !errors.Is(err, tt.want) {
			t.Fatalf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
}

func TestMatchService_Start_LineupGate(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	m := h.createMatch(t, memory.CompetitionIDPremierLeague, teamA, teamB)

	if _, err := h.matches.SetLineup(ctx, SetLineupInput{MatchID: m.ID, TeamID: teamA, Entries: teamSheet(teamA, 11, 1)}); err != nil {
		t.Fatalf("set home lineup: %v", err)
	}
	if _, err := h.matches.SetLineup(ctx, SetLineupInput{MatchID: m.ID, TeamID: teamB, Entries: teamSheet(teamB, 10, 1)}); err != nil {
		t.Fatalf("set partial away lineup: %v", err)
	}

	_, err := h.matches.Start(ctx, m.ID)
	if !errors.Is(err, ErrInvalidState) || !errors.Is(err, match.ErrLineupIncomplete) {
		t.Fatalf("expected incomplete lineup error, got %v", err)
	}
	current, err := h.matches.Get(ctx, m.ID)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if current.Status != match.StatusScheduled {
		t.Fatalf("failed start must leave match scheduled, got %s", current.Status)
	}

	if _, err := h.matches.SetLineup(ctx, SetLineupInput{MatchID: m.ID, TeamID: teamB, Entries: teamSheet(teamB, 11, 0)}); err != nil {
		t.Fatalf("set away lineup without bench: %v", err)
	}
	if _, err := h.matches.Start(ctx, m.ID); !errors.Is(err, match.ErrLineupIncomplete) {
		t.Fatalf("expected missing substitute to block kickoff, got %v", err)
	}

	if _, err := h.matches.SetLineup(ctx, SetLineupInput{MatchID: m.ID, TeamID: teamB, Entries: teamSheet(teamB, 11, 1)}); err != nil {
		t.Fatalf("set full away lineup: %v", err)
	}
	started, err := h.matches.Start(ctx, m.ID)
	if err != nil {
		t.Fatalf("start match: %v", err)
	}
	if started.Status != match.StatusLive || started.Minute != 1 {
		t.Fatalf("expected LIVE at minute 1, got %s at %d", started.Status, started.Minute)
	}
}

func TestMatchService_SetLineup_Rules(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	m := h.createMatch(t, memory.CompetitionIDPremierLeague, teamA, teamB)

	if _, err := h.matches.SetLineup(ctx, SetLineupInput{MatchID: m.ID, TeamID: teamA, Entries: teamSheet(teamA, 12, 0)}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected twelve starters to be rejected, got %v", err)
	}

	foreign := teamSheet(teamA, 11, 0)
	foreign[0].PlayerID = memory.SquadPlayerID(teamB, 1)
	if _, err := h.matches.SetLineup(ctx, SetLineupInput{MatchID: m.ID, TeamID: teamA, Entries: foreign}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected foreign player to be rejected, got %v", err)
	}

	if _, err := h.matches.SetLineup(ctx, SetLineupInput{MatchID: m.ID, TeamID: teamC, Entries: teamSheet(teamC, 11, 1)}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected team outside match to be rejected, got %v", err)
	}

	h.setLineups(t, m)
	if _, err := h.matches.Start(ctx, m.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := h.matches.SetLineup(ctx, SetLineupInput{MatchID: m.ID, TeamID: teamA, Entries: teamSheet(teamA, 11, 2)}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected lineups to lock after kickoff, got %v", err)
	}
}

func TestMatchService_StatusTransitions(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	m := h.kickOff(t, memory.CompetitionIDPremierLeague, teamA, teamB)

	half, err := h.matches.HalfTime(ctx, m.ID)
	if err != nil || half.Status != match.StatusHalfTime {
		t.Fatalf("half time: %v status=%s", err, half.Status)
	}
	if _, err := h.matches.HalfTime(ctx, m.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected repeated half time to fail, got %v", err)
	}
	resumed, err := h.matches.Start(ctx, m.ID)
	if err != nil || resumed.Status != match.StatusLive || resumed.Minute != 46 {
		t.Fatalf("second half: %v %+v", err, resumed)
	}
	if _, err := h.matches.Postpone(ctx, m.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected postpone of live match to fail, got %v", err)
	}
	ended := h.end(t, m.ID)
	if ended.Status != match.StatusFinished || ended.Minute != 90 {
		t.Fatalf("unexpected end state: %+v", ended)
	}
	if _, err := h.matches.End(ctx, m.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected second end to fail, got %v", err)
	}
}

func TestMatchService_PostponeRescheduleCancel(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	m := h.createMatch(t, memory.CompetitionIDPremierLeague, teamA, teamC)

	if _, err := h.matches.Reschedule(ctx, m.ID, time.Now()); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected reschedule of scheduled match to fail, got %v", err)
	}
	postponed, err := h.matches.Postpone(ctx, m.ID)
	if err != nil || postponed.Status != match.StatusPostponed {
		t.Fatalf("postpone: %v %+v", err, postponed)
	}
	if _, err := h.matches.Start(ctx, m.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected start of postponed match to fail, got %v", err)
	}

	at := time.Date(2025, time.December, 26, 15, 0, 0, 0, time.UTC)
	rescheduled, err := h.matches.Reschedule(ctx, m.ID, at)
	if err != nil || rescheduled.Status != match.StatusScheduled || !rescheduled.ScheduledAt.Equal(at) {
		t.Fatalf("reschedule: %v %+v", err, rescheduled)
	}
	if _, err := h.matches.Reschedule(ctx, m.ID, time.Time{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected zero reschedule date to fail, got %v", err)
	}

	cancelled, err := h.matches.Cancel(ctx, m.ID)
	if err != nil || cancelled.Status != match.StatusCancelled {
		t.Fatalf("cancel: %v %+v", err, cancelled)
	}
	if _, err := h.matches.Cancel(ctx, m.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("cancelled is terminal, got %v", err)
	}
}

func TestMatchService_Delete(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	comp := memory.CompetitionIDPremierLeague

	live := h.kickOff(t, comp, teamA, teamB)
	if err := h.matches.Delete(ctx, live.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected live match delete to fail, got %v", err)
	}

	h.goal(t, live.ID, teamB, 9, 33, false)
	h.end(t, live.ID)
	assertRecord(t, h.standingOf(t, comp, teamB), 3, 1, 0, 0, 1, 0)

	if err := h.matches.Delete(ctx, live.ID); err != nil {
		t.Fatalf("delete finished match: %v", err)
	}
	assertRecord(t, h.standingOf(t, comp, teamA), 0, 0, 0, 0, 0, 0)
	assertRecord(t, h.standingOf(t, comp, teamB), 0, 0, 0, 0, 0, 0)

	if _, err := h.matches.Get(ctx, live.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected deleted match to be gone, got %v", err)
	}
	if _, err := h.events.ListByMatch(ctx, live.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ledger lookup to fail after delete, got %v", err)
	}
	if err := h.matches.Delete(ctx, live.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected second delete to report not found, got %v", err)
	}
}

func TestMatchService_GetDetails(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	m := h.kickOff(t, memory.CompetitionIDLiga1Indonesia, "idn-persija", "idn-persib")
	h.goal(t, m.ID, "idn-persib", 9, 70, false)
	h.goal(t, m.ID, "idn-persija", 10, 5, false)

	details, err := h.matches.GetDetails(ctx, m.ID)
	if err != nil {
		t.Fatalf("get details: %v", err)
	}
	if len(details.Lineups) != 24 {
		t.Fatalf("expected 24 lineup entries, got %d", len(details.Lineups))
	}
	if len(details.Events) != 2 || details.Events[0].Minute != 5 {
		t.Fatalf("expected ledger sorted by minute, got %+v", details.Events)
	}
	if details.Match.Score().String() != "1-1" {
		t.Fatalf("unexpected score %s", details.Match.Score())
	}

	if _, err := h.matches.GetDetails(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
