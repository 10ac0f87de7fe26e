package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/football-league/internal/domain/match"
	"github.com/riskibarqy/football-league/internal/domain/standing"
	"github.com/riskibarqy/football-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/football-league/internal/platform/cache"
	"github.com/riskibarqy/football-league/internal/platform/id"
	"github.com/riskibarqy/football-league/internal/platform/logging"
)

const (
	teamA = "eng-ars"
	teamB = "eng-liv"
	teamC = "eng-mci"
)

type harness struct {
	store     *memory.Store
	matches   *MatchService
	events    *EventService
	standings *StandingService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWithSeed(t, memory.DefaultSeed())
}

func newHarnessWithSeed(t *testing.T, seed memory.Seed) *harness {
	t.Helper()

	st := memory.NewStore(seed)
	logger := logging.NewNop()
	standings := NewStandingService(st.Repositories(), st, cache.NewStore(time.Minute), logger)
	matches := NewMatchService(st.Repositories(), st, id.NewSequence("match-"), logger)
	events := NewEventService(st.Repositories(), st, id.NewSequence("event-"), logger)
	matches.SetStandingsInvalidator(standings)
	events.SetStandingsInvalidator(standings)

	return &harness{store: st, matches: matches, events: events, standings: standings}
}

func (h *harness) createMatch(t *testing.T, competitionID, home, away string) match.Match {
	t.Helper()

	item, err := h.matches.Create(context.Background(), CreateMatchInput{
		CompetitionID: competitionID,
		HomeTeamID:    home,
		AwayTeamID:    away,
		ScheduledAt:   time.Date(2025, time.September, 13, 14, 0, 0, 0, time.UTC),
		Matchday:      4,
	})
	if err != nil {
		t.Fatalf("create match %s vs %s: %v", home, away, err)
	}
	return item
}

// teamSheet is the first starters numbers as starters plus the given number
// of substitutes from the seeded squad.
func teamSheet(teamID string, starters, subs int) []LineupInput {
	out := make([]LineupInput, 0, starters+subs)
	for n := 1; n <= starters+subs; n++ {
		out = append(out, LineupInput{
			PlayerID:     memory.SquadPlayerID(teamID, n),
			IsStarter:    n <= starters,
			JerseyNumber: n,
		})
	}
	return out
}

func (h *harness) setLineups(t *testing.T, m match.Match) {
	t.Helper()

	ctx := context.Background()
	for _, teamID := range []string{m.HomeTeamID, m.AwayTeamID} {
		if _, err := h.matches.SetLineup(ctx, SetLineupInput{MatchID: m.ID, TeamID: teamID, Entries: teamSheet(teamID, 11, 1)}); err != nil {
			t.Fatalf("set lineup team=%s: %v", teamID, err)
		}
	}
}

// kickOff creates a match between home and away and starts it.
func (h *harness) kickOff(t *testing.T, competitionID, home, away string) match.Match {
	t.Helper()

	m := h.createMatch(t, competitionID, home, away)
	h.setLineups(t, m)
	started, err := h.matches.Start(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("start match: %v", err)
	}
	return started
}

func (h *harness) goal(t *testing.T, matchID, teamID string, player, minute int, ownGoal bool) GoalResult {
	t.Helper()

	result, err := h.events.RecordGoal(context.Background(), RecordGoalInput{
		MatchID:   matchID,
		TeamID:    teamID,
		ScorerID:  memory.SquadPlayerID(teamID, player),
		Minute:    minute,
		IsOwnGoal: ownGoal,
	})
	if err != nil {
		t.Fatalf("record goal team=%s minute=%d: %v", teamID, minute, err)
	}
	return result
}

func (h *harness) end(t *testing.T, matchID string) match.Match {
	t.Helper()

	item, err := h.matches.End(context.Background(), matchID)
	if err != nil {
		t.Fatalf("end match: %v", err)
	}
	return item
}

func (h *harness) standingOf(t *testing.T, competitionID, teamID string) standing.Record {
	t.Helper()

	rows, err := h.store.Repositories().Standings.ListByCompetition(context.Background(), competitionID)
	if err != nil {
		t.Fatalf("list standings: %v", err)
	}
	for _, row := range rows {
		if row.TeamID() == teamID {
			if err := row.CheckInvariants(); err != nil {
				t.Fatalf("standing %s breaks invariants: %v", teamID, err)
			}
			return row.Record()
		}
	}
	t.Fatalf("standing for team %s not found", teamID)
	return standing.Record{}
}

func assertRecord(t *testing.T, got standing.Record, points, won, drawn, lost, goalsFor, goalsAgainst int) {
	t.Helper()

	if got.Points != points || got.Won != won || got.Drawn != drawn || got.Lost != lost ||
		got.GoalsFor != goalsFor || got.GoalsAgainst != goalsAgainst || got.Played != won+drawn+lost {
		t.Fatalf("unexpected standing for %s: got %+v, want pts=%d w=%d d=%d l=%d gf=%d ga=%d",
			got.TeamID, got, points, won, drawn, lost, goalsFor, goalsAgainst)
	}
}
