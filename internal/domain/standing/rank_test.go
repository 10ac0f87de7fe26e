package standing

import (
	"testing"

	"github.com/riskibarqy/football-league/internal/domain/competition"
	"github.com/riskibarqy/football-league/internal/domain/match"
)

func positions(ranked []Ranked) []string {
	out := make([]string, 0, len(ranked))
	for _, row := range ranked {
		out = append(out, row.Standing.TeamID())
	}
	return out
}

func assertOrder(t *testing.T, ranked []Ranked, want ...string) {
	t.Helper()
	got := positions(ranked)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
		if ranked[i].Position != i+1 {
			t.Fatalf("row %d has position %d", i, ranked[i].Position)
		}
	}
}

func TestRank_GoalDifferenceFirst(t *testing.T) {
	t.Parallel()

	rows := []Standing{
		FromRecord(Record{TeamID: "t1", Points: 6, Won: 2, Played: 2, GoalsFor: 3, GoalsAgainst: 1}),
		FromRecord(Record{TeamID: "t2", Points: 6, Won: 2, Played: 2, GoalsFor: 5, GoalsAgainst: 2}),
		FromRecord(Record{TeamID: "t3", Points: 6, Won: 2, Played: 2, GoalsFor: 4, GoalsAgainst: 1}),
		FromRecord(Record{TeamID: "t4", Points: 7, Won: 2, Drawn: 1, Played: 3, GoalsFor: 1, GoalsAgainst: 0}),
		FromRecord(Record{TeamID: "t5", Points: 6, Won: 2, Played: 2, GoalsFor: 3, GoalsAgainst: 1}),
	}
	names := map[string]string{"t1": "Persib", "t2": "Arema", "t3": "Bali United", "t4": "Persija", "t5": "Madura"}

	ranked := Rank(rows, competition.TiebreakGoalDifferenceFirst, names, nil)
	// t2 and t3 share GD 3, t2 has more goals; t5 and t1 share everything, name decides.
	assertOrder(t, ranked, "t4", "t2", "t3", "t5", "t1")
	if ranked[0].TeamName != "Persija" {
		t.Fatalf("unexpected team name %q", ranked[0].TeamName)
	}
}

func TestRank_HeadToHeadBeatsGoalDifference(t *testing.T) {
	t.Parallel()

	rows := []Standing{
		FromRecord(Record{TeamID: "big", Points: 3, Won: 1, Lost: 1, Played: 2, GoalsFor: 6, GoalsAgainst: 1}),
		FromRecord(Record{TeamID: "small", Points: 3, Won: 1, Lost: 1, Played: 2, GoalsFor: 1, GoalsAgainst: 5}),
	}
	matches := []match.Match{
		finished("m1", "small", "big", 1, 0),
		finished("m2", "big", "other", 6, 0),
	}

	assertOrder(t, Rank(rows, competition.TiebreakHeadToHeadFirst, nil, matches), "small", "big")
	assertOrder(t, Rank(rows, competition.TiebreakGoalDifferenceFirst, nil, matches), "big", "small")
}

func TestRank_ThreeWayCycleIsDeterministic(t *testing.T) {
	t.Parallel()

	// X beat Y, Y beat Z, Z beat X: head-to-head is level for all three.
	matches := []match.Match{
		finished("m1", "X", "Y", 1, 0),
		finished("m2", "Y", "Z", 2, 1),
		finished("m3", "Z", "X", 3, 2),
		finished("m4", "Z", "W", 2, 0),
	}
	rows := []Standing{
		FromRecord(Record{TeamID: "X", Points: 3, Won: 1, Lost: 1, Played: 2, GoalsFor: 3, GoalsAgainst: 3}),
		FromRecord(Record{TeamID: "Y", Points: 3, Won: 1, Lost: 1, Played: 2, GoalsFor: 2, GoalsAgainst: 2}),
		FromRecord(Record{TeamID: "Z", Points: 6, Won: 2, Lost: 1, Played: 3, GoalsFor: 6, GoalsAgainst: 4}),
		FromRecord(Record{TeamID: "W", Points: 0, Lost: 1, Played: 1, GoalsFor: 0, GoalsAgainst: 2}),
	}
	names := map[string]string{"X": "Xanthi", "Y": "Yverdon", "Z": "Zwolle", "W": "Wigan"}

	h2h := HeadToHead([]string{"X", "Y"}, matches)
	if h2h["X"].Wins != 1 || h2h["Y"].Wins != 0 {
		t.Fatalf("pairwise head-to-head must only count X-Y: %+v", h2h)
	}
	wide := HeadToHead([]string{"X", "Y", "Z"}, matches)
	for _, id := range []string{"X", "Y", "Z"} {
		if wide[id].Wins != 1 || wide[id].GoalDifference() != 0 {
			t.Fatalf("cycle must level head-to-head for %s: %+v", id, wide[id])
		}
	}

	first := Rank(rows, competition.TiebreakHeadToHeadFirst, names, matches)
	second := Rank(rows, competition.TiebreakHeadToHeadFirst, names, matches)
	assertOrder(t, first, "Z", "X", "Y", "W")
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("rank is not deterministic at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestRank_CycleFallsThroughToGoalsThenName(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		finished("m1", "X", "Y", 1, 0),
		finished("m2", "Y", "Z", 1, 0),
		finished("m3", "Z", "X", 1, 0),
	}
	rows := []Standing{
		FromRecord(Record{TeamID: "X", Points: 3, Won: 1, Lost: 1, Played: 2, GoalsFor: 1, GoalsAgainst: 1}),
		FromRecord(Record{TeamID: "Y", Points: 3, Won: 1, Lost: 1, Played: 2, GoalsFor: 1, GoalsAgainst: 1}),
		FromRecord(Record{TeamID: "Z", Points: 3, Won: 1, Lost: 1, Played: 2, GoalsFor: 1, GoalsAgainst: 1}),
	}
	names := map[string]string{"X": "Charlie", "Y": "Alpha", "Z": "Bravo"}

	assertOrder(t, Rank(rows, competition.TiebreakHeadToHeadFirst, names, matches), "Y", "Z", "X")

	// Equal names fall back to team id.
	same := map[string]string{"X": "Same", "Y": "Same", "Z": "Same"}
	assertOrder(t, Rank(rows, competition.TiebreakHeadToHeadFirst, same, matches), "X", "Y", "Z")
}
