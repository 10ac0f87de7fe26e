package postgres

import (
	"strings"
	"testing"

	"github.com/riskibarqy/football-league/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/football-league/internal/platform/querybuilder"
)

func TestSeedModelsBuildInsertStatements(t *testing.T) {
	seed := memory.DefaultSeed()

	cases := map[string][]any{
		"competitions":      competitionSeedModels(seed),
		"teams":             teamSeedModels(seed),
		"players":           playerSeedModels(seed),
		"coach_assignments": coachSeedModels(seed),
	}
	for table, models := range cases {
		if len(models) == 0 {
			t.Fatalf("%s: expected seed rows", table)
		}
		query, args, err := qb.InsertModels(table, models, "ON CONFLICT DO NOTHING")
		if err != nil {
			t.Fatalf("%s: build insert: %v", table, err)
		}
		if !strings.HasPrefix(query, "INSERT INTO "+table) || !strings.HasSuffix(query, "ON CONFLICT DO NOTHING") {
			t.Fatalf("%s: unexpected query %q", table, query)
		}
		if len(args)%len(models) != 0 {
			t.Fatalf("%s: %d args do not split over %d rows", table, len(args), len(models))
		}
	}
}

func TestStandingUpsertSuffixCoversCounters(t *testing.T) {
	suffix := qb.ExcludedSet(standingCounterColumns...)
	for _, col := range []string{"points", "played", "goals_against"} {
		if !strings.Contains(suffix, col+" = EXCLUDED."+col) {
			t.Fatalf("upsert suffix misses %s: %s", col, suffix)
		}
	}
}
