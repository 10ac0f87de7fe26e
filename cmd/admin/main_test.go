package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/football-league/internal/infrastructure/repository/memory"
)

func setMemoryEnv(t *testing.T) {
	t.Helper()

	t.Setenv("APP_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("APP_ENV", "dev")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("ADMIN_JWT_SECRET", "cli-test-secret")
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("SEED_FILE", "")
}

func TestStandingsCommand_JSON(t *testing.T) {
	setMemoryEnv(t)

	var out bytes.Buffer
	err := newApp(&out).Run([]string{"admin", "standings", "--competition", memory.CompetitionIDPremierLeague, "--json"})
	if err != nil {
		t.Fatalf("run standings: %v", err)
	}

	var rows []standingRowJSON
	if err := sonic.Unmarshal(out.Bytes(), &rows); err != nil {
		t.Fatalf("unmarshal output %q: %v", out.String(), err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if row.Position != i+1 || row.Points != 0 {
			t.Fatalf("unexpected row %d: %+v", i, row)
		}
	}
}

func TestStandingsCommand_Table(t *testing.T) {
	setMemoryEnv(t)

	var out bytes.Buffer
	if err := newApp(&out).Run([]string{"admin", "standings", "-c", memory.CompetitionIDLiga1Indonesia}); err != nil {
		t.Fatalf("run standings: %v", err)
	}
	if !strings.Contains(out.String(), "Liga 1 Indonesia") || !strings.Contains(out.String(), "Persija Jakarta") {
		t.Fatalf("unexpected table output:\n%s", out.String())
	}
}

func TestRecalculateAllCommand(t *testing.T) {
	setMemoryEnv(t)

	var out bytes.Buffer
	if err := newApp(&out).Run([]string{"admin", "recalculate-all"}); err != nil {
		t.Fatalf("run recalculate-all: %v", err)
	}
	if !strings.Contains(out.String(), "success=2 failed=0") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestRecalculateCommand_UnknownCompetition(t *testing.T) {
	setMemoryEnv(t)

	var out bytes.Buffer
	if err := newApp(&out).Run([]string{"admin", "recalculate", "-c", "missing"}); err == nil {
		t.Fatalf("expected error for unknown competition")
	}
}

func TestTokenCommand(t *testing.T) {
	setMemoryEnv(t)

	var out bytes.Buffer
	if err := newApp(&out).Run([]string{"admin", "token", "--subject", "ops"}); err != nil {
		t.Fatalf("run token: %v", err)
	}
	if parts := strings.Split(strings.TrimSpace(out.String()), "."); len(parts) != 3 {
		t.Fatalf("expected a compact JWT, got %q", out.String())
	}
}
