package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/football-league/internal/domain/user"
	"github.com/riskibarqy/football-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/football-league/internal/platform/cache"
	"github.com/riskibarqy/football-league/internal/platform/id"
	"github.com/riskibarqy/football-league/internal/platform/logging"
	"github.com/riskibarqy/football-league/internal/usecase"
)

const (
	testAdminToken  = "admin-token"
	testViewerToken = "viewer-token"
)

type stubVerifier struct{}

func (stubVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	switch token {
	case testAdminToken:
		return user.Principal{UserID: "ops-1", Role: user.RoleAdmin}, nil
	case testViewerToken:
		return user.Principal{UserID: "viewer-1", Role: "viewer"}, nil
	default:
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
}

type testEnvelope[T any] struct {
	APIVersion string `json:"apiVersion"`
	Data       T      `json:"data"`
	Error      *struct {
		Code   int    `json:"code"`
		Status string `json:"status"`
	} `json:"error"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.NewNop()
	store := memory.NewStore(memory.DefaultSeed())
	reads := store.Repositories()

	standings := usecase.NewStandingService(reads, store, cache.NewStore(time.Minute), logger)
	matches := usecase.NewMatchService(reads, store, id.NewSequence("match"), logger)
	matches.SetStandingsInvalidator(standings)
	events := usecase.NewEventService(reads, store, id.NewSequence("event"), logger)
	events.SetStandingsInvalidator(standings)

	handler := NewHandler(usecase.NewCompetitionService(reads.Competitions), matches, events, standings, logger)
	return NewRouter(handler, stubVerifier{}, logger, true, []string{"*"})
}

func doRequest(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var payload []byte
	if body != nil {
		raw, err := sonic.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		payload = raw
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope[T any](t *testing.T, rec *httptest.ResponseRecorder) testEnvelope[T] {
	t.Helper()

	var out testEnvelope[T]
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal response body %q: %v", rec.Body.String(), err)
	}
	return out
}

func teamSheet(teamID string) map[string]any {
	entries := make([]map[string]any, 0, 12)
	for n := 1; n <= 12; n++ {
		entries = append(entries, map[string]any{
			"player_id":     memory.SquadPlayerID(teamID, n),
			"is_starter":    n <= 11,
			"jersey_number": n,
		})
	}
	return map[string]any{"entries": entries}
}

func createMatch(t *testing.T, router http.Handler, home, away string) string {
	t.Helper()

	rec := doRequest(t, router, http.MethodPost, "/v1/competitions/"+memory.CompetitionIDPremierLeague+"/matches", testAdminToken, map[string]any{
		"home_team_id": home,
		"away_team_id": away,
		"scheduled_at": "2025-09-13T14:00:00Z",
		"matchday":     4,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create match status=%d body=%s", rec.Code, rec.Body.String())
	}
	created := decodeEnvelope[matchDTO](t, rec)
	if created.Data.HomeCoachID != "coach-mikel-arteta" {
		t.Fatalf("expected home coach snapshot, got %q", created.Data.HomeCoachID)
	}
	return created.Data.ID
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAdminRoutes_RequireAdminToken(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	path := "/v1/competitions/" + memory.CompetitionIDPremierLeague + "/standings/recalculate"

	if rec := doRequest(t, router, http.MethodPost, path, "", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: expected 401, got %d", rec.Code)
	}
	if rec := doRequest(t, router, http.MethodPost, path, "forged", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("unknown token: expected 401, got %d", rec.Code)
	}
	if rec := doRequest(t, router, http.MethodPost, path, testViewerToken, nil); rec.Code != http.StatusForbidden {
		t.Fatalf("viewer token: expected 403, got %d", rec.Code)
	}
	if rec := doRequest(t, router, http.MethodPost, path, testAdminToken, nil); rec.Code != http.StatusOK {
		t.Fatalf("admin token: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestCreateMatch_RejectsUnknownFields(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodPost, "/v1/competitions/"+memory.CompetitionIDPremierLeague+"/matches", testAdminToken, map[string]any{
		"home_team_id": "eng-ars",
		"away_team_id": "eng-liv",
		"scheduled_at": "2025-09-13T14:00:00Z",
		"matchday":     1,
		"venue":        "Emirates",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decodeEnvelope[any](t, rec)
	if body.Error == nil || body.Error.Status != "INVALID_ARGUMENT" {
		t.Fatalf("expected INVALID_ARGUMENT error, got %+v", body.Error)
	}
}

func TestStartMatch_WithoutLineupsIsConflict(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	matchID := createMatch(t, router, "eng-ars", "eng-liv")

	rec := doRequest(t, router, http.MethodPost, "/v1/matches/"+matchID+"/start", testAdminToken, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope[any](t, rec)
	if body.Error == nil || body.Error.Status != "FAILED_PRECONDITION" {
		t.Fatalf("expected FAILED_PRECONDITION, got %+v", body.Error)
	}
}

func TestMatchFlow_FinishedResultReachesStandings(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	matchID := createMatch(t, router, "eng-ars", "eng-liv")

	for _, teamID := range []string{"eng-ars", "eng-liv"} {
		rec := doRequest(t, router, http.MethodPut, "/v1/matches/"+matchID+"/lineups/"+teamID, testAdminToken, teamSheet(teamID))
		if rec.Code != http.StatusOK {
			t.Fatalf("set lineup %s status=%d body=%s", teamID, rec.Code, rec.Body.String())
		}
	}
	if rec := doRequest(t, router, http.MethodPost, "/v1/matches/"+matchID+"/start", testAdminToken, nil); rec.Code != http.StatusOK {
		t.Fatalf("start status=%d body=%s", rec.Code, rec.Body.String())
	}

	rec := doRequest(t, router, http.MethodPost, "/v1/matches/"+matchID+"/events/goals", testAdminToken, map[string]any{
		"minute":           23,
		"scorer_id":        memory.SquadPlayerID("eng-ars", 10),
		"team_id":          "eng-ars",
		"assist_player_id": memory.SquadPlayerID("eng-ars", 7),
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("record goal status=%d body=%s", rec.Code, rec.Body.String())
	}
	goal := decodeEnvelope[goalResultDTO](t, rec)
	if goal.Data.Score != (scoreDTO{Home: 1, Away: 0}) || goal.Data.Assist == nil {
		t.Fatalf("unexpected goal result: %+v", goal.Data)
	}

	if rec := doRequest(t, router, http.MethodPost, "/v1/matches/"+matchID+"/end", testAdminToken, nil); rec.Code != http.StatusOK {
		t.Fatalf("end status=%d body=%s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/competitions/"+memory.CompetitionIDPremierLeague+"/standings", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("standings status=%d", rec.Code)
	}
	table := decodeEnvelope[standingsTableDTO](t, rec)
	if len(table.Data.Rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(table.Data.Rows))
	}
	top := table.Data.Rows[0]
	if top.TeamID != "eng-ars" || top.Points != 3 || top.Played != 1 || top.GoalDifference != 1 {
		t.Fatalf("unexpected leader row: %+v", top)
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/matches/"+matchID+"/events", "", nil)
	ledger := decodeEnvelope[[]eventDTO](t, rec)
	if len(ledger.Data) != 2 {
		t.Fatalf("expected goal and assist in ledger, got %d events", len(ledger.Data))
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/competitions/"+memory.CompetitionIDPremierLeague+"/standings.csv", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("csv status=%d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/csv") {
		t.Fatalf("unexpected content type %q", got)
	}
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header and 4 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[1], "1,eng-ars,Arsenal,1,1,0,0,1,0,1,3") {
		t.Fatalf("unexpected first csv row %q", lines[1])
	}
}

func TestGetMatch_NotFound(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/v1/matches/missing", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestMatchReads_DetailsAndCompetitionList(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	first := createMatch(t, router, "eng-ars", "eng-liv")
	createMatch(t, router, "eng-ars", "eng-mci")

	rec := doRequest(t, router, http.MethodPut, "/v1/matches/"+first+"/lineups/eng-liv", testAdminToken, teamSheet("eng-liv"))
	if rec.Code != http.StatusOK {
		t.Fatalf("set lineup status=%d body=%s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/matches/"+first, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get match status=%d body=%s", rec.Code, rec.Body.String())
	}
	details := decodeEnvelope[matchDetailsDTO](t, rec)
	if details.Data.Match.ID != first || details.Data.Match.Status != "SCHEDULED" {
		t.Fatalf("unexpected match: %+v", details.Data.Match)
	}
	if len(details.Data.Lineups) != 12 || len(details.Data.Events) != 0 {
		t.Fatalf("expected 12 lineup entries and no events, got %d and %d", len(details.Data.Lineups), len(details.Data.Events))
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/competitions/"+memory.CompetitionIDPremierLeague+"/matches", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list matches status=%d", rec.Code)
	}
	list := decodeEnvelope[[]matchDTO](t, rec)
	if len(list.Data) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(list.Data))
	}
}
