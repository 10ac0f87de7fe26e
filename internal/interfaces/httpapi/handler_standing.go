package httpapi

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/football-league/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

var standingsCSVHeader = []string{
	"position", "team_id", "team_name", "played", "won", "drawn", "lost",
	"goals_for", "goals_against", "goal_difference", "points",
}

func (h *Handler) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitions")
	defer span.End()

	items, err := h.competitionService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list competitions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]competitionDTO, 0, len(items))
	for _, item := range items {
		out = append(out, competitionToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCompetition")
	defer span.End()

	competitionID := strings.TrimSpace(r.PathValue("competitionID"))
	item, err := h.competitionService.Get(ctx, competitionID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, competitionToDTO(item))
}

func (h *Handler) RegisterTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegisterTeam")
	defer span.End()

	competitionID := strings.TrimSpace(r.PathValue("competitionID"))
	var req registerTeamRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	row, err := h.standingService.RegisterTeam(ctx, competitionID, req.TeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "register team failed", "competition_id", competitionID, "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, map[string]any{
		"competition_id": row.CompetitionID(),
		"team_id":        row.TeamID(),
		"points":         row.Points(),
		"played":         row.Played(),
	})
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	competitionID := strings.TrimSpace(r.PathValue("competitionID"))
	table, err := h.standingService.GetStandings(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "get standings failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsTableToDTO(table))
}

func (h *Handler) ExportStandingsCSV(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportStandingsCSV")
	defer span.End()

	competitionID := strings.TrimSpace(r.PathValue("competitionID"))
	table, err := h.standingService.GetStandings(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "export standings failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := writeStandingsCSV(buf, table); err != nil {
		h.logger.ErrorContext(ctx, "encode standings csv failed", "competition_id", competitionID, "error", err)
		writeInternalError(ctx, w)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", competitionID+"-standings.csv"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.B)
}

func writeStandingsCSV(buf *bytebufferpool.ByteBuffer, table usecase.StandingsTable) error {
	cw := csv.NewWriter(buf)
	if err := cw.Write(standingsCSVHeader); err != nil {
		return err
	}
	for _, item := range table.Rows {
		row := standingRowToDTO(item)
		record := []string{
			strconv.Itoa(row.Position),
			row.TeamID,
			row.TeamName,
			strconv.Itoa(row.Played),
			strconv.Itoa(row.Won),
			strconv.Itoa(row.Drawn),
			strconv.Itoa(row.Lost),
			strconv.Itoa(row.GoalsFor),
			strconv.Itoa(row.GoalsAgainst),
			strconv.Itoa(row.GoalDifference),
			strconv.Itoa(row.Points),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (h *Handler) RecalculateStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecalculateStandings")
	defer span.End()

	competitionID := strings.TrimSpace(r.PathValue("competitionID"))
	result, err := h.standingService.Recalculate(ctx, competitionID)
	if err != nil {
		h.logger.ErrorContext(ctx, "recalculate standings failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, recalculateResultDTO{
		CompetitionID:    result.CompetitionID,
		TeamsUpdated:     result.TeamsUpdated,
		MatchesProcessed: result.MatchesProcessed,
	})
}

func (h *Handler) RecalculateAllStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecalculateAllStandings")
	defer span.End()

	result, err := h.standingService.RecalculateAll(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "recalculate all standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	outcomes := make([]map[string]any, 0, len(result.Competitions))
	for _, item := range result.Competitions {
		outcome := map[string]any{
			"competition_id":    item.CompetitionID,
			"teams_updated":     item.TeamsUpdated,
			"matches_processed": item.MatchesProcessed,
			"duration_ms":       item.DurationMs,
		}
		if item.Error != "" {
			outcome["error"] = item.Error
		}
		outcomes = append(outcomes, outcome)
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"competitions":  outcomes,
		"success_count": result.SuccessCount,
		"failed_count":  result.FailedCount,
	})
}
