package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/football-league/internal/domain/match"
	"github.com/riskibarqy/football-league/internal/usecase"
)

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	competitionID := strings.TrimSpace(r.PathValue("competitionID"))
	var req createMatchRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	scheduledAt, _ := time.Parse(time.RFC3339, req.ScheduledAt)

	item, err := h.matchService.Create(ctx, usecase.CreateMatchInput{
		CompetitionID: competitionID,
		HomeTeamID:    strings.TrimSpace(req.HomeTeamID),
		AwayTeamID:    strings.TrimSpace(req.AwayTeamID),
		ScheduledAt:   scheduledAt,
		Matchday:      req.Matchday,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(item))
}

func (h *Handler) ListMatchesByCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchesByCompetition")
	defer span.End()

	competitionID := strings.TrimSpace(r.PathValue("competitionID"))
	items, err := h.matchService.ListByCompetition(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	details, err := h.matchService.GetDetails(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchDetailsToDTO(details))
}

func (h *Handler) StartMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartMatch")
	defer span.End()

	h.runTransition(ctx, w, r, "start", h.matchService.Start)
}

func (h *Handler) HalfTimeMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.HalfTimeMatch")
	defer span.End()

	h.runTransition(ctx, w, r, "halftime", h.matchService.HalfTime)
}

func (h *Handler) EndMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EndMatch")
	defer span.End()

	h.runTransition(ctx, w, r, "end", h.matchService.End)
}

func (h *Handler) PostponeMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PostponeMatch")
	defer span.End()

	h.runTransition(ctx, w, r, "postpone", h.matchService.Postpone)
}

func (h *Handler) CancelMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelMatch")
	defer span.End()

	h.runTransition(ctx, w, r, "cancel", h.matchService.Cancel)
}

func (h *Handler) RescheduleMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RescheduleMatch")
	defer span.End()

	var req rescheduleMatchRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	scheduledAt, _ := time.Parse(time.RFC3339, req.ScheduledAt)

	h.runTransition(ctx, w, r, "reschedule", func(ctx context.Context, matchID string) (match.Match, error) {
		return h.matchService.Reschedule(ctx, matchID, scheduledAt)
	})
}

func (h *Handler) runTransition(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
	action string,
	fn func(ctx context.Context, matchID string) (match.Match, error),
) {
	matchID := strings.TrimSpace(r.PathValue("matchID"))
	item, err := fn(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "match transition failed", "match_id", matchID, "action", action, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatch")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	if err := h.matchService.Delete(ctx, matchID); err != nil {
		h.logger.WarnContext(ctx, "delete match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"id": matchID, "status": "deleted"})
}

func (h *Handler) SetLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetLineup")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	teamID := strings.TrimSpace(r.PathValue("teamID"))
	var req setLineupRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	entries := make([]usecase.LineupInput, 0, len(req.Entries))
	for _, item := range req.Entries {
		entries = append(entries, usecase.LineupInput{
			PlayerID:     item.PlayerID,
			IsStarter:    item.IsStarter,
			JerseyNumber: item.JerseyNumber,
			Position:     item.Position,
		})
	}
	count, err := h.matchService.SetLineup(ctx, usecase.SetLineupInput{
		MatchID: matchID,
		TeamID:  teamID,
		Entries: entries,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "set lineup failed", "match_id", matchID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"match_id": matchID,
		"team_id":  teamID,
		"entries":  count,
	})
}
