package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/football-league/internal/usecase"
)

func (h *Handler) RecordGoal(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordGoal")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	var req recordGoalRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.eventService.RecordGoal(ctx, usecase.RecordGoalInput{
		MatchID:        matchID,
		ScorerID:       req.ScorerID,
		TeamID:         req.TeamID,
		Minute:         req.Minute,
		ExtraMinute:    req.ExtraMinute,
		AssistPlayerID: req.AssistPlayerID,
		IsOwnGoal:      req.IsOwnGoal,
		IsPenalty:      req.IsPenalty,
		Description:    req.Description,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record goal failed", "match_id", matchID, "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := goalResultDTO{
		Goal:  eventToDTO(result.Goal),
		Score: scoreToDTO(result.Score),
	}
	if result.Assist != nil {
		assist := eventToDTO(*result.Assist)
		out.Assist = &assist
	}
	writeSuccess(ctx, w, http.StatusCreated, out)
}

func (h *Handler) RecordCard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordCard")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	var req recordCardRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.eventService.RecordCard(ctx, usecase.RecordCardInput{
		MatchID:     matchID,
		PlayerID:    req.PlayerID,
		TeamID:      req.TeamID,
		Minute:      req.Minute,
		ExtraMinute: req.ExtraMinute,
		IsRed:       req.IsRed,
		Reason:      req.Reason,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record card failed", "match_id", matchID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, eventToDTO(item))
}

func (h *Handler) RecordSubstitution(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordSubstitution")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	var req recordSubstitutionRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.eventService.RecordSubstitution(ctx, usecase.RecordSubstitutionInput{
		MatchID:     matchID,
		PlayerOutID: req.PlayerOutID,
		PlayerInID:  req.PlayerInID,
		TeamID:      req.TeamID,
		Minute:      req.Minute,
		ExtraMinute: req.ExtraMinute,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record substitution failed", "match_id", matchID, "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, substitutionResultDTO{
		Out: eventToDTO(result.Out),
		In:  eventToDTO(result.In),
	})
}

func (h *Handler) RecordPenaltyMiss(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordPenaltyMiss")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	var req recordPenaltyMissRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.eventService.RecordPenaltyMiss(ctx, usecase.RecordPenaltyMissInput{
		MatchID:     matchID,
		PlayerID:    req.PlayerID,
		TeamID:      req.TeamID,
		Minute:      req.Minute,
		ExtraMinute: req.ExtraMinute,
		Description: req.Description,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record penalty miss failed", "match_id", matchID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, eventToDTO(item))
}

func (h *Handler) ListMatchEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchEvents")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	items, err := h.eventService.ListByMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list match events failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eventsToDTO(items))
}

func (h *Handler) DeleteMatchEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatchEvent")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	eventID := strings.TrimSpace(r.PathValue("eventID"))
	score, err := h.eventService.Delete(ctx, matchID, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "delete match event failed", "match_id", matchID, "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"id":     eventID,
		"status": "deleted",
		"score":  scoreToDTO(score),
	})
}
