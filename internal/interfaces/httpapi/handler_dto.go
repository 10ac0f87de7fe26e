package httpapi

import (
	"time"

	"github.com/riskibarqy/football-league/internal/domain/competition"
	"github.com/riskibarqy/football-league/internal/domain/match"
	"github.com/riskibarqy/football-league/internal/domain/matchevent"
	"github.com/riskibarqy/football-league/internal/domain/standing"
	"github.com/riskibarqy/football-league/internal/usecase"
)

type createMatchRequest struct {
	HomeTeamID  string `json:"home_team_id" validate:"required"`
	AwayTeamID  string `json:"away_team_id" validate:"required,nefield=HomeTeamID"`
	ScheduledAt string `json:"scheduled_at" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Matchday    int    `json:"matchday" validate:"required,min=1"`
}

type rescheduleMatchRequest struct {
	ScheduledAt string `json:"scheduled_at" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

type registerTeamRequest struct {
	TeamID string `json:"team_id" validate:"required"`
}

type lineupEntryRequest struct {
	PlayerID     string `json:"player_id" validate:"required"`
	IsStarter    bool   `json:"is_starter"`
	JerseyNumber int    `json:"jersey_number" validate:"omitempty,min=1,max=99"`
	Position     string `json:"position" validate:"omitempty,max=10"`
}

type setLineupRequest struct {
	Entries []lineupEntryRequest `json:"entries" validate:"required,min=1,max=30,dive"`
}

type eventTimingRequest struct {
	Minute      int  `json:"minute" validate:"min=1,max=120"`
	ExtraMinute *int `json:"extra_minute,omitempty" validate:"omitempty,min=1,max=15"`
}

type recordGoalRequest struct {
	eventTimingRequest
	ScorerID       string `json:"scorer_id" validate:"required"`
	TeamID         string `json:"team_id" validate:"required"`
	AssistPlayerID string `json:"assist_player_id,omitempty"`
	IsOwnGoal      bool   `json:"is_own_goal"`
	IsPenalty      bool   `json:"is_penalty"`
	Description    string `json:"description,omitempty" validate:"max=500"`
}

type recordCardRequest struct {
	eventTimingRequest
	PlayerID string `json:"player_id" validate:"required"`
	TeamID   string `json:"team_id" validate:"required"`
	IsRed    bool   `json:"is_red"`
	Reason   string `json:"reason,omitempty" validate:"max=500"`
}

type recordSubstitutionRequest struct {
	eventTimingRequest
	PlayerOutID string `json:"player_out_id" validate:"required"`
	PlayerInID  string `json:"player_in_id" validate:"required,nefield=PlayerOutID"`
	TeamID      string `json:"team_id" validate:"required"`
}

type recordPenaltyMissRequest struct {
	eventTimingRequest
	PlayerID    string `json:"player_id" validate:"required"`
	TeamID      string `json:"team_id" validate:"required"`
	Description string `json:"description,omitempty" validate:"max=500"`
}

type competitionDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Season         string `json:"season"`
	Status         string `json:"status"`
	TiebreakPolicy string `json:"tiebreak_policy"`
	StartDate      string `json:"start_date,omitempty"`
	EndDate        string `json:"end_date,omitempty"`
}

type scoreDTO struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

type matchDTO struct {
	ID            string   `json:"id"`
	CompetitionID string   `json:"competition_id"`
	HomeTeamID    string   `json:"home_team_id"`
	AwayTeamID    string   `json:"away_team_id"`
	HomeCoachID   string   `json:"home_coach_id,omitempty"`
	AwayCoachID   string   `json:"away_coach_id,omitempty"`
	ScheduledAt   string   `json:"scheduled_at"`
	Status        string   `json:"status"`
	Score         scoreDTO `json:"score"`
	Matchday      int      `json:"matchday"`
	Minute        int      `json:"minute"`
	UpdatedAt     string   `json:"updated_at,omitempty"`
}

type lineupEntryDTO struct {
	TeamID       string `json:"team_id"`
	PlayerID     string `json:"player_id"`
	IsStarter    bool   `json:"is_starter"`
	JerseyNumber int    `json:"jersey_number,omitempty"`
	Position     string `json:"position,omitempty"`
}

type eventDTO struct {
	ID              string `json:"id"`
	MatchID         string `json:"match_id"`
	TeamID          string `json:"team_id"`
	PlayerID        string `json:"player_id"`
	RelatedPlayerID string `json:"related_player_id,omitempty"`
	Kind            string `json:"kind"`
	Minute          int    `json:"minute"`
	ExtraMinute     *int   `json:"extra_minute,omitempty"`
	Description     string `json:"description,omitempty"`
	CreatedAt       string `json:"created_at"`
}

type matchDetailsDTO struct {
	Match   matchDTO         `json:"match"`
	Lineups []lineupEntryDTO `json:"lineups"`
	Events  []eventDTO       `json:"events"`
}

type goalResultDTO struct {
	Goal   eventDTO  `json:"goal"`
	Assist *eventDTO `json:"assist,omitempty"`
	Score  scoreDTO  `json:"score"`
}

type substitutionResultDTO struct {
	Out eventDTO `json:"out"`
	In  eventDTO `json:"in"`
}

type standingRowDTO struct {
	Position       int    `json:"position"`
	TeamID         string `json:"team_id"`
	TeamName       string `json:"team_name"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	Points         int    `json:"points"`
}

type standingsTableDTO struct {
	Competition competitionDTO   `json:"competition"`
	Rows        []standingRowDTO `json:"rows"`
}

type recalculateResultDTO struct {
	CompetitionID    string `json:"competition_id"`
	TeamsUpdated     int    `json:"teams_updated"`
	MatchesProcessed int    `json:"matches_processed"`
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

func formatDate(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.DateOnly)
}

func competitionToDTO(v competition.Competition) competitionDTO {
	return competitionDTO{
		ID:             v.ID,
		Name:           v.Name,
		Season:         v.Season,
		Status:         string(v.Status),
		TiebreakPolicy: string(v.TiebreakPolicy),
		StartDate:      formatDate(v.StartDate),
		EndDate:        formatDate(v.EndDate),
	}
}

func scoreToDTO(v match.Score) scoreDTO {
	return scoreDTO{Home: v.Home, Away: v.Away}
}

func matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		ID:            v.ID,
		CompetitionID: v.CompetitionID,
		HomeTeamID:    v.HomeTeamID,
		AwayTeamID:    v.AwayTeamID,
		HomeCoachID:   v.HomeCoachID,
		AwayCoachID:   v.AwayCoachID,
		ScheduledAt:   formatTime(v.ScheduledAt),
		Status:        string(v.Status),
		Score:         scoreToDTO(v.Score()),
		Matchday:      v.Matchday,
		Minute:        v.Minute,
		UpdatedAt:     formatTime(v.UpdatedAt),
	}
}

func eventToDTO(v matchevent.Event) eventDTO {
	return eventDTO{
		ID:              v.ID,
		MatchID:         v.MatchID,
		TeamID:          v.TeamID,
		PlayerID:        v.PlayerID,
		RelatedPlayerID: v.RelatedPlayerID,
		Kind:            string(v.Kind),
		Minute:          v.Minute,
		ExtraMinute:     v.ExtraMinute,
		Description:     v.Description,
		CreatedAt:       formatTime(v.CreatedAt),
	}
}

func eventsToDTO(items []matchevent.Event) []eventDTO {
	out := make([]eventDTO, 0, len(items))
	for _, item := range items {
		out = append(out, eventToDTO(item))
	}
	return out
}

func matchDetailsToDTO(v usecase.MatchDetails) matchDetailsDTO {
	lineups := make([]lineupEntryDTO, 0, len(v.Lineups))
	for _, item := range v.Lineups {
		lineups = append(lineups, lineupEntryDTO{
			TeamID:       item.TeamID,
			PlayerID:     item.PlayerID,
			IsStarter:    item.IsStarter,
			JerseyNumber: item.JerseyNumber,
			Position:     item.Position,
		})
	}

	return matchDetailsDTO{
		Match:   matchToDTO(v.Match),
		Lineups: lineups,
		Events:  eventsToDTO(v.Events),
	}
}

func standingRowToDTO(v standing.Ranked) standingRowDTO {
	row := v.Standing
	return standingRowDTO{
		Position:       v.Position,
		TeamID:         row.TeamID(),
		TeamName:       v.TeamName,
		Played:         row.Played(),
		Won:            row.Won(),
		Drawn:          row.Drawn(),
		Lost:           row.Lost(),
		GoalsFor:       row.GoalsFor(),
		GoalsAgainst:   row.GoalsAgainst(),
		GoalDifference: row.GoalDifference(),
		Points:         row.Points(),
	}
}

func standingsTableToDTO(v usecase.StandingsTable) standingsTableDTO {
	rows := make([]standingRowDTO, 0, len(v.Rows))
	for _, item := range v.Rows {
		rows = append(rows, standingRowToDTO(item))
	}
	return standingsTableDTO{
		Competition: competitionToDTO(v.Competition),
		Rows:        rows,
	}
}
