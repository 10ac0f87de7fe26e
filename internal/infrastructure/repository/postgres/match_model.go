package postgres

import (
	"database/sql"
	"time"
)

type matchTableModel struct {
	ID                  int64     `db:"id"`
	PublicID            string    `db:"public_id"`
	CompetitionPublicID string    `db:"competition_public_id"`
	HomeTeamPublicID    string    `db:"home_team_public_id"`
	AwayTeamPublicID    string    `db:"away_team_public_id"`
	HomeCoachPublicID   string    `db:"home_coach_public_id"`
	AwayCoachPublicID   string    `db:"away_coach_public_id"`
	ScheduledAt         time.Time `db:"scheduled_at"`
	Status              string    `db:"status"`
	HomeScore           int       `db:"home_score"`
	AwayScore           int       `db:"away_score"`
	Matchday            int       `db:"matchday"`
	Minute              int       `db:"minute"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}

type matchInsertModel struct {
	PublicID            string    `db:"public_id"`
	CompetitionPublicID string    `db:"competition_public_id"`
	HomeTeamPublicID    string    `db:"home_team_public_id"`
	AwayTeamPublicID    string    `db:"away_team_public_id"`
	HomeCoachPublicID   string    `db:"home_coach_public_id"`
	AwayCoachPublicID   string    `db:"away_coach_public_id"`
	ScheduledAt         time.Time `db:"scheduled_at"`
	Status              string    `db:"status"`
	HomeScore           int       `db:"home_score"`
	AwayScore           int       `db:"away_score"`
	Matchday            int       `db:"matchday"`
	Minute              int       `db:"minute"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}

type lineupTableModel struct {
	MatchPublicID  string `db:"match_public_id"`
	TeamPublicID   string `db:"team_public_id"`
	PlayerPublicID string `db:"player_public_id"`
	IsStarter      bool   `db:"is_starter"`
	JerseyNumber   int    `db:"jersey_number"`
	Position       string `db:"position"`
}

type eventTableModel struct {
	PublicID              string        `db:"public_id"`
	MatchPublicID         string        `db:"match_public_id"`
	TeamPublicID          string        `db:"team_public_id"`
	PlayerPublicID        string        `db:"player_public_id"`
	RelatedPlayerPublicID string        `db:"related_player_public_id"`
	Kind                  string        `db:"kind"`
	Minute                int           `db:"minute"`
	ExtraMinute           sql.NullInt64 `db:"extra_minute"`
	Description           string        `db:"description"`
	CreatedAt             time.Time     `db:"created_at"`
}

type standingTableModel struct {
	CompetitionPublicID string    `db:"competition_public_id"`
	TeamPublicID        string    `db:"team_public_id"`
	Points              int       `db:"points"`
	Played              int       `db:"played"`
	Won                 int       `db:"won"`
	Drawn               int       `db:"drawn"`
	Lost                int       `db:"lost"`
	GoalsFor            int       `db:"goals_for"`
	GoalsAgainst        int       `db:"goals_against"`
	UpdatedAt           time.Time `db:"updated_at"`
}
