package postgres

import (
	"database/sql"
	"time"
)

type competitionTableModel struct {
	ID             int64        `db:"id"`
	PublicID       string       `db:"public_id"`
	Name           string       `db:"name"`
	Season         string       `db:"season"`
	StartDate      sql.NullTime `db:"start_date"`
	EndDate        sql.NullTime `db:"end_date"`
	Status         string       `db:"status"`
	TiebreakPolicy string       `db:"tiebreak_policy"`
	CreatedAt      time.Time    `db:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at"`
	DeletedAt      *time.Time   `db:"deleted_at"`
}

type teamTableModel struct {
	ID          int64      `db:"id"`
	PublicID    string     `db:"public_id"`
	Name        string     `db:"name"`
	Short       string     `db:"short"`
	CountryCode string     `db:"country_code"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type playerTableModel struct {
	ID           int64      `db:"id"`
	PublicID     string     `db:"public_id"`
	TeamPublicID string     `db:"team_public_id"`
	Name         string     `db:"name"`
	Position     string     `db:"position"`
	ShirtNumber  int        `db:"shirt_number"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

type coachAssignmentTableModel struct {
	ID            int64        `db:"id"`
	CoachPublicID string       `db:"coach_public_id"`
	TeamPublicID  string       `db:"team_public_id"`
	StartDate     time.Time    `db:"start_date"`
	EndDate       sql.NullTime `db:"end_date"`
}
