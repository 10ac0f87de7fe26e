package match

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusLive      Status = "LIVE"
	StatusHalfTime  Status = "HALF_TIME"
	StatusFinished  Status = "FINISHED"
	StatusPostponed Status = "POSTPONED"
	StatusCancelled Status = "CANCELLED"
)

const (
	firstHalfKickoffMinute  = 1
	secondHalfKickoffMinute = 46
	fullTimeMinute          = 90
)

// Side identifies the home or away participant of a match.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Score is a home/away goal pair.
type Score struct {
	Home int
	Away int
}

func (s Score) String() string {
	return fmt.Sprintf("%d-%d", s.Home, s.Away)
}

// Match is one fixture of a competition.
type Match struct {
	ID            string
	CompetitionID string
	HomeTeamID    string
	AwayTeamID    string
	HomeCoachID   string
	AwayCoachID   string
	ScheduledAt   time.Time
	Status        Status
	HomeScore     int
	AwayScore     int
	Matchday      int
	Minute        int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (m Match) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("match id is required")
	}
	if strings.TrimSpace(m.CompetitionID) == "" {
		return fmt.Errorf("match competition id is required")
	}
	if strings.TrimSpace(m.HomeTeamID) == "" || strings.TrimSpace(m.AwayTeamID) == "" {
		return fmt.Errorf("match home and away teams are required")
	}
	if m.HomeTeamID == m.AwayTeamID {
		return fmt.Errorf("match home and away teams must differ")
	}
	if m.ScheduledAt.IsZero() {
		return fmt.Errorf("match scheduled date is required")
	}
	if m.Matchday < 1 {
		return fmt.Errorf("match matchday must be >= 1")
	}

	return nil
}

func (m Match) Score() Score {
	return Score{Home: m.HomeScore, Away: m.AwayScore}
}

// SideOf returns which side teamID plays on.
func (m Match) SideOf(teamID string) (Side, bool) {
	switch teamID {
	case m.HomeTeamID:
		return SideHome, true
	case m.AwayTeamID:
		return SideAway, true
	default:
		return "", false
	}
}

func (m Match) Involves(teamID string) bool {
	_, ok := m.SideOf(teamID)
	return ok
}

func (m Match) IsFinished() bool {
	return m.Status == StatusFinished
}

func (m Match) IsInPlay() bool {
	return m.Status == StatusLive || m.Status == StatusHalfTime
}
