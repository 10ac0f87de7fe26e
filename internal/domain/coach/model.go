package coach

import (
	"fmt"
	"time"
)

// Assignment records that a coach led a team over a date range.
// A nil EndDate means the assignment is still open.
type Assignment struct {
	CoachID   string
	TeamID    string
	StartDate time.Time
	EndDate   *time.Time
}

func (a Assignment) Validate() error {
	if a.CoachID == "" {
		return fmt.Errorf("coach id is required")
	}
	if a.TeamID == "" {
		return fmt.Errorf("coach assignment team id is required")
	}
	if a.StartDate.IsZero() {
		return fmt.Errorf("coach assignment start date is required")
	}
	if a.EndDate != nil && a.EndDate.Before(a.StartDate) {
		return fmt.Errorf("coach assignment end date must not be before start date")
	}

	return nil
}

// ActiveOn reports whether the assignment covers the calendar day of at.
func (a Assignment) ActiveOn(at time.Time) bool {
	day := truncateDay(at)
	if truncateDay(a.StartDate).After(day) {
		return false
	}
	if a.EndDate != nil && truncateDay(*a.EndDate).Before(day) {
		return false
	}
	return true
}

// ResolveActive picks the coach in charge on the given date. When several
// assignments overlap, the most recently started one wins.
func ResolveActive(assignments []Assignment, at time.Time) (string, bool) {
	var (
		best  Assignment
		found bool
	)
	for _, item := range assignments {
		if !item.ActiveOn(at) {
			continue
		}
		if !found || item.StartDate.After(best.StartDate) {
			best = item
			found = true
		}
	}
	if !found {
		return "", false
	}
	return best.CoachID, true
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
