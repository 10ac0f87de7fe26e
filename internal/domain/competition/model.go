package competition

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusUpcoming   Status = "UPCOMING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusFinished   Status = "FINISHED"
)

// TiebreakPolicy selects how teams level on points are ordered.
type TiebreakPolicy string

const (
	TiebreakHeadToHeadFirst     TiebreakPolicy = "HEAD_TO_HEAD_FIRST"
	TiebreakGoalDifferenceFirst TiebreakPolicy = "GOAL_DIFFERENCE_FIRST"
)

// Competition is one season of a championship.
type Competition struct {
	ID             string
	Name           string
	Season         string
	StartDate      time.Time
	EndDate        time.Time
	Status         Status
	TiebreakPolicy TiebreakPolicy
}

func (c Competition) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("competition id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("competition name is required")
	}
	if strings.TrimSpace(c.Season) == "" {
		return fmt.Errorf("competition season is required")
	}
	if !c.StartDate.IsZero() && !c.EndDate.IsZero() && c.EndDate.Before(c.StartDate) {
		return fmt.Errorf("competition end date must not be before start date")
	}
	switch c.Status {
	case StatusUpcoming, StatusInProgress, StatusFinished:
	default:
		return fmt.Errorf("invalid competition status: %s", c.Status)
	}
	switch c.TiebreakPolicy {
	case TiebreakHeadToHeadFirst, TiebreakGoalDifferenceFirst:
	default:
		return fmt.Errorf("invalid tiebreak policy: %s", c.TiebreakPolicy)
	}

	return nil
}

func NormalizeTiebreakPolicy(value string) TiebreakPolicy {
	switch TiebreakPolicy(strings.ToUpper(strings.TrimSpace(value))) {
	case TiebreakHeadToHeadFirst:
		return TiebreakHeadToHeadFirst
	default:
		return TiebreakGoalDifferenceFirst
	}
}
