package team

import "fmt"

// Team is a football club that can be registered into competitions.
type Team struct {
	ID          string
	Name        string
	Short       string
	CountryCode string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
