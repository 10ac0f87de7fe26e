package memory

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/riskibarqy/football-league/internal/domain/coach"
	"github.com/riskibarqy/football-league/internal/domain/competition"
	"github.com/riskibarqy/football-league/internal/domain/player"
	"github.com/riskibarqy/football-league/internal/domain/standing"
	"github.com/riskibarqy/football-league/internal/domain/team"
	"gopkg.in/yaml.v3"
)

const seedDateLayout = "2006-01-02"

type seedFile struct {
	Competitions []seedCompetition `yaml:"competitions"`
	Teams        []seedTeam        `yaml:"teams"`
	Coaches      []seedCoach       `yaml:"coaches"`
}

type seedCompetition struct {
	ID             string   `yaml:"id"`
	Name           string   `yaml:"name"`
	Season         string   `yaml:"season"`
	StartDate      string   `yaml:"start_date"`
	EndDate        string   `yaml:"end_date"`
	Status         string   `yaml:"status"`
	TiebreakPolicy string   `yaml:"tiebreak_policy"`
	Teams          []string `yaml:"teams"`
}

type seedTeam struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	Short       string       `yaml:"short"`
	CountryCode string       `yaml:"country_code"`
	Players     []seedPlayer `yaml:"players"`
	// GenerateSquad fills the team with Squad(id) when no players are listed.
	GenerateSquad bool `yaml:"generate_squad"`
}

type seedPlayer struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Position    string `yaml:"position"`
	ShirtNumber int    `yaml:"shirt_number"`
}

type seedCoach struct {
	ID        string `yaml:"id"`
	TeamID    string `yaml:"team_id"`
	StartDate string `yaml:"start_date"`
	EndDate   string `yaml:"end_date"`
}

// LoadSeedFile reads a YAML seed document.
func LoadSeedFile(path string) (Seed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed file %s: %w", path, err)
	}
	return ParseSeed(raw)
}

func ParseSeed(raw []byte) (Seed, error) {
	var doc seedFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Seed{}, fmt.Errorf("decode seed: %w", err)
	}

	var out Seed
	for _, item := range doc.Competitions {
		start, err := parseSeedDate(item.StartDate)
		if err != nil {
			return Seed{}, fmt.Errorf("competition %s start_date: %w", item.ID, err)
		}
		end, err := parseSeedDate(item.EndDate)
		if err != nil {
			return Seed{}, fmt.Errorf("competition %s end_date: %w", item.ID, err)
		}
		status := competition.Status(strings.ToUpper(strings.TrimSpace(item.Status)))
		if status == "" {
			status = competition.StatusUpcoming
		}
		comp := competition.Competition{
			ID:             strings.TrimSpace(item.ID),
			Name:           strings.TrimSpace(item.Name),
			Season:         strings.TrimSpace(item.Season),
			StartDate:      start,
			EndDate:        end,
			Status:         status,
			TiebreakPolicy: competition.NormalizeTiebreakPolicy(item.TiebreakPolicy),
		}
		if err := comp.Validate(); err != nil {
			return Seed{}, fmt.Errorf("seed competition: %w", err)
		}
		out.Competitions = append(out.Competitions, comp)
		for _, teamID := range item.Teams {
			out.Standings = append(out.Standings, standing.New(comp.ID, strings.TrimSpace(teamID)))
		}
	}

	for _, item := range doc.Teams {
		t := team.Team{
			ID:          strings.TrimSpace(item.ID),
			Name:        strings.TrimSpace(item.Name),
			Short:       strings.TrimSpace(item.Short),
			CountryCode: strings.TrimSpace(item.CountryCode),
		}
		if err := t.Validate(); err != nil {
			return Seed{}, fmt.Errorf("seed team: %w", err)
		}
		out.Teams = append(out.Teams, t)

		if len(item.Players) == 0 && item.GenerateSquad {
			out.Players = append(out.Players, Squad(t.ID)...)
			continue
		}
		for _, p := range item.Players {
			pl := player.Player{
				ID:          strings.TrimSpace(p.ID),
				TeamID:      t.ID,
				Name:        strings.TrimSpace(p.Name),
				Position:    player.Position(strings.ToUpper(strings.TrimSpace(p.Position))),
				ShirtNumber: p.ShirtNumber,
			}
			if err := pl.Validate(); err != nil {
				return Seed{}, fmt.Errorf("seed player of team %s: %w", t.ID, err)
			}
			out.Players = append(out.Players, pl)
		}
	}

	for _, item := range doc.Coaches {
		start, err := parseSeedDate(item.StartDate)
		if err != nil {
			return Seed{}, fmt.Errorf("coach %s start_date: %w", item.ID, err)
		}
		assignment := coach.Assignment{
			CoachID:   strings.TrimSpace(item.ID),
			TeamID:    strings.TrimSpace(item.TeamID),
			StartDate: start,
		}
		if strings.TrimSpace(item.EndDate) != "" {
			end, err := parseSeedDate(item.EndDate)
			if err != nil {
				return Seed{}, fmt.Errorf("coach %s end_date: %w", item.ID, err)
			}
			assignment.EndDate = &end
		}
		if err := assignment.Validate(); err != nil {
			return Seed{}, fmt.Errorf("seed coach: %w", err)
		}
		out.Coaches = append(out.Coaches, assignment)
	}

	return out, nil
}

func parseSeedDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(seedDateLayout, value)
}
