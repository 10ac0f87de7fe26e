package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/football-league/internal/domain/coach"
	"github.com/riskibarqy/football-league/internal/domain/competition"
	"github.com/riskibarqy/football-league/internal/domain/match"
	"github.com/riskibarqy/football-league/internal/domain/matchevent"
	"github.com/riskibarqy/football-league/internal/domain/player"
	"github.com/riskibarqy/football-league/internal/domain/standing"
	"github.com/riskibarqy/football-league/internal/domain/team"
)

type CompetitionRepository struct {
	src source
}

func (r *CompetitionRepository) List(_ context.Context) ([]competition.Competition, error) {
	var out []competition.Competition
	r.src.read(func(d *dataset) {
		out = make([]competition.Competition, 0, len(d.competitionOrder))
		for _, id := range d.competitionOrder {
			out = append(out, d.competitions[id])
		}
	})
	return out, nil
}

func (r *CompetitionRepository) GetByID(_ context.Context, competitionID string) (competition.Competition, bool, error) {
	var (
		item   competition.Competition
		exists bool
	)
	r.src.read(func(d *dataset) {
		item, exists = d.competitions[competitionID]
	})
	return item, exists, nil
}

type TeamRepository struct {
	src source
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	var (
		item   team.Team
		exists bool
	)
	r.src.read(func(d *dataset) {
		item, exists = d.teams[teamID]
	})
	return item, exists, nil
}

func (r *TeamRepository) ListByIDs(_ context.Context, teamIDs []string) ([]team.Team, error) {
	out := make([]team.Team, 0, len(teamIDs))
	r.src.read(func(d *dataset) {
		for _, id := range teamIDs {
			if item, ok := d.teams[id]; ok {
				out = append(out, item)
			}
		}
	})
	return out, nil
}

type PlayerRepository struct {
	src source
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	var (
		item   player.Player
		exists bool
	)
	r.src.read(func(d *dataset) {
		item, exists = d.players[playerID]
	})
	return item, exists, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	out := make([]player.Player, 0, len(playerIDs))
	r.src.read(func(d *dataset) {
		for _, id := range playerIDs {
			if item, ok := d.players[id]; ok {
				out = append(out, item)
			}
		}
	})
	return out, nil
}

type CoachRepository struct {
	src source
}

func (r *CoachRepository) ListByTeam(_ context.Context, teamID string) ([]coach.Assignment, error) {
	var out []coach.Assignment
	r.src.read(func(d *dataset) {
		out = append([]coach.Assignment(nil), d.coaches[teamID]...)
	})
	return out, nil
}

type MatchRepository struct {
	src source
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	var (
		item   match.Match
		exists bool
	)
	r.src.read(func(d *dataset) {
		item, exists = d.matches[matchID]
	})
	return item, exists, nil
}

// GetForUpdate needs no row lock here: transactions are already serialized.
func (r *MatchRepository) GetForUpdate(ctx context.Context, matchID string) (match.Match, bool, error) {
	return r.GetByID(ctx, matchID)
}

func (r *MatchRepository) ListByCompetition(_ context.Context, competitionID string) ([]match.Match, error) {
	return r.list(competitionID, false), nil
}

func (r *MatchRepository) ListFinishedByCompetition(_ context.Context, competitionID string) ([]match.Match, error) {
	return r.list(competitionID, true), nil
}

func (r *MatchRepository) list(competitionID string, finishedOnly bool) []match.Match {
	out := make([]match.Match, 0)
	r.src.read(func(d *dataset) {
		for _, item := range d.matches {
			if item.CompetitionID != competitionID {
				continue
			}
			if finishedOnly && !item.IsFinished() {
				continue
			}
			out = append(out, item)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ScheduledAt.Equal(out[j].ScheduledAt) {
			return out[i].ScheduledAt.Before(out[j].ScheduledAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *MatchRepository) Create(_ context.Context, item match.Match) error {
	return r.src.write(func(d *dataset) error {
		if _, exists := d.matches[item.ID]; exists {
			return fmt.Errorf("match %s already exists", item.ID)
		}
		d.matches[item.ID] = item
		return nil
	})
}

func (r *MatchRepository) Update(_ context.Context, item match.Match) error {
	return r.src.write(func(d *dataset) error {
		if _, exists := d.matches[item.ID]; !exists {
			return fmt.Errorf("match %s not found", item.ID)
		}
		d.matches[item.ID] = item
		return nil
	})
}

func (r *MatchRepository) Delete(_ context.Context, matchID string) error {
	return r.src.write(func(d *dataset) error {
		delete(d.matches, matchID)
		return nil
	})
}

type LineupRepository struct {
	src source
}

func (r *LineupRepository) ListByMatch(_ context.Context, matchID string) ([]match.LineupEntry, error) {
	var out []match.LineupEntry
	r.src.read(func(d *dataset) {
		out = append([]match.LineupEntry(nil), d.lineups[matchID]...)
	})
	return out, nil
}

func (r *LineupRepository) ReplaceForTeam(_ context.Context, matchID, teamID string, entries []match.LineupEntry) error {
	return r.src.write(func(d *dataset) error {
		current := d.lineups[matchID]
		next := make([]match.LineupEntry, 0, len(current)+len(entries))
		for _, item := range current {
			if item.TeamID != teamID {
				next = append(next, item)
			}
		}
		next = append(next, entries...)
		d.lineups[matchID] = next
		return nil
	})
}

func (r *LineupRepository) DeleteByMatch(_ context.Context, matchID string) error {
	return r.src.write(func(d *dataset) error {
		delete(d.lineups, matchID)
		return nil
	})
}

type EventRepository struct {
	src source
}

func (r *EventRepository) Create(_ context.Context, items ...matchevent.Event) error {
	return r.src.write(func(d *dataset) error {
		for _, item := range items {
			for _, existing := range d.events[item.MatchID] {
				if existing.ID == item.ID {
					return fmt.Errorf("event %s already exists", item.ID)
				}
			}
		}
		for _, item := range items {
			d.events[item.MatchID] = append(d.events[item.MatchID], item)
		}
		return nil
	})
}

func (r *EventRepository) GetByID(_ context.Context, matchID, eventID string) (matchevent.Event, bool, error) {
	var (
		item   matchevent.Event
		exists bool
	)
	r.src.read(func(d *dataset) {
		for _, ev := range d.events[matchID] {
			if ev.ID == eventID {
				item, exists = ev, true
				return
			}
		}
	})
	return item, exists, nil
}

func (r *EventRepository) ListByMatch(_ context.Context, matchID string) ([]matchevent.Event, error) {
	var out []matchevent.Event
	r.src.read(func(d *dataset) {
		out = append([]matchevent.Event(nil), d.events[matchID]...)
	})
	matchevent.SortLedger(out)
	return out, nil
}

func (r *EventRepository) CountByPlayerAndKind(_ context.Context, matchID, playerID string, kind matchevent.Kind) (int, error) {
	count := 0
	r.src.read(func(d *dataset) {
		for _, ev := range d.events[matchID] {
			if ev.PlayerID == playerID && ev.Kind == kind {
				count++
			}
		}
	})
	return count, nil
}

func (r *EventRepository) Delete(_ context.Context, matchID, eventID string) error {
	return r.src.write(func(d *dataset) error {
		events := d.events[matchID]
		for i, ev := range events {
			if ev.ID == eventID {
				d.events[matchID] = append(events[:i:i], events[i+1:]...)
				return nil
			}
		}
		return nil
	})
}

func (r *EventRepository) DeleteByMatch(_ context.Context, matchID string) error {
	return r.src.write(func(d *dataset) error {
		delete(d.events, matchID)
		return nil
	})
}

type StandingRepository struct {
	src source
}

// ListByCompetition returns rows ordered by team id; ranking is the caller's job.
func (r *StandingRepository) ListByCompetition(_ context.Context, competitionID string) ([]standing.Standing, error) {
	var out []standing.Standing
	r.src.read(func(d *dataset) {
		rows := d.standings[competitionID]
		out = make([]standing.Standing, 0, len(rows))
		for _, row := range rows {
			out = append(out, row)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].TeamID() < out[j].TeamID() })
	return out, nil
}

func (r *StandingRepository) GetForUpdate(_ context.Context, competitionID, teamID string) (standing.Standing, bool, error) {
	var (
		item   standing.Standing
		exists bool
	)
	r.src.read(func(d *dataset) {
		item, exists = d.standings[competitionID][teamID]
	})
	return item, exists, nil
}

func (r *StandingRepository) Create(_ context.Context, item standing.Standing) error {
	return r.src.write(func(d *dataset) error {
		rows := d.standings[item.CompetitionID()]
		if rows == nil {
			rows = make(map[string]standing.Standing)
			d.standings[item.CompetitionID()] = rows
		}
		if _, exists := rows[item.TeamID()]; exists {
			return fmt.Errorf("standing competition=%s team=%s already exists", item.CompetitionID(), item.TeamID())
		}
		rows[item.TeamID()] = item
		return nil
	})
}

func (r *StandingRepository) Save(_ context.Context, items ...standing.Standing) error {
	return r.src.write(func(d *dataset) error {
		for _, item := range items {
			if _, exists := d.standings[item.CompetitionID()][item.TeamID()]; !exists {
				return fmt.Errorf("standing competition=%s team=%s not found", item.CompetitionID(), item.TeamID())
			}
		}
		for _, item := range items {
			d.standings[item.CompetitionID()][item.TeamID()] = item
		}
		return nil
	})
}

func (r *StandingRepository) ReplaceByCompetition(_ context.Context, competitionID string, items []standing.Standing) error {
	return r.src.write(func(d *dataset) error {
		rows := make(map[string]standing.Standing, len(items))
		for _, item := range items {
			if item.CompetitionID() != competitionID {
				return fmt.Errorf("standing for competition %s cannot replace rows of %s", item.CompetitionID(), competitionID)
			}
			rows[item.TeamID()] = item
		}
		d.standings[competitionID] = rows
		return nil
	})
}
