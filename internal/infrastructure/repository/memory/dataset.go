package memory

import (
	"github.com/riskibarqy/football-league/internal/domain/coach"
	"github.com/riskibarqy/football-league/internal/domain/competition"
	"github.com/riskibarqy/football-league/internal/domain/match"
	"github.com/riskibarqy/football-league/internal/domain/matchevent"
	"github.com/riskibarqy/football-league/internal/domain/player"
	"github.com/riskibarqy/football-league/internal/domain/standing"
	"github.com/riskibarqy/football-league/internal/domain/team"
)

// dataset is the whole in-memory database. A transaction works on a clone
// and replaces the live dataset on commit.
type dataset struct {
	competitions     map[string]competition.Competition
	competitionOrder []string
	teams            map[string]team.Team
	players          map[string]player.Player
	coaches          map[string][]coach.Assignment
	matches          map[string]match.Match
	lineups          map[string][]match.LineupEntry
	events           map[string][]matchevent.Event
	standings        map[string]map[string]standing.Standing
}

func newDataset() *dataset {
	return &dataset{
		competitions: make(map[string]competition.Competition),
		teams:        make(map[string]team.Team),
		players:      make(map[string]player.Player),
		coaches:      make(map[string][]coach.Assignment),
		matches:      make(map[string]match.Match),
		lineups:      make(map[string][]match.LineupEntry),
		events:       make(map[string][]matchevent.Event),
		standings:    make(map[string]map[string]standing.Standing),
	}
}

// clone copies every map and slice. Values are plain structs; the only
// pointers they carry (event extra minutes, assignment end dates) are never
// mutated after creation, so sharing them is safe.
func (d *dataset) clone() *dataset {
	out := &dataset{
		competitions:     cloneMap(d.competitions),
		competitionOrder: append([]string(nil), d.competitionOrder...),
		teams:            cloneMap(d.teams),
		players:          cloneMap(d.players),
		coaches:          make(map[string][]coach.Assignment, len(d.coaches)),
		matches:          cloneMap(d.matches),
		lineups:          make(map[string][]match.LineupEntry, len(d.lineups)),
		events:           make(map[string][]matchevent.Event, len(d.events)),
		standings:        make(map[string]map[string]standing.Standing, len(d.standings)),
	}
	for k, v := range d.coaches {
		out.coaches[k] = append([]coach.Assignment(nil), v...)
	}
	for k, v := range d.lineups {
		out.lineups[k] = append([]match.LineupEntry(nil), v...)
	}
	for k, v := range d.events {
		out.events[k] = append([]matchevent.Event(nil), v...)
	}
	for k, v := range d.standings {
		out.standings[k] = cloneMap(v)
	}
	return out
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (d *dataset) load(seed Seed) {
	for _, item := range seed.Competitions {
		if _, exists := d.competitions[item.ID]; !exists {
			d.competitionOrder = append(d.competitionOrder, item.ID)
		}
		d.competitions[item.ID] = item
	}
	for _, item := range seed.Teams {
		d.teams[item.ID] = item
	}
	for _, item := range seed.Players {
		d.players[item.ID] = item
	}
	for _, item := range seed.Coaches {
		d.coaches[item.TeamID] = append(d.coaches[item.TeamID], item)
	}
	for _, item := range seed.Standings {
		rows := d.standings[item.CompetitionID()]
		if rows == nil {
			rows = make(map[string]standing.Standing)
			d.standings[item.CompetitionID()] = rows
		}
		rows[item.TeamID()] = item
	}
}
