package standing

import (
	"sort"

	"github.com/riskibarqy/football-league/internal/domain/competition"
	"github.com/riskibarqy/football-league/internal/domain/match"
)

// Ranked is a standing row with its table position.
type Ranked struct {
	Position int
	TeamName string
	Standing Standing
}

// H2HRecord is a team's record restricted to matches among a tie group.
type H2HRecord struct {
	Wins         int
	GoalsFor     int
	GoalsAgainst int
}

func (r H2HRecord) GoalDifference() int {
	return r.GoalsFor - r.GoalsAgainst
}

// HeadToHead counts results of finished matches played between members of
// group. The result depends on group membership and must not be reused for
// another group.
func HeadToHead(group []string, matches []match.Match) map[string]H2HRecord {
	members := make(map[string]struct{}, len(group))
	out := make(map[string]H2HRecord, len(group))
	for _, teamID := range group {
		members[teamID] = struct{}{}
		out[teamID] = H2HRecord{}
	}

	for _, item := range matches {
		if !item.IsFinished() {
			continue
		}
		if _, ok := members[item.HomeTeamID]; !ok {
			continue
		}
		if _, ok := members[item.AwayTeamID]; !ok {
			continue
		}

		home := out[item.HomeTeamID]
		away := out[item.AwayTeamID]
		home.GoalsFor += item.HomeScore
		home.GoalsAgainst += item.AwayScore
		away.GoalsFor += item.AwayScore
		away.GoalsAgainst += item.HomeScore
		switch {
		case item.HomeScore > item.AwayScore:
			home.Wins++
		case item.AwayScore > item.HomeScore:
			away.Wins++
		}
		out[item.HomeTeamID] = home
		out[item.AwayTeamID] = away
	}

	return out
}

// Rank orders rows under the given policy. teamNames resolves display names;
// matches are the competition's matches and are only read for head-to-head.
func Rank(rows []Standing, policy competition.TiebreakPolicy, teamNames map[string]string, matches []match.Match) []Ranked {
	ordered := make([]Standing, len(rows))
	copy(ordered, rows)

	nameOf := func(s Standing) string {
		if name, ok := teamNames[s.teamID]; ok {
			return name
		}
		return s.teamID
	}
	byName := func(a, b Standing) bool {
		if nameOf(a) != nameOf(b) {
			return nameOf(a) < nameOf(b)
		}
		return a.teamID < b.teamID
	}

	switch policy {
	case competition.TiebreakHeadToHeadFirst:
		sort.SliceStable(ordered, func(i, j int) bool {
			if ordered[i].points != ordered[j].points {
				return ordered[i].points > ordered[j].points
			}
			return byName(ordered[i], ordered[j])
		})
		for start := 0; start < len(ordered); {
			end := start + 1
			for end < len(ordered) && ordered[end].points == ordered[start].points {
				end++
			}
			if end-start > 1 {
				sortTieGroup(ordered[start:end], matches, byName)
			}
			start = end
		}
	default:
		sort.SliceStable(ordered, func(i, j int) bool {
			a, b := ordered[i], ordered[j]
			if a.points != b.points {
				return a.points > b.points
			}
			if a.GoalDifference() != b.GoalDifference() {
				return a.GoalDifference() > b.GoalDifference()
			}
			if a.goalsFor != b.goalsFor {
				return a.goalsFor > b.goalsFor
			}
			return byName(a, b)
		})
	}

	out := make([]Ranked, 0, len(ordered))
	for i, row := range ordered {
		out = append(out, Ranked{
			Position: i + 1,
			TeamName: nameOf(row),
			Standing: row,
		})
	}
	return out
}

func sortTieGroup(group []Standing, matches []match.Match, byName func(a, b Standing) bool) {
	teamIDs := make([]string, 0, len(group))
	for _, row := range group {
		teamIDs = append(teamIDs, row.teamID)
	}
	h2h := HeadToHead(teamIDs, matches)

	sort.SliceStable(group, func(i, j int) bool {
		a, b := group[i], group[j]
		ha, hb := h2h[a.teamID], h2h[b.teamID]
		if ha.Wins != hb.Wins {
			return ha.Wins > hb.Wins
		}
		if ha.GoalDifference() != hb.GoalDifference() {
			return ha.GoalDifference() > hb.GoalDifference()
		}
		if a.GoalDifference() != b.GoalDifference() {
			return a.GoalDifference() > b.GoalDifference()
		}
		if a.goalsFor != b.goalsFor {
			return a.goalsFor > b.goalsFor
		}
		return byName(a, b)
	})
}
