package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/football-league/internal/domain/coach"
	"github.com/riskibarqy/football-league/internal/domain/match"
	"github.com/riskibarqy/football-league/internal/domain/matchevent"
	"github.com/riskibarqy/football-league/internal/domain/store"
	"github.com/riskibarqy/football-league/internal/platform/id"
	"github.com/riskibarqy/football-league/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

type CreateMatchInput struct {
	CompetitionID string
	HomeTeamID    string
	AwayTeamID    string
	ScheduledAt   time.Time
	Matchday      int
}

type LineupInput struct {
	PlayerID     string
	IsStarter    bool
	JerseyNumber int
	Position     string
}

type SetLineupInput struct {
	MatchID string
	TeamID  string
	Entries []LineupInput
}

// MatchDetails is a match with its team sheets and ordered ledger.
type MatchDetails struct {
	Match   match.Match
	Lineups []match.LineupEntry
	Events  []matchevent.Event
}

// standingsInvalidator drops cached standings after a committed change.
type standingsInvalidator interface {
	Invalidate(ctx context.Context, competitionID string)
}

type MatchService struct {
	reads     store.Repositories
	tx        store.TxRunner
	ids       id.Generator
	ledger    scoreLedger
	standings standingsInvalidator
	results   ResultPublisher
	logger    *logging.Logger
	now       func() time.Time
}

func NewMatchService(reads store.Repositories, tx store.TxRunner, ids id.Generator, logger *logging.Logger) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchService{
		reads:  reads,
		tx:     tx,
		ids:    ids,
		ledger: scoreLedger{logger: logger},
		logger: logger,
		now:    time.Now,
	}
}

func (s *MatchService) SetStandingsInvalidator(inv standingsInvalidator) {
	s.standings = inv
}

func (s *MatchService) SetResultPublisher(p ResultPublisher) {
	s.results = p
}

func (s *MatchService) Create(ctx context.Context, input CreateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Create")
	defer span.End()

	input.CompetitionID = strings.TrimSpace(input.CompetitionID)
	input.HomeTeamID = strings.TrimSpace(input.HomeTeamID)
	input.AwayTeamID = strings.TrimSpace(input.AwayTeamID)
	if input.CompetitionID == "" || input.HomeTeamID == "" || input.AwayTeamID == "" {
		return match.Match{}, fmt.Errorf("%w: competition_id, home_team_id and away_team_id are required", ErrInvalidInput)
	}

	matchID, err := s.ids.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}
	now := s.now().UTC()
	item := match.Match{
		ID:            matchID,
		CompetitionID: input.CompetitionID,
		HomeTeamID:    input.HomeTeamID,
		AwayTeamID:    input.AwayTeamID,
		ScheduledAt:   input.ScheduledAt.UTC(),
		Status:        match.StatusScheduled,
		Matchday:      input.Matchday,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := item.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		if _, exists, err := repos.Competitions.GetByID(ctx, item.CompetitionID); err != nil {
			return fmt.Errorf("get competition: %w", err)
		} else if !exists {
			return fmt.Errorf("%w: competition=%s", ErrNotFound, item.CompetitionID)
		}
		for _, teamID := range []string{item.HomeTeamID, item.AwayTeamID} {
			if _, exists, err := repos.Teams.GetByID(ctx, teamID); err != nil {
				return fmt.Errorf("get team: %w", err)
			} else if !exists {
				return fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
			}
		}

		home, err := s.resolveCoach(ctx, repos.Coaches, item.HomeTeamID, item.ScheduledAt)
		if err != nil {
			return err
		}
		away, err := s.resolveCoach(ctx, repos.Coaches, item.AwayTeamID, item.ScheduledAt)
		if err != nil {
			return err
		}
		item.HomeCoachID = home
		item.AwayCoachID = away

		if err := repos.Matches.Create(ctx, item); err != nil {
			return fmt.Errorf("create match: %w", err)
		}
		return nil
	})
	if err != nil {
		return match.Match{}, err
	}

	s.logger.InfoContext(ctx, "match created",
		"match_id", item.ID,
		"competition_id", item.CompetitionID,
		"home_team_id", item.HomeTeamID,
		"away_team_id", item.AwayTeamID,
	)
	return item, nil
}

func (s *MatchService) resolveCoach(ctx context.Context, repo coach.Repository, teamID string, at time.Time) (string, error) {
	assignments, err := repo.ListByTeam(ctx, teamID)
	if err != nil {
		return "", fmt.Errorf("list coach assignments team=%s: %w", teamID, err)
	}
	coachID, _ := coach.ResolveActive(assignments, at)
	return coachID, nil
}

func (s *MatchService) Get(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Get")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, exists, err := s.reads.Matches.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return item, nil
}

// GetDetails loads the match, its lineups and its ledger in parallel.
func (s *MatchService) GetDetails(ctx context.Context, matchID string) (MatchDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetDetails", attribute.String("match.id", matchID))
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return MatchDetails{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	var (
		out    MatchDetails
		exists bool
	)
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		var err error
		out.Match, exists, err = s.reads.Matches.GetByID(ctx, matchID)
		if err != nil {
			return fmt.Errorf("get match: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		out.Lineups, err = s.reads.Lineups.ListByMatch(ctx, matchID)
		if err != nil {
			return fmt.Errorf("list lineups: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		out.Events, err = s.reads.Events.ListByMatch(ctx, matchID)
		if err != nil {
			return fmt.Errorf("list events: %w", err)
		}
		return nil
	})
	if err := p.Wait(); err != nil {
		return MatchDetails{}, err
	}
	if !exists {
		return MatchDetails{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	matchevent.SortLedger(out.Events)
	return out, nil
}

func (s *MatchService) ListByCompetition(ctx context.Context, competitionID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListByCompetition")
	defer span.End()

	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return nil, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}
	if _, exists, err := s.reads.Competitions.GetByID(ctx, competitionID); err != nil {
		return nil, fmt.Errorf("get competition: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: competition=%s", ErrNotFound, competitionID)
	}

	items, err := s.reads.Matches.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("list matches by competition: %w", err)
	}
	return items, nil
}

// Start kicks off a scheduled match or resumes it after half time.
func (s *MatchService) Start(ctx context.Context, matchID string) (match.Match, error) {
	return s.transition(ctx, "start", matchID, func(ctx context.Context, repos store.Repositories, m *match.Match) error {
		var lineups []match.LineupEntry
		if m.Status == match.StatusScheduled {
			var err error
			lineups, err = repos.Lineups.ListByMatch(ctx, m.ID)
			if err != nil {
				return fmt.Errorf("list lineups: %w", err)
			}
		}
		return m.Start(lineups)
	})
}

func (s *MatchService) HalfTime(ctx context.Context, matchID string) (match.Match, error) {
	return s.transition(ctx, "halftime", matchID, func(_ context.Context, _ store.Repositories, m *match.Match) error {
		return m.HalfTime()
	})
}

// End finishes the match and applies its score to both standing rows.
func (s *MatchService) End(ctx context.Context, matchID string) (match.Match, error) {
	return s.transition(ctx, "end", matchID, func(ctx context.Context, repos store.Repositories, m *match.Match) error {
		if err := m.End(); err != nil {
			return err
		}
		return s.ledger.apply(ctx, repos, *m)
	})
}

func (s *MatchService) Postpone(ctx context.Context, matchID string) (match.Match, error) {
	return s.transition(ctx, "postpone", matchID, func(_ context.Context, _ store.Repositories, m *match.Match) error {
		return m.Postpone()
	})
}

func (s *MatchService) Cancel(ctx context.Context, matchID string) (match.Match, error) {
	return s.transition(ctx, "cancel", matchID, func(_ context.Context, _ store.Repositories, m *match.Match) error {
		return m.Cancel()
	})
}

func (s *MatchService) Reschedule(ctx context.Context, matchID string, at time.Time) (match.Match, error) {
	if at.IsZero() {
		return match.Match{}, fmt.Errorf("%w: scheduled_at is required", ErrInvalidInput)
	}
	return s.transition(ctx, "reschedule", matchID, func(_ context.Context, _ store.Repositories, m *match.Match) error {
		return m.Reschedule(at.UTC())
	})
}

func (s *MatchService) transition(
	ctx context.Context,
	action string,
	matchID string,
	fn func(ctx context.Context, repos store.Repositories, m *match.Match) error,
) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService."+action, attribute.String("match.id", matchID))
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	var (
		updated    match.Match
		prevStatus match.Status
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		item, exists, err := repos.Matches.GetForUpdate(ctx, matchID)
		if err != nil {
			return fmt.Errorf("get match for update: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
		}

		prevStatus = item.Status
		if err := fn(ctx, repos, &item); err != nil {
			return classifyDomainError(err)
		}
		item.UpdatedAt = s.now().UTC()
		if err := repos.Matches.Update(ctx, item); err != nil {
			return fmt.Errorf("update match: %w", err)
		}
		updated = item
		return nil
	})
	if err != nil {
		return match.Match{}, err
	}

	if updated.Status == match.StatusFinished {
		s.invalidate(ctx, updated.CompetitionID)
		s.publish(ctx, newResultChange(ResultRecorded, updated, updated.Score(), updated.UpdatedAt))
	}
	s.logger.InfoContext(ctx, "match status changed",
		"match_id", updated.ID,
		"action", action,
		"from", string(prevStatus),
		"to", string(updated.Status),
		"minute", updated.Minute,
	)
	return updated, nil
}

// Delete removes a match with its lineups and events. A finished match has
// its result reverted first.
func (s *MatchService) Delete(ctx context.Context, matchID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Delete", attribute.String("match.id", matchID))
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	var deleted match.Match
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		item, exists, err := repos.Matches.GetForUpdate(ctx, matchID)
		if err != nil {
			return fmt.Errorf("get match for update: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
		}
		if err := item.CheckDeletable(); err != nil {
			return classifyDomainError(err)
		}

		if item.IsFinished() {
			if err := s.ledger.revert(ctx, repos, item); err != nil {
				return err
			}
		}
		if err := repos.Events.DeleteByMatch(ctx, item.ID); err != nil {
			return fmt.Errorf("delete match events: %w", err)
		}
		if err := repos.Lineups.DeleteByMatch(ctx, item.ID); err != nil {
			return fmt.Errorf("delete match lineups: %w", err)
		}
		if err := repos.Matches.Delete(ctx, item.ID); err != nil {
			return fmt.Errorf("delete match: %w", err)
		}
		deleted = item
		return nil
	})
	if err != nil {
		return err
	}

	if deleted.IsFinished() {
		s.invalidate(ctx, deleted.CompetitionID)
		s.publish(ctx, newResultChange(ResultRemoved, deleted, deleted.Score(), s.now()))
	}
	s.logger.InfoContext(ctx, "match deleted",
		"match_id", deleted.ID,
		"status", string(deleted.Status),
		"score", deleted.Score().String(),
	)
	return nil
}

// SetLineup replaces one team's sheet for a match that has not kicked off.
func (s *MatchService) SetLineup(ctx context.Context, input SetLineupInput) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.SetLineup", attribute.String("match.id", input.MatchID))
	defer span.End()

	input.MatchID = strings.TrimSpace(input.MatchID)
	input.TeamID = strings.TrimSpace(input.TeamID)
	if input.MatchID == "" || input.TeamID == "" {
		return 0, fmt.Errorf("%w: match id and team id are required", ErrInvalidInput)
	}

	entries := make([]match.LineupEntry, 0, len(input.Entries))
	for _, item := range input.Entries {
		entries = append(entries, match.LineupEntry{
			MatchID:      input.MatchID,
			TeamID:       input.TeamID,
			PlayerID:     strings.TrimSpace(item.PlayerID),
			IsStarter:    item.IsStarter,
			JerseyNumber: item.JerseyNumber,
			Position:     strings.TrimSpace(item.Position),
		})
	}
	if err := match.ValidateTeamSheet(input.TeamID, entries); err != nil {
		return 0, classifyDomainError(err)
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		item, exists, err := repos.Matches.GetForUpdate(ctx, input.MatchID)
		if err != nil {
			return fmt.Errorf("get match for update: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: match=%s", ErrNotFound, input.MatchID)
		}
		if !item.Involves(input.TeamID) {
			return fmt.Errorf("%w: team %s does not play in match %s", ErrInvalidState, input.TeamID, item.ID)
		}
		if !item.AcceptsLineups() {
			return fmt.Errorf("%w: lineups cannot be changed while match is %s", ErrInvalidState, item.Status)
		}

		playerIDs := make([]string, 0, len(entries))
		for _, entry := range entries {
			playerIDs = append(playerIDs, entry.PlayerID)
		}
		players, err := repos.Players.GetByIDs(ctx, playerIDs)
		if err != nil {
			return fmt.Errorf("get lineup players: %w", err)
		}
		teamOf := make(map[string]string, len(players))
		for _, p := range players {
			teamOf[p.ID] = p.TeamID
		}
		for _, playerID := range playerIDs {
			teamID, ok := teamOf[playerID]
			if !ok {
				return fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
			}
			if teamID != input.TeamID {
				return fmt.Errorf("%w: player %s does not belong to team %s", ErrInvalidInput, playerID, input.TeamID)
			}
		}

		if err := repos.Lineups.ReplaceForTeam(ctx, item.ID, input.TeamID, entries); err != nil {
			return fmt.Errorf("replace lineup: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "lineup saved",
		"match_id", input.MatchID,
		"team_id", input.TeamID,
		"entries", len(entries),
	)
	return len(entries), nil
}

func (s *MatchService) invalidate(ctx context.Context, competitionID string) {
	if s.standings != nil {
		s.standings.Invalidate(ctx, competitionID)
	}
}

func (s *MatchService) publish(ctx context.Context, change ResultChange) {
	if s.results != nil {
		s.results.PublishResult(ctx, change)
	}
}
