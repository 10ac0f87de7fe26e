package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/football-league/internal/domain/match"
	"github.com/riskibarqy/football-league/internal/domain/matchevent"
	"github.com/riskibarqy/football-league/internal/domain/standing"
	"github.com/riskibarqy/football-league/internal/domain/store"
	"github.com/riskibarqy/football-league/internal/platform/id"
	"github.com/riskibarqy/football-league/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type RecordGoalInput struct {
	MatchID        string
	ScorerID       string
	TeamID         string
	Minute         int
	ExtraMinute    *int
	AssistPlayerID string
	IsOwnGoal      bool
	IsPenalty      bool
	Description    string
}

type GoalResult struct {
	Goal   matchevent.Event
	Assist *matchevent.Event
	Score  match.Score
}

type RecordCardInput struct {
	MatchID     string
	PlayerID    string
	TeamID      string
	Minute      int
	ExtraMinute *int
	IsRed       bool
	Reason      string
}

type RecordSubstitutionInput struct {
	MatchID     string
	PlayerOutID string
	PlayerInID  string
	TeamID      string
	Minute      int
	ExtraMinute *int
}

type SubstitutionResult struct {
	Out matchevent.Event
	In  matchevent.Event
}

type RecordPenaltyMissInput struct {
	MatchID     string
	PlayerID    string
	TeamID      string
	Minute      int
	ExtraMinute *int
	Description string
}

// EventService records and removes match ledger entries and keeps the live
// score, and for finished matches the standings, consistent with them.
type EventService struct {
	reads     store.Repositories
	tx        store.TxRunner
	ids       id.Generator
	ledger    scoreLedger
	standings standingsInvalidator
	results   ResultPublisher
	logger    *logging.Logger
	now       func() time.Time
}

func NewEventService(reads store.Repositories, tx store.TxRunner, ids id.Generator, logger *logging.Logger) *EventService {
	if logger == nil {
		logger = logging.Default()
	}
	return &EventService{
		reads:  reads,
		tx:     tx,
		ids:    ids,
		ledger: scoreLedger{logger: logger},
		logger: logger,
		now:    time.Now,
	}
}

func (s *EventService) SetStandingsInvalidator(inv standingsInvalidator) {
	s.standings = inv
}

func (s *EventService) SetResultPublisher(p ResultPublisher) {
	s.results = p
}

func (s *EventService) RecordGoal(ctx context.Context, input RecordGoalInput) (GoalResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.RecordGoal", attribute.String("match.id", input.MatchID))
	defer span.End()

	input.MatchID = strings.TrimSpace(input.MatchID)
	input.ScorerID = strings.TrimSpace(input.ScorerID)
	input.TeamID = strings.TrimSpace(input.TeamID)
	input.AssistPlayerID = strings.TrimSpace(input.AssistPlayerID)
	if input.MatchID == "" || input.ScorerID == "" || input.TeamID == "" {
		return GoalResult{}, fmt.Errorf("%w: match id, scorer id and team id are required", ErrInvalidInput)
	}
	if err := matchevent.ValidateTiming(input.Minute, input.ExtraMinute); err != nil {
		return GoalResult{}, classifyDomainError(err)
	}

	kind := matchevent.GoalKind(input.IsOwnGoal, input.IsPenalty)
	withAssist := input.AssistPlayerID != "" && matchevent.CreditsAssist(kind)
	if withAssist && input.AssistPlayerID == input.ScorerID {
		return GoalResult{}, fmt.Errorf("%w: scorer cannot assist their own goal", ErrInvalidInput)
	}

	var (
		out      GoalResult
		finished match.Match
		previous match.Score
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		m, err := s.lockMatch(ctx, repos, input.MatchID, input.TeamID)
		if err != nil {
			return err
		}
		if !m.AcceptsGoalEvents() {
			return fmt.Errorf("%w: goals cannot be recorded while match is %s", ErrInvalidState, m.Status)
		}
		if err := s.checkPlayer(ctx, repos, input.ScorerID, input.TeamID); err != nil {
			return err
		}
		if withAssist {
			if err := s.checkPlayer(ctx, repos, input.AssistPlayerID, input.TeamID); err != nil {
				return err
			}
		}

		goal, err := s.newEvent(m.ID, input.TeamID, input.ScorerID, kind, input.Minute, input.ExtraMinute, input.Description)
		if err != nil {
			return err
		}
		events := []matchevent.Event{goal}
		if withAssist {
			goal.RelatedPlayerID = input.AssistPlayerID
			events[0] = goal
			assist, err := s.newEvent(m.ID, input.TeamID, input.AssistPlayerID, matchevent.KindAssist, input.Minute, input.ExtraMinute, "")
			if err != nil {
				return err
			}
			assist.RelatedPlayerID = input.ScorerID
			events = append(events, assist)
			out.Assist = &events[1]
		}
		if err := repos.Events.Create(ctx, events...); err != nil {
			return fmt.Errorf("create goal events: %w", err)
		}

		delta, err := matchevent.ScoreDelta(goal, m)
		if err != nil {
			return classifyDomainError(err)
		}
		previous = m.Score()
		if err := s.mutateScore(ctx, repos, &m, delta, 1); err != nil {
			return err
		}

		out.Goal = goal
		out.Score = m.Score()
		if m.IsFinished() {
			finished = m
		}
		return nil
	})
	if err != nil {
		return GoalResult{}, err
	}

	if finished.IsFinished() {
		s.correctResult(ctx, finished, previous)
	}
	s.logger.InfoContext(ctx, "goal recorded",
		"match_id", input.MatchID,
		"event_id", out.Goal.ID,
		"kind", string(out.Goal.Kind),
		"score", out.Score.String(),
	)
	return out, nil
}

func (s *EventService) RecordCard(ctx context.Context, input RecordCardInput) (matchevent.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.RecordCard", attribute.String("match.id", input.MatchID))
	defer span.End()

	input.MatchID = strings.TrimSpace(input.MatchID)
	input.PlayerID = strings.TrimSpace(input.PlayerID)
	input.TeamID = strings.TrimSpace(input.TeamID)
	if input.MatchID == "" || input.PlayerID == "" || input.TeamID == "" {
		return matchevent.Event{}, fmt.Errorf("%w: match id, player id and team id are required", ErrInvalidInput)
	}
	if err := matchevent.ValidateTiming(input.Minute, input.ExtraMinute); err != nil {
		return matchevent.Event{}, classifyDomainError(err)
	}

	var out matchevent.Event
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		m, err := s.lockMatch(ctx, repos, input.MatchID, input.TeamID)
		if err != nil {
			return err
		}
		if !m.AcceptsCardEvents() {
			return fmt.Errorf("%w: cards cannot be recorded while match is %s", ErrInvalidState, m.Status)
		}
		if err := s.checkPlayer(ctx, repos, input.PlayerID, input.TeamID); err != nil {
			return err
		}

		yellows, err := repos.Events.CountByPlayerAndKind(ctx, m.ID, input.PlayerID, matchevent.KindYellowCard)
		if err != nil {
			return fmt.Errorf("count player yellow cards: %w", err)
		}
		kind := matchevent.ResolveCardKind(input.IsRed, yellows)

		item, err := s.newEvent(m.ID, input.TeamID, input.PlayerID, kind, input.Minute, input.ExtraMinute, input.Reason)
		if err != nil {
			return err
		}
		if err := repos.Events.Create(ctx, item); err != nil {
			return fmt.Errorf("create card event: %w", err)
		}
		out = item
		return nil
	})
	if err != nil {
		return matchevent.Event{}, err
	}

	s.logger.InfoContext(ctx, "card recorded",
		"match_id", out.MatchID,
		"event_id", out.ID,
		"player_id", out.PlayerID,
		"kind", string(out.Kind),
	)
	return out, nil
}

func (s *EventService) RecordSubstitution(ctx context.Context, input RecordSubstitutionInput) (SubstitutionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.RecordSubstitution", attribute.String("match.id", input.MatchID))
	defer span.End()

	input.MatchID = strings.TrimSpace(input.MatchID)
	input.PlayerOutID = strings.TrimSpace(input.PlayerOutID)
	input.PlayerInID = strings.TrimSpace(input.PlayerInID)
	input.TeamID = strings.TrimSpace(input.TeamID)
	if input.MatchID == "" || input.PlayerOutID == "" || input.PlayerInID == "" || input.TeamID == "" {
		return SubstitutionResult{}, fmt.Errorf("%w: match id, player out id, player in id and team id are required", ErrInvalidInput)
	}
	if input.PlayerOutID == input.PlayerInID {
		return SubstitutionResult{}, fmt.Errorf("%w: substituted players must differ", ErrInvalidInput)
	}
	if err := matchevent.ValidateTiming(input.Minute, input.ExtraMinute); err != nil {
		return SubstitutionResult{}, classifyDomainError(err)
	}

	var out SubstitutionResult
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		m, err := s.lockMatch(ctx, repos, input.MatchID, input.TeamID)
		if err != nil {
			return err
		}
		if !m.AcceptsGoalEvents() {
			return fmt.Errorf("%w: substitutions cannot be recorded while match is %s", ErrInvalidState, m.Status)
		}
		for _, playerID := range []string{input.PlayerOutID, input.PlayerInID} {
			if err := s.checkPlayer(ctx, repos, playerID, input.TeamID); err != nil {
				return err
			}
		}

		subOut, err := s.newEvent(m.ID, input.TeamID, input.PlayerOutID, matchevent.KindSubstitutionOut, input.Minute, input.ExtraMinute, "")
		if err != nil {
			return err
		}
		subIn, err := s.newEvent(m.ID, input.TeamID, input.PlayerInID, matchevent.KindSubstitutionIn, input.Minute, input.ExtraMinute, "")
		if err != nil {
			return err
		}
		subOut.RelatedPlayerID = input.PlayerInID
		subIn.RelatedPlayerID = input.PlayerOutID
		if err := repos.Events.Create(ctx, subOut, subIn); err != nil {
			return fmt.Errorf("create substitution events: %w", err)
		}
		out = SubstitutionResult{Out: subOut, In: subIn}
		return nil
	})
	if err != nil {
		return SubstitutionResult{}, err
	}

	s.logger.InfoContext(ctx, "substitution recorded",
		"match_id", input.MatchID,
		"player_out_id", input.PlayerOutID,
		"player_in_id", input.PlayerInID,
	)
	return out, nil
}

func (s *EventService) RecordPenaltyMiss(ctx context.Context, input RecordPenaltyMissInput) (matchevent.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.RecordPenaltyMiss", attribute.String("match.id", input.MatchID))
	defer span.End()

	input.MatchID = strings.TrimSpace(input.MatchID)
	input.PlayerID = strings.TrimSpace(input.PlayerID)
	input.TeamID = strings.TrimSpace(input.TeamID)
	if input.MatchID == "" || input.PlayerID == "" || input.TeamID == "" {
		return matchevent.Event{}, fmt.Errorf("%w: match id, player id and team id are required", ErrInvalidInput)
	}
	if err := matchevent.ValidateTiming(input.Minute, input.ExtraMinute); err != nil {
		return matchevent.Event{}, classifyDomainError(err)
	}

	var out matchevent.Event
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		m, err := s.lockMatch(ctx, repos, input.MatchID, input.TeamID)
		if err != nil {
			return err
		}
		if !m.AcceptsGoalEvents() {
			return fmt.Errorf("%w: penalties cannot be recorded while match is %s", ErrInvalidState, m.Status)
		}
		if err := s.checkPlayer(ctx, repos, input.PlayerID, input.TeamID); err != nil {
			return err
		}

		item, err := s.newEvent(m.ID, input.TeamID, input.PlayerID, matchevent.KindPenaltyMissed, input.Minute, input.ExtraMinute, input.Description)
		if err != nil {
			return err
		}
		if err := repos.Events.Create(ctx, item); err != nil {
			return fmt.Errorf("create penalty miss event: %w", err)
		}
		out = item
		return nil
	})
	if err != nil {
		return matchevent.Event{}, err
	}
	return out, nil
}

// Delete removes a single ledger entry and reverses its score effect.
// Linked entries such as the assist of a goal are separate events.
func (s *EventService) Delete(ctx context.Context, matchID, eventID string) (match.Score, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.Delete", attribute.String("match.id", matchID))
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	eventID = strings.TrimSpace(eventID)
	if matchID == "" || eventID == "" {
		return match.Score{}, fmt.Errorf("%w: match id and event id are required", ErrInvalidInput)
	}

	var (
		score    match.Score
		finished match.Match
		previous match.Score
		scoring  bool
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		m, exists, err := repos.Matches.GetForUpdate(ctx, matchID)
		if err != nil {
			return fmt.Errorf("get match for update: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
		}
		item, exists, err := repos.Events.GetByID(ctx, matchID, eventID)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
		}

		delta, err := matchevent.ScoreDelta(item, m)
		if err != nil {
			return classifyDomainError(err)
		}
		if err := repos.Events.Delete(ctx, matchID, eventID); err != nil {
			return fmt.Errorf("delete event: %w", err)
		}
		previous = m.Score()
		if err := s.mutateScore(ctx, repos, &m, delta, -1); err != nil {
			return err
		}

		score = m.Score()
		scoring = matchevent.IsScoring(item.Kind)
		if m.IsFinished() {
			finished = m
		}
		return nil
	})
	if err != nil {
		return match.Score{}, err
	}

	if finished.IsFinished() && scoring {
		s.correctResult(ctx, finished, previous)
	}
	s.logger.InfoContext(ctx, "event deleted",
		"match_id", matchID,
		"event_id", eventID,
		"score", score.String(),
	)
	return score, nil
}

// ListByMatch returns the ledger in minute order.
func (s *EventService) ListByMatch(ctx context.Context, matchID string) ([]matchevent.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.ListByMatch")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if _, exists, err := s.reads.Matches.GetByID(ctx, matchID); err != nil {
		return nil, fmt.Errorf("get match: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	items, err := s.reads.Events.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	matchevent.SortLedger(items)
	return items, nil
}

// mutateScore runs the snapshot, mutate, compensate sequence for one score
// change. Standings are only touched when the match is already finished.
func (s *EventService) mutateScore(ctx context.Context, repos store.Repositories, m *match.Match, delta match.Score, sign int) error {
	if delta == (match.Score{}) {
		return nil
	}

	correction := standing.Correction{Before: m.Score()}
	if err := m.AdjustScore(delta, sign); err != nil {
		return classifyDomainError(err)
	}
	correction.After = m.Score()

	m.UpdatedAt = s.now().UTC()
	if err := repos.Matches.Update(ctx, *m); err != nil {
		return fmt.Errorf("update match score: %w", err)
	}
	if !m.IsFinished() {
		return nil
	}
	return s.ledger.compensate(ctx, repos, *m, correction)
}

func (s *EventService) lockMatch(ctx context.Context, repos store.Repositories, matchID, teamID string) (match.Match, error) {
	m, exists, err := repos.Matches.GetForUpdate(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match for update: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	if !m.Involves(teamID) {
		return match.Match{}, fmt.Errorf("%w: team %s does not play in match %s", ErrInvalidInput, teamID, matchID)
	}
	return m, nil
}

func (s *EventService) checkPlayer(ctx context.Context, repos store.Repositories, playerID, teamID string) error {
	item, exists, err := repos.Players.GetByID(ctx, playerID)
	if err != nil {
		return fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	if item.TeamID != teamID {
		return fmt.Errorf("%w: player %s does not belong to team %s", ErrInvalidInput, playerID, teamID)
	}
	return nil
}

func (s *EventService) newEvent(matchID, teamID, playerID string, kind matchevent.Kind, minute int, extra *int, description string) (matchevent.Event, error) {
	eventID, err := s.ids.NewID()
	if err != nil {
		return matchevent.Event{}, fmt.Errorf("generate event id: %w", err)
	}
	item := matchevent.Event{
		ID:          eventID,
		MatchID:     matchID,
		TeamID:      teamID,
		PlayerID:    playerID,
		Kind:        kind,
		Minute:      minute,
		ExtraMinute: extra,
		Description: strings.TrimSpace(description),
		CreatedAt:   s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return matchevent.Event{}, classifyDomainError(err)
	}
	return item, nil
}

// correctResult runs after commit once a finished match's score has moved.
func (s *EventService) correctResult(ctx context.Context, m match.Match, previous match.Score) {
	if s.standings != nil {
		s.standings.Invalidate(ctx, m.CompetitionID)
	}
	if s.results != nil && previous != m.Score() {
		s.results.PublishResult(ctx, newResultChange(ResultCorrected, m, previous, m.UpdatedAt))
	}
}
