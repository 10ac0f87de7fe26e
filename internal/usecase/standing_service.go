package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/football-league/internal/domain/competition"
	"github.com/riskibarqy/football-league/internal/domain/match"
	"github.com/riskibarqy/football-league/internal/domain/standing"
	"github.com/riskibarqy/football-league/internal/domain/store"
	"github.com/riskibarqy/football-league/internal/platform/cache"
	"github.com/riskibarqy/football-league/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

const (
	standingsCacheKeyPrefix  = "standings:"
	defaultRecalcWorkerCount = 4
)

// StandingsTable is the ranked table of one competition.
type StandingsTable struct {
	Competition competition.Competition
	Rows        []standing.Ranked
}

type RecalculateResult struct {
	CompetitionID    string
	TeamsUpdated     int
	MatchesProcessed int
}

type RecalculateOutcome struct {
	RecalculateResult
	Error      string
	DurationMs int64
}

type RecalculateAllResult struct {
	Competitions []RecalculateOutcome
	SuccessCount int
	FailedCount  int
}

type StandingService struct {
	reads   store.Repositories
	tx      store.TxRunner
	cache   *cache.Store
	logger  *logging.Logger
	workers int
}

func NewStandingService(reads store.Repositories, tx store.TxRunner, cacheStore *cache.Store, logger *logging.Logger) *StandingService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StandingService{
		reads:   reads,
		tx:      tx,
		cache:   cacheStore,
		logger:  logger,
		workers: defaultRecalcWorkerCount,
	}
}

// SetMaxWorkers bounds RecalculateAll concurrency.
func (s *StandingService) SetMaxWorkers(n int) {
	if n > 0 {
		s.workers = n
	}
}

// GetStandings returns the ranked table under the competition's tiebreak
// policy. It never mutates state.
func (s *StandingService) GetStandings(ctx context.Context, competitionID string) (StandingsTable, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.GetStandings", attribute.String("competition.id", competitionID))
	defer span.End()

	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return StandingsTable{}, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}

	if s.cache == nil {
		return s.loadStandings(ctx, competitionID)
	}
	v, err := s.cache.GetOrLoad(ctx, standingsCacheKeyPrefix+competitionID, func(ctx context.Context) (any, error) {
		return s.loadStandings(ctx, competitionID)
	})
	if err != nil {
		return StandingsTable{}, err
	}
	table, _ := v.(StandingsTable)
	return StandingsTable{
		Competition: table.Competition,
		Rows:        append([]standing.Ranked(nil), table.Rows...),
	}, nil
}

func (s *StandingService) loadStandings(ctx context.Context, competitionID string) (StandingsTable, error) {
	comp, exists, err := s.reads.Competitions.GetByID(ctx, competitionID)
	if err != nil {
		return StandingsTable{}, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return StandingsTable{}, fmt.Errorf("%w: competition=%s", ErrNotFound, competitionID)
	}

	var (
		rows    []standing.Standing
		matches []match.Match
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = s.reads.Standings.ListByCompetition(gCtx, competitionID)
		if err != nil {
			return fmt.Errorf("list standings: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if comp.TiebreakPolicy != competition.TiebreakHeadToHeadFirst {
			return nil
		}
		var err error
		matches, err = s.reads.Matches.ListFinishedByCompetition(gCtx, competitionID)
		if err != nil {
			return fmt.Errorf("list finished matches: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return StandingsTable{}, err
	}

	teamIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		teamIDs = append(teamIDs, row.TeamID())
	}
	teams, err := s.reads.Teams.ListByIDs(ctx, teamIDs)
	if err != nil {
		return StandingsTable{}, fmt.Errorf("list standing teams: %w", err)
	}
	names := make(map[string]string, len(teams))
	for _, item := range teams {
		names[item.ID] = item.Name
	}

	return StandingsTable{
		Competition: comp,
		Rows:        standing.Rank(rows, comp.TiebreakPolicy, names, matches),
	}, nil
}

func (s *StandingService) Invalidate(ctx context.Context, competitionID string) {
	if s.cache == nil {
		return
	}
	s.cache.Delete(ctx, standingsCacheKeyPrefix+competitionID)
}

// RegisterTeam creates the all-zero standing row for a team joining a competition.
func (s *StandingService) RegisterTeam(ctx context.Context, competitionID, teamID string) (standing.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.RegisterTeam", attribute.String("competition.id", competitionID))
	defer span.End()

	competitionID = strings.TrimSpace(competitionID)
	teamID = strings.TrimSpace(teamID)
	if competitionID == "" || teamID == "" {
		return standing.Standing{}, fmt.Errorf("%w: competition id and team id are required", ErrInvalidInput)
	}

	row := standing.New(competitionID, teamID)
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		if _, exists, err := repos.Competitions.GetByID(ctx, competitionID); err != nil {
			return fmt.Errorf("get competition: %w", err)
		} else if !exists {
			return fmt.Errorf("%w: competition=%s", ErrNotFound, competitionID)
		}
		if _, exists, err := repos.Teams.GetByID(ctx, teamID); err != nil {
			return fmt.Errorf("get team: %w", err)
		} else if !exists {
			return fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
		}
		if _, exists, err := repos.Standings.GetForUpdate(ctx, competitionID, teamID); err != nil {
			return fmt.Errorf("get standing: %w", err)
		} else if exists {
			return fmt.Errorf("%w: team %s is already registered in competition %s", ErrInvalidState, teamID, competitionID)
		}

		if err := repos.Standings.Create(ctx, row); err != nil {
			return fmt.Errorf("create standing: %w", err)
		}
		return nil
	})
	if err != nil {
		return standing.Standing{}, err
	}

	s.Invalidate(ctx, competitionID)
	s.logger.InfoContext(ctx, "team registered", "competition_id", competitionID, "team_id", teamID)
	return row, nil
}

// Recalculate rebuilds every standing row of the competition from its
// finished matches in a single transaction.
func (s *StandingService) Recalculate(ctx context.Context, competitionID string) (RecalculateResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.Recalculate", attribute.String("competition.id", competitionID))
	defer span.End()

	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return RecalculateResult{}, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}

	var result RecalculateResult
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		if _, exists, err := repos.Competitions.GetByID(ctx, competitionID); err != nil {
			return fmt.Errorf("get competition: %w", err)
		} else if !exists {
			return fmt.Errorf("%w: competition=%s", ErrNotFound, competitionID)
		}

		current, err := repos.Standings.ListByCompetition(ctx, competitionID)
		if err != nil {
			return fmt.Errorf("list standings: %w", err)
		}
		teamIDs := make([]string, 0, len(current))
		for _, row := range current {
			teamIDs = append(teamIDs, row.TeamID())
		}
		matches, err := repos.Matches.ListFinishedByCompetition(ctx, competitionID)
		if err != nil {
			return fmt.Errorf("list finished matches: %w", err)
		}

		rebuilt := standing.Recalculate(competitionID, teamIDs, matches)
		if err := repos.Standings.ReplaceByCompetition(ctx, competitionID, rebuilt.Rows); err != nil {
			return fmt.Errorf("replace standings: %w", err)
		}

		result = RecalculateResult{
			CompetitionID:    competitionID,
			TeamsUpdated:     len(rebuilt.Rows),
			MatchesProcessed: rebuilt.MatchesProcessed,
		}
		return nil
	})
	if err != nil {
		return RecalculateResult{}, err
	}

	s.Invalidate(ctx, competitionID)
	s.logger.InfoContext(ctx, "standings recalculated",
		"competition_id", competitionID,
		"teams_updated", result.TeamsUpdated,
		"matches_processed", result.MatchesProcessed,
	)
	return result, nil
}

// RecalculateAll recalculates every competition on a bounded worker pool.
// Each competition runs in its own transaction; one failure does not stop
// the others.
func (s *StandingService) RecalculateAll(ctx context.Context) (RecalculateAllResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.RecalculateAll")
	defer span.End()

	competitions, err := s.reads.Competitions.List(ctx)
	if err != nil {
		return RecalculateAllResult{}, fmt.Errorf("list competitions: %w", err)
	}
	if len(competitions) == 0 {
		return RecalculateAllResult{}, nil
	}

	workerCount := s.workers
	if workerCount > len(competitions) {
		workerCount = len(competitions)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RecalculateAllResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		out     RecalculateAllResult
		workers sync.WaitGroup
	)
	for _, item := range competitions {
		competitionID := item.ID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			result, err := s.Recalculate(ctx, competitionID)
			outcome := RecalculateOutcome{
				RecalculateResult: result,
				DurationMs:        time.Since(start).Milliseconds(),
			}
			outcome.CompetitionID = competitionID
			if err != nil {
				outcome.Error = err.Error()
				s.logger.WarnContext(ctx, "recalculate competition failed", "competition_id", competitionID, "error", err)
			}

			mu.Lock()
			defer mu.Unlock()
			out.Competitions = append(out.Competitions, outcome)
			if err != nil {
				out.FailedCount++
			} else {
				out.SuccessCount++
			}
		}); err != nil {
			workers.Done()
			return RecalculateAllResult{}, fmt.Errorf("submit recalculation to worker pool: %w", err)
		}
	}
	workers.Wait()

	sort.SliceStable(out.Competitions, func(i, j int) bool {
		return out.Competitions[i].CompetitionID < out.Competitions[j].CompetitionID
	})
	return out, nil
}
