package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/football-league/internal/config"
	"github.com/riskibarqy/football-league/internal/domain/store"
	"github.com/riskibarqy/football-league/internal/infrastructure/auth"
	"github.com/riskibarqy/football-league/internal/infrastructure/notify"
	cacherepo "github.com/riskibarqy/football-league/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/football-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/football-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/football-league/internal/interfaces/httpapi"
	"github.com/riskibarqy/football-league/internal/platform/cache"
	idgen "github.com/riskibarqy/football-league/internal/platform/id"
	"github.com/riskibarqy/football-league/internal/platform/logging"
	"github.com/riskibarqy/football-league/internal/platform/resilience"
	"github.com/riskibarqy/football-league/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

type backend interface {
	store.TxRunner
	Repositories() store.Repositories
}

// Container holds the wired services shared by the API and the admin CLI.
type Container struct {
	Competitions *usecase.CompetitionService
	Matches      *usecase.MatchService
	Events       *usecase.EventService
	Standings    *usecase.StandingService
	Verifier     *auth.JWTVerifier

	closers []func() error
}

// Build opens the configured store and wires every service on top of it.
func Build(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Container, error) {
	if logger == nil {
		logger = logging.Default()
	}

	seed, err := loadSeed(cfg)
	if err != nil {
		return nil, err
	}

	c := &Container{}
	var db backend
	switch cfg.StoreDriver {
	case config.StorePostgres:
		sqlDB, err := openPostgres(cfg)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, sqlDB.Close)
		if err := sqlDB.PingContext(ctx); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		if err := postgres.BootstrapSeed(ctx, sqlDB, seed); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("bootstrap seed: %w", err)
		}
		db = postgres.NewStore(sqlDB)
	default:
		db = memory.NewStore(seed)
	}
	logger.InfoContext(ctx, "store ready",
		"driver", cfg.StoreDriver,
		"competitions", len(seed.Competitions),
		"teams", len(seed.Teams),
	)

	reads := db.Repositories()
	var cacheStore *cache.Store
	if cfg.CacheEnabled {
		cacheStore = cache.NewStore(cfg.CacheTTL)
		reads.Competitions = cacherepo.NewCompetitionRepository(reads.Competitions, cacheStore)
		reads.Teams = cacherepo.NewTeamRepository(reads.Teams, cacheStore)
	}

	ids := idgen.NewUUIDGenerator()
	c.Competitions = usecase.NewCompetitionService(reads.Competitions)
	c.Standings = usecase.NewStandingService(reads, db, cacheStore, logger)
	c.Standings.SetMaxWorkers(cfg.RecalcMaxWorkers)
	c.Matches = usecase.NewMatchService(reads, db, ids, logger)
	c.Matches.SetStandingsInvalidator(c.Standings)
	c.Events = usecase.NewEventService(reads, db, ids, logger)
	c.Events.SetStandingsInvalidator(c.Standings)
	c.Verifier = auth.NewJWTVerifier(cfg.AdminJWTSecret, cfg.AdminJWTIssuer)

	if cfg.ResultWebhookURL != "" {
		publisher, err := newResultWebhook(cfg, logger)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		c.Matches.SetResultPublisher(publisher)
		c.Events.SetResultPublisher(publisher)
		c.closers = append(c.closers, func() error {
			ctx, cancel := context.WithTimeout(context.Background(), webhookDrainTimeout)
			defer cancel()
			return publisher.Close(ctx)
		})
		logger.InfoContext(ctx, "result webhook enabled",
			"max_retries", cfg.ResultWebhookMaxRetries,
			"queue_size", cfg.ResultWebhookQueueSize,
		)
	}

	return c, nil
}

const webhookDrainTimeout = 10 * time.Second

func newResultWebhook(cfg config.Config, logger *logging.Logger) (*notify.WebhookPublisher, error) {
	return notify.NewWebhookPublisher(notify.WebhookConfig{
		URL:        cfg.ResultWebhookURL,
		Secret:     cfg.ResultWebhookSecret,
		Timeout:    cfg.ResultWebhookTimeout,
		MaxRetries: cfg.ResultWebhookMaxRetries,
		QueueSize:  cfg.ResultWebhookQueueSize,
		CircuitBreaker: resilience.BreakerConfig{
			Enabled:          true,
			FailureThreshold: cfg.ResultWebhookBreakerFails,
			OpenTimeout:      cfg.ResultWebhookBreakerOpen,
		},
	}, logger)
}

// Close drains the result webhook and releases the store connection.
func (c *Container) Close() error {
	var firstErr error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	return firstErr
}

func NewHTTPServer(cfg config.Config, c *Container, logger *logging.Logger) (*http.Server, error) {
	handler := httpapi.NewHandler(c.Competitions, c.Matches, c.Events, c.Standings, logger)
	router := httpapi.NewRouter(handler, c.Verifier, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func loadSeed(cfg config.Config) (memory.Seed, error) {
	seed := memory.DefaultSeed()
	if strings.TrimSpace(cfg.SeedFile) == "" {
		return seed, nil
	}

	extra, err := memory.LoadSeedFile(cfg.SeedFile)
	if err != nil {
		return memory.Seed{}, fmt.Errorf("load seed file: %w", err)
	}
	return seed.Merge(extra), nil
}

func openPostgres(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBApplicationName)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	otelsql.ReportDBStatsMetrics(db.DB)
	return db, nil
}
