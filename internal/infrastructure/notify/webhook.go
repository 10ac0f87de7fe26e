// Package notify delivers committed result changes to an external webhook.
package notify

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/football-league/internal/platform/logging"
	"github.com/riskibarqy/football-league/internal/platform/resilience"
	"github.com/riskibarqy/football-league/internal/usecase"
	"github.com/sourcegraph/conc"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	SignatureHeader = "X-Football-League-Signature"
	EventHeader     = "X-Football-League-Event"
	AttemptHeader   = "X-Football-League-Attempt"

	defaultQueueSize = 256
	maxLoggedBody    = 512
)

var (
	tracer = otel.Tracer("football-league/internal/infrastructure/notify")

	errTransient = crerr.New("webhook transient failure")
	errClosed    = crerr.New("webhook publisher is closed")
)

type WebhookConfig struct {
	URL            string
	Secret         string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	QueueSize      int
	CircuitBreaker resilience.BreakerConfig
}

// WebhookPublisher queues result changes and posts them one at a time, in
// commit order, from a single background worker.
type WebhookPublisher struct {
	client     *fasthttp.Client
	url        string
	secret     []byte
	timeout    time.Duration
	maxRetries int
	backoff    time.Duration
	breaker    *resilience.CircuitBreaker
	logger     *logging.Logger

	queue     chan delivery
	done      chan struct{}
	worker    conc.WaitGroup
	closeOnce sync.Once
	abortOnce sync.Once
	mu        sync.RWMutex
	closed    bool
}

type delivery struct {
	ctx    context.Context
	change usecase.ResultChange
}

type scorePayload struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

type resultPayload struct {
	Event         string       `json:"event"`
	CompetitionID string       `json:"competition_id"`
	MatchID       string       `json:"match_id"`
	HomeTeamID    string       `json:"home_team_id"`
	AwayTeamID    string       `json:"away_team_id"`
	Score         scorePayload `json:"score"`
	PreviousScore scorePayload `json:"previous_score"`
	OccurredAt    string       `json:"occurred_at"`
}

func NewWebhookPublisher(cfg WebhookConfig, logger *logging.Logger) (*WebhookPublisher, error) {
	target, err := validateWebhookURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid RESULT_WEBHOOK_URL: %w", err)
	}
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = time.Second
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	p := &WebhookPublisher{
		client: &fasthttp.Client{
			Name:                "football-league-webhook",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: 30 * time.Second,
		},
		url:        target,
		secret:     []byte(cfg.Secret),
		timeout:    timeout,
		maxRetries: max(cfg.MaxRetries, 0),
		backoff:    backoff,
		breaker:    resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		logger:     logger.With("component", "result_webhook"),
		queue:      make(chan delivery, queueSize),
		done:       make(chan struct{}),
	}
	p.breaker.OnStateChange(func(from, to resilience.State) {
		p.logger.Warn("result webhook circuit breaker state changed", "from", string(from), "to", string(to))
	})
	p.worker.Go(p.run)
	return p, nil
}

// PublishResult enqueues change without blocking. When the queue is full the
// change is dropped and logged.
func (p *WebhookPublisher) PublishResult(ctx context.Context, change usecase.ResultChange) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.logger.WarnContext(ctx, "result webhook dropped change after close", "match_id", change.MatchID, "event", string(change.Kind))
		return
	}

	select {
	case p.queue <- delivery{ctx: context.WithoutCancel(ctx), change: change}:
	default:
		p.logger.WarnContext(ctx, "result webhook queue full, change dropped",
			"match_id", change.MatchID,
			"event", string(change.Kind),
			"queue_size", cap(p.queue),
		)
	}
}

// Close stops accepting changes, delivers what is already queued and waits
// for the worker. Pending retries are abandoned once ctx is done.
func (p *WebhookPublisher) Close(ctx context.Context) error {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.queue)
		p.mu.Unlock()
	})

	finished := make(chan struct{})
	go func() {
		p.worker.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		p.abort()
		<-finished
		return ctx.Err()
	}
}

func (p *WebhookPublisher) abort() {
	p.abortOnce.Do(func() { close(p.done) })
}

func (p *WebhookPublisher) run() {
	for item := range p.queue {
		if err := p.deliver(item.ctx, item.change); err != nil {
			p.logger.WarnContext(item.ctx, "result webhook delivery failed",
				"match_id", item.change.MatchID,
				"event", string(item.change.Kind),
				"error", err,
			)
		}
	}
}

func (p *WebhookPublisher) deliver(ctx context.Context, change usecase.ResultChange) error {
	ctx, span := tracer.Start(ctx, "notify.WebhookPublisher.deliver")
	defer span.End()
	span.SetAttributes(
		attribute.String("match.id", change.MatchID),
		attribute.String("result.event", string(change.Kind)),
	)

	body, err := sonic.Marshal(toPayload(change))
	if err != nil {
		return fmt.Errorf("marshal result payload: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= p.maxRetries+1; attempt++ {
		lastErr = p.breaker.Execute(func() error {
			return p.send(body, string(change.Kind), attempt)
		}, isTransient)
		if lastErr == nil {
			p.logger.DebugContext(ctx, "result webhook delivered", "match_id", change.MatchID, "event", string(change.Kind), "attempt", attempt)
			return nil
		}
		if crerr.Is(lastErr, resilience.ErrCircuitOpen) || !isTransient(lastErr) || attempt > p.maxRetries {
			break
		}

		timer := time.NewTimer(time.Duration(attempt) * p.backoff)
		select {
		case <-p.done:
			timer.Stop()
			lastErr = crerr.Wrap(errClosed, lastErr.Error())
			span.RecordError(lastErr)
			span.SetStatus(codes.Error, lastErr.Error())
			return lastErr
		case <-timer.C:
		}
	}

	span.RecordError(lastErr)
	span.SetStatus(codes.Error, lastErr.Error())
	return lastErr
}

func (p *WebhookPublisher) send(body []byte, event string, attempt int) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(p.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set(EventHeader, event)
	req.Header.Set(AttemptHeader, strconv.Itoa(attempt))
	if len(p.secret) > 0 {
		req.Header.Set(SignatureHeader, Sign(p.secret, body))
	}
	req.SetBody(body)

	if err := p.client.DoTimeout(req, resp, p.timeout); err != nil {
		return crerr.Wrapf(errTransient, "post webhook: %v", err)
	}

	status := resp.StatusCode()
	if status >= 200 && status < 300 {
		return nil
	}
	err := fmt.Errorf("webhook status=%d body=%s", status, truncateForLog(string(resp.Body()), maxLoggedBody))
	if isRetryableStatus(status) {
		return crerr.Mark(err, errTransient)
	}
	return err
}

// Sign returns the hex HMAC-SHA256 of body, prefixed with the algorithm.
func Sign(secret, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func toPayload(change usecase.ResultChange) resultPayload {
	return resultPayload{
		Event:         string(change.Kind),
		CompetitionID: change.CompetitionID,
		MatchID:       change.MatchID,
		HomeTeamID:    change.HomeTeamID,
		AwayTeamID:    change.AwayTeamID,
		Score:         scorePayload{Home: change.Score.Home, Away: change.Score.Away},
		PreviousScore: scorePayload{Home: change.Previous.Home, Away: change.Previous.Away},
		OccurredAt:    change.OccurredAt.UTC().Format(time.RFC3339),
	}
}

func isTransient(err error) bool {
	return crerr.Is(err, errTransient)
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusRequestTimeout || status == fasthttp.StatusTooManyRequests || status >= 500
}

func validateWebhookURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", fmt.Errorf("value is empty")
	}
	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", candidate, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", fmt.Errorf("%q has empty host", candidate)
	}
	return candidate, nil
}

func truncateForLog(value string, limit int) string {
	if limit <= 0 || len(value) <= limit {
		return value
	}
	return value[:limit] + "...(truncated)"
}
