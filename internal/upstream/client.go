// Package upstream is the HTTP client for the dashboard REST API.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/streampulse/pulse/internal/logging"
	"github.com/streampulse/pulse/internal/metrics"
	"github.com/streampulse/pulse/schema"
	"golang.org/x/time/rate"
)

// Endpoint names, also used as metric labels.
const (
	EndpointLive       = "live"
	EndpointEvents     = "events"
	EndpointTrend      = "trend"
	EndpointVolatility = "volatility"
	EndpointDailyTop   = "daily-top"
	EndpointKing       = "king"
	EndpointFlash      = "flash"
)

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 32 << 20

// ErrUnavailable is returned while the circuit breaker is open.
var ErrUnavailable = errors.New("upstream unavailable")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

func newStatusError(code int, body []byte) *StatusError {
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = fmt.Sprintf("Request failed: %d", code)
	}
	return &StatusError{Code: code, Message: msg}
}

// Config holds client settings.
type Config struct {
	BaseURL          string
	Timeout          time.Duration
	RateInterval     time.Duration
	BreakerThreshold uint32
	HTTPClient       *http.Client
}

// Client fetches dashboard data. It is safe for concurrent use.
type Client struct {
	base    string
	http    *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[[]byte]
}

// New creates a client. Requests are spaced by cfg.RateInterval and the breaker
// opens after cfg.BreakerThreshold consecutive failures.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	limit := rate.Inf
	if cfg.RateInterval > 0 {
		limit = rate.Every(cfg.RateInterval)
	}

	threshold := cfg.BreakerThreshold
	if threshold == 0 {
		threshold = 1
	}
	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "upstream",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			// Client errors mean the request was bad, not that the upstream is down.
			var se *StatusError
			if errors.As(err, &se) {
				return se.Code < http.StatusInternalServerError
			}
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state changed")
		},
	})

	return &Client{
		base:    strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		limiter: rate.NewLimiter(limit, 1),
		breaker: breaker,
	}
}

// BreakerState reports the circuit breaker state.
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}

// Live implements contract.Source.
func (c *Client) Live(ctx context.Context) ([]schema.LiveTraffic, error) {
	return fetch[schema.LiveTraffic](ctx, c, EndpointLive, nil)
}

// Events implements contract.Source.
func (c *Client) Events(ctx context.Context) ([]schema.EventItem, error) {
	return fetch[schema.EventItem](ctx, c, EndpointEvents, nil)
}

// Trend implements contract.Source.
func (c *Client) Trend(ctx context.Context, category string, hours int, explicit *schema.DateRange) ([]schema.Sample, error) {
	q := url.Values{}
	q.Set("category", category)
	q.Set("hours", strconv.Itoa(hours))
	if !explicit.IsZero() {
		q.Set("start", explicit.Start)
		q.Set("end", explicit.End)
	}
	return fetch[schema.Sample](ctx, c, EndpointTrend, q)
}

// Volatility implements contract.Source.
func (c *Client) Volatility(ctx context.Context) ([]schema.VolatilityEntry, error) {
	return fetch[schema.VolatilityEntry](ctx, c, EndpointVolatility, nil)
}

// DailyTop implements contract.Source.
func (c *Client) DailyTop(ctx context.Context) ([]schema.DailyTop, error) {
	return fetch[schema.DailyTop](ctx, c, EndpointDailyTop, nil)
}

// King implements contract.Source.
func (c *Client) King(ctx context.Context) ([]schema.KingStreamer, error) {
	return fetch[schema.KingStreamer](ctx, c, EndpointKing, nil)
}

// Flash implements contract.Source.
func (c *Client) Flash(ctx context.Context) ([]schema.FlashCategory, error) {
	return fetch[schema.FlashCategory](ctx, c, EndpointFlash, nil)
}

// envelope is the {"data": [...]} wrapper every endpoint returns.
type envelope[T any] struct {
	Data []T `json:"data"`
}

func fetch[T any](ctx context.Context, c *Client, endpoint string, query url.Values) ([]T, error) {
	body, err := c.get(ctx, endpoint, query)
	if err != nil {
		return nil, err
	}
	var env envelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	if env.Data == nil {
		env.Data = []T{}
	}
	return env.Data, nil
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	target := c.base + "/api/" + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.do(ctx, endpoint, target)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return body, err
}

func (c *Client) do(ctx context.Context, endpoint, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordUpstream(endpoint, "error", time.Since(start))
		return nil, fmt.Errorf("GET %s: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	metrics.RecordUpstream(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", endpoint, err)
	}

	logging.Debug().Str("endpoint", endpoint).Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("Upstream request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newStatusError(resp.StatusCode, body)
	}
	return body, nil
}
