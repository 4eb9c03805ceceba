// Package scoring talks to the remote service that turns an ordered list of
// answers into a profile.
package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/abhisek/perfil/internal/questionnaire"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// requestIDHeader carries the per-submission identifier.
const requestIDHeader = "X-Request-ID"

// submitRequest is the outbound body.
type submitRequest struct {
	Answers []int `json:"answers"`
}

// submitResponse is the inbound envelope.
type submitResponse struct {
	Success     bool    `json:"success"`
	Profile     string  `json:"profile"`
	Score       float64 `json:"score"`
	Description string  `json:"description"`
	Error       string  `json:"error"`
}

// Client posts answers to the scoring endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	timeout    time.Duration
	log        zerolog.Logger
	newID      func() string
}

var _ questionnaire.Submitter = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client. It is used as is and
// never modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds each Submit with a context deadline. Zero means no
// timeout beyond the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger attaches a logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient creates a Client for endpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
		log:        zerolog.Nop(),
		newID:      func() string { return uuid.New().String() },
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Endpoint returns the URL answers are posted to.
func (c *Client) Endpoint() string { return c.endpoint }

// Submit sends answers and decodes the outcome. Every failure is either a
// *questionnaire.TransportError or a *questionnaire.ApplicationError.
func (c *Client) Submit(ctx context.Context, answers []int) (*questionnaire.Result, error) {
	if answers == nil {
		answers = []int{}
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(submitRequest{Answers: answers})
	if err != nil {
		return nil, &questionnaire.TransportError{Err: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &questionnaire.TransportError{Err: fmt.Errorf("build request: %w", err)}
	}
	reqID := RequestIDFrom(ctx)
	if reqID == "" {
		reqID = c.newID()
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, reqID)

	logger := c.log.With().Str("request_id", reqID).Str("endpoint", c.endpoint).Logger()
	logger.Debug().Ints("answers", answers).Msg("posting answers")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn().Err(err).Msg("scoring request did not complete")
		return nil, &questionnaire.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused; the body is not trusted.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		logger.Warn().Int("status", resp.StatusCode).Msg("scoring request rejected")
		return nil, &questionnaire.TransportError{Status: resp.StatusCode}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &questionnaire.TransportError{Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}
	if err := validateResponse(raw); err != nil {
		logger.Warn().Err(err).Msg("malformed scoring response")
		return nil, &questionnaire.TransportError{Status: resp.StatusCode, Err: err}
	}

	var out submitResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &questionnaire.TransportError{Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}

	if !out.Success {
		logger.Info().Str("error", out.Error).Msg("scoring service refused answers")
		return nil, &questionnaire.ApplicationError{Message: out.Error}
	}

	logger.Info().Str("profile", out.Profile).Float64("score", out.Score).Msg("answers scored")
	return &questionnaire.Result{
		Profile:     out.Profile,
		Score:       out.Score,
		Description: out.Description,
	}, nil
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var te *questionnaire.TransportError
	if errors.As(err, &te) {
		return te.Status
	}
	return 0
}
