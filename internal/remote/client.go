// Package remote talks to the tournament service over HTTP.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"poker-platform/tournament-sync/internal/models"

	"github.com/rs/zerolog/log"
)

const DefaultTimeout = 30 * time.Second

var ErrEmptyBaseURL = errors.New("tournament service base url is required")

// APIError is a non-2xx response from the tournament service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("tournament service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("tournament service returned status %d: %s", e.StatusCode, e.Message)
}

// UserMessage is the service's own explanation, when it gave one.
func (e *APIError) UserMessage() string {
	return e.Message
}

// IsNotFound reports whether err is a 404 from the tournament service.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type errorBody struct {
	Error string `json:"error"`
}

// Client implements store.TournamentAPI against the service's REST API.
type Client struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	headers map[string]string
}

type Option func(*Client)

// WithHTTPClient sends requests through hc. The client is never modified;
// WithTimeout applies to a copy of it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers[key] = value }
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, ErrEmptyBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: DefaultTimeout},
		headers: make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.client
		hc.Timeout = c.timeout
		c.client = &hc
	}
	return c, nil
}

func (c *Client) ListTournaments(ctx context.Context) ([]models.TournamentListItem, error) {
	var out []models.TournamentListItem
	if err := c.do(ctx, http.MethodGet, "/api/tournaments", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.TournamentListItem{}
	}
	return out, nil
}

func (c *Client) GetTournament(ctx context.Context, tournamentID string) (*models.Tournament, error) {
	var out models.Tournament
	if err := c.do(ctx, http.MethodGet, tournamentPath(tournamentID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, tournamentID, playerName string) (*models.TournamentPlayer, error) {
	body := map[string]string{"playerName": playerName}
	var out models.TournamentPlayer
	if err := c.do(ctx, http.MethodPost, tournamentPath(tournamentID)+"/register", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Unregister(ctx context.Context, tournamentID, playerID string) error {
	body := map[string]string{"playerId": playerID}
	return c.do(ctx, http.MethodPost, tournamentPath(tournamentID)+"/unregister", body, nil)
}

func tournamentPath(tournamentID string) string {
	return "/api/tournaments/" + url.PathEscape(tournamentID)
}

// do sends one request and decodes a 2xx JSON response into out, when out
// is non-nil. Non-2xx responses become *APIError.
func (c *Client) do(ctx context.Context, method, endpoint string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	log.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("tournament service request")

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var eb errorBody
		if json.Unmarshal(responseBody, &eb) == nil {
			apiErr.Message = eb.Error
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(responseBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(responseBody, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return nil
}
