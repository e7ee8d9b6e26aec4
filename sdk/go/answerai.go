// Package answerai is a Go client for the AnswerAI surprises API.
package answerai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Kind names a surprise category as it appears in the API path.
type Kind string

// Surprise categories.
const (
	KindQuote      Kind = "quote"
	KindJoke       Kind = "joke"
	KindFact       Kind = "fact"
	KindArt        Kind = "art"
	KindChallenge  Kind = "challenge"
	KindMotivation Kind = "motivation"
	KindCelebrate  Kind = "celebrate"
	KindGame       Kind = "game"
	KindRandom     Kind = "random"
	KindDaily      Kind = "daily"
)

// Config holds the configuration for the AnswerAI client.
type Config struct {
	// BaseURL is the root URL of the AnswerAI server, e.g. "https://answer.example.com".
	BaseURL string

	// HTTPClient is an optional custom HTTP client.
	// If nil, a default client with 10s timeout is used.
	HTTPClient *http.Client
}

func (c *Config) defaults() {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
}

// Client calls the AnswerAI API on behalf of a user holding an access token.
type Client struct {
	cfg Config
}

// NewClient creates a new AnswerAI client with the given configuration.
func NewClient(cfg Config) *Client {
	cfg.defaults()
	return &Client{cfg: cfg}
}

// Surprise fetches a surprise of the given kind.
func (c *Client) Surprise(ctx context.Context, token string, kind Kind) (*Surprise, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/v1/surprises/"+string(kind), token)
	if err != nil {
		return nil, err
	}

	var s Surprise
	if err := json.Unmarshal(body, &s); err != nil {
		return nil, fmt.Errorf("answerai: failed to parse surprise: %w", err)
	}
	return &s, nil
}

// Random fetches a surprise of a random kind.
func (c *Client) Random(ctx context.Context, token string) (*Surprise, error) {
	return c.Surprise(ctx, token, KindRandom)
}

// Daily fetches the surprise of the day.
func (c *Client) Daily(ctx context.Context, token string) (*Surprise, error) {
	return c.Surprise(ctx, token, KindDaily)
}

// RequestVerification asks the server to email a verification link to the
// token's user.
func (c *Client) RequestVerification(ctx context.Context, token string) (*MessageResponse, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/v1/auth/verify/request", token)
	if err != nil {
		return nil, err
	}
	return parseMessage(body)
}

// VerifyEmail consumes a verification token taken from an emailed link.
func (c *Client) VerifyEmail(ctx context.Context, verificationToken string) (*MessageResponse, error) {
	body, err := c.do(ctx, http.MethodGet, "/auth/verify?token="+url.QueryEscape(verificationToken), "")
	if err != nil {
		return nil, err
	}
	return parseMessage(body)
}

func parseMessage(body []byte) (*MessageResponse, error) {
	var resp MessageResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("answerai: failed to parse response: %w", err)
	}
	return &resp, nil
}

// do sends a request to the AnswerAI API. Paths under /api/v1 require a token.
func (c *Client) do(ctx context.Context, method, path, token string) ([]byte, error) {
	if token == "" && strings.HasPrefix(path, "/api/v1/") {
		return nil, ErrNoToken
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("answerai: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("answerai: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("answerai: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, parseAPIError(resp.StatusCode, body)
	}

	return body, nil
}
