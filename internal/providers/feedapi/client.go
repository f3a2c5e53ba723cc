package feedapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cricket-live-service/internal/domain/match"
	"cricket-live-service/internal/providers"
)

// Config controls how the feed API client reaches the upstream service.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// Client fetches match snapshots and scorecards from the upstream feed API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
	now        func() time.Time
}

// NewClient constructs a feed API client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
	}
}

// FetchSnapshot returns the raw snapshot document for a match. The body is handed to the merger untouched.
func (c *Client) FetchSnapshot(ctx context.Context, matchID string) ([]byte, error) {
	resp, err := c.get(ctx, matchID, "snapshot")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// FetchScorecard retrieves the full scorecard for a match.
func (c *Client) FetchScorecard(ctx context.Context, matchID string) (match.Scorecard, error) {
	resp, err := c.get(ctx, matchID, "scorecard")
	if err != nil {
		return match.Scorecard{}, err
	}
	defer resp.Body.Close()

	var payload scorecardResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr != nil {
		return match.Scorecard{}, decodeErr
	}
	card := mapScorecard(payload.Data, matchID)
	card.FetchedAt = c.now().UTC()
	return card, nil
}

func (c *Client) get(ctx context.Context, matchID, resource string) (*http.Response, error) {
	if strings.TrimSpace(matchID) == "" {
		return nil, fmt.Errorf("%s: match id required", providerName)
	}
	req, err := c.buildRequest(ctx, matchID, resource)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		resp.Body.Close()
		return nil, &providers.RateLimitError{
			Provider:   providerName,
			Resource:   resource,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Remaining:  resp.Header.Get("X-RateLimit-Remaining"),
		}
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		resp.Body.Close()
		return nil, &providers.StatusError{
			Provider:   providerName,
			Resource:   resource,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}
	return resp, nil
}

func (c *Client) buildRequest(ctx context.Context, matchID, resource string) (*http.Request, error) {
	endpoint := c.baseURL + "/matches/" + url.PathEscape(matchID) + "/" + resource
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return req, nil
}
