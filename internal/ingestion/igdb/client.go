package igdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// IGDB allows 4 requests per second per client.
	rateLimit = 4
	rateBurst = 8

	maxRetries   = 5
	initialDelay = 1 * time.Second
	maxDelay     = 32 * time.Second
)

// Client handles IGDB API requests with rate limiting and retry logic.
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), rateBurst),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Games fetches one page of games. IGDB uses a query-body protocol:
// the request body carries an APIcalypse query string.
func (c *Client) Games(ctx context.Context, limit, offset int) ([]IGDBGame, error) {
	query := fmt.Sprintf(
		"fields id,name,summary,first_release_date,genres.name,platforms.name,cover.url,involved_companies.company.name,involved_companies.developer,involved_companies.publisher; limit %d; offset %d; sort id asc;",
		limit, offset,
	)

	var games []IGDBGame
	if err := c.doRequest(ctx, "/games", query, &games); err != nil {
		return nil, fmt.Errorf("failed to fetch games: %w", err)
	}
	return games, nil
}

// doRequest performs an HTTP request with rate limiting and bounded
// exponential retry on transient failures.
func (c *Client) doRequest(ctx context.Context, endpoint, query string, result any) error {
	fullURL := c.baseURL + endpoint

	var lastErr error
	delay := initialDelay

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, strings.NewReader(query))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
		} else {
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()

			switch {
			case readErr != nil:
				lastErr = readErr
			case resp.StatusCode == http.StatusOK:
				return json.Unmarshal(body, result)
			case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
				lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
			default:
				return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, body)
			}
		}

		if attempt == maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
		if delay > maxDelay {
			delay = maxDelay
		}
	}

	return fmt.Errorf("request failed after %d retries: %w", maxRetries, lastErr)
}
