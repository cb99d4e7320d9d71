// Package census provides the HTTP client that executes ACS API queries.
package census

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"acsward/domain/census"
	"acsward/internal/errors"
)

// ClientConfig holds HTTP client settings for the Census API.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// Client fetches raw response grids from the Census API.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
}

// NewClient creates a Census API client with the configured timeout.
func NewClient(config ClientConfig) *Client {
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// Fetch performs one blocking GET for the query and decodes the response body
// as a JSON array of string arrays (header row first). Any non-200 status is an
// explicit census API error carrying the status and a body excerpt; nothing is
// returned for downstream stages to trip over.
func (c *Client) Fetch(ctx context.Context, query census.Query) ([][]string, error) {
	url := query.URL(c.config.BaseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.CensusAPIError("failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.CensusAPIError("HTTP request failed", err)
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, errors.CensusAPIError("failed to read response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.CensusAPIError(fmt.Sprintf(
			"API returned status %d: %s", resp.StatusCode, bodyExcerpt(body)), nil)
	}

	var grid [][]string
	if err := json.Unmarshal(body, &grid); err != nil {
		return nil, errors.ParseError("response is not a JSON array of string arrays", err)
	}

	return grid, nil
}

// bodyExcerpt trims an error response body for inclusion in an error message.
func bodyExcerpt(body []byte) string {
	const maxExcerpt = 200
	if len(body) > maxExcerpt {
		return string(body[:maxExcerpt]) + "..."
	}
	return string(body)
}
