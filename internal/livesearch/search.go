// Package livesearch turns a query and loosely-typed search options into an
// xAI live search request and reduces the response to plain text.
package livesearch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// UserAgent is sent with every upstream request.
var UserAgent = "xai-web-search/0.1.0"

// Result is the answer text plus any citations the upstream returned.
type Result struct {
	Text      string   `json:"text"`
	Citations []string `json:"citations"`
}

// Client runs live searches. It holds no per-call state and is safe for
// concurrent use.
type Client struct {
	poster Poster
}

func NewClient(poster Poster) *Client {
	return &Client{poster: poster}
}

// Run performs one search and returns the answer text.
func (c *Client) Run(ctx context.Context, query string, cfg Config, raw any) (string, error) {
	res, err := c.Search(ctx, query, cfg, raw)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// Search performs one search. raw is filtered with AllowedParamKeys before it
// reaches the payload.
func (c *Client) Search(ctx context.Context, query string, cfg Config, raw any) (*Result, error) {
	if c == nil || c.poster == nil {
		return nil, &EnvironmentError{Reason: "no HTTP client available"}
	}
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &ConfigurationError{Setting: "XAI_API_KEY"}
	}

	params := FilterParams(AllowedParamKeys, raw)
	payload := BuildPayload(query, cfg, params)
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	headers := map[string]string{
		"Authorization": "Bearer " + cfg.APIKey,
		"Content-Type":  "application/json",
		"User-Agent":    UserAgent,
	}
	status, respBody, err := c.poster.PostJSON(ctx, Endpoint(cfg.BaseURL), headers, body)
	if err != nil {
		return nil, err
	}

	text, err := ExtractText(status, respBody)
	if err != nil {
		return nil, err
	}
	return &Result{Text: text, Citations: ExtractCitations(respBody)}, nil
}
