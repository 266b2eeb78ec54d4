package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardcser/xai-web-search/internal/livesearch"
	web "github.com/leonardcser/xai-web-search/internal/web"
)

type fakeSearcher struct {
	query string
	cfg   livesearch.Config
	raw   any
	text  string
	err   error
	calls int
}

func (f *fakeSearcher) Run(_ context.Context, query string, cfg livesearch.Config, raw any) (string, error) {
	f.calls++
	f.query, f.cfg, f.raw = query, cfg, raw
	return f.text, f.err
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return tc.Text
}

func TestWebSearchHandler_RequiresInput(t *testing.T) {
	searcher := &fakeSearcher{}
	h := WebSearchHandler(searcher, livesearch.Config{APIKey: "k"})

	res, err := h(context.Background(), callRequest(WebSearchToolName, map[string]any{"mode": "on"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Zero(t, searcher.calls)
}

func TestWebSearchHandler_ForwardsArguments(t *testing.T) {
	searcher := &fakeSearcher{text: "Go 1.25 shipped in August."}
	cfg := livesearch.Config{APIKey: "k", DefaultMode: livesearch.ModeAuto}
	h := WebSearchHandler(searcher, cfg)

	res, err := h(context.Background(), callRequest(WebSearchToolName, map[string]any{
		"input":            "latest Go release",
		"sources":          "web,news",
		"return_citations": "true",
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "Go 1.25 shipped in August.", resultText(t, res))

	assert.Equal(t, "latest Go release", searcher.query)
	assert.Equal(t, cfg, searcher.cfg)
	assert.Equal(t, map[string]any{"sources": "web,news", "return_citations": "true"}, searcher.raw)
}

func TestWebSearchHandler_SurfacesErrors(t *testing.T) {
	searcher := &fakeSearcher{err: &livesearch.UpstreamError{StatusCode: 429, Body: "rate limited"}}
	h := WebSearchHandler(searcher, livesearch.Config{APIKey: "k"})

	res, err := h(context.Background(), callRequest(WebSearchToolName, map[string]any{"input": "q"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "429")
	assert.Contains(t, resultText(t, res), "rate limited")
}

func TestWebSearchHandler_CanceledContext(t *testing.T) {
	searcher := &fakeSearcher{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := WebSearchHandler(searcher, livesearch.Config{})(ctx, callRequest(WebSearchToolName, map[string]any{"input": "q"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Zero(t, searcher.calls)
}

func TestWebSearchSchema(t *testing.T) {
	raw, err := WebSearchSchema()
	require.NoError(t, err)

	var schema struct {
		Type       string                     `json:"type"`
		Required   []string                   `json:"required"`
		Properties map[string]json.RawMessage `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(raw, &schema))

	assert.Equal(t, "object", schema.Type)
	assert.Equal(t, []string{"input"}, schema.Required)
	for _, key := range append([]string{"input"}, livesearch.AllowedParamKeys...) {
		assert.Contains(t, schema.Properties, key)
	}
	assert.Contains(t, string(schema.Properties["sources"]), "oneOf")
	assert.Contains(t, string(schema.Properties["input"]), "in English")

	tool, err := NewWebSearchTool()
	require.NoError(t, err)
	assert.Equal(t, WebSearchToolName, tool.Name)
}

type fakeFetcher struct {
	page *web.Page
	err  error
}

func (f fakeFetcher) Fetch(context.Context, string) (*web.Page, error) { return f.page, f.err }

func TestWebFetchHandler(t *testing.T) {
	page := &web.Page{
		URL:         "https://go.dev/blog",
		Title:       "Blog",
		Description: "The Go Blog",
		Text:        "body",
		Links:       []string{"https://go.dev/"},
	}
	h := WebFetchHandler(fakeFetcher{page: page})

	res, err := h(context.Background(), callRequest(WebFetchToolName, map[string]any{"url": page.URL}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "# Blog\n\nSource: https://go.dev/blog\n\nThe Go Blog\n\n## Links\n- https://go.dev/\n\nbody", resultText(t, res))
}

func TestWebFetchHandler_Errors(t *testing.T) {
	h := WebFetchHandler(fakeFetcher{err: errors.New("boom")})

	res, err := h(context.Background(), callRequest(WebFetchToolName, map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = h(context.Background(), callRequest(WebFetchToolName, map[string]any{"url": "https://x"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "boom", resultText(t, res))
}
