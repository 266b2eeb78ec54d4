package livesearch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	url     string
	headers map[string]string
	body    []byte
}

// recordingPoster answers every call with a canned response.
type recordingPoster struct {
	mu     sync.Mutex
	calls  []recordedCall
	status int
	body   string
	err    error
}

func (p *recordingPoster) PostJSON(_ context.Context, url string, headers map[string]string, body []byte) (int, []byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, recordedCall{url: url, headers: headers, body: body})
	if p.err != nil {
		return 0, nil, p.err
	}
	return p.status, []byte(p.body), nil
}

func TestClientRun_BuildsRequest(t *testing.T) {
	poster := &recordingPoster{status: 200, body: `{"choices":[{"message":{"content":"answer"}}]}`}
	client := NewClient(poster)

	raw := map[string]any{
		"sources":          "web,news",
		"return_citations": true,
		"messages":         "injected",
		"model":            "injected",
	}
	text, err := client.Run(context.Background(), "latest go release", Config{APIKey: "secret", BaseURL: "https://api.x.ai/v1/"}, raw)
	require.NoError(t, err)
	assert.Equal(t, "answer", text)

	require.Len(t, poster.calls, 1)
	call := poster.calls[0]
	assert.Equal(t, "https://api.x.ai/v1/chat/completions", call.url)
	assert.Equal(t, "Bearer secret", call.headers["Authorization"])
	assert.Equal(t, "application/json", call.headers["Content-Type"])

	assert.JSONEq(t, `{
		"model": "grok-4",
		"messages": [{"role": "user", "content": "latest go release"}],
		"search_parameters": {
			"mode": "on",
			"return_citations": true,
			"sources": [{"type": "web"}, {"type": "news"}]
		}
	}`, string(call.body))
}

func TestClientRun_MissingAPIKeyNeverCallsNetwork(t *testing.T) {
	poster := &recordingPoster{status: 200}
	client := NewClient(poster)

	_, err := client.Run(context.Background(), "q", Config{}, nil)
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "XAI_API_KEY", cfgErr.Setting)
	assert.Empty(t, poster.calls)
}

func TestClientRun_EmptyQuery(t *testing.T) {
	poster := &recordingPoster{status: 200}
	_, err := NewClient(poster).Run(context.Background(), "   ", Config{APIKey: "k"}, nil)
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.Empty(t, poster.calls)
}

func TestClientRun_NoPoster(t *testing.T) {
	_, err := NewClient(nil).Run(context.Background(), "q", Config{APIKey: "k"}, nil)
	var envErr *EnvironmentError
	assert.True(t, errors.As(err, &envErr))

	var nilClient *Client
	_, err = nilClient.Run(context.Background(), "q", Config{APIKey: "k"}, nil)
	assert.True(t, errors.As(err, &envErr))
}

func TestClientRun_UpstreamError(t *testing.T) {
	poster := &recordingPoster{status: 429, body: "rate limited"}
	_, err := NewClient(poster).Run(context.Background(), "q", Config{APIKey: "k"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "rate limited")
}

func TestClientRun_TransportError(t *testing.T) {
	boom := errors.New("connection refused")
	poster := &recordingPoster{err: boom}
	_, err := NewClient(poster).Run(context.Background(), "q", Config{APIKey: "k"}, nil)
	assert.ErrorIs(t, err, boom)
}

func TestClientSearch_Citations(t *testing.T) {
	poster := &recordingPoster{status: 200, body: `{"choices":[{"message":{"content":"a"}}],"citations":["https://x.example"]}`}
	res, err := NewClient(poster).Search(context.Background(), "q", Config{APIKey: "k"}, nil)
	require.NoError(t, err)
	assert.Equal(t, &Result{Text: "a", Citations: []string{"https://x.example"}}, res)
}

func TestRestyPoster_EndToEnd(t *testing.T) {
	var gotAuth, gotCT string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotCT = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":[{"type":"text","text":"part one"},"part two"]}}]}`))
	}))
	defer srv.Close()

	client := NewClient(NewRestyPoster(5 * time.Second))
	cfg := Config{APIKey: "k", BaseURL: srv.URL + "/v1", DefaultMode: ModeAuto}
	text, err := client.Run(context.Background(), "q", cfg, map[string]any{"max_search_results": 3})
	require.NoError(t, err)

	assert.Equal(t, "part one\npart two", text)
	assert.Equal(t, "Bearer k", gotAuth)
	assert.Equal(t, "application/json", gotCT)
	sp, _ := gotBody["search_parameters"].(map[string]any)
	assert.Equal(t, "auto", sp["mode"])
	assert.Equal(t, float64(3), sp["max_search_results"])
}

func TestRestyPoster_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"bad key"}`))
	}))
	defer srv.Close()

	_, err := NewClient(NewRestyPoster(5*time.Second)).Run(context.Background(), "q", Config{APIKey: "k", BaseURL: srv.URL}, nil)
	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusUnauthorized, upstream.StatusCode)
	assert.Equal(t, `{"error":"bad key"}`, upstream.Body)
}

func TestRestyPoster_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient(NewRestyPoster(0)).Run(ctx, "q", Config{APIKey: "k", BaseURL: srv.URL}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
