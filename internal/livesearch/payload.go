package livesearch

import "strings"

const (
	// DefaultBaseURL is the xAI API root used when none is configured.
	DefaultBaseURL = "https://api.x.ai/v1"
	// DefaultModel is used when no model is configured.
	DefaultModel = "grok-4"

	chatCompletionsPath = "/chat/completions"
)

// Mode controls whether and how aggressively the upstream performs live
// retrieval. Values other than the constants below are passed through.
type Mode string

const (
	ModeAuto Mode = "auto"
	ModeOn   Mode = "on"
	ModeOff  Mode = "off"
)

// Config is the settings record a search call is built from.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	DefaultMode Mode
}

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Payload is the JSON body sent to the chat completions endpoint.
type Payload struct {
	Model            string         `json:"model"`
	Messages         []Message      `json:"messages"`
	SearchParameters map[string]any `json:"search_parameters"`
}

// BuildPayload assembles the upstream request. search_parameters.mode is
// always set: the caller's value, else cfg.DefaultMode, else "on". Parameter
// values are copied verbatim.
func BuildPayload(query string, cfg Config, params Params) Payload {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	sp := make(map[string]any, len(params)+1)
	for k, v := range params {
		sp[k] = v
	}
	if _, ok := sp[ParamMode]; !ok {
		mode := cfg.DefaultMode
		if mode == "" {
			mode = ModeOn
		}
		sp[ParamMode] = string(mode)
	}

	return Payload{
		Model:            model,
		Messages:         []Message{{Role: "user", Content: query}},
		SearchParameters: sp,
	}
}

// Endpoint returns the chat completions URL under baseURL.
func Endpoint(baseURL string) string {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	return strings.TrimRight(base, "/") + chatCompletionsPath
}
