package livesearch

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// Source is a search corpus descriptor. Every descriptor carries a "type" tag;
// the upstream API is the authority on which tags and fields are valid.
type Source interface {
	SourceType() string
}

// WebSource narrows retrieval to general web pages.
type WebSource struct {
	Type             string   `json:"type"`
	Country          string   `json:"country,omitempty"`
	ExcludedWebsites []string `json:"excluded_websites,omitempty"`
	AllowedWebsites  []string `json:"allowed_websites,omitempty"`
	SafeSearch       *bool    `json:"safe_search,omitempty"`
}

// NewsSource narrows retrieval to news articles.
type NewsSource struct {
	Type             string   `json:"type"`
	Country          string   `json:"country,omitempty"`
	ExcludedWebsites []string `json:"excluded_websites,omitempty"`
	SafeSearch       *bool    `json:"safe_search,omitempty"`
}

// XSource narrows retrieval to posts on X.
type XSource struct {
	Type              string   `json:"type"`
	IncludedXHandles  []string `json:"included_x_handles,omitempty"`
	ExcludedXHandles  []string `json:"excluded_x_handles,omitempty"`
	PostFavoriteCount int      `json:"post_favorite_count,omitempty"`
	PostViewCount     int      `json:"post_view_count,omitempty"`
}

// RSSSource narrows retrieval to the given feeds.
type RSSSource struct {
	Type  string   `json:"type"`
	Links []string `json:"links,omitempty"`
}

// OpaqueSource carries a descriptor whose tag is not known locally. It is
// forwarded as-is.
type OpaqueSource map[string]any

func (s WebSource) SourceType() string  { return s.Type }
func (s NewsSource) SourceType() string { return s.Type }
func (s XSource) SourceType() string    { return s.Type }
func (s RSSSource) SourceType() string  { return s.Type }

func (s OpaqueSource) SourceType() string {
	t, _ := s["type"].(string)
	return t
}

// Known source tags.
const (
	SourceWeb  = "web"
	SourceNews = "news"
	SourceX    = "x"
	SourceRSS  = "rss"
)

// NewSource returns the typed descriptor for tag with only its type set.
func NewSource(tag string) Source {
	switch tag {
	case SourceWeb:
		return WebSource{Type: tag}
	case SourceNews:
		return NewsSource{Type: tag}
	case SourceX:
		return XSource{Type: tag}
	case SourceRSS:
		return RSSSource{Type: tag}
	default:
		return OpaqueSource{"type": tag}
	}
}

var tokenSeparators = regexp.MustCompile(`[\s,]+`)

// NormalizeSources turns a caller-supplied sources value into the shape the
// upstream expects. The boolean is false when the value is absent and the
// key should be dropped.
//
// Slices and maps are returned unchanged. Text is tried as JSON first (arrays
// and objects are returned as parsed) and otherwise split on commas and
// whitespace into one descriptor per token. Other values pass through.
func NormalizeSources(value any) (any, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case []any, []map[string]any, []Source, []string:
		return v, true
	case map[string]any, OpaqueSource:
		return v, true
	case Source:
		return v, true
	case string:
		return normalizeSourceText(v)
	default:
		return v, true
	}
}

func normalizeSourceText(raw string) (any, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, false
	}
	if gjson.Valid(text) {
		parsed := gjson.Parse(text)
		switch {
		case parsed.IsArray(), parsed.IsObject():
			return parsed.Value(), true
		case parsed.Type == gjson.String:
			text = parsed.Str
		}
	}
	if sources := splitSourceTokens(text); len(sources) > 0 {
		return sources, true
	}
	// Nothing but separators: keep the raw value for the upstream to judge.
	return raw, true
}

func splitSourceTokens(text string) []Source {
	var out []Source
	for _, tok := range tokenSeparators.Split(text, -1) {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		out = append(out, NewSource(tok))
	}
	return out
}
