package livesearch

import (
	"strings"

	"github.com/tidwall/gjson"
)

// NoResponseText is returned when the response carries no usable answer.
const NoResponseText = "No response text available."

// ExtractText returns the answer text of a chat completions response. A
// non-2xx status yields an *UpstreamError; a 2xx body that cannot be
// interpreted yields NoResponseText rather than an error.
func ExtractText(status int, body []byte) (string, error) {
	if status < 200 || status > 299 {
		return "", &UpstreamError{StatusCode: status, Body: string(body)}
	}
	if !gjson.ValidBytes(body) {
		return NoResponseText, nil
	}

	choices := gjson.GetBytes(body, "choices")
	if !choices.IsArray() {
		return NoResponseText, nil
	}
	message := choices.Get("0.message")
	if !message.Exists() || message.Type == gjson.Null {
		return NoResponseText, nil
	}

	content := message.Get("content")
	switch {
	case content.Type == gjson.String:
		if content.Str == "" {
			return NoResponseText, nil
		}
		return content.Str, nil
	case content.IsArray():
		if text := joinContentParts(content); text != "" {
			return text, nil
		}
	}
	return NoResponseText, nil
}

func joinContentParts(content gjson.Result) string {
	var parts []string
	content.ForEach(func(_, part gjson.Result) bool {
		var piece string
		switch {
		case part.Type == gjson.String:
			piece = part.Str
		case part.IsObject():
			piece = partText(part.Get("text"))
		}
		if piece != "" {
			parts = append(parts, piece)
		}
		return true
	})
	return strings.Join(parts, "\n")
}

// partText renders a part's text field; absent and falsy values are empty.
func partText(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Number:
		if v.Num == 0 {
			return ""
		}
		return v.Raw
	case gjson.True:
		return "true"
	default:
		return ""
	}
}

// ExtractCitations returns the string entries of the top-level citations
// array, if any.
func ExtractCitations(body []byte) []string {
	citations := gjson.GetBytes(body, "citations")
	if !citations.IsArray() {
		return nil
	}
	var out []string
	for _, c := range citations.Array() {
		if c.Type == gjson.String && c.Str != "" {
			out = append(out, c.Str)
		}
	}
	return out
}
