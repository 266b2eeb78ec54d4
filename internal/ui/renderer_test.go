package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardcser/xai-web-search/internal/livesearch"
)

func TestRender_PlainForNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, false)

	require.NoError(t, r.Render(&livesearch.Result{Text: "Go 1.25 is out."}))
	assert.Equal(t, "Go 1.25 is out.\n", buf.String())
}

func TestRender_Citations(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, true)

	require.NoError(t, r.Render(&livesearch.Result{
		Text:      "answer\n",
		Citations: []string{"https://go.dev/blog", "https://x.com/golang"},
	}))
	assert.Equal(t, "answer\n\n**Sources**\n\n1. https://go.dev/blog\n2. https://x.com/golang\n", buf.String())
}

func TestRender_Markdown(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewMarkdownRenderer(&buf, "notty", 80)
	require.NoError(t, err)

	require.NoError(t, r.Render(&livesearch.Result{Text: "# Heading\n\nSome **bold** text."}))
	out := buf.String()
	assert.Contains(t, out, "Heading")
	assert.Contains(t, out, "bold")
}
