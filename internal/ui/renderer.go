// Package ui renders search answers in the terminal.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"

	"github.com/leonardcser/xai-web-search/internal/livesearch"
)

// Renderer writes answers either as styled markdown or as plain text.
type Renderer struct {
	out io.Writer
	md  *glamour.TermRenderer
}

// NewRenderer returns a renderer for out. Markdown styling is used only when
// out is a terminal and plain is false.
func NewRenderer(out io.Writer, plain bool) *Renderer {
	r := &Renderer{out: out}
	if plain || !isTerminal(out) {
		return r
	}
	md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err == nil {
		r.md = md
	}
	return r
}

// NewMarkdownRenderer always styles output, regardless of out. style is a
// glamour standard style name such as "dark" or "notty".
func NewMarkdownRenderer(out io.Writer, style string, width int) (*Renderer, error) {
	md, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{out: out, md: md}, nil
}

// Render writes res followed by a numbered citation list, if any.
func (r *Renderer) Render(res *livesearch.Result) error {
	doc := res.Text
	if len(res.Citations) > 0 {
		var sb strings.Builder
		sb.WriteString(strings.TrimRight(doc, "\n"))
		sb.WriteString("\n\n**Sources**\n\n")
		for i, c := range res.Citations {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, c)
		}
		doc = sb.String()
	}

	if r.md != nil {
		styled, err := r.md.Render(doc)
		if err == nil {
			_, err = io.WriteString(r.out, styled)
			return err
		}
	}
	if !strings.HasSuffix(doc, "\n") {
		doc += "\n"
	}
	_, err := io.WriteString(r.out, doc)
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
