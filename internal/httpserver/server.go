// Package httpserver exposes live search over plain HTTP and mounts the MCP
// streamable HTTP transport.
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/leonardcser/xai-web-search/internal/livesearch"
)

// Searcher is the part of livesearch.Client the routes need.
type Searcher interface {
	Search(ctx context.Context, query string, cfg livesearch.Config, raw any) (*livesearch.Result, error)
}

// Options configures the router.
type Options struct {
	Searcher Searcher
	Config   livesearch.Config
	// MCP serves /mcp when set.
	MCP http.Handler
}

// NewRouter returns the HTTP handler for the server.
func NewRouter(opts Options) *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(), gin.Recovery())

	h := &handler{searcher: opts.Searcher, cfg: opts.Config}
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/search/:input", h.searchPath)
	r.GET("/search", h.searchQuery)
	r.POST("/search", h.searchJSON)
	if opts.MCP != nil {
		r.Any("/mcp", gin.WrapH(opts.MCP))
	}
	return r
}

type handler struct {
	searcher Searcher
	cfg      livesearch.Config
}

// searchPath answers POST /search/:input with plain text and no parameters.
func (h *handler) searchPath(c *gin.Context) {
	input := strings.TrimSpace(c.Param("input"))
	if input == "" {
		c.String(http.StatusBadRequest, "Missing 'input'")
		return
	}
	res, err := h.searcher.Search(c.Request.Context(), input, h.cfg, nil)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.String(http.StatusOK, res.Text)
}

// searchQuery answers GET /search. The query string is the parameter bag.
func (h *handler) searchQuery(c *gin.Context) {
	values := c.Request.URL.Query()
	input := strings.TrimSpace(values.Get("input"))
	if input == "" {
		input = strings.TrimSpace(values.Get("q"))
	}
	if input == "" {
		c.String(http.StatusBadRequest, "Missing 'input'")
		return
	}
	h.respond(c, input, values)
}

// searchJSON answers POST /search with a JSON object body.
func (h *handler) searchJSON(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.String(http.StatusBadRequest, "invalid JSON body: %v", err)
		return
	}
	input, _ := body["input"].(string)
	input = strings.TrimSpace(input)
	if input == "" {
		c.String(http.StatusBadRequest, "Missing 'input'")
		return
	}
	delete(body, "input")
	h.respond(c, input, body)
}

func (h *handler) respond(c *gin.Context, input string, raw any) {
	res, err := h.searcher.Search(c.Request.Context(), input, h.cfg, raw)
	if err != nil {
		h.fail(c, err)
		return
	}
	if c.NegotiateFormat(gin.MIMEPlain, gin.MIMEJSON) == gin.MIMEJSON {
		citations := res.Citations
		if citations == nil {
			citations = []string{}
		}
		c.JSON(http.StatusOK, gin.H{"text": res.Text, "citations": citations})
		return
	}
	c.String(http.StatusOK, res.Text)
}

func (h *handler) fail(c *gin.Context, err error) {
	_ = c.Error(err)

	var (
		upstream *livesearch.UpstreamError
		cfgErr   *livesearch.ConfigurationError
	)
	switch {
	case errors.Is(err, livesearch.ErrEmptyQuery):
		c.String(http.StatusBadRequest, "Missing 'input'")
	case errors.As(err, &upstream):
		c.String(http.StatusBadGateway, err.Error())
	case errors.As(err, &cfgErr):
		c.String(http.StatusInternalServerError, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		c.String(http.StatusGatewayTimeout, err.Error())
	default:
		c.String(http.StatusInternalServerError, err.Error())
	}
}
