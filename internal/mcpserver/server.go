// Package mcpserver assembles the MCP server exposing the search tools.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/leonardcser/xai-web-search/internal/livesearch"
	"github.com/leonardcser/xai-web-search/internal/logger"
	"github.com/leonardcser/xai-web-search/internal/tools"
)

const (
	Name    = "xai-web-search"
	Version = "0.1.0"
)

// Deps are the collaborators the tools run against. Fetcher may be nil, in
// which case only the search tool is registered.
type Deps struct {
	Searcher tools.Searcher
	Config   livesearch.Config
	Fetcher  tools.PageFetcher
}

// New builds an MCP server with the search tool and, when a fetcher is
// given, the web-fetch tool.
func New(d Deps) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		Name,
		Version,
		server.WithRecovery(),
		server.WithToolCapabilities(false),
	)

	search, err := tools.NewWebSearchTool()
	if err != nil {
		return nil, err
	}
	s.AddTool(search, tools.WebSearchHandler(d.Searcher, d.Config))
	logger.Infof("Registered %s tool", tools.WebSearchToolName)

	if d.Fetcher != nil {
		s.AddTool(tools.NewWebFetchTool(), tools.WebFetchHandler(d.Fetcher))
		logger.Infof("Registered %s tool", tools.WebFetchToolName)
	}
	return s, nil
}

// NewHTTPHandler wraps s in the stateless streamable HTTP transport.
func NewHTTPHandler(s *server.MCPServer) *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(s, server.WithStateLess(true))
}
