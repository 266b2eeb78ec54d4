package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/leonardcser/xai-web-search/internal/logger"
	web "github.com/leonardcser/xai-web-search/internal/web"
)

// WebFetchToolName is the MCP name of the page fetch tool.
const WebFetchToolName = "web-fetch"

// NewWebFetchTool builds the tool definition.
func NewWebFetchTool() mcp.Tool {
	return mcp.NewTool(WebFetchToolName,
		mcp.WithDescription(strings.Join([]string{
			"Fetches a URL, typically a citation returned by xai-web-search, and returns its readable content",
			"\nFunctionality:",
			"- Returns the page title, description, outgoing links and the body as markdown",
			"- Pages are cached for a short time, repeated fetches of the same URL are fast",
			"\nUsage notes:",
			"- The URL must be a fully-formed http:// or https:// URL",
			"- Binary content such as images or PDFs is not supported",
		}, "\n")),
		mcp.WithString("url", mcp.Required(), mcp.Description("The URL to fetch content from")),
	)
}

// PageFetcher is the part of web.Fetcher the tool needs.
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*web.Page, error)
}

// WebFetchHandler returns the MCP tool handler for the page fetch tool.
func WebFetchHandler(fetcher PageFetcher) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if ctx.Err() != nil {
			return mcp.NewToolResultError(ctx.Err().Error()), nil
		}
		url, err := req.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		page, err := fetcher.Fetch(ctx, url)
		if err != nil {
			logger.Warnf("%s %s failed: %v", WebFetchToolName, url, err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(formatPage(page)), nil
	}
}

func formatPage(p *web.Page) string {
	var sb strings.Builder
	if p.Title != "" {
		sb.WriteString("# ")
		sb.WriteString(p.Title)
		sb.WriteString("\n\n")
	}
	if p.URL != "" {
		sb.WriteString("Source: ")
		sb.WriteString(p.URL)
		sb.WriteString("\n\n")
	}
	if p.Description != "" {
		sb.WriteString(p.Description)
		sb.WriteString("\n\n")
	}
	if len(p.Links) > 0 {
		sb.WriteString("## Links\n")
		for _, l := range p.Links {
			sb.WriteString("- ")
			sb.WriteString(l)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(p.Text)
	return sb.String()
}
