package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/leonardcser/xai-web-search/internal/livesearch"
	"github.com/leonardcser/xai-web-search/internal/logger"
)

// WebSearchToolName is the MCP name of the live search tool.
const WebSearchToolName = "xai-web-search"

const webSearchDescription = "An AI agent with advanced web search capabilities. " +
	"Useful for finding the latest information, troubleshooting errors, and discussing ideas or design challenges. " +
	"Supports natural language queries."

// WebSearchArgs documents the tool's arguments. Several fields accept more
// than one JSON type because clients encode them differently.
type WebSearchArgs struct {
	Input            string `json:"input" jsonschema:"required"`
	Mode             string `json:"mode,omitempty"`
	ReturnCitations  any    `json:"return_citations,omitempty" jsonschema:"oneof_type=boolean;string"`
	MaxSearchResults any    `json:"max_search_results,omitempty" jsonschema:"oneof_type=number;string"`
	FromDate         string `json:"from_date,omitempty"`
	ToDate           string `json:"to_date,omitempty"`
	Sources          any    `json:"sources,omitempty" jsonschema:"oneof_type=string;object;array"`
}

var argDescriptions = map[string]string{
	"input":              "Ask questions, search for information, or consult about complex problems in English.",
	"mode":               "Controls Grok live search mode (auto | on | off). Defaults to env or 'on'.",
	"return_citations":   "Whether to request citation metadata in Grok responses.",
	"max_search_results": "Maximum number of search results Grok should retrieve (integer).",
	"from_date":          "Lower bound for result timestamps (ISO 8601 date string).",
	"to_date":            "Upper bound for result timestamps (ISO 8601 date string).",
	"sources":            "Override search corpus. Accepts JSON, object, array, or comma-separated source types.",
}

// WebSearchSchema returns the JSON schema of WebSearchArgs.
func WebSearchSchema() (json.RawMessage, error) {
	r := &jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
		ExpandedStruct: true,
	}
	schema := r.Reflect(&WebSearchArgs{})
	schema.Version = ""
	for name, desc := range argDescriptions {
		if prop, ok := schema.Properties.Get(name); ok {
			prop.Description = desc
		}
	}
	return json.Marshal(schema)
}

// NewWebSearchTool builds the tool definition.
func NewWebSearchTool() (mcp.Tool, error) {
	schema, err := WebSearchSchema()
	if err != nil {
		return mcp.Tool{}, fmt.Errorf("build %s schema: %w", WebSearchToolName, err)
	}
	return mcp.NewToolWithRawSchema(WebSearchToolName, webSearchDescription, schema), nil
}

// Searcher is the part of livesearch.Client the tool needs.
type Searcher interface {
	Run(ctx context.Context, query string, cfg livesearch.Config, raw any) (string, error)
}

// WebSearchHandler returns the MCP tool handler for the live search tool.
func WebSearchHandler(searcher Searcher, cfg livesearch.Config) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if ctx.Err() != nil {
			return mcp.NewToolResultError(ctx.Err().Error()), nil
		}
		input, err := req.RequireString("input")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		raw := make(map[string]any)
		for k, v := range req.GetArguments() {
			if k != "input" {
				raw[k] = v
			}
		}

		text, err := searcher.Run(ctx, input, cfg, raw)
		if err != nil {
			logger.Warnf("%s failed: %v", WebSearchToolName, err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		logger.Infof("%s answered %d bytes", WebSearchToolName, len(text))
		return mcp.NewToolResultText(text), nil
	}
}
