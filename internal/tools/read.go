package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/HendryAvila/magicnumbers/internal/numerology"
	"github.com/HendryAvila/magicnumbers/internal/readings"
)

// ReadTool handles the numerology_read MCP tool.
type ReadTool struct {
	cache     *numerology.Cache
	presenter *Presenter
	history   History
	logger    *zap.Logger
}

// NewReadTool creates a ReadTool. history may be nil.
func NewReadTool(cache *numerology.Cache, presenter *Presenter, history History, logger *zap.Logger) *ReadTool {
	return &ReadTool{cache: cache, presenter: presenter, history: history, logger: logger}
}

// Definition returns the MCP tool definition for numerology_read.
func (t *ReadTool) Definition() mcp.Tool {
	return mcp.NewTool("numerology_read",
		mcp.WithDescription(
			"Read a digit string the user supplies (a phone number, date, plate, time...). "+
				"Non-digit characters are ignored for the analysis but kept for display.",
		),
		mcp.WithString("digits",
			mcp.Required(),
			mcp.Description("The number to analyze; must contain at least one digit 0-9"),
		),
		mcp.WithString("locale",
			mcp.Description("Locale for the reading text, e.g. en-US or de-DE"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: 'text' (default) or 'json'"),
		),
	)
}

// Handle processes the numerology_read tool call.
func (t *ReadTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input := req.GetString("digits", "")
	if numerology.Clean(input) == "" {
		return mcp.NewToolResultError("'digits' must contain at least one digit 0-9"), nil
	}

	r, err := t.presenter.parse(req.GetString("locale", ""), req.GetString("format", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res := t.cache.Analyze(input)
	id := save(t.history, t.logger, res, r.resolver.Locale(), readings.SourceRead)
	return t.presenter.present(r, res, id)
}
