package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/magicnumbers/internal/numerology"
	"github.com/HendryAvila/magicnumbers/internal/readings"
)

// HistoryTool handles the numerology_history MCP tool.
type HistoryTool struct {
	history   History
	presenter *Presenter
	limit     int
}

// NewHistoryTool creates a HistoryTool. defaultLimit applies when a call
// passes no limit.
func NewHistoryTool(history History, presenter *Presenter, defaultLimit int) *HistoryTool {
	return &HistoryTool{history: history, presenter: presenter, limit: defaultLimit}
}

// Definition returns the MCP tool definition for numerology_history.
func (t *HistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("numerology_history",
		mcp.WithDescription(
			"List recent numerology readings, newest first. "+
				"Use numerology_get_reading with an ID to show one in full.",
		),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Maximum readings to return (default %d, max %d)", t.limit, readings.MaxRecent)),
		),
	)
}

// Handle processes the numerology_history tool call.
func (t *HistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list, err := t.history.Recent(intArg(req, "limit", t.limit))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list readings: %v", err)), nil
	}
	if len(list) == 0 {
		return mcp.NewToolResultText("No readings yet. Use numerology_generate or numerology_read to create one."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Recent Readings (%d)\n\n", len(list))
	for _, r := range list {
		summary := t.presenter.Resolver(r.Locale).Resolve(numerology.Key(r.SummaryKey))
		fmt.Fprintf(&sb, "- `%s` **%s** → %d (%s, %s)\n  %s\n",
			r.ID, r.Input, r.Reduced, r.Source, r.CreatedAt,
			numerology.CleanMarkdown(summary))
	}
	return mcp.NewToolResultText(sb.String()), nil
}
