package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/magicnumbers/internal/readings"
)

// DeleteReadingTool handles the numerology_delete_reading MCP tool.
type DeleteReadingTool struct {
	history History
}

// NewDeleteReadingTool creates a DeleteReadingTool.
func NewDeleteReadingTool(history History) *DeleteReadingTool {
	return &DeleteReadingTool{history: history}
}

// Definition returns the MCP tool definition for numerology_delete_reading.
func (t *DeleteReadingTool) Definition() mcp.Tool {
	return mcp.NewTool("numerology_delete_reading",
		mcp.WithDescription("Permanently delete a stored reading by ID."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Reading ID to delete"),
		),
	)
}

// Handle processes the numerology_delete_reading tool call.
func (t *DeleteReadingTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	err := t.history.Delete(id)
	if errors.Is(err, readings.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("reading %q not found", id)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete reading: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Reading %s deleted", id)), nil
}
