package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/magicnumbers/internal/numerology"
	"github.com/HendryAvila/magicnumbers/internal/readings"
)

// GetReadingTool handles the numerology_get_reading MCP tool.
type GetReadingTool struct {
	history   History
	cache     *numerology.Cache
	presenter *Presenter
}

// NewGetReadingTool creates a GetReadingTool.
func NewGetReadingTool(history History, cache *numerology.Cache, presenter *Presenter) *GetReadingTool {
	return &GetReadingTool{history: history, cache: cache, presenter: presenter}
}

// Definition returns the MCP tool definition for numerology_get_reading.
func (t *GetReadingTool) Definition() mcp.Tool {
	return mcp.NewTool("numerology_get_reading",
		mcp.WithDescription(
			"Show a stored reading in full. The reading is re-rendered from its digits, "+
				"optionally in another locale or as JSON.",
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Reading ID as shown by numerology_history"),
		),
		mcp.WithString("locale",
			mcp.Description("Locale for the reading text; defaults to the locale it was saved with"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: 'text' (default) or 'json'"),
		),
	)
}

// Handle processes the numerology_get_reading tool call.
func (t *GetReadingTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	stored, err := t.history.Get(id)
	if errors.Is(err, readings.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("reading %q not found", id)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load reading: %v", err)), nil
	}

	locale := req.GetString("locale", "")
	if locale == "" {
		locale = stored.Locale
	}
	r, err := t.presenter.parse(locale, req.GetString("format", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return t.presenter.present(r, t.cache.Analyze(stored.Input), stored.ID)
}
