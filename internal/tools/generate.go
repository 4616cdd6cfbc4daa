package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/HendryAvila/magicnumbers/internal/config"
	"github.com/HendryAvila/magicnumbers/internal/numerology"
	"github.com/HendryAvila/magicnumbers/internal/readings"
)

// GenerateTool handles the numerology_generate MCP tool.
type GenerateTool struct {
	source    numerology.Source
	cache     *numerology.Cache
	presenter *Presenter
	history   History
	logger    *zap.Logger
	length    int
}

// NewGenerateTool creates a GenerateTool. history may be nil.
// defaultLength applies when a call passes no length.
func NewGenerateTool(
	source numerology.Source,
	cache *numerology.Cache,
	presenter *Presenter,
	history History,
	logger *zap.Logger,
	defaultLength int,
) *GenerateTool {
	return &GenerateTool{
		source:    source,
		cache:     cache,
		presenter: presenter,
		history:   history,
		logger:    logger,
		length:    defaultLength,
	}
}

// Definition returns the MCP tool definition for numerology_generate.
func (t *GenerateTool) Definition() mcp.Tool {
	return mcp.NewTool("numerology_generate",
		mcp.WithDescription(
			"Generate a random digit string and return its full numerology reading: "+
				"cross sum, angel number patterns, master numbers, frequency, resonance and narrative.",
		),
		mcp.WithNumber("length",
			mcp.Description(fmt.Sprintf("Number of digits to generate (%d-%d, default %d)",
				config.MinDigits, config.MaxDigits, t.length)),
		),
		mcp.WithString("locale",
			mcp.Description("Locale for the reading text, e.g. en-US or de-DE"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: 'text' (default) or 'json'"),
		),
	)
}

// Handle processes the numerology_generate tool call.
func (t *GenerateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	length := intArg(req, "length", t.length)
	if length < config.MinDigits || length > config.MaxDigits {
		return mcp.NewToolResultError(fmt.Sprintf("length must be between %d and %d", config.MinDigits, config.MaxDigits)), nil
	}

	r, err := t.presenter.parse(req.GetString("locale", ""), req.GetString("format", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	digits := numerology.Generate(t.source, length)
	res := t.cache.Analyze(digits)
	t.logger.Debug("generated reading", zap.String("digits", digits), zap.Int("reduced", res.CrossSum.Reduced))

	id := save(t.history, t.logger, res, r.resolver.Locale(), readings.SourceGenerated)
	return t.presenter.present(r, res, id)
}
