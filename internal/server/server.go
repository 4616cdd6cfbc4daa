// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates concrete implementations and
// injects them into the tools, prompts and resources that depend on
// them. No business logic lives here, only wiring.
package server

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/HendryAvila/magicnumbers/internal/catalog"
	"github.com/HendryAvila/magicnumbers/internal/config"
	"github.com/HendryAvila/magicnumbers/internal/numerology"
	"github.com/HendryAvila/magicnumbers/internal/prompts"
	"github.com/HendryAvila/magicnumbers/internal/readings"
	"github.com/HendryAvila/magicnumbers/internal/resources"
	"github.com/HendryAvila/magicnumbers/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
//
// The returned cleanup function closes the reading store and must be
// called on shutdown (typically via defer). It is always non-nil and
// safe to call even if the history subsystem failed to start.
func New(cfg config.Config, logger *zap.Logger) (*server.MCPServer, func(), error) {
	// --- Create shared dependencies ---

	bundle := catalog.Default()
	if _, err := bundle.Match(cfg.Locale); err != nil {
		return nil, noop, fmt.Errorf("server: default locale: %w", err)
	}

	cache := numerology.NewCache(cfg.CacheSize)
	presenter := tools.NewPresenter(bundle, cfg.Locale)
	source := numerology.NewTimeSource()

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"magicnumbers",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Reading history ---
	//
	// History is an independent subsystem: if it fails to initialize,
	// readings still work, they just are not stored. The history tools,
	// prompt and resource are skipped.

	cleanup := noop
	var history tools.History
	store, storeErr := readings.New(readings.Config{DataDir: cfg.DataDir, DefaultRecent: cfg.HistoryLimit})
	if storeErr != nil {
		logger.Warn("reading history disabled", zap.String("data_dir", cfg.DataDir), zap.Error(storeErr))
	} else {
		history = store
		cleanup = func() {
			if err := store.Close(); err != nil {
				logger.Warn("reading store close", zap.Error(err))
			}
		}
	}

	// --- Register reading tools ---

	generateTool := tools.NewGenerateTool(source, cache, presenter, history, logger, cfg.Digits)
	s.AddTool(generateTool.Definition(), generateTool.Handle)

	readTool := tools.NewReadTool(cache, presenter, history, logger)
	s.AddTool(readTool.Definition(), readTool.Handle)

	readingPrompt := prompts.NewReadingPrompt()
	s.AddPrompt(readingPrompt.Definition(), readingPrompt.Handle)

	if history != nil {
		registerHistory(s, store, cache, presenter, cfg.HistoryLimit)
	}

	logger.Info("server ready",
		zap.String("version", Version),
		zap.String("locale", cfg.Locale),
		zap.Bool("history", history != nil),
		zap.Int("cache_size", cfg.CacheSize),
	)
	return s, cleanup, nil
}

// registerHistory adds everything that needs the reading store.
func registerHistory(s *server.MCPServer, store *readings.Store, cache *numerology.Cache, presenter *tools.Presenter, limit int) {
	historyTool := tools.NewHistoryTool(store, presenter, limit)
	s.AddTool(historyTool.Definition(), historyTool.Handle)

	getTool := tools.NewGetReadingTool(store, cache, presenter)
	s.AddTool(getTool.Definition(), getTool.Handle)

	deleteTool := tools.NewDeleteReadingTool(store)
	s.AddTool(deleteTool.Definition(), deleteTool.Handle)

	statsTool := tools.NewStatsTool(store, cache, presenter)
	s.AddTool(statsTool.Definition(), statsTool.Handle)

	historyPrompt := prompts.NewHistoryPrompt()
	s.AddPrompt(historyPrompt.Definition(), historyPrompt.Handle)

	resourceHandler := resources.NewHandler(store, limit)
	s.AddResource(resourceHandler.RecentResource(), resourceHandler.HandleRecent)
}

// noop is a no-op cleanup function used as the default when history
// is disabled.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to use the numerology tools.
func serverInstructions() string {
	return `You have access to magicnumbers, a numerology reading MCP server.

## WHEN TO USE IT

Use these tools when the user:
- Asks what a number "means" (phone number, date, time, license plate, house number)
- Mentions angel numbers, repeating numbers, master numbers or cross sums
- Wants a random "number of the day" reading

## TOOLS

- numerology_read: read a number the user gives you. Non-digits are ignored.
- numerology_generate: draw a random number and read it.
- numerology_history / numerology_get_reading / numerology_delete_reading /
  numerology_stats: browse stored readings (only when history is enabled).

Both reading tools take an optional locale (en-US, de-DE) and format
("text" or "json"). Use json when you want to reason over the structured
result: cross sum trace, pattern tags, master numbers, frequency score,
resonance and narrative keys.

## PRESENTING A READING

- Keep the reading's own titles and wording. Do not invent meanings.
- Explain the cross sum trace step by step when the user is curious.
- A reading is reflective entertainment, not advice. Never present it as
  medical, legal or financial guidance.`
}
