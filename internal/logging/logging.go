// Package logging builds the process logger.
//
// stdout carries the MCP stdio transport, so every log line goes to
// stderr.
package logging

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/HendryAvila/magicnumbers/internal/config"
)

// New returns a production JSON logger at the named level.
func New(level string) (*zap.Logger, error) {
	lvl, err := config.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build logger: %w", err)
	}
	return logger, nil
}
