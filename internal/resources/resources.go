// Package resources implements MCP resource handlers for reading history.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (numerology://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/magicnumbers/internal/readings"
)

// RecentURI addresses the recent readings resource.
const RecentURI = "numerology://readings/recent"

// Recenter lists recent readings.
type Recenter interface {
	Recent(limit int) ([]readings.Reading, error)
}

// Handler manages reading resource endpoints.
type Handler struct {
	history Recenter
	limit   int
}

// NewHandler creates a resource Handler. limit bounds how many readings
// the recent resource returns.
func NewHandler(history Recenter, limit int) *Handler {
	return &Handler{history: history, limit: limit}
}

// RecentResource returns the MCP resource definition for recent readings.
func (h *Handler) RecentResource() mcp.Resource {
	return mcp.NewResource(
		RecentURI,
		"Recent Numerology Readings",
		mcp.WithResourceDescription("The most recent readings as JSON, newest first"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleRecent returns the recent readings as JSON.
func (h *Handler) HandleRecent(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	list, err := h.history.Recent(h.limit)
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("resources: marshal readings: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
