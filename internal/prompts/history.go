package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// HistoryPrompt handles the numerology-history MCP prompt.
// It instructs the AI to review past readings.
type HistoryPrompt struct{}

// NewHistoryPrompt creates a HistoryPrompt.
func NewHistoryPrompt() *HistoryPrompt {
	return &HistoryPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *HistoryPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("numerology-history",
		mcp.WithPromptDescription(
			"Review your past readings: which numbers came up, "+
				"which reduced values repeat and what the recurring message is.",
		),
	)
}

// Handle processes the numerology-history prompt request.
func (p *HistoryPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Numerology History",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please run `numerology_stats` and `numerology_history` to review my readings.\n\n" +
						"Then:\n" +
						"1. List the numbers I have read, newest first\n" +
						"2. Point out reduced values or summaries that keep coming back\n" +
						"3. Offer to show any reading in full with `numerology_get_reading`",
				),
			},
		},
	}, nil
}
