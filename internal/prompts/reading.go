// Package prompts implements MCP prompt handlers for numerology readings.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to run a specific sequence of tool calls. Unlike tools,
// which the AI calls, prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// ReadingPrompt handles the numerology-reading MCP prompt.
// It asks the AI to produce a reading and interpret it for the user.
type ReadingPrompt struct{}

// NewReadingPrompt creates a ReadingPrompt.
func NewReadingPrompt() *ReadingPrompt {
	return &ReadingPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *ReadingPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("numerology-reading",
		mcp.WithPromptDescription(
			"Get a numerology reading. Give a number of your own (phone number, date, time) "+
				"or leave it empty to draw a random one.",
		),
		mcp.WithArgument("digits",
			mcp.ArgumentDescription("The number to read. Empty draws a random number."),
		),
		mcp.WithArgument("locale",
			mcp.ArgumentDescription("Language of the reading, e.g. en-US or de-DE"),
		),
	)
}

// Handle processes the numerology-reading prompt request.
func (p *ReadingPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	var digits, locale string
	if args := req.Params.Arguments; args != nil {
		digits = strings.TrimSpace(args["digits"])
		locale = strings.TrimSpace(args["locale"])
	}

	var call string
	switch {
	case digits != "" && locale != "":
		call = fmt.Sprintf("`numerology_read` with digits=%q and locale=%q", digits, locale)
	case digits != "":
		call = fmt.Sprintf("`numerology_read` with digits=%q", digits)
	case locale != "":
		call = fmt.Sprintf("`numerology_generate` with locale=%q", locale)
	default:
		call = "`numerology_generate`"
	}

	return &mcp.GetPromptResult{
		Description: "Numerology Reading",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please call " + call + " to get my numerology reading.\n\n" +
						"Then:\n" +
						"1. Show me the number and its cross sum trace\n" +
						"2. Explain any master numbers and angel number patterns in plain words\n" +
						"3. Summarize the overall message and the energy flow in two or three sentences\n" +
						"4. Keep the reading's own wording for titles; do not invent new meanings",
				),
			},
		},
	}, nil
}
