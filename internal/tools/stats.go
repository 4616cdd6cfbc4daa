package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/magicnumbers/internal/numerology"
)

// StatsTool handles the numerology_stats MCP tool.
type StatsTool struct {
	history   History
	cache     *numerology.Cache
	presenter *Presenter
}

// NewStatsTool creates a StatsTool.
func NewStatsTool(history History, cache *numerology.Cache, presenter *Presenter) *StatsTool {
	return &StatsTool{history: history, cache: cache, presenter: presenter}
}

// Definition returns the MCP tool definition for numerology_stats.
func (t *StatsTool) Definition() mcp.Tool {
	return mcp.NewTool("numerology_stats",
		mcp.WithDescription(
			"Show reading statistics: totals, distinct numbers, how often each reduced value came up "+
				"and the most frequent summary.",
		),
	)
}

// Handle processes the numerology_stats tool call.
func (t *StatsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := t.history.Stats()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get stats: %v", err)), nil
	}

	var sb strings.Builder
	sb.WriteString("## Reading Statistics\n\n")
	fmt.Fprintf(&sb, "- **Readings**: %d\n", stats.TotalReadings)
	fmt.Fprintf(&sb, "- **Distinct numbers**: %d\n", stats.DistinctDigits)

	if len(stats.ByReduced) > 0 {
		values := make([]int, 0, len(stats.ByReduced))
		for v := range stats.ByReduced {
			values = append(values, v)
		}
		sort.Ints(values)
		parts := make([]string, 0, len(values))
		for _, v := range values {
			parts = append(parts, fmt.Sprintf("%d×%d", v, stats.ByReduced[v]))
		}
		fmt.Fprintf(&sb, "- **Reduced values**: %s\n", strings.Join(parts, ", "))
	}
	if stats.TopSummaryKey != "" {
		summary := t.presenter.Resolver("").Resolve(numerology.Key(stats.TopSummaryKey))
		fmt.Fprintf(&sb, "- **Most frequent summary**: %s\n", numerology.CleanMarkdown(summary))
	}

	cs := t.cache.Stats()
	fmt.Fprintf(&sb, "- **Cache**: %d entries, %d hits, %d misses\n", cs.Entries, cs.Hits, cs.Misses)
	return mcp.NewToolResultText(sb.String()), nil
}
