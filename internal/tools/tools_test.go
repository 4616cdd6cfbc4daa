package tools

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/HendryAvila/magicnumbers/internal/catalog"
	"github.com/HendryAvila/magicnumbers/internal/numerology"
	"github.com/HendryAvila/magicnumbers/internal/readings"
)

// ─── Test helpers ────────────────────────────────────────────────────────────

// newTestStore creates a readings.Store in a temp directory for testing.
func newTestStore(t *testing.T) *readings.Store {
	t.Helper()
	store, err := readings.New(readings.Config{DataDir: t.TempDir(), DefaultRecent: 20})
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newPresenter() *Presenter {
	return NewPresenter(catalog.Default(), catalog.BaseLocale)
}

// makeReq builds a mcp.CallToolRequest with the given arguments.
func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func call(t *testing.T, h func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	res, err := h(context.Background(), makeReq(args))
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

// failingHistory rejects every write.
type failingHistory struct{ History }

func (failingHistory) Save(readings.SaveParams) (*readings.Reading, error) {
	return nil, errors.New("disk full")
}

// ─── GenerateTool ───────────────────────────────────────────────────────────

func TestGenerateTool_Definition(t *testing.T) {
	tool := NewGenerateTool(numerology.NewSource(1), numerology.NewCache(8), newPresenter(), nil, zap.NewNop(), 6)
	def := tool.Definition()

	assert.Equal(t, "numerology_generate", def.Name)
	for _, p := range []string{"length", "locale", "format"} {
		assert.Contains(t, def.InputSchema.Properties, p)
	}
	assert.Empty(t, def.InputSchema.Required)
}

func TestGenerateTool_DeterministicAndSaved(t *testing.T) {
	store := newTestStore(t)
	want := numerology.Generate(numerology.NewSource(42), 8)

	tool := NewGenerateTool(numerology.NewSource(42), numerology.NewCache(8), newPresenter(), store, zap.NewNop(), 6)
	res := call(t, tool.Handle, map[string]interface{}{"length": float64(8), "format": "json"})
	require.False(t, res.IsError, resultText(res))

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &payload))
	assert.Equal(t, want, payload["number"])
	assert.Equal(t, "en-US", payload["locale"])
	assert.NotEmpty(t, payload["text"])

	pct, ok := payload["frequency_percent"].(float64)
	require.True(t, ok)
	assert.GreaterOrEqual(t, pct, 10.0)
	assert.LessOrEqual(t, pct, 100.0)

	id, _ := payload["reading_id"].(string)
	require.NotEmpty(t, id)
	stored, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, want, stored.Digits)
	assert.Equal(t, readings.SourceGenerated, stored.Source)
}

func TestGenerateTool_DefaultLengthText(t *testing.T) {
	tool := NewGenerateTool(numerology.NewSource(3), numerology.NewCache(8), newPresenter(), nil, zap.NewNop(), 4)
	res := call(t, tool.Handle, map[string]interface{}{})
	require.False(t, res.IsError)

	text := resultText(res)
	assert.Contains(t, text, "Your cross sum is:")
	assert.NotContains(t, text, "Reading ID", "no history, nothing saved")
	assert.NotContains(t, text, "**")
}

func TestGenerateTool_RejectsBadInput(t *testing.T) {
	tool := NewGenerateTool(numerology.NewSource(1), numerology.NewCache(8), newPresenter(), nil, zap.NewNop(), 6)
	tests := map[string]map[string]interface{}{
		"zero length":    {"length": float64(0)},
		"huge length":    {"length": float64(33)},
		"unknown format": {"format": "xml"},
		"bad locale":     {"locale": "not a locale!"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			res := call(t, tool.Handle, args)
			assert.True(t, res.IsError, resultText(res))
		})
	}
}

func TestGenerateTool_SaveFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	tool := NewGenerateTool(numerology.NewSource(1), numerology.NewCache(8), newPresenter(), failingHistory{}, zap.New(core), 6)

	res := call(t, tool.Handle, map[string]interface{}{})
	assert.False(t, res.IsError, "reading still returned")
	assert.NotContains(t, resultText(res), "Reading ID")
	assert.Equal(t, 1, logs.FilterMessage("failed to save reading").Len())
}

// ─── ReadTool ───────────────────────────────────────────────────────────────

func TestReadTool_Definition(t *testing.T) {
	def := NewReadTool(numerology.NewCache(8), newPresenter(), nil, zap.NewNop()).Definition()
	assert.Equal(t, "numerology_read", def.Name)
	assert.Contains(t, def.InputSchema.Required, "digits")
}

func TestReadTool_RequiresDigits(t *testing.T) {
	tool := NewReadTool(numerology.NewCache(8), newPresenter(), nil, zap.NewNop())
	for _, in := range []interface{}{nil, "", "abc-/"} {
		args := map[string]interface{}{}
		if in != nil {
			args["digits"] = in
		}
		res := call(t, tool.Handle, args)
		assert.True(t, res.IsError, "input %v", in)
	}
}

func TestReadTool_RendersLocalizedText(t *testing.T) {
	store := newTestStore(t)
	tool := NewReadTool(numerology.NewCache(8), newPresenter(), store, zap.NewNop())

	res := call(t, tool.Handle, map[string]interface{}{"digits": "1221"})
	require.False(t, res.IsError)
	text := resultText(res)
	assert.True(t, strings.HasPrefix(text, "6 – The Nurturer"), text)
	assert.Contains(t, text, "Reading ID: ")

	res = call(t, tool.Handle, map[string]interface{}{"digits": "1221", "locale": "de"})
	require.False(t, res.IsError)
	assert.Contains(t, resultText(res), "Deine Quersumme ist:")

	recent, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "de-DE", recent[0].Locale)
	assert.Equal(t, readings.SourceRead, recent[0].Source)
}

// ─── HistoryTool ────────────────────────────────────────────────────────────

func TestHistoryTool_EmptyAndFilled(t *testing.T) {
	store := newTestStore(t)
	history := NewHistoryTool(store, newPresenter(), 20)

	res := call(t, history.Handle, map[string]interface{}{})
	assert.Contains(t, resultText(res), "No readings yet")

	read := NewReadTool(numerology.NewCache(8), newPresenter(), store, zap.NewNop())
	call(t, read.Handle, map[string]interface{}{"digits": "555555"})
	call(t, read.Handle, map[string]interface{}{"digits": "12-34"})

	res = call(t, history.Handle, map[string]interface{}{"limit": float64(1)})
	text := resultText(res)
	assert.Contains(t, text, "Recent Readings (1)")
	assert.Contains(t, text, "**12-34**")
	assert.NotContains(t, text, "555555")
}

// ─── GetReadingTool ─────────────────────────────────────────────────────────

func TestGetReadingTool(t *testing.T) {
	store := newTestStore(t)
	cache := numerology.NewCache(8)
	saved, err := store.Save(readings.SaveParams{Result: numerology.Analyze("112200"), Locale: "de-DE"})
	require.NoError(t, err)

	tool := NewGetReadingTool(store, cache, newPresenter())
	assert.Equal(t, "numerology_get_reading", tool.Definition().Name)

	res := call(t, tool.Handle, map[string]interface{}{"id": saved.ID})
	require.False(t, res.IsError)
	assert.Contains(t, resultText(res), "Deine Quersumme ist:", "stored locale is the default")

	res = call(t, tool.Handle, map[string]interface{}{"id": saved.ID, "locale": "en-US", "format": "json"})
	require.False(t, res.IsError)
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &payload))
	assert.Equal(t, saved.ID, payload["reading_id"])
	assert.Equal(t, "summary_multi_master", payload["summary"])

	res = call(t, tool.Handle, map[string]interface{}{"id": "nope"})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(res), "not found")

	res = call(t, tool.Handle, map[string]interface{}{})
	assert.True(t, res.IsError)
}

// ─── DeleteReadingTool ──────────────────────────────────────────────────────

func TestDeleteReadingTool(t *testing.T) {
	store := newTestStore(t)
	saved, err := store.Save(readings.SaveParams{Result: numerology.Analyze("77"), Locale: "en-US"})
	require.NoError(t, err)

	tool := NewDeleteReadingTool(store)
	res := call(t, tool.Handle, map[string]interface{}{"id": saved.ID})
	require.False(t, res.IsError, resultText(res))
	assert.Contains(t, resultText(res), "deleted")

	res = call(t, tool.Handle, map[string]interface{}{"id": saved.ID})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(res), "not found")

	res = call(t, tool.Handle, map[string]interface{}{})
	assert.True(t, res.IsError)
}

// ─── StatsTool ──────────────────────────────────────────────────────────────

func TestStatsTool(t *testing.T) {
	store := newTestStore(t)
	cache := numerology.NewCache(8)
	read := NewReadTool(cache, newPresenter(), store, zap.NewNop())
	call(t, read.Handle, map[string]interface{}{"digits": "555555"})
	call(t, read.Handle, map[string]interface{}{"digits": "555555"})
	call(t, read.Handle, map[string]interface{}{"digits": "1221"})

	tool := NewStatsTool(store, cache, newPresenter())
	res := call(t, tool.Handle, map[string]interface{}{})
	require.False(t, res.IsError)

	text := resultText(res)
	assert.Contains(t, text, "**Readings**: 3")
	assert.Contains(t, text, "**Distinct numbers**: 2")
	assert.Contains(t, text, "3×2, 6×1")
	assert.Contains(t, text, "amplifies change")
	assert.Contains(t, text, "1 hits, 2 misses")
}
