package server

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/HendryAvila/magicnumbers/internal/config"
)

func testConfig(dataDir string) config.Config {
	return config.Config{
		DataDir:      dataDir,
		Locale:       "en-US",
		Digits:       6,
		LogLevel:     "info",
		CacheSize:    16,
		HistoryLimit: 20,
	}
}

// rpc sends one JSON-RPC request to the server and returns the raw response.
func rpc(t *testing.T, s *mcpserver.MCPServer, method string, params any) string {
	t.Helper()
	msg := map[string]any{"jsonrpc": "2.0", "id": 1, "method": method}
	if params != nil {
		msg["params"] = params
	}
	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	out, err := json.Marshal(s.HandleMessage(context.Background(), raw))
	require.NoError(t, err)
	return string(out)
}

func TestNew_RegistersAllTools(t *testing.T) {
	s, cleanup, err := New(testConfig(t.TempDir()), zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	out := rpc(t, s, "tools/list", nil)
	for _, name := range []string{
		"numerology_generate", "numerology_read", "numerology_history",
		"numerology_get_reading", "numerology_delete_reading", "numerology_stats",
	} {
		assert.Contains(t, out, `"`+name+`"`)
	}

	out = rpc(t, s, "prompts/list", nil)
	assert.Contains(t, out, "numerology-reading")
	assert.Contains(t, out, "numerology-history")

	out = rpc(t, s, "resources/list", nil)
	assert.Contains(t, out, "numerology://readings/recent")
}

func TestNew_HistoryDisabled(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	core, logs := observer.New(zapcore.WarnLevel)
	s, cleanup, err := New(testConfig(file), zap.New(core))
	require.NoError(t, err, "history failure must not stop the server")
	defer cleanup()

	assert.Equal(t, 1, logs.FilterMessage("reading history disabled").Len())

	out := rpc(t, s, "tools/list", nil)
	assert.Contains(t, out, `"numerology_read"`)
	assert.NotContains(t, out, `"numerology_history"`)
}

func TestNew_ReadCallRoundTrip(t *testing.T) {
	s, cleanup, err := New(testConfig(t.TempDir()), zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	out := rpc(t, s, "tools/call", map[string]any{
		"name":      "numerology_read",
		"arguments": map[string]any{"digits": "1221"},
	})
	assert.Contains(t, out, "The Nurturer")
	assert.Contains(t, out, "Reading ID")
}

func TestNew_RejectsMalformedLocale(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.Locale = "not a locale!"
	_, cleanup, err := New(cfg, zap.NewNop())
	assert.Error(t, err)
	cleanup()
}
