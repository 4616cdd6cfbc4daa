package catalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HendryAvila/magicnumbers/internal/catalog"
	"github.com/HendryAvila/magicnumbers/internal/numerology"
)

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// ─── Loading ────────────────────────────────────────────────────────────────

func TestLoadEmbedded_Locales(t *testing.T) {
	b, err := catalog.LoadEmbedded()
	require.NoError(t, err)
	assert.Equal(t, []string{"de-DE", "en-US"}, b.Locales())
	assert.Contains(t, b.Namespaces("en-US"), "angel")
	assert.NotEmpty(t, b.LocaleMessages("en-US"))
}

func TestLoadEmbedded_BaseLocaleCoversEveryEngineKey(t *testing.T) {
	b := catalog.Default()
	missing := b.Missing(catalog.BaseLocale, numerology.AllKeys())
	assert.Empty(t, missing)
}

func TestLoadFromFS_RejectsDuplicateKeysAcrossNamespaces(t *testing.T) {
	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "locales/en-US/a.yaml"), `locale: "en-US"
namespace: "a"
messages:
  "k": "one"
`)
	mustWriteFile(t, filepath.Join(dir, "locales/en-US/b.yaml"), `locale: "en-US"
namespace: "b"
messages:
  "k": "two"
`)
	_, err := catalog.LoadFromFS(os.DirFS(dir))
	assert.ErrorContains(t, err, "duplicate key")
}

func TestLoadFromFS_RejectsLocaleMismatch(t *testing.T) {
	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "locales/en-US/a.yaml"), `locale: "de-DE"
namespace: "a"
messages:
  "k": "v"
`)
	_, err := catalog.LoadFromFS(os.DirFS(dir))
	assert.ErrorContains(t, err, "must match path locale")
}

func TestLoadFromFS_RequiresBaseLocale(t *testing.T) {
	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "locales/de-DE/a.yaml"), `locale: "de-DE"
namespace: "a"
messages:
  "k": "v"
`)
	_, err := catalog.LoadFromFS(os.DirFS(dir))
	assert.ErrorContains(t, err, "base locale")
}

func TestLoadFromFS_Empty(t *testing.T) {
	_, err := catalog.LoadFromFS(os.DirFS(t.TempDir()))
	assert.Error(t, err)
}

// ─── Lookup ─────────────────────────────────────────────────────────────────

func TestMessage_FallsBackToBase(t *testing.T) {
	b := catalog.Default()

	v, ok := b.Message("de-DE", "keyword_5")
	require.True(t, ok)
	assert.Equal(t, "Wandel", v)

	v, ok = b.Message("de-DE", "angel_5_2")
	require.True(t, ok)
	en, _ := b.Message("en-US", "angel_5_2")
	assert.Equal(t, en, v)

	_, ok = b.Message("en-US", "no_such_key")
	assert.False(t, ok)
}

func TestMatch(t *testing.T) {
	b := catalog.Default()
	tests := []struct {
		in   string
		want string
	}{
		{"", "en-US"},
		{"en-US", "en-US"},
		{"de", "de-DE"},
		{"de-DE", "de-DE"},
		{"fr-FR", "en-US"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := b.Match(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatch_MalformedTag(t *testing.T) {
	_, err := catalog.Default().Match("not a locale!")
	assert.True(t, errors.Is(err, catalog.ErrUnknownLocale), "got %v", err)
}

// ─── Resolver ───────────────────────────────────────────────────────────────

func TestResolver_FormatsArgs(t *testing.T) {
	r, err := catalog.Default().Resolver("en-US")
	require.NoError(t, err)

	assert.Equal(t, "Your message for the moment: **123**", r.Resolve(numerology.KeyMessageForTheMoment, "123"))
	assert.Contains(t, r.Resolve(numerology.KeyDigitOccurrence, 3), "3 times")
	assert.Equal(t, "", r.Resolve(numerology.None))
	assert.Equal(t, "unmapped_key", r.Resolve("unmapped_key"))
}

func TestResolver_PartialLocaleUsesBase(t *testing.T) {
	r, err := catalog.Default().Resolver("de")
	require.NoError(t, err)
	assert.Equal(t, "de-DE", r.Locale())
	assert.Equal(t, "Wandel", r.Resolve(numerology.KeywordKey(5)))

	en, _ := catalog.Default().Message("en-US", "angel_5_2")
	assert.Equal(t, en, r.Resolve(numerology.RunKey(5, 2)))
}

func TestResolver_RendersFullReading(t *testing.T) {
	r, err := catalog.Default().Resolver("en-US")
	require.NoError(t, err)

	out := numerology.Analyze("112200").Render(r)
	assert.NotContains(t, out, "*")
	assert.NotContains(t, out, "%!", "format verbs must match args")
	assert.True(t, strings.HasPrefix(out, "6 – The Nurturer"), out)
	assert.Contains(t, out, "Vision and realisation unite")
	assert.Contains(t, out, "(appears 2 times")
}

func TestResolver_NoFormatErrorsAcrossInputs(t *testing.T) {
	for _, locale := range []string{"en-US", "de-DE"} {
		r, err := catalog.Default().Resolver(locale)
		require.NoError(t, err)
		src := numerology.NewSource(7)
		for i := 0; i < 300; i++ {
			out := numerology.Analyze(numerology.Generate(src, 3+i%5)).Render(r)
			require.NotContains(t, out, "%!", "locale %s:\n%s", locale, out)
		}
	}
}
