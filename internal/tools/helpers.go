// Package tools implements the MCP tool handlers for numerology readings.
//
// Each tool is a struct that receives its dependencies through the
// constructor, exposes Definition() for registration and Handle() for
// calls. One file per tool.
package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/HendryAvila/magicnumbers/internal/catalog"
	"github.com/HendryAvila/magicnumbers/internal/numerology"
	"github.com/HendryAvila/magicnumbers/internal/readings"
)

// Output formats accepted by the reading tools.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// History is the reading store the history tools depend on.
type History interface {
	Save(p readings.SaveParams) (*readings.Reading, error)
	Get(id string) (*readings.Reading, error)
	Recent(limit int) ([]readings.Reading, error)
	Delete(id string) error
	Stats() (*readings.Stats, error)
}

// Presenter renders analyses for tool responses in the requested locale
// and format.
type Presenter struct {
	bundle *catalog.Bundle
	locale string
}

// NewPresenter creates a Presenter. defaultLocale is used when a call
// passes no locale.
func NewPresenter(bundle *catalog.Bundle, defaultLocale string) *Presenter {
	return &Presenter{bundle: bundle, locale: defaultLocale}
}

// readingJSON is the json format payload.
type readingJSON struct {
	numerology.Result
	ReadingID        string  `json:"reading_id,omitempty"`
	Locale           string  `json:"locale"`
	Text             string  `json:"text"`
	FrequencyPercent int     `json:"frequency_percent"`
	FrequencyHue     float64 `json:"frequency_hue"`
}

// request holds the locale and format of a reading call, validated
// before any work is done.
type request struct {
	resolver *catalog.Resolver
	format   string
}

// parse validates locale and format. A blank locale selects the
// presenter default.
func (p *Presenter) parse(locale, format string) (request, error) {
	if strings.TrimSpace(locale) == "" {
		locale = p.locale
	}
	resolver, err := p.bundle.Resolver(locale)
	if err != nil {
		return request{}, err
	}

	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "", FormatText:
		return request{resolver: resolver, format: FormatText}, nil
	case FormatJSON:
		return request{resolver: resolver, format: FormatJSON}, nil
	default:
		return request{}, fmt.Errorf("unknown format %q (use %q or %q)", format, FormatText, FormatJSON)
	}
}

// Resolver returns the resolver for locale, falling back to the default
// locale when locale is blank or malformed.
func (p *Presenter) Resolver(locale string) *catalog.Resolver {
	if r, err := p.parse(locale, ""); err == nil {
		return r.resolver
	}
	r, err := p.bundle.Resolver(p.locale)
	if err != nil {
		r, _ = p.bundle.Resolver(catalog.BaseLocale)
	}
	return r
}

// Render formats res in the given locale and format, the way the
// reading tools answer. id is appended when non-empty.
func (p *Presenter) Render(res numerology.Result, locale, format, id string) (string, error) {
	r, err := p.parse(locale, format)
	if err != nil {
		return "", err
	}
	return p.render(r, res, id)
}

// present renders res as a tool result. id is the saved reading id,
// empty when nothing was stored.
func (p *Presenter) present(req request, res numerology.Result, id string) (*mcp.CallToolResult, error) {
	text, err := p.render(req, res, id)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(text), nil
}

func (p *Presenter) render(req request, res numerology.Result, id string) (string, error) {
	text := res.Render(req.resolver)
	if req.format != FormatJSON {
		if id != "" {
			text += fmt.Sprintf("\n\nReading ID: %s", id)
		}
		return text, nil
	}

	data, err := json.MarshalIndent(readingJSON{
		Result:           res,
		ReadingID:        id,
		Locale:           req.resolver.Locale(),
		Text:             text,
		FrequencyPercent: numerology.FrequencyPercent(res.Frequency),
		FrequencyHue:     numerology.FrequencyHue(res.Frequency),
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("tools: marshal reading: %w", err)
	}
	return string(data), nil
}

// save stores res when history is available. Failures are logged and
// swallowed: a reading is still useful without its history entry.
func save(history History, logger *zap.Logger, res numerology.Result, locale, source string) string {
	if history == nil {
		return ""
	}
	r, err := history.Save(readings.SaveParams{Result: res, Locale: locale, Source: source})
	if err != nil {
		logger.Warn("failed to save reading", zap.String("digits", res.Digits), zap.Error(err))
		return ""
	}
	logger.Debug("reading saved", zap.String("id", r.ID), zap.String("digits", res.Digits))
	return r.ID
}

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}
