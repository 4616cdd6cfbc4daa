// Package catalog holds the localized message catalog that turns engine
// keys into display text.
//
// Catalog files live under locales/<locale>/<namespace>.yaml and are
// embedded into the binary. Every locale other than BaseLocale may be
// partial; missing keys fall back to the base locale.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	xcatalog "golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"

	"github.com/HendryAvila/magicnumbers/internal/numerology"
)

// BaseLocale is the canonical, complete locale.
const BaseLocale = "en-US"

// ErrUnknownLocale is returned when a locale string is not a valid
// BCP 47 tag.
var ErrUnknownLocale = errors.New("catalog: unknown locale")

type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// LocaleCatalog stores all messages for one locale, grouped by namespace.
type LocaleCatalog struct {
	Locale     string
	Namespaces map[string]map[string]string
	Messages   map[string]string
}

// Bundle contains all loaded locale catalogs.
type Bundle struct {
	locales map[string]*LocaleCatalog

	builder *xcatalog.Builder
	tags    []language.Tag
	names   []string
	matcher language.Matcher
}

//go:embed locales/*/*.yaml
var embeddedCatalogFS embed.FS

var defaultBundle = mustLoadEmbedded()

// Default returns the process-wide embedded catalog bundle.
func Default() *Bundle {
	return defaultBundle
}

// LoadEmbedded loads the catalog files embedded in this package.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedCatalogFS)
}

// LoadFromFS loads catalog files from fsys and registers them for
// formatting.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("catalog: glob locale files: %w", err)
	}
	if len(paths) == 0 {
		return nil, errors.New("catalog: no catalog files found")
	}
	sort.Strings(paths)

	b := &Bundle{locales: map[string]*LocaleCatalog{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("catalog: read %s: %w", p, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("catalog: parse %s: %w", p, err)
		}
		if err := b.addFile(p, file); err != nil {
			return nil, err
		}
	}

	if !b.HasLocale(BaseLocale) {
		return nil, fmt.Errorf("catalog: base locale %s is not defined", BaseLocale)
	}
	if err := b.register(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Bundle) addFile(p string, file catalogFile) error {
	localeFromPath := path.Base(path.Dir(p))
	namespaceFromPath := strings.TrimSuffix(path.Base(p), path.Ext(p))

	locale := strings.TrimSpace(file.Locale)
	switch {
	case locale == "":
		return fmt.Errorf("catalog %s: locale is required", p)
	case locale != localeFromPath:
		return fmt.Errorf("catalog %s: locale %q must match path locale %q", p, locale, localeFromPath)
	}
	if _, err := language.Parse(locale); err != nil {
		return fmt.Errorf("catalog %s: %w: %q", p, ErrUnknownLocale, locale)
	}

	namespace := strings.TrimSpace(file.Namespace)
	switch {
	case namespace == "":
		return fmt.Errorf("catalog %s: namespace is required", p)
	case namespace != namespaceFromPath:
		return fmt.Errorf("catalog %s: namespace %q must match filename %q", p, namespace, namespaceFromPath)
	case len(file.Messages) == 0:
		return fmt.Errorf("catalog %s: messages are required", p)
	}

	lc, ok := b.locales[locale]
	if !ok {
		lc = &LocaleCatalog{
			Locale:     locale,
			Namespaces: map[string]map[string]string{},
			Messages:   map[string]string{},
		}
		b.locales[locale] = lc
	}
	if _, exists := lc.Namespaces[namespace]; exists {
		return fmt.Errorf("catalog %s: namespace %q already defined for %s", p, namespace, locale)
	}

	ns := make(map[string]string, len(file.Messages))
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("catalog %s: message key cannot be blank", p)
		}
		if _, exists := lc.Messages[key]; exists {
			return fmt.Errorf("catalog %s: duplicate key %q in %s", p, key, locale)
		}
		lc.Messages[key] = value
		ns[key] = value
	}
	lc.Namespaces[namespace] = ns
	return nil
}

// register feeds every locale into an x/text catalog. Partial locales are
// completed with base-locale messages so a printer never misses a key the
// base locale knows.
func (b *Bundle) register() error {
	b.builder = xcatalog.NewBuilder(xcatalog.Fallback(language.MustParse(BaseLocale)))

	// The base locale goes first: the matcher falls back to index 0.
	names := b.Locales()
	sort.SliceStable(names, func(i, j int) bool { return names[i] == BaseLocale && names[j] != BaseLocale })

	base := b.locales[BaseLocale].Messages
	for _, name := range names {
		tag := language.MustParse(name)
		msgs := b.locales[name].Messages
		for key, value := range base {
			if v, ok := msgs[key]; ok {
				value = v
			}
			if err := b.builder.SetString(tag, key, value); err != nil {
				return fmt.Errorf("catalog: register %s/%s: %w", name, key, err)
			}
		}
		for key, value := range msgs {
			if _, ok := base[key]; ok {
				continue
			}
			if err := b.builder.SetString(tag, key, value); err != nil {
				return fmt.Errorf("catalog: register %s/%s: %w", name, key, err)
			}
		}
		b.tags = append(b.tags, tag)
		b.names = append(b.names, name)
	}
	b.matcher = language.NewMatcher(b.tags)
	return nil
}

// HasLocale reports whether the locale exists in this bundle.
func (b *Bundle) HasLocale(locale string) bool {
	if b == nil {
		return false
	}
	_, ok := b.locales[strings.TrimSpace(locale)]
	return ok
}

// Locales returns all available locale identifiers, sorted.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	out := make([]string, 0, len(b.locales))
	for locale := range b.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// LocaleMessages returns a copy of the exact messages of one locale.
func (b *Bundle) LocaleMessages(locale string) map[string]string {
	if b == nil {
		return map[string]string{}
	}
	lc, ok := b.locales[strings.TrimSpace(locale)]
	if !ok {
		return map[string]string{}
	}
	out := make(map[string]string, len(lc.Messages))
	for k, v := range lc.Messages {
		out[k] = v
	}
	return out
}

// Namespaces returns the sorted namespace names of a locale.
func (b *Bundle) Namespaces(locale string) []string {
	if b == nil {
		return nil
	}
	lc, ok := b.locales[strings.TrimSpace(locale)]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(lc.Namespaces))
	for ns := range lc.Namespaces {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}

// Message returns the raw, unformatted message with base-locale fallback.
func (b *Bundle) Message(locale, key string) (string, bool) {
	if b == nil {
		return "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false
	}
	if lc, ok := b.locales[strings.TrimSpace(locale)]; ok {
		if v, ok := lc.Messages[key]; ok {
			return v, true
		}
	}
	v, ok := b.locales[BaseLocale].Messages[key]
	return v, ok
}

// Match returns the supported locale closest to the requested one. An
// empty request selects BaseLocale, as does a valid tag the bundle has
// no close match for. A malformed tag yields ErrUnknownLocale.
func (b *Bundle) Match(locale string) (string, error) {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return BaseLocale, nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownLocale, locale)
	}
	_, idx, conf := b.matcher.Match(tag)
	if conf == language.No {
		return BaseLocale, nil
	}
	return b.names[idx], nil
}

// Missing lists the given keys the locale cannot resolve, base fallback
// included.
func (b *Bundle) Missing(locale string, keys []numerology.Key) []numerology.Key {
	var out []numerology.Key
	for _, k := range keys {
		if _, ok := b.Message(locale, string(k)); !ok {
			out = append(out, k)
		}
	}
	return out
}

// Resolver resolves engine keys for one locale. It implements
// numerology.Resolver.
type Resolver struct {
	locale  string
	printer *message.Printer
}

// Resolver returns a key resolver for the closest supported locale.
func (b *Bundle) Resolver(locale string) (*Resolver, error) {
	name, err := b.Match(locale)
	if err != nil {
		return nil, err
	}
	tag := language.MustParse(name)
	return &Resolver{
		locale:  name,
		printer: message.NewPrinter(tag, message.Catalog(b.builder)),
	}, nil
}

// Locale reports the locale the resolver formats for.
func (r *Resolver) Locale() string { return r.locale }

// Resolve formats the message for key with args. An unknown key called
// without args comes back as the key itself.
func (r *Resolver) Resolve(key numerology.Key, args ...any) string {
	if key == numerology.None {
		return ""
	}
	return r.printer.Sprintf(string(key), args...)
}

var _ numerology.Resolver = (*Resolver)(nil)

func mustLoadEmbedded() *Bundle {
	b, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	return b
}
