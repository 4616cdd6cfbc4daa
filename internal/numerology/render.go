package numerology

import (
	"fmt"
	"regexp"
	"strings"
)

// Resolver turns catalog keys into display text. Implementations
// format args the way fmt.Sprintf does.
type Resolver interface {
	Resolve(key Key, args ...any) string
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(key Key, args ...any) string

// Resolve calls f.
func (f ResolverFunc) Resolve(key Key, args ...any) string { return f(key, args...) }

var emphasis = regexp.MustCompile(`\*+`)

// CleanMarkdown removes emphasis markers such as ** from s.
func CleanMarkdown(s string) string {
	return emphasis.ReplaceAllString(s, "")
}

// Render flattens r into one display text block. Sections appear in a
// fixed order and a key never repeats within a section.
func (r Result) Render(res Resolver) string {
	var b strings.Builder
	line := func(s string) { b.WriteString(s); b.WriteByte('\n') }
	blank := func() { b.WriteByte('\n') }

	line(res.Resolve(r.Title))
	blank()

	line(res.Resolve(KeyMessageForTheMoment, r.Number))
	blank()

	line(res.Resolve(KeyYourCrossSumIs))
	line(r.CrossSum.Text())
	blank()

	var masters []string
	for _, m := range r.OrderedMasters {
		if k, ok := SpecialMeaningKey(m); ok {
			masters = append(masters, res.Resolve(k))
		}
	}
	if len(masters) > 0 {
		line(res.Resolve(KeySectionMasterEnergy))
		for _, m := range masters {
			line(m)
		}
		blank()
	}

	angel := newTagSet()
	angel.add(r.Impulse)
	for _, k := range r.Patterns {
		angel.add(k)
	}
	if len(angel.keys) > 0 {
		line(res.Resolve(KeySectionAngel))
		for _, k := range angel.keys {
			line(res.Resolve(k))
		}
		blank()
	}

	line(fmt.Sprintf("%s %d%%", res.Resolve(KeySectionFrequency), FrequencyPercent(r.Frequency)))
	blank()

	if len(r.Keywords) > 0 {
		line(res.Resolve(KeySectionVibration))
		for _, kw := range r.Keywords {
			line(fmt.Sprintf("%d – %s", kw.Digit, res.Resolve(kw.Key)))
		}
		blank()
	}

	if len(r.Intros) > 0 {
		line(res.Resolve(KeySectionDescription))
		for _, in := range r.Intros {
			occurrence := ""
			if in.Count >= 2 {
				occurrence = " " + res.Resolve(KeyDigitOccurrence, in.Count)
			}
			line(res.Resolve(in.Key, occurrence))
			blank()
		}
	}

	if r.Resonance != nil {
		line(res.Resolve(r.Resonance.TitleKey()))
		line(res.Resolve(r.Resonance.MeaningKey()))
		line(res.Resolve(r.Resonance.FocusKey()))
		blank()
	}

	line(res.Resolve(KeySectionSummary))
	line(res.Resolve(r.FinalSummary()))
	for _, k := range r.Meanings {
		line(res.Resolve(k))
	}
	blank()

	if r.KarmicDetail != nil {
		line(res.Resolve(*r.KarmicDetail))
		blank()
	}

	line(res.Resolve(KeySectionEnergy))
	line(r.energyText(res))

	return strings.TrimSpace(CleanMarkdown(b.String()))
}

// energyText resolves the energy flow: the pair energy key when a rule
// matched, otherwise the distinct digit keywords joined by arrows.
func (r Result) energyText(res Resolver) string {
	if r.Narrative.Energy != None {
		return res.Resolve(r.Narrative.Energy)
	}
	seen := newTagSet()
	for _, k := range r.Narrative.Chain {
		seen.add(k)
	}
	parts := make([]string, len(seen.keys))
	for i, k := range seen.keys {
		parts[i] = res.Resolve(k)
	}
	return strings.Join(parts, traceSeparator)
}
