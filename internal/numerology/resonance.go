package numerology

import "fmt"

// ResonanceKind is the structural category of a 4- or 6-digit string.
type ResonanceKind string

// Resonance kinds. Which kinds apply depends on the input length.
const (
	ResonanceMono     ResonanceKind = "mono"
	ResonanceAABB     ResonanceKind = "aabb"
	ResonanceABAB     ResonanceKind = "abab"
	ResonanceABBA     ResonanceKind = "abba"
	ResonanceDistinct ResonanceKind = "distinct"
	ResonanceAAABBB   ResonanceKind = "aaabbb"
	ResonanceAABBCC   ResonanceKind = "aabbcc"
	ResonanceABABAB   ResonanceKind = "ababab"
	ResonanceABCABC   ResonanceKind = "abcabc"
	ResonanceMirror   ResonanceKind = "mirror"
	ResonanceNone     ResonanceKind = "none"
)

// Focus describes where adjacent repetition concentrates.
type Focus string

// Focus values.
const (
	FocusNone   Focus = "none"
	FocusStart  Focus = "start"
	FocusCenter Focus = "center"
	FocusEnd    Focus = "end"
	FocusFrame  Focus = "frame"
)

var (
	resonance4Order = []ResonanceKind{ResonanceMono, ResonanceAABB, ResonanceABAB, ResonanceABBA, ResonanceDistinct, ResonanceNone}
	resonance6Order = []ResonanceKind{ResonanceMono, ResonanceAAABBB, ResonanceAABBCC, ResonanceABABAB, ResonanceABCABC, ResonanceMirror, ResonanceNone}
	focusOrder      = []Focus{FocusNone, FocusStart, FocusCenter, FocusEnd, FocusFrame}
)

// Resonance is the fixed-length structural classification.
type Resonance struct {
	Length int           `json:"length"`
	Kind   ResonanceKind `json:"kind"`
	Focus  Focus         `json:"focus"`
}

// TitleKey returns the catalog key of the resonance title.
func (r Resonance) TitleKey() Key {
	return Key(fmt.Sprintf("resonance%d_title_%s", r.Length, r.Kind))
}

// MeaningKey returns the catalog key of the resonance meaning.
func (r Resonance) MeaningKey() Key {
	return Key(fmt.Sprintf("resonance%d_meaning_%s", r.Length, r.Kind))
}

// FocusKey returns the catalog key of the focus description.
func (r Resonance) FocusKey() Key {
	return focusKey(r.Focus)
}

func focusKey(f Focus) Key {
	return Key("resonance_focus_" + string(f))
}

// ClassifyResonance classifies digit strings of exactly four or six
// digits. The first matching category wins. ok is false for any
// other length.
func ClassifyResonance(s string) (r Resonance, ok bool) {
	d := Clean(s)
	switch len(d) {
	case 4:
		return Resonance{Length: 4, Kind: classify4(d), Focus: focusOf(d)}, true
	case 6:
		return Resonance{Length: 6, Kind: classify6(d), Focus: focusOf(d)}, true
	}
	return Resonance{}, false
}

func classify4(d string) ResonanceKind {
	switch {
	case allSame(d):
		return ResonanceMono
	case d[0] == d[1] && d[2] == d[3] && d[0] != d[2]:
		return ResonanceAABB
	case d[0] == d[2] && d[1] == d[3] && d[0] != d[1]:
		return ResonanceABAB
	case d[0] == d[3] && d[1] == d[2] && d[0] != d[1]:
		return ResonanceABBA
	case allDistinct(d):
		return ResonanceDistinct
	}
	return ResonanceNone
}

func classify6(d string) ResonanceKind {
	switch {
	case allSame(d):
		return ResonanceMono
	case d[0] == d[1] && d[1] == d[2] && d[3] == d[4] && d[4] == d[5] && d[0] != d[3]:
		return ResonanceAAABBB
	case d[0] == d[1] && d[2] == d[3] && d[4] == d[5] && !(d[0] == d[2] && d[2] == d[4]):
		return ResonanceAABBCC
	case d[0] == d[2] && d[2] == d[4] && d[1] == d[3] && d[3] == d[5] && d[0] != d[1]:
		return ResonanceABABAB
	case d[:3] == d[3:]:
		return ResonanceABCABC
	case isPalindrome(d):
		return ResonanceMirror
	}
	return ResonanceNone
}

// focusOf locates adjacent equal pairs d[i]==d[i+1]. For length 4 the
// centre index is 1, the first half {0} and the second half {2}. For
// length 6 the centre index is 2, the first half {0,1} and the second
// half {3,4}. Hits in both halves give a frame; a string equal at every
// index has no focus.
func focusOf(d string) Focus {
	n := len(d)
	center := n/2 - 1

	hits, start, end, mid := 0, false, false, false
	for i := 0; i < n-1; i++ {
		if d[i] != d[i+1] {
			continue
		}
		hits++
		switch {
		case i < center:
			start = true
		case i == center:
			mid = true
		default:
			end = true
		}
	}

	switch {
	case hits == 0 || hits == n-1:
		return FocusNone
	case start && end:
		return FocusFrame
	case mid:
		return FocusCenter
	case start:
		return FocusStart
	}
	return FocusEnd
}

func allSame(d string) bool {
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			return false
		}
	}
	return true
}

func allDistinct(d string) bool {
	var seen [10]bool
	for i := 0; i < len(d); i++ {
		v := d[i] - '0'
		if seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

func resonanceKeys() []Key {
	var keys []Key
	for _, k := range resonance4Order {
		r := Resonance{Length: 4, Kind: k}
		keys = append(keys, r.TitleKey(), r.MeaningKey())
	}
	for _, k := range resonance6Order {
		r := Resonance{Length: 6, Kind: k}
		keys = append(keys, r.TitleKey(), r.MeaningKey())
	}
	for _, f := range focusOrder {
		keys = append(keys, focusKey(f))
	}
	return keys
}
