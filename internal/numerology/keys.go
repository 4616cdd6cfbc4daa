package numerology

import "fmt"

// Key is an opaque identifier into an external message catalog.
// The engine never resolves keys itself; see Resolver.
type Key string

// None is the zero Key. Fields holding None carry no text.
const None Key = ""

// Section headings used by Render.
const (
	KeyMessageForTheMoment Key = "section_message_for_the_moment"
	KeyYourCrossSumIs      Key = "your_cross_sum_is"
	KeySectionMasterEnergy Key = "section_master_energy"
	KeySectionAngel        Key = "section_angel"
	KeySectionFrequency    Key = "section_frequency"
	KeySectionVibration    Key = "section_vibration"
	KeySectionDescription  Key = "section_description_numbers"
	KeyDigitOccurrence     Key = "digit_occurrence"
	KeySectionSummary      Key = "section_summary"
	KeySectionEnergy       Key = "section_energy"
)

// Pattern tags emitted by DetectPatterns besides the per-run keys.
const (
	KeyAscending   Key = "angel_sequence_ascending"
	KeyDescending  Key = "angel_sequence_descending"
	KeyPalindrome  Key = "angel_palindrome"
	KeyMirror      Key = "angel_mirror"
	KeyAlternating Key = "angel_alternating"
)

// Fallback keys.
const (
	KeyNumerologyUnknown Key = "numerology_unknown"
	KeyMeaningUnknown    Key = "numerology_meaning_unknown"
	KeySummaryDefault    Key = "summary_default"
	KeySummaryMulti      Key = "summary_multi_master"
	KeyNarrativeGeneric  Key = "narrative_generic"
)

// namedAscending maps exact ascending substrings to their dedicated tags.
var namedAscending = map[string]Key{
	"123":    "angel_123",
	"1234":   "angel_1234",
	"12345":  "angel_12345",
	"123456": "angel_123456",
}

// TitleKey returns the numerology title key for a reduced value.
func TitleKey(value int) Key {
	if isSingleDigit(value) && value > 0 || isRepdigit(value) {
		return Key(fmt.Sprintf("numerology_%d", value))
	}
	return KeyNumerologyUnknown
}

// MeaningKey returns the base numerology meaning key for a reduced value.
func MeaningKey(value int) Key {
	if isSingleDigit(value) && value > 0 || isRepdigit(value) {
		return Key(fmt.Sprintf("numerology_meaning_%d", value))
	}
	return KeyMeaningUnknown
}

// KeywordKey returns the keyword key for a single digit 0-9.
func KeywordKey(digit int) Key {
	return Key(fmt.Sprintf("keyword_%d", digit))
}

// IntroKey returns the intro text key for a single digit 0-9.
func IntroKey(digit int) Key {
	return Key(fmt.Sprintf("digit_%d_intro", digit))
}

// RunKey returns the tag for a run of the same digit. Runs are only
// defined for lengths 1 through 6; longer runs have no tag.
func RunKey(digit, length int) Key {
	if digit < 0 || digit > 9 || length < 1 || length > 6 {
		return None
	}
	return Key(fmt.Sprintf("angel_%d_%d", digit, length))
}

// ImpulseKey derives the impulse tag from the reduced value alone.
// Single digits map to their length-1 run; repdigits 11..99 map to
// the length-2 run of their digit.
func ImpulseKey(reduced int) Key {
	switch {
	case isSingleDigit(reduced):
		return RunKey(reduced, 1)
	case isRepdigit(reduced):
		return RunKey(reduced/10, 2)
	}
	return None
}

// SpecialMeaningKey returns the text key describing a master or
// amplifier number, if one exists.
func SpecialMeaningKey(value int) (Key, bool) {
	switch {
	case isMasterCore(value):
		return Key(fmt.Sprintf("master_number_%d", value)), true
	case isRepdigit(value):
		return Key(fmt.Sprintf("special_number_%d", value)), true
	}
	return None, false
}

func isSingleDigit(v int) bool { return v >= 0 && v <= 9 }

// isRepdigit reports whether v is one of 11, 22, ..., 99.
func isRepdigit(v int) bool { return v >= 11 && v <= 99 && v%11 == 0 }

// AllKeys lists every key the engine can emit. Catalogs use it to
// verify coverage.
func AllKeys() []Key {
	keys := []Key{
		KeyMessageForTheMoment, KeyYourCrossSumIs, KeySectionMasterEnergy,
		KeySectionAngel, KeySectionFrequency, KeySectionVibration,
		KeySectionDescription, KeyDigitOccurrence, KeySectionSummary,
		KeySectionEnergy,
		KeyAscending, KeyDescending, KeyPalindrome, KeyMirror, KeyAlternating,
		KeyNumerologyUnknown, KeyMeaningUnknown, KeySummaryDefault,
		KeySummaryMulti, KeyNarrativeGeneric,
	}
	for _, k := range []string{"123", "1234", "12345", "123456"} {
		keys = append(keys, namedAscending[k])
	}
	for d := 0; d <= 9; d++ {
		keys = append(keys, KeywordKey(d), IntroKey(d), repeatSummaryKey(d))
		for run := 1; run <= 6; run++ {
			keys = append(keys, RunKey(d, run))
		}
	}
	for v := 1; v <= 99; v++ {
		if v <= 9 || isRepdigit(v) {
			keys = append(keys, TitleKey(v), MeaningKey(v))
		}
		if v <= 9 {
			keys = append(keys, reducedSummaryKey(v))
		}
		if k, ok := SpecialMeaningKey(v); ok {
			keys = append(keys, k)
		}
		if k, ok := masterSummaryKey(v); ok {
			keys = append(keys, k)
		}
		if k, ok := KarmicDetail(v); ok {
			keys = append(keys, k)
		}
		if k, ok := KarmicLesson(v); ok {
			keys = append(keys, k)
		}
	}
	for _, r := range pairRules {
		keys = append(keys, r.Summary, r.Energy)
	}
	keys = append(keys, resonanceKeys()...)
	return keys
}
