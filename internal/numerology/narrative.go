package numerology

import (
	"fmt"
	"strings"
)

// PairRule overrides the narrative when all of its Require substrings
// and none of its Exclude substrings occur in the input.
type PairRule struct {
	Name    string
	Require []string
	Exclude []string
	Summary Key
	Energy  Key
}

func (r PairRule) matches(input string) bool {
	for _, s := range r.Require {
		if !strings.Contains(input, s) {
			return false
		}
	}
	for _, s := range r.Exclude {
		if strings.Contains(input, s) {
			return false
		}
	}
	return true
}

func pairRule(name string, require, exclude []string) PairRule {
	return PairRule{
		Name:    name,
		Require: require,
		Exclude: exclude,
		Summary: Key("summary_pair_" + name),
		Energy:  Key("energy_pair_" + name),
	}
}

// pairRules are evaluated in order; the first match wins.
var pairRules = []PairRule{
	pairRule("99_1", []string{"99", "1"}, nil),
	pairRule("9_1", []string{"9", "1"}, []string{"99"}),
	pairRule("8_55", []string{"8", "55"}, nil),
	pairRule("4_8", []string{"4", "8"}, nil),
	pairRule("11_22", []string{"11", "22"}, nil),
	pairRule("77_7", []string{"77", "7"}, nil),
	pairRule("33_3", []string{"33", "3"}, nil),
}

// PairRules returns a copy of the ordered pair override rules.
func PairRules() []PairRule {
	return append([]PairRule(nil), pairRules...)
}

// MatchPairRule returns the first pair rule matching input.
func MatchPairRule(input string) (PairRule, bool) {
	for _, r := range pairRules {
		if r.matches(input) {
			return r, true
		}
	}
	return PairRule{}, false
}

// SelectSummary picks the summary key in priority order: master core,
// two or more amplifiers, dominant digit, reduced value.
func SelectSummary(core *int, amplifiers []int, dominant *int, reduced int) Key {
	switch {
	case core != nil:
		if k, ok := masterSummaryKey(*core); ok {
			return k
		}
		return KeySummaryDefault
	case len(amplifiers) >= 2:
		return KeySummaryMulti
	case dominant != nil:
		if *dominant >= 0 && *dominant <= 9 {
			return repeatSummaryKey(*dominant)
		}
		return KeySummaryDefault
	case reduced >= 1 && reduced <= 9:
		return reducedSummaryKey(reduced)
	}
	return KeySummaryDefault
}

func masterSummaryKey(v int) (Key, bool) {
	if !isMasterCore(v) {
		return None, false
	}
	return Key(fmt.Sprintf("summary_master_%d", v)), true
}

func repeatSummaryKey(d int) Key {
	return Key(fmt.Sprintf("summary_repeat_%d", d))
}

func reducedSummaryKey(v int) Key {
	return Key(fmt.Sprintf("summary_%d", v))
}

// Narrative is the narrative text selection of a reading.
type Narrative struct {
	// Rule names the matched pair rule, empty when none matched.
	Rule string `json:"rule,omitempty"`
	// Summary is the pair summary, or the karmic detail or generic key.
	Summary Key `json:"summary"`
	// Energy is the pair energy key. It is None when no rule matched.
	Energy Key `json:"energy,omitempty"`
	// Chain holds one keyword key per distinct digit, in order. It is
	// rendered joined by arrows when Energy is None.
	Chain []Key `json:"chain,omitempty"`
}

// SelectNarrative applies the pair override rules to input. Without a
// match, the energy flow falls back to the keyword chain and the
// summary to the karmic detail, or the generic narrative key.
func SelectNarrative(input string, keywords []Key, karmic *Key) Narrative {
	if r, ok := MatchPairRule(input); ok {
		return Narrative{Rule: r.Name, Summary: r.Summary, Energy: r.Energy}
	}
	n := Narrative{Summary: KeyNarrativeGeneric, Chain: append([]Key(nil), keywords...)}
	if karmic != nil && *karmic != None {
		n.Summary = *karmic
	}
	return n
}

// karmicLessonSums are the digit sums that carry a karmic lesson.
var karmicLessonSums = map[int]bool{10: true, 11: true, 13: true, 14: true, 16: true, 19: true, 22: true, 33: true}

// KarmicDetail maps a pre-reduction digit sum in 1..33 to its karmic
// detail key.
func KarmicDetail(sum int) (Key, bool) {
	if sum < 1 || sum > 33 {
		return None, false
	}
	return Key(fmt.Sprintf("karmic_detail_%d", sum)), true
}

// KarmicLesson returns the karmic lesson key for the sums 10, 11, 13,
// 14, 16, 19, 22 and 33.
func KarmicLesson(sum int) (Key, bool) {
	if !karmicLessonSums[sum] {
		return None, false
	}
	return Key(fmt.Sprintf("karmic_lesson_%d", sum)), true
}

// Meanings collects the base meaning of the reduced value together with
// the karmic lesson of the digit sum, if any.
func Meanings(sum, reduced int) []Key {
	out := []Key{MeaningKey(reduced)}
	if k, ok := KarmicLesson(sum); ok {
		out = append(out, k)
	}
	return out
}
