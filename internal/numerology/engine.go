package numerology

// DigitKey pairs a digit with a catalog key.
type DigitKey struct {
	Digit int `json:"digit"`
	Key   Key `json:"key"`
}

// DigitIntro is a digit's intro text key with its occurrence count.
type DigitIntro struct {
	Digit int `json:"digit"`
	Key   Key `json:"key"`
	Count int `json:"count"`
}

// Result is the complete reading of one digit string. A Result is
// built once by Analyze and never modified.
type Result struct {
	Number         string       `json:"number"`
	Digits         string       `json:"digits"`
	CrossSum       CrossSum     `json:"cross_sum"`
	Title          Key          `json:"title"`
	Meanings       []Key        `json:"meanings"`
	Keywords       []DigitKey   `json:"keywords"`
	Intros         []DigitIntro `json:"intros"`
	Patterns       []Key        `json:"patterns"`
	Impulse        Key          `json:"impulse,omitempty"`
	MasterCore     *int         `json:"master_core,omitempty"`
	Amplifiers     []int        `json:"master_amplifiers"`
	OrderedMasters []int        `json:"ordered_masters"`
	Dominant       *int         `json:"dominant_digit,omitempty"`
	Frequency      float64      `json:"frequency"`
	Summary        Key          `json:"summary"`
	Narrative      Narrative    `json:"narrative"`
	Resonance      *Resonance   `json:"resonance,omitempty"`
	KarmicDetail   *Key         `json:"karmic_detail,omitempty"`
}

// Analyze runs every analysis on input and assembles the Result.
// Non-digit characters are kept in Number for display and ignored
// everywhere else, except for the substring tests of master amplifiers
// and pair rules which look at input as given.
func Analyze(input string) Result {
	digits := Clean(input)
	cross := Reduce(digits)

	r := Result{
		Number:     input,
		Digits:     digits,
		CrossSum:   cross,
		Title:      TitleKey(cross.Reduced),
		Meanings:   Meanings(cross.SumBeforeReduce, cross.Reduced),
		Patterns:   DetectPatterns(digits),
		Amplifiers: MasterAmplifiers(input),
		Frequency:  FrequencyScore(digits),
	}
	if digits != "" {
		r.Impulse = ImpulseKey(cross.Reduced)
	}

	counts, order := digitCounts(digits)
	r.Keywords = make([]DigitKey, 0, len(order))
	r.Intros = make([]DigitIntro, 0, len(order))
	chain := make([]Key, 0, len(order))
	for _, d := range order {
		r.Keywords = append(r.Keywords, DigitKey{Digit: d, Key: KeywordKey(d)})
		r.Intros = append(r.Intros, DigitIntro{Digit: d, Key: IntroKey(d), Count: counts[d]})
		chain = append(chain, KeywordKey(d))
	}

	if core, ok := MasterCore(cross.SumBeforeReduce, cross.Reduced); ok {
		r.MasterCore = &core
	}
	if dom, ok := DominantDigit(digits); ok {
		r.Dominant = &dom
	}
	r.OrderedMasters = OrderedMasters(input, cross.Reduced, r.MasterCore, r.Amplifiers)

	if res, ok := ClassifyResonance(digits); ok {
		r.Resonance = &res
	}
	if k, ok := KarmicDetail(cross.SumBeforeReduce); ok {
		r.KarmicDetail = &k
	}

	r.Summary = SelectSummary(r.MasterCore, r.Amplifiers, r.Dominant, cross.Reduced)
	r.Narrative = SelectNarrative(input, chain, r.KarmicDetail)
	return r
}

// FinalSummary is the summary shown to the reader: the pair rule summary
// when one matched, otherwise the priority summary.
func (r Result) FinalSummary() Key {
	if r.Narrative.Rule != "" {
		return r.Narrative.Summary
	}
	return r.Summary
}
