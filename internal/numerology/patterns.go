package numerology

import "strings"

// tagSet collects keys once each, keeping first-insertion order.
type tagSet struct {
	seen map[Key]struct{}
	keys []Key
}

func newTagSet() *tagSet {
	return &tagSet{seen: make(map[Key]struct{})}
}

func (t *tagSet) add(k Key) {
	if k == None {
		return
	}
	if _, ok := t.seen[k]; ok {
		return
	}
	t.seen[k] = struct{}{}
	t.keys = append(t.keys, k)
}

// DetectPatterns returns the deduplicated pattern tags found in s:
// repeated-digit runs, ascending and descending sequences, mirror and
// palindrome symmetry and alternating pairs. Non-digits are ignored.
func DetectPatterns(s string) []Key {
	digits := Clean(s)
	if len(digits) < 2 {
		return []Key{}
	}
	tags := newTagSet()
	detectRuns(digits, tags)
	detectSequences(digits, tags)
	detectMirror(digits, tags)
	detectAlternating(digits, tags)
	return tags.keys
}

// detectRuns tags each maximal run of two or more equal digits.
// Runs longer than six have no tag.
func detectRuns(s string, tags *tagSet) {
	for i := 0; i < len(s); {
		run := 1
		for i+run < len(s) && s[i+run] == s[i] {
			run++
		}
		if run >= 2 {
			tags.add(RunKey(int(s[i]-'0'), run))
		}
		i += run
	}
}

// detectSequences tests every substring of length three or more for a
// step of +1 or -1 between neighbours. Named ascending sequences
// (123, 1234, 12345, 123456) get their own tag; the generic ascending
// tag is only emitted for ascending substrings that no named sequence
// covers.
func detectSequences(s string, tags *tagSet) {
	type span struct{ start, end int }
	var named, generic []span
	descending := false

	for start := 0; start+3 <= len(s); start++ {
		for end := start + 3; end <= len(s); end++ {
			sub := s[start:end]
			if isStepRun(sub, 1) {
				if k, ok := namedAscending[sub]; ok {
					tags.add(k)
					named = append(named, span{start, end})
				} else {
					generic = append(generic, span{start, end})
				}
			}
			if isStepRun(sub, -1) {
				descending = true
			}
		}
	}

	for _, g := range generic {
		covered := false
		for _, n := range named {
			if n.start <= g.start && g.end <= n.end {
				covered = true
				break
			}
		}
		if !covered {
			tags.add(KeyAscending)
			break
		}
	}
	if descending {
		tags.add(KeyDescending)
	}
}

// isStepRun reports whether each digit of s differs from the previous
// one by exactly step.
func isStepRun(s string, step int) bool {
	for i := 1; i < len(s); i++ {
		if int(s[i])-int(s[i-1]) != step {
			return false
		}
	}
	return true
}

// detectMirror tags palindromes of length four or more. Four-digit
// palindromes additionally carry the mirror tag.
func detectMirror(s string, tags *tagSet) {
	if len(s) < 4 {
		return
	}
	if isPalindrome(s) {
		tags.add(KeyPalindrome)
	}
	if len(s) == 4 && s[0] == s[3] && s[1] == s[2] {
		tags.add(KeyMirror)
	}
}

// detectAlternating tags strings that are exactly the first pair
// repeated. Odd lengths never match.
func detectAlternating(s string, tags *tagSet) {
	if len(s) < 4 {
		return
	}
	if s == strings.Repeat(s[:2], len(s)/2) {
		tags.add(KeyAlternating)
	}
}

func isPalindrome(s string) bool {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		if s[i] != s[j] {
			return false
		}
	}
	return true
}
