package numerology

import (
	"sort"
	"strconv"
	"strings"
)

// masterCoreNumbers are the master numbers recognised in the digit sum
// or the reduced value.
var masterCoreNumbers = []int{11, 22, 33, 44}

// masterAmplifierNumbers are the repdigits recognised as substrings of
// the input.
var masterAmplifierNumbers = []int{11, 22, 33, 44, 55, 66, 77, 88, 99}

// minDominantCount is the occurrence count a digit needs to dominate.
const minDominantCount = 3

func isMasterCore(v int) bool {
	for _, m := range masterCoreNumbers {
		if v == m {
			return true
		}
	}
	return false
}

// MasterCore returns the master number found in the raw digit sum, or
// failing that in the reduced value. Only 11, 22, 33 and 44 qualify.
func MasterCore(sum, reduced int) (int, bool) {
	switch {
	case isMasterCore(sum):
		return sum, true
	case isMasterCore(reduced):
		return reduced, true
	}
	return 0, false
}

// MasterAmplifiers returns the repdigits 11..99 whose text appears in
// input, ordered by the index of their first occurrence.
func MasterAmplifiers(input string) []int {
	type hit struct{ value, index int }
	var hits []hit
	for _, m := range masterAmplifierNumbers {
		if idx := strings.Index(input, strconv.Itoa(m)); idx >= 0 {
			hits = append(hits, hit{m, idx})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].index < hits[j].index })

	out := make([]int, len(hits))
	for i, h := range hits {
		out[i] = h.value
	}
	return out
}

// OrderedMasters merges the master numbers of a reading for display:
// the reduced value when it is itself a master core, then the master
// core, then the amplifiers by first occurrence. Each number appears
// once.
func OrderedMasters(input string, reduced int, core *int, amplifiers []int) []int {
	out := []int{}
	push := func(v int) {
		for _, have := range out {
			if have == v {
				return
			}
		}
		out = append(out, v)
	}

	if isMasterCore(reduced) {
		push(reduced)
	}
	if core != nil {
		push(*core)
	}

	amps := append([]int(nil), amplifiers...)
	sort.SliceStable(amps, func(i, j int) bool {
		return firstIndex(input, amps[i]) < firstIndex(input, amps[j])
	})
	for _, a := range amps {
		push(a)
	}
	return out
}

func firstIndex(input string, v int) int {
	return strings.Index(input, strconv.Itoa(v))
}

// DominantDigit returns the most frequent digit of s when it occurs at
// least three times. Ties go to the digit seen first.
func DominantDigit(s string) (int, bool) {
	counts, order := digitCounts(Clean(s))
	best, bestCount := -1, 0
	for _, d := range order {
		if counts[d] > bestCount {
			best, bestCount = d, counts[d]
		}
	}
	if bestCount < minDominantCount {
		return 0, false
	}
	return best, true
}

// digitCounts counts each digit of a cleaned string and returns the
// distinct digits in order of first appearance.
func digitCounts(digits string) (counts [10]int, order []int) {
	for i := 0; i < len(digits); i++ {
		d := int(digits[i] - '0')
		if counts[d] == 0 {
			order = append(order, d)
		}
		counts[d]++
	}
	return counts, order
}
