// Package numerology derives a numerology reading from a digit string.
//
// Every function in this package is pure: results depend only on the
// input string, no state is kept between calls, and no input makes an
// operation fail. Narrative fields are returned as catalog Keys and
// resolved by the caller through a Resolver.
package numerology

import (
	"strconv"
	"strings"
)

// traceSeparator joins trace steps in CrossSum.Text.
const traceSeparator = " → "

// CrossSum is the outcome of iterative digit-sum reduction.
type CrossSum struct {
	// SumBeforeReduce is the plain digit sum of the input.
	SumBeforeReduce int `json:"sum_before_reduce"`
	// Reduced is the value after reduction stopped.
	Reduced int `json:"reduced"`
	// Trace holds one step per iteration, starting with the initial sum.
	Trace []string `json:"trace"`
}

// Text joins the trace into the single display line.
func (c CrossSum) Text() string {
	return strings.Join(c.Trace, traceSeparator)
}

// Reduce computes the cross sum of the digits in s. Non-digit
// characters are ignored. Reduction stops once the value is a single
// digit or a repdigit 11..99.
func Reduce(s string) CrossSum {
	digits := digitValues(Clean(s))
	if len(digits) == 0 {
		return CrossSum{Trace: []string{}}
	}

	sum := sumOf(digits)
	trace := []string{traceStep(digits, sum)}
	reduced := sum
	for reduced > 9 && !isRepdigit(reduced) {
		step := digitValues(strconv.Itoa(reduced))
		reduced = sumOf(step)
		trace = append(trace, traceStep(step, reduced))
	}

	return CrossSum{SumBeforeReduce: sum, Reduced: reduced, Trace: trace}
}

// Clean strips every character that is not an ASCII digit.
func Clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// digitValues converts a cleaned digit string to its digit values.
func digitValues(s string) []int {
	out := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = int(s[i] - '0')
	}
	return out
}

func sumOf(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

// traceStep renders "d1 + d2 + ... = total".
func traceStep(digits []int, total int) string {
	parts := make([]string, len(digits))
	for i, d := range digits {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, " + ") + " = " + strconv.Itoa(total)
}
