package numerology

import "strings"

const (
	minFrequency = 0.1
	maxFrequency = 1.0

	masterBoost    = 0.15
	amplifierBoost = 0.10
)

var (
	masterBoostPairs    = []string{"11", "22", "33"}
	amplifierBoostPairs = []string{"77", "88", "99"}
)

// FrequencyScore maps s to a vibrational score in [0.1, 1.0]: the mean
// digit value over 9, plus 0.15 when 11, 22 or 33 occurs and another
// 0.10 when 77, 88 or 99 occurs. Strings without digits score 0.1.
func FrequencyScore(s string) float64 {
	digits := Clean(s)
	if digits == "" {
		return minFrequency
	}

	score := float64(sumOf(digitValues(digits))) / float64(len(digits)) / 9.0
	if containsAny(digits, masterBoostPairs) {
		score += masterBoost
	}
	if containsAny(digits, amplifierBoostPairs) {
		score += amplifierBoost
	}
	return clamp(score, minFrequency, maxFrequency)
}

// FrequencyPercent truncates a score to a whole percentage.
func FrequencyPercent(score float64) int {
	return int(score * 100)
}

// FrequencyHue maps a score onto a red-to-green hue in degrees.
func FrequencyHue(score float64) float64 {
	return clamp(score, 0, 1) * 120
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}
