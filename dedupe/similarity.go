// ABOUTME: Name normalization and similarity primitives
// ABOUTME: Single edit-distance-based scoring shared by all duplicate checks
package dedupe

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// NormalizeName canonicalizes a name for comparison: lowercase, trimmed,
// internal whitespace runs collapsed to a single space.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// Similarity scores two strings on [0,1] where 1 is identical:
// (maxLen - levenshtein) / maxLen. Two empty strings score 1.
func Similarity(a, b string) float64 {
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return float64(maxLen-dist) / float64(maxLen)
}

// AreNamesSimilar reports whether two display names plausibly refer to
// the same person: normalized equality, containment, or similarity
// above 0.7 when the length difference stays within 30% of the shorter
// name.
func AreNamesSimilar(name1, name2 string) bool {
	n1 := NormalizeName(name1)
	n2 := NormalizeName(name2)

	if n1 == n2 {
		return true
	}

	if strings.Contains(n1, n2) || strings.Contains(n2, n1) {
		return true
	}

	len1 := utf8.RuneCountInString(n1)
	len2 := utf8.RuneCountInString(n2)
	shorter, longer := len1, len2
	if shorter > longer {
		shorter, longer = longer, shorter
	}

	maxDistance := shorter * 3 / 10
	if longer-shorter > maxDistance {
		return false
	}

	return Similarity(n1, n2) > 0.7
}
