package textutil

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// TokenSetRatio scores two keys in [0,100] using a token-set comparison.
//
// The shared tokens (sect) are compared against sect extended by each side's
// leftover tokens, and the two extended strings are compared with each other;
// the best ratio wins. Comparisons against bare sect are only made when the
// extension is non-empty, so a strict subset scores high but never 100.
// Either key being empty scores 0. The result is symmetric.
func TokenSetRatio(a, b Key) int {
	if a.Empty() || b.Empty() {
		return 0
	}
	sect, onlyA, onlyB := splitTokens(a.tokens, b.tokens)

	sectStr := strings.Join(sect, " ")
	ab := joinParts(sectStr, strings.Join(onlyA, " "))
	ba := joinParts(sectStr, strings.Join(onlyB, " "))

	best := ratio(ab, ba)
	if len(sect) > 0 {
		if len(onlyA) > 0 {
			best = math.Max(best, ratio(sectStr, ab))
		}
		if len(onlyB) > 0 {
			best = math.Max(best, ratio(sectStr, ba))
		}
	}
	return int(math.Round(best))
}

// Ratio returns the indel-normalized similarity of two strings in [0,100].
func Ratio(a, b string) int {
	return int(math.Round(ratio(a, b)))
}

func ratio(a, b string) float64 {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 100
	}
	return 100 * float64(2*edlib.LCS(a, b)) / float64(total)
}

// splitTokens walks two sorted token slices and returns their intersection and
// the tokens unique to each side, all still sorted.
func splitTokens(a, b []string) (sect, onlyA, onlyB []string) {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			sect = append(sect, a[i])
			i++
			j++
		case a[i] < b[j]:
			onlyA = append(onlyA, a[i])
			i++
		default:
			onlyB = append(onlyB, b[j])
			j++
		}
	}
	onlyA = append(onlyA, a[i:]...)
	onlyB = append(onlyB, b[j:]...)
	return sect, onlyA, onlyB
}

func joinParts(head, tail string) string {
	switch {
	case head == "":
		return tail
	case tail == "":
		return head
	default:
		return head + " " + tail
	}
}
