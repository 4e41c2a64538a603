package match

import "strings"

// Closest returns the candidate nearest to name, if it is near enough to be
// a plausible typo: at most a third of the longer string's bytes may differ,
// and at least one edit is always allowed. Comparison ignores case, so
// "fields" suggests "Fields". Ties go to the earlier candidate.
func Closest(name string, candidates []string) (string, bool) {
	lower := strings.ToLower(name)

	best, bestDist := "", -1

	for _, c := range candidates {
		d := Levenshtein(lower, strings.ToLower(c))
		if d > max(1, max(len(name), len(c))/3) {
			continue
		}

		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}

	return best, bestDist >= 0
}

// Hint formats the suggestion for name, or returns "" when nothing is close.
func Hint(name string, candidates []string) string {
	c, ok := Closest(name, candidates)
	if !ok || c == name {
		return ""
	}

	return "did you mean " + c + "?"
}
