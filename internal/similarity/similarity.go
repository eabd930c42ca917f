// Package similarity decides whether a wrong guess belongs to the same
// franchise as the answer. It only softens feedback and never awards points.
package similarity

import (
	"strings"
	"unicode/utf8"
)

const (
	minCoreLength       = 3
	minFirstWordLength  = 3
	firstWordMatchAbove = 4
	overlapRatio        = 0.7
)

// IsSameSeries reports whether a and b look like entries of the same series.
// Identical names (ignoring case) are the correct-answer case and return false.
func IsSameSeries(a, b string) bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" || strings.EqualFold(a, b) {
		return false
	}

	return coreNameMatch(a, b) ||
		firstWordMatch(a, b) ||
		tokenOverlapMatch(a, b) ||
		substringMatch(a, b)
}

func coreNameMatch(a, b string) bool {
	ca, cb := coreName(a), coreName(b)
	return ca == cb && utf8.RuneCountInString(ca) >= minCoreLength
}

// firstWordMatch compares the first significant word of each name. The shared
// word must be longer than four letters, stricter than a plain four-letter
// match, so "Call of Duty" and "Call of Juarez" stay apart.
func firstWordMatch(a, b string) bool {
	wa, wb := firstSignificant(Tokenize(a)), firstSignificant(Tokenize(b))
	return wa != "" && wa == wb && utf8.RuneCountInString(wa) > firstWordMatchAbove
}

func firstSignificant(tokens []string) string {
	for _, t := range tokens {
		if utf8.RuneCountInString(t) >= minFirstWordLength {
			return t
		}
	}
	return ""
}

func tokenOverlapMatch(a, b string) bool {
	sa, sb := tokenSet(Tokenize(a)), tokenSet(Tokenize(b))
	if len(sa) == 0 || len(sb) == 0 {
		return false
	}

	if len(sa) < 2 || len(sb) < 2 {
		if len(sa) != 1 || len(sb) != 1 {
			return false
		}
		for t := range sa {
			return sb[t]
		}
	}

	shared := 0
	for t := range sa {
		if sb[t] {
			shared++
		}
	}

	smaller := len(sa)
	if len(sb) < smaller {
		smaller = len(sb)
	}
	return float64(shared) >= overlapRatio*float64(smaller)
}

func tokenSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}

func substringMatch(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if utf8.RuneCountInString(na) < minCoreLength || utf8.RuneCountInString(nb) < minCoreLength {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}
