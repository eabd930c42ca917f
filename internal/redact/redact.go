// Package redact scrubs synopsis text of anything that would give away the answer.
package redact

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"screenguess/internal/similarity"
)

// Placeholder replaces every redacted phrase
const Placeholder = "[???]"

var (
	fragmentSeparators = regexp.MustCompile(`[:\-–—]`)
	numberedSuffix     = regexp.MustCompile(`(?i)\s+([ivxlcdm]+|\d+)\s*$`)
	punctuation        = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)
	tokenSplitter      = regexp.MustCompile(`[^\p{L}\p{N}]+`)
	adjacentMarkers    = regexp.MustCompile(regexp.QuoteMeta(Placeholder) + `(?:\s+` + regexp.QuoteMeta(Placeholder) + `)+`)
)

// Redact replaces every variant of answer found in text with Placeholder and
// collapses runs of adjacent placeholders into one.
func Redact(text, answer string) string {
	for _, variant := range Variants(answer) {
		text = variantPattern(variant).ReplaceAllLiteralString(text, Placeholder)
	}
	return adjacentMarkers.ReplaceAllString(text, Placeholder)
}

// Variants returns the phrases derived from answer, longest first
func Variants(answer string) []string {
	full := strings.TrimSpace(answer)
	if full == "" {
		return nil
	}

	candidates := []string{full}

	for _, fragment := range fragmentSeparators.Split(full, -1) {
		fragment = strings.TrimSpace(fragment)
		if utf8.RuneCountInString(fragment) >= 3 {
			candidates = append(candidates, fragment)
		}
	}

	base := numberedSuffix.ReplaceAllString(full, "")
	base = strings.Join(strings.Fields(punctuation.ReplaceAllString(base, " ")), " ")
	if utf8.RuneCountInString(base) >= 4 && !strings.EqualFold(base, full) {
		candidates = append(candidates, base)
	}

	for _, token := range tokenSplitter.Split(strings.ToLower(full), -1) {
		if utf8.RuneCountInString(token) >= 3 && !similarity.StopWords[token] {
			candidates = append(candidates, token)
		}
	}

	seen := make(map[string]bool, len(candidates))
	variants := make([]string, 0, len(candidates))
	for _, c := range candidates {
		key := strings.ToLower(c)
		if seen[key] {
			continue
		}
		seen[key] = true
		variants = append(variants, c)
	}

	sort.SliceStable(variants, func(i, j int) bool {
		return utf8.RuneCountInString(variants[i]) > utf8.RuneCountInString(variants[j])
	})
	return variants
}

// variantPattern matches single tokens on word boundaries and phrases literally
func variantPattern(variant string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(variant)
	if strings.ContainsAny(variant, " \t") {
		return regexp.MustCompile(`(?i)` + quoted)
	}

	first, _ := utf8.DecodeRuneInString(variant)
	last, _ := utf8.DecodeLastRuneInString(variant)
	if isWordRune(first) {
		quoted = `\b` + quoted
	}
	if isWordRune(last) {
		quoted += `\b`
	}
	return regexp.MustCompile(`(?i)` + quoted)
}

func isWordRune(r rune) bool {
	return r == '_' || r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r))
}
