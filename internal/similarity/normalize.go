package similarity

import (
	"regexp"
	"strings"
)

var (
	bracketedRegexp   = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]`)
	editionPhraseRe   = regexp.MustCompile(`game of the year|director'?s cut`)
	apostropheRegexp  = regexp.MustCompile(`['’]`)
	punctuationRegexp = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)
	numberRegexp      = regexp.MustCompile(`^\d+$`)
)

var articles = map[string]bool{"the": true, "a": true, "an": true}

// StopWords are dropped when tokenizing names
var StopWords = map[string]bool{
	"the": true, "a": true, "an": true, "of": true, "and": true, "in": true,
	"on": true, "to": true, "for": true, "with": true, "at": true, "by": true,
	"from": true, "or": true, "vs": true,
}

var romanNumerals = map[string]bool{
	"i": true, "ii": true, "iii": true, "iv": true, "v": true,
	"vi": true, "vii": true, "viii": true, "ix": true, "x": true,
	"xi": true, "xii": true, "xiii": true, "xiv": true, "xv": true,
	"xvi": true, "xvii": true, "xviii": true, "xix": true, "xx": true,
}

var editionWords = map[string]bool{
	"edition": true, "remastered": true, "remaster": true, "definitive": true,
	"deluxe": true, "complete": true, "goty": true, "hd": true, "remake": true,
	"collection": true, "anniversary": true, "ultimate": true, "enhanced": true,
	"redux": true,
}

var platformWords = map[string]bool{
	"ps1": true, "ps2": true, "ps3": true, "ps4": true, "ps5": true, "psp": true,
	"vita": true, "xbox": true, "switch": true, "wii": true, "wiiu": true,
	"pc": true, "n64": true, "gba": true, "nds": true, "3ds": true, "snes": true,
	"nes": true, "gamecube": true, "dreamcast": true,
}

// IsRomanNumeral reports whether token is a roman numeral between I and XX
func IsRomanNumeral(token string) bool {
	return romanNumerals[strings.ToLower(token)]
}

// Normalize reduces a game name to its comparable core: lowercase, no leading
// article, no numbering, no edition/platform/year/parenthetical noise.
func Normalize(name string) string {
	s := strings.ToLower(name)
	s = bracketedRegexp.ReplaceAllString(s, " ")
	s = editionPhraseRe.ReplaceAllString(s, " ")
	s = apostropheRegexp.ReplaceAllString(s, "")
	s = punctuationRegexp.ReplaceAllString(s, " ")

	fields := strings.Fields(s)
	if len(fields) > 1 && articles[fields[0]] {
		fields = fields[1:]
	}

	kept := make([]string, 0, len(fields))
	for _, f := range fields {
		if romanNumerals[f] || numberRegexp.MatchString(f) || editionWords[f] || platformWords[f] {
			continue
		}
		kept = append(kept, f)
	}

	return strings.Join(kept, " ")
}

// Tokenize lowercases name, strips punctuation and drops stop-words
func Tokenize(name string) []string {
	s := strings.ToLower(name)
	s = apostropheRegexp.ReplaceAllString(s, "")
	s = punctuationRegexp.ReplaceAllString(s, " ")

	var tokens []string
	for _, f := range strings.Fields(s) {
		if StopWords[f] {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// coreName returns the normalized text before the first colon
func coreName(name string) string {
	if idx := strings.Index(name, ":"); idx >= 0 {
		name = name[:idx]
	}
	return Normalize(name)
}
