package cluster

import (
	"strings"
	"unicode"
)

// Tokenize splits a title into a set of comparable tokens. Titles are lowercased and split on
// anything that is not a letter or digit. Runs of Hangul become overlapping two-syllable shingles,
// so compounds like 환매중단 still share tokens with 환매 중단. Other runs are kept whole when they
// have at least three runes.
func Tokenize(title string) map[string]struct{} {
	tokens := make(map[string]struct{})
	var run []rune
	hangul := false

	flush := func() {
		defer func() { run = run[:0] }()
		if hangul {
			for i := 0; i+1 < len(run); i++ {
				tokens[string(run[i:i+2])] = struct{}{}
			}
			return
		}
		if len(run) >= 3 {
			tokens[string(run)] = struct{}{}
		}
	}

	for _, r := range strings.ToLower(title) {
		isHangul := unicode.Is(unicode.Hangul, r)
		isWord := isHangul || unicode.IsLetter(r) || unicode.IsDigit(r)
		if !isWord {
			flush()
			continue
		}
		if len(run) > 0 && isHangul != hangul {
			flush()
		}
		hangul = isHangul
		run = append(run, r)
	}
	flush()
	return tokens
}

// Jaccard returns the size of the intersection over the size of the union, 0 for two empty sets
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	inter := 0
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
