package wordlist

import "strings"

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// FilterForLang returns the practice filter for lang. Unknown languages keep
// every word.
func FilterForLang(lang string) FilterFunc {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "en":
		return keepEnglish
	default:
		return func(string) bool { return true }
	}
}

// Filter returns the words of list accepted by lang's filter, in order.
// The input slice is not modified.
func Filter(list []string, lang string) []string {
	keep := FilterForLang(lang)
	out := make([]string, 0, len(list))
	for _, w := range list {
		if keep(w) {
			out = append(out, w)
		}
	}
	return out
}

// keepEnglish accepts lowercase ASCII words with optional inner ASCII
// apostrophes, so contractions like "don't" survive.
func keepEnglish(word string) bool {
	if word == "" || word[0] == '\'' || word[len(word)-1] == '\'' {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch == '\'' {
			if word[i-1] == '\'' {
				return false
			}
			continue
		}
		if ch < 'a' || ch > 'z' {
			return false
		}
	}
	return true
}
