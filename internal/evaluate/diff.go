package evaluate

import (
	"unicode"
	"unicode/utf8"
)

// Diff builds a render-ready diff using the Default evaluator.
func Diff(reference, input string) []WordDiff {
	return Default.Diff(reference, input)
}

// Diff aligns input against reference the same way Evaluate does, but keeps
// whitespace runs as their own entries so the reference layout can be
// reconstructed. Reference words not reached yet are pending; whitespace typed
// where the reference has none is dropped.
func (e Evaluator) Diff(reference, input string) []WordDiff {
	ref := tokenize(reference)
	typed := tokenize(input)
	window := e.window()

	diffs := make([]WordDiff, 0, len(ref))
	r, t := 0, 0
	for r < len(ref) || t < len(typed) {
		switch {
		case t >= len(typed):
			diffs = append(diffs, refEntry(ref[r], StatusPending))
			r++
		case r >= len(ref):
			if !isWhitespace(typed[t]) {
				diffs = append(diffs, WordDiff{Word: typed[t], Status: StatusExtra})
			}
			t++
		case isWhitespace(ref[r]) && isWhitespace(typed[t]):
			diffs = append(diffs, WordDiff{Word: ref[r], Status: StatusWhitespace})
			r++
			t++
		case isWhitespace(ref[r]):
			diffs = append(diffs, WordDiff{Word: ref[r], Status: StatusWhitespace})
			r++
		case isWhitespace(typed[t]):
			t++
		case ref[r] == typed[t]:
			diffs = append(diffs, WordDiff{Word: ref[r], Status: StatusCorrect})
			r++
			t++
		default:
			if skip := seekToken(ref, r, typed[t], window); skip > 0 {
				for _, tok := range ref[r : r+skip] {
					diffs = append(diffs, refEntry(tok, StatusSkipped))
				}
				r += skip
			} else if extra := seekToken(typed, t, ref[r], window); extra > 0 {
				for _, tok := range typed[t : t+extra] {
					if !isWhitespace(tok) {
						diffs = append(diffs, WordDiff{Word: tok, Status: StatusExtra})
					}
				}
				t += extra
			} else {
				diffs = append(diffs, WordDiff{
					Word:      typed[t],
					Status:    StatusIncorrect,
					CharDiffs: CompareChars(ref[r], typed[t]),
				})
				r++
				t++
			}
		}
	}
	return diffs
}

// CompareChars walks both words position by position. Extra and incorrect
// entries carry the typed character, missing entries the expected one.
func CompareChars(expected, typed string) []CharDiff {
	exp := []rune(expected)
	got := []rune(typed)
	n := max(len(exp), len(got))
	out := make([]CharDiff, 0, n)
	for i := 0; i < n; i++ {
		switch {
		case i >= len(exp):
			out = append(out, CharDiff{Char: string(got[i]), Status: CharExtra})
		case i >= len(got):
			out = append(out, CharDiff{Char: string(exp[i]), Status: CharMissing})
		case exp[i] == got[i]:
			out = append(out, CharDiff{Char: string(got[i]), Status: CharCorrect})
		default:
			out = append(out, CharDiff{Char: string(got[i]), Status: CharIncorrect})
		}
	}
	return out
}

// tokenize splits s into words and whitespace runs. Whitespace is decided by
// unicode.IsSpace, matching strings.Fields on the metrics path.
func tokenize(s string) []string {
	var tokens []string
	start := 0
	inSpace := false
	for i, r := range s {
		space := unicode.IsSpace(r)
		if i > start && space != inSpace {
			tokens = append(tokens, s[start:i])
			start = i
		}
		inSpace = space
	}
	if start < len(s) {
		tokens = append(tokens, s[start:])
	}
	return tokens
}

// seekToken is seekWord over a token stream: whitespace tokens are stepped
// over without counting toward the window. It returns the token offset.
func seekToken(tokens []string, from int, target string, window int) int {
	words := 0
	for i := from + 1; i < len(tokens) && words < window; i++ {
		if isWhitespace(tokens[i]) {
			continue
		}
		words++
		if tokens[i] == target {
			return i - from
		}
	}
	return 0
}

func refEntry(tok string, status WordStatus) WordDiff {
	if isWhitespace(tok) {
		return WordDiff{Word: tok, Status: StatusWhitespace}
	}
	return WordDiff{Word: tok, Status: status}
}

func isWhitespace(tok string) bool {
	r, _ := utf8.DecodeRuneInString(tok)
	return tok != "" && unicode.IsSpace(r)
}
