package evaluate

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// Evaluator aligns typed text against a reference text. The zero value uses
// the default Lookahead window.
type Evaluator struct {
	Lookahead int
}

// Default is the evaluator used by the package-level functions.
var Default = Evaluator{Lookahead: Lookahead}

// Evaluate scores input against reference using the Default evaluator.
func Evaluate(reference, input string, elapsed time.Duration) Result {
	return Default.Evaluate(reference, input, elapsed)
}

// Evaluate computes WPM, accuracy and the mistake list for an attempt.
// WPM is gross speed over the raw input and is not adjusted for accuracy.
// Every input, including empty strings and a zero elapsed time, yields a result.
func (e Evaluator) Evaluate(reference, input string, elapsed time.Duration) Result {
	mistakes := e.alignWords(strings.Fields(reference), strings.Fields(input))

	totalChars := utf8.RuneCountInString(reference)
	incorrectChars := 0
	for _, m := range mistakes {
		incorrectChars += m.Penalty()
	}
	accuracy := 0.0
	if totalChars > 0 {
		correctChars := totalChars - incorrectChars
		accuracy = math.Max(0, float64(correctChars)/float64(totalChars)*100)
	}

	seconds := elapsed.Seconds()
	wpm := 0
	if seconds > 0 {
		grossWords := float64(utf8.RuneCountInString(input)) / 5
		wpm = int(math.Round(grossWords / (seconds / 60)))
	}

	return Result{
		WPM:         wpm,
		Accuracy:    accuracy,
		Mistakes:    mistakes,
		TimeElapsed: seconds,
		UserInput:   strings.TrimSpace(input),
	}
}

func (e Evaluator) window() int {
	if e.Lookahead <= 0 {
		return Lookahead
	}
	return e.Lookahead
}

func (e Evaluator) alignWords(ref, typed []string) []Mistake {
	window := e.window()
	mistakes := []Mistake{}
	refIdx, typedIdx := 0, 0
	for refIdx < len(ref) || typedIdx < len(typed) {
		switch {
		case typedIdx >= len(typed):
			mistakes = append(mistakes, Mistake{Expected: ref[refIdx], Position: refIdx})
			refIdx++
		case refIdx >= len(ref):
			mistakes = append(mistakes, Mistake{Actual: typed[typedIdx], Position: refIdx})
			typedIdx++
		case ref[refIdx] == typed[typedIdx]:
			refIdx++
			typedIdx++
		default:
			if skip := seekWord(ref, refIdx, typed[typedIdx], window); skip > 0 {
				for i := 0; i < skip; i++ {
					mistakes = append(mistakes, Mistake{Expected: ref[refIdx+i], Position: refIdx + i})
				}
				refIdx += skip
			} else if extra := seekWord(typed, typedIdx, ref[refIdx], window); extra > 0 {
				for i := 0; i < extra; i++ {
					mistakes = append(mistakes, Mistake{Actual: typed[typedIdx+i], Position: refIdx})
				}
				typedIdx += extra
			} else {
				mistakes = append(mistakes, Mistake{Expected: ref[refIdx], Actual: typed[typedIdx], Position: refIdx})
				refIdx++
				typedIdx++
			}
		}
	}
	return mistakes
}

// seekWord returns the offset (1..window) of the first word after words[from]
// equal to target, or 0 when there is none inside the window.
func seekWord(words []string, from int, target string, window int) int {
	for i := 1; i <= window && from+i < len(words); i++ {
		if words[from+i] == target {
			return i
		}
	}
	return 0
}
