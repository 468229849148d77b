// Package evaluate scores a typed attempt against a reference text.
package evaluate

import "unicode/utf8"

// Lookahead is how many words ahead the aligner searches when resynchronizing
// after a mismatch. Skips or insertions longer than this degrade to misspellings.
const Lookahead = 5

// MistakeKind classifies a Mistake.
type MistakeKind int

const (
	// MistakeSkipped is a reference word the typist left out.
	MistakeSkipped MistakeKind = iota
	// MistakeExtra is a typed word with no reference counterpart.
	MistakeExtra
	// MistakeMisspelled is a reference word typed incorrectly.
	MistakeMisspelled
)

func (k MistakeKind) String() string {
	switch k {
	case MistakeSkipped:
		return "skipped"
	case MistakeExtra:
		return "extra"
	case MistakeMisspelled:
		return "misspelled"
	default:
		return "unknown"
	}
}

// Mistake is one point of divergence between the reference and the typed text.
// Expected is empty for extra words, Actual is empty for skipped words.
type Mistake struct {
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Position int    `json:"position"`
}

// Kind reports whether the mistake is a skip, an extra word or a misspelling.
func (m Mistake) Kind() MistakeKind {
	switch {
	case m.Actual == "":
		return MistakeSkipped
	case m.Expected == "":
		return MistakeExtra
	default:
		return MistakeMisspelled
	}
}

// Penalty is the number of characters the mistake costs in the accuracy score.
// The extra one accounts for the separating space.
func (m Mistake) Penalty() int {
	expected := utf8.RuneCountInString(m.Expected)
	actual := utf8.RuneCountInString(m.Actual)
	switch m.Kind() {
	case MistakeSkipped:
		return expected + 1
	case MistakeExtra:
		return actual + 1
	default:
		return max(expected, actual) + 1
	}
}

// MistakeCounts breaks a mistake list down by kind.
type MistakeCounts struct {
	Skipped    int `json:"skipped"`
	Extra      int `json:"extra"`
	Misspelled int `json:"misspelled"`
}

// Total returns the number of mistakes of any kind.
func (c MistakeCounts) Total() int {
	return c.Skipped + c.Extra + c.Misspelled
}

// CountMistakes tallies mistakes by kind.
func CountMistakes(mistakes []Mistake) MistakeCounts {
	var c MistakeCounts
	for _, m := range mistakes {
		switch m.Kind() {
		case MistakeSkipped:
			c.Skipped++
		case MistakeExtra:
			c.Extra++
		default:
			c.Misspelled++
		}
	}
	return c
}

// Result is the score of one completed attempt.
type Result struct {
	WPM         int       `json:"wpm"`
	Accuracy    float64   `json:"accuracy"`
	Mistakes    []Mistake `json:"mistakes"`
	TimeElapsed float64   `json:"timeElapsed"`
	UserInput   string    `json:"userInput"`
}

// Counts returns the mistake breakdown of the result.
func (r Result) Counts() MistakeCounts {
	return CountMistakes(r.Mistakes)
}

// WordStatus is the rendering status of one diff unit.
type WordStatus string

const (
	StatusCorrect    WordStatus = "correct"
	StatusIncorrect  WordStatus = "incorrect"
	StatusSkipped    WordStatus = "skipped"
	StatusExtra      WordStatus = "extra"
	StatusWhitespace WordStatus = "whitespace"
	StatusPending    WordStatus = "pending"
)

// CharStatus is the status of one character inside a misspelled word.
type CharStatus string

const (
	CharCorrect   CharStatus = "correct"
	CharIncorrect CharStatus = "incorrect"
	CharExtra     CharStatus = "extra"
	CharMissing   CharStatus = "missing"
)

// WordDiff is one rendering unit of a diff. CharDiffs is only set for
// misspelled words.
type WordDiff struct {
	Word      string     `json:"word"`
	Status    WordStatus `json:"status"`
	CharDiffs []CharDiff `json:"charDiffs,omitempty"`
}

// CharDiff compares a single character.
type CharDiff struct {
	Char   string     `json:"char"`
	Status CharStatus `json:"status"`
}
