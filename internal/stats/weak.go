package stats

import "github.com/verte-zerg/stenodrill/internal/model"

// SelectFocusWords returns the set of frequently missed words used to bias
// practice text generation.
func SelectFocusWords(scores []model.Score, top int) map[string]struct{} {
	focus := map[string]struct{}{}
	for _, word := range TopMissedWords(scores, top) {
		focus[word] = struct{}{}
	}
	return focus
}
