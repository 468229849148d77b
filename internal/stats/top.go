package stats

import (
	"sort"
	"strings"
	"unicode"

	"github.com/verte-zerg/stenodrill/internal/model"
)

// TopMissedWords returns the n reference words most often skipped or
// misspelled across scores. Words are lowercased with punctuation trimmed so
// they line up with word list entries.
func TopMissedWords(scores []model.Score, n int) []string {
	if n <= 0 || len(scores) == 0 {
		return nil
	}
	counts := map[string]int{}
	for _, sc := range scores {
		for _, m := range sc.Mistakes {
			word := normalizeWord(m.Expected)
			if word == "" {
				continue
			}
			counts[word]++
		}
	}
	type item struct {
		word  string
		total int
	}
	items := make([]item, 0, len(counts))
	for word, total := range counts {
		items = append(items, item{word: word, total: total})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].total == items[j].total {
			return items[i].word < items[j].word
		}
		return items[i].total > items[j].total
	})
	n = min(n, len(items))
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, items[i].word)
	}
	return out
}

func normalizeWord(word string) string {
	word = strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.ToLower(word)
}
