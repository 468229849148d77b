// Package generator builds practice texts from a word list.
package generator

import (
	"math/rand"
	"sort"
	"strings"
	"time"
	"unicode"
)

// Options controls text shaping.
type Options struct {
	Count    int
	CapsPct  float64
	PunctPct float64
	PunctSet []rune
}

// Generator produces randomized practice text.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a deterministic Generator.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Text joins a generated word sequence into a reference text.
func (g *Generator) Text(words []string, opts Options, focus map[string]struct{}, factor float64) string {
	if len(focus) > 0 && factor > 0 {
		return strings.Join(g.GenerateWeighted(words, opts, focus, factor), " ")
	}
	return strings.Join(g.Generate(words, opts), " ")
}

// Generate selects words uniformly and applies caps/punctuation rules.
func (g *Generator) Generate(words []string, opts Options) []string {
	if len(words) == 0 {
		return nil
	}
	result := make([]string, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		result = append(result, g.shape(words[g.rnd.Intn(len(words))], opts))
	}
	return result
}

// GenerateWeighted selects words with a bias toward the focus set, typically
// words a student recently skipped or misspelled. Focus words missing from
// the list are added to the candidate pool.
func (g *Generator) GenerateWeighted(words []string, opts Options, focus map[string]struct{}, factor float64) []string {
	pool := make([]string, 0, len(words)+len(focus))
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		pool = append(pool, w)
		seen[w] = struct{}{}
	}
	for w := range focus {
		if _, ok := seen[w]; !ok {
			pool = append(pool, w)
		}
	}
	if len(pool) == 0 {
		return nil
	}
	// Map iteration order is random; keep the pool stable for seeded generators.
	sort.Strings(pool[len(words):])

	weights := make([]float64, len(pool))
	total := 0.0
	for i, w := range pool {
		weight := 1.0
		if _, ok := focus[w]; ok {
			weight += factor
		}
		weights[i] = weight
		total += weight
	}

	result := make([]string, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		r := g.rnd.Float64() * total
		acc := 0.0
		idx := len(pool) - 1
		for j, w := range weights {
			acc += w
			if r <= acc {
				idx = j
				break
			}
		}
		result = append(result, g.shape(pool[idx], opts))
	}
	return result
}

func (g *Generator) shape(word string, opts Options) string {
	word = applyCaps(g.rnd, word, opts.CapsPct)
	return applyPunct(g.rnd, word, opts.PunctPct, opts.PunctSet)
}

func applyCaps(rnd *rand.Rand, word string, capsPct float64) string {
	if capsPct <= 0 {
		return word
	}
	if rnd.Float64() > capsPct {
		return word
	}
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func applyPunct(rnd *rand.Rand, word string, punctPct float64, punctSet []rune) string {
	if punctPct <= 0 || len(punctSet) == 0 {
		return word
	}
	if rnd.Float64() > punctPct {
		return word
	}
	punct := punctSet[rnd.Intn(len(punctSet))]
	return word + string(punct)
}
