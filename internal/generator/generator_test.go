package generator

import (
	"strings"
	"testing"
)

func TestGenerateCount(t *testing.T) {
	gen := NewWithSeed(1)
	words := gen.Generate([]string{"alpha", "beta", "gamma"}, Options{Count: 7})
	if len(words) != 7 {
		t.Fatalf("expected 7 words, got %d", len(words))
	}
	for _, w := range words {
		if w != "alpha" && w != "beta" && w != "gamma" {
			t.Fatalf("unexpected word %q", w)
		}
	}
}

func TestGenerateEmptyList(t *testing.T) {
	if words := NewWithSeed(1).Generate(nil, Options{Count: 3}); words != nil {
		t.Fatalf("expected nil for empty list, got %v", words)
	}
}

func TestGenerateAppliesCapsAndPunct(t *testing.T) {
	gen := NewWithSeed(2)
	words := gen.Generate([]string{"word"}, Options{Count: 5, CapsPct: 1, PunctPct: 1, PunctSet: []rune{'.'}})
	for _, w := range words {
		if w != "Word." {
			t.Fatalf("expected shaped word, got %q", w)
		}
	}
}

func TestGenerateSeededIsDeterministic(t *testing.T) {
	list := []string{"a", "b", "c", "d", "e"}
	first := NewWithSeed(42).Text(list, Options{Count: 20}, nil, 0)
	second := NewWithSeed(42).Text(list, Options{Count: 20}, nil, 0)
	if first != second {
		t.Fatalf("expected identical texts, got %q and %q", first, second)
	}
	if got := len(strings.Fields(first)); got != 20 {
		t.Fatalf("expected 20 words, got %d", got)
	}
}

func TestGenerateWeightedFavorsFocus(t *testing.T) {
	gen := NewWithSeed(3)
	focus := map[string]struct{}{"rhythm": {}}
	words := gen.GenerateWeighted([]string{"a", "b", "c", "d"}, Options{Count: 400}, focus, 20)
	hits := 0
	for _, w := range words {
		if w == "rhythm" {
			hits++
		}
	}
	// rhythm weighs 21 of 25.
	if hits < 250 {
		t.Fatalf("expected focus word to dominate, got %d of %d", hits, len(words))
	}
}
