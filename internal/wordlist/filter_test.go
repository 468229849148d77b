package wordlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterForLangEnglish(t *testing.T) {
	keep := FilterForLang("EN")
	for _, word := range []string{"hello", "don't", "o'clock"} {
		assert.True(t, keep(word), "expected %q to pass", word)
	}
	for _, word := range []string{"", "résumé", "naïve", "don’t", "co-op", "Hello", "'tis", "ends'", "a''b"} {
		assert.False(t, keep(word), "expected %q to be rejected", word)
	}
}

func TestFilterForLangUnknownKeepsAll(t *testing.T) {
	keep := FilterForLang("xx")
	assert.True(t, keep("résumé"))
	assert.True(t, keep("co-op"))
}

func TestFilterKeepsOrderAndInput(t *testing.T) {
	list := []string{"zeta", "Über", "alpha", "co-op", "beta"}
	got := Filter(list, "en")
	assert.Equal(t, []string{"zeta", "alpha", "beta"}, got)
	assert.Equal(t, []string{"zeta", "Über", "alpha", "co-op", "beta"}, list)
}
