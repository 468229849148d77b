package evaluate

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateIdentity(t *testing.T) {
	texts := []string{
		"a",
		"the quick brown fox jumps over the lazy dog",
		"  leading and trailing  ",
		"tabs\tand\nnewlines",
	}
	for _, text := range texts {
		res := Evaluate(text, text, 30*time.Second)
		assert.Empty(t, res.Mistakes, "text %q", text)
		assert.Equal(t, 100.0, res.Accuracy, "text %q", text)
	}
}

func TestEvaluateEndToEnd(t *testing.T) {
	res := Evaluate("the quick brown fox", "the quick fox", 6*time.Second)

	require.Equal(t, []Mistake{{Expected: "brown", Actual: "", Position: 2}}, res.Mistakes)
	assert.InDelta(t, 13.0/19.0*100, res.Accuracy, 1e-9)
	assert.Equal(t, 26, res.WPM)
	assert.Equal(t, 6.0, res.TimeElapsed)
	assert.Equal(t, "the quick fox", res.UserInput)
}

func TestEvaluateSkipDetection(t *testing.T) {
	res := Evaluate("a b c d", "a c d", time.Minute)
	require.Equal(t, []Mistake{{Expected: "b", Position: 1}}, res.Mistakes)
	assert.Equal(t, MistakeSkipped, res.Mistakes[0].Kind())
}

func TestEvaluateExtraDetection(t *testing.T) {
	res := Evaluate("a b c", "a x b c", time.Minute)
	require.Equal(t, []Mistake{{Actual: "x", Position: 1}}, res.Mistakes)
	assert.Equal(t, MistakeExtra, res.Mistakes[0].Kind())
}

func TestEvaluateMisspelling(t *testing.T) {
	res := Evaluate("one two three", "one tow three", time.Minute)
	require.Equal(t, []Mistake{{Expected: "two", Actual: "tow", Position: 1}}, res.Mistakes)
	assert.Equal(t, MistakeMisspelled, res.Mistakes[0].Kind())
	// 13 chars, penalty max(3,3)+1.
	assert.InDelta(t, 9.0/13.0*100, res.Accuracy, 1e-9)
}

func TestEvaluateSkipPreferredOverExtra(t *testing.T) {
	// Both "x skipped" and "y extra" resynchronize; the skip reading wins.
	res := Evaluate("x y", "y x", time.Minute)
	require.Len(t, res.Mistakes, 2)
	assert.Equal(t, Mistake{Expected: "x", Position: 0}, res.Mistakes[0])
	assert.Equal(t, Mistake{Actual: "x", Position: 2}, res.Mistakes[1])
}

func TestEvaluateLookaheadBoundary(t *testing.T) {
	t.Run("skip of five resynchronizes", func(t *testing.T) {
		res := Evaluate("a s1 s2 s3 s4 s5 b c", "a b c", time.Minute)
		require.Len(t, res.Mistakes, 5)
		for i, m := range res.Mistakes {
			assert.Equal(t, MistakeSkipped, m.Kind())
			assert.Equal(t, i+1, m.Position)
		}
	})

	t.Run("skip of six degrades to misspellings", func(t *testing.T) {
		res := Evaluate("a s1 s2 s3 s4 s5 s6 b c", "a b c", time.Minute)
		require.NotEmpty(t, res.Mistakes)
		assert.Equal(t, Mistake{Expected: "s1", Actual: "b", Position: 1}, res.Mistakes[0])
		assert.Equal(t, Mistake{Expected: "s2", Actual: "c", Position: 2}, res.Mistakes[1])
		for _, m := range res.Mistakes {
			assert.NotEqual(t, MistakeExtra, m.Kind())
		}
	})

	t.Run("extra of five resynchronizes", func(t *testing.T) {
		res := Evaluate("a b", "a e1 e2 e3 e4 e5 b", time.Minute)
		require.Len(t, res.Mistakes, 5)
		for _, m := range res.Mistakes {
			assert.Equal(t, MistakeExtra, m.Kind())
			assert.Equal(t, 1, m.Position)
		}
	})
}

func TestEvaluatorCustomLookahead(t *testing.T) {
	narrow := Evaluator{Lookahead: 1}
	res := narrow.Evaluate("a x y b", "a b", time.Minute)
	require.Len(t, res.Mistakes, 3)
	assert.Equal(t, Mistake{Expected: "x", Actual: "b", Position: 1}, res.Mistakes[0])

	res = Evaluator{}.Evaluate("a x y b", "a b", time.Minute)
	assert.Equal(t, []Mistake{{Expected: "x", Position: 1}, {Expected: "y", Position: 2}}, res.Mistakes)
}

func TestEvaluateEmptyInput(t *testing.T) {
	res := Evaluate("hello big world", "", 10*time.Second)
	assert.Equal(t, 0, res.WPM)
	require.Len(t, res.Mistakes, 3)
	for i, m := range res.Mistakes {
		assert.Equal(t, "", m.Actual)
		assert.Equal(t, i, m.Position)
	}
	assert.Equal(t, 0.0, res.Accuracy)
	assert.Equal(t, "", res.UserInput)
}

func TestEvaluateEmptyReference(t *testing.T) {
	res := Evaluate("", "abc", 6*time.Second)
	assert.Equal(t, 0.0, res.Accuracy)
	assert.Equal(t, []Mistake{{Actual: "abc", Position: 0}}, res.Mistakes)
	assert.Equal(t, 6, res.WPM)

	res = Evaluate("", "", 0)
	assert.Equal(t, 0.0, res.Accuracy)
	assert.Equal(t, 0, res.WPM)
	assert.NotNil(t, res.Mistakes)
	assert.Empty(t, res.Mistakes)
}

func TestEvaluateAccuracyNeverNegative(t *testing.T) {
	res := Evaluate("a b", "a b c d e f g", time.Minute)
	assert.Equal(t, 0.0, res.Accuracy)
	assert.Len(t, res.Mistakes, 5)
	for _, m := range res.Mistakes {
		assert.Equal(t, 2, m.Position)
	}
}

func TestEvaluateZeroElapsed(t *testing.T) {
	res := Evaluate("abc", "abc", 0)
	assert.Equal(t, 0, res.WPM)
	res = Evaluate("abc", "abc", -time.Second)
	assert.Equal(t, 0, res.WPM)
}

func TestEvaluateWPMNotAccuracyAdjusted(t *testing.T) {
	// Ten typed characters in six seconds is 20 WPM whatever was typed.
	right := Evaluate("abcd efghi", "abcd efghi", 6*time.Second)
	wrong := Evaluate("abcd efghi", "zzzz zzzzz", 6*time.Second)
	assert.Equal(t, 20, right.WPM)
	assert.Equal(t, 20, wrong.WPM)
	assert.Less(t, wrong.Accuracy, right.Accuracy)
}

func TestEvaluateTrimsUserInput(t *testing.T) {
	res := Evaluate("a b", "  a b \n", time.Minute)
	assert.Equal(t, "a b", res.UserInput)
	assert.Empty(t, res.Mistakes)
}

func TestEvaluateCountsRunes(t *testing.T) {
	res := Evaluate("héllo wörld", "héllo", time.Minute)
	require.Equal(t, []Mistake{{Expected: "wörld", Position: 1}}, res.Mistakes)
	// 11 runes, penalty 6.
	assert.InDelta(t, 5.0/11.0*100, res.Accuracy, 1e-9)
}

func TestMistakePenalty(t *testing.T) {
	tests := []struct {
		name    string
		mistake Mistake
		want    int
	}{
		{name: "skipped", mistake: Mistake{Expected: "brown"}, want: 6},
		{name: "extra", mistake: Mistake{Actual: "xy"}, want: 3},
		{name: "misspelled longer typed", mistake: Mistake{Expected: "cat", Actual: "carts"}, want: 6},
		{name: "misspelled shorter typed", mistake: Mistake{Expected: "house", Actual: "hous"}, want: 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mistake.Penalty())
		})
	}
}

func TestResultCounts(t *testing.T) {
	res := Evaluate("a b c d e", "a c x d q", time.Minute)
	counts := res.Counts()
	assert.Equal(t, len(res.Mistakes), counts.Total())
	assert.Equal(t, MistakeCounts{Skipped: 1, Extra: 1, Misspelled: 1}, counts)
}

func TestResultJSONShape(t *testing.T) {
	res := Evaluate("a", "a", time.Second)
	raw, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"wpm":12,"accuracy":100,"mistakes":[],"timeElapsed":1,"userInput":"a"}`, string(raw))
}
