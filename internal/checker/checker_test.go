package checker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/redlinehq/redline/internal/dictionary"
	"github.com/redlinehq/redline/internal/suggest"
)

func newTestChecker() *Checker {
	dict := dictionary.New()
	return New(dict, suggest.NewRanker(dict))
}

func TestFindMisspellingsFlagsTypo(t *testing.T) {
	c := newTestChecker()

	spans := c.FindMisspellings("Teh quick brown fox")
	require.Len(t, spans, 1)

	span := spans[0]
	require.Equal(t, "Teh", span.Word)
	require.Equal(t, 0, span.StartIndex)
	require.Equal(t, 3, span.EndIndex)
	require.Contains(t, span.Suggestions, "The")
	require.Empty(t, span.Rule)
}

func TestFindMisspellingsCleanSentence(t *testing.T) {
	c := newTestChecker()
	require.Empty(t, c.FindMisspellings("The people work together to create something new"))
}

func TestCheckCountsEveryToken(t *testing.T) {
	c := newTestChecker()
	result := c.Check("Teh quick brown fox", Options{})
	require.Equal(t, 4, result.WordsChecked)
	require.Len(t, result.Spans, 1)
}

func TestCheckMergesGrammarFindings(t *testing.T) {
	c := newTestChecker()

	result := c.Check("Teh dog chased it's own tail", Options{Grammar: true})
	require.Len(t, result.Spans, 2)

	// Spelling spans come first, grammar findings appended.
	require.Equal(t, "Teh", result.Spans[0].Word)
	require.Empty(t, result.Spans[0].Rule)

	g := result.Spans[1]
	require.Equal(t, "it's", g.Word)
	require.Equal(t, "it's/its", g.Rule)
	require.Equal(t, []string{"its"}, g.Suggestions)

	runes := []rune("Teh dog chased it's own tail")
	require.Equal(t, "it's", string(runes[g.StartIndex:g.EndIndex]))
}

func TestCheckGrammarDisabledByDefault(t *testing.T) {
	c := newTestChecker()
	result := c.Check("the dog chased it's own tail", Options{})
	require.Empty(t, result.Spans)
}

func TestCheckHonorsIgnoreList(t *testing.T) {
	c := newTestChecker()
	ignored := map[string]bool{"teh": true}

	result := c.Check("Teh quick brown fox", Options{
		IsIgnored: func(word string) bool { return ignored[word] },
	})
	require.Empty(t, result.Spans)
	require.Equal(t, 4, result.WordsChecked)
}

func TestCheckIgnoreListCoversGrammarFindings(t *testing.T) {
	c := newTestChecker()
	result := c.Check("its been a while", Options{
		Grammar:   true,
		IsIgnored: func(word string) bool { return word == "its" },
	})
	require.Empty(t, result.Spans)
}

func TestCheckSuggestionCap(t *testing.T) {
	c := newTestChecker()
	result := c.Check("wrk", Options{MaxSuggestions: 2})
	require.Len(t, result.Spans, 1)
	require.LessOrEqual(t, len(result.Spans[0].Suggestions), 2)
}
