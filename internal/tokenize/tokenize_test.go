package tokenize

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestExtractWords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Token
	}{
		{
			name: "simple sentence",
			text: "the quick fox",
			want: []Token{
				{Word: "the", Start: 0, End: 3},
				{Word: "quick", Start: 4, End: 9},
				{Word: "fox", Start: 10, End: 13},
			},
		},
		{
			name: "contraction stays one token",
			text: "don't stop",
			want: []Token{
				{Word: "don't", Start: 0, End: 5},
				{Word: "stop", Start: 6, End: 10},
			},
		},
		{
			name: "single i and a are kept",
			text: "i am a dog",
			want: []Token{
				{Word: "i", Start: 0, End: 1},
				{Word: "am", Start: 2, End: 4},
				{Word: "a", Start: 5, End: 6},
				{Word: "dog", Start: 7, End: 10},
			},
		},
		{
			name: "other single letters dropped",
			text: "x marks b spot",
			want: []Token{
				{Word: "marks", Start: 2, End: 7},
				{Word: "spot", Start: 10, End: 14},
			},
		},
		{
			name: "apostrophe-only run dropped",
			text: "he said '' loudly",
			want: []Token{
				{Word: "he", Start: 0, End: 2},
				{Word: "said", Start: 3, End: 7},
				{Word: "loudly", Start: 11, End: 17},
			},
		},
		{
			name: "digits and punctuation split words",
			text: "v2,beta-test",
			want: []Token{
				{Word: "beta", Start: 3, End: 7},
				{Word: "test", Start: 8, End: 12},
			},
		},
		{
			name: "word at end of text",
			text: "hello world",
			want: []Token{
				{Word: "hello", Start: 0, End: 5},
				{Word: "world", Start: 6, End: 11},
			},
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ExtractWords(tt.text))
		})
	}
}

func TestExtractWordsOffsetsAreRuneOffsets(t *testing.T) {
	// Multi-byte runes before a word shift rune offsets, not byte offsets.
	text := "café — cat"
	tokens := ExtractWords(text)
	require.Equal(t, []Token{
		{Word: "caf", Start: 0, End: 3},
		{Word: "cat", Start: 7, End: 10},
	}, tokens)

	runes := []rune(text)
	for _, tok := range tokens {
		require.Equal(t, tok.Word, string(runes[tok.Start:tok.End]))
	}
}

func TestExtractWordsProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.String().Draw(t, "text")
		runes := []rune(text)
		for _, tok := range ExtractWords(text) {
			// Spans are well formed and index the snapshot.
			if tok.Start < 0 || tok.End > len(runes) || tok.Start >= tok.End {
				t.Fatalf("bad span [%d,%d) for %q", tok.Start, tok.End, text)
			}
			if string(runes[tok.Start:tok.End]) != tok.Word {
				t.Fatalf("span [%d,%d) does not cover %q", tok.Start, tok.End, tok.Word)
			}
			// No one-letter tokens other than i and a.
			if len([]rune(tok.Word)) == 1 {
				switch tok.Word {
				case "i", "I", "a", "A":
				default:
					t.Fatalf("unexpected single-letter token %q", tok.Word)
				}
			}
		}
	})
}
