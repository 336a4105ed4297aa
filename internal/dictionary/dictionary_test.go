package dictionary

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsCorrectBuiltin(t *testing.T) {
	d := New()

	for _, word := range []string{"the", "people", "work", "together", "create", "something", "new"} {
		require.True(t, d.IsCorrect(word), "builtin word %q", word)
	}

	// Case-insensitive against the built-in list.
	require.True(t, d.IsCorrect("The"))
	require.True(t, d.IsCorrect("PEOPLE")) // also an acronym-length miss, but dictionary hit comes first

	require.False(t, d.IsCorrect("teh"))
	require.False(t, d.IsCorrect("recieve"))
}

func TestIsCorrectCustomOverlay(t *testing.T) {
	d := New()
	require.False(t, d.IsCorrect("redline"))

	require.True(t, d.AddCustom("Redline"))
	require.True(t, d.IsCorrect("redline"))
	require.True(t, d.IsCorrect("REDLINE")) // 7 letters, not the acronym path

	// Adding again is a no-op.
	require.False(t, d.AddCustom("redline"))

	d.RemoveCustom("redline")
	require.False(t, d.IsCorrect("redline"))
}

func TestIsCorrectHeuristics(t *testing.T) {
	d := New()

	tests := []struct {
		word string
		want bool
	}{
		{"NASA", true}, // short acronym
		{"HTTP", true},
		{"XYZZY", true},   // five caps, still within the acronym cutoff
		{"XYZZYX", false}, // six caps, past the acronym cutoff
		{"2024", true},    // pure number
		{"007", true},
		{"v2", true}, // letters then digits
		{"utf8", true},
		{"Px4000", true},
		{"4chan", false}, // digits first does not match
		{"", true},       // empty input is never flagged
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, d.IsCorrect(tt.word), "word %q", tt.word)
	}
}

func TestIsCorrectContractions(t *testing.T) {
	d := New()
	for _, word := range []string{"don't", "can't", "won't", "it's", "you're", "they're"} {
		require.True(t, d.IsCorrect(word), "contraction %q", word)
	}
}

func TestSetCustomReplacesOverlay(t *testing.T) {
	d := New()
	d.AddCustom("foobar")
	d.SetCustom([]string{"Grault ", "garply"})

	require.False(t, d.IsCorrect("foobar"))
	require.True(t, d.IsCorrect("grault"))
	require.True(t, d.IsCorrect("garply"))
	require.Equal(t, []string{"garply", "grault"}, d.CustomWords())
}

func TestWordsIsDeterministic(t *testing.T) {
	d := New()
	d.AddCustom("zzzfirst")
	d.AddCustom("aaalast")

	a := d.Words()
	b := d.Words()
	require.Equal(t, a, b)
	require.Len(t, a, BuiltinSize()+2)
	// Overlay words follow the built-in list, sorted.
	require.Equal(t, "aaalast", a[len(a)-2])
	require.Equal(t, "zzzfirst", a[len(a)-1])
}
