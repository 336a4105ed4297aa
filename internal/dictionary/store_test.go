package dictionary

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "custom.txt"))
}

func TestStoreLoadMissingFile(t *testing.T) {
	s := newTestStore(t)
	words, err := s.Load()
	require.NoError(t, err)
	require.Empty(t, words)
}

func TestStoreAddRemove(t *testing.T) {
	s := newTestStore(t)

	changed, err := s.Add("Zephyr")
	require.NoError(t, err)
	require.True(t, changed)

	// Case-insensitive duplicate is a no-op.
	changed, err = s.Add("zephyr")
	require.NoError(t, err)
	require.False(t, changed)

	words, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, []string{"zephyr"}, words)

	changed, err = s.Remove("ZEPHYR")
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = s.Remove("zephyr")
	require.NoError(t, err)
	require.False(t, changed)
}

func TestImportExportRoundTrip(t *testing.T) {
	s := newTestStore(t)

	data, err := json.Marshal([]string{"Alpha", " beta ", "GAMMA", "alpha", "beta"})
	require.NoError(t, err)

	added, err := s.ImportJSON(data)
	require.NoError(t, err)
	require.Equal(t, 3, added)

	out, err := s.ExportJSON()
	require.NoError(t, err)
	var words []string
	require.NoError(t, json.Unmarshal(out, &words))
	require.Equal(t, []string{"alpha", "beta", "gamma"}, words)
}

func TestImportRejectsMalformedData(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add("keepme")
	require.NoError(t, err)

	for _, bad := range []string{`{"not":"an array"}`, `"word"`, `[1,2,3]`, `not json`} {
		_, err := s.ImportJSON([]byte(bad))
		require.Error(t, err, "input %q", bad)
	}

	// Stored state is untouched after rejected imports.
	words, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, []string{"keepme"}, words)
}

func TestImportExportRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := NewStore(filepath.Join(os.TempDir(), "redline-rapid", rapid.StringMatching(`[a-z]{8}`).Draw(t, "name")+".txt"))
		defer os.Remove(s.Path())

		words := rapid.SliceOfN(rapid.StringMatching(`[A-Za-z']{1,12}`), 0, 20).Draw(t, "words")
		data, err := json.Marshal(words)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := s.ImportJSON(data); err != nil {
			t.Fatal(err)
		}

		expect := make(map[string]struct{})
		for _, w := range words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w != "" {
				expect[w] = struct{}{}
			}
		}
		var want []string
		for w := range expect {
			want = append(want, w)
		}
		sort.Strings(want)
		if want == nil {
			want = []string{}
		}

		out, err := s.ExportJSON()
		if err != nil {
			t.Fatal(err)
		}
		var got []string
		if err := json.Unmarshal(out, &got); err != nil {
			t.Fatal(err)
		}
		if len(got) != len(want) {
			t.Fatalf("round trip: got %v want %v", got, want)
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("round trip: got %v want %v", got, want)
			}
		}
	})
}

func TestStoreSaveSortsAndDedupes(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save([]string{"banana", "Apple", "banana", "  cherry  "}))

	content, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	require.Equal(t, "apple\nbanana\ncherry\n", string(content))
}
