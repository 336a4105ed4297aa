// Package suggest ranks correction candidates for misspelled words using
// edit distance weighted by keyboard adjacency.
package suggest

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sajari/fuzzy"

	"github.com/redlinehq/redline/internal/dictionary"
)

// MaxSuggestions is the default cap on returned suggestions.
const MaxSuggestions = 5

// maxDistance is the edit-distance cutoff for candidates. The length
// pre-filter below mirrors it: a longer length difference cannot beat it.
const maxDistance = 2

// adjacencyBonus is subtracted from the score of a candidate that is one
// keyboard-adjacent substitution away from the input.
const adjacencyBonus = 0.5

// Ranker produces ordered suggestion lists against a dictionary. It keeps a
// trained fuzzy model as a backfill source for words the edit-distance scan
// cannot reach, and caches results until the dictionary changes.
type Ranker struct {
	dict  *dictionary.Dictionary
	model *fuzzy.Model
	cache *gocache.Cache
}

// NewRanker builds a Ranker over dict, training the backfill model from the
// full word list.
func NewRanker(dict *dictionary.Dictionary) *Ranker {
	r := &Ranker{
		dict:  dict,
		cache: gocache.New(5*time.Minute, 10*time.Minute),
	}
	r.train()
	return r
}

func (r *Ranker) train() {
	model := fuzzy.NewModel()
	model.SetDepth(2)
	model.SetThreshold(1)
	for _, word := range r.dict.Words() {
		model.TrainWord(word)
	}
	r.model = model
}

// Retrain rebuilds the backfill model and drops cached suggestions. Call it
// after the custom dictionary overlay changes.
func (r *Ranker) Retrain() {
	r.train()
	r.cache.Flush()
}

type scored struct {
	word  string
	score float64
}

// Suggest returns up to max ranked corrections for word. The input's
// capitalization pattern is re-applied: an uppercase first letter carries
// over to each suggestion. Results are deterministic for a fixed dictionary.
func (r *Ranker) Suggest(word string, max int) []string {
	if max <= 0 {
		max = MaxSuggestions
	}
	lower := strings.ToLower(word)

	base := r.suggestLower(lower, max)

	if len(base) == 0 {
		return nil
	}
	out := make([]string, len(base))
	copy(out, base)
	if firstIsUpper(word) {
		for i, s := range out {
			out[i] = capitalize(s)
		}
	}
	return out
}

func (r *Ranker) suggestLower(lower string, max int) []string {
	key := fmt.Sprintf("%s:%d", lower, max)
	if cached, ok := r.cache.Get(key); ok {
		return cached.([]string)
	}

	inputLen := len([]rune(lower))
	var candidates []scored
	seen := make(map[string]struct{})

	for _, cand := range r.dict.Words() {
		if cand == lower {
			continue
		}
		if _, dup := seen[cand]; dup {
			continue
		}
		// Cheap length pre-filter before the DP table.
		candLen := len([]rune(cand))
		if candLen-inputLen > maxDistance || inputLen-candLen > maxDistance {
			continue
		}
		dist := Levenshtein(lower, cand)
		if dist > maxDistance {
			continue
		}
		score := float64(dist)
		if singleAdjacentSubstitution(lower, cand) {
			score -= adjacencyBonus
		}
		seen[cand] = struct{}{}
		candidates = append(candidates, scored{word: cand, score: score})
	}

	// Stable: ties keep dictionary encounter order, so output is reproducible.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score < candidates[j].score
	})

	if len(candidates) > max {
		candidates = candidates[:max]
	}
	base := make([]string, 0, len(candidates))
	for _, c := range candidates {
		base = append(base, c.word)
	}

	// Backfill from the trained model when edit distance 2 found too little.
	if len(base) < max {
		if fix := r.model.SpellCheck(lower); fix != "" && fix != lower {
			dup := false
			for _, s := range base {
				if s == fix {
					dup = true
					break
				}
			}
			if !dup {
				base = append(base, fix)
			}
		}
	}

	r.cache.Set(key, base, gocache.DefaultExpiration)
	return base
}

func firstIsUpper(word string) bool {
	for _, r := range word {
		return unicode.IsUpper(r)
	}
	return false
}

func capitalize(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
