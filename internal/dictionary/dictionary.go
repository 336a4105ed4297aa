// Package dictionary decides whether a word is correctly spelled. It merges a
// static built-in word list with a user-owned custom overlay.
package dictionary

import (
	"bufio"
	_ "embed"
	"regexp"
	"sort"
	"strings"
	"sync"
)

//go:embed data/words.txt
var builtinData string

var (
	reDigits      = regexp.MustCompile(`^\d+$`)
	reAlphaDigits = regexp.MustCompile(`^[A-Za-z]+\d+$`)
)

var (
	builtinOnce  sync.Once
	builtinSet   map[string]struct{}
	builtinWords []string
)

func loadBuiltin() {
	builtinOnce.Do(func() {
		builtinSet = make(map[string]struct{}, 4096)
		scanner := bufio.NewScanner(strings.NewReader(builtinData))
		for scanner.Scan() {
			word := strings.TrimSpace(scanner.Text())
			if word == "" {
				continue
			}
			word = strings.ToLower(word)
			if _, dup := builtinSet[word]; !dup {
				builtinSet[word] = struct{}{}
				builtinWords = append(builtinWords, word)
			}
		}
	})
}

// Dictionary is the built-in word set plus a read-mostly custom overlay.
type Dictionary struct {
	mu     sync.RWMutex
	custom map[string]struct{}
}

// New returns a Dictionary with an empty custom overlay.
func New() *Dictionary {
	loadBuiltin()
	return &Dictionary{custom: make(map[string]struct{})}
}

// IsCorrect reports whether word is considered correctly spelled. The checks
// run cheapest first: built-in set, custom overlay, then the acronym and
// number heuristics that suppress false positives in technical text.
func (d *Dictionary) IsCorrect(word string) bool {
	if word == "" {
		return true
	}
	lower := strings.ToLower(word)

	if _, ok := builtinSet[lower]; ok {
		return true
	}

	d.mu.RLock()
	_, ok := d.custom[lower]
	d.mu.RUnlock()
	if ok {
		return true
	}

	// Short all-caps words are treated as acronyms (NASA, HTTP).
	if len(word) <= 5 && isAllUpper(word) {
		return true
	}

	if reDigits.MatchString(word) {
		return true
	}
	// Letters followed by digits, e.g. "v2".
	if reAlphaDigits.MatchString(word) {
		return true
	}

	return false
}

func isAllUpper(word string) bool {
	for _, r := range word {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return len(word) > 0
}

// SetCustom replaces the custom overlay with the given words, lowercased.
func (d *Dictionary) SetCustom(words []string) {
	custom := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			custom[w] = struct{}{}
		}
	}
	d.mu.Lock()
	d.custom = custom
	d.mu.Unlock()
}

// AddCustom adds a word to the overlay. It reports whether the overlay
// changed.
func (d *Dictionary) AddCustom(word string) bool {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.custom[word]; ok {
		return false
	}
	d.custom[word] = struct{}{}
	return true
}

// RemoveCustom removes a word from the overlay.
func (d *Dictionary) RemoveCustom(word string) {
	word = strings.ToLower(strings.TrimSpace(word))
	d.mu.Lock()
	delete(d.custom, word)
	d.mu.Unlock()
}

// CustomWords returns the overlay words, sorted.
func (d *Dictionary) CustomWords() []string {
	d.mu.RLock()
	words := make([]string, 0, len(d.custom))
	for w := range d.custom {
		words = append(words, w)
	}
	d.mu.RUnlock()
	sort.Strings(words)
	return words
}

// Words returns every known word: the built-in list in its embedded order
// followed by the sorted overlay. The order is deterministic so suggestion
// ranking is reproducible.
func (d *Dictionary) Words() []string {
	custom := d.CustomWords()
	words := make([]string, 0, len(builtinWords)+len(custom))
	words = append(words, builtinWords...)
	words = append(words, custom...)
	return words
}

// BuiltinSize returns the number of built-in words.
func BuiltinSize() int {
	loadBuiltin()
	return len(builtinWords)
}
