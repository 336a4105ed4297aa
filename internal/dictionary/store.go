package dictionary

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/redlinehq/redline/internal/log"
)

// Store persists the custom dictionary as a plain word-per-line file. All
// words are stored lowercased and trimmed, with case-insensitive duplicates
// collapsed.
type Store struct {
	path    string
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewStore returns a Store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the stored words. A missing file is an empty dictionary, not an
// error.
func (s *Store) Load() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading custom dictionary: %w", err)
	}
	return normalizeWords(strings.Split(string(data), "\n")), nil
}

// Save writes the given words, normalized and sorted.
func (s *Store) Save(words []string) error {
	words = normalizeWords(words)
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating dictionary directory: %w", err)
	}
	content := strings.Join(words, "\n")
	if content != "" {
		content += "\n"
	}
	if err := os.WriteFile(s.path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing custom dictionary: %w", err)
	}
	return nil
}

// Add persists one word. It reports whether the stored set changed.
func (s *Store) Add(word string) (bool, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return false, nil
	}
	words, err := s.Load()
	if err != nil {
		return false, err
	}
	for _, w := range words {
		if w == word {
			return false, nil
		}
	}
	words = append(words, word)
	if err := s.Save(words); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes one word. It reports whether the stored set changed.
func (s *Store) Remove(word string) (bool, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	words, err := s.Load()
	if err != nil {
		return false, err
	}
	kept := words[:0]
	removed := false
	for _, w := range words {
		if w == word {
			removed = true
			continue
		}
		kept = append(kept, w)
	}
	if !removed {
		return false, nil
	}
	if err := s.Save(kept); err != nil {
		return false, err
	}
	return true, nil
}

// ImportJSON merges a JSON array of words into the store. Malformed input is
// rejected without touching the stored state.
func (s *Store) ImportJSON(data []byte) (added int, err error) {
	var incoming []string
	if err := json.Unmarshal(data, &incoming); err != nil {
		return 0, fmt.Errorf("import data must be a JSON array of words: %w", err)
	}
	incoming = normalizeWords(incoming)

	words, err := s.Load()
	if err != nil {
		return 0, err
	}
	existing := make(map[string]struct{}, len(words))
	for _, w := range words {
		existing[w] = struct{}{}
	}
	for _, w := range incoming {
		if _, ok := existing[w]; ok {
			continue
		}
		existing[w] = struct{}{}
		words = append(words, w)
		added++
	}
	if added == 0 {
		return 0, nil
	}
	if err := s.Save(words); err != nil {
		return 0, err
	}
	return added, nil
}

// ExportJSON returns the stored words as a sorted JSON array.
func (s *Store) ExportJSON() ([]byte, error) {
	words, err := s.Load()
	if err != nil {
		return nil, err
	}
	if words == nil {
		words = []string{}
	}
	return json.MarshalIndent(words, "", "  ")
}

// Watch invokes onChange with the freshly loaded word list whenever the
// backing file is written by another process. Errors from the watcher are
// logged and swallowed; watching is best effort.
func (s *Store) Watch(onChange func([]string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting dictionary watcher: %w", err)
	}
	// Watch the directory: editors replace files rather than write in place.
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		watcher.Close()
		return fmt.Errorf("creating dictionary directory: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watching dictionary directory: %w", err)
	}
	s.watcher = watcher
	s.done = make(chan struct{})

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != s.path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				words, err := s.Load()
				if err != nil {
					log.ErrorErr(log.CatDict, "reload after external change failed", err)
					continue
				}
				log.Info(log.CatDict, "custom dictionary reloaded", "words", len(words))
				onChange(words)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.ErrorErr(log.CatDict, "dictionary watcher error", err)
			case <-s.done:
				return
			}
		}
	}()
	return nil
}

// Close stops the watcher, if any.
func (s *Store) Close() {
	if s.done != nil {
		close(s.done)
		s.done = nil
	}
	if s.watcher != nil {
		s.watcher.Close()
		s.watcher = nil
	}
}

// normalizeWords lowercases and trims each word, drops blanks, and collapses
// case-insensitive duplicates, returning a sorted list.
func normalizeWords(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	var out []string
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
