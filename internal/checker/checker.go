// Package checker turns a text snapshot into an ordered list of flagged
// spans, combining the tokenizer, the dictionary oracle, the suggestion
// ranker and the grammar rules.
package checker

import (
	"strings"

	"github.com/redlinehq/redline/internal/dictionary"
	"github.com/redlinehq/redline/internal/grammar"
	"github.com/redlinehq/redline/internal/suggest"
	"github.com/redlinehq/redline/internal/tokenize"
)

// Misspelling is a flagged span: a spelling or grammar issue with its
// half-open rune-offset range and ranked suggestions. Spans are derived from
// the snapshot that produced them and are stale the moment the text changes.
type Misspelling struct {
	Word        string   `json:"word"`
	StartIndex  int      `json:"startIndex"`
	EndIndex    int      `json:"endIndex"`
	Suggestions []string `json:"suggestions,omitempty"`
	// Rule names the grammar rule that produced the span; empty for plain
	// spelling errors.
	Rule string `json:"rule,omitempty"`
}

// Options control a single check pass.
type Options struct {
	// Grammar enables the confused-word-pair rules.
	Grammar bool
	// MaxSuggestions caps the suggestion list per span; zero means the
	// default cap.
	MaxSuggestions int
	// IsIgnored filters out words the user dismissed this session. May be
	// nil. Words are passed lowercased.
	IsIgnored func(word string) bool
}

// Result is the outcome of one check pass.
type Result struct {
	Spans []Misspelling
	// WordsChecked counts every token the oracle saw, flagged or not.
	WordsChecked int
}

// Checker runs check passes against one dictionary and ranker pair.
type Checker struct {
	dict   *dictionary.Dictionary
	ranker *suggest.Ranker
}

// New returns a Checker over the given dictionary and ranker.
func New(dict *dictionary.Dictionary, ranker *suggest.Ranker) *Checker {
	return &Checker{dict: dict, ranker: ranker}
}

// Check analyzes text and returns every flagged span in order: misspellings
// in token order, then grammar findings in text order.
func (c *Checker) Check(text string, opts Options) Result {
	var result Result

	ignored := func(word string) bool {
		if opts.IsIgnored == nil {
			return false
		}
		return opts.IsIgnored(strings.ToLower(word))
	}

	for _, tok := range tokenize.ExtractWords(text) {
		result.WordsChecked++
		if c.dict.IsCorrect(tok.Word) {
			continue
		}
		if ignored(tok.Word) {
			continue
		}
		result.Spans = append(result.Spans, Misspelling{
			Word:        tok.Word,
			StartIndex:  tok.Start,
			EndIndex:    tok.End,
			Suggestions: c.ranker.Suggest(tok.Word, opts.MaxSuggestions),
		})
	}

	if opts.Grammar {
		for _, ge := range grammar.Check(text) {
			if ignored(ge.Word) {
				continue
			}
			result.Spans = append(result.Spans, Misspelling{
				Word:        ge.Word,
				StartIndex:  ge.StartIndex,
				EndIndex:    ge.EndIndex,
				Suggestions: []string{ge.Suggestion},
				Rule:        ge.Rule,
			})
		}
	}

	return result
}

// FindMisspellings is the plain spelling pass over text, without grammar
// rules or an ignore filter.
func (c *Checker) FindMisspellings(text string) []Misspelling {
	return c.Check(text, Options{}).Spans
}
