// Package grammar flags a small bank of commonly confused word pairs.
//
// Every rule is deliberately conservative: it flags only when a short context
// window makes the mistake near-certain, and returns no error otherwise.
// Grammar flags look identical to spelling flags to the user, so a false
// positive here costs more trust than a missed error.
package grammar

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Error is one grammar finding. Offsets are half-open rune positions into the
// checked text, valid only for that snapshot.
type Error struct {
	Word       string
	StartIndex int
	EndIndex   int
	Suggestion string
	Rule       string
}

// window is how many characters around a match a rule may inspect.
const window = 24

type rule struct {
	name    string
	pattern *regexp.Regexp
	// check inspects the text around the byte-offset match and returns the
	// replacement word, or ok=false for ambiguous cases.
	check func(text string, start, end int) (string, bool)
}

var (
	reYour  = regexp.MustCompile(`\b[Yy]our\b`)
	reYoure = regexp.MustCompile(`\b[Yy]ou're\b`)
	reIts   = regexp.MustCompile(`\b[Ii]ts\b`)
	reItsAp = regexp.MustCompile(`\b[Ii]t's\b`)
	reThen  = regexp.MustCompile(`\b[Tt]hen\b`)
	reThan  = regexp.MustCompile(`\b[Tt]han\b`)
)

// Words that almost never follow the possessive "your": determiners,
// intensifiers and verb forms that demand "you are".
var afterYourContraction = wordSet("a", "an", "the", "so", "very", "not", "going", "welcome", "probably")

// Concrete nouns that demand the possessive.
var afterYoureNoun = wordSet("car", "house", "dog", "cat", "phone", "keys", "name", "book", "shoes", "family", "friends", "hair")

var afterItsContraction = wordSet("a", "an", "the", "been", "not", "very", "really", "going", "time", "important", "possible")

var afterItsPossessive = wordSet("own", "color", "colour", "size", "shape", "name", "purpose", "value", "place")

var beforeThan = wordSet(
	"more", "less", "better", "worse", "rather", "other",
	"faster", "slower", "bigger", "smaller", "greater", "fewer",
	"higher", "lower", "larger", "easier", "harder",
	"older", "younger", "stronger", "weaker", "longer", "shorter",
)

var beforeThen = wordSet("back", "since", "until", "till", "and")

var rules = []rule{
	{
		name:    "your/you're",
		pattern: reYour,
		check: func(text string, _, end int) (string, bool) {
			if afterYourContraction[nextWord(text, end)] {
				return "you're", true
			}
			return "", false
		},
	},
	{
		name:    "you're/your",
		pattern: reYoure,
		check: func(text string, _, end int) (string, bool) {
			if afterYoureNoun[nextWord(text, end)] {
				return "your", true
			}
			return "", false
		},
	},
	{
		name:    "its/it's",
		pattern: reIts,
		check: func(text string, _, end int) (string, bool) {
			if afterItsContraction[nextWord(text, end)] {
				return "it's", true
			}
			return "", false
		},
	},
	{
		name:    "it's/its",
		pattern: reItsAp,
		check: func(text string, _, end int) (string, bool) {
			if afterItsPossessive[nextWord(text, end)] {
				return "its", true
			}
			return "", false
		},
	},
	{
		name:    "then/than",
		pattern: reThen,
		check: func(text string, start, _ int) (string, bool) {
			if beforeThan[prevWord(text, start)] {
				return "than", true
			}
			return "", false
		},
	},
	{
		name:    "than/then",
		pattern: reThan,
		check: func(text string, start, _ int) (string, bool) {
			prev := prevWord(text, start)
			// "rather than", "more than" etc. are correct usage.
			if beforeThan[prev] {
				return "", false
			}
			if beforeThen[prev] {
				return "then", true
			}
			return "", false
		},
	},
}

// Check runs every rule over text and returns the findings in text order.
func Check(text string) []Error {
	var errs []Error
	for _, r := range rules {
		for _, loc := range r.pattern.FindAllStringIndex(text, -1) {
			start, end := loc[0], loc[1]
			replacement, ok := r.check(text, start, end)
			if !ok {
				continue
			}
			word := text[start:end]
			errs = append(errs, Error{
				Word:       word,
				StartIndex: utf8.RuneCountInString(text[:start]),
				EndIndex:   utf8.RuneCountInString(text[:end]),
				Suggestion: matchCase(word, replacement),
				Rule:       r.name,
			})
		}
	}
	sortByPosition(errs)
	return errs
}

func sortByPosition(errs []Error) {
	for i := 1; i < len(errs); i++ {
		for j := i; j > 0 && errs[j].StartIndex < errs[j-1].StartIndex; j-- {
			errs[j], errs[j-1] = errs[j-1], errs[j]
		}
	}
}

// nextWord returns the lowercased word following byte offset from, looking at
// most window bytes ahead.
func nextWord(text string, from int) string {
	limit := from + window
	if limit > len(text) {
		limit = len(text)
	}
	seg := text[from:limit]
	i := 0
	for i < len(seg) && !isWordByte(seg[i]) {
		// Stop at sentence punctuation: the next word is a new clause.
		if seg[i] == '.' || seg[i] == '!' || seg[i] == '?' {
			return ""
		}
		i++
	}
	j := i
	for j < len(seg) && isWordByte(seg[j]) {
		j++
	}
	return strings.ToLower(seg[i:j])
}

// prevWord returns the lowercased word preceding byte offset to, looking at
// most window bytes back.
func prevWord(text string, to int) string {
	limit := to - window
	if limit < 0 {
		limit = 0
	}
	seg := text[limit:to]
	j := len(seg)
	for j > 0 && !isWordByte(seg[j-1]) {
		c := seg[j-1]
		if c == '.' || c == '!' || c == '?' {
			return ""
		}
		j--
	}
	i := j
	for i > 0 && isWordByte(seg[i-1]) {
		i--
	}
	return strings.ToLower(seg[i:j])
}

func isWordByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '\''
}

// matchCase carries an uppercase first letter from the flagged word over to
// the replacement.
func matchCase(word, replacement string) string {
	r, _ := utf8.DecodeRuneInString(word)
	if unicode.IsUpper(r) {
		rr := []rune(replacement)
		rr[0] = unicode.ToUpper(rr[0])
		return string(rr)
	}
	return replacement
}

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
