// Package tokenize splits text into candidate words with their offsets.
package tokenize

// Token is a candidate word in a text snapshot. Start and End are a half-open
// rune-offset range, valid only for the snapshot the token was produced from.
type Token struct {
	Word  string
	Start int
	End   int
}

func isWordRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '\''
}

// ExtractWords tokenizes text into words with their rune-offset positions.
// Words are maximal runs of ASCII letters and apostrophes. Single-character
// candidates are kept only for "i" and "a" (case-insensitive), and candidates
// made entirely of apostrophes are dropped.
func ExtractWords(text string) []Token {
	var tokens []Token
	runes := []rune(text)

	inWord := false
	var start int

	flush := func(end int) {
		if !inWord {
			return
		}
		inWord = false
		word := string(runes[start:end])
		if tok, ok := makeToken(word, start, end); ok {
			tokens = append(tokens, tok)
		}
	}

	for i, r := range runes {
		if isWordRune(r) {
			if !inWord {
				start = i
				inWord = true
			}
			continue
		}
		flush(i)
	}
	flush(len(runes))

	return tokens
}

func makeToken(word string, start, end int) (Token, bool) {
	runes := []rune(word)

	// Drop stray single letters except the real one-letter words.
	if len(runes) == 1 {
		r := runes[0]
		if r == 'i' || r == 'I' || r == 'a' || r == 'A' {
			return Token{Word: word, Start: start, End: end}, true
		}
		return Token{}, false
	}

	// Drop runs that are apostrophes only (quoted text artefacts).
	allApostrophes := true
	for _, r := range runes {
		if r != '\'' {
			allApostrophes = false
			break
		}
	}
	if allApostrophes {
		return Token{}, false
	}

	return Token{Word: word, Start: start, End: end}, true
}
