package settings

import (
	"regexp"
	"strings"
)

// MatchesAny reports whether hostname matches any of the disable patterns.
// Patterns are globs where "*" matches any sequence and every other character
// is literal. Matching is case-insensitive and anchored: the pattern must
// cover the whole hostname, not a substring.
func MatchesAny(hostname string, patterns []string) bool {
	for _, pattern := range patterns {
		re, err := compilePattern(pattern)
		if err != nil {
			// An unparseable pattern disables nothing.
			continue
		}
		if re.MatchString(hostname) {
			return true
		}
	}
	return false
}

func compilePattern(pattern string) (*regexp.Regexp, error) {
	parts := strings.Split(pattern, "*")
	for i, part := range parts {
		parts[i] = regexp.QuoteMeta(part)
	}
	return regexp.Compile(`(?i)^` + strings.Join(parts, `.*`) + `$`)
}
