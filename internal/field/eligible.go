package field

import (
	"strings"

	"github.com/redlinehq/redline/internal/page"
)

// Input types that carry free text worth checking.
var checkableInputTypes = map[string]bool{
	"":       true,
	"text":   true,
	"search": true,
	"email":  true,
	"url":    true,
}

// Attribute fragments that mark a field as likely to hold credentials or
// other data that must never leave the field, even as a suggestion lookup.
var sensitiveFragments = []string{
	"password", "passwd", "cvv", "cvc", "card", "ssn",
	"pin", "token", "secret", "otp", "credential",
}

func isRich(el *page.Node) bool {
	return el.Attr("contenteditable") == "true"
}

// Eligible reports whether el is an editable surface the checker should
// attach to. Sensitive fields are excluded outright so their contents never
// reach the pipeline.
func Eligible(el *page.Node) bool {
	if el.Kind() != page.ElementNode {
		return false
	}
	if el.Attr("spellcheck") == "false" {
		return false
	}
	if Sensitive(el) {
		return false
	}
	switch el.Tag() {
	case "textarea":
		return true
	case "input":
		return checkableInputTypes[strings.ToLower(el.Attr("type"))]
	default:
		return el.Attr("contenteditable") == "true"
	}
}

// Sensitive reports whether el looks like it holds credentials, card data
// or other secrets.
func Sensitive(el *page.Node) bool {
	typ := strings.ToLower(el.Attr("type"))
	if typ == "password" || typ == "hidden" {
		return true
	}
	for _, token := range strings.Fields(strings.ToLower(el.Attr("autocomplete"))) {
		if strings.HasPrefix(token, "cc-") || token == "current-password" ||
			token == "new-password" || token == "one-time-code" {
			return true
		}
	}
	for _, attr := range []string{"name", "id", "placeholder", "aria-label"} {
		v := strings.ToLower(el.Attr(attr))
		if v == "" {
			continue
		}
		for _, frag := range sensitiveFragments {
			if strings.Contains(v, frag) {
				return true
			}
		}
	}
	return false
}
