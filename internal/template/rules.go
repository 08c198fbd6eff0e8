package template

import (
	"regexp"
	"strings"
	"unicode"
)

// Section headers are classified by an ordered chain of named predicate
// rules. The ends-with-colon check runs before any of them and always wins:
// a line ending in ':' is a field definition, never a header.
type headerRule struct {
	name  string
	match func(string) bool
}

var (
	// Capitalized phrase ending in a domain vocabulary word,
	// e.g. "Study Identification", "Primary Outcomes".
	reDomainShape = regexp.MustCompile(`^[A-Z][A-Za-z\s]+(?:Details|Characteristics|Outcomes|Identification|Information)$`)

	// Capitalized phrase with a parenthesized qualifier,
	// e.g. "Baseline Characteristics (Continuous: Mean ± SD)".
	reQualifiedShape = regexp.MustCompile(`^[A-Z][A-Za-z\s]+\([A-Za-z\s:±]+\)$`)
)

var sectionHeaderRules = []headerRule{
	{name: "domain-shape", match: reDomainShape.MatchString},
	{name: "qualified-shape", match: reQualifiedShape.MatchString},
	{name: "upper-case", match: isUpperCase},
	{name: "short-title-case", match: func(s string) bool {
		return isTitleCase(s) && len(strings.Fields(s)) <= 6
	}},
}

// isSectionHeader classifies a non-empty trimmed line. The colon check
// short-circuits before the rule chain.
func isSectionHeader(text string) bool {
	if strings.HasSuffix(text, ":") {
		return false
	}
	for _, rule := range sectionHeaderRules {
		if rule.match(text) {
			return true
		}
	}
	return false
}

// isUpperCase reports whether the text has at least one cased character and
// no lowercase ones.
func isUpperCase(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// isTitleCase reports whether uppercase characters only follow uncased ones
// and lowercase characters only follow cased ones, i.e. every run of cased
// characters starts with exactly one capital ("Study Design", not "STUDY"
// mid-word or "design").
func isTitleCase(s string) bool {
	cased := false
	prevCased := false
	for _, r := range s {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			if prevCased {
				return false
			}
			cased = true
			prevCased = true
		case unicode.IsLower(r):
			if !prevCased {
				return false
			}
			cased = true
		default:
			prevCased = false
		}
	}
	return cased
}
