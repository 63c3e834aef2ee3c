package parser

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const cnicDigits = 13

var titleCaser = cases.Title(language.Und)

// FormatIdentityNumber renders a 13-digit string in the canonical
// DDDDD-DDDDDDD-D grouping. Input is assumed to be digits only.
func FormatIdentityNumber(digits string) string {
	if len(digits) != cnicDigits {
		return digits
	}
	return digits[:5] + "-" + digits[5:12] + "-" + digits[12:]
}

// fieldKeywords disqualify a candidate that is really a label fragment.
var fieldKeywords = []string{"date", "birth", "issue", "expiry", "gender", "country"}

// isLikelyName is the shared validity predicate used by the position and
// context extractors and re-run during cleanup: non-empty, at least 2 runes,
// free of boilerplate and label keywords, not numeric, and at least 70%
// alphabetic.
func isLikelyName(s string) bool {
	s = strings.TrimSpace(s)
	if len([]rune(s)) < 2 {
		return false
	}
	if containsBoilerplate(s) {
		return false
	}
	lower := strings.ToLower(s)
	for _, kw := range fieldKeywords {
		if strings.Contains(lower, kw) {
			return false
		}
	}
	var letters, digits, total int
	for _, r := range s {
		total++
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsDigit(r):
			digits++
		}
	}
	if letters == 0 || digits == total {
		return false
	}
	return float64(letters) >= 0.7*float64(total)
}

// formatName collapses inner whitespace and title-cases each word.
func formatName(s string) string {
	return titleCaser.String(strings.ToLower(strings.Join(strings.Fields(s), " ")))
}

// canonicalValue puts a raw candidate into the form the record stores.
func canonicalValue(field, v string) string {
	v = strings.Join(strings.Fields(v), " ")
	switch field {
	case FieldName, FieldFatherName:
		return formatName(v)
	}
	return v
}

// cleanup is the final validation pass: implausible values are nulled out
// silently, present values are never rewritten.
func cleanup(ec *extraction) {
	for _, field := range fieldOrder {
		v := strings.TrimSpace(ec.get(field))
		if v == "" {
			ec.clear(field)
			continue
		}
		if n := len([]rune(v)); n < 2 || n > 50 {
			ec.clear(field)
			continue
		}
		switch field {
		case FieldIdentityNumber:
			digits := strings.Join(reDigits.FindAllString(v, -1), "")
			if len(digits) != cnicDigits || FormatIdentityNumber(digits) != v {
				ec.clear(field)
			}
		case FieldName, FieldFatherName:
			if !isLikelyName(v) {
				ec.clear(field)
			}
		}
	}
}
