package parser

import (
	"regexp"
	"strings"
	"unicode"
)

var reDateToken = regexp.MustCompile(dateToken)

// nameStopwords disqualify tokens during the fallback name scan.
var nameStopwords = map[string]struct{}{
	"name": {}, "father": {}, "gender": {}, "country": {},
	"identity": {}, "date": {}, "issue": {}, "birth": {},
	"expiry": {}, "pakistan": {}, "card": {}, "national": {},
}

// extractByFallback fills whatever is still empty with last-resort
// heuristics: unlabelled dates are assigned positionally to the remaining
// date fields, and names are guessed from title-cased token runs.
func extractByFallback(ec *extraction, text string) {
	fallbackDates(ec, text)
	fallbackName(ec, text)
	fallbackFatherName(ec, text)
}

// fallbackDates collects every date-shaped token in first-occurrence order,
// deduplicates, and assigns them one per remaining empty date field in the
// fixed birth/issue/expiry order. No semantic ordering is checked.
func fallbackDates(ec *extraction, text string) {
	seen := make(map[string]struct{})
	var dates []string
	for _, d := range reDateToken.FindAllString(flatten(text), -1) {
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
	}

	i := 0
	for _, field := range dateFieldOrder {
		if i >= len(dates) {
			return
		}
		if ec.has(field) {
			continue
		}
		ec.setIfEmpty(field, dates[i])
		i++
	}
}

// isTitleCaseWord reports whether tok is a purely alphabetic token with an
// upper-case initial and lower-case remainder, longer than 2 runes.
func isTitleCaseWord(tok string) bool {
	runes := []rune(tok)
	if len(runes) <= 2 {
		return false
	}
	for i, r := range runes {
		if !unicode.IsLetter(r) {
			return false
		}
		if i == 0 && !unicode.IsUpper(r) {
			return false
		}
		if i > 0 && !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

func fallbackName(ec *extraction, text string) {
	if ec.has(FieldName) {
		return
	}
	var picked []string
	for _, tok := range strings.Fields(text) {
		if !isTitleCaseWord(tok) {
			continue
		}
		if _, stop := nameStopwords[strings.ToLower(tok)]; stop {
			continue
		}
		picked = append(picked, tok)
		if len(picked) == 3 {
			break
		}
	}
	if len(picked) > 0 {
		ec.setIfEmpty(FieldName, strings.Join(picked, " "))
	}
}

// fallbackFatherName guesses the father's name from the token run following
// the already-extracted name. Requires the name field to be set.
func fallbackFatherName(ec *extraction, text string) {
	if ec.has(FieldFatherName) || !ec.has(FieldName) {
		return
	}
	nameWords := strings.Fields(ec.get(FieldName))
	if len(nameWords) == 0 {
		return
	}
	tokens := strings.Fields(text)
	start := -1
	for i, tok := range tokens {
		if strings.EqualFold(tok, nameWords[0]) {
			start = i + len(nameWords)
			break
		}
	}
	if start < 0 || start >= len(tokens) {
		return
	}

	var picked []string
	for i := start; i < len(tokens) && i < start+5; i++ {
		tok := tokens[i]
		if !isTitleCaseWord(tok) {
			break
		}
		if _, stop := nameStopwords[strings.ToLower(tok)]; stop {
			break
		}
		picked = append(picked, tok)
		if len(picked) == 3 {
			break
		}
	}
	if len(picked) > 0 {
		ec.setIfEmpty(FieldFatherName, strings.Join(picked, " "))
	}
}
