package parser

import (
	"regexp"
	"strings"
)

// Label-anchored capture patterns. RE2 has no lookahead, so every pattern
// consumes its terminator instead; that is safe because each field is matched
// against the full text independently.

// nameStop terminates a captured name run at the next expected label, a
// digit, a line break, or end of text.
const nameStop = `(?:\s*(?:(?:Father|S/O|D/O|W/O|Gender|Date|DOB|DOI|DOE|CNIC|Identity|Country|Husband)\b|والد|جنس|تاریخ)|\s*[\d\n]|\s*$)`

var (
	identityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:\b(?:identity\s*number|cnic|nic|id)\b|شناختی\s*کارڈ\s*نمبر)\s*[:#.]?\s*(\d[\d\s-]{11,20}\d)`),
		regexp.MustCompile(`\b(\d{5}\s*-\s*\d{7}\s*-\s*\d)\b`),
		regexp.MustCompile(`\b(\d{13})\b`),
	}

	namePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bname\s*[:.]?\s*([A-Za-z][A-Za-z ]*?)` + nameStop),
		regexp.MustCompile(`نام\s*[:.]?\s*([A-Za-z][A-Za-z ]*?)` + nameStop),
	}

	fatherPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bfather(?:'s)?\s*name\s*[:.]?\s*([A-Za-z][A-Za-z ]*?)` + nameStop),
		regexp.MustCompile(`(?i)\bfather\s*[:.]?\s*([A-Za-z][A-Za-z ]*?)` + nameStop),
		regexp.MustCompile(`(?i)\b(?:S/O|D/O|W/O|son\s+of|daughter\s+of|wife\s+of)\s*[:.]?\s*([A-Za-z][A-Za-z ]*?)` + nameStop),
		regexp.MustCompile(`والد(?:\s*کا\s*نام)?\s*[:.]?\s*([A-Za-z][A-Za-z ]*?)` + nameStop),
	}

	genderPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:gender|sex|جنس)\s*[:.]?\s*\b(female|male|f|m)\b`),
		regexp.MustCompile(`(?i)\b(female|male)\b`),
		// Bare initials are uppercase only; a lowercase standalone m/f is
		// far more likely OCR noise than a gender marker.
		regexp.MustCompile(`\b([MF])\b`),
	}

	countryPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)country(?:\s*of\s*stay)?\s*[:.]?\s+([A-Za-z][A-Za-z ]*?)(?:\s*[\d\n]|\s*$|\s*(?:Identity|Name|Gender|Date)\b)`),
	}

	rePakistan = regexp.MustCompile(`(?i)pakistan|پاکستان`)

	// dateToken matches D[D] sep M[M] sep YYYY with ., / or - separators.
	dateToken = `(\d{1,2}[./-]\d{1,2}[./-]\d{4})`

	birthPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:\b(?:date\s*of\s*birth|birth|born|dob)\b|تاریخ\s*پیدائش)\D{0,10}` + dateToken),
	}
	issuePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:\b(?:date\s*of\s*issue|issued?|doi)\b|تاریخ\s*اجرا)\D{0,10}` + dateToken),
	}
	expiryPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:\b(?:date\s*of\s*expiry|expir[ey]s?|valid\s*until|doe)\b|تاریخ\s*انقضا)\D{0,10}` + dateToken),
	}

	reDigits = regexp.MustCompile(`\d`)
)

// boilerplateTerms mark captures that swallowed a card header instead of a
// person's name.
var boilerplateTerms = []string{
	"PAKISTAN", "IDENTITY", "CARD", "REPUBLIC",
	"GOVERNMENT", "NATIONAL", "COMPUTERIZED",
}

func containsBoilerplate(s string) bool {
	up := strings.ToUpper(s)
	for _, term := range boilerplateTerms {
		if strings.Contains(up, term) {
			return true
		}
	}
	return false
}

// extractByPatterns applies the ordered regex candidates per field. Per field,
// the first pattern whose capture passes sanity wins and the rest are skipped;
// fields already filled are never revisited.
func extractByPatterns(ec *extraction, text string) {
	flat := flatten(text)

	if !ec.has(FieldIdentityNumber) {
		for _, re := range identityPatterns {
			m := re.FindStringSubmatch(flat)
			if m == nil {
				continue
			}
			digits := strings.Join(reDigits.FindAllString(m[1], -1), "")
			if len(digits) != cnicDigits {
				continue
			}
			ec.setIfEmpty(FieldIdentityNumber, FormatIdentityNumber(digits))
			break
		}
	}

	for _, fp := range []struct {
		field    string
		patterns []*regexp.Regexp
	}{
		{FieldName, namePatterns},
		{FieldFatherName, fatherPatterns},
	} {
		if ec.has(fp.field) {
			continue
		}
		for _, re := range fp.patterns {
			m := re.FindStringSubmatch(flat)
			if m == nil {
				continue
			}
			candidate := strings.TrimSpace(m[1])
			if containsBoilerplate(candidate) || len(candidate) < 2 || len(candidate) > 50 {
				continue
			}
			ec.setIfEmpty(fp.field, candidate)
			break
		}
	}

	if !ec.has(FieldGender) {
		for _, re := range genderPatterns {
			m := re.FindStringSubmatch(flat)
			if m == nil {
				continue
			}
			ec.setIfEmpty(FieldGender, normalizeGender(m[1]))
			break
		}
	}

	if !ec.has(FieldCountryOfStay) {
		matched := false
		for _, re := range countryPatterns {
			m := re.FindStringSubmatch(flat)
			if m == nil {
				continue
			}
			candidate := strings.TrimSpace(m[1])
			if len(candidate) >= 2 && !containsBoilerplate(candidate) {
				ec.setIfEmpty(FieldCountryOfStay, candidate)
				matched = true
				break
			}
		}
		if !matched && rePakistan.MatchString(text) {
			ec.setIfEmpty(FieldCountryOfStay, "Pakistan")
		}
	}

	for _, fp := range []struct {
		field    string
		patterns []*regexp.Regexp
	}{
		{FieldDateOfBirth, birthPatterns},
		{FieldDateOfIssue, issuePatterns},
		{FieldDateOfExpiry, expiryPatterns},
	} {
		if ec.has(fp.field) {
			continue
		}
		for _, re := range fp.patterns {
			if m := re.FindStringSubmatch(flat); m != nil {
				ec.setIfEmpty(fp.field, m[1])
				break
			}
		}
	}
}

func normalizeGender(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "male":
		return "Male"
	case "f", "female":
		return "Female"
	}
	return ""
}
