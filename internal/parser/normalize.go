package parser

import (
	"regexp"
	"strings"
)

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reTabs       = regexp.MustCompile(`[\t\f\v]+`)
	reMultiSpace = regexp.MustCompile(` {2,}`)
	reMultiBlank = regexp.MustCompile(`\n{3,}`)
)

// ocrCorrections maps known OCR misreads to their intended text. Targets do
// not overlap, so replacement order does not matter.
var ocrCorrections = map[string]string{
	"ldentity": "Identity",
	"Identlty": "Identity",
	"IdentIty": "Identity",
	"Fathcr":   "Father",
	"Falher":   "Father",
	"Fathor":   "Father",
	"Narne":    "Name",
	"Narme":    "Name",
	"Gendor":   "Gender",
	"Gencler":  "Gender",
	"S/o":      "S/O",
	"s/o":      "S/O",
	"D/o":      "D/O",
	"d/o":      "D/O",
	"W/o":      "W/O",
	"w/o":      "W/O",
	"PAKlSTAN": "PAKISTAN",
}

// Normalize collapses noisy whitespace and fixes common OCR misreads.
// Conservative: line breaks survive, since the context extractor works on
// lines. Empty input yields empty output.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	s = reCRLF.ReplaceAllString(s, "\n")
	s = reTabs.ReplaceAllString(s, " ")
	s = reMultiSpace.ReplaceAllString(s, " ")
	s = reMultiBlank.ReplaceAllString(s, "\n\n")
	for bad, good := range ocrCorrections {
		s = strings.ReplaceAll(s, bad, good)
	}
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// flatten joins the normalized text into a single line for whole-text regex
// matching.
func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// splitLines returns the non-empty trimmed lines of s.
func splitLines(s string) []string {
	raw := strings.Split(s, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
