package parser

import "strings"

// extractByContext scans the normalized text line by line. A line mentioning
// "name" (but not "father") feeds the name field, either from the same line
// via a label pattern or from the next line when it looks like a person's
// name. Lines mentioning "father" feed the father's-name field the same way.
// First success per field wins.
func extractByContext(ec *extraction, text string) {
	lines := splitLines(text)
	for i, line := range lines {
		lower := strings.ToLower(line)

		if !ec.has(FieldName) && strings.Contains(lower, "name") && !strings.Contains(lower, "father") {
			if v := labelValueFromBlock(FieldName, line); v != "" {
				ec.setIfEmpty(FieldName, v)
			} else if i+1 < len(lines) && isLikelyName(lines[i+1]) {
				ec.setIfEmpty(FieldName, lines[i+1])
			}
		}

		if !ec.has(FieldFatherName) && strings.Contains(lower, "father") {
			if v := labelValueFromBlock(FieldFatherName, line); v != "" {
				ec.setIfEmpty(FieldFatherName, v)
			} else if i+1 < len(lines) && isLikelyName(lines[i+1]) {
				ec.setIfEmpty(FieldFatherName, lines[i+1])
			}
		}

		if ec.has(FieldName) && ec.has(FieldFatherName) {
			return
		}
	}
}
