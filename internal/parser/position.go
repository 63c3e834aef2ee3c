package parser

import "strings"

// Block label keywords, matched case-insensitively against each OCR block.
var (
	nameBlockKeywords   = []string{"name", "اسم", "holder"}
	fatherBlockKeywords = []string{"father", "والد", "s/o", "d/o"}
)

func blockHasKeyword(block string, keywords []string) bool {
	lower := strings.ToLower(block)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// extractByPosition walks the provider's block segmentation in order. A block
// holding both a label and a value yields the value directly; a label-only
// block promotes the immediately following block to candidate. Candidates
// must pass the shared name predicate. Contributes nothing when the provider
// sent no blocks.
func extractByPosition(ec *extraction, blocks []string) {
	if len(blocks) == 0 {
		return
	}
	for _, fp := range []struct {
		field    string
		keywords []string
	}{
		{FieldName, nameBlockKeywords},
		{FieldFatherName, fatherBlockKeywords},
	} {
		if ec.has(fp.field) {
			continue
		}
		for i, block := range blocks {
			if !blockHasKeyword(block, fp.keywords) {
				continue
			}
			if v := labelValueFromBlock(fp.field, block); v != "" {
				ec.setIfEmpty(fp.field, v)
				break
			}
			if i+1 < len(blocks) {
				next := strings.TrimSpace(blocks[i+1])
				if isLikelyName(next) {
					ec.setIfEmpty(fp.field, next)
					break
				}
			}
		}
	}
}

// labelTokens are captures that are really the tail of a compound label
// ("Father Name" alone must not yield "Name" as the value).
var labelTokens = map[string]struct{}{
	"name": {}, "father": {}, "father name": {}, "holder": {},
	"s/o": {}, "d/o": {}, "w/o": {},
}

// labelValueFromBlock extracts a same-block value via the field's
// label-anchored patterns, returning "" when the label stands alone.
func labelValueFromBlock(field, block string) string {
	patterns := namePatterns
	if field == FieldFatherName {
		patterns = fatherPatterns
	}
	for _, re := range patterns {
		m := re.FindStringSubmatch(flatten(block))
		if m == nil {
			continue
		}
		candidate := strings.TrimSpace(m[1])
		if _, label := labelTokens[strings.ToLower(candidate)]; label {
			continue
		}
		if isLikelyName(candidate) {
			return candidate
		}
	}
	return ""
}
