package parser

import "math"

// unscoredFields are excluded from the completeness score by policy. The
// legacy signature-presence flag is never counted even if an upstream caller
// reintroduces it.
var unscoredFields = map[string]struct{}{
	"signature_present": {},
}

// scoreExtraction computes extraction completeness on a 0..100 scale,
// rounded to two decimals: filled non-empty fields over total scored fields.
func scoreExtraction(ec *extraction) (score float64, filled, total int) {
	for _, field := range fieldOrder {
		if _, skip := unscoredFields[field]; skip {
			continue
		}
		total++
		if ec.has(field) {
			filled++
		}
	}
	if total == 0 {
		return 0, 0, 0
	}
	score = math.Round(100*float64(filled)/float64(total)*100) / 100
	return score, filled, total
}
