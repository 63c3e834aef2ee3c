package parser

// Extract runs the full pipeline over raw OCR text and the provider's
// optional block segmentation: normalize, then the four strategies in order,
// then cleanup and scoring. It never fails; unparseable input just leaves
// fields null. Pure and stateless, so concurrent callers need no locking.
func Extract(text string, blocks []string) Result {
	in := RawInput{Text: Normalize(text), Blocks: blocks}

	ec := newExtraction()
	extractByPatterns(ec, in.Text)
	extractByPosition(ec, in.Blocks)
	extractByContext(ec, in.Text)
	extractByFallback(ec, in.Text)
	cleanup(ec)

	score, filled, total := scoreExtraction(ec)
	return Result{
		Record:     ec.record(),
		Confidence: score,
		Filled:     filled,
		Total:      total,
	}
}
