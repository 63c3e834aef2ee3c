package vision

import "context"

// Result is the raw OCR output for one image.
type Result struct {
	Text   string   `json:"text"`
	Blocks []string `json:"blocks,omitempty"`
	Engine string   `json:"engine"`
}

// TextProvider is the interface the pipeline depends on. Implementations turn
// image bytes into raw text plus an optional block segmentation.
type TextProvider interface {
	ExtractText(ctx context.Context, image []byte, mimeType string) (Result, error)
	Engine() string
}
