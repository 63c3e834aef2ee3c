//go:build !tesseract

package vision

import (
	"log/slog"

	"github.com/musmankhan/cnic-ocr/internal/common"
)

// NewTesseractProvider is unavailable without the tesseract build tag, which
// pulls in gosseract and its cgo dependency on libtesseract.
func NewTesseractProvider(_ string, _ *slog.Logger) (TextProvider, error) {
	return nil, common.NewAppError("ENGINE_UNAVAILABLE",
		"tesseract engine requires building with -tags tesseract", common.ErrInvalidInput)
}
