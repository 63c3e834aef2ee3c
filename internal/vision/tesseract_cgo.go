//go:build tesseract

package vision

import (
	"context"
	"log/slog"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/musmankhan/cnic-ocr/constants"
	"github.com/musmankhan/cnic-ocr/internal/common"
)

// TesseractProvider runs OCR locally through libtesseract. Built only with
// the tesseract build tag because gosseract needs cgo and the native library.
type TesseractProvider struct {
	lang   string
	logger *slog.Logger
}

// NewTesseractProvider creates a local tesseract-backed text provider.
// lang follows tesseract conventions, e.g. "eng+urd".
func NewTesseractProvider(lang string, logger *slog.Logger) (*TesseractProvider, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if lang == "" {
		lang = "eng+urd"
	}
	return &TesseractProvider{lang: lang, logger: logger}, nil
}

func (p *TesseractProvider) Engine() string { return constants.EngineTesseract }

// ExtractText runs a fresh client per call; gosseract clients are not safe
// for concurrent use.
func (p *TesseractProvider) ExtractText(ctx context.Context, image []byte, _ string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	client := gosseract.NewClient()
	defer func() {
		if err := client.Close(); err != nil {
			p.logger.Warn("vision.tesseract.close_error", "error", err)
		}
	}()

	if err := client.SetLanguage(strings.Split(p.lang, "+")...); err != nil {
		return Result{}, common.WrapError(err, "set tesseract language")
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return Result{}, common.WrapError(err, "load image")
	}

	text, err := client.Text()
	if err != nil {
		return Result{}, common.WrapError(err, "run tesseract")
	}
	text = strings.TrimSpace(text)
	p.logger.Info("vision.tesseract.ok", "lang", p.lang, "chars", len(text))

	return Result{Text: text, Blocks: blocksFromText(text), Engine: p.Engine()}, nil
}
