// Package processor wires the OCR provider, parser, history store and result
// cache into the single path a card image takes through the service.
package processor

import (
	"context"
	"log/slog"
	"time"

	"github.com/musmankhan/cnic-ocr/internal/cache"
	"github.com/musmankhan/cnic-ocr/internal/common"
	"github.com/musmankhan/cnic-ocr/internal/entity"
	"github.com/musmankhan/cnic-ocr/internal/parser"
	"github.com/musmankhan/cnic-ocr/internal/repository"
	"github.com/musmankhan/cnic-ocr/internal/vision"
)

// Output is the full result of processing one image.
type Output struct {
	Record     parser.Record `json:"record"`
	Confidence float64       `json:"confidence"`
	Filled     int           `json:"filled_fields"`
	Total      int           `json:"total_fields"`
	RawText    string        `json:"raw_text"`
	Engine     string        `json:"engine"`
	ImageHash  string        `json:"image_hash"`
	Cached     bool          `json:"cached"`
}

// Processor runs the extract pipeline. History and Cache are optional; a nil
// value disables that stage.
type Processor struct {
	Provider vision.TextProvider
	History  repository.ExtractionRepository
	Cache    *cache.ResultCache
	Logger   *slog.Logger
}

func NewProcessor(provider vision.TextProvider, history repository.ExtractionRepository, rc *cache.ResultCache, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Provider: provider, History: history, Cache: rc, Logger: logger}
}

// Process OCRs the image, parses the text into a record, validates it against
// the output contract, and records the result. History and cache failures are
// logged but do not fail the request.
func (p *Processor) Process(ctx context.Context, filename string, image []byte, mimeType string) (*Output, error) {
	start := time.Now()
	hash := cache.HashImage(image)

	if p.Cache != nil {
		var cached Output
		hit, err := p.Cache.Get(ctx, hash, &cached)
		if err != nil {
			p.Logger.Warn("processor.cache.get_error", "hash", hash, "error", err)
		} else if hit {
			p.Logger.Info("processor.cache.hit", "filename", filename, "hash", hash)
			cached.Cached = true
			return &cached, nil
		}
	}

	ocr, err := p.Provider.ExtractText(ctx, image, mimeType)
	if err != nil {
		p.Logger.Error("processor.ocr.error", "filename", filename, "engine", p.Provider.Engine(), "error", err)
		return nil, common.WrapError(err, "extract text")
	}
	p.Logger.Info("processor.ocr.ok",
		"filename", filename,
		"engine", ocr.Engine,
		"chars", len(ocr.Text),
		"blocks", len(ocr.Blocks),
	)

	res := parser.Extract(ocr.Text, ocr.Blocks)
	if err := ValidateRecord(res.Record); err != nil {
		p.Logger.Error("processor.schema.error", "filename", filename, "error", err)
		return nil, err
	}
	p.Logger.Info("processor.parse.ok",
		"filename", filename,
		"confidence", res.Confidence,
		"filled", res.Filled,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	out := &Output{
		Record:     res.Record,
		Confidence: res.Confidence,
		Filled:     res.Filled,
		Total:      res.Total,
		RawText:    ocr.Text,
		Engine:     ocr.Engine,
		ImageHash:  hash,
	}

	if p.History != nil {
		ex := &entity.Extraction{
			Filename:     filename,
			Engine:       out.Engine,
			ImageHash:    hash,
			RawText:      ocr.Text,
			Identity:     res.Record.IdentityNumber,
			Name:         res.Record.Name,
			FatherName:   res.Record.FatherName,
			Gender:       res.Record.Gender,
			Country:      res.Record.CountryOfStay,
			DateOfBirth:  res.Record.DateOfBirth,
			DateOfIssue:  res.Record.DateOfIssue,
			DateOfExpiry: res.Record.DateOfExpiry,
			Confidence:   res.Confidence,
			FilledFields: res.Filled,
		}
		if err := p.History.Save(ctx, ex); err != nil {
			p.Logger.Warn("processor.history.save_error", "filename", filename, "error", err)
		}
	}

	if p.Cache != nil {
		if err := p.Cache.Set(ctx, hash, out); err != nil {
			p.Logger.Warn("processor.cache.set_error", "hash", hash, "error", err)
		}
	}

	return out, nil
}
