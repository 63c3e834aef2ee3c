package vision

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/musmankhan/cnic-ocr/constants"
	"github.com/musmankhan/cnic-ocr/internal/common"
)

const defaultVisionBaseURL = "https://vision.googleapis.com/v1"

// GoogleVisionProvider reads text from images through the Cloud Vision
// images:annotate REST API. Unlike Gemini it also yields a block
// segmentation, taken from the annotation's line structure.
type GoogleVisionProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// GoogleVisionOption customises a GoogleVisionProvider.
type GoogleVisionOption func(*GoogleVisionProvider)

// WithVisionBaseURL overrides the API endpoint, mainly for tests.
func WithVisionBaseURL(url string) GoogleVisionOption {
	return func(p *GoogleVisionProvider) { p.baseURL = strings.TrimRight(url, "/") }
}

// WithVisionHTTPClient overrides the HTTP client.
func WithVisionHTTPClient(c *http.Client) GoogleVisionOption {
	return func(p *GoogleVisionProvider) { p.client = c }
}

// NewGoogleVisionProvider creates a Cloud Vision backed text provider.
func NewGoogleVisionProvider(apiKey string, logger *slog.Logger, opts ...GoogleVisionOption) *GoogleVisionProvider {
	if logger == nil {
		logger = slog.Default()
	}
	p := &GoogleVisionProvider{
		apiKey:  apiKey,
		baseURL: defaultVisionBaseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *GoogleVisionProvider) Engine() string { return constants.EngineGoogleVision }

type visionRequest struct {
	Requests []visionAnnotateRequest `json:"requests"`
}

type visionAnnotateRequest struct {
	Image    visionImage     `json:"image"`
	Features []visionFeature `json:"features"`
}

type visionImage struct {
	Content string `json:"content"`
}

type visionFeature struct {
	Type string `json:"type"`
}

type visionResponse struct {
	Responses []struct {
		FullTextAnnotation *struct {
			Text string `json:"text"`
		} `json:"fullTextAnnotation"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	} `json:"responses"`
}

// ExtractText annotates the image and returns the full text plus per-line
// blocks for the position strategy.
func (p *GoogleVisionProvider) ExtractText(ctx context.Context, image []byte, _ string) (Result, error) {
	url := p.baseURL + "/images:annotate"
	body := visionRequest{
		Requests: []visionAnnotateRequest{{
			Image:    visionImage{Content: base64.StdEncoding.EncodeToString(image)},
			Features: []visionFeature{{Type: "DOCUMENT_TEXT_DETECTION"}},
		}},
	}

	// The key travels as a header so SendJSON's request log never sees it.
	raw, status, err := SendJSON(ctx, p.client, url, body, map[string]string{"x-goog-api-key": p.apiKey}, p.logger)
	if err != nil {
		if status != 0 {
			return Result{}, common.NewAppError("VISION_ERROR",
				fmt.Sprintf("vision api returned status %d", status), common.ErrUnavailable)
		}
		return Result{}, common.WrapError(err, "vision api request")
	}

	var resp visionResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return Result{}, common.WrapError(err, "decode vision response")
	}
	if len(resp.Responses) == 0 {
		return Result{}, common.NewAppError("VISION_EMPTY", "vision api returned no responses", common.ErrUnavailable)
	}
	first := resp.Responses[0]
	if first.Error != nil {
		return Result{}, common.NewAppError("VISION_ERROR", first.Error.Message, common.ErrUnavailable)
	}
	if first.FullTextAnnotation == nil {
		p.logger.Info("vision.annotate.no_text")
		return Result{Engine: p.Engine()}, nil
	}

	text := strings.TrimSpace(first.FullTextAnnotation.Text)
	blocks := blocksFromText(text)
	p.logger.Info("vision.annotate.ok", "chars", len(text), "blocks", len(blocks))

	return Result{Text: text, Blocks: blocks, Engine: p.Engine()}, nil
}

// blocksFromText treats each non-empty annotation line as one block.
func blocksFromText(text string) []string {
	var blocks []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			blocks = append(blocks, line)
		}
	}
	return blocks
}
