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

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// geminiPrompt asks for a plain transcription so the parser sees the card
// text as printed, not a summary.
const geminiPrompt = "Extract all visible text from this identity card image. " +
	"Return the text exactly as printed, one line per printed line, " +
	"including both English and Urdu text. Do not translate or summarize."

// GeminiProvider reads text from images through the Gemini generateContent
// REST API. It returns the transcription as a single text body without block
// segmentation.
type GeminiProvider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// GeminiOption customises a GeminiProvider.
type GeminiOption func(*GeminiProvider)

// WithGeminiBaseURL overrides the API endpoint, mainly for tests.
func WithGeminiBaseURL(url string) GeminiOption {
	return func(p *GeminiProvider) { p.baseURL = strings.TrimRight(url, "/") }
}

// WithGeminiHTTPClient overrides the HTTP client.
func WithGeminiHTTPClient(c *http.Client) GeminiOption {
	return func(p *GeminiProvider) { p.client = c }
}

// NewGeminiProvider creates a Gemini-backed text provider.
func NewGeminiProvider(apiKey, model string, logger *slog.Logger, opts ...GeminiOption) *GeminiProvider {
	if logger == nil {
		logger = slog.Default()
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}
	p := &GeminiProvider{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultGeminiBaseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *GeminiProvider) Engine() string { return constants.EngineGemini }

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ExtractText sends the image inline and returns the model's transcription.
func (p *GeminiProvider) ExtractText(ctx context.Context, image []byte, mimeType string) (Result, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, p.model)
	body := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{Text: geminiPrompt},
				{InlineData: &geminiInlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(image),
				}},
			},
		}},
	}

	// The key travels as a header so SendJSON's request log never sees it.
	raw, status, err := SendJSON(ctx, p.client, url, body, map[string]string{"x-goog-api-key": p.apiKey}, p.logger)
	if err != nil {
		if status != 0 {
			return Result{}, common.NewAppError("VISION_ERROR",
				fmt.Sprintf("gemini returned status %d", status), common.ErrUnavailable)
		}
		return Result{}, common.WrapError(err, "gemini request")
	}

	var resp geminiResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return Result{}, common.WrapError(err, "decode gemini response")
	}
	if resp.Error != nil {
		return Result{}, common.NewAppError("VISION_ERROR", resp.Error.Message, common.ErrUnavailable)
	}
	if len(resp.Candidates) == 0 {
		return Result{}, common.NewAppError("VISION_EMPTY", "gemini returned no candidates", common.ErrUnavailable)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	text := strings.TrimSpace(sb.String())
	p.logger.Info("vision.gemini.ok", "model", p.model, "chars", len(text))

	return Result{Text: text, Engine: p.Engine()}, nil
}
