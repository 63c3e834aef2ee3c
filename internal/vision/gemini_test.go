package vision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGeminiProviderExtractText(t *testing.T) {
	var gotPath, gotKeyHeader, gotRawQuery string
	var gotBody geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKeyHeader = r.Header.Get("x-goog-api-key")
		gotRawQuery = r.URL.RawQuery
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		resp := map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"parts": []map[string]any{{"text": "Name: AISHA BIBI\nIdentity Number 12345-1234567-1"}},
				},
			}},
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	}))
	defer srv.Close()

	p := NewGeminiProvider("test-key", "gemini-1.5-flash", nil, WithGeminiBaseURL(srv.URL))
	res, err := p.ExtractText(context.Background(), []byte("fake-image"), "image/png")
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}

	if gotPath != "/models/gemini-1.5-flash:generateContent" {
		t.Errorf("path: got %q", gotPath)
	}
	if gotKeyHeader != "test-key" {
		t.Errorf("api key header: got %q", gotKeyHeader)
	}
	if strings.Contains(gotRawQuery, "test-key") {
		t.Errorf("api key leaked into query string: %q", gotRawQuery)
	}
	if len(gotBody.Contents) != 1 || len(gotBody.Contents[0].Parts) != 2 {
		t.Fatalf("request shape: %+v", gotBody)
	}
	if gotBody.Contents[0].Parts[1].InlineData.MimeType != "image/png" {
		t.Errorf("mime type: got %q", gotBody.Contents[0].Parts[1].InlineData.MimeType)
	}
	if !strings.Contains(res.Text, "AISHA BIBI") {
		t.Errorf("text: got %q", res.Text)
	}
	if res.Blocks != nil {
		t.Errorf("gemini should not produce blocks, got %v", res.Blocks)
	}
	if res.Engine != "gemini" {
		t.Errorf("engine: got %q", res.Engine)
	}
}

func TestGeminiProviderUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":429,"message":"quota"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewGeminiProvider("test-key", "", nil, WithGeminiBaseURL(srv.URL))
	if _, err := p.ExtractText(context.Background(), []byte("img"), "image/jpeg"); err == nil {
		t.Fatal("expected error on 429 response")
	}
}

func TestGeminiProviderNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider("test-key", "", nil, WithGeminiBaseURL(srv.URL))
	if _, err := p.ExtractText(context.Background(), []byte("img"), "image/jpeg"); err == nil {
		t.Fatal("expected error on empty candidates")
	}
}
