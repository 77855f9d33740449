package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"thumbsmith/internal/domain"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func newTestClient(t *testing.T, rt roundTripFunc) *Client {
	t.Helper()
	client, err := NewClient(Options{
		APIKey:     "test-key",
		HTTPClient: &http.Client{Transport: rt},
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(Options{APIKey: "   "})
	var pe *domain.ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("NewClient() error = %v, want *domain.ProviderError", err)
	}
}

func TestNewClientDefaults(t *testing.T) {
	client := newTestClient(t, nil)
	if client.TextModel() != "gemini-2.5-flash" {
		t.Errorf("TextModel() = %q", client.TextModel())
	}
	if client.ImageModel() != "gemini-2.5-flash-image" {
		t.Errorf("ImageModel() = %q", client.ImageModel())
	}
}

func TestGenerateContentRequestShape(t *testing.T) {
	var captured *http.Request
	var body []byte
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		captured = r
		body, _ = io.ReadAll(r.Body)
		return jsonResponse(http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`), nil
	})

	schema := &Schema{Type: TypeObject, Properties: map[string]*Schema{"idea": {Type: TypeString}}}
	resp, err := client.GenerateContent(context.Background(), client.TextModel(), []Part{{Text: "hello"}}, GenerateOptions{
		Temperature:      0.7,
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
		AspectRatio:      "16:9",
	})
	if err != nil {
		t.Fatalf("GenerateContent() error = %v", err)
	}
	if got := resp.FirstText(); got != "ok" {
		t.Fatalf("FirstText() = %q", got)
	}

	if captured.Header.Get("x-goog-api-key") != "test-key" {
		t.Error("api key header not set")
	}
	if !strings.Contains(captured.URL.Path, "gemini-2.5-flash:generateContent") {
		t.Errorf("unexpected path %q", captured.URL.Path)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("request body is not JSON: %v", err)
	}
	config := string(payload["generationConfig"])
	for _, want := range []string{`"responseMimeType":"application/json"`, `"responseSchema"`, `"OBJECT"`, `"aspectRatio":"16:9"`, `"temperature":0.7`} {
		if !strings.Contains(config, want) {
			t.Errorf("generationConfig missing %s: %s", want, config)
		}
	}
}

func TestGenerateContentInlineParts(t *testing.T) {
	var body []byte
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		body, _ = io.ReadAll(r.Body)
		return jsonResponse(http.StatusOK, `{"candidates":[]}`), nil
	})

	parts := []Part{
		{Text: "prompt"},
		{InlineData: &Blob{MIMEType: "image/jpeg", Data: "aGVsbG8="}},
	}
	if _, err := client.GenerateContent(context.Background(), client.ImageModel(), parts, GenerateOptions{}); err != nil {
		t.Fatalf("GenerateContent() error = %v", err)
	}
	if !bytes.Contains(body, []byte(`"inlineData":{"mimeType":"image/jpeg","data":"aGVsbG8="}`)) {
		t.Errorf("inline data missing from request body: %s", body)
	}
}

func TestGenerateContentAPIError(t *testing.T) {
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusTooManyRequests, `{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`), nil
	})

	_, err := client.GenerateContent(context.Background(), client.TextModel(), []Part{{Text: "x"}}, GenerateOptions{})
	var pe *domain.ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *domain.ProviderError", err)
	}
	if pe.Status != http.StatusTooManyRequests {
		t.Errorf("Status = %d", pe.Status)
	}
	if !strings.Contains(pe.Message, "quota exceeded") || !strings.Contains(pe.Message, "RESOURCE_EXHAUSTED") {
		t.Errorf("Message = %q, want provider text carried verbatim", pe.Message)
	}
}

func TestGenerateContentTransportError(t *testing.T) {
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("connection reset")
	})

	_, err := client.GenerateContent(context.Background(), client.TextModel(), []Part{{Text: "x"}}, GenerateOptions{})
	var pe *domain.ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *domain.ProviderError", err)
	}
	if !strings.Contains(pe.Message, "connection reset") {
		t.Errorf("Message = %q", pe.Message)
	}
}

func TestFirstTextSkipsBlankParts(t *testing.T) {
	resp := &Response{Candidates: []Candidate{
		{Parts: []Part{{Text: "   "}, {InlineData: &Blob{Data: "x"}}}},
		{Parts: []Part{{Text: "found"}}},
	}}
	if got := resp.FirstText(); got != "found" {
		t.Fatalf("FirstText() = %q", got)
	}

	empty := &Response{}
	if got := empty.FirstText(); got != "" {
		t.Fatalf("FirstText() on empty = %q", got)
	}
}
