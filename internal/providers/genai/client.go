package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"thumbsmith/internal/domain"
	"thumbsmith/internal/infra"
)

// Options controls how the Gemini client is configured.
type Options struct {
	APIKey     string
	BaseURL    string
	TextModel  string
	ImageModel string
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// Client provides a lightweight facade over the Gemini generateContent API so
// that providers can focus on translating domain requests to API calls. Both
// pipeline stages go through the same endpoint; only the model and the
// generation config differ.
type Client struct {
	apiKey     string
	baseURL    string
	textModel  string
	imageModel string
	httpClient *http.Client
	logger     *infra.Logger
}

// Part is a single content part of a request or response: text, or an inline
// binary attachment carried as base64 with its declared media type.
type Part struct {
	Text       string `json:"text,omitempty"`
	InlineData *Blob  `json:"inlineData,omitempty"`
}

// Blob is an inline binary payload.
type Blob struct {
	MIMEType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"`
}

// Schema is the output-schema descriptor sent alongside JSON-mode requests.
// It mirrors the subset of the API's schema language this service needs.
type Schema struct {
	Type       string             `json:"type"`
	Properties map[string]*Schema `json:"properties,omitempty"`
	Items      *Schema            `json:"items,omitempty"`
	Required   []string           `json:"required,omitempty"`
}

// Schema type names understood by the API.
const (
	TypeObject = "OBJECT"
	TypeString = "STRING"
	TypeArray  = "ARRAY"
)

// GenerateOptions carries the per-call generation config.
type GenerateOptions struct {
	SystemInstruction  string
	Temperature        float64
	ResponseMIMEType   string
	ResponseSchema     *Schema
	ResponseModalities []string
	AspectRatio        string
}

// Candidate is one generated output, a list of content parts.
type Candidate struct {
	Parts        []Part
	FinishReason string
}

// Response is the decoded provider response.
type Response struct {
	Candidates []Candidate
}

// FirstText returns the first non-blank text part across all candidates, or
// the empty string when none exists.
func (r *Response) FirstText() string {
	for _, cand := range r.Candidates {
		for _, part := range cand.Parts {
			if strings.TrimSpace(part.Text) != "" {
				return part.Text
			}
		}
	}
	return ""
}

type geminiContent struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature        float64            `json:"temperature,omitempty"`
	CandidateCount     int                `json:"candidateCount,omitempty"`
	ResponseMimeType   string             `json:"responseMimeType,omitempty"`
	ResponseSchema     *Schema            `json:"responseSchema,omitempty"`
	ResponseModalities []string           `json:"responseModalities,omitempty"`
	ImageConfig        *geminiImageConfig `json:"imageConfig,omitempty"`
}

type geminiImageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
}

type geminiGenerateContentRequest struct {
	Contents          []geminiContent         `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason,omitempty"`
}

type geminiGenerateContentResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
		Status  string `json:"status,omitempty"`
	} `json:"error"`
}

// NewClient constructs a Gemini client with sane defaults. Callers may provide
// a nil HTTP client; a reusable one with sensible timeouts will be created.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, &domain.ProviderError{Message: "gemini api key is required"}
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 90 * time.Second}
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}

	textModel := strings.TrimSpace(opts.TextModel)
	if textModel == "" {
		textModel = "gemini-2.5-flash"
	}
	imageModel := strings.TrimSpace(opts.ImageModel)
	if imageModel == "" {
		imageModel = "gemini-2.5-flash-image"
	}

	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}

	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		textModel:  textModel,
		imageModel: imageModel,
		httpClient: client,
		logger:     logger,
	}, nil
}

// TextModel returns the configured reasoning model identifier.
func (c *Client) TextModel() string { return c.textModel }

// ImageModel returns the configured image model identifier.
func (c *Client) ImageModel() string { return c.imageModel }

// GenerateContent submits parts to the given model and returns the decoded
// candidates. Transport failures, non-2xx statuses, and undecodable bodies are
// all surfaced as *domain.ProviderError carrying the provider's message.
func (c *Client) GenerateContent(ctx context.Context, model string, parts []Part, opts GenerateOptions) (*Response, error) {
	payload := geminiGenerateContentRequest{
		Contents: []geminiContent{{Role: "user", Parts: parts}},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:        opts.Temperature,
			CandidateCount:     1,
			ResponseMimeType:   opts.ResponseMIMEType,
			ResponseSchema:     opts.ResponseSchema,
			ResponseModalities: opts.ResponseModalities,
		},
	}
	if opts.SystemInstruction != "" {
		payload.SystemInstruction = &geminiContent{Parts: []Part{{Text: opts.SystemInstruction}}}
	}
	if opts.AspectRatio != "" {
		payload.GenerationConfig.ImageConfig = &geminiImageConfig{AspectRatio: opts.AspectRatio}
	}

	var response geminiGenerateContentResponse
	if err := c.invoke(ctx, model, payload, &response); err != nil {
		return nil, err
	}

	out := &Response{Candidates: make([]Candidate, 0, len(response.Candidates))}
	for _, cand := range response.Candidates {
		out.Candidates = append(out.Candidates, Candidate{
			Parts:        cand.Content.Parts,
			FinishReason: cand.FinishReason,
		})
	}

	c.logger.Debug().
		Str("model", model).
		Int("candidates", len(out.Candidates)).
		Msg("genai: generateContent completed")

	return out, nil
}

func (c *Client) invoke(ctx context.Context, model string, payload any, out any) error {
	endpoint := c.baseURL + "/models/" + url.PathEscape(model) + ":generateContent"
	body, err := json.Marshal(payload)
	if err != nil {
		return &domain.ProviderError{Message: "marshal request: " + err.Error()}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return &domain.ProviderError{Message: "create request: " + err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.ProviderError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr geminiErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
			message := apiErr.Error.Message
			if apiErr.Error.Status != "" {
				message = apiErr.Error.Status + ": " + message
			}
			return &domain.ProviderError{Status: resp.StatusCode, Message: message}
		}
		data, _ := io.ReadAll(resp.Body)
		return &domain.ProviderError{Status: resp.StatusCode, Message: strings.TrimSpace(string(data))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.ProviderError{Message: "decode response: " + err.Error()}
	}
	return nil
}
