package render

import (
	"context"
	"errors"
	"strings"

	"thumbsmith/internal/domain"
	"thumbsmith/internal/providers/genai"
)

// Renderer turns a strategy document into an embedded image payload via the
// image-generation provider.
type Renderer interface {
	Render(ctx context.Context, strategy domain.StrategyDocument, ratio domain.AspectRatio, refs []domain.ReferenceImage) (string, error)
}

// GeminiRenderer renders thumbnails through Gemini image generation.
type GeminiRenderer struct {
	client *genai.Client
}

// NewGeminiRenderer wires the renderer to a Gemini client.
func NewGeminiRenderer(client *genai.Client) *GeminiRenderer {
	return &GeminiRenderer{client: client}
}

// Render assembles the rendering prompt, attaches the reference images, and
// returns the first inline image of the response as a
// data:image/png;base64,... payload. A failed render never destroys the
// strategy; the caller keeps it and may retry.
func (r *GeminiRenderer) Render(ctx context.Context, strategy domain.StrategyDocument, ratio domain.AspectRatio, refs []domain.ReferenceImage) (string, error) {
	parts := []genai.Part{{Text: BuildRenderPrompt(strategy, ratio, len(refs) > 0)}}
	for _, img := range refs {
		if blob, ok := genai.BlobFromDataURI(img.Data, img.MimeType); ok {
			parts = append(parts, genai.Part{InlineData: &blob})
		}
	}

	resp, err := r.client.GenerateContent(ctx, r.client.ImageModel(), parts, genai.GenerateOptions{
		ResponseModalities: []string{"IMAGE"},
		AspectRatio:        string(ratio),
	})
	if err != nil {
		var pe *domain.ProviderError
		if errors.As(err, &pe) && isSafetyMessage(pe.Message) {
			return "", &domain.RenderError{Kind: domain.RenderSafetyBlocked, Message: pe.Message}
		}
		return "", err
	}

	return extractImagePayload(resp)
}

// extractImagePayload scans the candidates' content parts in order for the
// first inline image and encodes it as a data URI.
func extractImagePayload(resp *genai.Response) (string, error) {
	hasParts := false
	for _, cand := range resp.Candidates {
		if isSafetyFinish(cand.FinishReason) {
			return "", &domain.RenderError{Kind: domain.RenderSafetyBlocked, Message: "candidate finished with " + cand.FinishReason}
		}
		for _, part := range cand.Parts {
			hasParts = true
			if part.InlineData != nil && part.InlineData.Data != "" {
				return "data:image/png;base64," + part.InlineData.Data, nil
			}
		}
	}

	if !hasParts {
		return "", &domain.RenderError{Kind: domain.RenderEmpty, Message: "image provider returned no content parts"}
	}
	return "", &domain.RenderError{Kind: domain.RenderNoImagePayload, Message: "image provider returned no inline image data"}
}

func isSafetyFinish(reason string) bool {
	switch reason {
	case "SAFETY", "IMAGE_SAFETY", "PROHIBITED_CONTENT":
		return true
	default:
		return false
	}
}

func isSafetyMessage(message string) bool {
	upper := strings.ToUpper(message)
	return strings.Contains(upper, "SAFETY") || strings.Contains(upper, "PROHIBITED_CONTENT") || strings.Contains(upper, "BLOCKED")
}

var _ Renderer = (*GeminiRenderer)(nil)
