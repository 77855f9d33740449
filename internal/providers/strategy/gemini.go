package strategy

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"thumbsmith/internal/domain"
	"thumbsmith/internal/providers/genai"
)

// Synthesizer turns a strategy request into a creative strategy document via
// the reasoning provider.
type Synthesizer interface {
	Synthesize(ctx context.Context, req domain.StrategyRequest) (*domain.StrategyDocument, error)
}

// GeminiSynthesizer asks Gemini for a schema-constrained strategy document.
type GeminiSynthesizer struct {
	client *genai.Client
}

// NewGeminiSynthesizer wires the synthesizer to a Gemini client.
func NewGeminiSynthesizer(client *genai.Client) *GeminiSynthesizer {
	return &GeminiSynthesizer{client: client}
}

// Synthesize composes the designer instruction, attaches the reference images
// in order, and parses the JSON the provider returns. The document comes back
// verbatim; defaulting of absent leaves is deliberately left to consumers,
// because different consumers may want different defaults. Any failure,
// including unparseable output, surfaces as *domain.ProviderError; retrying is
// a caller decision.
func (s *GeminiSynthesizer) Synthesize(ctx context.Context, req domain.StrategyRequest) (*domain.StrategyDocument, error) {
	parts := []genai.Part{{Text: buildDesignInstruction(req)}}
	for _, img := range req.SubjectImages {
		if blob, ok := genai.BlobFromDataURI(img.Data, img.MimeType); ok {
			parts = append(parts, genai.Part{InlineData: &blob})
		}
	}

	resp, err := s.client.GenerateContent(ctx, s.client.TextModel(), parts, genai.GenerateOptions{
		Temperature:      0.7,
		ResponseMIMEType: "application/json",
		ResponseSchema:   strategySchema(),
	})
	if err != nil {
		return nil, err
	}

	text := resp.FirstText()
	if strings.TrimSpace(text) == "" {
		return nil, &domain.ProviderError{Message: "reasoning provider returned no text"}
	}
	return parseStrategyPayload(text)
}

func buildDesignInstruction(req domain.StrategyRequest) string {
	titleCaser := cases.Title(language.English)
	subject := strings.TrimSpace(req.SubjectDescription)
	if subject == "" {
		subject = "not specified"
	}

	sb := &strings.Builder{}
	fmt.Fprintf(sb, "You are an expert thumbnail designer for short-form video content. ")
	fmt.Fprintf(sb, "Design a high click-through visual concept for a %s thumbnail.\n\n", req.Ratio)
	fmt.Fprintf(sb, "Video title: %q\n", strings.TrimSpace(req.Title))
	fmt.Fprintf(sb, "Content niche: %s\n", strings.TrimSpace(req.Niche))
	fmt.Fprintf(sb, "Target emotion: %s\n", titleCaser.String(string(req.Emotion)))
	fmt.Fprintf(sb, "Subject description: %s\n", subject)
	sb.WriteString("\nComposition rules:\n")
	sb.WriteString("- One strong emotional focal point; never more than two focal points.\n")
	sb.WriteString("- Headline text of 3-6 words in capital letters.\n")
	sb.WriteString("- High color contrast between subject, text, and background.\n")
	fmt.Fprintf(sb, "- Respect the %s aspect ratio in all layout decisions.\n", req.Ratio)
	if n := len(req.SubjectImages); n > 0 {
		fmt.Fprintf(sb, "\n%d reference photo(s) of the subject are attached; base the subject's look on them.\n", n)
	} else {
		sb.WriteString("\nNo reference photos are attached.\n")
	}
	return sb.String()
}

// strategySchema constrains the response to the exact strategy document shape.
// This is the primary defense against malformed output, though not a complete
// one: the provider may still omit optional leaves.
func strategySchema() *genai.Schema {
	stringArray := func() *genai.Schema {
		return &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"concept": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"idea": {Type: genai.TypeString},
					"hook": {Type: genai.TypeString},
				},
			},
			"mainText": {Type: genai.TypeString},
			"visualElements": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"expression":          {Type: genai.TypeString},
					"objects":             stringArray(),
					"directionalElements": stringArray(),
					"backgroundStyle":     {Type: genai.TypeString},
				},
			},
			"colorPalette": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"primary":    {Type: genai.TypeString},
					"accent":     {Type: genai.TypeString},
					"text":       {Type: genai.TypeString},
					"background": {Type: genai.TypeString},
				},
			},
			"layoutInstructions": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"textPlacement":    {Type: genai.TypeString},
					"subjectPlacement": {Type: genai.TypeString},
					"arrowDirections":  stringArray(),
					"negativeSpace":    {Type: genai.TypeString},
				},
			},
		},
		Required: []string{"concept", "mainText", "visualElements", "colorPalette", "layoutInstructions"},
	}
}

var _ Synthesizer = (*GeminiSynthesizer)(nil)
