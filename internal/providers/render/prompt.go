package render

import (
	"fmt"
	"strings"

	"thumbsmith/internal/domain"
)

// Defaults substituted when the strategy document omits a leaf. The reasoning
// provider is asked for the full schema but is not trusted to honor it.
const (
	defaultTextPlacement   = "center"
	defaultPrimaryColor    = "red"
	defaultAccentColor     = "yellow"
	defaultDirectionalCues = "arrows"
	defaultBackgroundStyle = "vibrant gradient"
)

const qualityModifiers = "Ultra-detailed, professional digital art, trending thumbnail style, 8k quality, sharp focus, dramatic lighting."

// BuildRenderPrompt converts the strategy document into a natural language
// instruction for the image model. Every nested read is defaulted here; this
// is the normalization step deliberately deferred from the synthesizer.
func BuildRenderPrompt(s domain.StrategyDocument, ratio domain.AspectRatio, hasReferences bool) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("Create a %s viral social thumbnail, high click-through style.", ratio))

	if expression := strings.TrimSpace(s.VisualElements.Expression); expression != "" {
		lines = append(lines, fmt.Sprintf("The subject shows a %s expression.", expression))
	}
	if idea := strings.TrimSpace(s.Concept.Idea); idea != "" {
		lines = append(lines, "Core visual idea: "+idea+".")
	}

	lines = append(lines, "Props in the scene: "+joinOrNone(s.VisualElements.Objects)+".")

	placement := withDefault(s.LayoutInstructions.TextPlacement, defaultTextPlacement)
	if text := strings.TrimSpace(s.MainText); text != "" {
		lines = append(lines, fmt.Sprintf("Giant bold 3D-style text reading %q placed at the %s.", text, placement))
	}

	primary := withDefault(s.ColorPalette.Primary, defaultPrimaryColor)
	accent := withDefault(s.ColorPalette.Accent, defaultAccentColor)
	lines = append(lines, fmt.Sprintf("High-contrast aesthetic dominated by %s and %s.", primary, accent))

	cues := defaultDirectionalCues
	if joined := joinNonEmpty(s.VisualElements.DirectionalElements); joined != "" {
		cues = joined
	}
	lines = append(lines, "Glow and outline effects with directional cues: "+cues+".")

	lines = append(lines, "Background: "+withDefault(s.VisualElements.BackgroundStyle, defaultBackgroundStyle)+".")
	lines = append(lines, qualityModifiers)

	if hasReferences {
		lines = append(lines, "Depict the person from the attached reference photo(s) faithfully, preserving their likeness.")
	}

	return strings.Join(lines, "\n")
}

// joinOrNone coerces a possibly-absent list to prompt text, using the literal
// "none" for an empty props list.
func joinOrNone(items []string) string {
	if joined := joinNonEmpty(items); joined != "" {
		return joined
	}
	return "none"
}

func joinNonEmpty(items []string) string {
	var kept []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			kept = append(kept, item)
		}
	}
	return strings.Join(kept, ", ")
}

func withDefault(value, fallback string) string {
	if value = strings.TrimSpace(value); value != "" {
		return value
	}
	return fallback
}
