package strategy

import (
	"encoding/json"
	"strings"

	"thumbsmith/internal/domain"
)

func parseStrategyPayload(raw string) (*domain.StrategyDocument, error) {
	cleaned := extractJSONFragment(raw)
	if cleaned == "" {
		return nil, &domain.ProviderError{Message: "empty strategy payload"}
	}
	var doc domain.StrategyDocument
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		return nil, &domain.ProviderError{Message: "strategy payload is not valid JSON: " + err.Error()}
	}
	return &doc, nil
}

// extractJSONFragment tolerates providers that wrap their JSON in code fences
// or prose despite being asked for a bare document.
func extractJSONFragment(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	text = trimCodeFence(text)
	start := strings.IndexAny(text, "{[")
	end := strings.LastIndexAny(text, "]}")
	if start >= 0 && end >= start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}

func trimCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```JSON")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
