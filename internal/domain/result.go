package domain

import "time"

// GenerationResult pairs the strategy with the rendered image. It is created
// when strategizing completes; ImageURL is attached or re-attached by later
// successful render calls, and the whole value is replaced when a new strategy
// is requested.
type GenerationResult struct {
	Strategy  StrategyDocument `json:"strategy"`
	ImageURL  string           `json:"image_url,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Clone returns a copy safe to hand to the HTTP layer while the pipeline may
// keep mutating its own copy.
func (r *GenerationResult) Clone() *GenerationResult {
	if r == nil {
		return nil
	}
	out := *r
	out.Strategy.VisualElements.Objects = append([]string(nil), r.Strategy.VisualElements.Objects...)
	out.Strategy.VisualElements.DirectionalElements = append([]string(nil), r.Strategy.VisualElements.DirectionalElements...)
	out.Strategy.LayoutInstructions.ArrowDirections = append([]string(nil), r.Strategy.LayoutInstructions.ArrowDirections...)
	return &out
}
