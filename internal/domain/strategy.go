package domain

// StrategyDocument is the structured creative plan produced by the reasoning
// provider. Every nested field is optional in practice: the provider is asked
// for this exact schema but may still omit leaves, so consumers must default
// each read rather than trusting the shape.
type StrategyDocument struct {
	Concept            Concept            `json:"concept"`
	MainText           string             `json:"mainText"`
	VisualElements     VisualElements     `json:"visualElements"`
	ColorPalette       ColorPalette       `json:"colorPalette"`
	LayoutInstructions LayoutInstructions `json:"layoutInstructions"`
}

// Concept carries the core idea and the emotional hook of the thumbnail.
type Concept struct {
	Idea string `json:"idea"`
	Hook string `json:"hook"`
}

// VisualElements describes the subject and supporting scenery.
type VisualElements struct {
	Expression          string   `json:"expression"`
	Objects             []string `json:"objects"`
	DirectionalElements []string `json:"directionalElements"`
	BackgroundStyle     string   `json:"backgroundStyle"`
}

// ColorPalette holds CSS-style color expressions for the composition.
type ColorPalette struct {
	Primary    string `json:"primary"`
	Accent     string `json:"accent"`
	Text       string `json:"text"`
	Background string `json:"background"`
}

// LayoutInstructions positions text, subject, and directional cues.
type LayoutInstructions struct {
	TextPlacement    string   `json:"textPlacement"`
	SubjectPlacement string   `json:"subjectPlacement"`
	ArrowDirections  []string `json:"arrowDirections"`
	NegativeSpace    string   `json:"negativeSpace"`
}
