package domain

import "strings"

// Emotion is the emotional hook the thumbnail should lead with.
type Emotion string

const (
	EmotionShock      Emotion = "shock"
	EmotionCuriosity  Emotion = "curiosity"
	EmotionExcitement Emotion = "excitement"
	EmotionFear       Emotion = "fear"
	EmotionUrgency    Emotion = "urgency"
)

// AspectRatio enumerates the supported output ratios.
type AspectRatio string

const (
	Ratio16x9 AspectRatio = "16:9"
	Ratio9x16 AspectRatio = "9:16"
	Ratio1x1  AspectRatio = "1:1"
	Ratio4x3  AspectRatio = "4:3"
)

// ReferenceImage is a user-supplied subject photo, carried as a
// self-describing data: URI plus its declared media type. Never mutated after
// capture.
type ReferenceImage struct {
	Data     string `json:"data"`
	MimeType string `json:"mime_type"`
}

// StrategyRequest describes what the user wants. Pure data; the HTTP layer is
// responsible for trimming SubjectImages to at most three, the rest of the
// pipeline tolerates any length.
type StrategyRequest struct {
	Title              string           `json:"title"`
	Niche              string           `json:"niche"`
	Emotion            Emotion          `json:"emotion"`
	Ratio              AspectRatio      `json:"ratio"`
	SubjectDescription string           `json:"subject_description,omitempty"`
	SubjectImages      []ReferenceImage `json:"subject_images,omitempty"`
}

// Validate checks the fields required before any provider call is issued.
func (r StrategyRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" || strings.TrimSpace(r.Niche) == "" {
		return ErrValidation
	}
	return nil
}

// NormalizeEmotion sanitizes free-form user input into a supported emotion.
func NormalizeEmotion(emotion string) Emotion {
	switch strings.ToLower(strings.TrimSpace(emotion)) {
	case string(EmotionShock):
		return EmotionShock
	case string(EmotionExcitement):
		return EmotionExcitement
	case string(EmotionFear):
		return EmotionFear
	case string(EmotionUrgency):
		return EmotionUrgency
	default:
		return EmotionCuriosity
	}
}

// NormalizeAspectRatio sanitizes free-form user input into a supported ratio.
func NormalizeAspectRatio(ratio string) AspectRatio {
	switch strings.TrimSpace(ratio) {
	case string(Ratio9x16):
		return Ratio9x16
	case string(Ratio1x1):
		return Ratio1x1
	case string(Ratio4x3):
		return Ratio4x3
	default:
		return Ratio16x9
	}
}
