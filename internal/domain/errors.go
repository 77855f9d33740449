package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("title and niche are required")
	ErrBusy       = errors.New("a generation is already in progress")
	ErrNoStrategy = errors.New("no strategy available to render")
)

// ProviderError reports a failed reasoning-provider exchange: a transport
// failure, a non-2xx API status, or a response that did not parse as the
// requested shape. The provider's own message is carried verbatim.
type ProviderError struct {
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("provider status %d: %s", e.Status, e.Message)
	}
	return "provider: " + e.Message
}

// RenderKind discriminates the ways the image provider can fail to produce a
// usable image.
type RenderKind string

const (
	// RenderEmpty means the response carried no content parts at all,
	// commonly a silent safety intervention upstream.
	RenderEmpty RenderKind = "empty_response"
	// RenderNoImagePayload means content parts came back but none carried
	// inline image data.
	RenderNoImagePayload RenderKind = "no_image_payload"
	// RenderSafetyBlocked means the provider explicitly reported a safety
	// violation.
	RenderSafetyBlocked RenderKind = "safety_blocked"
)

// RenderError reports that no image could be produced.
type RenderError struct {
	Kind    RenderKind
	Message string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %s", e.Kind, e.Message)
}

// Guidance returns the user-actionable text for each render failure kind.
func (e *RenderError) Guidance() string {
	switch e.Kind {
	case RenderSafetyBlocked:
		return "The image was blocked by a safety filter. Try a different concept or subject image."
	case RenderEmpty:
		return "The image provider returned an empty response. This is usually a safety intervention; try adjusting the concept."
	default:
		return "The image provider returned no image. Try rendering again."
	}
}

// IsSafetyBlocked reports whether err is a safety-blocked render failure.
func IsSafetyBlocked(err error) bool {
	var re *RenderError
	return errors.As(err, &re) && re.Kind == RenderSafetyBlocked
}
