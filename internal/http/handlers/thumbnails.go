package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"thumbsmith/internal/domain"
	"thumbsmith/internal/middleware"
	"thumbsmith/internal/pipeline"
	"thumbsmith/pkg/zip"
)

// maxSubjectImages is caller-side policy: the pipeline tolerates any number
// of reference images, but the form offers at most three slots.
const maxSubjectImages = 3

type referenceImagePayload struct {
	Data     string `json:"data"`
	MimeType string `json:"mime_type"`
}

type generateRequest struct {
	Title              string                  `json:"title"`
	Niche              string                  `json:"niche"`
	Emotion            string                  `json:"emotion"`
	Ratio              string                  `json:"ratio"`
	SubjectDescription string                  `json:"subject_description"`
	SubjectImages      []referenceImagePayload `json:"subject_images"`
}

type generationResponse struct {
	Phase  pipeline.Phase           `json:"phase"`
	Error  string                   `json:"error,omitempty"`
	Result *domain.GenerationResult `json:"result,omitempty"`
}

// Generate runs the full pipeline for the caller's session.
func (a *App) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	images := req.SubjectImages
	if len(images) > maxSubjectImages {
		images = images[:maxSubjectImages]
	}
	refs := make([]domain.ReferenceImage, 0, len(images))
	for _, img := range images {
		if strings.TrimSpace(img.Data) == "" {
			continue
		}
		refs = append(refs, domain.ReferenceImage{Data: img.Data, MimeType: img.MimeType})
	}

	request := domain.StrategyRequest{
		Title:              strings.TrimSpace(req.Title),
		Niche:              strings.TrimSpace(req.Niche),
		Emotion:            domain.NormalizeEmotion(req.Emotion),
		Ratio:              domain.NormalizeAspectRatio(req.Ratio),
		SubjectDescription: strings.TrimSpace(req.SubjectDescription),
		SubjectImages:      refs,
	}

	pipe := a.Sessions.Get(middleware.SessionIDFromContext(r.Context()))
	result, err := pipe.Generate(r.Context(), request)
	if err != nil {
		a.pipelineError(w, err)
		return
	}
	a.json(w, http.StatusOK, generationResponse{Phase: pipeline.PhaseIdle, Result: result})
}

// Rerender re-invokes only the image renderer against the session's stored
// strategy.
func (a *App) Rerender(w http.ResponseWriter, r *http.Request) {
	pipe := a.Sessions.Get(middleware.SessionIDFromContext(r.Context()))
	result, err := pipe.Rerender(r.Context())
	if err != nil {
		a.pipelineError(w, err)
		return
	}
	a.json(w, http.StatusOK, generationResponse{Phase: pipeline.PhaseIdle, Result: result})
}

// Current reports the session's phase, last error, and result.
func (a *App) Current(w http.ResponseWriter, r *http.Request) {
	pipe := a.Sessions.Get(middleware.SessionIDFromContext(r.Context()))
	phase, result, lastErr := pipe.Snapshot()
	a.json(w, http.StatusOK, generationResponse{Phase: phase, Error: lastErr, Result: result})
}

// Image serves the rendered thumbnail as a downloadable PNG.
func (a *App) Image(w http.ResponseWriter, r *http.Request) {
	pipe := a.Sessions.Get(middleware.SessionIDFromContext(r.Context()))
	_, result, _ := pipe.Snapshot()
	data, ok := decodeImagePayload(result)
	if !ok {
		a.error(w, http.StatusNotFound, "not_found", "no rendered image for this session")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename=thumbnail.png`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Export bundles the strategy document and the rendered image into a zip.
func (a *App) Export(w http.ResponseWriter, r *http.Request) {
	pipe := a.Sessions.Get(middleware.SessionIDFromContext(r.Context()))
	_, result, _ := pipe.Snapshot()
	if result == nil {
		a.error(w, http.StatusNotFound, "not_found", "no result for this session")
		return
	}

	strategyJSON, err := json.MarshalIndent(result.Strategy, "", "  ")
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to encode strategy")
		return
	}
	assets := []zip.Asset{{Filename: "strategy.json", MIME: "application/json", Data: strategyJSON}}
	if data, ok := decodeImagePayload(result); ok {
		assets = append(assets, zip.Asset{Filename: "thumbnail.png", MIME: "image/png", Data: data})
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename=thumbnail-export.zip`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(zip.ArchiveAssets(assets))
}

func (a *App) pipelineError(w http.ResponseWriter, err error) {
	var renderErr *domain.RenderError
	var providerErr *domain.ProviderError

	switch {
	case errors.Is(err, domain.ErrValidation):
		a.error(w, http.StatusBadRequest, "validation", err.Error())
	case errors.Is(err, domain.ErrBusy):
		a.error(w, http.StatusConflict, "busy", err.Error())
	case errors.Is(err, domain.ErrNoStrategy):
		a.error(w, http.StatusNotFound, "no_strategy", err.Error())
	case errors.As(err, &renderErr):
		status := http.StatusBadGateway
		if renderErr.Kind == domain.RenderSafetyBlocked {
			status = http.StatusUnprocessableEntity
		}
		a.json(w, status, map[string]string{
			"error":    string(renderErr.Kind),
			"message":  renderErr.Message,
			"guidance": renderErr.Guidance(),
		})
	case errors.As(err, &providerErr):
		a.error(w, http.StatusBadGateway, "provider", providerErr.Message)
	default:
		a.Logger.Error().Err(err).Msg("handlers: unexpected pipeline failure")
		a.error(w, http.StatusInternalServerError, "internal", "generation failed")
	}
}

func decodeImagePayload(result *domain.GenerationResult) ([]byte, bool) {
	if result == nil || result.ImageURL == "" {
		return nil, false
	}
	payload := result.ImageURL
	if idx := strings.IndexByte(payload, ','); idx >= 0 {
		payload = payload[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}
