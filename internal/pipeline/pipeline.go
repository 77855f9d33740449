package pipeline

import (
	"context"
	"sync"
	"time"

	"thumbsmith/internal/domain"
	"thumbsmith/internal/infra"
	"thumbsmith/internal/providers/render"
	"thumbsmith/internal/providers/strategy"
)

// Phase is the orchestrator's current position in the two-stage pipeline.
type Phase string

const (
	PhaseIdle         Phase = "idle"
	PhaseStrategizing Phase = "strategizing"
	PhaseRendering    Phase = "rendering"
)

// Pipeline sequences the strategy synthesizer and the image renderer for one
// session. It owns the current phase, the current result, and the error side
// channel; exactly one generation may be in flight at a time and a concurrent
// Generate is rejected deterministically with domain.ErrBusy. In-flight
// provider calls are never cancelled by the pipeline itself; they run to
// completion or failure.
type Pipeline struct {
	strategist strategy.Synthesizer
	renderer   render.Renderer
	logger     infra.Logger

	mu      sync.Mutex
	phase   Phase
	running bool
	request domain.StrategyRequest
	result  *domain.GenerationResult
	lastErr string
	onPhase func(Phase)
}

// New constructs an idle pipeline.
func New(strategist strategy.Synthesizer, renderer render.Renderer, logger infra.Logger) *Pipeline {
	return &Pipeline{
		strategist: strategist,
		renderer:   renderer,
		logger:     logger,
		phase:      PhaseIdle,
	}
}

// OnPhaseChange registers an observer invoked on every phase transition.
func (p *Pipeline) OnPhaseChange(fn func(Phase)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onPhase = fn
}

// Generate runs the full two-stage pipeline: synthesize a strategy, store it,
// then immediately render it. A synthesizer failure leaves no result; a
// renderer failure keeps the strategy-only result so the caller can retry the
// render without paying for re-synthesis.
func (p *Pipeline) Generate(ctx context.Context, req domain.StrategyRequest) (*domain.GenerationResult, error) {
	if err := req.Validate(); err != nil {
		p.mu.Lock()
		p.lastErr = err.Error()
		p.mu.Unlock()
		return nil, err
	}

	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil, domain.ErrBusy
	}
	p.running = true
	p.request = req
	p.result = nil
	p.lastErr = ""
	p.mu.Unlock()
	p.setPhase(PhaseStrategizing)
	defer p.finish()

	doc, err := p.strategist.Synthesize(ctx, req)
	if err != nil {
		p.recordError(err)
		return nil, err
	}

	now := time.Now()
	p.mu.Lock()
	p.result = &domain.GenerationResult{Strategy: *doc, CreatedAt: now, UpdatedAt: now}
	p.mu.Unlock()
	p.setPhase(PhaseRendering)

	p.logger.Info().
		Str("main_text", doc.MainText).
		Str("ratio", string(req.Ratio)).
		Msg("pipeline: strategy ready, rendering")

	imageURL, err := p.renderer.Render(ctx, *doc, req.Ratio, req.SubjectImages)
	if err != nil {
		p.recordError(err)
		return nil, err
	}

	p.mu.Lock()
	p.result.ImageURL = imageURL
	p.result.UpdatedAt = time.Now()
	out := p.result.Clone()
	p.mu.Unlock()
	return out, nil
}

// Rerender re-invokes only the image renderer against the stored strategy.
// The creative direction stays stable across retries; the rendered pixels may
// vary because the provider is non-deterministic.
func (p *Pipeline) Rerender(ctx context.Context) (*domain.GenerationResult, error) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil, domain.ErrBusy
	}
	if p.result == nil {
		p.mu.Unlock()
		return nil, domain.ErrNoStrategy
	}
	p.running = true
	p.lastErr = ""
	doc := p.result.Clone().Strategy
	ratio := p.request.Ratio
	refs := p.request.SubjectImages
	p.mu.Unlock()
	p.setPhase(PhaseRendering)
	defer p.finish()

	imageURL, err := p.renderer.Render(ctx, doc, ratio, refs)
	if err != nil {
		p.recordError(err)
		return nil, err
	}

	p.mu.Lock()
	p.result.ImageURL = imageURL
	p.result.UpdatedAt = time.Now()
	out := p.result.Clone()
	p.mu.Unlock()
	return out, nil
}

// Snapshot exposes the phase, a copy of the current result, and the last
// error string for the UI boundary.
func (p *Pipeline) Snapshot() (Phase, *domain.GenerationResult, string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.phase, p.result.Clone(), p.lastErr
}

func (p *Pipeline) setPhase(phase Phase) {
	p.mu.Lock()
	p.phase = phase
	fn := p.onPhase
	p.mu.Unlock()
	if fn != nil {
		fn(phase)
	}
}

func (p *Pipeline) recordError(err error) {
	p.logger.Warn().Err(err).Msg("pipeline: stage failed")
	p.mu.Lock()
	p.lastErr = err.Error()
	p.mu.Unlock()
}

// finish always returns the pipeline to idle, whatever the outcome.
func (p *Pipeline) finish() {
	p.mu.Lock()
	p.running = false
	p.mu.Unlock()
	p.setPhase(PhaseIdle)
}
