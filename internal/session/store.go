package session

import (
	"sync"
	"time"

	"thumbsmith/internal/pipeline"
)

type entry struct {
	pipeline     *pipeline.Pipeline
	lastActivity time.Time
}

// Options configures the store.
type Options struct {
	// TTL after which an untouched session is dropped. Zero means one hour.
	TTL time.Duration
	// NewPipeline builds the pipeline for a fresh session.
	NewPipeline func() *pipeline.Pipeline
}

// Store keeps one pipeline per browser session, in memory only. Nothing
// survives the process; expired sessions are pruned on access.
type Store struct {
	mu          sync.Mutex
	sessions    map[string]*entry
	ttl         time.Duration
	newPipeline func() *pipeline.Pipeline
}

func NewStore(opts Options) *Store {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Store{
		sessions:    make(map[string]*entry),
		ttl:         ttl,
		newPipeline: opts.NewPipeline,
	}
}

// Get returns the session's pipeline, creating it when absent.
func (s *Store) Get(id string) *pipeline.Pipeline {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)

	if e, ok := s.sessions[id]; ok {
		e.lastActivity = now
		return e.pipeline
	}

	e := &entry{pipeline: s.newPipeline(), lastActivity: now}
	s.sessions[id] = e
	return e.pipeline
}

// Clear drops a session and its result.
func (s *Store) Clear(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) pruneLocked(now time.Time) {
	for id, e := range s.sessions {
		if now.Sub(e.lastActivity) > s.ttl {
			delete(s.sessions, id)
		}
	}
}
