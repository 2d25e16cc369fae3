package descriptioncmd

import (
	"context"
	"sync"

	"github.com/goliatone/go-vdesc/pkg/interfaces"
)

// SinkFunc adapts a function to interfaces.DocumentSink.
type SinkFunc func(ctx context.Context, result interfaces.DocumentResult) error

// Accept calls f.
func (f SinkFunc) Accept(ctx context.Context, result interfaces.DocumentResult) error {
	return f(ctx, result)
}

// MemorySink keeps every accepted result in arrival order.
type MemorySink struct {
	mu      sync.Mutex
	results []interfaces.DocumentResult
}

// Accept records result.
func (s *MemorySink) Accept(_ context.Context, result interfaces.DocumentResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, result)
	return nil
}

// Results returns a copy of the recorded results.
func (s *MemorySink) Results() []interfaces.DocumentResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]interfaces.DocumentResult(nil), s.results...)
}

// Last returns the most recent result.
func (s *MemorySink) Last() (interfaces.DocumentResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.results) == 0 {
		return interfaces.DocumentResult{}, false
	}
	return s.results[len(s.results)-1], true
}
