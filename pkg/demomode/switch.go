package demomode

import (
	"context"
	"sync/atomic"
)

// Switch holds the process-wide default mode. Handlers never read it directly, the request
// middleware resolves it once and stores the result in the request context.
type Switch interface {
	Enabled(ctx context.Context) (bool, error)
	Set(ctx context.Context, enabled bool) error
	Toggle(ctx context.Context) (bool, error)
}

type MemorySwitch struct {
	enabled atomic.Bool
}

func NewMemorySwitch(enabled bool) *MemorySwitch {
	s := &MemorySwitch{}
	s.enabled.Store(enabled)

	return s
}

func (s *MemorySwitch) Enabled(ctx context.Context) (bool, error) {
	return s.enabled.Load(), nil
}

func (s *MemorySwitch) Set(ctx context.Context, enabled bool) error {
	s.enabled.Store(enabled)

	return nil
}

func (s *MemorySwitch) Toggle(ctx context.Context) (bool, error) {
	for {
		current := s.enabled.Load()
		if s.enabled.CompareAndSwap(current, !current) {
			return !current, nil
		}
	}
}
