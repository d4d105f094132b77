package ocr

import (
	"context"
	"image"
	"sync"
)

// Serialized guards an engine that is not safe for concurrent invocation.
// The lock is held for exactly one Recognize call and released on every exit
// path, including panics, so a failing call cannot deadlock later ones.
type Serialized struct {
	mu    sync.Mutex
	inner Engine
}

// Serialize wraps inner so concurrent callers take turns.
func Serialize(inner Engine) *Serialized {
	return &Serialized{inner: inner}
}

func (s *Serialized) Name() string { return s.inner.Name() }

func (s *Serialized) Recognize(ctx context.Context, img image.Image, opts Options) (Payload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Recognize(ctx, img, opts)
}
