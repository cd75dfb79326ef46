// Package lifecycle exposes storage change events as a lifecycle.Source.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/notemaster/pkg/core"
)

// SourceOption configures NewSource.
type SourceOption func(*keySource)

// WithKeys keeps only events for the given storage keys.
func WithKeys(keys ...string) SourceOption {
	return func(s *keySource) {
		s.keys = make(map[string]struct{}, len(keys))
		for _, k := range keys {
			s.keys[k] = struct{}{}
		}
	}
}

// keySource relays core events, dropping those outside keys.
type keySource struct {
	in   <-chan core.Event
	out  chan lifecycle.Event
	keys map[string]struct{}
}

// NewSource wraps a storage event channel. Events closes after the input
// closes or the Start context ends.
func NewSource(events <-chan core.Event, opts ...SourceOption) lifecycle.Source {
	s := &keySource{in: events, out: make(chan lifecycle.Event)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *keySource) Events() <-chan lifecycle.Event { return s.out }

func (s *keySource) wants(e core.Event) bool {
	if s.keys == nil {
		return true
	}
	_, ok := s.keys[e.Key]
	return ok
}

func (s *keySource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			var e core.Event
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-s.in:
				if !ok {
					return nil
				}
				e = ev
			}
			if !s.wants(e) {
				continue
			}
			select {
			case s.out <- e:
			case <-ctx.Done():
				return nil
			}
		}
	})
	return nil
}
