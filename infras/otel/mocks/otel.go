// Package mocks provides an in-memory tracer that keeps every scope it opens.
package mocks

import (
	"context"
	"sync"
	"todoapp/infras/otel"
)

type Otel struct {
	mu     sync.Mutex
	scopes []*Scope
}

func NewOtel() *Otel {
	return &Otel{}
}

func (o *Otel) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	scope := NewScope()
	scope.Name = spanName

	o.mu.Lock()
	o.scopes = append(o.scopes, scope)
	o.mu.Unlock()

	return ctx, scope
}

func (o *Otel) Shutdown(_ context.Context) error {
	return nil
}

// Scope returns the most recent scope opened under name.
func (o *Otel) Scope(name string) (*Scope, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for i := len(o.scopes) - 1; i >= 0; i-- {
		if o.scopes[i].Name == name {
			return o.scopes[i], true
		}
	}

	return nil, false
}
