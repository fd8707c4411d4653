package mocks

import "sync"

// Scope records what a traced call reported.
type Scope struct {
	Name string

	mu         sync.Mutex
	attributes map[string]any
	events     []string
	errors     []error
	ended      bool
}

func NewScope() *Scope {
	return &Scope{attributes: map[string]any{}}
}

func (s *Scope) End() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ended = true
}

func (s *Scope) TraceError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.errors = append(s.errors, err)
}

func (s *Scope) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

func (s *Scope) AddEvent(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, name)
}

func (s *Scope) SetAttribute(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attributes[key] = value
}

func (s *Scope) SetAttributes(attributes map[string]any) {
	for key, value := range attributes {
		s.SetAttribute(key, value)
	}
}

func (s *Scope) Attribute(key string) any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.attributes[key]
}

func (s *Scope) Events() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.events...)
}

func (s *Scope) Errors() []error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]error(nil), s.errors...)
}

func (s *Scope) Ended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ended
}
