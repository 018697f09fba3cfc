package overload

import (
	"sort"
	"sync"
)

// Set owns the candidates registered under one exposed name. The precedence
// order is computed lazily and cached until the next Add.
//
// Registration normally completes before any binding begins; the RWMutex
// covers the atypical lifecycle where the two overlap. Once sorted, the
// order is safe for concurrent reads.
type Set struct {
	name        string
	lookupScope string
	candidates  []*Candidate
	order       []*Candidate
	sorted      bool
	mu          sync.RWMutex
}

// NewSet creates an empty overload set. lookupScope identifies the scope
// the name was looked up on; candidates declared elsewhere sort as
// inherited.
func NewSet(name, lookupScope string) *Set {
	return &Set{name: name, lookupScope: lookupScope}
}

// Name returns the exposed call name.
func (s *Set) Name() string {
	return s.name
}

// Len returns the number of registered candidates.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.candidates)
}

// Add appends a candidate and invalidates the cached order.
func (s *Set) Add(c *Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates = append(s.candidates, c)
	s.sorted = false
	s.order = nil
}

// ResolvedOrder returns the candidates sorted by ascending precedence
// score. The sort runs once per mutation epoch; repeated calls return the
// identical cached slice. Callers must not mutate the result.
func (s *Set) ResolvedOrder() []*Candidate {
	s.mu.RLock()
	if s.sorted {
		order := s.order
		s.mu.RUnlock()
		return order
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sorted {
		return s.order
	}

	order := make([]*Candidate, len(s.candidates))
	copy(order, s.candidates)
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Precedence(s.lookupScope) < order[j].Precedence(s.lookupScope)
	})

	s.order = order
	s.sorted = true
	return order
}

// Find returns the first registered candidate matching pred, in insertion
// order, or nil. Used by the surrounding access layer to locate explicit
// signatures.
func (s *Set) Find(pred func(*Candidate) bool) *Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.candidates {
		if pred(c) {
			return c
		}
	}
	return nil
}
