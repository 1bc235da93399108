package schema

import (
	"fmt"
	"regexp"
	"sync"
)

var keyRe = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// Registry holds sections in registration order.
type Registry struct {
	mu    sync.RWMutex
	byKey map[string]Section
	order []Section
}

func NewRegistry() *Registry {
	return &Registry{byKey: map[string]Section{}}
}

// Register adds s. Keys and areas must be lowercase slugs and keys unique.
func (r *Registry) Register(s Section) error {
	if !keyRe.MatchString(s.Key()) {
		return fmt.Errorf("invalid section key %q", s.Key())
	}
	if !keyRe.MatchString(s.Area()) {
		return fmt.Errorf("section %s: invalid area %q", s.Key(), s.Area())
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.byKey[s.Key()]; dup {
		return fmt.Errorf("section %s already registered", s.Key())
	}
	r.byKey[s.Key()] = s
	r.order = append(r.order, s)
	return nil
}

// MustRegister panics on Register errors; for package-level wiring.
func (r *Registry) MustRegister(sections ...Section) {
	for _, s := range sections {
		if err := r.Register(s); err != nil {
			panic(err)
		}
	}
}

func (r *Registry) Lookup(key string) (Section, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byKey[key]
	return s, ok
}

// All returns the sections in registration order.
func (r *Registry) All() []Section {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Section(nil), r.order...)
}
