package forms

import (
	"errors"
	"fmt"
	"sync"
)

// ErrFormNotFound is returned for unknown form keys.
var ErrFormNotFound = errors.New("forms: form not found")

// Registry holds the discovered forms. Reloads swap the whole set.
type Registry struct {
	mu    sync.RWMutex
	forms map[string]*Form
	order []string
}

// NewRegistry creates a registry holding forms.
func NewRegistry(forms ...*Form) *Registry {
	r := &Registry{}
	r.Replace(forms)
	return r
}

// Replace swaps the registered forms. Later duplicates win.
func (r *Registry) Replace(forms []*Form) {
	byKey := make(map[string]*Form, len(forms))
	order := make([]string, 0, len(forms))
	for _, form := range forms {
		if form == nil || form.Key == "" {
			continue
		}
		if _, exists := byKey[form.Key]; !exists {
			order = append(order, form.Key)
		}
		byKey[form.Key] = form
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.forms = byKey
	r.order = order
}

// Get retrieves a form by key.
func (r *Registry) Get(key string) (*Form, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	form, ok := r.forms[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFormNotFound, key)
	}
	return form, nil
}

// Has reports whether a form is registered.
func (r *Registry) Has(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.forms[key]
	return ok
}

// List returns the form keys in discovery order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

// Forms returns the registered forms in discovery order.
func (r *Registry) Forms() []*Form {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Form, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.forms[key])
	}
	return out
}

// Len returns the number of registered forms.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
