package report

import (
	"sync"
)

// Template names a result layout.
type Template string

const (
	TemplateCBC      Template = "cbc"
	TemplateGlycemic Template = "glycemic"
	TemplateGeneric  Template = "generic"
)

func (t Template) known() bool {
	_, ok := resultTables[t]
	return ok || t == TemplateGeneric
}

// Registry maps test ids to report templates. Unmapped tests use the
// generic template.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Template
}

// NewRegistry starts from the built-in mapping and applies overrides. Unknown
// template names in overrides are ignored.
func NewRegistry(overrides map[string]string) *Registry {
	r := &Registry{entries: map[string]Template{
		"t1": TemplateCBC,
		"t4": TemplateGlycemic,
	}}
	for testID, name := range overrides {
		r.Assign(testID, Template(name))
	}
	return r
}

// Assign maps a test id to a template. It returns false for unknown templates.
func (r *Registry) Assign(testID string, t Template) bool {
	if !t.known() {
		return false
	}
	r.mu.Lock()
	r.entries[testID] = t
	r.mu.Unlock()
	return true
}

// Resolve returns the template for testID.
func (r *Registry) Resolve(testID string) Template {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if t, ok := r.entries[testID]; ok {
		return t
	}
	return TemplateGeneric
}
