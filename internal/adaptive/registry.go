package adaptive

import "sort"

// Registry maps variant ids to templates. It is cleared and fully repopulated on
// every full configuration apply.
type Registry struct {
	templates map[VariantID]Template
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{templates: make(map[VariantID]Template)}
}

// Register stores tmpl under id, replacing any previous template.
func (r *Registry) Register(id VariantID, tmpl Template) {
	r.templates[id] = tmpl
}

// Clear removes every template.
func (r *Registry) Clear() {
	clear(r.templates)
}

// Get returns the template for id or an ErrUnknownVariant error.
func (r *Registry) Get(id VariantID) (Template, error) {
	tmpl, ok := r.templates[id]
	if !ok {
		return nil, unknownVariant(id)
	}
	return tmpl, nil
}

// Has reports whether id is registered.
func (r *Registry) Has(id VariantID) bool {
	_, ok := r.templates[id]
	return ok
}

// IDs returns the registered ids in sorted order.
func (r *Registry) IDs() []VariantID {
	ids := make([]VariantID, 0, len(r.templates))
	for id := range r.templates {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len returns the number of registered templates.
func (r *Registry) Len() int {
	return len(r.templates)
}
