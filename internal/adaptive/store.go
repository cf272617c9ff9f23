package adaptive

import (
	"github.com/google/uuid"

	"github.com/zjrosen/adaptive/internal/cachemanager"
	"github.com/zjrosen/adaptive/internal/layout"
	"github.com/zjrosen/adaptive/internal/log"
)

// Store owns the active variant and, when retention is on, the variants that
// were active before. An id is never both active and retained.
//
// The retained cache has no size bound: it grows with the number of distinct
// ids ever selected. That is the price of keeping their state.
type Store struct {
	registry *Registry
	active   *Variant
	retained cachemanager.CacheManager[VariantID, *Variant]
	retain   bool
	hint     layout.Size
	stats    *Stats
}

// NewStore creates a store drawing templates from registry. name labels the
// retained cache in logs.
func NewStore(registry *Registry, retain bool, name string, stats *Stats) *Store {
	if stats == nil {
		stats = &Stats{}
	}
	return &Store{
		registry: registry,
		retained: cachemanager.NewInMemoryCacheManager[VariantID, *Variant](
			"retained:"+name, cachemanager.NoExpiration, cachemanager.NoCleanup),
		retain: retain,
		hint:   layout.FillBoth(),
		stats:  stats,
	}
}

// Active returns the active variant, or nil before the first activation.
func (s *Store) Active() *Variant {
	return s.active
}

// ActiveID returns the id of the active variant.
func (s *Store) ActiveID() (VariantID, bool) {
	if s.active == nil {
		return "", false
	}
	return s.active.ID, true
}

// Retained returns the ids held in the retained cache, sorted.
func (s *Store) Retained() []VariantID {
	return s.retained.Keys()
}

// RetainedVariant returns a cached variant without promoting it.
func (s *Store) RetainedVariant(id VariantID) (*Variant, bool) {
	return s.retained.Get(id)
}

// Retaining reports whether deactivated variants are kept.
func (s *Store) Retaining() bool {
	return s.retain
}

// SetRetain toggles retention. Turning it off drops every retained variant.
func (s *Store) SetRetain(on bool) {
	if s.retain == on {
		return
	}
	s.retain = on
	if !on {
		s.stats.Drops += s.retained.Len()
		s.retained.Flush()
	}
}

// SizeHint is the active variant's size request, or fill×fill before any
// activation.
func (s *Store) SizeHint() layout.Size {
	return s.hint
}

// RefreshHint re-reads the active widget's size request.
func (s *Store) RefreshHint() {
	if s.active != nil {
		s.hint = s.active.Widget.SizeHint()
	}
}

// Activate makes id the active variant. It reports whether the active variant
// changed. Activating the current id is a no-op. On error nothing changes.
func (s *Store) Activate(id VariantID) (*Variant, bool, error) {
	if !s.registry.Has(id) {
		return nil, false, unknownVariant(id)
	}
	if s.active != nil && s.active.ID == id {
		return s.active, false, nil
	}

	if s.retain {
		if v, ok := s.retained.Take(id); ok {
			s.stats.Restores++
			log.Debug(log.CatVariant, "variant restored", "variant", id, "uid", v.UID)
			s.swap(v)
			return v, true, nil
		}
	}

	tmpl, err := s.registry.Get(id)
	if err != nil {
		return nil, false, err
	}
	v := &Variant{ID: id, UID: uuid.NewString(), Widget: tmpl.Instantiate()}
	s.stats.Instantiations++
	log.Debug(log.CatVariant, "variant instantiated", "variant", id, "uid", v.UID)
	s.swap(v)
	return v, true, nil
}

// swap installs next. The previous variant is retained only while its id is
// still registered.
func (s *Store) swap(next *Variant) {
	if prev := s.active; prev != nil {
		if s.retain && s.registry.Has(prev.ID) {
			s.retained.Set(prev.ID, prev, cachemanager.NoExpiration)
			s.stats.Evictions++
		} else {
			s.stats.Drops++
		}
	}
	s.retained.Delete(next.ID)
	s.active = next
	s.hint = next.Widget.SizeHint()
}

// Prune drops retained variants whose id is no longer registered and returns
// their ids.
func (s *Store) Prune() []VariantID {
	var pruned []VariantID
	for _, id := range s.retained.Keys() {
		if !s.registry.Has(id) {
			s.retained.Delete(id)
			s.stats.Drops++
			pruned = append(pruned, id)
		}
	}
	return pruned
}
