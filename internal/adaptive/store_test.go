package adaptive

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/adaptive/internal/layout"
)

func newTestStore(retain bool, ids ...VariantID) (*Store, *Registry, *Stats) {
	r := NewRegistry()
	for _, id := range ids {
		r.Register(id, fakeTemplate{title: string(id)})
	}
	stats := &Stats{}
	return NewStore(r, retain, "test", stats), r, stats
}

func TestStore_ActivateInstantiates(t *testing.T) {
	s, _, stats := newTestStore(false, Mobile, Desktop)

	require.Nil(t, s.Active())
	require.Equal(t, layout.FillBoth(), s.SizeHint())

	v, changed, err := s.Activate(Mobile)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, Mobile, v.ID)
	require.NotEmpty(t, v.UID)
	require.Equal(t, 1, stats.Instantiations)
}

func TestStore_ActivateSameIsNoop(t *testing.T) {
	s, _, stats := newTestStore(true, Mobile)

	first, _, err := s.Activate(Mobile)
	require.NoError(t, err)

	again, changed, err := s.Activate(Mobile)
	require.NoError(t, err)
	require.False(t, changed)
	require.Same(t, first, again)
	require.Equal(t, 1, stats.Instantiations)
	require.Empty(t, s.Retained())
}

func TestStore_RetentionOffDropsPrevious(t *testing.T) {
	s, _, stats := newTestStore(false, Mobile, Desktop)

	m, _, _ := s.Activate(Mobile)
	_, _, _ = s.Activate(Desktop)
	back, _, err := s.Activate(Mobile)
	require.NoError(t, err)

	require.NotSame(t, m, back, "without retention a fresh instance is built")
	require.Equal(t, 3, stats.Instantiations)
	require.Equal(t, 2, stats.Drops)
	require.Empty(t, s.Retained())
}

func TestStore_RetentionRestoresSameInstance(t *testing.T) {
	s, _, stats := newTestStore(true, Mobile, Desktop)

	m, _, _ := s.Activate(Mobile)
	m.Widget.Update(scrollMsg(12))

	_, _, _ = s.Activate(Desktop)
	require.Equal(t, []VariantID{Mobile}, s.Retained())

	back, changed, err := s.Activate(Mobile)
	require.NoError(t, err)
	require.True(t, changed)
	require.Same(t, m, back)
	require.Equal(t, 12, back.Widget.(*fakeWidget).offset)
	require.Equal(t, []VariantID{Desktop}, s.Retained())
	require.Equal(t, 1, stats.Restores)
	require.Equal(t, 2, stats.Evictions)
}

func TestStore_UnknownLeavesActiveUntouched(t *testing.T) {
	s, _, stats := newTestStore(true, Mobile)

	m, _, _ := s.Activate(Mobile)

	_, changed, err := s.Activate(Desktop)
	require.ErrorIs(t, err, ErrUnknownVariant)
	require.False(t, changed)
	require.Same(t, m, s.Active())
	require.Empty(t, s.Retained())
	require.Zero(t, stats.Evictions)
}

func TestStore_AdoptsActiveSizeHint(t *testing.T) {
	r := NewRegistry()
	hint := layout.Size{Width: layout.Fixed(24), Height: layout.Fit()}
	r.Register(Mobile, fakeTemplate{hint: hint})
	s := NewStore(r, false, "hint", nil)

	_, _, err := s.Activate(Mobile)
	require.NoError(t, err)
	require.Equal(t, hint, s.SizeHint())

	s.Active().Widget.(*fakeWidget).hint = layout.FillBoth()
	s.RefreshHint()
	require.Equal(t, layout.FillBoth(), s.SizeHint())
}

func TestStore_SetRetainOffFlushes(t *testing.T) {
	s, _, stats := newTestStore(true, Mobile, Tablet, Desktop)

	for _, id := range []VariantID{Mobile, Tablet, Desktop} {
		_, _, err := s.Activate(id)
		require.NoError(t, err)
	}
	require.Len(t, s.Retained(), 2)

	s.SetRetain(false)
	require.False(t, s.Retaining())
	require.Empty(t, s.Retained())
	require.Equal(t, 2, stats.Drops)
}

func TestStore_PruneDropsUnregistered(t *testing.T) {
	s, r, _ := newTestStore(true, Mobile, Tablet, Desktop)
	for _, id := range []VariantID{Mobile, Tablet, Desktop} {
		_, _, _ = s.Activate(id)
	}

	r.Clear()
	r.Register(Desktop, fakeTemplate{})
	r.Register(Tablet, fakeTemplate{})

	require.Equal(t, []VariantID{Mobile}, s.Prune())
	require.Equal(t, []VariantID{Tablet}, s.Retained())
}

// Any sequence of activations keeps at most one active variant, never holds
// the active id in the cache and only retains when retention is on.
func TestStore_MutualExclusionProperty(t *testing.T) {
	ids := []VariantID{Mobile, Tablet, Desktop, "Watch"}

	rapid.Check(t, func(t *rapid.T) {
		retain := rapid.Bool().Draw(t, "retain")
		s, _, _ := newTestStore(retain, Mobile, Tablet, Desktop)
		seen := map[VariantID]*Variant{}

		steps := rapid.SliceOfN(rapid.SampledFrom(ids), 1, 40).Draw(t, "steps")
		for _, id := range steps {
			before := s.Active()
			v, _, err := s.Activate(id)

			if id == "Watch" {
				if err == nil {
					t.Fatalf("activating unregistered id succeeded")
				}
				if s.Active() != before {
					t.Fatalf("failed activation changed the active variant")
				}
				continue
			}
			if err != nil {
				t.Fatalf("activate %s: %v", id, err)
			}

			active, _ := s.ActiveID()
			if active != id || v.ID != id {
				t.Fatalf("active %s after activating %s", active, id)
			}
			retained := s.Retained()
			if slices.Contains(retained, active) {
				t.Fatalf("%s both active and retained", active)
			}
			if !retain && len(retained) > 0 {
				t.Fatalf("retained %v with retention off", retained)
			}
			if retain {
				if prev, ok := seen[id]; ok && prev != v {
					t.Fatalf("retained %s was rebuilt", id)
				}
			}
			seen[id] = v
		}
	})
}

func TestStore_UnregisteredPreviousIsDropped(t *testing.T) {
	s, r, stats := newTestStore(true, Mobile, Tablet)
	_, _, err := s.Activate(Tablet)
	require.NoError(t, err)

	r.Clear()
	r.Register(Mobile, fakeTemplate{title: "M"})
	_, changed, err := s.Activate(Mobile)
	require.NoError(t, err)
	require.True(t, changed)

	require.Empty(t, s.Retained())
	require.Equal(t, 1, stats.Drops)
	require.Zero(t, stats.Evictions)
}
