package channels

import (
	"github.com/grovetools/navcore/prefs"
	"github.com/sirupsen/logrus"
)

// Registry holds one Store per category. Categories share the key-value
// store but no mutable state.
type Registry struct {
	order  []Category
	stores map[Category]*Store
}

// NewRegistry builds a store for every spec, in the order given.
func NewRegistry(kv prefs.KV, specs []Spec, logger *logrus.Entry) *Registry {
	r := &Registry{stores: make(map[Category]*Store, len(specs))}
	for _, spec := range specs {
		if _, dup := r.stores[spec.Category]; dup {
			continue
		}
		r.order = append(r.order, spec.Category)
		r.stores[spec.Category] = NewStore(spec, kv, logger)
	}
	return r
}

// Store returns the store of cat.
func (r *Registry) Store(cat Category) (*Store, bool) {
	s, ok := r.stores[cat]
	return s, ok
}

// Categories returns the registered categories in registration order.
func (r *Registry) Categories() []Category {
	return append([]Category(nil), r.order...)
}

// LoadAll loads every category and returns the snapshots in order.
func (r *Registry) LoadAll() []Snapshot {
	snaps := make([]Snapshot, 0, len(r.order))
	for _, cat := range r.order {
		snaps = append(snaps, r.stores[cat].Load())
	}
	return snaps
}
