package view

import (
	"sync"

	"task-manager/internal/domain"
)

// Source is a task collection that reports when it changes.
type Source interface {
	Revision() uint64
	Tasks() []domain.Task
}

// Deriver caches the last View and recomputes it only when the source
// revision, filter or sort key changes.
type Deriver struct {
	source Source

	mu     sync.Mutex
	valid  bool
	rev    uint64
	filter Filter
	key    SortKey
	cached View
	misses int
}

// NewDeriver creates a memoizing deriver over source.
func NewDeriver(source Source) *Deriver {
	return &Deriver{source: source}
}

// View returns the derived view for the current source contents. The
// result is shared between calls and must not be modified.
func (d *Deriver) View(filter Filter, key SortKey) View {
	d.mu.Lock()
	defer d.mu.Unlock()

	rev := d.source.Revision()
	if d.valid && rev == d.rev && filter == d.filter && key == d.key {
		return d.cached
	}

	d.cached = Derive(d.source.Tasks(), filter, key)
	d.rev, d.filter, d.key = rev, filter, key
	d.valid = true
	d.misses++
	return d.cached
}

// Computations returns how many times the view was actually derived.
func (d *Deriver) Computations() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.misses
}
