package world

import (
	"errors"
	"fmt"
)

// ErrInvalidHandle is returned when a handle does not refer to a live pool entry,
// either because it was never issued or because its entry has since been removed.
var ErrInvalidHandle = errors.New("invalid entity handle")

// Handle is a generation-tagged reference to a Pool entry.
// A handle stays valid across removals of other entries and fails loudly once
// its own entry is removed, even if the slot is reused.
type Handle struct {
	slot uint32 // slot index + 1, so the zero value is NoHandle
	gen  uint32
}

// NoHandle is the zero Handle; it never refers to a live entry
var NoHandle = Handle{}

func (h Handle) String() string {
	if h == NoHandle {
		return "#none"
	}
	return fmt.Sprintf("#%d.%d", h.slot-1, h.gen)
}

type poolSlot struct {
	dense int
	gen   uint32
	alive bool
}

// Pool is a flat store of values addressed by generation-checked handles.
// Values live in a dense slice, so iteration is cache friendly and removal is
// O(1) by swapping the last value into the hole.
type Pool[T any] struct {
	items  []T
	owners []Handle // dense index -> owning handle
	slots  []poolSlot
	free   []uint32
}

// NewPool creates an empty pool with room for capacity values before growing
func NewPool[T any](capacity int) *Pool[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Pool[T]{
		items:  make([]T, 0, capacity),
		owners: make([]Handle, 0, capacity),
		slots:  make([]poolSlot, 0, capacity),
	}
}

// Add appends a value and returns its handle
func (p *Pool[T]) Add(v T) Handle {
	var idx uint32
	if n := len(p.free); n > 0 {
		idx = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		p.slots = append(p.slots, poolSlot{})
		idx = uint32(len(p.slots) - 1)
	}

	s := &p.slots[idx]
	s.alive = true
	s.dense = len(p.items)

	h := Handle{slot: idx + 1, gen: s.gen}
	p.items = append(p.items, v)
	p.owners = append(p.owners, h)
	return h
}

func (p *Pool[T]) lookup(h Handle) (int, bool) {
	if h.slot == 0 || int(h.slot) > len(p.slots) {
		return 0, false
	}
	s := p.slots[h.slot-1]
	if !s.alive || s.gen != h.gen {
		return 0, false
	}
	return s.dense, true
}

// Contains reports whether h refers to a live entry
func (p *Pool[T]) Contains(h Handle) bool {
	_, ok := p.lookup(h)
	return ok
}

// Get returns a pointer to the value for h.
// The pointer is only valid until the next Add or Remove.
func (p *Pool[T]) Get(h Handle) (*T, error) {
	i, ok := p.lookup(h)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHandle, h)
	}
	return &p.items[i], nil
}

// MustGet is Get for handles the caller knows to be live. It panics otherwise.
func (p *Pool[T]) MustGet(h Handle) *T {
	v, err := p.Get(h)
	if err != nil {
		panic(err)
	}
	return v
}

// Remove deletes the entry for h by moving the last dense value into its place.
// It returns the handle of the moved value (NoHandle when the removed entry was
// last). Handles are unaffected by the move; only dense indexes change.
// An invalid handle leaves the pool untouched and returns ErrInvalidHandle.
func (p *Pool[T]) Remove(h Handle) (Handle, error) {
	i, ok := p.lookup(h)
	if !ok {
		return NoHandle, fmt.Errorf("%w: %v", ErrInvalidHandle, h)
	}

	last := len(p.items) - 1
	moved := NoHandle
	if i != last {
		p.items[i] = p.items[last]
		p.owners[i] = p.owners[last]
		moved = p.owners[i]
		p.slots[moved.slot-1].dense = i
	}

	var zero T
	p.items[last] = zero
	p.items = p.items[:last]
	p.owners = p.owners[:last]

	s := &p.slots[h.slot-1]
	s.alive = false
	s.gen++
	p.free = append(p.free, h.slot-1)

	return moved, nil
}

// Len returns the number of live entries
func (p *Pool[T]) Len() int {
	return len(p.items)
}

// At returns the value at dense index i (0 <= i < Len)
func (p *Pool[T]) At(i int) *T {
	return &p.items[i]
}

// HandleAt returns the handle of the value at dense index i
func (p *Pool[T]) HandleAt(i int) Handle {
	return p.owners[i]
}

// Each calls fn for every live entry in dense order
func (p *Pool[T]) Each(fn func(h Handle, v *T)) {
	for i := range p.items {
		fn(p.owners[i], &p.items[i])
	}
}

// Clear removes every entry and invalidates all outstanding handles
func (p *Pool[T]) Clear() {
	for _, h := range p.owners {
		s := &p.slots[h.slot-1]
		s.alive = false
		s.gen++
		p.free = append(p.free, h.slot-1)
	}
	var zero T
	for i := range p.items {
		p.items[i] = zero
	}
	p.items = p.items[:0]
	p.owners = p.owners[:0]
}

// Clone returns an independent copy of the pool. Handles issued by p resolve to
// the same values in the clone.
func (p *Pool[T]) Clone() *Pool[T] {
	c := &Pool[T]{
		items:  make([]T, len(p.items)),
		owners: make([]Handle, len(p.owners)),
		slots:  make([]poolSlot, len(p.slots)),
		free:   make([]uint32, len(p.free)),
	}
	copy(c.items, p.items)
	copy(c.owners, p.owners)
	copy(c.slots, p.slots)
	copy(c.free, p.free)
	return c
}
