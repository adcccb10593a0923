// Package queue implements a fixed-capacity FIFO ring that refuses new
// entries when full instead of evicting old ones.
package queue

// Ring is a bounded FIFO. The zero value has capacity zero and drops everything.
type Ring[V any] struct {
	entries      []V
	first, count int
}

// New returns a ring that holds up to max entries. max below 1 is raised to 1.
func New[V any](max int) Ring[V] {
	if max < 1 {
		max = 1
	}
	return Ring[V]{entries: make([]V, max)}
}

// Len returns the number of queued entries.
func (r Ring[V]) Len() int { return r.count }

// Cap returns the fixed capacity.
func (r Ring[V]) Cap() int { return len(r.entries) }

// Empty reports whether nothing is queued.
func (r Ring[V]) Empty() bool { return r.count == 0 }

// Full reports whether the next Push will be dropped.
func (r Ring[V]) Full() bool { return r.count == len(r.entries) }

func (r Ring[V]) mod(i int) int { return i % len(r.entries) }

// Push appends v. It returns false, leaving the ring untouched, when full.
func (r *Ring[V]) Push(v V) bool {
	if r.Full() {
		return false
	}
	r.entries[r.mod(r.first+r.count)] = v
	r.count++
	return true
}

// Pop removes and returns the oldest entry.
func (r *Ring[V]) Pop() (V, bool) {
	var zero V
	if r.count == 0 {
		return zero, false
	}
	v := r.entries[r.first]
	r.entries[r.first] = zero
	r.first = r.mod(r.first + 1)
	r.count--
	return v, true
}

// Peek returns the oldest entry without removing it.
func (r Ring[V]) Peek() (V, bool) {
	if r.count == 0 {
		var zero V
		return zero, false
	}
	return r.entries[r.first], true
}

// Reset discards every queued entry.
func (r *Ring[V]) Reset() {
	clear(r.entries)
	r.first, r.count = 0, 0
}

// Each calls f on every entry from oldest to newest.
func (r Ring[V]) Each(f func(v V)) {
	for i := 0; i < r.count; i++ {
		f(r.entries[r.mod(r.first+i)])
	}
}
