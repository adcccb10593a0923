package hal

import (
	"fmt"

	"github.com/kikios/kikidesk/internal/pixel"
)

// HeapAllocator hands out pixel views from the Go heap. A non-zero Budget caps
// the pixels that may be live at once so tests can provoke allocation failure.
type HeapAllocator struct {
	Budget int

	live        map[*pixel.View]int
	inUse       int
	doubleFrees int
}

// NewHeapAllocator returns an allocator limited to budget pixels (0 = unlimited).
func NewHeapAllocator(budget int) *HeapAllocator {
	return &HeapAllocator{Budget: budget, live: make(map[*pixel.View]int)}
}

// Alloc implements Allocator.
func (a *HeapAllocator) Alloc(w, h int) (*pixel.View, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("alloc %dx%d: %w", w, h, ErrOutOfMemory)
	}
	n := w * h
	if a.Budget > 0 && a.inUse+n > a.Budget {
		return nil, fmt.Errorf("alloc %d pixels with %d of %d in use: %w", n, a.inUse, a.Budget, ErrOutOfMemory)
	}
	if a.live == nil {
		a.live = make(map[*pixel.View]int)
	}
	v := pixel.New(w, h)
	a.live[v] = n
	a.inUse += n
	return v, nil
}

// Free implements Allocator. Freeing an unknown or already freed view is
// counted rather than fatal.
func (a *HeapAllocator) Free(v *pixel.View) {
	n, ok := a.live[v]
	if !ok {
		a.doubleFrees++
		return
	}
	delete(a.live, v)
	a.inUse -= n
}

// Live returns the number of outstanding allocations.
func (a *HeapAllocator) Live() int { return len(a.live) }

// InUse returns the number of live pixels.
func (a *HeapAllocator) InUse() int { return a.inUse }

// DoubleFrees returns how many Free calls did not match a live allocation.
func (a *HeapAllocator) DoubleFrees() int { return a.doubleFrees }
