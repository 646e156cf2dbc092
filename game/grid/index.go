package grid

import "sort"

// Index is a spatial index from board cells to occupants. The zero value is
// not usable; create one with NewIndex.
type Index[V any] struct {
	cells map[Location]V
}

// NewIndex creates an empty index
func NewIndex[V any]() *Index[V] {
	return &Index[V]{cells: make(map[Location]V)}
}

// Contains reports whether loc has an occupant
func (ix *Index[V]) Contains(loc Location) bool {
	_, ok := ix.cells[loc]
	return ok
}

// Get returns the occupant at loc
func (ix *Index[V]) Get(loc Location) (V, bool) {
	v, ok := ix.cells[loc]
	return v, ok
}

// Put places v at loc, replacing any previous occupant
func (ix *Index[V]) Put(loc Location, v V) {
	ix.cells[loc] = v
}

// Delete removes the occupant at loc and reports whether one existed
func (ix *Index[V]) Delete(loc Location) bool {
	if _, ok := ix.cells[loc]; !ok {
		return false
	}
	delete(ix.cells, loc)
	return true
}

// Len returns the number of occupied cells
func (ix *Index[V]) Len() int {
	return len(ix.cells)
}

// Clone returns an independent copy of the index
func (ix *Index[V]) Clone() *Index[V] {
	c := &Index[V]{cells: make(map[Location]V, len(ix.cells))}
	for k, v := range ix.cells {
		c.cells[k] = v
	}
	return c
}

// Each calls fn for every occupied cell in location order
func (ix *Index[V]) Each(fn func(loc Location, v V)) {
	for _, loc := range ix.Locations() {
		fn(loc, ix.cells[loc])
	}
}

// Locations returns the occupied cells sorted by X, then Y
func (ix *Index[V]) Locations() []Location {
	locs := make([]Location, 0, len(ix.cells))
	for loc := range ix.cells {
		locs = append(locs, loc)
	}
	SortLocations(locs)
	return locs
}

// Equal reports whether both indexes hold the same cells with equal occupants
func Equal[V comparable](a, b *Index[V]) bool {
	if a.Len() != b.Len() {
		return false
	}
	for loc, v := range a.cells {
		w, ok := b.cells[loc]
		if !ok || w != v {
			return false
		}
	}
	return true
}

// SortLocations sorts locs in place by X, then Y
func SortLocations(locs []Location) {
	sort.Slice(locs, func(i, j int) bool { return locs[i].Less(locs[j]) })
}
