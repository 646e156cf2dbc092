package search

import (
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/stack"

	"github.com/theduyngx/pacman-torusverse/game/grid"
)

// ReachableSet returns every cell the walker can reach, its own cell
// included. Goals are consumed and restored along the way; on return the
// simulation is back where it started.
func (s *Simulation) ReachableSet() mapset.Set[grid.Location] {
	depth := len(s.journal)
	visited := mapset.New[grid.Location]()

	frontier := stack.New[grid.Location]()
	frontier.Push(s.walker.Location)
	for frontier.Size() > 0 {
		loc := frontier.Pop()
		s.ProceedMove(loc)
		if visited.Has(loc) {
			continue
		}
		visited.Put(loc)
		for _, next := range s.AllMoves() {
			if !visited.Has(next) {
				frontier.Push(next)
			}
		}
	}

	s.undoTo(depth)
	return visited
}

// Unreachable returns the locations of goals outside reachable, sorted
func Unreachable(goals *grid.Index[grid.Item], reachable mapset.Set[grid.Location]) []grid.Location {
	var out []grid.Location
	goals.Each(func(loc grid.Location, _ grid.Item) {
		if !reachable.Has(loc) {
			out = append(out, loc)
		}
	})
	return out
}
