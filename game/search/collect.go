package search

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/theduyngx/pacman-torusverse/game/grid"
)

// goalSet is a bitset over the goals present when a search starts, stored
// as a string so that it can be part of a map key.
type goalSet string

func fullGoalSet(n int) goalSet {
	b := make([]byte, (n+7)/8)
	for i := 0; i < n; i++ {
		b[i/8] |= 1 << (i % 8)
	}
	return goalSet(b)
}

func (g goalSet) has(i int) bool {
	return g[i/8]&(1<<(i%8)) != 0
}

func (g goalSet) without(i int) goalSet {
	b := []byte(g)
	b[i/8] &^= 1 << (i % 8)
	return goalSet(b)
}

type collectState struct {
	loc   grid.Location
	goals goalSet
}

type collectNode struct {
	collectState
	facing grid.Direction
	left   int
	path   *pathNode
}

// CollectAll returns a shortest sequence of moves, excluding the current
// cell, that collects every pending goal. It returns nil when there is
// nothing to collect, when some goal cannot be reached, or when the search
// exceeds MaxStates.
func (s *Simulation) CollectAll() []grid.Location {
	targets := s.goals.Locations()
	if len(targets) == 0 {
		return nil
	}
	bit := make(map[grid.Location]int, len(targets))
	for i, loc := range targets {
		bit[loc] = i
	}

	limit := s.MaxStates
	if limit <= 0 {
		limit = defaultMaxStates
	}

	root := &collectNode{
		collectState: collectState{loc: s.walker.Location, goals: fullGoalSet(len(targets))},
		facing:       s.walker.Facing,
		left:         len(targets),
		path:         &pathNode{loc: s.walker.Location},
	}
	seen := mapset.New[collectState]()
	seen.Put(root.collectState)

	queue := []*collectNode{root}
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		queue[head] = nil
		for _, st := range s.candidates(cur.loc, cur.facing) {
			goals, left := cur.goals, cur.left
			if i, ok := bit[st.loc]; ok && goals.has(i) {
				goals = goals.without(i)
				left--
			}
			child := &collectNode{
				collectState: collectState{loc: st.loc, goals: goals},
				facing:       st.dir,
				left:         left,
				path:         &pathNode{loc: st.loc, parent: cur.path},
			}
			if left == 0 {
				return child.path.locations()
			}
			if seen.Has(child.collectState) {
				continue
			}
			if seen.Size() >= limit {
				return nil
			}
			seen.Put(child.collectState)
			queue = append(queue, child)
		}
	}
	return nil
}
