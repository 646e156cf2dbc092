package search

import "github.com/theduyngx/pacman-torusverse/game/grid"

// NextGoalPath returns a shortest path to the nearest pending goal, or nil
// when no goal is reachable within MaxDepth moves. The simulation is left as
// it was found.
//
// Each depth-limited pass stops at the first move that eats a goal and leaves
// its moves on the journal; the journal is unwound once the path has been
// read back from the node chain.
func (s *Simulation) NextGoalPath() []grid.Location {
	if s.goals.Len() == 0 {
		return nil
	}
	limit := s.MaxDepth
	if limit <= 0 {
		limit = s.level.Size.Cells()
	}

	depth := len(s.journal)
	root := &pathNode{loc: s.walker.Location}
	for bound := 1; bound <= limit; bound++ {
		explored := make(map[grid.Location]int)
		if found, ok := s.depthLimited(root, bound, explored); ok {
			path := found.locations()
			s.undoTo(depth)
			return path
		}
	}
	return nil
}

// depthLimited explores up to budget moves from the walker. explored holds
// the largest budget already searched from each cell during this pass; a
// cell reached again with no more budget cannot lead anywhere new.
func (s *Simulation) depthLimited(node *pathNode, budget int, explored map[grid.Location]int) (*pathNode, bool) {
	if budget == 0 {
		return nil, false
	}
	if prev, ok := explored[node.loc]; ok && prev >= budget {
		return nil, false
	}
	explored[node.loc] = budget

	for _, next := range s.AllMoves() {
		child := &pathNode{loc: next, parent: node}
		if s.ProceedMove(next) {
			return child, true
		}
		if found, ok := s.depthLimited(child, budget-1, explored); ok {
			return found, true
		}
		s.UndoMove()
	}
	return nil, false
}
