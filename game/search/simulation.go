package search

import (
	"errors"

	"github.com/theduyngx/pacman-torusverse/game/grid"
)

// ErrEmptyJournal is the panic value of UndoMove on an empty journal
var ErrEmptyJournal = errors.New("undo with empty move journal")

const defaultMaxStates = 1 << 20

// Walker is the simulated actor position
type Walker struct {
	Location grid.Location `json:"location"`
	Facing   grid.Direction `json:"facing"`
}

// Action records one simulated move so that it can be reverted exactly
type Action struct {
	Previous grid.Location
	Next     grid.Location
	Facing   grid.Direction
	Item     *grid.Item
}

// Simulation is scratch search state. It is not safe for concurrent use.
type Simulation struct {
	level   *grid.Level
	walker  Walker
	goals   *grid.Index[grid.Item]
	journal []Action

	// MaxDepth bounds iterative deepening; zero means width*height.
	MaxDepth int
	// MaxStates bounds the collect-all search; zero means 1<<20.
	MaxStates int
}

// NewSimulation starts a simulation at walker. goals is copied; nil means the
// level's mandatory items. A goal under the walker counts as collected.
func NewSimulation(level *grid.Level, walker Walker, goals *grid.Index[grid.Item]) *Simulation {
	if goals == nil {
		goals = level.MandatoryItems()
	} else {
		goals = goals.Clone()
	}
	goals.Delete(walker.Location)
	return &Simulation{level: level, walker: walker, goals: goals}
}

// Walker returns the current simulated position
func (s *Simulation) Walker() Walker {
	return s.walker
}

// Goals returns a copy of the goals not yet collected
func (s *Simulation) Goals() *grid.Index[grid.Item] {
	return s.goals.Clone()
}

// Pending returns the number of goals not yet collected
func (s *Simulation) Pending() int {
	return s.goals.Len()
}

// JournalLen returns the number of moves not yet undone
func (s *Simulation) JournalLen() int {
	return len(s.journal)
}

// ProceedMove moves the walker to next and consumes any goal there, reporting
// whether one was eaten. Callers are expected to pass cells from AllMoves; no
// wall check happens here.
func (s *Simulation) ProceedMove(next grid.Location) bool {
	act := Action{Previous: s.walker.Location, Next: next, Facing: s.walker.Facing}
	if item, ok := s.goals.Get(next); ok {
		act.Item = &item
		s.goals.Delete(next)
	}
	if d, ok := s.level.DirectionTo(s.walker.Location, next); ok {
		s.walker.Facing = d
	}
	s.walker.Location = next
	s.journal = append(s.journal, act)
	return act.Item != nil
}

// UndoMove reverts the most recent move. It panics with ErrEmptyJournal when
// there is nothing to undo.
func (s *Simulation) UndoMove() {
	n := len(s.journal)
	if n == 0 {
		panic(ErrEmptyJournal)
	}
	act := s.journal[n-1]
	s.journal = s.journal[:n-1]

	s.walker = Walker{Location: act.Previous, Facing: act.Facing}
	if act.Item != nil {
		s.goals.Put(act.Next, *act.Item)
	}
}

// UndoAll reverts every recorded move
func (s *Simulation) UndoAll() {
	s.undoTo(0)
}

func (s *Simulation) undoTo(depth int) {
	for len(s.journal) > depth {
		s.UndoMove()
	}
}

type step struct {
	loc grid.Location
	dir grid.Direction
}

// candidates lists the passable neighbours of loc: forward, left, right, back.
func (s *Simulation) candidates(loc grid.Location, facing grid.Direction) []step {
	turns := [4]grid.Direction{facing, facing.Left(), facing.Right(), facing.Back()}
	steps := make([]step, 0, len(turns))
	for _, d := range turns {
		next, ok := s.level.Step(loc, d)
		if ok && s.level.Passable(next) {
			steps = append(steps, step{loc: next, dir: d})
		}
	}
	return steps
}

// AllMoves returns the cells the walker can step to, in forward, left, right,
// back order
func (s *Simulation) AllMoves() []grid.Location {
	steps := s.candidates(s.walker.Location, s.walker.Facing)
	moves := make([]grid.Location, len(steps))
	for i, st := range steps {
		moves[i] = st.loc
	}
	return moves
}

// pathNode links a cell to the node it was reached from
type pathNode struct {
	loc    grid.Location
	parent *pathNode
}

// locations walks back to the root and returns the path without the root
func (n *pathNode) locations() []grid.Location {
	var path []grid.Location
	for cur := n; cur != nil && cur.parent != nil; cur = cur.parent {
		path = append(path, cur.loc)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
