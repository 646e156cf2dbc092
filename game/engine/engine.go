package engine

import (
	"fmt"
	"math/rand"

	"github.com/theduyngx/pacman-torusverse/game/grid"
	"github.com/theduyngx/pacman-torusverse/game/search"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Reset() *GameState
	IsGameOver() bool
	IsVictory() bool
	GetScore() int
	GetPacLocation() grid.Location

	// Movement operations
	Move(direction string) bool
	Step() *TickResult
	CanMove(direction string) bool
	GetPossibleMoves() []string
	SetAuto(auto bool)

	// Planning
	PlanNextGoal() []grid.Location
	PlanCollectAll() []grid.Location
	PlanRoute(to grid.Location) []grid.Location

	// Level and properties
	GetLevel() *grid.Level
	GetProperties() Properties

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry
}

// GameEngine implements the Engine interface
type GameEngine struct {
	level *grid.Level
	props Properties
	state *GameState
	items *grid.Index[grid.Item]
	rng   *rand.Rand
	last  *TickResult
}

// NewEngine creates a new game engine for a level
func NewEngine(level *grid.Level, props Properties) (*GameEngine, error) {
	if err := ValidateLevel(level); err != nil {
		return nil, err
	}
	e := &GameEngine{level: level, props: props}
	e.load(NewGameState(level, props))
	return e, nil
}

// load installs state and rebuilds the derived item index and RNG
func (e *GameEngine) load(state *GameState) {
	e.state = state
	e.items = grid.NewIndex[grid.Item]()
	for _, it := range state.Items {
		e.items.Put(it.Location, grid.Item{Kind: it.Kind, Score: it.Score})
	}
	e.rng = rand.New(rand.NewSource(e.props.Seed + int64(state.Tick)))
	e.refresh()
}

// refresh recomputes the derived views of the state
func (e *GameEngine) refresh() {
	items := make([]ItemState, 0, e.items.Len())
	remaining := 0
	e.items.Each(func(loc grid.Location, item grid.Item) {
		items = append(items, ItemState{Location: loc, Kind: item.Kind, Score: item.Score})
		if item.Mandatory() {
			remaining++
		}
	})
	e.state.Items = items
	e.state.Remaining = remaining
	e.state.Board = e.renderBoard()
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// SetState sets the game state (used for persistence loading)
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if state.Width != e.level.Size.Width || state.Height != e.level.Size.Height {
		return fmt.Errorf("state is for a %dx%d board, level %s is %dx%d",
			state.Width, state.Height, e.level.Name, e.level.Size.Width, e.level.Size.Height)
	}
	e.load(state)
	return nil
}

// Reset resets the game to initial state
func (e *GameEngine) Reset() *GameState {
	// Preserve cumulative history and totals across resets
	prevHistory := e.state.MoveHistory
	prevTotal := e.state.TotalMoves
	auto := e.state.Auto

	e.load(NewGameState(e.level, e.props))

	e.state.Auto = auto
	e.state.MoveHistory = prevHistory
	e.state.TotalMoves = prevTotal
	e.state.CurrentMoves = []MoveHistoryEntry{}
	e.state.CurrentMovesCount = 0

	return e.state
}

// IsGameOver returns whether the game is over
func (e *GameEngine) IsGameOver() bool {
	return e.state.GameOver()
}

// IsVictory returns whether pacman has collected everything
func (e *GameEngine) IsVictory() bool {
	return e.state.Status == StatusWon
}

// GetScore returns the current score
func (e *GameEngine) GetScore() int {
	return e.state.Score
}

// GetPacLocation returns the current pacman location
func (e *GameEngine) GetPacLocation() grid.Location {
	return e.state.PacLocation
}

// GetLevel returns the level being played
func (e *GameEngine) GetLevel() *grid.Level {
	return e.level
}

// GetProperties returns the game properties
func (e *GameEngine) GetProperties() Properties {
	return e.props
}

// SetAuto switches autonomous play on or off
func (e *GameEngine) SetAuto(auto bool) {
	e.state.Auto = auto
	if !auto {
		e.state.PlannedPath = nil
	}
}

// Move attempts to move pacman in the specified direction, then lets the
// monsters take their turn
func (e *GameEngine) Move(direction string) bool {
	if e.IsGameOver() {
		return false
	}
	d, ok := grid.ParseDirection(direction)
	if !ok {
		e.state.Message = fmt.Sprintf("Unknown direction %q", direction)
		return false
	}
	e.state.PlannedPath = nil
	res := e.tick(func(r *TickResult) bool { return e.stepPac(r, d, direction) })
	return res.Moved
}

// Step advances the game one tick. In auto mode pacman follows its planned
// path, planning a new leg when the old one runs out; otherwise pacman waits.
func (e *GameEngine) Step() *TickResult {
	if e.IsGameOver() {
		return &TickResult{Tick: e.state.Tick, From: e.state.PacLocation, To: e.state.PacLocation}
	}
	return e.tick(func(r *TickResult) bool {
		if !e.state.Auto {
			r.Events = append(r.Events, Event{Type: EventIdle, Message: "Pacman waits", Location: e.state.PacLocation})
			return false
		}
		return e.autoStep(r)
	})
}

// tick runs pacman's turn then the monsters' turn
func (e *GameEngine) tick(pacTurn func(r *TickResult) bool) *TickResult {
	r := &TickResult{Tick: e.state.Tick + 1, From: e.state.PacLocation, Events: []Event{}}
	e.state.Tick++

	r.Moved = pacTurn(r)
	if !e.IsGameOver() {
		e.moveMonsters(r)
		e.checkCaught(r)
	}
	if e.state.Aggravated > 0 {
		e.state.Aggravated--
	}
	if e.state.Frozen > 0 {
		e.state.Frozen--
	}

	r.To = e.state.PacLocation
	e.refresh()
	e.last = r
	return r
}

// LastTick returns the result of the most recent tick
func (e *GameEngine) LastTick() *TickResult {
	return e.last
}

// CanMove checks if pacman can move in the specified direction
func (e *GameEngine) CanMove(direction string) bool {
	if e.IsGameOver() {
		return false
	}
	d, ok := grid.ParseDirection(direction)
	if !ok {
		return false
	}
	next, ok := e.level.Step(e.state.PacLocation, d)
	return ok && e.level.Passable(next)
}

// GetPossibleMoves returns all valid directions pacman can move
func (e *GameEngine) GetPossibleMoves() []string {
	directions := []string{"up", "down", "left", "right"}
	var possible []string

	for _, dir := range directions {
		if e.CanMove(dir) {
			possible = append(possible, dir)
		}
	}

	return possible
}

// simulation builds a scratch search state from the live game
func (e *GameEngine) simulation() *search.Simulation {
	goals := grid.NewIndex[grid.Item]()
	e.items.Each(func(loc grid.Location, item grid.Item) {
		if item.Mandatory() {
			goals.Put(loc, item)
		}
	})
	walker := search.Walker{Location: e.state.PacLocation, Facing: e.state.PacFacing}
	return search.NewSimulation(e.level, walker, goals)
}

// PlanNextGoal returns the path to the nearest remaining item
func (e *GameEngine) PlanNextGoal() []grid.Location {
	return e.simulation().NextGoalPath()
}

// PlanCollectAll returns a shortest path collecting every remaining item
func (e *GameEngine) PlanCollectAll() []grid.Location {
	return e.simulation().CollectAll()
}

// PlanRoute returns a shortest path from pacman to a cell
func (e *GameEngine) PlanRoute(to grid.Location) []grid.Location {
	return search.NewPlanner(e.level).Route(e.state.PacLocation, to)
}

// GetMoveHistory returns the complete move history
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return e.state.MoveHistory
}

// GetLastMove returns the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.state.MoveHistory) == 0 {
		return nil
	}
	return &e.state.MoveHistory[len(e.state.MoveHistory)-1]
}

// Run steps the game until it ends or maxTicks ticks have passed
func (e *GameEngine) Run(maxTicks int) []*TickResult {
	if maxTicks > MaxStepTicks {
		maxTicks = MaxStepTicks
	}
	var results []*TickResult
	for i := 0; i < maxTicks && !e.IsGameOver(); i++ {
		results = append(results, e.Step())
	}
	return results
}
