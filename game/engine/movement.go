package engine

import (
	"fmt"
	"time"

	"github.com/theduyngx/pacman-torusverse/game/grid"
)

// stepPac moves pacman one cell in direction d
func (e *GameEngine) stepPac(r *TickResult, d grid.Direction, action string) bool {
	from := e.state.PacLocation
	e.state.PacFacing = d

	next, ok := e.level.Step(from, d)
	if !ok || !e.level.Passable(next) {
		what := "wall"
		if !ok {
			what = "edge"
		}
		e.state.Message = fmt.Sprintf("Can't move %s: %s at %s", d, what, next)
		r.Events = append(r.Events, Event{Type: EventBlocked, Message: e.state.Message, Location: next})
		e.state.AddMoveToHistory(action, from, from, false)
		return false
	}

	e.arrive(r, next)
	e.state.AddMoveToHistory(action, from, e.state.PacLocation, true)
	return true
}

// autoStep takes the next cell of the planned path, planning a new leg when
// the current one is used up. With nothing reachable pacman stays put.
func (e *GameEngine) autoStep(r *TickResult) bool {
	from := e.state.PacLocation
	if len(e.state.PlannedPath) == 0 {
		path := e.PlanNextGoal()
		if len(path) == 0 {
			e.state.Message = "Pacman has nowhere left to go"
			r.Events = append(r.Events, Event{Type: EventIdle, Message: e.state.Message, Location: from})
			return false
		}
		e.state.PlannedPath = path
		r.Events = append(r.Events, Event{
			Type:     EventPlan,
			Message:  fmt.Sprintf("Planned %d moves to %s", len(path), path[len(path)-1]),
			Location: path[len(path)-1],
		})
	}

	next := e.state.PlannedPath[0]
	e.state.PlannedPath = e.state.PlannedPath[1:]
	d, ok := e.level.DirectionTo(from, next)
	if !ok || !e.level.Passable(next) {
		// stale plan, for example after a teleport
		e.state.PlannedPath = nil
		return false
	}
	e.state.PacFacing = d
	e.arrive(r, next)
	if e.state.PacLocation != next {
		e.state.PlannedPath = nil
	}
	e.state.AddMoveToHistory("auto", from, e.state.PacLocation, true)
	return true
}

// arrive puts pacman on loc and applies whatever is there
func (e *GameEngine) arrive(r *TickResult, loc grid.Location) {
	e.state.PacLocation = loc
	e.state.Message = fmt.Sprintf("Pacman moved to %s", loc)
	r.Events = append(r.Events, Event{Type: EventMove, Message: e.state.Message, Location: loc})

	if exit, ok := e.level.PortalExit(loc); ok {
		e.state.PacLocation = exit
		e.state.Message = fmt.Sprintf("Portal %s -> %s", loc, exit)
		r.Events = append(r.Events, Event{Type: EventTeleport, Message: e.state.Message, Location: exit})
	}

	e.eat(r)
	e.checkCaught(r)
	if !e.IsGameOver() && e.remainingMandatory() == 0 {
		e.state.Status = StatusWon
		e.state.Message = fmt.Sprintf("Victory! Every item collected with a score of %d", e.state.Score)
		r.Events = append(r.Events, Event{Type: EventVictory, Message: e.state.Message, Location: e.state.PacLocation})
	}
}

// eat collects the item under pacman. Gold aggravates and Ice freezes the
// monsters in the multiverse version.
func (e *GameEngine) eat(r *TickResult) {
	loc := e.state.PacLocation
	item, ok := e.items.Get(loc)
	if !ok {
		return
	}
	e.items.Delete(loc)
	e.state.Score += item.Score
	if item.Mandatory() {
		e.state.ItemsEaten++
	}
	e.state.Message = fmt.Sprintf("Ate %s at %s, score %d", item.Kind, loc, e.state.Score)
	r.Events = append(r.Events, Event{Type: EventEat, Message: e.state.Message, Location: loc})

	if !e.props.Multiverse() || len(e.state.Monsters) == 0 {
		return
	}
	switch item.Kind {
	case grid.Gold:
		e.state.Aggravated = AggravateTicks
		r.Events = append(r.Events, Event{Type: EventAggravate, Message: "The monsters are furious", Location: loc})
	case grid.Ice:
		e.state.Frozen = FreezeTicks
		r.Events = append(r.Events, Event{Type: EventFreeze, Message: "The monsters are frozen", Location: loc})
	}
}

// checkCaught ends the game when a monster shares pacman's cell
func (e *GameEngine) checkCaught(r *TickResult) {
	if e.IsGameOver() {
		return
	}
	for _, m := range e.state.Monsters {
		if m.Location == e.state.PacLocation {
			e.state.Status = StatusLost
			e.state.Message = fmt.Sprintf("Caught by %s at %s. Game over with a score of %d",
				m.Kind, m.Location, e.state.Score)
			r.Events = append(r.Events, Event{Type: EventCaught, Message: e.state.Message, Location: m.Location})
			return
		}
	}
}

func (e *GameEngine) remainingMandatory() int {
	n := 0
	e.items.Each(func(_ grid.Location, item grid.Item) {
		if item.Mandatory() {
			n++
		}
	})
	return n
}

// AddMoveToHistory adds a move to the game's move history
func (gs *GameState) AddMoveToHistory(action string, from, to grid.Location, success bool) {
	entry := MoveHistoryEntry{
		Action:     action,
		From:       from,
		To:         to,
		Score:      gs.Score,
		Tick:       gs.Tick,
		Timestamp:  time.Now().Unix(),
		Success:    success,
		MoveNumber: gs.TotalMoves + 1,
	}
	// Append to cumulative history (never cleared by reset) and increment total
	gs.MoveHistory = append(gs.MoveHistory, entry)
	gs.TotalMoves++

	// Append to current segment history and increment its counter
	gs.CurrentMoves = append(gs.CurrentMoves, entry)
	gs.CurrentMovesCount++
}
