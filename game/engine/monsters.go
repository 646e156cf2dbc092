package engine

import "github.com/theduyngx/pacman-torusverse/game/grid"

// moveMonsters gives every monster its turn. Frozen monsters stay put and
// aggravated ones take two steps.
func (e *GameEngine) moveMonsters(r *TickResult) {
	if e.state.Frozen > 0 {
		return
	}
	steps := 1
	if e.state.Aggravated > 0 {
		steps = 2
	}
	for i := range e.state.Monsters {
		m := &e.state.Monsters[i]
		for s := 0; s < steps; s++ {
			switch m.Kind {
			case grid.TX5:
				e.moveTX5(m)
			default:
				e.moveTroll(m)
			}
			if m.Location == e.state.PacLocation {
				break
			}
		}
	}
}

// canEnter reports whether a monster may step from loc in direction d
func (e *GameEngine) canEnter(loc grid.Location, d grid.Direction) (grid.Location, bool) {
	next, ok := e.level.Step(loc, d)
	return next, ok && e.level.Passable(next)
}

// moveTroll turns left or right at random, else keeps going, else turns the
// other way, else goes back. Cells in the recent visited cycle are avoided
// while any other option exists.
func (e *GameEngine) moveTroll(m *MonsterState) {
	first, second := m.Facing.Left(), m.Facing.Right()
	if e.rng.Intn(2) == 0 {
		first, second = second, first
	}
	order := []grid.Direction{first, m.Facing, second, m.Facing.Back()}
	e.walk(m, order)
}

// moveTX5 heads for pacman when the direct step is open and fresh, and
// wanders like a troll otherwise
func (e *GameEngine) moveTX5(m *MonsterState) {
	d := e.compassTo(m.Location, e.state.PacLocation)
	if next, ok := e.canEnter(m.Location, d); ok && !m.visited(next) {
		e.place(m, next, d)
		return
	}
	e.moveTroll(m)
}

func (e *GameEngine) walk(m *MonsterState, order []grid.Direction) {
	for _, d := range order {
		if next, ok := e.canEnter(m.Location, d); ok && !m.visited(next) {
			e.place(m, next, d)
			return
		}
	}
	for _, d := range order {
		if next, ok := e.canEnter(m.Location, d); ok {
			e.place(m, next, d)
			return
		}
	}
}

func (e *GameEngine) place(m *MonsterState, next grid.Location, d grid.Direction) {
	m.Location = next
	m.Facing = d
	m.Visited = append(m.Visited, next)
	if len(m.Visited) > MonsterCycleLength {
		m.Visited = m.Visited[len(m.Visited)-MonsterCycleLength:]
	}
}

func (m *MonsterState) visited(loc grid.Location) bool {
	for _, v := range m.Visited {
		if v == loc {
			return true
		}
	}
	return false
}

// compassTo returns the heading that closes the larger gap between from and
// to, going the short way round on a torus
func (e *GameEngine) compassTo(from, to grid.Location) grid.Direction {
	dx := e.shortDelta(to.X-from.X, e.level.Size.Width)
	dy := e.shortDelta(to.Y-from.Y, e.level.Size.Height)
	if absInt(dx) >= absInt(dy) {
		if dx >= 0 {
			return grid.East
		}
		return grid.West
	}
	if dy > 0 {
		return grid.South
	}
	return grid.North
}

func (e *GameEngine) shortDelta(delta, size int) int {
	if e.level.Bounded || size == 0 {
		return delta
	}
	delta %= size
	if delta > size/2 {
		delta -= size
	} else if delta < -size/2 {
		delta += size
	}
	return delta
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
