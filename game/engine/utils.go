package engine

import "github.com/theduyngx/pacman-torusverse/game/grid"

// renderBoard draws the live board, one string per row:
// '#' wall, 'P' pacman, 'T' troll, 'X' TX5, '.' pill, '$' gold, '*' ice,
// W/Y/G/D portals and ' ' for an empty path.
func (e *GameEngine) renderBoard() []string {
	w, h := e.level.Size.Width, e.level.Size.Height
	rows := make([][]byte, h)
	for y := range rows {
		rows[y] = make([]byte, w)
		for x := range rows[y] {
			rows[y][x] = ' '
		}
	}
	set := func(loc grid.Location, ch byte) {
		if e.level.Size.Contains(loc) {
			rows[loc.Y][loc.X] = ch
		}
	}

	for _, loc := range e.level.Walls.Locations() {
		set(loc, '#')
	}
	portalGlyph := map[grid.PortalColor]byte{
		grid.PortalWhite: 'W', grid.PortalYellow: 'Y', grid.PortalDarkGold: 'G', grid.PortalDarkGray: 'D',
	}
	for _, p := range e.level.Portals {
		set(p.Location, portalGlyph[p.Color])
	}
	e.items.Each(func(loc grid.Location, item grid.Item) {
		switch item.Kind {
		case grid.Gold:
			set(loc, '$')
		case grid.Ice:
			set(loc, '*')
		default:
			set(loc, '.')
		}
	})
	for _, m := range e.state.Monsters {
		if m.Kind == grid.TX5 {
			set(m.Location, 'X')
		} else {
			set(m.Location, 'T')
		}
	}
	set(e.state.PacLocation, 'P')

	board := make([]string, h)
	for y, row := range rows {
		board[y] = string(row)
	}
	return board
}

// NearestItem returns the closest remaining mandatory item by board distance
// and whether there is one
func (e *GameEngine) NearestItem() (grid.Location, int, bool) {
	best, bestDist, found := grid.Location{}, 0, false
	e.items.Each(func(loc grid.Location, item grid.Item) {
		if !item.Mandatory() {
			return
		}
		d := e.level.Distance(e.state.PacLocation, loc)
		if !found || d < bestDist {
			best, bestDist, found = loc, d, true
		}
	})
	return best, bestDist, found
}

// CountItems counts the remaining items of a kind
func (e *GameEngine) CountItems(kind grid.ItemKind) int {
	n := 0
	e.items.Each(func(_ grid.Location, item grid.Item) {
		if item.Kind == kind {
			n++
		}
	})
	return n
}
