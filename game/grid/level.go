package grid

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownTile   = errors.New("unknown tile")
	ErrInvalidLayout = errors.New("invalid level layout")
)

// MaxBoardCells caps width*height of a level
const MaxBoardCells = 1 << 16

// check rejects empty boards and boards over MaxBoardCells
func (d Dimension) check() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidLayout, d.Width, d.Height)
	}
	if d.Width > MaxBoardCells/d.Height {
		return fmt.Errorf("%w: size %dx%d exceeds %d cells", ErrInvalidLayout, d.Width, d.Height, MaxBoardCells)
	}
	return nil
}

// MonsterKind names the monster variants that can spawn on a level
type MonsterKind string

const (
	Troll MonsterKind = "Troll"
	TX5   MonsterKind = "TX5"
)

// PortalColor names a pair of linked portals
type PortalColor string

const (
	PortalWhite    PortalColor = "White"
	PortalYellow   PortalColor = "Yellow"
	PortalDarkGold PortalColor = "DarkGold"
	PortalDarkGray PortalColor = "DarkGray"
)

// PortalColors lists every colour in reporting order
var PortalColors = []PortalColor{PortalWhite, PortalYellow, PortalDarkGold, PortalDarkGray}

// Portal is a teleport tile
type Portal struct {
	Location Location    `json:"location"`
	Color    PortalColor `json:"color"`
}

// Spawn is the starting cell of a monster
type Spawn struct {
	Kind     MonsterKind `json:"kind"`
	Location Location    `json:"location"`
}

// Level is a parsed board. Walls and items are read-only once loaded; search
// code clones what it needs to mutate.
type Level struct {
	Name     string
	Size     Dimension
	Bounded  bool
	Walls    *Index[struct{}]
	Items    *Index[Item]
	Starts   []Location
	Monsters []Spawn
	Portals  []Portal
}

// NewLevel creates an empty toroidal level of the given size
func NewLevel(name string, width, height int) *Level {
	return &Level{
		Name:  name,
		Size:  Dimension{Width: width, Height: height},
		Walls: NewIndex[struct{}](),
		Items: NewIndex[Item](),
	}
}

// AddWall marks loc impassable
func (lv *Level) AddWall(loc Location) {
	lv.Walls.Put(loc, struct{}{})
}

// AddItem places an item of the given kind at loc
func (lv *Level) AddItem(loc Location, kind ItemKind) {
	lv.Items.Put(loc, NewItem(kind))
}

// Passable reports whether an actor may stand on loc
func (lv *Level) Passable(loc Location) bool {
	return !lv.Walls.Contains(loc)
}

// Step returns the cell next to loc in direction d. On a torus every step
// lands on the board; on a bounded level stepping off an edge reports false.
func (lv *Level) Step(loc Location, d Direction) (Location, bool) {
	next := loc.Offset(d)
	if lv.Bounded {
		return next, lv.Size.Contains(next)
	}
	return lv.Size.Wrap(next), true
}

// DirectionTo returns the heading that takes from to the adjacent cell to
func (lv *Level) DirectionTo(from, to Location) (Direction, bool) {
	for _, d := range Directions {
		if next, ok := lv.Step(from, d); ok && next == to {
			return d, true
		}
	}
	return East, false
}

// Distance is the Manhattan distance, taking the shorter way round each
// axis on a torus
func (lv *Level) Distance(a, b Location) int {
	dx, dy := absInt(a.X-b.X), absInt(a.Y-b.Y)
	if !lv.Bounded {
		dx = min(dx, lv.Size.Width-dx)
		dy = min(dy, lv.Size.Height-dy)
	}
	return dx + dy
}

// MandatoryItems returns a fresh index of the Pill and Gold items
func (lv *Level) MandatoryItems() *Index[Item] {
	goals := NewIndex[Item]()
	for loc, item := range lv.Items.cells {
		if item.Mandatory() {
			goals.Put(loc, item)
		}
	}
	return goals
}

// Start returns the pacman start when there is exactly one
func (lv *Level) Start() (Location, bool) {
	if len(lv.Starts) != 1 {
		return Location{}, false
	}
	return lv.Starts[0], true
}

// PortalsByColor groups portal locations by colour
func (lv *Level) PortalsByColor() map[PortalColor][]Location {
	groups := make(map[PortalColor][]Location)
	for _, p := range lv.Portals {
		groups[p.Color] = append(groups[p.Color], p.Location)
	}
	return groups
}

// PortalExit returns the cell a portal at loc sends an actor to. Only
// colours with exactly two tiles teleport.
func (lv *Level) PortalExit(loc Location) (Location, bool) {
	var color PortalColor
	found := false
	for _, p := range lv.Portals {
		if p.Location == loc {
			color, found = p.Color, true
			break
		}
	}
	if !found {
		return loc, false
	}
	pair := lv.PortalsByColor()[color]
	if len(pair) != 2 {
		return loc, false
	}
	if pair[0] == loc {
		return pair[1], true
	}
	return pair[0], true
}

// Clone returns a deep copy of the level
func (lv *Level) Clone() *Level {
	c := &Level{
		Name:     lv.Name,
		Size:     lv.Size,
		Bounded:  lv.Bounded,
		Walls:    lv.Walls.Clone(),
		Items:    lv.Items.Clone(),
		Starts:   append([]Location(nil), lv.Starts...),
		Monsters: append([]Spawn(nil), lv.Monsters...),
		Portals:  append([]Portal(nil), lv.Portals...),
	}
	return c
}

// Validate checks the board shape: positive size and every occupant on the board
func (lv *Level) Validate() error {
	if err := lv.Size.check(); err != nil {
		return err
	}
	check := func(what string, loc Location) error {
		if !lv.Size.Contains(loc) {
			return fmt.Errorf("%w: %s at %s is outside %dx%d board",
				ErrInvalidLayout, what, loc, lv.Size.Width, lv.Size.Height)
		}
		return nil
	}
	for loc := range lv.Walls.cells {
		if err := check("wall", loc); err != nil {
			return err
		}
	}
	for loc, item := range lv.Items.cells {
		if err := check(item.Kind.String(), loc); err != nil {
			return err
		}
	}
	for _, s := range lv.Starts {
		if err := check("start", s); err != nil {
			return err
		}
	}
	for _, m := range lv.Monsters {
		if err := check(string(m.Kind), m.Location); err != nil {
			return err
		}
	}
	for _, p := range lv.Portals {
		if err := check("portal "+string(p.Color), p.Location); err != nil {
			return err
		}
	}
	return nil
}
