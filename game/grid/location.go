package grid

import (
	"fmt"
	"strings"
)

// Location is an (x,y) cell coordinate. It is a value type and is used as a map key.
type Location struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String renders the location as (x,y)
func (l Location) String() string {
	return fmt.Sprintf("(%d,%d)", l.X, l.Y)
}

// Less orders locations by X, then by Y
func (l Location) Less(o Location) bool {
	if l.X != o.X {
		return l.X < o.X
	}
	return l.Y < o.Y
}

// JoinLocations renders locations as "(x,y); (x,y)"
func JoinLocations(locs []Location) string {
	parts := make([]string, len(locs))
	for i, l := range locs {
		parts[i] = l.String()
	}
	return strings.Join(parts, "; ")
}

// Dimension is the width and height of a board
type Dimension struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains reports whether loc lies on the board without wrapping
func (d Dimension) Contains(loc Location) bool {
	return loc.X >= 0 && loc.X < d.Width && loc.Y >= 0 && loc.Y < d.Height
}

// Wrap maps any location onto the torus
func (d Dimension) Wrap(loc Location) Location {
	return Location{
		X: ((loc.X % d.Width) + d.Width) % d.Width,
		Y: ((loc.Y % d.Height) + d.Height) % d.Height,
	}
}

// Cells returns the number of cells on the board
func (d Dimension) Cells() int {
	return d.Width * d.Height
}

// Direction is a compass heading. Values follow the clockwise order on screen,
// where y grows downwards.
type Direction int

const (
	East Direction = iota
	South
	West
	North
)

// Directions lists every heading in clockwise order starting east
var Directions = []Direction{East, South, West, North}

// Right returns the heading after a quarter turn clockwise
func (d Direction) Right() Direction {
	return (d + 1) % 4
}

// Left returns the heading after a quarter turn counter-clockwise
func (d Direction) Left() Direction {
	return (d + 3) % 4
}

// Back returns the opposite heading
func (d Direction) Back() Direction {
	return (d + 2) % 4
}

// Delta returns the unit offset of the heading
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	case North:
		return 0, -1
	}
	return 0, 0
}

func (d Direction) String() string {
	switch d {
	case East:
		return "right"
	case South:
		return "down"
	case West:
		return "left"
	case North:
		return "up"
	}
	return "unknown"
}

// ParseDirection accepts up/down/left/right and the compass names
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "right", "east", "e":
		return East, true
	case "down", "south", "s":
		return South, true
	case "left", "west", "w":
		return West, true
	case "up", "north", "n":
		return North, true
	}
	return East, false
}

// Offset moves loc one cell in direction d without wrapping
func (l Location) Offset(d Direction) Location {
	dx, dy := d.Delta()
	return Location{X: l.X + dx, Y: l.Y + dy}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// MarshalText encodes the heading as up/down/left/right
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText accepts any name understood by ParseDirection
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, ok := ParseDirection(string(text))
	if !ok {
		return fmt.Errorf("unknown direction %q", string(text))
	}
	*d = parsed
	return nil
}
