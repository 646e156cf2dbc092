package grid

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Tile names used by the level editor
const (
	TileWall           = "WallTile"
	TilePath           = "PathTile"
	TilePill           = "PillTile"
	TileGold           = "GoldTile"
	TileIce            = "IceTile"
	TilePac            = "PacTile"
	TileTroll          = "TrollTile"
	TileTX5            = "TX5Tile"
	TilePortalWhite    = "PortalWhiteTile"
	TilePortalYellow   = "PortalYellowTile"
	TilePortalDarkGold = "PortalDarkGoldTile"
	TilePortalDarkGray = "PortalDarkGrayTile"
)

type xmlSize struct {
	Width  int `xml:"width"`
	Height int `xml:"height"`
}

type xmlRow struct {
	Cells []string `xml:"cell"`
}

type xmlLevel struct {
	XMLName xml.Name `xml:"level"`
	Bounded bool     `xml:"bounded,attr,omitempty"`
	Size    xmlSize  `xml:"size"`
	Rows    []xmlRow `xml:"row"`
}

var portalTiles = map[string]PortalColor{
	TilePortalWhite:    PortalWhite,
	TilePortalYellow:   PortalYellow,
	TilePortalDarkGold: PortalDarkGold,
	TilePortalDarkGray: PortalDarkGray,
}

// DecodeLevel parses an editor XML layout. Cells missing from short rows are
// paths. A bounded="true" attribute on the root turns wraparound off.
func DecodeLevel(name string, r io.Reader) (*Level, error) {
	var doc xmlLevel
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse level %s: %w", name, err)
	}

	lv := NewLevel(name, doc.Size.Width, doc.Size.Height)
	if err := lv.Size.check(); err != nil {
		return nil, fmt.Errorf("level %s: %w", name, err)
	}
	lv.Bounded = doc.Bounded
	if len(doc.Rows) > lv.Size.Height {
		return nil, fmt.Errorf("%w: level %s has %d rows, height is %d", ErrInvalidLayout, name, len(doc.Rows), lv.Size.Height)
	}

	for y, row := range doc.Rows {
		if len(row.Cells) > lv.Size.Width {
			return nil, fmt.Errorf("%w: level %s row %d has %d cells, width is %d",
				ErrInvalidLayout, name, y, len(row.Cells), lv.Size.Width)
		}
		for x, tile := range row.Cells {
			if err := lv.placeTile(Location{X: x, Y: y}, strings.TrimSpace(tile)); err != nil {
				return nil, fmt.Errorf("level %s: %w", name, err)
			}
		}
	}
	return lv, nil
}

func (lv *Level) placeTile(loc Location, tile string) error {
	switch tile {
	case TilePath, "":
	case TileWall:
		lv.AddWall(loc)
	case TilePill:
		lv.AddItem(loc, Pill)
	case TileGold:
		lv.AddItem(loc, Gold)
	case TileIce:
		lv.AddItem(loc, Ice)
	case TilePac:
		lv.Starts = append(lv.Starts, loc)
	case TileTroll:
		lv.Monsters = append(lv.Monsters, Spawn{Kind: Troll, Location: loc})
	case TileTX5:
		lv.Monsters = append(lv.Monsters, Spawn{Kind: TX5, Location: loc})
	default:
		color, ok := portalTiles[tile]
		if !ok {
			return fmt.Errorf("%w %q at %s", ErrUnknownTile, tile, loc)
		}
		lv.Portals = append(lv.Portals, Portal{Location: loc, Color: color})
	}
	return nil
}

// TileAt returns the editor tile name for a cell. Walls win over anything
// else placed on the same cell.
func (lv *Level) TileAt(loc Location) string {
	if lv.Walls.Contains(loc) {
		return TileWall
	}
	for _, s := range lv.Starts {
		if s == loc {
			return TilePac
		}
	}
	for _, m := range lv.Monsters {
		if m.Location == loc {
			if m.Kind == TX5 {
				return TileTX5
			}
			return TileTroll
		}
	}
	for _, p := range lv.Portals {
		if p.Location == loc {
			return "Portal" + string(p.Color) + "Tile"
		}
	}
	if item, ok := lv.Items.Get(loc); ok {
		switch item.Kind {
		case Gold:
			return TileGold
		case Ice:
			return TileIce
		default:
			return TilePill
		}
	}
	return TilePath
}

// EncodeLevel writes the level in the editor XML layout
func EncodeLevel(w io.Writer, lv *Level) error {
	doc := xmlLevel{Bounded: lv.Bounded, Size: xmlSize{Width: lv.Size.Width, Height: lv.Size.Height}}
	doc.Rows = make([]xmlRow, lv.Size.Height)
	for y := 0; y < lv.Size.Height; y++ {
		cells := make([]string, lv.Size.Width)
		for x := 0; x < lv.Size.Width; x++ {
			cells[x] = lv.TileAt(Location{X: x, Y: y})
		}
		doc.Rows[y] = xmlRow{Cells: cells}
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode level %s: %w", lv.Name, err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// ParseRows builds a level from text rows, one character per cell:
//
//	#  wall        .  pill       $  gold      *  ice
//	P  pacman      T  troll      X  TX5
//	W Y G D  portals (White, Yellow, DarkGold, DarkGray)
//
// Any other character is a path.
func ParseRows(name string, rows []string) (*Level, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: level %s has no rows", ErrInvalidLayout, name)
	}
	width := len(rows[0])
	lv := NewLevel(name, width, len(rows))
	if err := lv.Size.check(); err != nil {
		return nil, fmt.Errorf("level %s: %w", name, err)
	}
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: level %s row %d has width %d, expected %d",
				ErrInvalidLayout, name, y, len(row), width)
		}
		for x, ch := range row {
			loc := Location{X: x, Y: y}
			switch ch {
			case '#':
				lv.AddWall(loc)
			case '.':
				lv.AddItem(loc, Pill)
			case '$':
				lv.AddItem(loc, Gold)
			case '*':
				lv.AddItem(loc, Ice)
			case 'P':
				lv.Starts = append(lv.Starts, loc)
			case 'T':
				lv.Monsters = append(lv.Monsters, Spawn{Kind: Troll, Location: loc})
			case 'X':
				lv.Monsters = append(lv.Monsters, Spawn{Kind: TX5, Location: loc})
			case 'W':
				lv.Portals = append(lv.Portals, Portal{Location: loc, Color: PortalWhite})
			case 'Y':
				lv.Portals = append(lv.Portals, Portal{Location: loc, Color: PortalYellow})
			case 'G':
				lv.Portals = append(lv.Portals, Portal{Location: loc, Color: PortalDarkGold})
			case 'D':
				lv.Portals = append(lv.Portals, Portal{Location: loc, Color: PortalDarkGray})
			}
		}
	}
	return lv, nil
}

// Rows renders the level in the text form accepted by ParseRows
func (lv *Level) Rows() []string {
	glyphs := map[string]byte{
		TileWall: '#', TilePill: '.', TileGold: '$', TileIce: '*',
		TilePac: 'P', TileTroll: 'T', TileTX5: 'X',
		TilePortalWhite: 'W', TilePortalYellow: 'Y', TilePortalDarkGold: 'G', TilePortalDarkGray: 'D',
	}
	rows := make([]string, lv.Size.Height)
	for y := range rows {
		buf := make([]byte, lv.Size.Width)
		for x := range buf {
			g, ok := glyphs[lv.TileAt(Location{X: x, Y: y})]
			if !ok {
				g = ' '
			}
			buf[x] = g
		}
		rows[y] = string(buf)
	}
	return rows
}
