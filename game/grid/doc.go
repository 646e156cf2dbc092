// Package grid provides the board primitives of the Pacman torusverse.
//
// The grid package holds the value types every other package builds on:
//   - Location, a comparable (x,y) cell key
//   - Dimension and Direction, with torus wraparound arithmetic
//   - Index, the spatial index mapping locations to occupants
//   - Item, a tagged variant for Pill, Gold and Ice
//   - Level, a parsed board with walls, items, starts, monsters and portals
//
// Levels are read from and written to the XML layout used by the level
// editor:
//
//	<level>
//	  <size><width>5</width><height>5</height></size>
//	  <row><cell>WallTile</cell><cell>PillTile</cell>...</row>
//	</level>
//
// Cells are addressed by (x,y) where x is the cell index inside a row and y
// is the row index. Unless a level is marked Bounded, moving off one edge
// re-enters the board on the opposite edge.
package grid
