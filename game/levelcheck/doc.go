// Package levelcheck decides whether levels and game folders are playable.
//
// CheckLevel runs four independent checks on a level and reports every
// problem it finds, not just the first:
//   - exactly one pacman start
//   - every portal colour in use has exactly two tiles
//   - at least two mandatory items (Pill and Gold)
//   - every mandatory item is reachable from the start
//
// Each problem produces one diagnostic line of the form
//
//	[Level <name> – <problem>: <locations>]
//
// with locations sorted by x, then y. Diagnostics are returned in the Report
// and also written to the Checker's Reporter as they are found.
//
// CheckGame validates a folder of level files: file names must start with
// the level number, one file per level.
package levelcheck
