// Command analyze prints pathfinding statistics for level files: how much of
// the board PacMan can reach, the distance to every pill and gold piece, the
// path the autonomous player would take first, and the length of the shortest
// walk that collects everything.
//
//	analyze levels
//	analyze --json levels/2_portals.xml
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/theduyngx/pacman-torusverse/game/grid"
	"github.com/theduyngx/pacman-torusverse/game/levelcheck"
	"github.com/theduyngx/pacman-torusverse/game/search"
)

// ItemDistance is the move distance from the start to one mandatory item.
type ItemDistance struct {
	Location  grid.Location `json:"location"`
	Kind      grid.ItemKind `json:"kind"`
	Distance  int           `json:"distance"`
	Reachable bool          `json:"reachable"`
}

// Analysis summarizes one level.
type Analysis struct {
	Name        string          `json:"name"`
	Width       int             `json:"width"`
	Height      int             `json:"height"`
	OpenCells   int             `json:"open_cells"`
	Start       *grid.Location  `json:"start,omitempty"`
	Reachable   int             `json:"reachable"`
	Items       []ItemDistance  `json:"items"`
	NextGoal    []grid.Location `json:"next_goal"`
	CollectAll  []grid.Location `json:"collect_all"`
	Diagnostics []string        `json:"diagnostics"`
}

// CollectAllFound reports whether a walk collecting every item exists.
func (a *Analysis) CollectAllFound() bool {
	return len(a.CollectAll) > 0 || len(a.Items) == 0
}

// analyzeLevel runs the searches on lv. maxStates bounds the collect-all
// search; zero keeps the default budget.
func analyzeLevel(lv *grid.Level, maxStates int) *Analysis {
	a := &Analysis{
		Name:        lv.Name,
		Width:       lv.Size.Width,
		Height:      lv.Size.Height,
		OpenCells:   lv.Size.Width*lv.Size.Height - lv.Walls.Len(),
		Items:       []ItemDistance{},
		NextGoal:    []grid.Location{},
		CollectAll:  []grid.Location{},
		Diagnostics: levelcheck.CheckLevel(lv).Diagnostics,
	}

	goals := lv.MandatoryItems()
	if len(lv.Starts) == 0 {
		for _, loc := range goals.Locations() {
			item, _ := goals.Get(loc)
			a.Items = append(a.Items, ItemDistance{Location: loc, Kind: item.Kind, Distance: -1})
		}
		return a
	}

	start := lv.Starts[0]
	a.Start = &start

	sim := search.NewSimulation(lv, search.Walker{Location: start, Facing: grid.East}, nil)
	sim.MaxStates = maxStates
	a.Reachable = sim.ReachableSet().Size()

	dist := search.NewPlanner(lv).Distances(start, lv.Size.Width*lv.Size.Height)
	for _, loc := range goals.Locations() {
		item, _ := goals.Get(loc)
		d, ok := dist[loc]
		if !ok {
			d = -1
		}
		a.Items = append(a.Items, ItemDistance{Location: loc, Kind: item.Kind, Distance: d, Reachable: ok})
	}
	sort.SliceStable(a.Items, func(i, j int) bool {
		return a.Items[i].Reachable && (!a.Items[j].Reachable || a.Items[i].Distance < a.Items[j].Distance)
	})

	if path := sim.NextGoalPath(); path != nil {
		a.NextGoal = path
	}
	if path := sim.CollectAll(); path != nil {
		a.CollectAll = path
	}
	return a
}

func printAnalysis(w io.Writer, a *Analysis) {
	fmt.Fprintf(w, "\n=== %s ===\n", a.Name)
	fmt.Fprintf(w, "Size: %d x %d (%d open cells)\n", a.Width, a.Height, a.OpenCells)
	if a.Start == nil {
		fmt.Fprintln(w, "Start: none")
	} else {
		fmt.Fprintf(w, "Start: %s\n", a.Start)
		fmt.Fprintf(w, "Reachable cells: %d/%d\n", a.Reachable, a.OpenCells)
	}

	fmt.Fprintf(w, "Items (%d):\n", len(a.Items))
	for _, it := range a.Items {
		if it.Reachable {
			fmt.Fprintf(w, "  %-4s %s distance %d\n", it.Kind, it.Location, it.Distance)
		} else {
			fmt.Fprintf(w, "  %-4s %s unreachable\n", it.Kind, it.Location)
		}
	}

	if len(a.NextGoal) > 0 {
		fmt.Fprintf(w, "Next goal: %s in %d moves\n", a.NextGoal[len(a.NextGoal)-1], len(a.NextGoal))
	} else {
		fmt.Fprintln(w, "Next goal: none")
	}
	if a.CollectAllFound() {
		fmt.Fprintf(w, "Collect all: %d moves\n", len(a.CollectAll))
	} else {
		fmt.Fprintln(w, "Collect all: impossible")
	}

	for _, d := range a.Diagnostics {
		fmt.Fprintf(w, "! %s\n", d)
	}
}

// levelPaths expands directories into their level files.
func levelPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(arg, "*"+levelcheck.LevelFileExt))
		if err != nil {
			return nil, err
		}
		sort.Strings(matches)
		paths = append(paths, matches...)
	}
	return paths, nil
}

func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "print reachability and path statistics for levels",
		ArgsUsage: "[file.xml|dir]...",
		Writer:    out,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print the analysis as JSON"},
			&cli.IntFlag{Name: "max-states", Usage: "state budget of the collect-all search (0 = default)"},
		},
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) == 0 {
				args = []string{"levels"}
			}
			paths, err := levelPaths(args)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			var results []*Analysis
			var failed []string
			for _, path := range paths {
				lv, err := levelcheck.LoadLevelFile(path)
				if err != nil {
					failed = append(failed, err.Error())
					continue
				}
				a := analyzeLevel(lv, int(cmd.Int("max-states")))
				if cmd.Bool("json") {
					results = append(results, a)
				} else {
					printAnalysis(out, a)
				}
			}

			if cmd.Bool("json") {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(results); err != nil {
					return err
				}
			}
			if len(failed) > 0 {
				return cli.Exit(strings.Join(failed, "\n"), 1)
			}
			return nil
		},
	}
}

func main() {
	err := newApp(os.Stdout).Run(context.Background(), os.Args)
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, err)
	if ec, ok := err.(cli.ExitCoder); ok {
		os.Exit(ec.ExitCode())
	}
	os.Exit(1)
}
