package levelcheck

import (
	"fmt"

	"github.com/theduyngx/pacman-torusverse/game/grid"
	"github.com/theduyngx/pacman-torusverse/game/search"
)

// MinMandatoryItems is the fewest Pill and Gold items a playable level holds
const MinMandatoryItems = 2

// Reporter receives diagnostics as they are produced
type Reporter interface {
	Report(diagnostic string)
}

// ReporterFunc adapts a function to Reporter
type ReporterFunc func(string)

// Report calls f
func (f ReporterFunc) Report(diagnostic string) {
	f(diagnostic)
}

// Report is the outcome of checking one level
type Report struct {
	Level       string   `json:"level"`
	Valid       bool     `json:"valid"`
	Diagnostics []string `json:"diagnostics"`
}

// Checker runs level and game checks
type Checker struct {
	reporter Reporter
}

// NewChecker creates a checker. A nil reporter discards diagnostics.
func NewChecker(r Reporter) *Checker {
	if r == nil {
		r = ReporterFunc(func(string) {})
	}
	return &Checker{reporter: r}
}

// CheckLevel checks a level using a checker that only returns diagnostics
func CheckLevel(lv *grid.Level) *Report {
	return NewChecker(nil).CheckLevel(lv)
}

// CheckLevel runs every level check and reports all problems found
func (c *Checker) CheckLevel(lv *grid.Level) *Report {
	report := &Report{Level: lv.Name, Diagnostics: []string{}}
	emit := func(problem string, locs []grid.Location) {
		var line string
		if len(locs) == 0 {
			line = fmt.Sprintf("[Level %s – %s]", lv.Name, problem)
		} else {
			grid.SortLocations(locs)
			line = fmt.Sprintf("[Level %s – %s: %s]", lv.Name, problem, grid.JoinLocations(locs))
		}
		report.Diagnostics = append(report.Diagnostics, line)
		c.reporter.Report(line)
	}

	startOK := checkStart(lv, emit)
	portalsOK := checkPortals(lv, emit)
	countOK := checkItemCount(lv, emit)
	reachOK := checkReachable(lv, emit)

	report.Valid = startOK && portalsOK && countOK && reachOK
	return report
}

type emitFunc func(problem string, locs []grid.Location)

func checkStart(lv *grid.Level, emit emitFunc) bool {
	switch len(lv.Starts) {
	case 1:
		return true
	case 0:
		emit("no start for PacMan", nil)
	default:
		emit("more than one start for Pacman", append([]grid.Location(nil), lv.Starts...))
	}
	return false
}

func checkPortals(lv *grid.Level, emit emitFunc) bool {
	ok := true
	groups := lv.PortalsByColor()
	for _, color := range grid.PortalColors {
		locs := groups[color]
		if len(locs) == 0 || len(locs) == 2 {
			continue
		}
		emit(fmt.Sprintf("portal %s count is not 2", color), locs)
		ok = false
	}
	return ok
}

func checkItemCount(lv *grid.Level, emit emitFunc) bool {
	if lv.MandatoryItems().Len() >= MinMandatoryItems {
		return true
	}
	emit(fmt.Sprintf("less than %d Gold and Pill", MinMandatoryItems), nil)
	return false
}

// checkReachable reports mandatory items the first start cannot reach. With
// no start nothing is reachable.
func checkReachable(lv *grid.Level, emit emitFunc) bool {
	goals := lv.MandatoryItems()
	var unreachable []grid.Location
	if len(lv.Starts) == 0 {
		unreachable = goals.Locations()
	} else {
		sim := search.NewSimulation(lv, search.Walker{Location: lv.Starts[0]}, goals)
		unreachable = search.Unreachable(goals, sim.ReachableSet())
	}

	byKind := make(map[grid.ItemKind][]grid.Location)
	for _, loc := range unreachable {
		item, _ := goals.Get(loc)
		byKind[item.Kind] = append(byKind[item.Kind], loc)
	}
	for _, kind := range []grid.ItemKind{grid.Gold, grid.Pill} {
		if locs := byKind[kind]; len(locs) > 0 {
			emit(fmt.Sprintf("%s not accessible", kind), locs)
		}
	}
	return len(unreachable) == 0
}
