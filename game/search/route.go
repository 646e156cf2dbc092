package search

import (
	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"

	"github.com/theduyngx/pacman-torusverse/game/grid"
)

// boardPath implements paths.Astar over a level, wrapping across edges
// unless the level is bounded.
type boardPath struct {
	level *grid.Level
	nb    []gruid.Point
}

func toPoint(l grid.Location) gruid.Point {
	return gruid.Point{X: l.X, Y: l.Y}
}

func toLocation(p gruid.Point) grid.Location {
	return grid.Location{X: p.X, Y: p.Y}
}

func (bp *boardPath) Neighbors(p gruid.Point) []gruid.Point {
	bp.nb = bp.nb[:0]
	for _, d := range grid.Directions {
		next, ok := bp.level.Step(toLocation(p), d)
		if ok && bp.level.Passable(next) {
			bp.nb = append(bp.nb, toPoint(next))
		}
	}
	return bp.nb
}

func (bp *boardPath) Cost(p, q gruid.Point) int {
	return 1
}

func (bp *boardPath) Estimation(p, q gruid.Point) int {
	return bp.level.Distance(toLocation(p), toLocation(q))
}

// Planner answers point-to-point routing queries on one level. It caches
// search buffers and is not safe for concurrent use.
type Planner struct {
	level *grid.Level
	pr    *paths.PathRange
	bp    *boardPath
}

// NewPlanner creates a planner for level
func NewPlanner(level *grid.Level) *Planner {
	return &Planner{
		level: level,
		pr:    paths.NewPathRange(gruid.NewRange(0, 0, level.Size.Width, level.Size.Height)),
		bp:    &boardPath{level: level},
	}
}

// Route returns a shortest path from from to to, excluding from. It returns
// nil when to is unreachable or when from equals to.
func (p *Planner) Route(from, to grid.Location) []grid.Location {
	if from == to || !p.level.Passable(to) {
		return nil
	}
	pts := p.pr.AstarPath(p.bp, toPoint(from), toPoint(to))
	if len(pts) == 0 {
		return nil
	}
	if pts[0] == toPoint(from) {
		pts = pts[1:]
	}
	route := make([]grid.Location, len(pts))
	for i, pt := range pts {
		route[i] = toLocation(pt)
	}
	return route
}

// Distances returns the move distance from from to every reachable cell
// within maxDist moves
func (p *Planner) Distances(from grid.Location, maxDist int) map[grid.Location]int {
	nodes := p.pr.BreadthFirstMap(p.bp, []gruid.Point{toPoint(from)}, maxDist)
	dist := make(map[grid.Location]int, len(nodes))
	for _, n := range nodes {
		dist[toLocation(n.P)] = n.Cost
	}
	return dist
}
