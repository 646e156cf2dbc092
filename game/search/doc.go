// Package search implements the pathfinding used for level validation and for
// the autonomous player.
//
// All algorithms run on a Simulation: a scratch walker (location and facing)
// with its own copy of the goals still to collect and a journal of moves
// that can be undone. A Simulation is built from a level value and never
// touches the live game, so an abandoned search cannot corrupt game state.
//
// Algorithms:
//   - ReachableSet: stack DFS over every cell reachable from the walker
//   - CollectAll: breadth-first search over (location, remaining goals)
//     returning a shortest tour that collects every goal
//   - NextGoalPath: iterative deepening towards the nearest goal
//   - Planner.Route: A* between two cells on the torus
//
// Candidate moves are always tried forward, left, right, then back relative
// to the walker's facing, which makes tie-breaking deterministic.
//
// Usage:
//
//	sim := search.NewSimulation(level, search.Walker{Location: start, Facing: grid.East}, nil)
//	reachable := sim.ReachableSet()
//	path := sim.NextGoalPath()
package search
