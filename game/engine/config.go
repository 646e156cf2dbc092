package engine

import (
	"errors"
	"fmt"

	"github.com/theduyngx/pacman-torusverse/game/grid"
)

var ErrUnplayableLevel = errors.New("level cannot be played")

// Properties are the per-game settings read from the properties file
type Properties struct {
	Seed       int64   `json:"seed"`
	Version    Version `json:"version"`
	PacManAuto bool    `json:"pacman_auto"`
}

// DefaultProperties returns the settings used when no properties file exists
func DefaultProperties() Properties {
	return Properties{Seed: 30006, Version: VersionSimple}
}

// Multiverse reports whether the multiverse rules are active
func (p Properties) Multiverse() bool {
	return p.Version == VersionMultiverse
}

// ValidateLevel checks that a level can be handed to the engine: a sane
// board with exactly one pacman start. Solvability is the level checker's
// concern.
func ValidateLevel(level *grid.Level) error {
	if level == nil {
		return fmt.Errorf("%w: level cannot be nil", ErrUnplayableLevel)
	}
	if err := level.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnplayableLevel, err)
	}
	if _, ok := level.Start(); !ok {
		return fmt.Errorf("%w: level %s needs exactly one pacman start, has %d",
			ErrUnplayableLevel, level.Name, len(level.Starts))
	}
	for _, p := range level.Starts {
		if !level.Passable(p) {
			return fmt.Errorf("%w: pacman starts inside a wall at %s", ErrUnplayableLevel, p)
		}
	}
	return nil
}

// NewGameState creates the opening state of a level
func NewGameState(level *grid.Level, props Properties) *GameState {
	start, _ := level.Start()
	version := props.Version
	if version == "" {
		version = VersionSimple
	}

	state := &GameState{
		LevelName:    level.Name,
		Width:        level.Size.Width,
		Height:       level.Size.Height,
		PacLocation:  start,
		PacFacing:    grid.East,
		Status:       StatusPlaying,
		Auto:         props.PacManAuto,
		Version:      version,
		Message:      fmt.Sprintf("Level %s: collect every pill and gold piece.", level.Name),
		Items:        []ItemState{},
		Monsters:     []MonsterState{},
		MoveHistory:  []MoveHistoryEntry{},
		CurrentMoves: []MoveHistoryEntry{},
	}

	level.Items.Each(func(loc grid.Location, item grid.Item) {
		if loc == start {
			return
		}
		state.Items = append(state.Items, ItemState{Location: loc, Kind: item.Kind, Score: item.Score})
		if item.Mandatory() {
			state.Remaining++
		}
	})
	for _, m := range level.Monsters {
		state.Monsters = append(state.Monsters, MonsterState{Kind: m.Kind, Location: m.Location, Facing: grid.East})
	}
	return state
}
