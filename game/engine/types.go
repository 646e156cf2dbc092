package engine

import "github.com/theduyngx/pacman-torusverse/game/grid"

const (
	// Limits
	MaxStepTicks        = 500
	MonsterCycleLength  = 10
	AggravateTicks      = 3
	FreezeTicks         = 3
	WebSocketBufferSize = 256
)

// Status is the outcome of a game so far
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Version selects the rule set
type Version string

const (
	VersionSimple     Version = "simple"
	VersionMultiverse Version = "multiverse"
)

// ItemState is a collectible still on the board
type ItemState struct {
	Location grid.Location `json:"location"`
	Kind     grid.ItemKind `json:"kind"`
	Score    int           `json:"score"`
}

// MonsterState is the position and short-term memory of a monster
type MonsterState struct {
	Kind     grid.MonsterKind `json:"kind"`
	Location grid.Location    `json:"location"`
	Facing   grid.Direction   `json:"facing"`
	Visited  []grid.Location  `json:"visited,omitempty"`
}

// GameState represents the complete game state
type GameState struct {
	LevelName   string          `json:"level_name"`
	Width       int             `json:"width"`
	Height      int             `json:"height"`
	Board       []string        `json:"board"`
	PacLocation grid.Location   `json:"pac_location"`
	PacFacing   grid.Direction  `json:"pac_facing"`
	Score       int             `json:"score"`
	ItemsEaten  int             `json:"items_eaten"`
	Remaining   int             `json:"remaining"`
	Items       []ItemState     `json:"items"`
	Monsters    []MonsterState  `json:"monsters"`
	Status      Status          `json:"status"`
	Tick        int             `json:"tick"`
	Auto        bool            `json:"auto"`
	Version     Version         `json:"version"`
	Aggravated  int             `json:"aggravated,omitempty"`
	Frozen      int             `json:"frozen,omitempty"`
	PlannedPath []grid.Location `json:"planned_path,omitempty"`
	Message     string          `json:"message"`

	MoveHistory []MoveHistoryEntry `json:"move_history"`
	TotalMoves  int                `json:"total_moves"`

	// CurrentMoves tracks only the moves since the last reset. It mirrors MoveHistory entries
	// but gets cleared on reset while MoveHistory remains cumulative.
	CurrentMoves      []MoveHistoryEntry `json:"current_moves"`
	CurrentMovesCount int                `json:"current_moves_count"`
}

// GameOver reports whether the game has ended
func (gs *GameState) GameOver() bool {
	return gs.Status != StatusPlaying
}

// MoveHistoryEntry represents a single pacman move in the game history
type MoveHistoryEntry struct {
	Action     string        `json:"action"`
	From       grid.Location `json:"from"`
	To         grid.Location `json:"to"`
	Score      int           `json:"score"`
	Tick       int           `json:"tick"`
	Timestamp  int64         `json:"timestamp"`
	Success    bool          `json:"success"`
	MoveNumber int           `json:"move_number"`
}

// Event kinds reported by a tick
const (
	EventMove      = "move"
	EventBlocked   = "blocked"
	EventEat       = "eat"
	EventTeleport  = "teleport"
	EventAggravate = "aggravate"
	EventFreeze    = "freeze"
	EventPlan      = "plan"
	EventIdle      = "idle"
	EventCaught    = "caught"
	EventVictory   = "victory"
)

// Event is something that happened during one tick
type Event struct {
	Type     string        `json:"type"`
	Message  string        `json:"message"`
	Location grid.Location `json:"location"`
}

// TickResult describes one tick of play
type TickResult struct {
	Tick   int           `json:"tick"`
	From   grid.Location `json:"from"`
	To     grid.Location `json:"to"`
	Moved  bool          `json:"moved"`
	Events []Event       `json:"events"`
}
