package service

import (
	"time"

	"github.com/theduyngx/pacman-torusverse/game/engine"
	"github.com/theduyngx/pacman-torusverse/game/grid"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string            `json:"id"`
	LevelName      string            `json:"level_name"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	Properties     engine.Properties `json:"properties"`
	GameState      *engine.GameState `json:"game_state"`
}

// MoveResult contains the result of a manual move
type MoveResult struct {
	Success       bool               `json:"success"`
	GameState     *engine.GameState  `json:"game_state"`
	Message       string             `json:"message"`
	Events        []GameEvent        `json:"events,omitempty"`
	Tick          *engine.TickResult `json:"tick,omitempty"`
	PossibleMoves []string           `json:"possible_moves,omitempty"`
}

// StepResult contains the result of advancing a session by several ticks
type StepResult struct {
	RequestedTicks int                  `json:"requested_ticks"`
	TicksExecuted  int                  `json:"ticks_executed"`
	Moves          int                  `json:"moves"`
	GameState      *engine.GameState    `json:"game_state"`
	Events         []GameEvent          `json:"events"`
	Ticks          []*engine.TickResult `json:"ticks,omitempty"`
	StoppedReason  string               `json:"stopped_reason,omitempty"` // idle|game_over|victory
	Truncated      bool                 `json:"truncated,omitempty"`
	Limit          int                  `json:"limit,omitempty"`

	StartPos   grid.Location `json:"start_pos"`
	EndPos     grid.Location `json:"end_pos"`
	ScoreDelta int           `json:"score_delta"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string        `json:"type"`
	Message   string        `json:"message"`
	Timestamp time.Time     `json:"timestamp"`
	Location  grid.Location `json:"location"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// Plan modes
const (
	PlanNext  = "next"
	PlanAll   = "all"
	PlanRoute = "route"
)

// PlanRequest selects a planner. Target is only used by the route mode.
type PlanRequest struct {
	Mode   string         `json:"mode"`
	Target *grid.Location `json:"target,omitempty"`
}

// PlanResult is a planned path from pacman's current cell, start excluded
type PlanResult struct {
	Mode   string          `json:"mode"`
	From   grid.Location   `json:"from"`
	Path   []grid.Location `json:"path"`
	Length int             `json:"length"`
	Found  bool            `json:"found"`
}

// LevelInfo provides information about a level file
type LevelInfo struct {
	Filename    string   `json:"filename"`
	LevelID     string   `json:"level_id"` // The identifier to use for session creation
	Number      int      `json:"number,omitempty"`
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	Pills       int      `json:"pills"`
	Gold        int      `json:"gold"`
	Valid       bool     `json:"valid"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

// LevelLayout is the text form of a level used by the API
type LevelLayout struct {
	Name    string   `json:"name"`
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Bounded bool     `json:"bounded,omitempty"`
	Rows    []string `json:"rows"`
}

// NewLevelLayout renders a level as text rows
func NewLevelLayout(lv *grid.Level) *LevelLayout {
	return &LevelLayout{
		Name:    lv.Name,
		Width:   lv.Size.Width,
		Height:  lv.Size.Height,
		Bounded: lv.Bounded,
		Rows:    lv.Rows(),
	}
}

// Level parses the layout rows back into a level
func (l *LevelLayout) Level(name string) (*grid.Level, error) {
	if name == "" {
		name = l.Name
	}
	lv, err := grid.ParseRows(name, l.Rows)
	if err != nil {
		return nil, err
	}
	lv.Bounded = l.Bounded
	return lv, nil
}
