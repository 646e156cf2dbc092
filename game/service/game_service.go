package service

import (
	"context"
	"time"

	"github.com/theduyngx/pacman-torusverse/game/engine"
	"github.com/theduyngx/pacman-torusverse/game/grid"
	"github.com/theduyngx/pacman-torusverse/game/levelcheck"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, levelName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error)
	Step(ctx context.Context, sessionID string, ticks int, reset bool) (*StepResult, error)
	SetAuto(ctx context.Context, sessionID string, auto bool) (*engine.GameState, error)
	Reset(ctx context.Context, sessionID string) (*engine.GameState, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Planning
	Plan(ctx context.Context, sessionID string, req PlanRequest) (*PlanResult, error)

	// Levels
	ListLevels(ctx context.Context) ([]*LevelInfo, error)
	LoadLevel(ctx context.Context, levelName string) (*LevelLayout, error)
	SaveLevel(ctx context.Context, levelName string, layout *LevelLayout) error
	CheckLevel(ctx context.Context, levelName string) (*levelcheck.Report, error)
	CheckGame(ctx context.Context) (*levelcheck.GameReport, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, level *grid.Level, props engine.Properties) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// LevelManager handles level loading and game properties
type LevelManager interface {
	LoadLevel(name string) (*grid.Level, error)
	ListLevels() ([]*LevelInfo, error)
	GetDefault() *grid.Level
	SaveLevel(name string, level *grid.Level) error
	Properties() engine.Properties
	LevelDir() string
}

// Session represents an active game session
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Level          *grid.Level
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
