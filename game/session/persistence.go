package session

import (
	"time"

	"github.com/theduyngx/pacman-torusverse/game/engine"
	"github.com/theduyngx/pacman-torusverse/game/service"
)

// SessionPersistence defines the interface for persisting sessions
type SessionPersistence interface {
	// Save persists a session to storage
	Save(session *service.Session) error

	// Load retrieves a session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedSessionData represents the JSON structure for persisted sessions.
// The level layout is stored alongside the state so a session survives
// edits to its level file.
type PersistedSessionData struct {
	ID             string               `json:"id"`
	LevelName      string               `json:"level_name"`
	Level          *service.LevelLayout `json:"level,omitempty"`
	Properties     engine.Properties    `json:"properties"`
	CreatedAt      time.Time            `json:"created_at"`
	LastAccessedAt time.Time            `json:"last_accessed_at"`
	GameState      *engine.GameState    `json:"game_state"`
}
