package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/theduyngx/pacman-torusverse/game/engine"
	"github.com/theduyngx/pacman-torusverse/game/grid"
	"github.com/theduyngx/pacman-torusverse/game/levelcheck"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	levels   LevelManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, levels LevelManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		levels:   levels,
	}
}

func sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		LevelName:      sess.Level.Name,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		Properties:     sess.Engine.GetProperties(),
		GameState:      sess.Engine.GetState(),
	}
}

// getSession looks a session up and marks it accessed. Callers hold s.mu.
func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

// persist saves a session after it changed
func (s *gameServiceImpl) persist(sessionID, after string) {
	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after %s: %v", sessionID, after, err)
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, levelName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var level *grid.Level
	if levelName != "" {
		var err error
		level, err = s.levels.LoadLevel(levelName)
		if err != nil {
			if available, listErr := s.levels.ListLevels(); listErr == nil && len(available) > 0 {
				var ids []string
				for _, lv := range available {
					ids = append(ids, lv.LevelID)
				}
				return nil, fmt.Errorf("failed to load level '%s' (available: %s): %w",
					levelName, strings.Join(ids, ", "), err)
			}
			return nil, fmt.Errorf("failed to load level '%s': %w", levelName, err)
		}
	} else {
		level = s.levels.GetDefault()
	}

	session, err := s.sessions.Create("", level, s.levels.Properties())
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	log.Printf("Created session %s on level %s", session.ID, level.Name)

	return sessionInfo(session), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("session %s: %w", sessionID, err)
	}
	log.Printf("Deleted session %s", sessionID)
	return nil
}

// Move makes one manual move followed by the monsters' turn
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error) {
	if _, ok := grid.ParseDirection(direction); !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDirection, direction)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	events := []GameEvent{}
	if reset {
		sess.Engine.Reset()
		events = append(events, GameEvent{
			Type:      "reset",
			Message:   "Game reset to initial state",
			Timestamp: time.Now(),
			Location:  sess.Engine.GetPacLocation(),
		})
	}

	result := &MoveResult{}
	if sess.Engine.IsGameOver() {
		result.Message = "Game is over, reset to play again"
	} else {
		result.Success = sess.Engine.Move(direction)
		result.Tick = sess.Engine.LastTick()
		events = append(events, tickEvents(result.Tick)...)
	}

	state := sess.Engine.GetState()
	result.GameState = state
	result.Events = events
	result.PossibleMoves = sess.Engine.GetPossibleMoves()
	if result.Message == "" {
		result.Message = state.Message
	}

	s.persist(sessionID, "move")
	return result, nil
}

// Step advances a session by up to ticks ticks, stopping early when the
// game ends or pacman has nothing left to do
func (s *gameServiceImpl) Step(ctx context.Context, sessionID string, ticks int, reset bool) (*StepResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	if ticks <= 0 {
		ticks = 1
	}

	events := []GameEvent{}
	if reset {
		sess.Engine.Reset()
		events = append(events, GameEvent{
			Type:      "reset",
			Message:   "Game reset to initial state",
			Timestamp: time.Now(),
			Location:  sess.Engine.GetPacLocation(),
		})
	}

	start := sess.Engine.GetState()
	result := &StepResult{
		RequestedTicks: ticks,
		StartPos:       start.PacLocation,
	}
	startScore := start.Score

	if ticks > engine.MaxStepTicks {
		ticks = engine.MaxStepTicks
		result.Truncated = true
		result.Limit = engine.MaxStepTicks
	}

	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if sess.Engine.IsGameOver() {
			break
		}
		tick := sess.Engine.Step()
		result.TicksExecuted++
		result.Ticks = append(result.Ticks, tick)
		if tick.Moved {
			result.Moves++
		}
		events = append(events, tickEvents(tick)...)
		if !tick.Moved && hasIdle(tick) {
			result.StoppedReason = "idle"
			break
		}
	}

	state := sess.Engine.GetState()
	switch {
	case state.Status == engine.StatusWon:
		result.StoppedReason = "victory"
	case state.Status == engine.StatusLost:
		result.StoppedReason = "game_over"
	}
	result.GameState = state
	result.Events = events
	result.EndPos = state.PacLocation
	result.ScoreDelta = state.Score - startScore

	s.persist(sessionID, "step")
	return result, nil
}

func hasIdle(tick *engine.TickResult) bool {
	for _, ev := range tick.Events {
		if ev.Type == engine.EventIdle {
			return true
		}
	}
	return false
}

func tickEvents(tick *engine.TickResult) []GameEvent {
	if tick == nil {
		return nil
	}
	now := time.Now()
	events := make([]GameEvent, 0, len(tick.Events))
	for _, ev := range tick.Events {
		events = append(events, GameEvent{
			Type:      ev.Type,
			Message:   ev.Message,
			Timestamp: now,
			Location:  ev.Location,
		})
	}
	return events
}

// SetAuto switches pacman between manual and autonomous play
func (s *gameServiceImpl) SetAuto(ctx context.Context, sessionID string, auto bool) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	sess.Engine.SetAuto(auto)

	s.persist(sessionID, "auto switch")
	return sess.Engine.GetState(), nil
}

// Reset resets a game session to initial state
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	state := sess.Engine.Reset()

	s.persist(sessionID, "reset")
	return state, nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.GetState(), nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var moves []engine.MoveHistoryEntry
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else if start < total {
		moves = history[start:end]
	}
	if moves == nil {
		moves = []engine.MoveHistoryEntry{}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// Plan computes a path from pacman's cell without changing the game
func (s *gameServiceImpl) Plan(ctx context.Context, sessionID string, req PlanRequest) (*PlanResult, error) {
	mode := strings.ToLower(strings.TrimSpace(req.Mode))
	if mode == "" {
		mode = PlanNext
	}
	if mode == PlanRoute && req.Target == nil {
		return nil, fmt.Errorf("%w: route needs a target", ErrInvalidPlan)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	var path []grid.Location
	switch mode {
	case PlanNext:
		path = sess.Engine.PlanNextGoal()
	case PlanAll:
		path = sess.Engine.PlanCollectAll()
	case PlanRoute:
		if !sess.Level.Size.Contains(*req.Target) {
			return nil, fmt.Errorf("%w: target %s is off the board", ErrInvalidPlan, *req.Target)
		}
		path = sess.Engine.PlanRoute(*req.Target)
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidPlan, req.Mode)
	}
	if path == nil {
		path = []grid.Location{}
	}

	return &PlanResult{
		Mode:   mode,
		From:   sess.Engine.GetPacLocation(),
		Path:   path,
		Length: len(path),
		Found:  len(path) > 0,
	}, nil
}

// ListLevels returns the levels in the level directory
func (s *gameServiceImpl) ListLevels(ctx context.Context) ([]*LevelInfo, error) {
	return s.levels.ListLevels()
}

// LoadLevel returns a level as text rows
func (s *gameServiceImpl) LoadLevel(ctx context.Context, levelName string) (*LevelLayout, error) {
	lv, err := s.levels.LoadLevel(levelName)
	if err != nil {
		return nil, err
	}
	return NewLevelLayout(lv), nil
}

// SaveLevel parses layout rows and writes them as a level file
func (s *gameServiceImpl) SaveLevel(ctx context.Context, levelName string, layout *LevelLayout) error {
	if layout == nil {
		return errors.New("level layout cannot be nil")
	}
	lv, err := layout.Level(levelName)
	if err != nil {
		return err
	}
	return s.levels.SaveLevel(levelName, lv)
}

// CheckLevel runs the level checker on a stored level
func (s *gameServiceImpl) CheckLevel(ctx context.Context, levelName string) (*levelcheck.Report, error) {
	lv, err := s.levels.LoadLevel(levelName)
	if err != nil {
		return nil, err
	}
	return levelcheck.CheckLevel(lv), nil
}

// CheckGame checks the whole level directory as one game
func (s *gameServiceImpl) CheckGame(ctx context.Context) (*levelcheck.GameReport, error) {
	report, err := levelcheck.NewChecker(nil).CheckGame(s.levels.LevelDir())
	if err != nil {
		return report, fmt.Errorf("game %s: %w", filepath.Base(s.levels.LevelDir()), err)
	}
	return report, nil
}
