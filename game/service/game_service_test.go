package service_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/theduyngx/pacman-torusverse/game/engine"
	"github.com/theduyngx/pacman-torusverse/game/grid"
	"github.com/theduyngx/pacman-torusverse/game/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
	saves    int
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(id string, level *grid.Level, props engine.Properties) (*service.Session, error) {
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}
	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	eng, err := engine.NewEngine(level, props)
	if err != nil {
		return nil, err
	}

	session := &service.Session{
		ID:             id,
		Engine:         eng,
		Level:          level,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}
	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, service.ErrSessionNotFound
	}
	return session, nil
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return service.ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if session, exists := m.sessions[id]; exists {
		session.LastAccessedAt = time.Now()
		return nil
	}
	return service.ErrSessionNotFound
}

func (m *MockSessionManager) Save(id string) error {
	m.saves++
	return nil
}

// MockLevelManager implements service.LevelManager for testing
type MockLevelManager struct {
	levels map[string]*grid.Level
	saved  map[string]*grid.Level
	props  engine.Properties
	dir    string
}

var errMockLevelNotFound = errors.New("level not found")

func NewMockLevelManager(t *testing.T) *MockLevelManager {
	corridor, err := grid.ParseRows("corridor", []string{
		"P. $ ",
		"#####",
	})
	if err != nil {
		t.Fatalf("Failed to build level: %v", err)
	}
	return &MockLevelManager{
		levels: map[string]*grid.Level{"corridor": corridor},
		saved:  map[string]*grid.Level{},
		props:  engine.DefaultProperties(),
		dir:    t.TempDir(),
	}
}

func (m *MockLevelManager) LoadLevel(name string) (*grid.Level, error) {
	if lv, ok := m.levels[name]; ok {
		return lv, nil
	}
	return nil, errMockLevelNotFound
}

func (m *MockLevelManager) ListLevels() ([]*service.LevelInfo, error) {
	var infos []*service.LevelInfo
	for id, lv := range m.levels {
		infos = append(infos, &service.LevelInfo{LevelID: id, Width: lv.Size.Width, Height: lv.Size.Height})
	}
	return infos, nil
}

func (m *MockLevelManager) GetDefault() *grid.Level {
	return m.levels["corridor"]
}

func (m *MockLevelManager) SaveLevel(name string, level *grid.Level) error {
	m.saved[name] = level
	return nil
}

func (m *MockLevelManager) Properties() engine.Properties {
	return m.props
}

func (m *MockLevelManager) LevelDir() string {
	return m.dir
}

func newTestService(t *testing.T) (service.GameService, *MockSessionManager, *MockLevelManager) {
	sessions := NewMockSessionManager()
	levels := NewMockLevelManager(t)
	return service.NewGameService(sessions, levels), sessions, levels
}

func TestGameService_CreateSession(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	t.Run("default level", func(t *testing.T) {
		info, err := svc.CreateSession(ctx, "")
		if err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
		if info.LevelName != "corridor" {
			t.Errorf("Expected corridor, got %s", info.LevelName)
		}
		if info.GameState == nil || info.GameState.Remaining != 2 {
			t.Errorf("Expected 2 remaining items, got %+v", info.GameState)
		}
	})

	t.Run("named level", func(t *testing.T) {
		if _, err := svc.CreateSession(ctx, "corridor"); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
	})

	t.Run("missing level", func(t *testing.T) {
		_, err := svc.CreateSession(ctx, "nope")
		if !errors.Is(err, errMockLevelNotFound) {
			t.Errorf("Expected level not found, got %v", err)
		}
	})
}

func TestGameService_Move(t *testing.T) {
	svc, sessions, _ := newTestService(t)
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "")

	tests := []struct {
		name      string
		direction string
		success   bool
		score     int
		pos       grid.Location
	}{
		{"eat pill", "right", true, 1, grid.Location{X: 1, Y: 0}},
		{"wall below", "down", false, 1, grid.Location{X: 1, Y: 0}},
		{"back again", "left", true, 1, grid.Location{X: 0, Y: 0}},
		{"wrap to far edge", "left", true, 1, grid.Location{X: 4, Y: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Move(ctx, info.ID, tt.direction, false)
			if err != nil {
				t.Fatalf("Move failed: %v", err)
			}
			if result.Success != tt.success {
				t.Errorf("Expected success %v, got %v (%s)", tt.success, result.Success, result.Message)
			}
			if result.GameState.Score != tt.score {
				t.Errorf("Expected score %d, got %d", tt.score, result.GameState.Score)
			}
			if result.GameState.PacLocation != tt.pos {
				t.Errorf("Expected pacman at %s, got %s", tt.pos, result.GameState.PacLocation)
			}
			if result.Tick == nil {
				t.Error("Expected tick details")
			}
		})
	}

	if sessions.saves != len(tests) {
		t.Errorf("Expected a save per move, got %d", sessions.saves)
	}

	t.Run("invalid direction", func(t *testing.T) {
		_, err := svc.Move(ctx, info.ID, "diagonal", false)
		if !errors.Is(err, service.ErrInvalidDirection) {
			t.Errorf("Expected ErrInvalidDirection, got %v", err)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		_, err := svc.Move(ctx, "missing", "up", false)
		if !errors.Is(err, service.ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("reset before move", func(t *testing.T) {
		result, err := svc.Move(ctx, info.ID, "right", true)
		if err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		if result.Events[0].Type != "reset" {
			t.Errorf("Expected reset event first, got %s", result.Events[0].Type)
		}
		if result.GameState.Score != 1 || result.GameState.Remaining != 1 {
			t.Errorf("Expected fresh game with pill eaten, got score %d remaining %d",
				result.GameState.Score, result.GameState.Remaining)
		}
	})
}

func TestGameService_Step(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	t.Run("auto play wins", func(t *testing.T) {
		info, _ := svc.CreateSession(ctx, "")
		if _, err := svc.SetAuto(ctx, info.ID, true); err != nil {
			t.Fatalf("SetAuto failed: %v", err)
		}
		result, err := svc.Step(ctx, info.ID, 10, false)
		if err != nil {
			t.Fatalf("Step failed: %v", err)
		}
		if result.StoppedReason != "victory" {
			t.Errorf("Expected victory, got %q", result.StoppedReason)
		}
		if result.TicksExecuted != 3 || result.Moves != 3 {
			t.Errorf("Expected 3 ticks and moves, got %d and %d", result.TicksExecuted, result.Moves)
		}
		if result.ScoreDelta != 6 {
			t.Errorf("Expected score delta 6, got %d", result.ScoreDelta)
		}
		if result.EndPos != (grid.Location{X: 3, Y: 0}) {
			t.Errorf("Expected to end on the gold, got %s", result.EndPos)
		}
	})

	t.Run("manual mode idles", func(t *testing.T) {
		info, _ := svc.CreateSession(ctx, "")
		result, err := svc.Step(ctx, info.ID, 1000, false)
		if err != nil {
			t.Fatalf("Step failed: %v", err)
		}
		if !result.Truncated || result.Limit != engine.MaxStepTicks {
			t.Errorf("Expected truncation at %d, got %+v", engine.MaxStepTicks, result)
		}
		if result.StoppedReason != "idle" || result.TicksExecuted != 1 {
			t.Errorf("Expected to stop idle after one tick, got %q after %d", result.StoppedReason, result.TicksExecuted)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		info, _ := svc.CreateSession(ctx, "")
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := svc.Step(cancelled, info.ID, 5, false); !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	})
}

func TestGameService_Plan(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "")

	target := grid.Location{X: 4, Y: 0}
	offBoard := grid.Location{X: 9, Y: 9}

	tests := []struct {
		name    string
		req     service.PlanRequest
		want    []grid.Location
		wantErr bool
	}{
		{"next goal", service.PlanRequest{Mode: "next"}, []grid.Location{{X: 1, Y: 0}}, false},
		{"default mode", service.PlanRequest{}, []grid.Location{{X: 1, Y: 0}}, false},
		{"collect all", service.PlanRequest{Mode: "all"}, []grid.Location{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}, false},
		{"route wraps", service.PlanRequest{Mode: "route", Target: &target}, []grid.Location{{X: 4, Y: 0}}, false},
		{"route without target", service.PlanRequest{Mode: "route"}, nil, true},
		{"route off board", service.PlanRequest{Mode: "route", Target: &offBoard}, nil, true},
		{"unknown mode", service.PlanRequest{Mode: "teleport"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Plan(ctx, info.ID, tt.req)
			if tt.wantErr {
				if !errors.Is(err, service.ErrInvalidPlan) {
					t.Errorf("Expected ErrInvalidPlan, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Plan failed: %v", err)
			}
			if len(result.Path) != len(tt.want) {
				t.Fatalf("Expected path %v, got %v", tt.want, result.Path)
			}
			for i := range tt.want {
				if result.Path[i] != tt.want[i] {
					t.Errorf("Step %d: expected %s, got %s", i, tt.want[i], result.Path[i])
				}
			}
			if !result.Found || result.Length != len(tt.want) {
				t.Errorf("Unexpected result summary %+v", result)
			}
		})
	}

	state, _ := svc.GetGameState(ctx, info.ID)
	if state.Tick != 0 || state.Score != 0 {
		t.Errorf("Planning should not change the game, got tick %d score %d", state.Tick, state.Score)
	}
}

func TestGameService_GetMoveHistory(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "")

	for _, dir := range []string{"right", "down", "left"} {
		if _, err := svc.Move(ctx, info.ID, dir, false); err != nil {
			t.Fatalf("Move failed: %v", err)
		}
	}

	page1, err := svc.GetMoveHistory(ctx, info.ID, service.HistoryOptions{Limit: 2})
	if err != nil {
		t.Fatalf("GetMoveHistory failed: %v", err)
	}
	if page1.TotalMoves != 3 || page1.TotalPages != 2 || !page1.HasNext || page1.HasPrevious {
		t.Errorf("Unexpected pagination %+v", page1)
	}
	if len(page1.Moves) != 2 || page1.Moves[0].Action != "left" {
		t.Errorf("Expected newest move first, got %+v", page1.Moves)
	}

	asc, _ := svc.GetMoveHistory(ctx, info.ID, service.HistoryOptions{Page: 2, Limit: 2, Order: "asc"})
	if len(asc.Moves) != 1 || asc.Moves[0].Action != "left" || !asc.HasPrevious {
		t.Errorf("Unexpected ascending second page %+v", asc)
	}

	empty, _ := svc.GetMoveHistory(ctx, info.ID, service.HistoryOptions{Page: 5, Limit: 2})
	if len(empty.Moves) != 0 {
		t.Errorf("Expected empty page, got %d moves", len(empty.Moves))
	}
}

func TestGameService_SessionsAndReset(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	a, _ := svc.CreateSession(ctx, "")
	b, _ := svc.CreateSession(ctx, "")

	sessions, err := svc.ListSessions(ctx)
	if err != nil || len(sessions) != 2 {
		t.Fatalf("Expected 2 sessions, got %d (%v)", len(sessions), err)
	}

	svc.Move(ctx, a.ID, "right", false)
	stateB, _ := svc.GetGameState(ctx, b.ID)
	if stateB.Score != 0 {
		t.Error("Sessions should not share state")
	}

	state, err := svc.Reset(ctx, a.ID)
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if state.Score != 0 || state.PacLocation != (grid.Location{}) {
		t.Errorf("Expected fresh state, got score %d at %s", state.Score, state.PacLocation)
	}
	if state.TotalMoves != 1 {
		t.Errorf("Reset should keep total moves, got %d", state.TotalMoves)
	}

	if err := svc.DeleteSession(ctx, b.ID); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if _, err := svc.GetSession(ctx, b.ID); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestGameService_Levels(t *testing.T) {
	svc, _, levels := newTestService(t)
	ctx := context.Background()

	layout, err := svc.LoadLevel(ctx, "corridor")
	if err != nil {
		t.Fatalf("LoadLevel failed: %v", err)
	}
	if layout.Width != 5 || layout.Height != 2 || layout.Rows[0] != "P. $ " {
		t.Errorf("Unexpected layout %+v", layout)
	}

	layout.Rows[0] = "P.$  "
	if err := svc.SaveLevel(ctx, "copy", layout); err != nil {
		t.Fatalf("SaveLevel failed: %v", err)
	}
	saved := levels.saved["copy"]
	if saved == nil || saved.Name != "copy" {
		t.Fatalf("Expected level saved as copy, got %v", saved)
	}
	if item, ok := saved.Items.Get(grid.Location{X: 2, Y: 0}); !ok || item.Kind != grid.Gold {
		t.Error("Expected gold at (2,0) in saved level")
	}

	report, err := svc.CheckLevel(ctx, "corridor")
	if err != nil {
		t.Fatalf("CheckLevel failed: %v", err)
	}
	if !report.Valid {
		t.Errorf("Expected corridor to be valid, got %v", report.Diagnostics)
	}
}

func TestGameService_CheckGame(t *testing.T) {
	svc, _, levels := newTestService(t)
	ctx := context.Background()

	f, err := os.Create(filepath.Join(levels.dir, "1_corridor.xml"))
	if err != nil {
		t.Fatal(err)
	}
	if err := grid.EncodeLevel(f, levels.levels["corridor"]); err != nil {
		t.Fatal(err)
	}
	f.Close()

	report, err := svc.CheckGame(ctx)
	if err != nil {
		t.Fatalf("CheckGame failed: %v", err)
	}
	if !report.Valid || len(report.Files) != 1 {
		t.Errorf("Expected one valid level, got %+v", report)
	}
}
