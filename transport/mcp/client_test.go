package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/theduyngx/pacman-torusverse/game/engine"
	"github.com/theduyngx/pacman-torusverse/game/grid"
	"github.com/theduyngx/pacman-torusverse/game/levelcheck"
	"github.com/theduyngx/pacman-torusverse/game/service"
)

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("Expected result, got nil")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	return text.Text
}

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080/")

	if client.baseURL != "http://localhost:8080" {
		t.Errorf("Expected trailing slash trimmed, got %s", client.baseURL)
	}
	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}
	if client.GetMCPServer() == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"id": "abcd1234", "score": 6})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	if err := client.apiCall(context.Background(), "GET", "/api", nil, &response); err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}
	if response["id"] != "abcd1234" {
		t.Errorf("Expected id abcd1234, got %v", response["id"])
	}
}

func TestClient_apiCall_Errors(t *testing.T) {
	t.Run("unreachable", func(t *testing.T) {
		client := NewClient("http://invalid-url-that-does-not-exist:9999")
		if err := client.apiCall(context.Background(), "GET", "/api", nil, nil); err == nil {
			t.Error("Expected error for invalid URL")
		}
	})

	t.Run("status without body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
		}))
		defer server.Close()

		err := NewClient(server.URL).apiCall(context.Background(), "GET", "/api", nil, nil)
		if err == nil || !strings.Contains(err.Error(), "API error") {
			t.Errorf("Expected 'API error', got: %v", err)
		}
	})

	t.Run("error body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "session nope: session not found"})
		}))
		defer server.Close()

		err := NewClient(server.URL).apiCall(context.Background(), "GET", "/api", nil, nil)
		if err == nil || err.Error() != "session nope: session not found" {
			t.Errorf("Expected API message, got: %v", err)
		}
	})
}

func TestClient_handleCreateSession(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions" {
			t.Errorf("Expected POST /api/sessions, got %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)

		json.NewEncoder(w).Encode(service.SessionInfo{
			ID:        "1a2b3c4d",
			LevelName: "2_portals",
			GameState: &engine.GameState{Board: []string{"P.$"}, Status: engine.StatusPlaying},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handleCreateSession(context.Background(),
		callRequest("create_session", map[string]interface{}{"level_id": "2_portals"}))
	if err != nil {
		t.Fatalf("handleCreateSession failed: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "1a2b3c4d") || !strings.Contains(text, "P.$") {
		t.Errorf("Expected session ID and board in result, got: %s", text)
	}
	if gotBody["level_id"] != "2_portals" {
		t.Errorf("Expected level_id forwarded, got %v", gotBody)
	}
}

func TestClient_handleStep(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/sessions/1a2b3c4d/step" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		var body struct {
			Ticks int `json:"ticks"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.Ticks != 7 {
			t.Errorf("Expected 7 ticks, got %d", body.Ticks)
		}

		json.NewEncoder(w).Encode(service.StepResult{
			RequestedTicks: 7,
			TicksExecuted:  3,
			Moves:          3,
			StoppedReason:  "victory",
			ScoreDelta:     6,
			GameState:      &engine.GameState{Status: engine.StatusWon},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handleStep(context.Background(), callRequest("step", map[string]interface{}{
		"session_id": "1a2b3c4d",
		"ticks":      float64(7),
	}))
	if err != nil {
		t.Fatalf("handleStep failed: %v", err)
	}

	text := resultText(t, result)
	for _, want := range []string{"Executed 3/7 ticks", "Stopped: victory", "Score +6", "🎉 VICTORY!"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in result, got: %s", want, text)
		}
	}
}

func TestClient_handlePlan(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("mode") != "route" || q.Get("x") != "4" || q.Get("y") != "0" {
			t.Errorf("Unexpected query %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(service.PlanResult{
			Mode:   "route",
			From:   grid.Location{X: 0, Y: 0},
			Path:   []grid.Location{{X: 4, Y: 0}},
			Length: 1,
			Found:  true,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handlePlan(context.Background(), callRequest("plan", map[string]interface{}{
		"session_id": "s1",
		"mode":       "route",
		"x":          float64(4),
		"y":          float64(0),
	}))
	if err != nil {
		t.Fatalf("handlePlan failed: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "1 moves") || !strings.Contains(text, "(4,0)") {
		t.Errorf("Unexpected plan text: %s", text)
	}
}

func TestClient_handleErrorsBecomeToolErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid direction: \"sideways\""})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handleMove(context.Background(), callRequest("move", map[string]interface{}{
		"session_id": "s1",
		"direction":  "sideways",
	}))
	if err != nil {
		t.Fatalf("handleMove returned a protocol error: %v", err)
	}
	if !result.IsError {
		t.Error("Expected tool error result")
	}
	if !strings.Contains(resultText(t, result), "invalid direction") {
		t.Errorf("Expected API message in tool error")
	}
}

func TestFormatGameState(t *testing.T) {
	tests := []struct {
		name  string
		state *engine.GameState
		want  []string
	}{
		{
			name: "playing",
			state: &engine.GameState{
				PacLocation: grid.Location{X: 5, Y: 3},
				PacFacing:   grid.North,
				Score:       10,
				Remaining:   4,
				Board:       []string{"#####", "#P.$#"},
				Status:      engine.StatusPlaying,
				Message:     "Level 1_classic",
			},
			want: []string{"Position: (5,3) facing up", "Score: 10", "Remaining: 4", "#P.$#", "Level 1_classic"},
		},
		{
			name:  "lost",
			state: &engine.GameState{Status: engine.StatusLost},
			want:  []string{"💀 GAME OVER"},
		},
		{
			name:  "won",
			state: &engine.GameState{Status: engine.StatusWon, Auto: true},
			want:  []string{"🎉 VICTORY!", "Mode: auto"},
		},
		{
			name:  "multiverse effects",
			state: &engine.GameState{Aggravated: 2, Frozen: 1},
			want:  []string{"aggravated for 2 ticks", "frozen for 1 ticks"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatGameState(tt.state)
			for _, want := range tt.want {
				if !strings.Contains(result, want) {
					t.Errorf("Expected %q in formatted output, got: %s", want, result)
				}
			}
		})
	}

	if formatGameState(nil) != "No game state available" {
		t.Error("Expected placeholder for nil state")
	}
}

func TestFormatMoveResult(t *testing.T) {
	result := formatMoveResult(&service.MoveResult{
		Success:       true,
		Tick:          &engine.TickResult{Tick: 2, From: grid.Location{X: 1, Y: 0}, To: grid.Location{X: 2, Y: 0}},
		Events:        []service.GameEvent{{Type: engine.EventEat, Message: "ate Pill"}},
		PossibleMoves: []string{"left", "right"},
		GameState:     &engine.GameState{Score: 2},
	})

	for _, want := range []string{"✓ Move successful", "Tick 2: (1,0)→(2,0)", "- eat: ate Pill", "Possible moves: left,right", "Score: 2"} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected %q in formatted output, got: %s", want, result)
		}
	}

	failed := formatMoveResult(&service.MoveResult{Success: false, Message: "Game is over, reset to play again"})
	if !strings.Contains(failed, "✗ Move failed") {
		t.Errorf("Expected failure marker, got: %s", failed)
	}
}

func TestFormatReports(t *testing.T) {
	ok := formatReport(&levelcheck.Report{Level: "1_classic", Valid: true})
	if ok != "Level 1_classic: OK" {
		t.Errorf("Unexpected report text %q", ok)
	}

	bad := formatReport(&levelcheck.Report{
		Level:       "2_bad",
		Diagnostics: []string{"[Level 2_bad – no start for PacMan]", "[Level 2_bad – less than 2 Gold and Pill]"},
	})
	if !strings.Contains(bad, "2 problems") || !strings.Contains(bad, "no start for PacMan") {
		t.Errorf("Unexpected report text %q", bad)
	}

	game := formatGameReport(&levelcheck.GameReport{
		Game:        "levels",
		Diagnostics: []string{"[Game levels - multiple maps at same level: 1_a.xml; 1_b.xml]"},
	})
	if !strings.Contains(game, "problems found") || !strings.Contains(game, "multiple maps") {
		t.Errorf("Unexpected game report text %q", game)
	}
}

func TestClient_handleGameInstructions(t *testing.T) {
	client := NewClient("http://localhost:8080")

	result, err := client.handleGameInstructions(context.Background(), callRequest("game_instructions", nil))
	if err != nil {
		t.Fatalf("handleGameInstructions failed: %v", err)
	}

	text := resultText(t, result)
	for _, want := range []string{"GAME OBJECTIVE:", "BOARD LEGEND:", "TORUS:", "MULTIVERSE RULES", "LEVEL CHECKS:"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in instructions", want)
		}
	}
}
