package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/theduyngx/pacman-torusverse/game/engine"
	"github.com/theduyngx/pacman-torusverse/game/grid"
	"github.com/theduyngx/pacman-torusverse/game/levelcheck"
	"github.com/theduyngx/pacman-torusverse/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Pacman Torusverse",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Pacman Torusverse - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Eat every pill (.) and gold piece ($) without being caught by a monster (T troll, X TX5).
The board is a torus: walking off one edge brings PacMan (P) in on the opposite edge.

AVAILABLE TOOLS:
- create_session / get_session / list_sessions: manage game sessions
- game_state: current board and score
- move: single manual move (up/down/left/right)
- step: advance the game N ticks (auto mode plays by itself)
- set_auto: switch the autonomous player on or off
- reset_game: reset to the initial state
- move_history: paginated past moves
- plan: shortest path to the nearest item, to all items, or to a cell
- list_levels / get_level / check_level / check_game: level files and validation
- game_instructions: rules and legend`),
	)

	c.registerTools()
}

func sessionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session, optionally on a specific level",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"level_id": map[string]interface{}{
					"type":        "string",
					"description": "Level to play, e.g. 1_classic (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Move PacMan one cell. Monsters move after PacMan.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Direction to move",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before moving",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "step",
		Description: "Advance the game by several ticks. In auto mode PacMan plans and walks by itself.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"ticks": map[string]interface{}{
					"type":        "integer",
					"description": fmt.Sprintf("Number of ticks (1-%d)", engine.MaxStepTicks),
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before stepping",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleStep)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "set_auto",
		Description: "Switch the autonomous player on or off",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"auto": map[string]interface{}{
					"type":        "boolean",
					"description": "true to let PacMan play by itself",
				},
			},
			Required: []string{"session_id", "auto"},
		},
	}, c.handleSetAuto)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the game to initial state",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get move history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "plan",
		Description: "Plan a path from PacMan's cell: 'next' nearest item, 'all' every item, 'route' to (x,y)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"mode": map[string]interface{}{
					"type":        "string",
					"enum":        []string{service.PlanNext, service.PlanAll, service.PlanRoute},
					"description": "Planner to run (default next)",
				},
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "Target column for route mode",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Target row for route mode",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handlePlan)

	// Levels
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_levels",
		Description: "List available levels with their validation status",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListLevels)

	levelProps := map[string]interface{}{
		"level_id": map[string]interface{}{
			"type":        "string",
			"description": "Level identifier, e.g. 1_classic",
		},
	}
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_level",
		Description: "Show the layout of a level",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: levelProps,
			Required:   []string{"level_id"},
		},
	}, c.handleGetLevel)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "check_level",
		Description: "Validate a level: start, portals, item count and item reachability",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: levelProps,
			Required:   []string{"level_id"},
		},
	}, c.handleCheckLevel)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "check_game",
		Description: "Validate the whole level folder",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleCheckGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get game rules and the board legend",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	if args, ok := request.Params.Arguments.(map[string]interface{}); ok {
		return args
	}
	return map[string]interface{}{}
}

func sessionPath(args map[string]interface{}, suffix string) string {
	sessionID, _ := args["session_id"].(string)
	return fmt.Sprintf("/api/sessions/%s%s", url.PathEscape(sessionID), suffix)
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	levelID, _ := args["level_id"].(string)

	body := map[string]string{}
	if levelID != "" {
		body["level_id"] = levelID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nLevel: %s\n\n%s",
		session.ID, session.LevelName, formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		status := "unknown"
		if s.GameState != nil {
			status = string(s.GameState.Status)
		}
		fmt.Fprintf(&b, "- %s (Level: %s, Status: %s, Created: %s)\n",
			s.ID, s.LevelName, status, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(arguments(request), ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var state engine.GameState
	if err := c.apiCall(ctx, "GET", sessionPath(arguments(request), "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	direction, _ := args["direction"].(string)
	reset, _ := args["reset"].(bool)

	body := map[string]interface{}{
		"direction": direction,
		"reset":     reset,
	}

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(args, "/move"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleStep(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	reset, _ := args["reset"].(bool)

	ticks := 1
	if n, ok := args["ticks"].(float64); ok {
		ticks = int(n)
	}

	body := map[string]interface{}{
		"ticks": ticks,
		"reset": reset,
	}

	var result service.StepResult
	if err := c.apiCall(ctx, "POST", sessionPath(args, "/step"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatStepResult(&result)), nil
}

func (c *Client) handleSetAuto(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	auto, _ := args["auto"].(bool)

	var state engine.GameState
	if err := c.apiCall(ctx, "POST", sessionPath(args, "/auto"), map[string]bool{"auto": auto}, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	mode := "manual"
	if state.Auto {
		mode = "auto"
	}
	return mcp.NewToolResultText(fmt.Sprintf("Mode: %s\n\n%s", mode, formatGameState(&state))), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}

	if err := c.apiCall(ctx, "POST", sessionPath(arguments(request), "/reset"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	params := url.Values{}
	if page, ok := args["page"].(float64); ok {
		params.Set("page", fmt.Sprint(int(page)))
	}
	if limit, ok := args["limit"].(float64); ok {
		params.Set("limit", fmt.Sprint(int(limit)))
	}
	path := sessionPath(args, "/history")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// The current segment comes from the live state
	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(args, ""), nil, &session); err != nil {
		return mcp.NewToolResultText(formatHistory(&history)), nil
	}

	result := formatHistory(&history) + "\n" + formatCurrentSegment(session.GameState)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handlePlan(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	params := url.Values{}
	if mode, ok := args["mode"].(string); ok && mode != "" {
		params.Set("mode", mode)
	}
	x, hasX := args["x"].(float64)
	y, hasY := args["y"].(float64)
	if hasX && hasY {
		params.Set("x", fmt.Sprint(int(x)))
		params.Set("y", fmt.Sprint(int(y)))
	}
	path := sessionPath(args, "/plan")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var plan service.PlanResult
	if err := c.apiCall(ctx, "GET", path, nil, &plan); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatPlan(&plan)), nil
}

func (c *Client) handleListLevels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var levels []service.LevelInfo
	if err := c.apiCall(ctx, "GET", "/api/levels", nil, &levels); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatLevels(levels)), nil
}

func (c *Client) handleGetLevel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	levelID, _ := arguments(request)["level_id"].(string)

	var layout service.LevelLayout
	if err := c.apiCall(ctx, "GET", "/api/levels/"+url.PathEscape(levelID), nil, &layout); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Level %s (%dx%d)", layout.Name, layout.Width, layout.Height)
	if layout.Bounded {
		b.WriteString(" bounded")
	}
	b.WriteString("\n\n")
	for _, row := range layout.Rows {
		b.WriteString(row)
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleCheckLevel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	levelID, _ := arguments(request)["level_id"].(string)

	var report levelcheck.Report
	if err := c.apiCall(ctx, "GET", "/api/levels/"+url.PathEscape(levelID)+"/check", nil, &report); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatReport(&report)), nil
}

func (c *Client) handleCheckGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Report *levelcheck.GameReport `json:"report"`
		Error  string                 `json:"error"`
	}
	if err := c.apiCall(ctx, "GET", "/api/game/check", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatGameReport(response.Report)
	if response.Error != "" {
		result += "\nLoad errors: " + response.Error + "\n"
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Pacman Torusverse - Instructions

GAME OBJECTIVE:
Eat every pill and every gold piece. The game is won when none are left and lost as soon as
a monster reaches PacMan.

BOARD LEGEND:
• P - PacMan
• # - Wall (impassable)
• . - Pill (1 point)
• $ - Gold (5 points)
• * - Ice (0 points, optional)
• T - Troll (wanders randomly)
• X - TX5 (walks toward PacMan when it can)
• W Y G D - Portals (White, Yellow, DarkGold, DarkGray). Stepping on one teleports to its twin.
• (space) - Empty path

TORUS:
The board wraps around. Moving left from column 0 lands on the last column, moving up from
row 0 lands on the last row. Distances are measured the short way around.

MULTIVERSE RULES (version=multiverse):
• Eating gold aggravates every monster for 3 ticks: they move two cells per tick
• Eating ice freezes every monster for 3 ticks

PLAYING:
• move: one manual step, monsters answer after it
• set_auto + step: let PacMan walk the shortest path to the nearest item on its own
• plan: preview paths without moving (next, all, route)

LEVEL CHECKS:
A level is playable when it has exactly one PacMan start, every portal colour has zero or two
tiles, there are at least two pills or gold pieces, and every pill and gold piece can be
reached from the start.`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nLevel: %s\nVersion: %s (seed %d)\nCreated: %s\n\n%s",
		session.ID, session.LevelName,
		session.Properties.Version, session.Properties.Seed,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var b strings.Builder
	mode := "manual"
	if state.Auto {
		mode = "auto"
	}
	fmt.Fprintf(&b, "Position: %s facing %s | Score: %d | Remaining: %d | Tick: %d | Moves: %d | Mode: %s\n",
		state.PacLocation, state.PacFacing, state.Score, state.Remaining, state.Tick, state.TotalMoves, mode)
	if state.Aggravated > 0 {
		fmt.Fprintf(&b, "Monsters aggravated for %d ticks\n", state.Aggravated)
	}
	if state.Frozen > 0 {
		fmt.Fprintf(&b, "Monsters frozen for %d ticks\n", state.Frozen)
	}
	b.WriteString("\n")

	for _, row := range state.Board {
		b.WriteString(row)
		b.WriteString("\n")
	}

	switch state.Status {
	case engine.StatusWon:
		b.WriteString("\n🎉 VICTORY!")
	case engine.StatusLost:
		b.WriteString("\n💀 GAME OVER")
	}

	if state.Message != "" {
		fmt.Fprintf(&b, "\nMessage: %s", state.Message)
	}

	return b.String()
}

func formatEvents(b *strings.Builder, events []service.GameEvent) {
	if len(events) == 0 {
		return
	}
	b.WriteString("Events:\n")
	for _, event := range events {
		fmt.Fprintf(b, "- %s: %s\n", event.Type, event.Message)
	}
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder
	if result.Success {
		b.WriteString("✓ Move successful\n")
	} else {
		b.WriteString("✗ Move failed\n")
	}
	if result.Message != "" {
		fmt.Fprintf(&b, "%s\n", result.Message)
	}

	if t := result.Tick; t != nil {
		fmt.Fprintf(&b, "Tick %d: %s→%s\n", t.Tick, t.From, t.To)
	}

	formatEvents(&b, result.Events)

	if len(result.PossibleMoves) > 0 {
		fmt.Fprintf(&b, "Possible moves: %s\n", strings.Join(result.PossibleMoves, ","))
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatStepResult(result *service.StepResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Executed %d/%d ticks (%d moves)\n", result.TicksExecuted, result.RequestedTicks, result.Moves)
	if result.Truncated {
		fmt.Fprintf(&b, "Request truncated to %d ticks\n", result.Limit)
	}
	if result.StoppedReason != "" {
		fmt.Fprintf(&b, "Stopped: %s\n", result.StoppedReason)
	}
	fmt.Fprintf(&b, "Path: %s→%s | Score +%d\n", result.StartPos, result.EndPos, result.ScoreDelta)

	formatEvents(&b, result.Events)

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatPlan(plan *service.PlanResult) string {
	if !plan.Found {
		return fmt.Sprintf("Plan %s from %s: no path found", plan.Mode, plan.From)
	}
	if plan.Length == 0 {
		return fmt.Sprintf("Plan %s from %s: nothing to do", plan.Mode, plan.From)
	}
	return fmt.Sprintf("Plan %s from %s: %d moves\n%s",
		plan.Mode, plan.From, plan.Length, formatPath(plan.Path))
}

func formatPath(path []grid.Location) string {
	parts := make([]string, len(path))
	for i, loc := range path {
		parts[i] = loc.String()
	}
	return strings.Join(parts, " → ")
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Move History (Page %d/%d) — Total (cumulative): %d\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	for i, move := range history.Moves {
		num := (history.Page-1)*history.PageSize + i + 1
		status := "✓"
		if !move.Success {
			status = "✗"
		}
		fmt.Fprintf(&b, "%d. %s %s→%s %s [Score: %d]\n", num, move.Action, move.From, move.To, status, move.Score)
	}

	return b.String()
}

func formatCurrentSegment(state *engine.GameState) string {
	if state == nil {
		return "Current Segment: unavailable"
	}
	header := fmt.Sprintf("Current Move Segment — Moves: %d\n\n", state.CurrentMovesCount)
	if len(state.CurrentMoves) == 0 {
		return header + "(no moves in current segment)"
	}
	var b strings.Builder
	b.WriteString(header)
	for i, move := range state.CurrentMoves {
		status := "✓"
		if !move.Success {
			status = "✗"
		}
		fmt.Fprintf(&b, "%d. %s %s [Score: %d]\n", i+1, move.Action, status, move.Score)
	}
	return b.String()
}

func formatLevels(levels []service.LevelInfo) string {
	var b strings.Builder
	b.WriteString("Available Levels:\n\n")
	for _, lv := range levels {
		status := "✓ playable"
		if !lv.Valid {
			status = "✗ invalid"
		}
		fmt.Fprintf(&b, "• %s (%dx%d, %d pills, %d gold) %s\n",
			lv.LevelID, lv.Width, lv.Height, lv.Pills, lv.Gold, status)
		for _, d := range lv.Diagnostics {
			fmt.Fprintf(&b, "    %s\n", d)
		}
	}
	return b.String()
}

func formatReport(report *levelcheck.Report) string {
	if report.Valid {
		return fmt.Sprintf("Level %s: OK", report.Level)
	}
	return fmt.Sprintf("Level %s: %d problems\n%s",
		report.Level, len(report.Diagnostics), strings.Join(report.Diagnostics, "\n"))
}

func formatGameReport(report *levelcheck.GameReport) string {
	if report == nil {
		return "No game report available"
	}
	var b strings.Builder
	if report.Valid {
		fmt.Fprintf(&b, "Game %s: OK (%d levels)\n", report.Game, len(report.Files))
	} else {
		fmt.Fprintf(&b, "Game %s: problems found\n", report.Game)
	}
	for _, d := range report.Diagnostics {
		fmt.Fprintf(&b, "%s\n", d)
	}
	for _, lr := range report.Levels {
		if !lr.Valid {
			fmt.Fprintf(&b, "%s\n", formatReport(lr))
		}
	}
	return b.String()
}
