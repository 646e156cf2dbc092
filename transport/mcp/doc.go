// Package mcp exposes the game to Model Context Protocol clients.
//
// The Client is a thin proxy: every tool call is translated into a REST API
// request and the JSON answer is rendered as plain text for the agent.
//
// MCP Tools:
//   - create_session, get_session, list_sessions: session management
//   - game_state: board, score and status
//   - move: one manual move
//   - step: advance the game by several ticks
//   - set_auto: switch the autonomous player on or off
//   - reset_game: reset to the initial state
//   - move_history: paginated move history plus the current segment
//   - plan: next-goal, collect-all or point-to-point paths
//   - list_levels, get_level, check_level, check_game: level files and validation
//   - game_instructions: rules and legend
//
// Transport Modes:
//
// The same server is served over stdio (server.ServeStdio) or over a single
// HTTP endpoint by passing request bodies to HandleMessage.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
