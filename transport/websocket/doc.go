// Package websocket pushes live game updates to browser clients.
//
// Clients connect to /ws?session=<id> and receive JSON messages:
//
//	{"session_id": "3f2a9c1d", "event": "state_update", "game_state": {...}}
//	{"session_id": "3f2a9c1d", "event": "plan", "data": {"mode": "next", "path": [...]}}
//
// A single Hub goroutine owns the client registry. Broadcasts are queued on
// a buffered channel and never block the caller; a client whose send buffer
// is full is dropped. Incoming client messages are ignored apart from the
// ping/pong keepalive.
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//	hub.BroadcastToSession(id, state)
package websocket
