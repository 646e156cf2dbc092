// Package api serves the game service over HTTP.
//
// Endpoints:
//
// Sessions:
//   - POST   /api/sessions                 create, body {"level_id": "1_classic"} (optional)
//   - GET    /api/sessions                 list, ?sort=created|accessed&order=asc|desc&limit=N
//   - GET    /api/sessions/{id}            session info with state
//   - DELETE /api/sessions/{id}
//
// Play:
//   - GET  /api/sessions/{id}/state
//   - POST /api/sessions/{id}/move         {"direction": "up|down|left|right", "reset": false}
//   - POST /api/sessions/{id}/step         {"ticks": 10, "reset": false}
//   - POST /api/sessions/{id}/auto         {"auto": true}
//   - POST /api/sessions/{id}/reset
//   - GET  /api/sessions/{id}/history      ?page=1&limit=20&order=desc
//   - GET  /api/sessions/{id}/plan         ?mode=next|all|route&x=3&y=4
//
// Levels:
//   - GET  /api/levels                     level files with checker results
//   - POST /api/levels                     {"name": "...", "rows": ["#P.#", ...], "bounded": false}
//   - GET  /api/levels/{name}              layout rows
//   - GET  /api/levels/{name}/check        checker report
//   - GET  /api/game/check                 whole-folder report
//
// Other:
//   - GET /health
//   - GET /ws?session={id}                 websocket state updates
//
// Errors are JSON bodies of the form {"error": "message"}. Unknown sessions
// and levels are 404, malformed input 400.
package api
