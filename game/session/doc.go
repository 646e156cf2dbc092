// Package session keeps the game sessions of the server.
//
// A session pairs a level with its own engine instance and is addressed by a
// short ID taken from a random UUID. IDs are case-insensitive.
//
// Manager is safe for concurrent use. With a SessionPersistence attached it
// writes every new session through, lazily loads sessions it does not hold in
// memory, and can flush all sessions on shutdown. FilePersistence stores one
// JSON document per session holding the level layout, the game properties
// and the full game state.
//
//	manager := session.NewManager()
//	sess, err := manager.Create("", level, engine.DefaultProperties())
//	if err != nil {
//		log.Fatal(err)
//	}
//	sess, err = manager.Get(sess.ID)
package session
