// Package engine provides the core game logic for the Pacman torusverse.
//
// The engine package implements the game mechanics including:
//   - Pacman movement on a torus, with portals teleporting between pairs
//   - Item collection and scoring (Pill 1, Gold 5, Ice 0)
//   - Monster movement for Trolls and TX5s
//   - Autonomous play driven by the search package
//   - Game state management and persistence
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. GameState is the JSON-serialisable state of a
// running game, while Properties carries the seed, version and play mode read
// from the game's properties file.
//
// Usage:
//
//	level, err := grid.DecodeLevel("1_classic.xml", f)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameEngine, err := engine.NewEngine(level, engine.DefaultProperties())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Move pacman by hand, or let it play itself
//	gameEngine.Move("left")
//	gameEngine.SetAuto(true)
//	gameEngine.Step()
//	state := gameEngine.GetState()
//
// Game Rules:
//
// Pacman collects every Pill and Gold on the level to win and loses when it
// shares a cell with a monster. Pacman moves before the monsters in each tick
// and the catch is checked after every single step, so the two can never
// swap cells unnoticed. In the multiverse version eating Gold makes the
// monsters move twice per tick for a while and eating Ice freezes them.
package engine
