// Package config loads the level files and game properties the server plays.
//
// Levels live as XML files in a single directory and are addressed by their
// file name without the .xml extension. The Manager caches decoded levels
// behind a read-mostly lock, so concurrent sessions share one parsed copy of
// each level. Levels are treated as immutable once cached; the engine clones
// whatever it needs to mutate.
//
// The default level is the first playable level of the directory in level
// number order, as reported by the level checker. When the directory holds no
// level at all a small built-in level is used instead.
//
// Game properties come from a Java style properties file:
//
//	seed=30006
//	version=multiverse
//	PacMan.isAuto=true
//
// Missing keys keep their defaults.
package config
