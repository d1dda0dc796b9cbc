// Package game implements the round logic of a food janken party game.
//
// # Reading Guide
//
//   - scoring.go: CalcPoints, the food -> points function
//   - preview.go: GeneratePreview, the seeded per-round draw of one food per hand
//   - match.go: Match, the score/undo state machine driven by the UI
//
// # Determinism
//
// A preview is a pure function of its seed and the configuration. Seeds are
// strings; rng.go derives isolated math/rand sources from them, so replaying
// a seed with the same configuration reproduces the round exactly.
//
// # Collaborators
//
// The package never persists or mutates configuration. Match reads the live
// configuration through ConfigSource, and hiding a previewed food yields a
// DisableFoodCommand for the configuration owner (see game/config) to apply.
package game
