// Package fen is the FEN import/export collaborator, kept outside the core
// board package per the engine's scope split between representation and
// text protocol concerns.
package fen

import "github.com/talonchess/talon/internal/board"

// StartPosition is the standard chess starting position in FEN.
const StartPosition = board.StartFEN

// Parse builds a position from Forsyth-Edwards Notation.
func Parse(s string) (*board.Position, error) {
	return board.ParseFEN(s)
}

// Render returns the FEN string for pos.
func Render(pos *board.Position) string {
	return pos.FEN()
}
