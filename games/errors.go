package games

import "errors"

var (
	// ErrInvalidMove is a move the game ignores: wrong player, full column, finished game
	ErrInvalidMove = errors.New("invalid move")

	// ErrUnknownDifficulty is a minesweeper difficulty that doesn't exist
	ErrUnknownDifficulty = errors.New("difficulty must be one of `easy`, `medium` or `hard`")
)
