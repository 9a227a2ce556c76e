package types

import "github.com/pkg/errors"

var (
	// ErrBoardFull is returned when no free cell is left for food. The board is won.
	ErrBoardFull = errors.New("board full: no free cell for food")

	// ErrEmptyBody signals Head on a snake that was never prepared.
	ErrEmptyBody = errors.New("snake body is empty")

	// ErrInvalidConfig wraps grid or start-shape validation failures.
	ErrInvalidConfig = errors.New("invalid game config")
)
