package engine

import (
	"errors"

	"github.com/cory-johannsen/manor/internal/game/entity"
)

var (
	// ErrGameOver reports an action issued after the outcome is final.
	ErrGameOver = errors.New("game is over")
	// ErrNotStarted reports a turn action issued during setup.
	ErrNotStarted = errors.New("game has not started")
	// ErrAlreadyStarted reports a second Start.
	ErrAlreadyStarted = errors.New("game has already started")
	// ErrNoPlayers reports Start with no players.
	ErrNoPlayers = errors.New("at least one player is required")
	// ErrRoomNotFound reports an unknown room name or index.
	ErrRoomNotFound = errors.New("room not found")
	// ErrNotComputer reports AutoTurn for a human player.
	ErrNotComputer = errors.New("player is not computer-controlled")
	// ErrUnknownAction reports an Action with an unrecognized kind.
	ErrUnknownAction = errors.New("unknown action")

	// ErrPlayerNotFound reports an unknown player name.
	ErrPlayerNotFound = entity.ErrPlayerNotFound
	// ErrMaxPlayers reports the player limit has been reached.
	ErrMaxPlayers = entity.ErrMaxPlayers
	// ErrDuplicatePlayer reports a player name already in use.
	ErrDuplicatePlayer = entity.ErrDuplicatePlayer
	// ErrInvalidArgument reports blank or malformed input.
	ErrInvalidArgument = entity.ErrInvalidArgument
)
