package entity

import "errors"

var (
	// ErrInvalidArgument reports a blank name, negative capacity, or similar
	// malformed input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidRoom reports a room index outside the layout.
	ErrInvalidRoom = errors.New("invalid room index")
	// ErrDuplicatePlayer reports a player name already in use, compared
	// case-insensitively.
	ErrDuplicatePlayer = errors.New("duplicate player name")
	// ErrMaxPlayers reports that the player limit has been reached.
	ErrMaxPlayers = errors.New("maximum number of players reached")
	// ErrPlayerNotFound reports an unknown player name or index.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrItemNotFound reports an unknown item index.
	ErrItemNotFound = errors.New("item not found")
	// ErrItemNotHere reports an item that is not on the player's floor.
	ErrItemNotHere = errors.New("item is not in this room")
	// ErrItemNotHeld reports an item missing from the player's inventory.
	ErrItemNotHeld = errors.New("no such item in inventory")
	// ErrInventoryFull reports a player already carrying Capacity items.
	ErrInventoryFull = errors.New("inventory is full")
)
