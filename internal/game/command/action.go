package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cory-johannsen/manor/internal/game/engine"
)

// ErrUsage reports arguments that do not match a command's usage.
var ErrUsage = errors.New("usage")

// ToAction builds the engine action for a turn or info command issued by
// player. rawArgs is the text after the command word.
//
// Precondition: cmd is a turn command or describe/space.
// Postcondition: Returns ErrUsage when a required argument is missing.
func ToAction(cmd *Command, rawArgs, player string) (engine.Action, error) {
	kind, err := engine.ParseActionKind(cmd.Handler)
	if err != nil {
		return engine.Action{}, fmt.Errorf("%s is not an engine action: %w", cmd.Name, err)
	}
	arg := strings.TrimSpace(rawArgs)
	switch cmd.Handler {
	case HandlerMove, HandlerPickUp, HandlerMovePet, HandlerSpace:
		if arg == "" {
			return engine.Action{}, fmt.Errorf("%w: %s %s", ErrUsage, cmd.Name, cmd.Usage)
		}
	}
	return engine.Action{Kind: kind, Player: player, Arg: arg}, nil
}

// AddArgs are the parsed arguments of the add command.
type AddArgs struct {
	Name string
	// Room is a room name or a room index.
	Room     string
	Capacity int
	Computer bool
}

// ParseAdd parses "add <name> <room> [capacity] [ai|human]". The name is one
// word; the room may span several words. A trailing number is read as the
// capacity only when a room precedes it.
//
// Postcondition: Capacity is defaultCapacity when none is given.
func ParseAdd(args []string, defaultCapacity int) (AddArgs, error) {
	out := AddArgs{Capacity: defaultCapacity}
	rest := append([]string(nil), args...)

	if n := len(rest); n > 0 {
		switch strings.ToLower(rest[n-1]) {
		case "ai", "computer":
			out.Computer = true
			rest = rest[:n-1]
		case "human":
			rest = rest[:n-1]
		}
	}
	if n := len(rest); n >= 3 {
		if c, err := strconv.Atoi(rest[n-1]); err == nil {
			if c < 0 {
				return AddArgs{}, fmt.Errorf("%w: capacity must not be negative, got %d", ErrUsage, c)
			}
			out.Capacity = c
			rest = rest[:n-1]
		}
	}
	if len(rest) < 2 {
		return AddArgs{}, fmt.Errorf("%w: add <name> <room> [capacity] [ai]", ErrUsage)
	}
	out.Name = rest[0]
	out.Room = strings.Join(rest[1:], " ")
	return out, nil
}
