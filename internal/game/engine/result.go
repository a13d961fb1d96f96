package engine

import (
	"fmt"
	"strings"
)

// ActionResult is the uniform report of every command.
type ActionResult struct {
	// Success is false for game-rule failures such as an illegal move.
	Success bool
	// Message is human-readable text for the front-end.
	Message string
	// TurnConsumed is true when the action ended the acting player's turn.
	TurnConsumed bool
}

func succeeded(consumed bool, format string, args ...any) ActionResult {
	return ActionResult{Success: true, Message: fmt.Sprintf(format, args...), TurnConsumed: consumed}
}

func failed(format string, args ...any) ActionResult {
	return ActionResult{Message: fmt.Sprintf(format, args...)}
}

// ActionKind names a command in the Action protocol.
type ActionKind int

const (
	ActionMove ActionKind = iota
	ActionPickUp
	ActionLook
	ActionAttack
	ActionMovePet
	ActionDescribePlayer
	ActionDescribeSpace
	ActionPass
	ActionAuto
)

var actionNames = map[ActionKind]string{
	ActionMove:           "move",
	ActionPickUp:         "pickup",
	ActionLook:           "look",
	ActionAttack:         "attack",
	ActionMovePet:        "movepet",
	ActionDescribePlayer: "describe",
	ActionDescribeSpace:  "space",
	ActionPass:           "pass",
	ActionAuto:           "auto",
}

// String returns the action's command word.
func (k ActionKind) String() string {
	if name, ok := actionNames[k]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(k))
}

// ParseActionKind maps a command word to its kind, case-insensitively.
//
// Postcondition: Returns ErrUnknownAction for unrecognized words.
func ParseActionKind(word string) (ActionKind, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	for kind, name := range actionNames {
		if name == word {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, word)
}

// Action is one command addressed to the engine.
type Action struct {
	Kind ActionKind
	// Player is the acting player's name.
	Player string
	// Arg is the destination, item, or room argument. It may be empty.
	Arg string
}

// AttackStatus classifies whether an attack would succeed.
type AttackStatus int

const (
	AttackSuccess AttackStatus = iota
	AttackNotSameRoom
	AttackSeenByOthers
	AttackNoSuchItem
	AttackTargetAlreadyDead
)

// String returns a short status description.
func (s AttackStatus) String() string {
	switch s {
	case AttackSuccess:
		return "success"
	case AttackNotSameRoom:
		return "not in the same room as the target"
	case AttackSeenByOthers:
		return "seen by another player"
	case AttackNoSuchItem:
		return "no such item"
	case AttackTargetAlreadyDead:
		return "target already dead"
	default:
		return fmt.Sprintf("attack_status(%d)", int(s))
	}
}
