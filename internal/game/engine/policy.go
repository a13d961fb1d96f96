package engine

import (
	"fmt"

	"github.com/cory-johannsen/manor/internal/game/dice"
	"github.com/cory-johannsen/manor/internal/game/entity"
	"github.com/cory-johannsen/manor/internal/game/world"
)

// TurnView is what an automated player knows when choosing its action.
type TurnView struct {
	Player    entity.Player
	Room      world.Room
	Neighbors []world.Room
	// ItemsHere are the items on the floor of the player's room.
	ItemsHere []entity.Item
	// Held are the player's items in pick-up order.
	Held []entity.Item
	// CanAttack is true when a poke would succeed right now.
	CanAttack  bool
	TargetRoom int
}

// Decision is an automated player's chosen action.
type Decision struct {
	Kind ActionKind
	// Arg is the item name for pickup and attack, or the room name for move
	// and movepet.
	Arg string
}

// Policy chooses actions for computer-controlled players.
//
// Implementations must draw all randomness from src so games replay from a seed.
type Policy interface {
	Decide(view TurnView, src dice.Source) (Decision, error)
}

// DefaultPolicy attacks when it safely can, otherwise moves with probability
// MoveChance, otherwise picks up an item, otherwise looks around.
type DefaultPolicy struct {
	MoveChance float64
}

// Decide implements Policy.
func (p DefaultPolicy) Decide(view TurnView, src dice.Source) (Decision, error) {
	if view.CanAttack {
		return Decision{Kind: ActionAttack, Arg: bestWeapon(view.Held)}, nil
	}
	if len(view.Neighbors) > 0 && dice.Chance(src, p.MoveChance) {
		dest := view.Neighbors[src.Intn(len(view.Neighbors))]
		return Decision{Kind: ActionMove, Arg: dest.Name}, nil
	}
	if len(view.ItemsHere) > 0 && !view.Player.Full() {
		return Decision{Kind: ActionPickUp, Arg: view.ItemsHere[0].Name}, nil
	}
	return Decision{Kind: ActionLook}, nil
}

// bestWeapon returns the name of the highest-damage item, the earliest on
// ties, or "" when nothing is held.
func bestWeapon(held []entity.Item) string {
	best := -1
	for i, it := range held {
		if best < 0 || it.Damage > held[best].Damage {
			best = i
		}
	}
	if best < 0 {
		return ""
	}
	return held[best].Name
}

// turnView assembles the automated player's view of its turn.
func (w *World) turnView(p entity.Player) TurnView {
	view := TurnView{
		Player:     p,
		Room:       w.rooms[p.Room],
		ItemsHere:  w.registry.ItemsIn(p.Room),
		Held:       w.registry.HeldBy(p.Index),
		TargetRoom: w.registry.Target().Room,
	}
	for _, n := range w.layout.Neighbors(p.Room) {
		view.Neighbors = append(view.Neighbors, w.rooms[n])
	}
	status, _ := w.attackStatus(p, "")
	view.CanAttack = status == AttackSuccess
	return view
}

// AutoTurn lets the policy act for the current player.
//
// Precondition: the game is in progress and the current player is a computer.
// Postcondition: the result message is prefixed with "[AI] ". Returns
// ErrNotComputer for a human player and wraps any policy error.
func (w *World) AutoTurn() (ActionResult, error) {
	if err := w.checkInProgress(); err != nil {
		return ActionResult{}, err
	}
	p, err := w.registry.Player(w.current)
	if err != nil {
		return ActionResult{}, err
	}
	if !p.Computer {
		return ActionResult{}, fmt.Errorf("%w: %s", ErrNotComputer, p.Name)
	}

	d, err := w.policy.Decide(w.turnView(p), w.roller)
	if err != nil {
		return ActionResult{}, fmt.Errorf("policy for %s: %w", p.Name, err)
	}

	var res ActionResult
	switch d.Kind {
	case ActionMove:
		res, err = w.Move(p.Name, d.Arg)
	case ActionPickUp:
		res, err = w.PickUp(p.Name, d.Arg)
	case ActionLook:
		res, err = w.LookAround(p.Name)
	case ActionAttack:
		res, err = w.Attack(p.Name, d.Arg)
	case ActionMovePet:
		res, err = w.MovePet(p.Name, d.Arg)
	case ActionPass:
		res, err = w.Pass(p.Name)
	default:
		return ActionResult{}, fmt.Errorf("policy for %s: %w: %s", p.Name, ErrUnknownAction, d.Kind)
	}
	if err != nil {
		return ActionResult{}, err
	}
	res.Message = "[AI] " + res.Message
	return res, nil
}
