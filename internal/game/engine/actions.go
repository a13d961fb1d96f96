package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/manor/internal/game/entity"
	"github.com/cory-johannsen/manor/internal/game/world"
)

// actor resolves the acting player for a turn action. A non-nil result
// means the action must stop with that game-rule failure.
func (w *World) actor(name string) (entity.Player, *ActionResult, error) {
	if err := w.checkInProgress(); err != nil {
		return entity.Player{}, nil, err
	}
	p, err := w.registry.PlayerByName(name)
	if err != nil {
		return entity.Player{}, nil, err
	}
	if p.Index != w.current {
		cur, _ := w.registry.Player(w.current)
		res := failed("It is not %s's turn; it is %s's turn.", p.Name, cur.Name)
		return p, &res, nil
	}
	return p, nil, nil
}

// Move moves a player to a neighboring room named by dest, either by room
// name or by position in the room's neighbor list.
//
// Postcondition: on success the turn is consumed and the target and pet advance.
func (w *World) Move(player, dest string) (ActionResult, error) {
	p, stop, err := w.actor(player)
	if err != nil || stop != nil {
		return deref(stop), err
	}
	dest = strings.TrimSpace(dest)
	if dest == "" {
		return ActionResult{}, fmt.Errorf("%w: destination must not be blank", ErrInvalidArgument)
	}

	neighbors := w.layout.Neighbors(p.Room)
	if len(neighbors) == 0 {
		return failed("%s cannot move: %s has no neighboring rooms.", p.Name, w.rooms[p.Room].Name), nil
	}

	to := -1
	if pos, convErr := strconv.Atoi(dest); convErr == nil {
		if pos < 0 || pos >= len(neighbors) {
			return failed("Invalid destination index %d; valid range is [0, %d].", pos, len(neighbors)-1), nil
		}
		to = neighbors[pos]
	} else {
		for _, n := range neighbors {
			if world.SameName(w.rooms[n].Name, dest) {
				to = n
				break
			}
		}
	}
	if to < 0 {
		return failed("No neighboring room named %q. Available: %s", dest, w.roomNames(neighbors)), nil
	}

	if err := w.registry.MovePlayer(p.Index, to); err != nil {
		return ActionResult{}, err
	}
	res := succeeded(true, "%s moved to %s", p.Name, w.rooms[to].Name)
	w.completeTurn(p, ActionMove, false)
	return res, nil
}

// PickUp moves a named item from the player's room into their inventory.
func (w *World) PickUp(player, item string) (ActionResult, error) {
	p, stop, err := w.actor(player)
	if err != nil || stop != nil {
		return deref(stop), err
	}
	item = strings.TrimSpace(item)
	if item == "" {
		return ActionResult{}, fmt.Errorf("%w: item name must not be blank", ErrInvalidArgument)
	}

	it, ok := w.registry.FindItemIn(p.Room, item)
	if !ok {
		return failed("Item %q not found in %s.", item, w.rooms[p.Room].Name), nil
	}
	if err := w.registry.PickUp(p.Index, it.Index); err != nil {
		if errors.Is(err, entity.ErrInventoryFull) {
			return failed("%s cannot carry more items (capacity %d/%d).", p.Name, len(p.Inventory), p.Capacity), nil
		}
		return ActionResult{}, err
	}
	res := succeeded(true, "%s picked up %s (damage %d). Carrying %d/%d.",
		p.Name, it.Name, it.Damage, len(p.Inventory)+1, p.Capacity)
	w.completeTurn(p, ActionPickUp, false)
	return res, nil
}

// LookAround reports what the player can observe from their room. It
// consumes the turn.
func (w *World) LookAround(player string) (ActionResult, error) {
	p, stop, err := w.actor(player)
	if err != nil || stop != nil {
		return deref(stop), err
	}
	res := succeeded(true, "%s", w.lookAround(p))
	w.completeTurn(p, ActionLook, false)
	return res, nil
}

// MovePet moves the pet to the named room and restarts its wandering from
// there. It consumes the acting player's turn.
func (w *World) MovePet(player, room string) (ActionResult, error) {
	p, stop, err := w.actor(player)
	if err != nil || stop != nil {
		return deref(stop), err
	}
	if strings.TrimSpace(room) == "" {
		return ActionResult{}, fmt.Errorf("%w: room name must not be blank", ErrInvalidArgument)
	}
	dest, err := w.RoomByName(room)
	if err != nil {
		return ActionResult{}, err
	}

	pt := w.registry.Pet()
	if err := w.registry.MovePet(dest.Index); err != nil {
		return ActionResult{}, err
	}
	if err := w.wanderer.Reseed(dest.Index); err != nil {
		return ActionResult{}, err
	}
	res := succeeded(true, "Moved %s from %s to %s", pt.Name, w.rooms[pt.Room].Name, dest.Name)
	w.completeTurn(p, ActionMovePet, true)
	return res, nil
}

// Pass ends the current player's turn without acting. The target and pet
// do not move and the turn counter does not advance.
func (w *World) Pass(player string) (ActionResult, error) {
	p, stop, err := w.actor(player)
	if err != nil || stop != nil {
		return deref(stop), err
	}
	if err := w.AdvanceTurn(); err != nil {
		return ActionResult{}, err
	}
	return succeeded(true, "%s passes.", p.Name), nil
}

// completeTurn runs the end-of-turn cycle: the turn counter advances, the
// target steps to the next room index, the pet wanders unless it was moved by
// hand, the cursor rotates, and the turn budget is checked.
func (w *World) completeTurn(p entity.Player, kind ActionKind, petMoved bool) {
	w.turn++
	w.log.Debug("turn consumed",
		zap.String("player", p.Name),
		zap.Stringer("action", kind),
		zap.Int("turn", w.turn),
	)

	target := w.registry.Target()
	next := (target.Room + 1) % len(w.rooms)
	// Room indices from the layout are always valid.
	_ = w.registry.MoveTarget(next)

	if !petMoved {
		_ = w.registry.MovePet(w.wanderer.Next())
	}

	w.current = (w.current + 1) % w.registry.PlayerCount()

	if w.maxTurns > 0 && w.turn >= w.maxTurns {
		w.finish(Outcome{Over: true, Reason: ReasonMaxTurns})
	}
}

// Execute runs an Action and folds every error into a failed,
// non-consuming result whose message starts with "Error: ".
func (w *World) Execute(a Action) ActionResult {
	res, err := w.execute(a)
	if err != nil {
		w.log.Debug("action rejected",
			zap.String("player", a.Player),
			zap.Stringer("action", a.Kind),
			zap.Error(err),
		)
		return ActionResult{Message: "Error: " + err.Error()}
	}
	return res
}

func (w *World) execute(a Action) (ActionResult, error) {
	switch a.Kind {
	case ActionMove:
		return w.Move(a.Player, a.Arg)
	case ActionPickUp:
		return w.PickUp(a.Player, a.Arg)
	case ActionLook:
		return w.LookAround(a.Player)
	case ActionAttack:
		return w.Attack(a.Player, a.Arg)
	case ActionMovePet:
		return w.MovePet(a.Player, a.Arg)
	case ActionDescribePlayer:
		name := a.Arg
		if strings.TrimSpace(name) == "" {
			name = a.Player
		}
		return w.DescribePlayer(name)
	case ActionDescribeSpace:
		return w.DescribeSpaceByName(a.Arg)
	case ActionPass:
		return w.Pass(a.Player)
	case ActionAuto:
		return w.AutoTurn()
	default:
		return ActionResult{}, fmt.Errorf("%w: %s", ErrUnknownAction, a.Kind)
	}
}

func (w *World) roomNames(indices []int) string {
	names := make([]string, len(indices))
	for i, idx := range indices {
		names[i] = w.rooms[idx].Name
	}
	return strings.Join(names, ", ")
}

func deref(r *ActionResult) ActionResult {
	if r == nil {
		return ActionResult{}
	}
	return *r
}
