package engine

import (
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/manor/internal/game/entity"
)

// pokeDamage is the damage of an attack made without an item.
const pokeDamage = 1

// pokeName describes an attack made without an item.
const pokeName = "a poke in the eye"

// CanAttack reports whether player could attack the target right now with
// the named item, or with a poke when item is blank. It changes nothing.
//
// Postcondition: checks run in order: target alive, same room, item held,
// unseen. The first failing check decides the status.
func (w *World) CanAttack(player, item string) (AttackStatus, error) {
	p, err := w.registry.PlayerByName(player)
	if err != nil {
		return 0, err
	}
	status, _ := w.attackStatus(p, item)
	return status, nil
}

// attackStatus evaluates the attack rules and returns the weapon that would
// be used. The weapon is only meaningful when an item name was given.
func (w *World) attackStatus(p entity.Player, item string) (AttackStatus, entity.Item) {
	target := w.registry.Target()
	if !target.Alive() {
		return AttackTargetAlreadyDead, entity.Item{}
	}
	if p.Room != target.Room {
		return AttackNotSameRoom, entity.Item{}
	}
	var weapon entity.Item
	if strings.TrimSpace(item) != "" {
		held, ok := w.registry.FindHeld(p.Index, item)
		if !ok {
			return AttackNoSuchItem, entity.Item{}
		}
		weapon = held
	}
	if w.seenByOthers(p) {
		return AttackSeenByOthers, weapon
	}
	return AttackSuccess, weapon
}

// seenByOthers reports whether another player could observe p. Each other
// player is checked in both directions because the pet mask can make
// visibility one-sided.
func (w *World) seenByOthers(p entity.Player) bool {
	fromAttacker := w.VisibleSet(p.Room)
	for _, other := range w.registry.Players() {
		if other.Index == p.Index {
			continue
		}
		if fromAttacker.Has(other.Room) {
			return true
		}
		if w.VisibleSet(other.Room).Has(p.Room) {
			return true
		}
	}
	return false
}

// Attack attempts to damage the target. A blank item means a poke for one
// point of damage. A named item is discarded as evidence on success.
//
// Postcondition: a failed attack changes nothing and does not consume the
// turn. An attack that drops the target's health to zero ends the game with
// the attacker as winner and does not advance the target or pet.
func (w *World) Attack(player, item string) (ActionResult, error) {
	p, stop, err := w.actor(player)
	if err != nil || stop != nil {
		return deref(stop), err
	}
	item = strings.TrimSpace(item)

	status, weapon := w.attackStatus(p, item)
	switch status {
	case AttackSuccess:
	case AttackTargetAlreadyDead:
		return failed("Attack failed: %s is already dead.", w.registry.Target().Name), nil
	case AttackNotSameRoom:
		return failed("Attack failed: you must be in the same room as the target."), nil
	case AttackNoSuchItem:
		return failed("Attack failed: you don't have that item: %s", item), nil
	case AttackSeenByOthers:
		return failed("Attack failed: you were seen by another player."), nil
	}

	damage, weaponName := pokeDamage, pokeName
	if item != "" {
		damage, weaponName = weapon.Damage, weapon.Name
		if err := w.registry.Discard(p.Index, weapon.Index); err != nil {
			return ActionResult{}, err
		}
	}
	remaining, err := w.registry.DamageTarget(damage)
	if err != nil {
		return ActionResult{}, err
	}
	target := w.registry.Target()
	w.log.Debug("attack landed",
		zap.String("player", p.Name),
		zap.String("weapon", weaponName),
		zap.Int("damage", damage),
		zap.Int("remaining", remaining),
	)

	if remaining == 0 {
		w.turn++
		w.finish(Outcome{Over: true, Winner: p.Name, Reason: ReasonTargetEliminated})
		return succeeded(true, "%s wins! %s killed %s with %s for %d damage.",
			p.Name, p.Name, target.Name, weaponName, damage), nil
	}
	res := succeeded(true, "%s attacked %s with %s for %d damage. Target health remaining: %d",
		p.Name, target.Name, weaponName, damage, remaining)
	w.completeTurn(p, ActionAttack, false)
	return res, nil
}
