// Package entity owns every movable thing in a game: players, the target,
// the pet, and the weapons they carry. All relationships are expressed as
// indices into the registry's arenas and the world layout's rooms.
package entity

import "fmt"

// Kind discriminates the character variants.
type Kind int

const (
	// KindPlayer is a human or computer-controlled player character.
	KindPlayer Kind = iota
	// KindTarget is the character the players are trying to eliminate.
	KindTarget
	// KindPet wanders the world and blocks sight into its room.
	KindPet
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindTarget:
		return "target"
	case KindPet:
		return "pet"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// NoRoom marks an item that is not on any room's floor.
const NoRoom = -1

// NoHolder marks an item that no player carries.
const NoHolder = -1

// Character holds the state shared by every variant.
type Character struct {
	Kind Kind
	Name string
	// Room is the index of the room the character occupies.
	Room int
}

// Player is a participant that moves, collects weapons, and attacks.
type Player struct {
	Character
	// Index is the player's position in turn order.
	Index int
	// Computer is true for automated players.
	Computer bool
	// Capacity is the maximum number of items the player can carry.
	Capacity int
	// Inventory holds item indices in pick-up order.
	Inventory []int
}

// Full reports whether the player cannot accept another item.
func (p Player) Full() bool {
	return len(p.Inventory) >= p.Capacity
}

// Holds reports whether item idx is in the player's inventory.
func (p Player) Holds(idx int) bool {
	for _, held := range p.Inventory {
		if held == idx {
			return true
		}
	}
	return false
}

// ControlLabel returns "Computer" or "Human".
func (p Player) ControlLabel() string {
	if p.Computer {
		return "Computer"
	}
	return "Human"
}

func (p Player) clone() Player {
	p.Inventory = append([]int(nil), p.Inventory...)
	return p
}

// Target is the character to be eliminated.
//
// Invariant: Health >= 0.
type Target struct {
	Character
	Health int
}

// Alive reports whether the target has health remaining.
func (t Target) Alive() bool { return t.Health > 0 }

// Pet has no health; it only masks visibility into its room.
type Pet struct {
	Character
}

// Item is a weapon. It is on exactly one room's floor, in exactly one
// player's inventory, or discarded as evidence after an attack.
type Item struct {
	Index  int
	Name   string
	Damage int
	// Room is the floor the item lies on, or NoRoom.
	Room int
	// Holder is the index of the carrying player, or NoHolder.
	Holder int
	// Discarded is set once the item has been used in an attack.
	Discarded bool
}

// OnFloor reports whether the item lies in a room.
func (it Item) OnFloor() bool { return it.Room != NoRoom }

// Held reports whether a player carries the item.
func (it Item) Held() bool { return it.Holder != NoHolder }

// String returns "name (damage N)".
func (it Item) String() string {
	return fmt.Sprintf("%s (damage %d)", it.Name, it.Damage)
}
