package entity

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/manor/internal/game/world"
)

// DefaultMaxPlayers is the player limit used when none is configured.
const DefaultMaxPlayers = 10

// Registry owns every character and item of one game.
//
// Invariant: every item is on exactly one floor, in exactly one inventory,
// or discarded; player names are unique case-insensitively; no player holds
// more than its capacity.
//
// A Registry is owned by a single game and is not safe for concurrent use.
type Registry struct {
	roomCount  int
	maxPlayers int
	players    []Player
	byName     map[string]int
	target     Target
	pet        Pet
	items      []Item
}

// NewRegistry seeds the target, the pet, and the items from a validated
// layout's initial description.
//
// Precondition: layout is non-nil; maxPlayers >= 1.
// Postcondition: Returns a Registry with no players, or an error.
func NewRegistry(layout *world.Layout, maxPlayers int) (*Registry, error) {
	if layout == nil {
		return nil, fmt.Errorf("%w: layout must not be nil", ErrInvalidArgument)
	}
	if maxPlayers < 1 {
		return nil, fmt.Errorf("%w: max players must be at least 1, got %d", ErrInvalidArgument, maxPlayers)
	}
	desc := layout.Initial()
	r := &Registry{
		roomCount:  layout.RoomCount(),
		maxPlayers: maxPlayers,
		byName:     make(map[string]int),
		target: Target{
			Character: Character{Kind: KindTarget, Name: desc.Target.Name, Room: desc.Target.Start},
			Health:    desc.Target.Health,
		},
		pet: Pet{Character: Character{Kind: KindPet, Name: desc.Pet.Name, Room: desc.Pet.Start}},
		items: make([]Item, len(desc.Items)),
	}
	for i, spec := range desc.Items {
		r.items[i] = Item{
			Index:  i,
			Name:   spec.Name,
			Damage: spec.Damage,
			Room:   spec.Room,
			Holder: NoHolder,
		}
	}
	return r, nil
}

// MaxPlayers returns the player limit.
func (r *Registry) MaxPlayers() int { return r.maxPlayers }

// AddPlayer appends a player to turn order.
//
// Precondition: name is non-blank and unused; 0 <= room < room count;
// capacity >= 0; fewer than MaxPlayers players exist.
// Postcondition: Returns the new player, or an error with the registry unchanged.
func (r *Registry) AddPlayer(name string, room, capacity int, computer bool) (Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Player{}, fmt.Errorf("%w: player name must not be blank", ErrInvalidArgument)
	}
	if capacity < 0 {
		return Player{}, fmt.Errorf("%w: capacity must not be negative, got %d", ErrInvalidArgument, capacity)
	}
	if err := r.checkRoom(room); err != nil {
		return Player{}, err
	}
	key := world.FoldName(name)
	if _, dup := r.byName[key]; dup {
		return Player{}, fmt.Errorf("%w: %q", ErrDuplicatePlayer, name)
	}
	if len(r.players) >= r.maxPlayers {
		return Player{}, fmt.Errorf("%w: limit is %d", ErrMaxPlayers, r.maxPlayers)
	}

	p := Player{
		Character: Character{Kind: KindPlayer, Name: name, Room: room},
		Index:     len(r.players),
		Computer:  computer,
		Capacity:  capacity,
		Inventory: []int{},
	}
	r.players = append(r.players, p)
	r.byName[key] = p.Index
	return p.clone(), nil
}

// PlayerCount returns the number of players.
func (r *Registry) PlayerCount() int { return len(r.players) }

// Player returns a copy of the player at turn index i.
//
// Postcondition: Returns ErrPlayerNotFound if i is out of range.
func (r *Registry) Player(i int) (Player, error) {
	if i < 0 || i >= len(r.players) {
		return Player{}, fmt.Errorf("%w: index %d", ErrPlayerNotFound, i)
	}
	return r.players[i].clone(), nil
}

// PlayerByName looks up a player case-insensitively.
//
// Postcondition: Returns a copy, or ErrPlayerNotFound.
func (r *Registry) PlayerByName(name string) (Player, error) {
	i, ok := r.byName[world.FoldName(name)]
	if !ok {
		return Player{}, fmt.Errorf("%w: %q", ErrPlayerNotFound, strings.TrimSpace(name))
	}
	return r.players[i].clone(), nil
}

// Players returns copies of all players in turn order.
func (r *Registry) Players() []Player {
	out := make([]Player, len(r.players))
	for i, p := range r.players {
		out[i] = p.clone()
	}
	return out
}

// PlayersIn returns the turn indices of players in room, ascending.
func (r *Registry) PlayersIn(room int) []int {
	var out []int
	for i, p := range r.players {
		if p.Room == room {
			out = append(out, i)
		}
	}
	return out
}

// MovePlayer relocates player i. Adjacency is the caller's concern.
//
// Postcondition: Returns ErrPlayerNotFound or ErrInvalidRoom with no change.
func (r *Registry) MovePlayer(i, room int) error {
	if i < 0 || i >= len(r.players) {
		return fmt.Errorf("%w: index %d", ErrPlayerNotFound, i)
	}
	if err := r.checkRoom(room); err != nil {
		return err
	}
	r.players[i].Room = room
	return nil
}

// Target returns a copy of the target.
func (r *Registry) Target() Target { return r.target }

// MoveTarget relocates the target.
func (r *Registry) MoveTarget(room int) error {
	if err := r.checkRoom(room); err != nil {
		return err
	}
	r.target.Room = room
	return nil
}

// DamageTarget subtracts damage from the target's health, floored at zero.
//
// Precondition: damage >= 0.
// Postcondition: Returns the target's remaining health.
func (r *Registry) DamageTarget(damage int) (int, error) {
	if damage < 0 {
		return r.target.Health, fmt.Errorf("%w: damage must not be negative, got %d", ErrInvalidArgument, damage)
	}
	r.target.Health = max(0, r.target.Health-damage)
	return r.target.Health, nil
}

// Pet returns a copy of the pet.
func (r *Registry) Pet() Pet { return r.pet }

// MovePet relocates the pet.
func (r *Registry) MovePet(room int) error {
	if err := r.checkRoom(room); err != nil {
		return err
	}
	r.pet.Room = room
	return nil
}

// Characters returns every character's shared state: players in turn order,
// then the target, then the pet.
func (r *Registry) Characters() []Character {
	out := make([]Character, 0, len(r.players)+2)
	for _, p := range r.players {
		out = append(out, p.Character)
	}
	return append(out, r.target.Character, r.pet.Character)
}

// Items returns copies of all items, including held and discarded ones.
func (r *Registry) Items() []Item {
	return append([]Item(nil), r.items...)
}

// Item returns a copy of item idx.
func (r *Registry) Item(idx int) (Item, error) {
	if idx < 0 || idx >= len(r.items) {
		return Item{}, fmt.Errorf("%w: index %d", ErrItemNotFound, idx)
	}
	return r.items[idx], nil
}

// ItemsIn returns copies of the items on room's floor in index order.
func (r *Registry) ItemsIn(room int) []Item {
	var out []Item
	for _, it := range r.items {
		if it.Room == room {
			out = append(out, it)
		}
	}
	return out
}

// FindItemIn returns the first item on room's floor named name,
// case-insensitively.
func (r *Registry) FindItemIn(room int, name string) (Item, bool) {
	key := world.FoldName(name)
	for _, it := range r.items {
		if it.Room == room && world.FoldName(it.Name) == key {
			return it, true
		}
	}
	return Item{}, false
}

// FindHeld returns the first item in player i's inventory named name,
// case-insensitively.
func (r *Registry) FindHeld(i int, name string) (Item, bool) {
	if i < 0 || i >= len(r.players) {
		return Item{}, false
	}
	key := world.FoldName(name)
	for _, idx := range r.players[i].Inventory {
		if world.FoldName(r.items[idx].Name) == key {
			return r.items[idx], true
		}
	}
	return Item{}, false
}

// HeldBy returns copies of player i's items in pick-up order.
func (r *Registry) HeldBy(i int) []Item {
	if i < 0 || i >= len(r.players) {
		return nil
	}
	out := make([]Item, 0, len(r.players[i].Inventory))
	for _, idx := range r.players[i].Inventory {
		out = append(out, r.items[idx])
	}
	return out
}

// PickUp moves item idx from player i's room floor into the player's inventory.
//
// Precondition: the item lies in the player's room and the player is below capacity.
// Postcondition: On success the item's Room is NoRoom and its Holder is i.
// On error nothing changes.
func (r *Registry) PickUp(i, idx int) error {
	if i < 0 || i >= len(r.players) {
		return fmt.Errorf("%w: index %d", ErrPlayerNotFound, i)
	}
	if idx < 0 || idx >= len(r.items) {
		return fmt.Errorf("%w: index %d", ErrItemNotFound, idx)
	}
	p := &r.players[i]
	it := &r.items[idx]
	if it.Room != p.Room {
		return fmt.Errorf("%w: %s", ErrItemNotHere, it.Name)
	}
	if p.Full() {
		return fmt.Errorf("%w: %s carries %d of %d", ErrInventoryFull, p.Name, len(p.Inventory), p.Capacity)
	}
	it.Room = NoRoom
	it.Holder = i
	p.Inventory = append(p.Inventory, idx)
	return nil
}

// Discard removes item idx from player i's inventory as evidence. The item
// is not returned to any room.
//
// Postcondition: On success the item is Discarded with no room and no holder.
func (r *Registry) Discard(i, idx int) error {
	if i < 0 || i >= len(r.players) {
		return fmt.Errorf("%w: index %d", ErrPlayerNotFound, i)
	}
	p := &r.players[i]
	pos := -1
	for k, held := range p.Inventory {
		if held == idx {
			pos = k
			break
		}
	}
	if pos < 0 {
		return fmt.Errorf("%w: item %d", ErrItemNotHeld, idx)
	}
	p.Inventory = append(p.Inventory[:pos], p.Inventory[pos+1:]...)
	r.items[idx].Holder = NoHolder
	r.items[idx].Discarded = true
	return nil
}

func (r *Registry) checkRoom(room int) error {
	if room < 0 || room >= r.roomCount {
		return fmt.Errorf("%w: %d, valid range is [0, %d]", ErrInvalidRoom, room, r.roomCount-1)
	}
	return nil
}
