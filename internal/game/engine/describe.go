package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cory-johannsen/manor/internal/game/entity"
	"github.com/cory-johannsen/manor/internal/game/world"
)

// DescribeSpace reports a room's occupants, items, visible rooms, and
// neighbors. It never consumes a turn and is allowed in every phase.
//
// Postcondition: Returns ErrRoomNotFound for an index outside the layout.
func (w *World) DescribeSpace(idx int) (ActionResult, error) {
	if !w.layout.ValidIndex(idx) {
		return ActionResult{}, fmt.Errorf("%w: index %d, valid range is [0, %d]", ErrRoomNotFound, idx, len(w.rooms)-1)
	}
	room := w.rooms[idx]
	var b strings.Builder
	fmt.Fprintf(&b, "Room: %s\n", roomLabel(room))

	players := w.registry.PlayersIn(idx)
	names := make([]string, 0, len(players))
	for _, i := range players {
		p, _ := w.registry.Player(i)
		label := "Human"
		if p.Computer {
			label = "AI"
		}
		names = append(names, fmt.Sprintf("%s (%s)", p.Name, label))
	}
	fmt.Fprintf(&b, "Players: %s\n", listOrNone(names))

	if t := w.registry.Target(); t.Room == idx {
		fmt.Fprintf(&b, "Target: %s (health %d)\n", t.Name, t.Health)
	}
	if pt := w.registry.Pet(); pt.Room == idx {
		fmt.Fprintf(&b, "Pet: %s\n", pt.Name)
	}
	fmt.Fprintf(&b, "Items: %s\n", listOrNone(itemLabels(w.registry.ItemsIn(idx))))
	fmt.Fprintf(&b, "Visible rooms: %s\n", listOrNone(w.roomLabels(w.VisibleFrom(idx))))
	fmt.Fprintf(&b, "Neighbors: %s", listOrNone(w.roomLabels(w.layout.Neighbors(idx))))
	return succeeded(false, "%s", b.String()), nil
}

// DescribeSpaceByName describes the room named ref, or the room whose index
// ref spells.
func (w *World) DescribeSpaceByName(ref string) (ActionResult, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ActionResult{}, fmt.Errorf("%w: room must not be blank", ErrInvalidArgument)
	}
	if idx, err := strconv.Atoi(ref); err == nil {
		return w.DescribeSpace(idx)
	}
	room, err := w.RoomByName(ref)
	if err != nil {
		return ActionResult{}, err
	}
	return w.DescribeSpace(room.Index)
}

// DescribePlayer reports a player's control type, location, and inventory.
// It never consumes a turn.
func (w *World) DescribePlayer(name string) (ActionResult, error) {
	p, err := w.registry.PlayerByName(name)
	if err != nil {
		return ActionResult{}, err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Player: %s\n", p.Name)
	fmt.Fprintf(&b, "Type: %s\n", p.ControlLabel())
	fmt.Fprintf(&b, "Location: %s\n", roomLabel(w.rooms[p.Room]))
	fmt.Fprintf(&b, "Inventory: %d/%d", len(p.Inventory), p.Capacity)
	held := w.registry.HeldBy(p.Index)
	if len(held) == 0 {
		b.WriteString("\n  (empty)")
	}
	for _, it := range held {
		fmt.Fprintf(&b, "\n  - %s", it)
	}
	return succeeded(false, "%s", b.String()), nil
}

// lookAround builds the look report for p. Neighbors the pet occupies are
// reported as blocked; neighbors outside the masked visible set are reported
// as unseen.
func (w *World) lookAround(p entity.Player) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Looking around from: %s\n", roomLabel(w.rooms[p.Room]))
	fmt.Fprintf(&b, "Items here: %s", listOrNone(itemLabels(w.registry.ItemsIn(p.Room))))

	var others []string
	for _, i := range w.registry.PlayersIn(p.Room) {
		if i == p.Index {
			continue
		}
		o, _ := w.registry.Player(i)
		others = append(others, o.Name)
	}
	if len(others) > 0 {
		fmt.Fprintf(&b, "\nOther players here: %s", strings.Join(others, ", "))
	}

	target := w.registry.Target()
	if target.Room == p.Room {
		fmt.Fprintf(&b, "\nTarget here: %s (health %d)", target.Name, target.Health)
	}
	pt := w.registry.Pet()
	if pt.Room == p.Room {
		fmt.Fprintf(&b, "\nPet here: %s", pt.Name)
	}

	b.WriteString("\nNeighboring rooms:")
	visible := w.VisibleSet(p.Room)
	for _, n := range w.layout.Neighbors(p.Room) {
		fmt.Fprintf(&b, "\n  - %s", roomLabel(w.rooms[n]))
		switch {
		case pt.Room == n:
			b.WriteString(" - cannot see inside (pet is blocking view)")
		case !visible.Has(n):
			b.WriteString(" - cannot see inside")
		default:
			b.WriteString(w.roomContents(n))
		}
	}
	return b.String()
}

// roomContents summarizes what can be seen in a neighboring room.
func (w *World) roomContents(idx int) string {
	var parts []string
	if items := itemLabels(w.registry.ItemsIn(idx)); len(items) > 0 {
		parts = append(parts, "Items: "+strings.Join(items, ", "))
	}
	var players []string
	for _, i := range w.registry.PlayersIn(idx) {
		p, _ := w.registry.Player(i)
		players = append(players, p.Name)
	}
	if len(players) > 0 {
		parts = append(parts, "Players: "+strings.Join(players, ", "))
	}
	if t := w.registry.Target(); t.Room == idx {
		parts = append(parts, "Target: "+t.Name)
	}
	if len(parts) == 0 {
		return " (empty)"
	}
	return ": " + strings.Join(parts, "; ")
}

func (w *World) roomLabels(indices []int) []string {
	out := make([]string, len(indices))
	for i, idx := range indices {
		out[i] = roomLabel(w.rooms[idx])
	}
	return out
}

func roomLabel(r world.Room) string {
	return fmt.Sprintf("%s [%d]", r.Name, r.Index)
}

func itemLabels(items []entity.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.String()
	}
	return out
}

func listOrNone(parts []string) string {
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}
