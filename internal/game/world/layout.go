package world

import (
	"fmt"
	"strings"
)

// Layout is the validated, immutable spatial model of a world: its grid,
// its rooms, the adjacency graph between them, and the initial placement
// of items, the target, and the pet.
//
// Invariant: every room lies within the grid and no two rooms overlap with
// positive area. The adjacency graph is computed once and never changes.
type Layout struct {
	name      string
	rows      int
	cols      int
	rooms     []Room
	byName    map[string]int
	adjacency [][]int
	initial   Description
}

// NewLayout validates desc and builds a Layout from it.
//
// Precondition: none; every violation is reported.
// Postcondition: Returns a Layout or a *ValidationError describing the first
// violation found. Nothing is partially applied.
func NewLayout(desc Description) (*Layout, error) {
	if err := Validate(desc); err != nil {
		return nil, err
	}

	l := &Layout{
		name:    desc.Name,
		rows:    desc.Rows,
		cols:    desc.Cols,
		rooms:   make([]Room, len(desc.Rooms)),
		byName:  make(map[string]int, len(desc.Rooms)),
		initial: cloneDescription(desc),
	}
	for i, rs := range desc.Rooms {
		l.rooms[i] = Room{Index: i, Name: strings.TrimSpace(rs.Name), Area: rs.Area}
		l.byName[FoldName(rs.Name)] = i
	}
	if l.initial.Pet.Name == "" {
		l.initial.Pet.Name = DefaultPetName
	}
	l.adjacency = computeAdjacency(l.rooms)
	return l, nil
}

// Validate checks every configuration invariant of desc.
//
// Postcondition: Returns nil if desc can build a Layout, or a *ValidationError.
func Validate(desc Description) error {
	if strings.TrimSpace(desc.Name) == "" {
		return invalid("name", "world name must not be blank")
	}
	if desc.Rows <= 0 || desc.Cols <= 0 {
		return invalid("dimensions", "rows and cols must be positive, got %dx%d", desc.Rows, desc.Cols)
	}
	if len(desc.Rooms) == 0 {
		return invalid("rooms", "at least one room is required")
	}

	seen := make(map[string]int, len(desc.Rooms))
	for i, r := range desc.Rooms {
		field := fmt.Sprintf("rooms[%d]", i)
		if strings.TrimSpace(r.Name) == "" {
			return invalid(field, "room name must not be blank")
		}
		if r.Area.Top() > r.Area.Bottom() || r.Area.Left() > r.Area.Right() {
			return invalid(field, "room %q has an inverted rectangle %s", r.Name, r.Area)
		}
		if !r.Area.Within(desc.Rows, desc.Cols) {
			return invalid(field, "room %q %s lies outside the %dx%d grid", r.Name, r.Area, desc.Rows, desc.Cols)
		}
		key := FoldName(r.Name)
		if prev, dup := seen[key]; dup {
			return invalid(field, "room name %q duplicates rooms[%d]", r.Name, prev)
		}
		seen[key] = i
	}
	for i := range desc.Rooms {
		for j := i + 1; j < len(desc.Rooms); j++ {
			if desc.Rooms[i].Area.Overlaps(desc.Rooms[j].Area) {
				return invalid(fmt.Sprintf("rooms[%d]", j), "room %q overlaps room %q",
					desc.Rooms[j].Name, desc.Rooms[i].Name)
			}
		}
	}

	n := len(desc.Rooms)
	for i, it := range desc.Items {
		field := fmt.Sprintf("items[%d]", i)
		if strings.TrimSpace(it.Name) == "" {
			return invalid(field, "item name must not be blank")
		}
		if it.Room < 0 || it.Room >= n {
			return invalid(field, "item %q references room %d, valid range is [0, %d]", it.Name, it.Room, n-1)
		}
		if it.Damage < 0 {
			return invalid(field, "item %q has negative damage %d", it.Name, it.Damage)
		}
	}

	if strings.TrimSpace(desc.Target.Name) == "" {
		return invalid("target", "target name must not be blank")
	}
	if desc.Target.Health < 0 {
		return invalid("target", "target health must not be negative, got %d", desc.Target.Health)
	}
	if desc.Target.Start < 0 || desc.Target.Start >= n {
		return invalid("target", "target start room %d out of range [0, %d]", desc.Target.Start, n-1)
	}
	if desc.Pet.Start < 0 || desc.Pet.Start >= n {
		return invalid("pet", "pet start room %d out of range [0, %d]", desc.Pet.Start, n-1)
	}
	return nil
}

// computeAdjacency scans every pair of rooms once. Two rooms are adjacent
// when they touch side by side or stacked along a shared span.
func computeAdjacency(rooms []Room) [][]int {
	adj := make([][]int, len(rooms))
	for i := range rooms {
		adj[i] = []int{}
		for j := range rooms {
			if i == j {
				continue
			}
			a, b := rooms[i].Area, rooms[j].Area
			if a.TouchesHorizontally(b) || a.TouchesVertically(b) {
				adj[i] = append(adj[i], j)
			}
		}
	}
	return adj
}

// Name returns the world name.
func (l *Layout) Name() string { return l.name }

// Rows returns the grid height in cells.
func (l *Layout) Rows() int { return l.rows }

// Cols returns the grid width in cells.
func (l *Layout) Cols() int { return l.cols }

// RoomCount returns the number of rooms.
func (l *Layout) RoomCount() int { return len(l.rooms) }

// Rooms returns a copy of all rooms in index order.
func (l *Layout) Rooms() []Room {
	out := make([]Room, len(l.rooms))
	copy(out, l.rooms)
	return out
}

// Room returns the room at idx.
//
// Precondition: 0 <= idx < RoomCount(). An out-of-range index is a
// programming error and panics.
func (l *Layout) Room(idx int) Room {
	l.mustIndex(idx)
	return l.rooms[idx]
}

// ValidIndex reports whether idx names a room.
func (l *Layout) ValidIndex(idx int) bool {
	return idx >= 0 && idx < len(l.rooms)
}

// RoomByName looks up a room by case-insensitive name.
//
// Postcondition: Returns (room, true) if found, or (Room{}, false) otherwise.
func (l *Layout) RoomByName(name string) (Room, bool) {
	idx, ok := l.byName[FoldName(name)]
	if !ok {
		return Room{}, false
	}
	return l.rooms[idx], true
}

// Neighbors returns the indices of rooms adjacent to idx in ascending order.
//
// Precondition: 0 <= idx < RoomCount(); panics otherwise.
// Postcondition: Returns a copy; the caller may modify it.
func (l *Layout) Neighbors(idx int) []int {
	l.mustIndex(idx)
	out := make([]int, len(l.adjacency[idx]))
	copy(out, l.adjacency[idx])
	return out
}

// IsAdjacent reports whether rooms a and b share a border.
func (l *Layout) IsAdjacent(a, b int) bool {
	l.mustIndex(a)
	for _, n := range l.adjacency[a] {
		if n == b {
			return true
		}
	}
	return false
}

// Initial returns the validated description the layout was built from,
// used to seed dynamic state for a new game.
func (l *Layout) Initial() Description {
	return cloneDescription(l.initial)
}

func (l *Layout) mustIndex(idx int) {
	if idx < 0 || idx >= len(l.rooms) {
		panic(fmt.Sprintf("world: room index %d out of range [0, %d)", idx, len(l.rooms)))
	}
}

func cloneDescription(d Description) Description {
	out := d
	out.Rooms = append([]RoomSpec(nil), d.Rooms...)
	out.Items = append([]ItemSpec(nil), d.Items...)
	return out
}
