// Package world provides the static spatial model of the game: rooms laid
// out on a rectangular grid, the adjacency graph derived from shared room
// edges, axis-aligned visibility between rooms, and loaders that build a
// validated Layout from text or YAML descriptions.
package world

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/cory-johannsen/manor/internal/game/geometry"
)

// DefaultPetName is used when a description does not name the pet.
const DefaultPetName = "Fortune the Cat"

// Room is an immutable named region of the grid.
type Room struct {
	// Index is the room's position in the layout, starting at 0.
	Index int
	// Name is the display name of the room. Unique case-insensitively.
	Name string
	// Area is the room's footprint on the grid.
	Area geometry.Rect
}

// RoomSpec describes one room in a layout description.
type RoomSpec struct {
	Name string
	Area geometry.Rect
}

// ItemSpec describes a weapon and the room it starts in.
type ItemSpec struct {
	Name   string
	Damage int
	Room   int
}

// TargetSpec describes the target character's starting state.
type TargetSpec struct {
	Name   string
	Health int
	Start  int
}

// PetSpec describes the pet's starting state.
type PetSpec struct {
	Name  string
	Start int
}

// Description is the structured output of a layout loader and the only input
// needed to build a Layout.
type Description struct {
	Name   string
	Rows   int
	Cols   int
	Rooms  []RoomSpec
	Items  []ItemSpec
	Target TargetSpec
	Pet    PetSpec
}

// FoldName normalizes a name for case-insensitive comparison. Surrounding
// whitespace is ignored.
func FoldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// SameName reports whether a and b are equal after case folding.
func SameName(a, b string) bool {
	return FoldName(a) == FoldName(b)
}
