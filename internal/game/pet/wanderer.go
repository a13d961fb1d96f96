// Package pet moves the pet through the world one room per turn using a
// depth-first traversal that survives across turns.
package pet

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// Graph is the adjacency view the wanderer walks. *world.Layout satisfies it.
type Graph interface {
	RoomCount() int
	// Neighbors returns the rooms adjacent to idx in a stable order.
	Neighbors(idx int) []int
}

// Wanderer is a re-entrant depth-first traversal of a Graph.
//
// The stack holds rooms still to be explored; its top is the pet's room.
// A room is discovered once pushed and is never pushed again in the same
// traversal. A room is occupied once the pet has stood in it. When every
// room is occupied, or the stack runs dry, the traversal restarts at room 0.
type Wanderer struct {
	graph      Graph
	stack      []int
	discovered mapset.Set[int]
	occupied   mapset.Set[int]
}

// NewWanderer starts a traversal rooted at start.
//
// Precondition: graph has at least one room and 0 <= start < graph.RoomCount().
// Postcondition: Current() == start.
func NewWanderer(graph Graph, start int) (*Wanderer, error) {
	if graph == nil || graph.RoomCount() == 0 {
		return nil, fmt.Errorf("pet: graph must have at least one room")
	}
	w := &Wanderer{graph: graph}
	if err := w.Reseed(start); err != nil {
		return nil, err
	}
	return w, nil
}

// Current returns the room at the top of the traversal, which is where the
// wanderer last placed the pet.
func (w *Wanderer) Current() int {
	if len(w.stack) == 0 {
		return 0
	}
	return w.stack[len(w.stack)-1]
}

// Reseed discards the traversal and starts a fresh one at room. It is used
// when the pet is moved by hand.
//
// Postcondition: on success Current() == room.
func (w *Wanderer) Reseed(room int) error {
	if room < 0 || room >= w.graph.RoomCount() {
		return fmt.Errorf("pet: room %d out of range [0, %d)", room, w.graph.RoomCount())
	}
	w.stack = []int{room}
	w.discovered = mapset.New[int]()
	w.occupied = mapset.New[int]()
	w.discovered.Put(room)
	w.occupied.Put(room)
	return nil
}

// Next advances the traversal by one step and returns the pet's new room.
//
// Postcondition: the returned room is valid for the graph.
func (w *Wanderer) Next() int {
	if len(w.stack) == 0 || w.occupied.Size() >= w.graph.RoomCount() {
		return w.restart()
	}

	top := w.stack[len(w.stack)-1]
	var fresh []int
	for _, n := range w.graph.Neighbors(top) {
		if !w.discovered.Has(n) {
			fresh = append(fresh, n)
		}
	}

	if len(fresh) > 0 {
		// Reverse order leaves the first neighbor on top.
		for i := len(fresh) - 1; i >= 0; i-- {
			w.stack = append(w.stack, fresh[i])
			w.discovered.Put(fresh[i])
		}
	} else {
		w.stack = w.stack[:len(w.stack)-1]
		if len(w.stack) == 0 {
			return w.restart()
		}
	}

	room := w.stack[len(w.stack)-1]
	w.occupied.Put(room)
	return room
}

// Occupied reports whether the pet has stood in room during the current
// traversal.
func (w *Wanderer) Occupied(room int) bool {
	return w.occupied.Has(room)
}

func (w *Wanderer) restart() int {
	// Reseed(0) cannot fail: the graph has at least one room.
	_ = w.Reseed(0)
	return 0
}
