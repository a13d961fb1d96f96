package world

import (
	"fmt"
	"slices"

	"github.com/zyedidia/generic/mapset"
)

// Visibility computes which rooms can be observed from a room using the
// static geometry only. Dynamic effects such as the pet are layered on top
// by the engine.
type Visibility interface {
	// VisibleFrom returns the set of room indices observable from idx,
	// never including idx itself.
	//
	// Precondition: 0 <= idx < len(rooms).
	VisibleFrom(idx int, rooms []Room) mapset.Set[int]
}

// AxisAligned is the production Visibility rule. A room is visible when it
// shares a row band or a column band with the observer's room and no third
// room starts strictly between the two along that axis. There is no
// diagonal visibility.
type AxisAligned struct{}

// VisibleFrom implements Visibility.
//
// Precondition: 0 <= idx < len(rooms); panics otherwise.
// Postcondition: the result never contains idx.
func (AxisAligned) VisibleFrom(idx int, rooms []Room) mapset.Set[int] {
	if idx < 0 || idx >= len(rooms) {
		panic(fmt.Sprintf("world: visibility index %d out of range [0, %d)", idx, len(rooms)))
	}
	visible := mapset.New[int]()
	src := rooms[idx].Area

	for i := range rooms {
		if i == idx {
			continue
		}
		tgt := rooms[i].Area
		sameRowBand := src.RowsOverlap(tgt)
		sameColBand := src.ColsOverlap(tgt)
		if !sameRowBand && !sameColBand {
			continue
		}

		blocked := false
		for j := range rooms {
			if j == idx || j == i {
				continue
			}
			b := rooms[j].Area

			// Blocker shares the observer's rows and starts strictly between
			// the facing columns of observer and target.
			if sameRowBand && b.RowsOverlap(src) {
				near := min(src.Right(), tgt.Right())
				far := max(src.Left(), tgt.Left())
				if b.Left() > near && b.Left() < far {
					blocked = true
					break
				}
			}
			if sameColBand && b.ColsOverlap(src) {
				near := min(src.Bottom(), tgt.Bottom())
				far := max(src.Top(), tgt.Top())
				if b.Top() > near && b.Top() < far {
					blocked = true
					break
				}
			}
		}
		if !blocked {
			visible.Put(i)
		}
	}
	return visible
}

// SortedIndices returns the members of s in ascending order.
func SortedIndices(s mapset.Set[int]) []int {
	out := make([]int, 0, s.Size())
	s.Each(func(i int) {
		out = append(out, i)
	})
	slices.Sort(out)
	return out
}
