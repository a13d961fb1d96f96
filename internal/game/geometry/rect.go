// Package geometry provides integer grid coordinates and inclusive
// axis-aligned rectangles used to describe room footprints.
package geometry

import "fmt"

// Point is a grid coordinate. Row grows downward, Col grows rightward.
type Point struct {
	Row int
	Col int
}

// String returns "(row,col)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Rect is an axis-aligned rectangle of grid cells. Both corners are inclusive.
//
// Invariant: UpperLeft.Row <= LowerRight.Row and UpperLeft.Col <= LowerRight.Col.
type Rect struct {
	UpperLeft  Point
	LowerRight Point
}

// NewRect builds a Rect from its two corners.
//
// Precondition: all coordinates are >= 0 and ul is above and left of lr.
// Postcondition: Returns a valid Rect or a non-nil error.
func NewRect(ul, lr Point) (Rect, error) {
	if ul.Row < 0 || ul.Col < 0 || lr.Row < 0 || lr.Col < 0 {
		return Rect{}, fmt.Errorf("rect %s-%s: coordinates must be non-negative", ul, lr)
	}
	if ul.Row > lr.Row || ul.Col > lr.Col {
		return Rect{}, fmt.Errorf("rect %s-%s: upper-left must be above and left of lower-right", ul, lr)
	}
	return Rect{UpperLeft: ul, LowerRight: lr}, nil
}

// MustRect is NewRect for literals in tests and fixtures. It panics on invalid input.
func MustRect(top, left, bottom, right int) Rect {
	r, err := NewRect(Point{Row: top, Col: left}, Point{Row: bottom, Col: right})
	if err != nil {
		panic("geometry: " + err.Error())
	}
	return r
}

// Top returns the first row covered by r.
func (r Rect) Top() int { return r.UpperLeft.Row }

// Bottom returns the last row covered by r.
func (r Rect) Bottom() int { return r.LowerRight.Row }

// Left returns the first column covered by r.
func (r Rect) Left() int { return r.UpperLeft.Col }

// Right returns the last column covered by r.
func (r Rect) Right() int { return r.LowerRight.Col }

// Width is the number of columns covered, inclusive of both edges.
func (r Rect) Width() int { return r.Right() - r.Left() + 1 }

// Height is the number of rows covered, inclusive of both edges.
func (r Rect) Height() int { return r.Bottom() - r.Top() + 1 }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.Row >= r.Top() && p.Row <= r.Bottom() &&
		p.Col >= r.Left() && p.Col <= r.Right()
}

// Overlaps reports whether r and o intersect with strictly positive area.
// Rectangles that only share an edge or a corner do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	left := max(r.Left(), o.Left())
	right := min(r.Right(), o.Right())
	top := max(r.Top(), o.Top())
	bottom := min(r.Bottom(), o.Bottom())
	return right > left && bottom > top
}

// Within reports whether r fits inside a grid of rows x cols cells.
func (r Rect) Within(rows, cols int) bool {
	return r.Top() >= 0 && r.Left() >= 0 && r.Bottom() < rows && r.Right() < cols
}

// RowsOverlap reports whether the row ranges of r and o share at least one row.
func (r Rect) RowsOverlap(o Rect) bool {
	return o.Top() <= r.Bottom() && o.Bottom() >= r.Top()
}

// ColsOverlap reports whether the column ranges of r and o share at least one column.
func (r Rect) ColsOverlap(o Rect) bool {
	return o.Left() <= r.Right() && o.Right() >= r.Left()
}

// TouchesHorizontally reports whether r and o sit side by side: their row
// ranges overlap and one's right edge is exactly one column before the
// other's left edge.
func (r Rect) TouchesHorizontally(o Rect) bool {
	return r.RowsOverlap(o) && (r.Right()+1 == o.Left() || o.Right()+1 == r.Left())
}

// TouchesVertically reports whether r and o are stacked: their column
// ranges overlap and one's bottom edge is exactly one row above the other's top edge.
func (r Rect) TouchesVertically(o Rect) bool {
	return r.ColsOverlap(o) && (r.Bottom()+1 == o.Top() || o.Bottom()+1 == r.Top())
}

// String returns "[(r,c) to (r,c)]".
func (r Rect) String() string {
	return fmt.Sprintf("[%s to %s]", r.UpperLeft, r.LowerRight)
}
