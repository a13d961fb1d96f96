package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewRect_Valid(t *testing.T) {
	r, err := NewRect(Point{Row: 1, Col: 2}, Point{Row: 3, Col: 5})
	require.NoError(t, err)
	assert.Equal(t, 4, r.Width())
	assert.Equal(t, 3, r.Height())
	assert.Equal(t, "[(1,2) to (3,5)]", r.String())
}

func TestNewRect_SingleCell(t *testing.T) {
	r, err := NewRect(Point{Row: 2, Col: 2}, Point{Row: 2, Col: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, r.Width())
	assert.Equal(t, 1, r.Height())
}

func TestNewRect_Inverted(t *testing.T) {
	_, err := NewRect(Point{Row: 3, Col: 0}, Point{Row: 1, Col: 4})
	assert.Error(t, err)
	_, err = NewRect(Point{Row: 0, Col: 4}, Point{Row: 1, Col: 0})
	assert.Error(t, err)
}

func TestNewRect_Negative(t *testing.T) {
	_, err := NewRect(Point{Row: -1, Col: 0}, Point{Row: 1, Col: 1})
	assert.Error(t, err)
}

func TestMustRect_Panics(t *testing.T) {
	assert.Panics(t, func() { MustRect(2, 2, 1, 1) })
}

func TestRect_Contains(t *testing.T) {
	r := MustRect(0, 0, 2, 2)
	assert.True(t, r.Contains(Point{Row: 0, Col: 0}))
	assert.True(t, r.Contains(Point{Row: 2, Col: 2}))
	assert.False(t, r.Contains(Point{Row: 3, Col: 0}))
	assert.False(t, r.Contains(Point{Row: 0, Col: 3}))
}

func TestRect_Overlaps(t *testing.T) {
	a := MustRect(0, 0, 4, 4)
	assert.True(t, a.Overlaps(MustRect(2, 2, 6, 6)))
	// shared edge
	assert.False(t, a.Overlaps(MustRect(0, 4, 4, 8)))
	// shared corner
	assert.False(t, a.Overlaps(MustRect(4, 4, 8, 8)))
	// disjoint
	assert.False(t, a.Overlaps(MustRect(6, 6, 8, 8)))
}

func TestRect_Within(t *testing.T) {
	r := MustRect(0, 0, 9, 9)
	assert.True(t, r.Within(10, 10))
	assert.False(t, r.Within(9, 10))
	assert.False(t, r.Within(10, 9))
}

func TestRect_Touches(t *testing.T) {
	a := MustRect(0, 0, 1, 1)
	assert.True(t, a.TouchesHorizontally(MustRect(0, 2, 1, 3)))
	assert.True(t, a.TouchesHorizontally(MustRect(1, 2, 5, 3)))
	assert.False(t, a.TouchesHorizontally(MustRect(2, 2, 3, 3)), "diagonal neighbor is not a side touch")
	assert.False(t, a.TouchesHorizontally(MustRect(0, 3, 1, 4)), "gap of one column")

	assert.True(t, a.TouchesVertically(MustRect(2, 0, 3, 1)))
	assert.False(t, a.TouchesVertically(MustRect(2, 2, 3, 3)))
}

func TestPropertyOverlapsIsSymmetric(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := drawRect(t, "a")
		b := drawRect(t, "b")
		assert.Equal(t, a.Overlaps(b), b.Overlaps(a))
		assert.Equal(t, a.TouchesHorizontally(b), b.TouchesHorizontally(a))
		assert.Equal(t, a.TouchesVertically(b), b.TouchesVertically(a))
	})
}

func TestPropertyTouchingRectsNeverOverlap(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := drawRect(t, "a")
		b := drawRect(t, "b")
		if a.TouchesHorizontally(b) || a.TouchesVertically(b) {
			assert.False(t, a.Overlaps(b))
		}
	})
}

func drawRect(t *rapid.T, label string) Rect {
	top := rapid.IntRange(0, 20).Draw(t, label+"_top")
	left := rapid.IntRange(0, 20).Draw(t, label+"_left")
	h := rapid.IntRange(0, 6).Draw(t, label+"_h")
	w := rapid.IntRange(0, 6).Draw(t, label+"_w")
	return MustRect(top, left, top+h, left+w)
}
