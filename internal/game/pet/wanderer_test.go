package pet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/manor/internal/game/pet"
)

// adjacency is a Graph backed by explicit neighbor lists.
type adjacency [][]int

func (a adjacency) RoomCount() int { return len(a) }

func (a adjacency) Neighbors(idx int) []int {
	return append([]int(nil), a[idx]...)
}

// star has room 0 in the middle and leaves 1..4.
var star = adjacency{
	{1, 2, 3, 4},
	{0},
	{0},
	{0},
	{0},
}

func TestNewWanderer_Rejects(t *testing.T) {
	_, err := pet.NewWanderer(adjacency{}, 0)
	assert.Error(t, err)
	_, err = pet.NewWanderer(star, 5)
	assert.Error(t, err)
}

func TestWanderer_StarTraversalOrder(t *testing.T) {
	w, err := pet.NewWanderer(star, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, w.Current())

	// All leaves are pushed; the first neighbor is visited first and each
	// exhausted leaf pops to the next sibling.
	var got []int
	for range 4 {
		got = append(got, w.Next())
	}
	assert.Equal(t, []int{1, 2, 3, 4}, got)

	// Every room has been occupied, so the traversal restarts at room 0.
	assert.Equal(t, 0, w.Next())
	assert.Equal(t, 1, w.Next())
}

func TestWanderer_PathBacktracks(t *testing.T) {
	// 0 - 1 - 2 with 3 hanging off 1.
	g := adjacency{{1}, {0, 2, 3}, {1}, {1}}
	w, err := pet.NewWanderer(g, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, w.Next())
	assert.Equal(t, 2, w.Next())
	assert.Equal(t, 3, w.Next(), "popping 2 exposes its discovered sibling")
	assert.True(t, w.Occupied(3))
	assert.Equal(t, 0, w.Next(), "all rooms occupied restarts at 0")
}

func TestWanderer_ReseedStartsFreshTraversal(t *testing.T) {
	g := adjacency{{1}, {0, 2}, {1, 3}, {2}}
	w, err := pet.NewWanderer(g, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, w.Next())
	assert.Equal(t, 2, w.Next())

	require.NoError(t, w.Reseed(3))
	assert.Equal(t, 3, w.Current())
	assert.False(t, w.Occupied(0), "reseed forgets the old traversal")
	assert.Equal(t, 2, w.Next())
	assert.Equal(t, 1, w.Next())
	assert.Equal(t, 0, w.Next())

	assert.Error(t, w.Reseed(-1))
	assert.Equal(t, 0, w.Current(), "failed reseed leaves the traversal intact")
}

func TestWanderer_SingleRoom(t *testing.T) {
	w, err := pet.NewWanderer(adjacency{{}}, 0)
	require.NoError(t, err)
	for range 3 {
		assert.Equal(t, 0, w.Next())
	}
}

func TestWanderer_DisconnectedGraphRestartsAtZero(t *testing.T) {
	// {0,1} and {2,3} are separate components.
	g := adjacency{{1}, {0}, {3}, {2}}
	w, err := pet.NewWanderer(g, 2)
	require.NoError(t, err)

	assert.Equal(t, 3, w.Next())
	assert.Equal(t, 2, w.Next())
	assert.Equal(t, 0, w.Next(), "an exhausted stack restarts at room 0")
	assert.Equal(t, 1, w.Next())
}

// drawConnected builds a random connected graph: a random spanning tree plus
// extra random edges, with neighbor lists sorted ascending.
func drawConnected(t *rapid.T) adjacency {
	n := rapid.IntRange(1, 12).Draw(t, "rooms")
	edges := make([]map[int]bool, n)
	for i := range edges {
		edges[i] = make(map[int]bool)
	}
	link := func(a, b int) {
		if a != b {
			edges[a][b] = true
			edges[b][a] = true
		}
	}
	for i := 1; i < n; i++ {
		link(i, rapid.IntRange(0, i-1).Draw(t, "parent"))
	}
	extra := rapid.IntRange(0, n).Draw(t, "extra")
	for range extra {
		link(rapid.IntRange(0, n-1).Draw(t, "a"), rapid.IntRange(0, n-1).Draw(t, "b"))
	}

	g := make(adjacency, n)
	for i := range n {
		g[i] = []int{}
		for j := range n {
			if edges[i][j] {
				g[i] = append(g[i], j)
			}
		}
	}
	return g
}

// TestWanderer_CoverageProperty checks that 3n steps from any start visit
// every room of a connected graph.
func TestWanderer_CoverageProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := drawConnected(t)
		start := rapid.IntRange(0, len(g)-1).Draw(t, "start")
		w, err := pet.NewWanderer(g, start)
		require.NoError(t, err)

		seen := map[int]bool{start: true}
		for range 3 * len(g) {
			room := w.Next()
			require.GreaterOrEqual(t, room, 0)
			require.Less(t, room, len(g))
			seen[room] = true
		}
		assert.Len(t, seen, len(g))
	})
}

// TestWanderer_NextMarksOccupied checks the room returned by Next is the
// current room and counts as occupied.
func TestWanderer_NextMarksOccupied(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := drawConnected(t)
		w, err := pet.NewWanderer(g, rapid.IntRange(0, len(g)-1).Draw(t, "start"))
		require.NoError(t, err)

		for range 4 * len(g) {
			room := w.Next()
			assert.Equal(t, room, w.Current())
			assert.True(t, w.Occupied(room))
		}
	})
}
