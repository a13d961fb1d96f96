package render_test

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/manor/internal/game/entity"
	"github.com/cory-johannsen/manor/internal/game/geometry"
	"github.com/cory-johannsen/manor/internal/game/world"
	"github.com/cory-johannsen/manor/internal/render"
)

func testLayout(t require.TestingT) *world.Layout {
	layout, err := world.NewLayout(world.Description{
		Name: "Tiny Manor",
		Rows: 4,
		Cols: 4,
		Rooms: []world.RoomSpec{
			{Name: "Hall", Area: geometry.MustRect(0, 0, 1, 1)},
			{Name: "Library", Area: geometry.MustRect(0, 2, 1, 3)},
			{Name: "Kitchen", Area: geometry.MustRect(2, 0, 3, 1)},
		},
		Target: world.TargetSpec{Name: "Doctor Lucky", Health: 10},
		Pet:    world.PetSpec{Name: "Fortune the Cat", Start: 2},
	})
	require.NoError(t, err)
	return layout
}

func characters() []entity.Character {
	return []entity.Character{
		{Kind: entity.KindPlayer, Name: "P0", Room: 0},
		{Kind: entity.KindTarget, Name: "Doctor Lucky", Room: 0},
		{Kind: entity.KindPet, Name: "Fortune the Cat", Room: 2},
	}
}

func TestDraw_Pixels(t *testing.T) {
	img, err := render.Draw(testLayout(t), characters(), 30)
	require.NoError(t, err)

	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 120, img.Bounds().Dy())

	assert.Equal(t, render.RoomOutline, img.RGBAAt(0, 0))
	assert.Equal(t, render.RoomFill, img.RGBAAt(40, 40))
	assert.Equal(t, render.Background, img.RGBAAt(100, 100), "no room covers the bottom-right cell")

	// Hall's markers sit along its bottom edge in character order.
	assert.Equal(t, render.PlayerColor, img.RGBAAt(5, 52))
	assert.Equal(t, render.TargetColor, img.RGBAAt(17, 52))
	assert.Equal(t, render.PetColor, img.RGBAAt(5, 112))
}

func TestDraw_SkipsUnplacedCharacters(t *testing.T) {
	chars := []entity.Character{{Kind: entity.KindPlayer, Name: "Ghost", Room: entity.NoRoom}}
	_, err := render.Draw(testLayout(t), chars, 30)
	assert.NoError(t, err)
}

func TestDraw_Rejects(t *testing.T) {
	_, err := render.Draw(nil, nil, 30)
	assert.Error(t, err)

	_, err = render.Draw(testLayout(t), nil, render.MinCellSize-1)
	assert.Error(t, err)
}

func TestRoomBounds_InclusiveCells(t *testing.T) {
	r := world.Room{Name: "Library", Area: geometry.MustRect(0, 2, 1, 3)}
	b := render.RoomBounds(r, 10)
	assert.Equal(t, 20, b.Min.X)
	assert.Equal(t, 0, b.Min.Y)
	assert.Equal(t, 40, b.Max.X)
	assert.Equal(t, 20, b.Max.Y)
}

func TestWriteMap_EncodesPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.WriteMap(&buf, testLayout(t), characters(), 16))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 64, img.Bounds().Dy())
}

func TestSaveMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.png")
	require.NoError(t, render.SaveMap(path, testLayout(t), characters(), 20))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = png.Decode(f)
	assert.NoError(t, err)

	assert.Error(t, render.SaveMap(filepath.Join(t.TempDir(), "missing", "map.png"), testLayout(t), nil, 20))
}

func TestProperty_MarkersStayInsideTheirRoom(t *testing.T) {
	layout := testLayout(t)
	rapid.Check(t, func(rt *rapid.T) {
		cell := rapid.IntRange(render.MinCellSize, 40).Draw(rt, "cell")
		room := rapid.IntRange(0, 2).Draw(rt, "room")
		n := rapid.IntRange(1, 12).Draw(rt, "characters")
		chars := make([]entity.Character, n)
		for i := range chars {
			chars[i] = entity.Character{Kind: entity.KindTarget, Room: room}
		}

		img, err := render.Draw(layout, chars, cell)
		require.NoError(rt, err)

		inside := render.RoomBounds(layout.Room(room), cell)
		b := img.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if img.RGBAAt(x, y) == render.TargetColor && !image.Pt(x, y).In(inside) {
					rt.Fatalf("marker pixel (%d, %d) outside room %v", x, y, inside)
				}
			}
		}
	})
}
