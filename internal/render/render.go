// Package render draws a static PNG map of a world: every room as an
// outlined rectangle with its name, and a colored marker for each character.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/cory-johannsen/manor/internal/game/entity"
	"github.com/cory-johannsen/manor/internal/game/world"
)

// MinCellSize is the smallest cell edge, in pixels, that leaves room for a
// marker inside a one-cell room.
const MinCellSize = 4

// markerSize is the edge of a character marker in pixels, before clamping to
// the cell size.
const markerSize = 10

// Palette used for the map.
var (
	Background  = color.RGBA{R: 0xf4, G: 0xef, B: 0xe6, A: 0xff}
	RoomFill    = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	RoomOutline = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	LabelColor  = color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}
	PlayerColor = color.RGBA{R: 0x1f, G: 0x5f, B: 0xbf, A: 0xff}
	TargetColor = color.RGBA{R: 0xc0, G: 0x1f, B: 0x1f, A: 0xff}
	PetColor    = color.RGBA{R: 0x2f, G: 0x9f, B: 0x3f, A: 0xff}
)

// MarkerColor returns the marker color for a character kind.
func MarkerColor(k entity.Kind) color.RGBA {
	switch k {
	case entity.KindTarget:
		return TargetColor
	case entity.KindPet:
		return PetColor
	default:
		return PlayerColor
	}
}

// Draw renders the layout with a marker for every character.
//
// Precondition: layout is non-nil; cellSize >= MinCellSize.
// Postcondition: the image is Cols*cellSize wide and Rows*cellSize tall.
func Draw(layout *world.Layout, characters []entity.Character, cellSize int) (*image.RGBA, error) {
	if layout == nil {
		return nil, fmt.Errorf("render: layout must not be nil")
	}
	if cellSize < MinCellSize {
		return nil, fmt.Errorf("render: cell size %d is below the minimum %d", cellSize, MinCellSize)
	}

	img := image.NewRGBA(image.Rect(0, 0, layout.Cols()*cellSize, layout.Rows()*cellSize))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	rooms := layout.Rooms()
	for _, r := range rooms {
		px := RoomBounds(r, cellSize)
		draw.Draw(img, px, image.NewUniform(RoomFill), image.Point{}, draw.Src)
		outline(img, px, RoomOutline)
		label(img, px, r.Name)
	}

	// Markers fill each room left to right along its bottom edge.
	placed := make(map[int]int, len(rooms))
	size := min(markerSize, cellSize-2)
	for _, c := range characters {
		if !layout.ValidIndex(c.Room) {
			continue
		}
		px := RoomBounds(rooms[c.Room], cellSize)
		slot := placed[c.Room]
		placed[c.Room]++

		perRow := max(1, (px.Dx()-2)/(size+2))
		x := px.Min.X + 2 + (slot%perRow)*(size+2)
		y := px.Max.Y - 2 - size - (slot/perRow)*(size+2)
		if y < px.Min.Y+1 {
			y = px.Min.Y + 1
		}
		m := image.Rect(x, y, x+size, y+size).Intersect(px.Inset(1))
		draw.Draw(img, m, image.NewUniform(MarkerColor(c.Kind)), image.Point{}, draw.Src)
	}
	return img, nil
}

// RoomBounds returns the pixel rectangle covered by r. Room rectangles are
// inclusive of their lower-right cell.
func RoomBounds(r world.Room, cellSize int) image.Rectangle {
	return image.Rect(
		r.Area.Left()*cellSize,
		r.Area.Top()*cellSize,
		(r.Area.Right()+1)*cellSize,
		(r.Area.Bottom()+1)*cellSize,
	)
}

// WriteMap encodes the rendered map as PNG to w.
func WriteMap(w io.Writer, layout *world.Layout, characters []entity.Character, cellSize int) error {
	img, err := Draw(layout, characters, cellSize)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("render: encoding png: %w", err)
	}
	return nil
}

// SaveMap writes the rendered map to a PNG file at path.
func SaveMap(path string, layout *world.Layout, characters []entity.Character, cellSize int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: creating %s: %w", path, err)
	}
	if err := WriteMap(f, layout, characters, cellSize); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("render: closing %s: %w", path, err)
	}
	return nil
}

func outline(img *image.RGBA, r image.Rectangle, c color.Color) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}

// label writes name in the room's top-left corner, truncated to fit.
func label(img *image.RGBA, r image.Rectangle, name string) {
	face := basicfont.Face7x13
	metrics := face.Metrics()
	if r.Dy() < metrics.Height.Ceil()+2 {
		return
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(LabelColor),
		Face: face,
		Dot:  fixed.P(r.Min.X+3, r.Min.Y+2+metrics.Ascent.Ceil()),
	}
	text := []rune(name)
	limit := fixed.I(r.Dx() - 6)
	for len(text) > 0 && d.MeasureString(string(text)) > limit {
		text = text[:len(text)-1]
	}
	d.DrawString(string(text))
}
