package world_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/manor/internal/game/world"
)

const validWorldYAML = `
world:
  name: "Doctor Lucky's Mansion"
  rows: 4
  cols: 4
  target:
    name: Doctor Lucky
    health: 10
    start: 0
  pet:
    name: Fortune the Cat
    start: 1
  rooms:
    - name: Armory
      area: [0, 0, 1, 1]
    - name: Billiard Room
      area: [0, 2, 1, 3]
    - name: Conservatory
      area: [2, 0, 3, 1]
  items:
    - name: Revolver
      damage: 3
      room: 0
    - name: Billiard Cue
      damage: 2
      room: 1
`

func TestLoadYAML_Valid(t *testing.T) {
	layout, err := world.LoadYAML([]byte(validWorldYAML))
	require.NoError(t, err)

	assert.Equal(t, "Doctor Lucky's Mansion", layout.Name())
	assert.Equal(t, 4, layout.Rows())
	assert.Equal(t, 4, layout.Cols())
	require.Equal(t, 3, layout.RoomCount())
	assert.Equal(t, "Billiard Room", layout.Room(1).Name)

	desc := layout.Initial()
	assert.Equal(t, "Doctor Lucky", desc.Target.Name)
	assert.Equal(t, 10, desc.Target.Health)
	assert.Equal(t, "Fortune the Cat", desc.Pet.Name)
	assert.Equal(t, 1, desc.Pet.Start)
	require.Len(t, desc.Items, 2)
	assert.Equal(t, world.ItemSpec{Name: "Revolver", Damage: 3, Room: 0}, desc.Items[0])
}

func TestLoadYAML_DefaultPetName(t *testing.T) {
	data := `
world:
  name: Tiny
  rows: 2
  cols: 2
  target: {name: T, health: 1}
  rooms:
    - name: Only
      area: [0, 0, 1, 1]
`
	layout, err := world.LoadYAML([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, world.DefaultPetName, layout.Initial().Pet.Name)
	assert.Empty(t, layout.Initial().Items)
}

func TestLoadYAML_InvalidSyntax(t *testing.T) {
	_, err := world.LoadYAML([]byte("world: [unterminated"))
	var le *world.LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "yaml", le.Field)
}

func TestLoadYAML_AreaWrongLength(t *testing.T) {
	data := `
world:
  name: Bad
  rows: 2
  cols: 2
  target: {name: T, health: 1}
  rooms:
    - name: Only
      area: [0, 0, 1]
`
	_, err := world.LoadYAML([]byte(data))
	var le *world.LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "rooms[0].area", le.Field)
}

func TestLoadYAML_InvertedArea(t *testing.T) {
	data := `
world:
  name: Bad
  rows: 4
  cols: 4
  target: {name: T, health: 1}
  rooms:
    - name: Only
      area: [2, 2, 0, 0]
`
	_, err := world.LoadYAML([]byte(data))
	var le *world.LoadError
	require.True(t, errors.As(err, &le))
}

func TestLoadYAML_OverlappingRoomsRejected(t *testing.T) {
	data := `
world:
  name: Bad
  rows: 4
  cols: 4
  target: {name: T, health: 1}
  rooms:
    - name: A
      area: [0, 0, 2, 2]
    - name: B
      area: [1, 1, 3, 3]
`
	_, err := world.LoadYAML([]byte(data))
	var ve *world.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Msg, "overlaps")
}

func TestLoadFile_AutoDetectsFormat(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "mansion.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(validWorldYAML), 0o644))
	layout, err := world.LoadFile(yamlPath, world.FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, 3, layout.RoomCount())

	textPath := filepath.Join(dir, "mansion.txt")
	require.NoError(t, os.WriteFile(textPath, []byte(validWorldText), 0o644))
	layout, err = world.LoadFile(textPath, "")
	require.NoError(t, err)
	assert.Equal(t, "Tiny Manor", layout.Name())
}

func TestLoadFile_ExplicitFormatOverridesExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mansion.layout")
	require.NoError(t, os.WriteFile(path, []byte(validWorldYAML), 0o644))

	_, err := world.LoadFile(path, world.FormatYAML)
	require.NoError(t, err)

	_, err = world.LoadFile(path, world.FormatText)
	var le *world.LoadError
	require.True(t, errors.As(err, &le), "YAML read as text must fail to parse")
	assert.Equal(t, 1, le.Line)
}

func TestLoadFile_UnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mansion.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validWorldYAML), 0o644))
	_, err := world.LoadFile(path, "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown layout format")
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := world.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"), world.FormatAuto)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadFile_BundledWorldsAgree(t *testing.T) {
	dir := filepath.Join("..", "..", "..", "content", "worlds")

	fromText, err := world.LoadFile(filepath.Join(dir, "manor.txt"), world.FormatAuto)
	require.NoError(t, err)
	fromYAML, err := world.LoadFile(filepath.Join(dir, "manor.yaml"), world.FormatAuto)
	require.NoError(t, err)

	assert.Equal(t, fromText.Initial(), fromYAML.Initial())
	assert.Equal(t, 8, fromText.RoomCount())
	assert.Equal(t, []int{1, 3}, fromText.Neighbors(0))
	assert.Equal(t, []int{0, 1, 4, 5, 6}, fromText.Neighbors(3))
}
