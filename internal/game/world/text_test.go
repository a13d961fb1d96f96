package world_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/manor/internal/game/geometry"
	"github.com/cory-johannsen/manor/internal/game/world"
)

const validWorldText = `4 4 Tiny Manor
10 Doctor Lucky
Fortune the Cat
3
0 0 1 1 Armory
0 2 1 3 Billiard Room
2 0 3 1 Conservatory
2
0 3 Revolver
1 2 Billiard Cue
`

func TestParseText_Valid(t *testing.T) {
	desc, err := world.ParseText(strings.NewReader(validWorldText))
	require.NoError(t, err)

	assert.Equal(t, "Tiny Manor", desc.Name)
	assert.Equal(t, 4, desc.Rows)
	assert.Equal(t, 4, desc.Cols)
	assert.Equal(t, world.TargetSpec{Name: "Doctor Lucky", Health: 10}, desc.Target)
	assert.Equal(t, "Fortune the Cat", desc.Pet.Name)
	require.Len(t, desc.Rooms, 3)
	assert.Equal(t, world.RoomSpec{Name: "Billiard Room", Area: geometry.MustRect(0, 2, 1, 3)}, desc.Rooms[1])
	require.Len(t, desc.Items, 2)
	assert.Equal(t, world.ItemSpec{Name: "Revolver", Damage: 3, Room: 0}, desc.Items[0])
	assert.Equal(t, world.ItemSpec{Name: "Billiard Cue", Damage: 2, Room: 1}, desc.Items[1])
}

func TestParseText_PetLineOptional(t *testing.T) {
	src := "2 2 Hut\n5 Target\n1\n0 0 1 1 Only Room\n0\n"
	layout, err := world.LoadText(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, world.DefaultPetName, layout.Initial().Pet.Name)
	assert.Equal(t, 1, layout.RoomCount())
}

func TestParseText_TabsSeparateTokens(t *testing.T) {
	src := "2\t2\tHut\n5\tTarget\n1\n0\t0\t1\t1\tOnly Room\n0\n"
	desc, err := world.ParseText(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "Only Room", desc.Rooms[0].Name)
}

func TestParseText_Errors(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		line  int
		field string
	}{
		{"empty input", "", 1, "world header"},
		{"missing world name", "4 4\n", 1, "world name"},
		{"non-integer dims", "four 4 Manor\n", 1, "world header"},
		{"missing target name", "4 4 Manor\n10\n", 2, "target name"},
		{"blank line", "4 4 Manor\n\n", 2, "target"},
		{"zero rooms", "4 4 Manor\n10 T\n0\n", 3, "room count"},
		{"truncated rooms", "4 4 Manor\n10 T\n2\n0 0 1 1 A\n", 5, "room"},
		{"room missing name", "4 4 Manor\n10 T\n1\n0 0 1 1\n", 4, "room name"},
		{"room too few ints", "4 4 Manor\n10 T\n1\n0 0 1\n", 4, "room"},
		{"inverted room", "4 4 Manor\n10 T\n1\n1 1 0 0 A\n", 4, "room rectangle"},
		{"missing item count", "4 4 Manor\n10 T\n1\n0 0 1 1 A\n", 5, "item count"},
		{"negative item count", "4 4 Manor\n10 T\n1\n0 0 1 1 A\n-1\n", 5, "item count"},
		{"item bad damage", "4 4 Manor\n10 T\n1\n0 0 1 1 A\n1\n0 x Knife\n", 6, "item"},
		{"pet line then blank", "4 4 Manor\n10 T\nCat\n\n", 4, "room count"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := world.ParseText(strings.NewReader(tc.src))
			var le *world.LoadError
			require.True(t, errors.As(err, &le), "expected *LoadError, got %v", err)
			assert.Equal(t, tc.line, le.Line)
			assert.Equal(t, tc.field, le.Field)
			assert.Contains(t, le.Error(), "line")
		})
	}
}

func TestLoadText_ValidationErrors(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		field string
	}{
		{"room out of bounds", "2 2 M\n10 T\n1\n0 0 2 2 A\n0\n", "rooms[0]"},
		{"overlap", "4 4 M\n10 T\n2\n0 0 2 2 A\n1 1 3 3 B\n0\n", "rooms[1]"},
		{"item bad room", "2 2 M\n10 T\n1\n0 0 1 1 A\n1\n3 1 Knife\n", "items[0]"},
		{"negative damage", "2 2 M\n10 T\n1\n0 0 1 1 A\n1\n0 -1 Knife\n", "items[0]"},
		{"negative health", "2 2 M\n-1 T\n1\n0 0 1 1 A\n0\n", "target"},
		{"duplicate room", "2 4 M\n10 T\n2\n0 0 1 1 Hall\n0 2 1 3 HALL\n0\n", "rooms[1]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := world.LoadText(strings.NewReader(tc.src))
			var ve *world.ValidationError
			require.True(t, errors.As(err, &ve), "expected *ValidationError, got %v", err)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}
