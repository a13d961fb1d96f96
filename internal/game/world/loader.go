package world

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/manor/internal/game/geometry"
)

// Layout source formats accepted by LoadFile.
const (
	FormatAuto = "auto"
	FormatText = "text"
	FormatYAML = "yaml"
)

// yamlWorldFile is the top-level YAML structure for layout files.
type yamlWorldFile struct {
	World yamlWorld `yaml:"world"`
}

// yamlWorld is the YAML representation of a world layout.
type yamlWorld struct {
	Name   string     `yaml:"name"`
	Rows   int        `yaml:"rows"`
	Cols   int        `yaml:"cols"`
	Target yamlTarget `yaml:"target"`
	Pet    yamlPet    `yaml:"pet"`
	Rooms  []yamlRoom `yaml:"rooms"`
	Items  []yamlItem `yaml:"items"`
}

type yamlTarget struct {
	Name   string `yaml:"name"`
	Health int    `yaml:"health"`
	Start  int    `yaml:"start"`
}

type yamlPet struct {
	Name  string `yaml:"name"`
	Start int    `yaml:"start"`
}

// yamlRoom carries its rectangle as [top, left, bottom, right].
type yamlRoom struct {
	Name string `yaml:"name"`
	Area []int  `yaml:"area"`
}

type yamlItem struct {
	Name   string `yaml:"name"`
	Damage int    `yaml:"damage"`
	Room   int    `yaml:"room"`
}

// LoadFile reads a layout file in the given format. FormatAuto picks YAML
// for .yaml/.yml files and the text format otherwise.
//
// Precondition: path must name a readable file.
// Postcondition: Returns a validated Layout or a non-nil error.
func LoadFile(path, format string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout file %s: %w", path, err)
	}

	if format == "" || format == FormatAuto {
		format = FormatText
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			format = FormatYAML
		}
	}

	var layout *Layout
	switch format {
	case FormatYAML:
		layout, err = LoadYAML(data)
	case FormatText:
		layout, err = LoadText(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unknown layout format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("loading layout from %s: %w", path, err)
	}
	return layout, nil
}

// ParseYAML decodes a YAML layout into a Description without validating it.
//
// Postcondition: Returns a Description or a *LoadError.
func ParseYAML(data []byte) (Description, error) {
	var file yamlWorldFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Description{}, &LoadError{Field: "yaml", Msg: err.Error()}
	}
	return convertYAMLWorld(file.World)
}

// LoadYAML parses and validates a YAML layout.
//
// Postcondition: Returns a Layout, a *LoadError, or a *ValidationError.
func LoadYAML(data []byte) (*Layout, error) {
	desc, err := ParseYAML(data)
	if err != nil {
		return nil, err
	}
	return NewLayout(desc)
}

// convertYAMLWorld converts the parsed YAML structures into a Description.
func convertYAMLWorld(yw yamlWorld) (Description, error) {
	desc := Description{
		Name: strings.TrimSpace(yw.Name),
		Rows: yw.Rows,
		Cols: yw.Cols,
		Target: TargetSpec{
			Name:   strings.TrimSpace(yw.Target.Name),
			Health: yw.Target.Health,
			Start:  yw.Target.Start,
		},
		Pet: PetSpec{
			Name:  strings.TrimSpace(yw.Pet.Name),
			Start: yw.Pet.Start,
		},
		Rooms: make([]RoomSpec, 0, len(yw.Rooms)),
		Items: make([]ItemSpec, 0, len(yw.Items)),
	}

	for i, yr := range yw.Rooms {
		field := fmt.Sprintf("rooms[%d].area", i)
		if len(yr.Area) != 4 {
			return Description{}, &LoadError{Field: field, Msg: fmt.Sprintf("expected [top, left, bottom, right], got %d values", len(yr.Area))}
		}
		area, err := geometry.NewRect(
			geometry.Point{Row: yr.Area[0], Col: yr.Area[1]},
			geometry.Point{Row: yr.Area[2], Col: yr.Area[3]},
		)
		if err != nil {
			return Description{}, &LoadError{Field: field, Msg: err.Error()}
		}
		desc.Rooms = append(desc.Rooms, RoomSpec{Name: strings.TrimSpace(yr.Name), Area: area})
	}

	for _, yi := range yw.Items {
		desc.Items = append(desc.Items, ItemSpec{
			Name:   strings.TrimSpace(yi.Name),
			Damage: yi.Damage,
			Room:   yi.Room,
		})
	}

	return desc, nil
}
