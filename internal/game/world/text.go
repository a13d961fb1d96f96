package world

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/cory-johannsen/manor/internal/game/geometry"
)

// ParseText reads the line-oriented layout format:
//
//	rows cols world name
//	health target name
//	[pet name]
//	room-count
//	top left bottom right room name      (room-count lines)
//	item-count
//	room damage item name                (item-count lines)
//
// The optional pet line is any line that does not begin with an integer.
// The target and pet start in room 0.
//
// Postcondition: Returns a Description or a *LoadError naming the line and field.
// The Description is not validated; pass it to NewLayout.
func ParseText(r io.Reader) (Description, error) {
	p := &textParser{sc: bufio.NewScanner(r)}
	var desc Description

	ints, rest, err := p.head(2, "world header")
	if err != nil {
		return Description{}, err
	}
	desc.Rows, desc.Cols = ints[0], ints[1]
	if desc.Name, err = p.nonBlank(rest, "world name"); err != nil {
		return Description{}, err
	}

	ints, rest, err = p.head(1, "target")
	if err != nil {
		return Description{}, err
	}
	desc.Target.Health = ints[0]
	if desc.Target.Name, err = p.nonBlank(rest, "target name"); err != nil {
		return Description{}, err
	}

	line, err := p.next("room count")
	if err != nil {
		return Description{}, err
	}
	if !startsWithInt(line) {
		desc.Pet.Name = line
		if line, err = p.next("room count"); err != nil {
			return Description{}, err
		}
	}
	roomCount, err := p.count(line, "room count", 1)
	if err != nil {
		return Description{}, err
	}

	desc.Rooms = []RoomSpec{}
	for range roomCount {
		ints, rest, err := p.head(4, "room")
		if err != nil {
			return Description{}, err
		}
		name, err := p.nonBlank(rest, "room name")
		if err != nil {
			return Description{}, err
		}
		area, err := geometry.NewRect(
			geometry.Point{Row: ints[0], Col: ints[1]},
			geometry.Point{Row: ints[2], Col: ints[3]},
		)
		if err != nil {
			return Description{}, p.fail("room rectangle", "%s", err.Error())
		}
		desc.Rooms = append(desc.Rooms, RoomSpec{Name: name, Area: area})
	}

	line, err = p.next("item count")
	if err != nil {
		return Description{}, err
	}
	itemCount, err := p.count(line, "item count", 0)
	if err != nil {
		return Description{}, err
	}

	desc.Items = []ItemSpec{}
	for range itemCount {
		ints, rest, err := p.head(2, "item")
		if err != nil {
			return Description{}, err
		}
		name, err := p.nonBlank(rest, "item name")
		if err != nil {
			return Description{}, err
		}
		desc.Items = append(desc.Items, ItemSpec{Name: name, Room: ints[0], Damage: ints[1]})
	}

	if err := p.sc.Err(); err != nil {
		return Description{}, fmt.Errorf("reading layout: %w", err)
	}
	return desc, nil
}

// LoadText parses and validates a text layout.
//
// Postcondition: Returns a Layout, a *LoadError, or a *ValidationError.
func LoadText(r io.Reader) (*Layout, error) {
	desc, err := ParseText(r)
	if err != nil {
		return nil, err
	}
	return NewLayout(desc)
}

type textParser struct {
	sc   *bufio.Scanner
	line int
}

func (p *textParser) fail(field, format string, args ...any) error {
	return &LoadError{Line: p.line, Field: field, Msg: fmt.Sprintf(format, args...)}
}

// next returns the next trimmed line. Blank lines and end of input are errors.
func (p *textParser) next(field string) (string, error) {
	p.line++
	if !p.sc.Scan() {
		if err := p.sc.Err(); err != nil {
			return "", fmt.Errorf("reading layout: %w", err)
		}
		return "", p.fail(field, "unexpected end of input")
	}
	line := strings.TrimSpace(p.sc.Text())
	if line == "" {
		return "", p.fail(field, "empty line not allowed")
	}
	return line, nil
}

// head reads a line that begins with n integers and returns them with the
// remainder of the line.
func (p *textParser) head(n int, field string) ([]int, string, error) {
	line, err := p.next(field)
	if err != nil {
		return nil, "", err
	}
	ints := make([]int, n)
	rest := line
	for i := range n {
		tok, remainder := splitToken(rest)
		if tok == "" {
			return nil, "", p.fail(field, "expected %d integers at line start", n)
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, "", p.fail(field, "invalid integer %q", tok)
		}
		ints[i] = v
		rest = remainder
	}
	return ints, strings.TrimSpace(rest), nil
}

func (p *textParser) nonBlank(s, field string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", p.fail(field, "missing %s", field)
	}
	return strings.TrimSpace(s), nil
}

func (p *textParser) count(line, field string, minimum int) (int, error) {
	v, err := strconv.Atoi(line)
	if err != nil || v < minimum || v > math.MaxInt32 {
		return 0, p.fail(field, "invalid %s %q", field, line)
	}
	return v, nil
}

func startsWithInt(line string) bool {
	tok, _ := splitToken(line)
	_, err := strconv.Atoi(tok)
	return err == nil
}

// splitToken returns the first whitespace-delimited token of s and the rest.
func splitToken(s string) (string, string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := strings.IndexFunc(s, unicode.IsSpace)
	if end < 0 {
		return s, ""
	}
	return s[:end], s[end:]
}
