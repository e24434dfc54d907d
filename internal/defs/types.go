// internal/defs/types.go
package defs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Color — цвет в YAML в виде "#RRGGBB" или "#RRGGBBAA".
type Color color.RGBA

// UnmarshalYAML разбирает шестнадцатеричную запись цвета.
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseColor(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*c = parsed
	return nil
}

// Value возвращает цвет в виде color.RGBA.
func (c Color) Value() color.RGBA {
	return color.RGBA(c)
}

func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("invalid colour %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Visuals contains parameters for rendering an entity.
type Visuals struct {
	Color  Color   `yaml:"color"`
	Radius float32 `yaml:"radius"`
}
