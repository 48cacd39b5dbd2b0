// Package lights builds the static list of lights for a grid: how many there
// are and what colour each one shows when on and when off.
package lights

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"

	"go-lights/pattern"
)

// OffRatio is how much lightness an off light loses.
const OffRatio = 0.8

// ErrBadColor is returned for a colour string that cannot be parsed.
var ErrBadColor = errors.New("bad color")

// Color is one palette entry. ID is only a stable key for the UI.
type Color struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// NewColors assigns a fresh id to each value.
func NewColors(values ...string) []Color {
	colors := make([]Color, len(values))
	for i, v := range values {
		colors[i] = Color{ID: uuid.New().String(), Value: v}
	}
	return colors
}

// Values returns the colour strings in order.
func Values(colors []Color) []string {
	out := make([]string, len(colors))
	for i, c := range colors {
		out[i] = c.Value
	}
	return out
}

// Light is a single bulb. Its position in the grid is derived from Index.
type Light struct {
	Index    int
	Color    string
	OffColor string
}

// Row returns the light's row.
func (l Light) Row(rowSize int) int {
	return l.Index / rowSize
}

// Column returns the light's column.
func (l Light) Column(rowSize int) int {
	return l.Index % rowSize
}

// BuildGrid returns rows*rowSize lights. Colours repeat on every row: the
// light in column c gets colors[c], so colors must hold at least rowSize
// entries.
func BuildGrid(colors []Color, rows, rowSize int) ([]Light, error) {
	if len(colors) < rowSize {
		return nil, fmt.Errorf("palette has %d colors, need %d: %w", len(colors), rowSize, pattern.ErrIndexOutOfRange)
	}

	// off colours are computed once per column, not per light
	offColors := make([]string, rowSize)
	for c := 0; c < rowSize; c++ {
		off, err := Darken(colors[c].Value, OffRatio)
		if err != nil {
			return nil, err
		}
		offColors[c] = off
	}

	total := rows * rowSize
	grid := make([]Light, total)
	for i := 0; i < total; i++ {
		c := i % rowSize
		grid[i] = Light{
			Index:    i,
			Color:    colors[c].Value,
			OffColor: offColors[c],
		}
	}
	return grid, nil
}

// Darken reduces the HSL lightness of value by ratio (0.8 keeps 20% of it)
// and returns the result as #rrggbb.
func Darken(value string, ratio float64) (string, error) {
	c, err := colorful.Hex(value)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrBadColor, value, err)
	}
	h, s, l := c.Hsl()
	l -= l * ratio
	return colorful.Hsl(h, s, l).Clamped().Hex(), nil
}
