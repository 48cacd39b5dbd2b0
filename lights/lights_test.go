package lights

import (
	"errors"
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"go-lights/pattern"
)

var palette = []string{"#4CAF50", "#5E35B1", "#536DFE", "#03A9F4", "#CDDC39", "#FFC107", "#FF5722"}

func TestBuildGridCount(t *testing.T) {
	colors := NewColors(palette...)
	for rows := 1; rows <= pattern.MaxRows; rows++ {
		grid, err := BuildGrid(colors, rows, pattern.RowSize)
		if err != nil {
			t.Fatalf("rows=%d: %v", rows, err)
		}
		if len(grid) != rows*pattern.RowSize {
			t.Errorf("rows=%d: %d lights, want %d", rows, len(grid), rows*pattern.RowSize)
		}
	}
}

func TestBuildGridColorsCyclePerRow(t *testing.T) {
	// extra colours past rowSize are never used
	colors := NewColors(append(palette, "#FFFFFF")...)
	grid, err := BuildGrid(colors, 3, pattern.RowSize)
	if err != nil {
		t.Fatal(err)
	}
	for i, l := range grid {
		if l.Index != i {
			t.Errorf("light %d has index %d", i, l.Index)
		}
		col := l.Column(pattern.RowSize)
		if l.Color != palette[col] {
			t.Errorf("light %d color = %s, want %s", i, l.Color, palette[col])
		}
		if l.OffColor != grid[col].OffColor {
			t.Errorf("light %d off color differs from column head", i)
		}
		if l.Row(pattern.RowSize) != i/pattern.RowSize {
			t.Errorf("light %d row = %d", i, l.Row(pattern.RowSize))
		}
	}
}

func TestBuildGridShortPalette(t *testing.T) {
	_, err := BuildGrid(NewColors(palette[:3]...), 2, pattern.RowSize)
	if !errors.Is(err, pattern.ErrIndexOutOfRange) {
		t.Errorf("err = %v, want ErrIndexOutOfRange", err)
	}
}

func TestBuildGridBadColor(t *testing.T) {
	values := append([]string{"not-a-color"}, palette[1:]...)
	_, err := BuildGrid(NewColors(values...), 1, pattern.RowSize)
	if !errors.Is(err, ErrBadColor) {
		t.Errorf("err = %v, want ErrBadColor", err)
	}
}

func TestDarken(t *testing.T) {
	for _, v := range palette {
		off, err := Darken(v, OffRatio)
		if err != nil {
			t.Fatalf("Darken(%s): %v", v, err)
		}
		on, _ := colorful.Hex(v)
		dim, err := colorful.Hex(off)
		if err != nil {
			t.Fatalf("Darken(%s) = %q, not hex", v, off)
		}
		_, _, lOn := on.Hsl()
		_, _, lOff := dim.Hsl()
		if math.Abs(lOff-lOn*0.2) > 0.01 {
			t.Errorf("Darken(%s) lightness = %.3f, want about %.3f", v, lOff, lOn*0.2)
		}
	}
}

func TestNewColorsUniqueIDs(t *testing.T) {
	colors := NewColors(palette...)
	seen := make(map[string]bool)
	for _, c := range colors {
		if c.ID == "" || seen[c.ID] {
			t.Fatalf("duplicate or empty id %q", c.ID)
		}
		seen[c.ID] = true
	}
	if got := Values(colors); len(got) != len(palette) || got[0] != palette[0] {
		t.Errorf("Values = %v", got)
	}
}
