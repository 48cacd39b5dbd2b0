// Package settings holds the user-editable light settings, their
// merge-style patches and the bounded selectors that edit them.
package settings

import (
	"fmt"

	"go-lights/lights"
	"go-lights/pattern"
)

// DefaultPalette is the colour of each column, left to right.
var DefaultPalette = []string{
	"#4CAF50",
	"#5E35B1",
	"#536DFE",
	"#03A9F4",
	"#CDDC39",
	"#FFC107",
	"#FF5722",
}

// Settings is everything the user can change about the grid.
type Settings struct {
	Colors       []lights.Color `json:"colors"`
	Rows         int            `json:"rows"`
	PatternIndex int            `json:"patternIndex"`
}

// Default returns the startup settings: full grid, first pattern.
func Default() Settings {
	return Settings{
		Colors:       lights.NewColors(DefaultPalette...),
		Rows:         pattern.MaxRows,
		PatternIndex: 0,
	}
}

// Patch is a partial update. Nil fields keep their current value.
type Patch struct {
	Colors       []lights.Color
	Rows         *int
	PatternIndex *int
}

// WithRows returns a patch that only changes the row count.
func WithRows(rows int) Patch {
	return Patch{Rows: &rows}
}

// WithPattern returns a patch that only changes the active pattern.
func WithPattern(i int) Patch {
	return Patch{PatternIndex: &i}
}

// WithColors returns a patch that only changes the palette.
func WithColors(colors []lights.Color) Patch {
	return Patch{Colors: colors}
}

// Apply returns s with the fields set in p replaced.
func (s Settings) Apply(p Patch) Settings {
	out := s
	if p.Colors != nil {
		out.Colors = p.Colors
	}
	if p.Rows != nil {
		out.Rows = *p.Rows
	}
	if p.PatternIndex != nil {
		out.PatternIndex = *p.PatternIndex
	}
	return out
}

// Total returns the number of lights.
func (s Settings) Total() int {
	return s.Rows * pattern.RowSize
}

// Validate checks s against a catalog of catalogLen patterns.
func (s Settings) Validate(catalogLen int) error {
	if s.Rows < 1 || s.Rows > pattern.MaxRows {
		return fmt.Errorf("rows %d not in [1, %d]: %w", s.Rows, pattern.MaxRows, pattern.ErrIndexOutOfRange)
	}
	if s.PatternIndex < 0 || s.PatternIndex >= catalogLen {
		return fmt.Errorf("pattern %d not in [0, %d): %w", s.PatternIndex, catalogLen, pattern.ErrIndexOutOfRange)
	}
	if len(s.Colors) < pattern.RowSize {
		return fmt.Errorf("%d colors, need %d: %w", len(s.Colors), pattern.RowSize, pattern.ErrIndexOutOfRange)
	}
	return nil
}

// SameColors reports whether a and b hold the same entries in the same order.
func SameColors(a, b []lights.Color) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
