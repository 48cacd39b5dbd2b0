// Package pattern decides, for any light and animation frame, whether that
// light is on.
//
// A pattern is used in two phases. Bind fixes the shape of the grid (total
// number of lights and lights per row) once, and the returned Bound is then
// asked "is light i on at frame step?" for every light on every frame.
// Evaluate must stay cheap and free of side effects.
package pattern

import (
	"errors"
	"fmt"
)

// RowSize is the number of lights in every row of the grid.
const RowSize = 7

// MaxRows is the largest supported row count.
const MaxRows = 7

var (
	// ErrIndexOutOfRange is returned when a catalog or palette entry is
	// requested outside its bounds.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrMissingOffsetEntry means a composed pattern has no starting offset
	// for some supported row count or row.
	ErrMissingOffsetEntry = errors.New("missing offset entry")

	// ErrBadTemplate means a row template table is empty or holds a row of
	// the wrong width or a value other than 0 and 1.
	ErrBadTemplate = errors.New("bad row template")
)

// Definition is a stateless pattern rule.
type Definition interface {
	Bind(total, rowSize int) Bound
}

// Bound is a Definition with the grid shape fixed.
type Bound interface {
	Evaluate(i, step int) bool
}

// OneColumnAtATime lights a single column sweeping left to right.
type OneColumnAtATime struct{}

func (OneColumnAtATime) Bind(total, rowSize int) Bound {
	return oneColumn{rowSize: rowSize}
}

type oneColumn struct {
	rowSize int
}

func (p oneColumn) Evaluate(i, step int) bool {
	return i%p.rowSize == step%p.rowSize
}

// LightAllOneAtATime fills the grid one light at a time, then starts over.
// Light 0 is lit on every frame.
type LightAllOneAtATime struct{}

func (LightAllOneAtATime) Bind(total, rowSize int) Bound {
	return lightAll{total: total}
}

type lightAll struct {
	total int
}

func (p lightAll) Evaluate(i, step int) bool {
	return i-1 <= step%p.total-1
}

// OffsetTable holds the starting template row for every row of the grid,
// indexed first by (row count - 1) and then by row.
type OffsetTable [][]int

// RowTable is a cyclic sequence of per-row on/off masks.
type RowTable [][]uint8

// Composed is a pattern built from an offset table and a row template
// table. Each row of lights walks through the templates, starting at its own
// offset.
type Composed struct {
	Offsets OffsetTable
	Rows    RowTable
}

// Compose builds a pattern from a starting offset table and a row template
// table.
func Compose(offsets OffsetTable, rows RowTable) *Composed {
	return &Composed{Offsets: offsets, Rows: rows}
}

// Bind resolves the offset row for the grid's row count. total must be a
// multiple of rowSize and the table must cover that row count; Check reports
// both ahead of time.
func (c *Composed) Bind(total, rowSize int) Bound {
	totalRows := total / rowSize
	return composedBound{
		rowSize: rowSize,
		offsets: c.Offsets[totalRows-1],
		rows:    c.Rows,
	}
}

// Check verifies the tables for one row count.
func (c *Composed) Check(rows, rowSize int) error {
	if rows < 1 || rows > len(c.Offsets) {
		return fmt.Errorf("%w: no entry for %d rows", ErrMissingOffsetEntry, rows)
	}
	if got := len(c.Offsets[rows-1]); got != rows {
		return fmt.Errorf("%w: entry for %d rows has %d offsets", ErrMissingOffsetEntry, rows, got)
	}
	for row, off := range c.Offsets[rows-1] {
		if off < 0 {
			return fmt.Errorf("%w: negative offset %d at row %d of %d", ErrMissingOffsetEntry, off, row, rows)
		}
	}
	if len(c.Rows) == 0 {
		return fmt.Errorf("%w: empty table", ErrBadTemplate)
	}
	for n, tmpl := range c.Rows {
		if len(tmpl) != rowSize {
			return fmt.Errorf("%w: row %d has %d values, want %d", ErrBadTemplate, n, len(tmpl), rowSize)
		}
		for col, v := range tmpl {
			if v > 1 {
				return fmt.Errorf("%w: row %d col %d is %d", ErrBadTemplate, n, col, v)
			}
		}
	}
	return nil
}

type composedBound struct {
	rowSize int
	offsets []int
	rows    RowTable
}

func (p composedBound) Evaluate(i, step int) bool {
	currentRow := i / p.rowSize
	tmpl := p.rows[(step+p.offsets[currentRow])%len(p.rows)]
	return tmpl[i%p.rowSize] == 1
}
