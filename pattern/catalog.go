package pattern

import "fmt"

// Entry is a named catalog slot.
type Entry struct {
	Name       string
	Definition Definition
}

// Catalog is an ordered, read-only list of patterns.
type Catalog struct {
	entries []Entry
}

// Checker is implemented by patterns whose data tables can be verified.
type Checker interface {
	Check(rows, rowSize int) error
}

// Default is the built-in catalog, in display order.
var Default = NewCatalog(
	Entry{Name: "one-column", Definition: OneColumnAtATime{}},
	Entry{Name: "fill", Definition: LightAllOneAtATime{}},
	Entry{Name: "split-horizontal", Definition: Compose(centerOffsets, dividingHorizontalRows)},
	Entry{Name: "split-vertical", Definition: Compose(equalOffsets, dividingVerticalRows)},
	Entry{Name: "arrow", Definition: Compose(centerOffsets, arrowRightRows)},
	Entry{Name: "matrix", Definition: Compose(topToBottomOffsets, matrixRainRows)},
	Entry{Name: "expand", Definition: Compose(centerOffsets, expansionRows)},
	Entry{Name: "expand-fill", Definition: Compose(centerOffsets, expansionFillRows)},
)

// NewCatalog creates a catalog from the given entries.
func NewCatalog(entries ...Entry) *Catalog {
	c := &Catalog{entries: make([]Entry, len(entries))}
	copy(c.entries, entries)
	return c
}

// Len returns the number of patterns.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Get returns the pattern at index i.
func (c *Catalog) Get(i int) (Definition, error) {
	if i < 0 || i >= len(c.entries) {
		return nil, fmt.Errorf("pattern %d of %d: %w", i, len(c.entries), ErrIndexOutOfRange)
	}
	return c.entries[i].Definition, nil
}

// MustGet is Get for callers that already validated i.
func (c *Catalog) MustGet(i int) Definition {
	d, err := c.Get(i)
	if err != nil {
		panic(err)
	}
	return d
}

// Name returns the name of the pattern at index i, or "" if out of range.
func (c *Catalog) Name(i int) string {
	if i < 0 || i >= len(c.entries) {
		return ""
	}
	return c.entries[i].Name
}

// Names returns all pattern names in order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
	}
	return names
}

// Verify checks every pattern with data tables against every row count from
// 1 to maxRows. Run it once at startup.
func (c *Catalog) Verify(maxRows, rowSize int) error {
	for i, e := range c.entries {
		chk, ok := e.Definition.(Checker)
		if !ok {
			continue
		}
		for rows := 1; rows <= maxRows; rows++ {
			if err := chk.Check(rows, rowSize); err != nil {
				return fmt.Errorf("pattern %d (%s): %w", i, e.Name, err)
			}
		}
	}
	return nil
}
