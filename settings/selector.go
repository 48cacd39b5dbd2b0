package settings

import (
	"fmt"
	"strconv"

	"go-lights/pattern"
)

// Selector is a bounded integer stepper. Stepping past either bound leaves
// the value where it is.
type Selector struct {
	Min, Max int
	Format   func(v int) string
}

// RowsSelector steps through the supported row counts.
func RowsSelector() Selector {
	return Selector{Min: 1, Max: pattern.MaxRows}
}

// PatternSelector steps through n patterns, labelled P1..Pn.
func PatternSelector(n int) Selector {
	return Selector{
		Min:    0,
		Max:    n - 1,
		Format: func(v int) string { return fmt.Sprintf("P%d", v+1) },
	}
}

// Increase returns v+1, or v at the maximum.
func (s Selector) Increase(v int) int {
	if v+1 > s.Max {
		return v
	}
	return v + 1
}

// Decrease returns v-1, or v at the minimum.
func (s Selector) Decrease(v int) int {
	if v-1 < s.Min {
		return v
	}
	return v - 1
}

func (s Selector) CanIncrease(v int) bool { return v < s.Max }
func (s Selector) CanDecrease(v int) bool { return v > s.Min }

// Label formats v for display.
func (s Selector) Label(v int) string {
	if s.Format != nil {
		return s.Format(v)
	}
	return strconv.Itoa(v)
}
