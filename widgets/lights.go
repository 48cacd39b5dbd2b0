package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Bulb is one light as the grid renderer sees it
type Bulb struct {
	On       bool
	Color    string
	OffColor string
}

// Layout is the size of a bulb and the gap between bulbs, in terminal cells.
// Spacing is the horizontal gap; rows are separated by Spacing/2 lines.
type Layout struct {
	BulbWidth  int
	BulbHeight int
	Spacing    int
}

// cells are roughly twice as tall as they are wide
const cellAspect = 2

// LayoutFor sizes bulbs so the grid fills about 60% of the smaller screen
// dimension, with 25% of it left for gaps
func LayoutFor(width, height, perRow int) Layout {
	// compare in width units
	smallest := width
	if height*cellAspect < smallest {
		smallest = height * cellAspect
	}

	bulb := 60 * smallest / 100 / perRow
	gap := 25 * smallest / 100 / perRow
	if bulb < 1 {
		bulb = 1
	}

	h := bulb / cellAspect
	if h < 1 {
		h = 1
	}
	if gap < 1 {
		gap = 1
	}
	return Layout{BulbWidth: bulb, BulbHeight: h, Spacing: gap}
}

// RenderBulb renders a single light as a block of the given size
func RenderBulb(b Bulb, l Layout, glyph rune) string {
	color := b.OffColor
	if b.On {
		color = b.Color
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	if b.On {
		style = style.Bold(true)
	}

	line := strings.Repeat(string(glyph), l.BulbWidth)
	lines := make([]string, l.BulbHeight)
	for i := range lines {
		lines[i] = style.Render(line)
	}
	return strings.Join(lines, "\n")
}

// RenderLightGrid lays bulbs out perRow to a line, top row first
func RenderLightGrid(bulbs []Bulb, perRow int, l Layout, glyph rune) string {
	hgap := strings.Repeat(" ", l.Spacing)
	var rows []string
	for start := 0; start < len(bulbs); start += perRow {
		end := min(start+perRow, len(bulbs))
		var cells []string
		for i, b := range bulbs[start:end] {
			if i > 0 {
				cells = append(cells, hgap)
			}
			cells = append(cells, RenderBulb(b, l, glyph))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	vgap := strings.Repeat("\n", l.Spacing/cellAspect)
	return strings.Join(rows, "\n"+vgap)
}

// RenderSwatches renders read-only colour previews
func RenderSwatches(colors []string, glyph rune) string {
	var out strings.Builder
	for i, c := range colors {
		if i > 0 {
			out.WriteString(" ")
		}
		out.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render(string(glyph)))
	}
	return out.String()
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}
