package widgets

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"go-lights/settings"
)

// SelectorStyles holds the styles of a number selector
type SelectorStyles struct {
	Enabled  lipgloss.Style
	Disabled lipgloss.Style
	Value    lipgloss.Style
	Focused  lipgloss.Style
}

// RenderSelector renders "◀ value ▶" with a button dimmed at its bound
func RenderSelector(label string, sel settings.Selector, value int, focused bool, st SelectorStyles, dec, inc rune) string {
	button := func(r rune, enabled bool) string {
		if enabled {
			return st.Enabled.Render(string(r))
		}
		return st.Disabled.Render(string(r))
	}

	val := st.Value.Render(fmt.Sprintf(" %-3s ", sel.Label(value)))
	head := fmt.Sprintf("%-8s", label)
	if focused {
		head = st.Focused.Render(head)
	}
	return fmt.Sprintf("%s %s%s%s", head, button(dec, sel.CanDecrease(value)), val, button(inc, sel.CanIncrease(value)))
}
