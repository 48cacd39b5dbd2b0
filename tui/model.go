// Package tui is the bubbletea front end: the light grid, the settings
// panel and the Launchpad status.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-lights/debug"
	"go-lights/lights"
	"go-lights/midi"
	"go-lights/pattern"
	"go-lights/show"
	"go-lights/theme"
	"go-lights/widgets"
)

// settings panel rows
const (
	focusRows = iota
	focusPattern
	focusCount
)

type Model struct {
	Show      *show.Show
	DeviceMgr *midi.DeviceManager // nil when auto-connect is off
	Theme     *theme.Theme

	throttle      time.Duration
	width, height int
	layoutPending bool
	layout        widgets.Layout

	settingsOpen bool
	focus        int

	quitting   bool
	controller midi.Controller // current controller (may be nil)
}

type UpdateMsg struct{}

type DeviceEventMsg midi.DeviceEvent

// layoutMsg fires once the resize throttle has elapsed
type layoutMsg struct{}

func NewModel(s *show.Show, deviceMgr *midi.DeviceManager, th *theme.Theme, throttle time.Duration) Model {
	return Model{
		Show:      s,
		DeviceMgr: deviceMgr,
		Theme:     th,
		throttle:  throttle,
		layout:    widgets.LayoutFor(80, 24, pattern.RowSize),
	}
}

func ListenForUpdates(s *show.Show) tea.Cmd {
	return func() tea.Msg {
		<-s.UpdateChan
		return UpdateMsg{}
	}
}

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	if deviceMgr == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-deviceMgr.Events()
		if !ok {
			return nil
		}
		return DeviceEventMsg(event)
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		ListenForUpdates(m.Show),
		ListenForDevices(m.DeviceMgr),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.layoutPending {
			return m, nil
		}
		m.layoutPending = true
		return m, tea.Tick(m.throttle, func(time.Time) tea.Msg { return layoutMsg{} })

	case layoutMsg:
		m.layoutPending = false
		m.layout = widgets.LayoutFor(m.width, m.height, pattern.RowSize)

	case UpdateMsg:
		return m, ListenForUpdates(m.Show)

	case DeviceEventMsg:
		event := midi.DeviceEvent(msg)
		if event.Type == midi.DeviceConnected {
			m.controller = event.Controller
			m.Show.SetController(event.Controller)

			// Listen for pad events from the controller
			go func() {
				for pad := range event.Controller.PadEvents() {
					m.Show.HandlePad(pad.Row, pad.Col)
				}
			}()
		} else if event.Type == midi.DeviceDisconnected {
			if m.controller != nil && m.controller.ID() == event.ID {
				m.controller = nil
				m.Show.SetController(nil)
			}
		}
		return m, ListenForDevices(m.DeviceMgr)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		m.Show.Pause()
		return m, tea.Quit

	case "p", " ":
		m.Show.TogglePlaying()

	case "s", ",":
		m.settingsOpen = !m.settingsOpen

	case "esc":
		m.settingsOpen = false
	}

	if !m.settingsOpen {
		return m, nil
	}

	var err error
	switch msg.String() {
	case "j", "down":
		m.focus = (m.focus + 1) % focusCount
	case "k", "up":
		m.focus = (m.focus + focusCount - 1) % focusCount
	case "h", "left":
		if m.focus == focusRows {
			err = m.Show.DecreaseRows()
		} else {
			err = m.Show.PrevPattern()
		}
	case "l", "right":
		if m.focus == focusRows {
			err = m.Show.IncreaseRows()
		} else {
			err = m.Show.NextPattern()
		}
	}
	if err != nil {
		debug.Log("tui", "key %s: %v", msg.String(), err)
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	st := m.Show.Settings()
	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())

	playState := lipgloss.NewStyle().Foreground(m.Theme.Success()).Render(fmt.Sprintf("%c PLAY", m.Theme.Symbols.Play))
	if !m.Show.IsPlaying() {
		playState = lipgloss.NewStyle().Foreground(m.Theme.Warning()).Render(fmt.Sprintf("%c PAUSE", m.Theme.Symbols.Pause))
	}

	deviceStatus := ""
	if m.controller != nil {
		deviceStatus = "  " + lipgloss.NewStyle().Foreground(m.Theme.Active()).Render("LP:X")
	}

	header := headerStyle.Render("go-lights  ") + playState +
		headerStyle.Render(fmt.Sprintf("  step:%04d  %s %s",
			m.Show.Step(),
			m.Show.PatternSelector().Label(st.PatternIndex), m.Show.Catalog().Name(st.PatternIndex))) +
		deviceStatus

	frame := m.Show.Frame()
	bulbs := make([]widgets.Bulb, len(frame))
	for i, l := range frame {
		bulbs[i] = widgets.Bulb{On: l.On, Color: l.Color, OffColor: l.OffColor}
	}
	grid := widgets.RenderLightGrid(bulbs, pattern.RowSize, m.layout, m.Theme.Symbols.Bulb)

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(grid)
	out.WriteString("\n\n")

	if m.settingsOpen {
		out.WriteString(m.settingsView())
		out.WriteString("\n\n")
		out.WriteString(dimStyle.Render(widgets.RenderKeyHelp(settingsKeys)))
	} else {
		out.WriteString(dimStyle.Render("p/space:play  s:settings  q:quit"))
	}

	return out.String()
}

func (m Model) settingsView() string {
	st := m.Show.Settings()
	styles := widgets.SelectorStyles{
		Enabled:  lipgloss.NewStyle().Foreground(m.Theme.FG()),
		Disabled: lipgloss.NewStyle().Foreground(m.Theme.Muted()),
		Value:    lipgloss.NewStyle().Foreground(m.Theme.Accent()).Bold(true),
		Focused:  lipgloss.NewStyle().Foreground(m.Theme.Cursor()).Bold(true),
	}
	dec, inc := m.Theme.Symbols.Decrease, m.Theme.Symbols.Increase

	lines := []string{
		widgets.RenderSelector("Rows", m.Show.RowsSelector(), st.Rows, m.focus == focusRows, styles, dec, inc),
		widgets.RenderSelector("Pattern", m.Show.PatternSelector(), st.PatternIndex, m.focus == focusPattern, styles, dec, inc),
		fmt.Sprintf("%-8s %s", "Colors", widgets.RenderSwatches(lights.Values(st.Colors), m.Theme.Symbols.Swatch)),
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.Theme.Muted()).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

var settingsKeys = []widgets.KeySection{
	{Keys: []widgets.KeyBinding{
		{Key: "j/k", Desc: "move"},
		{Key: "h/l", Desc: "decrease / increase"},
		{Key: "esc", Desc: "close settings"},
		{Key: "p/space", Desc: "play / pause"},
		{Key: "q", Desc: "quit"},
	}},
}
