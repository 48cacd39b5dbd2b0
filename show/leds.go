package show

import (
	"go-lights/debug"
	"go-lights/midi"
	"go-lights/pattern"
	"go-lights/theme"
)

// Top row button assignments
const (
	padRowsUp      = 0
	padRowsDown    = 1
	padPatternPrev = 2
	padPatternNext = 3
	padPlayPause   = 7
)

var (
	buttonOn    = [3]uint8{255, 255, 255}
	buttonOff   = [3]uint8{30, 30, 30}
	playingLED  = [3]uint8{0, 255, 0}
	pausedLED   = [3]uint8{255, 200, 0}
	sceneActive = [3]uint8{255, 80, 180}
)

// SetController sets the grid controller that mirrors the lights (nil to
// detach)
func (s *Show) SetController(c midi.Controller) {
	s.mu.Lock()
	s.controller = c
	s.prevLEDs = make(map[[2]int]midi.LEDUpdate) // diff will repaint everything
	s.mu.Unlock()

	if c != nil {
		debug.Log("ctrl", "controller %s attached", c.ID())
	}
	s.markLEDsDirty()
}

// HasController reports whether a controller is attached
func (s *Show) HasController() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.controller != nil
}

func (s *Show) markLEDsDirty() {
	s.mu.Lock()
	s.ledDirty = true
	s.mu.Unlock()
}

// RenderLEDs returns the pad colours for the current frame. Light row 0 is
// the top row of pads.
func (s *Show) RenderLEDs() []midi.LEDUpdate {
	frame := s.Frame()
	st := s.Settings()

	leds := make([]midi.LEDUpdate, 0, len(frame)+16)
	for _, l := range frame {
		row := midi.GridRows - 1 - l.LightID/pattern.RowSize
		col := l.LightID % pattern.RowSize
		c := l.OffColor
		if l.On {
			c = l.Color
		}
		leds = append(leds, midi.LEDUpdate{Row: row, Col: col, Color: theme.ParseRGB(c)})
	}

	button := func(col int, enabled bool) midi.LEDUpdate {
		c := buttonOff
		if enabled {
			c = buttonOn
		}
		return midi.LEDUpdate{Row: midi.TopRow, Col: col, Color: c}
	}
	leds = append(leds,
		button(padRowsUp, s.rowsSel.CanIncrease(st.Rows)),
		button(padRowsDown, s.rowsSel.CanDecrease(st.Rows)),
		button(padPatternPrev, s.patternSel.CanDecrease(st.PatternIndex)),
		button(padPatternNext, s.patternSel.CanIncrease(st.PatternIndex)),
	)
	play := midi.LEDUpdate{Row: midi.TopRow, Col: padPlayPause, Color: playingLED, Channel: midi.ChannelStatic}
	if !s.IsPlaying() {
		play.Color, play.Channel = pausedLED, midi.ChannelPulse
	}
	leds = append(leds, play)

	for i := 0; i < s.catalog.Len() && i < midi.GridRows; i++ {
		c := buttonOff
		if i == st.PatternIndex {
			c = sceneActive
		}
		leds = append(leds, midi.LEDUpdate{Row: midi.GridRows - 1 - i, Col: midi.SceneCol, Color: c})
	}

	return leds
}

// FlushLEDs sends only changed LEDs to the controller
func (s *Show) FlushLEDs() {
	s.mu.RLock()
	ctrl := s.controller
	s.mu.RUnlock()
	if ctrl == nil {
		return
	}

	newLEDs := s.RenderLEDs()
	newMap := make(map[[2]int]midi.LEDUpdate, len(newLEDs))

	s.mu.Lock()
	var updates []midi.LEDUpdate
	for _, led := range newLEDs {
		key := [2]int{led.Row, led.Col}
		newMap[key] = led
		if prev, ok := s.prevLEDs[key]; !ok || prev != led {
			updates = append(updates, led)
		}
	}

	// Clear LEDs that are no longer lit (grid shrank)
	for key := range s.prevLEDs {
		if _, ok := newMap[key]; !ok {
			updates = append(updates, midi.LEDUpdate{Row: key[0], Col: key[1]})
		}
	}
	s.prevLEDs = newMap
	s.mu.Unlock()

	if len(updates) == 0 {
		return
	}
	debug.LogEvery(20, "led", "flushLEDs: batch=%d", len(updates))
	if err := ctrl.SetLEDBatch(updates); err != nil {
		debug.Log("led", "send failed: %v", err)
	}
}

// HandlePad maps controller buttons to show controls: the top row steps rows
// and patterns and toggles playback, the scene column picks a pattern
// directly. Grid pads do nothing.
func (s *Show) HandlePad(row, col int) {
	var err error
	switch {
	case row == midi.TopRow:
		switch col {
		case padRowsUp:
			err = s.IncreaseRows()
		case padRowsDown:
			err = s.DecreaseRows()
		case padPatternPrev:
			err = s.PrevPattern()
		case padPatternNext:
			err = s.NextPattern()
		case padPlayPause:
			s.TogglePlaying()
		}
	case col == midi.SceneCol:
		if idx := midi.GridRows - 1 - row; idx >= 0 && idx < s.catalog.Len() {
			err = s.SelectPattern(idx)
		}
	default:
		return
	}
	if err != nil {
		debug.Log("pad", "pad %d,%d: %v", row, col, err)
	}
	s.notifyUpdate()
}
