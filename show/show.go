// Package show ties the settings, the light grid and the animation driver
// together, and mirrors every frame onto an attached grid controller.
package show

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go-lights/animation"
	"go-lights/debug"
	"go-lights/lights"
	"go-lights/midi"
	"go-lights/pattern"
	"go-lights/settings"
)

// LightState is what the renderer needs for one light on one frame.
type LightState struct {
	LightID  int
	On       bool
	Color    string
	OffColor string
}

// Show owns the current settings and grid and drives the animation.
type Show struct {
	// applyMu serializes settings changes, driver rebinding included. mu
	// guards the fields below; the driver's frame callback takes it.
	applyMu sync.Mutex

	mu       sync.RWMutex
	catalog  *pattern.Catalog
	settings settings.Settings
	grid     []lights.Light
	driver   *animation.Driver

	rowsSel    settings.Selector
	patternSel settings.Selector

	gridBuilds int // number of grid (re)builds, for tests

	controller midi.Controller
	ledDirty   bool
	prevLEDs   map[[2]int]midi.LEDUpdate

	// Notify TUI of updates
	UpdateChan chan struct{}
}

// LED refresh rate
const ledFPS = 30

// New validates the initial settings, builds the grid and binds the pattern.
func New(catalog *pattern.Catalog, initial settings.Settings, driver *animation.Driver) (*Show, error) {
	if err := initial.Validate(catalog.Len()); err != nil {
		return nil, fmt.Errorf("initial settings: %w", err)
	}

	s := &Show{
		catalog:    catalog,
		driver:     driver,
		rowsSel:    settings.RowsSelector(),
		patternSel: settings.PatternSelector(catalog.Len()),
		prevLEDs:   make(map[[2]int]midi.LEDUpdate),
		UpdateChan: make(chan struct{}, 1),
	}

	grid, err := lights.BuildGrid(initial.Colors, initial.Rows, pattern.RowSize)
	if err != nil {
		return nil, err
	}
	s.settings = initial
	s.grid = grid
	s.gridBuilds++

	driver.SetOnFrame(s.notifyUpdate)
	driver.SetActivePattern(s.bind(initial.PatternIndex, len(grid)), len(grid))

	return s, nil
}

func (s *Show) bind(patternIndex, total int) pattern.Bound {
	return s.catalog.MustGet(patternIndex).Bind(total, pattern.RowSize)
}

// ApplySettingsPatch merges p into the current settings. The grid is only
// rebuilt when rows or colours change; a pattern change only rebinds the
// driver, restarting the animation at frame 0. Invalid patches change
// nothing.
func (s *Show) ApplySettingsPatch(p settings.Patch) error {
	return s.update(func(settings.Settings) settings.Patch { return p })
}

// update builds a patch from the current settings and applies it, all under
// applyMu.
func (s *Show) update(patch func(cur settings.Settings) settings.Patch) error {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	s.mu.Lock()
	next := s.settings.Apply(patch(s.settings))
	if err := next.Validate(s.catalog.Len()); err != nil {
		s.mu.Unlock()
		return err
	}

	gridDirty := next.Rows != s.settings.Rows || !settings.SameColors(next.Colors, s.settings.Colors)
	patternDirty := next.PatternIndex != s.settings.PatternIndex

	if gridDirty {
		grid, err := lights.BuildGrid(next.Colors, next.Rows, pattern.RowSize)
		if err != nil {
			s.mu.Unlock()
			return err
		}
		s.grid = grid
		s.gridBuilds++
	}
	s.settings = next
	total := len(s.grid)
	s.mu.Unlock()

	switch {
	case patternDirty:
		debug.Log("show", "pattern -> %d (%s)", next.PatternIndex, s.catalog.Name(next.PatternIndex))
		s.driver.SetActivePattern(s.bind(next.PatternIndex, total), total)
	case gridDirty:
		debug.Log("show", "grid rebuilt rows=%d", next.Rows)
		s.driver.Rebind(s.bind(next.PatternIndex, total), total)
	}
	return nil
}

// Settings returns the current settings.
func (s *Show) Settings() settings.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Catalog returns the pattern catalog in use.
func (s *Show) Catalog() *pattern.Catalog {
	return s.catalog
}

// RowsSelector returns the selector bounding the row count.
func (s *Show) RowsSelector() settings.Selector {
	return s.rowsSel
}

// PatternSelector returns the selector bounding the pattern index.
func (s *Show) PatternSelector() settings.Selector {
	return s.patternSel
}

// IncreaseRows adds a row, stopping at the maximum.
func (s *Show) IncreaseRows() error {
	return s.update(func(cur settings.Settings) settings.Patch {
		return settings.WithRows(s.rowsSel.Increase(cur.Rows))
	})
}

// DecreaseRows removes a row, stopping at one.
func (s *Show) DecreaseRows() error {
	return s.update(func(cur settings.Settings) settings.Patch {
		return settings.WithRows(s.rowsSel.Decrease(cur.Rows))
	})
}

// NextPattern moves to the next pattern, stopping at the last.
func (s *Show) NextPattern() error {
	return s.update(func(cur settings.Settings) settings.Patch {
		return settings.WithPattern(s.patternSel.Increase(cur.PatternIndex))
	})
}

// PrevPattern moves to the previous pattern, stopping at the first.
func (s *Show) PrevPattern() error {
	return s.update(func(cur settings.Settings) settings.Patch {
		return settings.WithPattern(s.patternSel.Decrease(cur.PatternIndex))
	})
}

// SelectPattern jumps to pattern i.
func (s *Show) SelectPattern(i int) error {
	return s.ApplySettingsPatch(settings.WithPattern(i))
}

// Grid returns the current lights.
func (s *Show) Grid() []lights.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]lights.Light, len(s.grid))
	copy(out, s.grid)
	return out
}

// Frame returns the render state of every light.
func (s *Show) Frame() []LightState {
	on := s.driver.Frame()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]LightState, len(s.grid))
	for i, l := range s.grid {
		out[i] = LightState{
			LightID:  l.Index,
			Color:    l.Color,
			OffColor: l.OffColor,
		}
		if i < len(on) {
			out[i].On = on[i]
		}
	}
	return out
}

func (s *Show) Play()  { s.setPlaying(true) }
func (s *Show) Pause() { s.setPlaying(false) }

// TogglePlaying flips between play and pause.
func (s *Show) TogglePlaying() {
	s.setPlaying(!s.IsPlaying())
}

func (s *Show) setPlaying(playing bool) {
	s.driver.SetPlaying(playing)
	debug.Log("show", "playing=%v", playing)
	s.notifyUpdate()
}

func (s *Show) IsPlaying() bool {
	return s.driver.State().Playing
}

// Step returns the current animation frame number.
func (s *Show) Step() int {
	return s.driver.State().Step
}

// Run drives the animation and the LED mirror until ctx is done.
func (s *Show) Run(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.driver.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		s.ledLoop(ctx)
	}()
	wg.Wait()
}

// notifyUpdate refreshes LEDs and notifies TUI
func (s *Show) notifyUpdate() {
	s.markLEDsDirty()
	select {
	case s.UpdateChan <- struct{}{}:
	default:
	}
}

// ledLoop runs at fixed FPS and flushes LED updates
func (s *Show) ledLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Second / ledFPS)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			dirty := s.ledDirty
			s.ledDirty = false
			s.mu.Unlock()

			if dirty {
				s.FlushLEDs()
			}
		}
	}
}
