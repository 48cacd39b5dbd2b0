package show

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go-lights/animation"
	"go-lights/lights"
	"go-lights/midi"
	"go-lights/pattern"
	"go-lights/settings"
)

type fakeController struct {
	mu      sync.Mutex
	batches [][]midi.LEDUpdate
	pads    chan midi.PadEvent
}

func newFakeController() *fakeController {
	return &fakeController{pads: make(chan midi.PadEvent)}
}

func (f *fakeController) ID() string { return "fake" }
func (f *fakeController) Type() midi.ControllerType { return midi.ControllerLaunchpad }
func (f *fakeController) PadEvents() <-chan midi.PadEvent { return f.pads }
func (f *fakeController) Close() error { return nil }
func (f *fakeController) SetLEDBatch(u []midi.LEDUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = append(f.batches, u)
	return nil
}

func (f *fakeController) last() []midi.LEDUpdate {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.batches) == 0 {
		return nil
	}
	return f.batches[len(f.batches)-1]
}

func (f *fakeController) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.batches)
}

// gatedPattern blocks its first Bind until release is closed
type gatedPattern struct {
	pattern.Definition
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (g *gatedPattern) Bind(total, rowSize int) pattern.Bound {
	g.once.Do(func() {
		close(g.entered)
		<-g.release
	})
	return g.Definition.Bind(total, rowSize)
}

func newShow(t *testing.T) (*Show, *animation.Driver) {
	t.Helper()
	d := animation.NewDriver(time.Millisecond)
	s, err := New(pattern.Default, settings.Default(), d)
	if err != nil {
		t.Fatal(err)
	}
	return s, d
}

func TestNewBuildsFullGrid(t *testing.T) {
	s, _ := newShow(t)
	frame := s.Frame()
	if len(frame) != 49 {
		t.Fatalf("frame has %d lights, want 49", len(frame))
	}
	for i, l := range frame {
		if l.LightID != i {
			t.Errorf("light %d has id %d", i, l.LightID)
		}
		if l.Color != settings.DefaultPalette[i%pattern.RowSize] {
			t.Errorf("light %d color %s", i, l.Color)
		}
		// one-column at frame 0
		if l.On != (i%pattern.RowSize == 0) {
			t.Errorf("light %d on=%v at frame 0", i, l.On)
		}
	}
	if s.Step() != 0 || !s.IsPlaying() {
		t.Errorf("step=%d playing=%v", s.Step(), s.IsPlaying())
	}
}

func TestNewRejectsInvalidSettings(t *testing.T) {
	bad := settings.Default().Apply(settings.WithPattern(99))
	if _, err := New(pattern.Default, bad, animation.NewDriver(0)); !errors.Is(err, pattern.ErrIndexOutOfRange) {
		t.Errorf("err = %v, want ErrIndexOutOfRange", err)
	}
}

func TestPatternChangeKeepsGridAndResetsStep(t *testing.T) {
	s, d := newShow(t)
	for i := 0; i < 4; i++ {
		d.Tick()
	}

	if err := s.ApplySettingsPatch(settings.WithPattern(1)); err != nil {
		t.Fatal(err)
	}
	if s.gridBuilds != 1 {
		t.Errorf("grid rebuilt on pattern change (%d builds)", s.gridBuilds)
	}
	if s.Step() != 0 {
		t.Errorf("step = %d after pattern change", s.Step())
	}
	frame := s.Frame()
	if !frame[0].On || frame[1].On {
		t.Error("fill pattern frame 0 should light only light 0")
	}
}

func TestRowsChangeRebuildsGridAndKeepsStep(t *testing.T) {
	s, d := newShow(t)
	d.Tick()
	d.Tick()

	if err := s.ApplySettingsPatch(settings.WithRows(4)); err != nil {
		t.Fatal(err)
	}
	if s.gridBuilds != 2 {
		t.Errorf("gridBuilds = %d, want 2", s.gridBuilds)
	}
	if got := len(s.Frame()); got != 28 {
		t.Errorf("frame has %d lights, want 28", got)
	}
	if s.Step() != 2 {
		t.Errorf("step = %d, want 2", s.Step())
	}
	st := s.Settings()
	if st.Rows != 4 || st.PatternIndex != 0 {
		t.Errorf("settings = %+v", st)
	}

	// same value again is not a change
	s.ApplySettingsPatch(settings.WithRows(4))
	if s.gridBuilds != 2 {
		t.Errorf("no-op patch rebuilt grid")
	}
}

func TestConcurrentPatchesKeepDriverInShape(t *testing.T) {
	gate := &gatedPattern{
		Definition: pattern.LightAllOneAtATime{},
		entered:    make(chan struct{}),
		release:    make(chan struct{}),
	}
	catalog := pattern.NewCatalog(
		pattern.Entry{Name: "one-column", Definition: pattern.OneColumnAtATime{}},
		pattern.Entry{Name: "gated", Definition: gate},
	)
	d := animation.NewDriver(time.Millisecond)
	s, err := New(catalog, settings.Default(), d)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.ApplySettingsPatch(settings.WithPattern(1))
	}()
	<-gate.entered

	go func() {
		defer wg.Done()
		s.ApplySettingsPatch(settings.WithRows(3))
	}()
	// give the rows patch time to reach the lock
	time.Sleep(20 * time.Millisecond)
	close(gate.release)
	wg.Wait()

	st := s.Settings()
	if st.Rows != 3 || st.PatternIndex != 1 {
		t.Fatalf("settings = rows %d pattern %d", st.Rows, st.PatternIndex)
	}
	if got, want := len(d.Frame()), st.Total(); got != want {
		t.Errorf("driver frame has %d lights, grid has %d", got, want)
	}
}

func TestConcurrentSelectorStepsAllApply(t *testing.T) {
	s, _ := newShow(t)
	for i := 0; i < 6; i++ {
		s.DecreaseRows()
	}

	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.IncreaseRows()
		}()
	}
	wg.Wait()

	if got := s.Settings().Rows; got != 7 {
		t.Errorf("rows = %d after 6 concurrent increases from 1", got)
	}
	if got := len(s.Frame()); got != 49 {
		t.Errorf("frame has %d lights", got)
	}
}

func TestColorsChangeRebuildsGrid(t *testing.T) {
	s, _ := newShow(t)
	colors := lights.NewColors("#ffffff", "#ff0000", "#00ff00", "#0000ff", "#ffff00", "#00ffff", "#ff00ff")
	if err := s.ApplySettingsPatch(settings.WithColors(colors)); err != nil {
		t.Fatal(err)
	}
	if s.gridBuilds != 2 {
		t.Errorf("gridBuilds = %d", s.gridBuilds)
	}
	if got := s.Grid()[8].Color; got != "#ff0000" {
		t.Errorf("light 8 color = %s", got)
	}
}

func TestInvalidPatchLeavesStateAlone(t *testing.T) {
	s, _ := newShow(t)
	before := s.Settings()

	for _, p := range []settings.Patch{
		settings.WithRows(0),
		settings.WithRows(8),
		settings.WithPattern(pattern.Default.Len()),
		settings.WithColors(lights.NewColors("#000")),
	} {
		if err := s.ApplySettingsPatch(p); err == nil {
			t.Errorf("patch %+v accepted", p)
		}
	}
	after := s.Settings()
	if after.Rows != before.Rows || after.PatternIndex != before.PatternIndex || s.gridBuilds != 1 {
		t.Errorf("state changed: %+v", after)
	}
}

func TestSelectorsClamp(t *testing.T) {
	s, _ := newShow(t)
	if err := s.IncreaseRows(); err != nil || s.Settings().Rows != 7 {
		t.Errorf("IncreaseRows at 7: rows=%d err=%v", s.Settings().Rows, err)
	}
	for i := 0; i < 10; i++ {
		s.DecreaseRows()
	}
	if s.Settings().Rows != 1 {
		t.Errorf("rows = %d, want 1", s.Settings().Rows)
	}

	last := pattern.Default.Len() - 1
	for i := 0; i < 20; i++ {
		s.NextPattern()
	}
	if s.Settings().PatternIndex != last {
		t.Errorf("pattern = %d, want %d", s.Settings().PatternIndex, last)
	}
	s.PrevPattern()
	if s.Settings().PatternIndex != last-1 {
		t.Errorf("pattern = %d, want %d", s.Settings().PatternIndex, last-1)
	}
}

func TestPauseKeepsFrame(t *testing.T) {
	s, d := newShow(t)
	d.Tick()
	before := s.Frame()
	s.Pause()
	d.Tick()
	after := s.Frame()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("light %d changed while paused", i)
		}
	}
	s.TogglePlaying()
	if !s.IsPlaying() {
		t.Error("TogglePlaying did not resume")
	}
}

func TestFlushLEDsSendsOnlyChanges(t *testing.T) {
	s, d := newShow(t)
	s.FlushLEDs() // no controller, no-op

	fc := newFakeController()
	s.SetController(fc)
	if !s.HasController() {
		t.Fatal("HasController = false")
	}

	s.FlushLEDs()
	full := len(fc.last())
	if want := 49 + 5 + pattern.Default.Len(); full != want {
		t.Fatalf("first flush sent %d LEDs, want %d", full, want)
	}

	s.FlushLEDs()
	if fc.count() != 1 {
		t.Errorf("unchanged frame sent a batch")
	}

	d.Tick()
	s.FlushLEDs()
	// one-column: column 0 goes off, column 1 comes on
	if got := len(fc.last()); got != 14 {
		t.Errorf("tick flush sent %d LEDs, want 14", got)
	}
}

func TestFlushLEDsClearsRemovedRows(t *testing.T) {
	s, _ := newShow(t)
	fc := newFakeController()
	s.SetController(fc)
	s.FlushLEDs()

	s.DecreaseRows()
	s.FlushLEDs()

	cleared := 0
	for _, u := range fc.last() {
		if u.Row == 1 && u.Col < pattern.RowSize {
			if u.Color != [3]uint8{} {
				t.Errorf("pad %d,%d not cleared: %v", u.Row, u.Col, u.Color)
			}
			cleared++
		}
	}
	if cleared != pattern.RowSize {
		t.Errorf("cleared %d pads of the removed row, want %d", cleared, pattern.RowSize)
	}
}

func TestHandlePad(t *testing.T) {
	s, _ := newShow(t)

	s.HandlePad(midi.TopRow, padPatternNext)
	if got := s.Settings().PatternIndex; got != 1 {
		t.Errorf("pattern = %d after next", got)
	}
	s.HandlePad(midi.GridRows-1-5, midi.SceneCol)
	if got := s.Settings().PatternIndex; got != 5 {
		t.Errorf("pattern = %d after scene 5", got)
	}
	s.HandlePad(midi.TopRow, padRowsDown)
	if got := s.Settings().Rows; got != 6 {
		t.Errorf("rows = %d after rows down", got)
	}
	s.HandlePad(midi.TopRow, padPlayPause)
	if s.IsPlaying() {
		t.Error("play/pause pad did not pause")
	}
	s.HandlePad(3, 3) // grid pad, ignored
	if got := s.Settings().PatternIndex; got != 5 {
		t.Errorf("grid pad changed pattern to %d", got)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	s, _ := newShow(t)
	fc := newFakeController()
	s.SetController(fc)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for fc.count() == 0 {
		select {
		case <-deadline:
			t.Fatal("no LED flush while running")
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestDetachThenStopSendsNothingMore(t *testing.T) {
	s, _ := newShow(t)
	fc := newFakeController()
	s.SetController(fc)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()
	for fc.count() == 0 {
		time.Sleep(5 * time.Millisecond)
	}

	s.SetController(nil)
	cancel()
	<-done

	sent := fc.count()
	time.Sleep(50 * time.Millisecond)
	if fc.count() != sent {
		t.Errorf("controller got %d batches after detach and stop", fc.count()-sent)
	}
}

func TestPausedButtonPulses(t *testing.T) {
	s, _ := newShow(t)
	find := func() midi.LEDUpdate {
		for _, u := range s.RenderLEDs() {
			if u.Row == midi.TopRow && u.Col == padPlayPause {
				return u
			}
		}
		t.Fatal("no play/pause LED")
		return midi.LEDUpdate{}
	}

	if u := find(); u.Channel != midi.ChannelStatic || u.Color != playingLED {
		t.Errorf("playing LED = %+v", u)
	}
	s.Pause()
	if u := find(); u.Channel != midi.ChannelPulse || u.Color != pausedLED {
		t.Errorf("paused LED = %+v", u)
	}
}
