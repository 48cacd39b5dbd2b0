package midi

import (
	"fmt"
	"sync/atomic"

	"github.com/lucasb-eyer/go-colorful"

	"go-lights/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

var ledSendCount uint64

// LaunchpadController handles a Novation Launchpad X
type LaunchpadController struct {
	id       string
	outPort  drivers.Out
	inPort   drivers.In
	send     func(msg gomidi.Message) error
	stopFunc func()

	padChan chan PadEvent
}

// NewLaunchpadController creates and configures a Launchpad
func NewLaunchpadController(id string, inPort drivers.In, outPort drivers.Out) (*LaunchpadController, error) {
	lp := &LaunchpadController{
		id:      id,
		inPort:  inPort,
		outPort: outPort,
		padChan: make(chan PadEvent, 32),
	}

	// Open output
	if outPort != nil {
		send, err := gomidi.SendTo(outPort)
		if err != nil {
			return nil, fmt.Errorf("open output: %w", err)
		}
		lp.send = send

		// Programmer mode: F0 00 20 29 02 0C 00 7F F7
		lp.send(gomidi.SysEx([]byte{0x00, 0x20, 0x29, 0x02, 0x0C, 0x00, 0x7F}))

		// Max brightness: F0 00 20 29 02 0C 08 <brightness> F7
		lp.send(gomidi.SysEx([]byte{0x00, 0x20, 0x29, 0x02, 0x0C, 0x08, 0x7F}))
	}

	// Open input
	if inPort != nil {
		stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
			var channel, note, velocity uint8
			var cc, value uint8

			// 8x8 grid + scene buttons
			if msg.GetNoteOn(&channel, &note, &velocity) && velocity > 0 {
				row, col := noteToRowCol(note)
				if row >= 0 {
					lp.emit(PadEvent{Row: row, Col: col, Velocity: velocity})
				}
			}

			// Top row buttons CC 91-98
			if msg.GetControlChange(&channel, &cc, &value) && value > 0 {
				row, col := ccToRowCol(cc)
				if row >= 0 {
					lp.emit(PadEvent{Row: row, Col: col, Velocity: value})
				}
			}
		})
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		lp.stopFunc = stop
	}

	return lp, nil
}

func (lp *LaunchpadController) emit(ev PadEvent) {
	select {
	case lp.padChan <- ev:
	default:
	}
}

func (lp *LaunchpadController) ID() string {
	return lp.id
}

func (lp *LaunchpadController) Type() ControllerType {
	return ControllerLaunchpad
}

func (lp *LaunchpadController) PadEvents() <-chan PadEvent {
	return lp.padChan
}

// SetLEDBatch sends multiple LED updates as individual NoteOn messages
func (lp *LaunchpadController) SetLEDBatch(updates []LEDUpdate) error {
	if lp.send == nil || len(updates) == 0 {
		return nil
	}

	for _, u := range updates {
		note := rowColToNote(u.Row, u.Col)
		color := MapRGB(u.Color)
		if err := lp.send(gomidi.NoteOn(u.Channel, note, color)); err != nil {
			return fmt.Errorf("led %d,%d: %w", u.Row, u.Col, err)
		}
	}

	count := atomic.AddUint64(&ledSendCount, uint64(len(updates)))
	if count%100 < uint64(len(updates)) {
		debug.Log("lp-send", "batch count=%d (this batch=%d)", count, len(updates))
	}

	return nil
}

type paletteEntry struct {
	velocity uint8
	color    colorful.Color
}

// Launchpad X palette - approximate RGB values for key velocities
var launchpadPalette = []paletteEntry{
	entry(0, 0, 0, 0),         // off
	entry(1, 30, 30, 30),      // dark grey
	entry(5, 255, 0, 0),       // red
	entry(6, 255, 80, 80),     // bright red
	entry(7, 180, 60, 60),     // dim red
	entry(9, 255, 100, 0),     // orange
	entry(11, 180, 80, 40),    // dim orange
	entry(13, 255, 200, 0),    // yellow
	entry(17, 0, 180, 0),      // green
	entry(19, 0, 100, 0),      // dim green
	entry(21, 0, 255, 0),      // bright green
	entry(37, 0, 200, 200),    // cyan
	entry(41, 0, 150, 255),    // sky
	entry(43, 40, 60, 120),    // dim blue
	entry(45, 0, 100, 255),    // blue
	entry(47, 80, 150, 255),   // bright blue
	entry(49, 150, 0, 200),    // purple
	entry(53, 255, 80, 180),   // pink
	entry(78, 100, 100, 255),  // light blue
	entry(84, 255, 150, 50),   // bright orange
	entry(87, 150, 255, 100),  // lime
	entry(97, 180, 180, 60),   // dim yellow
	entry(119, 255, 255, 255), // white
}

func entry(velocity, r, g, b uint8) paletteEntry {
	return paletteEntry{velocity: velocity, color: fromRGB([3]uint8{r, g, b})}
}

func fromRGB(c [3]uint8) colorful.Color {
	return colorful.Color{R: float64(c[0]) / 255, G: float64(c[1]) / 255, B: float64(c[2]) / 255}
}

// MapRGB finds the perceptually nearest Launchpad X palette velocity
func MapRGB(rgb [3]uint8) uint8 {
	target := fromRGB(rgb)
	best := launchpadPalette[0]
	bestDist := target.DistanceLab(best.color)
	for _, p := range launchpadPalette[1:] {
		if d := target.DistanceLab(p.color); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best.velocity
}

func (lp *LaunchpadController) Close() error {
	// Clear all LEDs on close
	if lp.send != nil {
		var updates []LEDUpdate
		for row := 0; row <= TopRow; row++ {
			for col := 0; col <= SceneCol; col++ {
				if row == TopRow && col == SceneCol {
					continue // no LED at 8,8
				}
				updates = append(updates, LEDUpdate{Row: row, Col: col})
			}
		}
		lp.SetLEDBatch(updates)
	}
	if lp.stopFunc != nil {
		lp.stopFunc()
	}
	close(lp.padChan)
	return nil
}

// Launchpad X note mapping
// 8x8 Grid:  Row 0 (bottom) = notes 11-18, Row 7 = notes 81-88
// Side col:  Col 8 (scene buttons) = notes 19, 29, ... 89
// Top row:   Row 8 = CC 91-98 (LEDs addressed as notes 91-98)

func rowColToNote(row, col int) uint8 {
	if row == TopRow {
		return uint8(91 + col)
	}
	return uint8((row+1)*10 + col + 1)
}

func noteToRowCol(note uint8) (row, col int) {
	if note >= 91 && note <= 98 {
		return TopRow, int(note - 91)
	}
	row = int(note/10) - 1
	col = int(note%10) - 1
	if row < 0 || row >= GridRows || col < 0 || col > SceneCol {
		return -1, -1
	}
	return row, col
}

func ccToRowCol(cc uint8) (row, col int) {
	if cc >= 91 && cc <= 98 {
		return TopRow, int(cc - 91)
	}
	// programmer mode sends the scene column as CC 19..89
	if cc%10 == 9 && cc >= 19 && cc <= 89 {
		return int(cc/10) - 1, SceneCol
	}
	return -1, -1
}
