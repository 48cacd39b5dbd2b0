package midi

// ControllerType identifies the kind of controller
type ControllerType int

const (
	ControllerUnknown ControllerType = iota
	ControllerLaunchpad
)

func (t ControllerType) String() string {
	switch t {
	case ControllerLaunchpad:
		return "launchpad"
	default:
		return "unknown"
	}
}

// PadEvent is sent when a pad or button is pressed on a grid controller.
// Row 0 is the bottom row of the grid, row 8 the top button row; column 8 is
// the scene button column.
type PadEvent struct {
	Row, Col int
	Velocity uint8
}

// LEDUpdate sets one pad to an RGB colour
type LEDUpdate struct {
	Row, Col int
	Color    [3]uint8
	Channel  uint8
}

// Controller is a grid device that can show the lights
type Controller interface {
	ID() string
	Type() ControllerType

	// Input events from the controller
	PadEvents() <-chan PadEvent

	// Output to the controller - RGB is mapped to the device palette
	SetLEDBatch(updates []LEDUpdate) error

	// Lifecycle
	Close() error
}

// Grid dimensions of the Launchpad main pad area
const (
	GridRows = 8
	GridCols = 8
	TopRow   = 8 // CC button row above the grid
	SceneCol = 8 // scene button column right of the grid
)

// Channel modes for LEDUpdate.Channel
const (
	ChannelStatic uint8 = 0 // solid color
	ChannelPulse  uint8 = 2 // pulsing (fades)
)
