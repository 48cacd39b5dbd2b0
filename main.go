package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go-lights/animation"
	"go-lights/config"
	"go-lights/debug"
	"go-lights/lights"
	"go-lights/midi"
	"go-lights/pattern"
	"go-lights/settings"
	"go-lights/show"
	"go-lights/theme"
	"go-lights/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	if cfg.Debug || os.Getenv("GO_LIGHTS_DEBUG") == "1" {
		dir, err := config.ConfigDir()
		if err == nil {
			err = debug.Enable(dir)
		}
		if err != nil {
			fmt.Printf("Error enabling debug log: %v\n", err)
			os.Exit(1)
		}
	}
	if debug.Enabled() {
		defer debug.Disable()
	}

	// Bad tables are a build defect, refuse to start
	if err := pattern.Default.Verify(pattern.MaxRows, pattern.RowSize); err != nil {
		fmt.Printf("Error: pattern catalog: %v\n", err)
		os.Exit(1)
	}

	// Load theme
	palette := theme.Plasma()
	if cfg.Theme != "" {
		palette = theme.MustLoadGPL(cfg.Theme)
	}
	th := theme.New(palette)

	initial := settings.Default()
	if cfg.Palette != "" {
		p, err := theme.LoadGPL(cfg.Palette)
		if err != nil {
			fmt.Printf("Error loading palette: %v\n", err)
			os.Exit(1)
		}
		initial.Colors = lights.NewColors(p.Hexes(pattern.RowSize)...)
	}

	driver := animation.NewDriver(cfg.TickInterval())
	s, err := show.New(pattern.Default, initial, driver)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create MIDI device manager (handles hot-plug)
	var deviceMgr *midi.DeviceManager
	devicesDone := make(chan struct{})
	if cfg.Launchpad.AutoConnect {
		deviceMgr = midi.NewDeviceManager(cfg.Launchpad.PortMatch)
		go func() {
			deviceMgr.Run(ctx)
			close(devicesDone)
		}()
	} else {
		close(devicesDone)
	}

	showCtx, stopShow := context.WithCancel(ctx)
	showDone := make(chan struct{})
	go func() {
		s.Run(showCtx)
		close(showDone)
	}()

	m := tui.NewModel(s, deviceMgr, th, cfg.LayoutThrottle())
	p := tea.NewProgram(m, tea.WithAltScreen())

	_, err = p.Run()

	// stop the LED loop before the device manager closes the controller,
	// then let it clear the pads
	s.SetController(nil)
	stopShow()
	<-showDone
	cancel()
	<-devicesDone

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
