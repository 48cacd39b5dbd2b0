// Command lightctl inspects the pattern catalog and tests a Launchpad.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go-lights/animation"
	"go-lights/config"
	"go-lights/midi"
	"go-lights/pattern"
	"go-lights/settings"
	"go-lights/show"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	var err error
	switch os.Args[1] {
	case "list":
		listPatterns()
	case "check":
		err = checkPatterns()
	case "frames":
		err = printFrames(os.Args[2:])
	case "ports":
		listPorts()
	case "leds":
		err = testLEDs(os.Args[2:])
	case "init-config":
		err = initConfig()
	default:
		usage()
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("go-lights tools")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list                           - List patterns")
	fmt.Println("  check                          - Verify pattern tables for every row count")
	fmt.Println("  frames <pattern> <rows> <n>    - Print n frames of a pattern")
	fmt.Println("  ports                          - List all MIDI ports")
	fmt.Println("  leds [pattern] [steps]         - Play a pattern on the Launchpad")
	fmt.Println("  init-config                    - Write the default config file")
}

func listPatterns() {
	sel := settings.PatternSelector(pattern.Default.Len())
	for i, name := range pattern.Default.Names() {
		fmt.Printf("  %-3s %s\n", sel.Label(i), name)
	}
}

func checkPatterns() error {
	if err := pattern.Default.Verify(pattern.MaxRows, pattern.RowSize); err != nil {
		return err
	}
	fmt.Printf("%d patterns OK for 1..%d rows\n", pattern.Default.Len(), pattern.MaxRows)
	return nil
}

// intArgs parses positional ints, falling back to defaults
func intArgs(args []string, defaults ...int) ([]int, error) {
	out := append([]int(nil), defaults...)
	for i, a := range args {
		if i >= len(out) {
			break
		}
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", a, err)
		}
		out[i] = v
	}
	return out, nil
}

func printFrames(args []string) error {
	v, err := intArgs(args, 0, pattern.MaxRows, 8)
	if err != nil {
		return err
	}
	idx, rows, n := v[0], v[1], v[2]

	def, err := pattern.Default.Get(idx)
	if err != nil {
		return err
	}
	if rows < 1 || rows > pattern.MaxRows {
		return fmt.Errorf("rows %d: %w", rows, pattern.ErrIndexOutOfRange)
	}

	total := rows * pattern.RowSize
	b := def.Bind(total, pattern.RowSize)
	for step := 0; step < n; step++ {
		fmt.Printf("step %d\n", step)
		for r := 0; r < rows; r++ {
			var line strings.Builder
			for c := 0; c < pattern.RowSize; c++ {
				if b.Evaluate(r*pattern.RowSize+c, step) {
					line.WriteString("# ")
				} else {
					line.WriteString(". ")
				}
			}
			fmt.Println("  " + strings.TrimRight(line.String(), " "))
		}
	}
	return nil
}

// ports returns the MIDI ports, or false if listing hung
func ports() ([]drivers.In, []drivers.Out, bool) {
	type result struct {
		ins  []drivers.In
		outs []drivers.Out
	}
	ch := make(chan result, 1)
	go func() {
		ch <- result{ins: gomidi.GetInPorts(), outs: gomidi.GetOutPorts()}
	}()

	select {
	case r := <-ch:
		return r.ins, r.outs, true
	case <-time.After(3 * time.Second):
		return nil, nil, false
	}
}

func listPorts() {
	fmt.Println("=== MIDI Input Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	ins, outs, ok := ports()
	if !ok {
		fmt.Println("\nTIMEOUT! CoreMIDI is hung.")
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
		return
	}

	for i, p := range ins {
		mark := ""
		if midi.IsLaunchpad(p.String(), "launchpad") {
			mark = "  <- launchpad"
		}
		fmt.Printf("  %d: %s%s\n", i, p.String(), mark)
	}
	fmt.Println("\n=== MIDI Output Ports ===")
	for i, p := range outs {
		fmt.Printf("  %d: %s\n", i, p.String())
	}
}

func testLEDs(args []string) error {
	v, err := intArgs(args, 0, 28)
	if err != nil {
		return err
	}
	idx, steps := v[0], v[1]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ins, outs, ok := ports()
	if !ok {
		return fmt.Errorf("port listing timed out")
	}

	var in drivers.In
	var out drivers.Out
	for _, p := range ins {
		if midi.IsLaunchpad(p.String(), cfg.Launchpad.PortMatch) {
			in = p
			break
		}
	}
	for _, p := range outs {
		if midi.IsLaunchpad(p.String(), cfg.Launchpad.PortMatch) {
			out = p
			break
		}
	}
	if in == nil || out == nil {
		fmt.Println("No Launchpad found")
		return nil
	}

	lp, err := midi.NewLaunchpadController(in.String(), in, out)
	if err != nil {
		return err
	}
	defer lp.Close()

	driver := animation.NewDriver(cfg.TickInterval())
	s, err := show.New(pattern.Default, settings.Default().Apply(settings.WithPattern(idx)), driver)
	if err != nil {
		return err
	}
	s.SetController(lp)

	fmt.Printf("Playing %s for %d steps on %s...\n", pattern.Default.Name(idx), steps, in.String())
	for i := 0; i < steps; i++ {
		s.FlushLEDs()
		time.Sleep(driver.Interval())
		driver.Tick()
	}

	fmt.Println("Done!")
	return nil
}

func initConfig() error {
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("%s already exists\n", path)
		return nil
	}
	if err := config.DefaultConfig().Save(); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
