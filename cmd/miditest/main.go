package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"go-surface/hostsim"
	"go-surface/midi"
	"go-surface/mirror"
	"go-surface/theme"

	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "poll":
		pollDevices()
	case "leds":
		testLEDs()
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list    - List MIDI output ports")
	fmt.Println("  poll    - Watch Launchpads connect and disconnect")
	fmt.Println("  leds    - Mirror the demo pads onto the first Launchpad")
}

func listPorts() {
	fmt.Println("=== MIDI Output Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	names := midi.PortNames()
	if names == nil {
		fmt.Println("\nNo ports, or the scan timed out.")
		fmt.Println("On macOS a hung CoreMIDI: sudo killall coreaudiod midiserver")
		return
	}
	match := midi.Matcher()
	for i, name := range names {
		suffix := ""
		if match(name) {
			suffix = "  <- Launchpad"
		}
		fmt.Printf("  %d: %s%s\n", i, name, suffix)
	}
}

func pollDevices() {
	fmt.Println("Polling for Launchpads...")
	fmt.Println("Connect/disconnect Launchpad to test. Ctrl+C to exit.")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	dm := midi.NewDeviceManager()
	go dm.Run(ctx)

	for ev := range dm.Events() {
		state := "connected"
		if ev.Type == midi.DeviceDisconnected {
			state = "disconnected"
		}
		fmt.Printf("[%s] %s %s\n", time.Now().Format("15:04:05"), ev.ID, state)
	}
}

func testLEDs() {
	fmt.Println("Waiting for a Launchpad...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	dm := midi.NewDeviceManager()
	go dm.Run(ctx)

	var c midi.Controller
	select {
	case ev := <-dm.Events():
		c = ev.Controller
	case <-time.After(5 * time.Second):
		fmt.Println("No Launchpad found")
		return
	}
	fmt.Printf("Painting demo pads on %s, Ctrl+C to stop\n", c.ID())

	ramp := theme.Default().LEDRamp()
	ticker := time.NewTicker(time.Second / mirror.DefaultFPS)
	defer ticker.Stop()

	for tick := 0; ; tick++ {
		select {
		case <-ctx.Done():
			c.ClearLEDs()
			fmt.Println("Done!")
			return
		case <-ticker.C:
		}

		var updates []midi.LEDUpdate
		for _, led := range mirror.RenderLEDs(hostsim.Demo(tick), ramp) {
			updates = append(updates, midi.LEDUpdate{Row: led.Row, Col: led.Col, Color: led.Color})
		}
		if err := c.SetLEDBatch(updates); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
	}
}
