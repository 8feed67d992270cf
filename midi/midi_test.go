package midi

import (
	"errors"
	"testing"
	"time"
)

type fakeController struct {
	id     string
	closed bool
}

func (f *fakeController) ID() string                                { return f.id }
func (f *fakeController) Type() ControllerType                      { return ControllerLaunchpad }
func (f *fakeController) SetLEDRGB(int, int, [3]uint8, uint8) error { return nil }
func (f *fakeController) SetLEDBatch([]LEDUpdate) error             { return nil }
func (f *fakeController) ClearLEDs() error                          { return nil }
func (f *fakeController) Close() error                              { f.closed = true; return nil }

func TestRowColToNote(t *testing.T) {
	tests := []struct {
		row, col int
		want     uint8
	}{
		{0, 0, 11},
		{0, 7, 18},
		{7, 0, 81},
		{7, 7, 88},
		{8, 0, 91},
	}
	for _, tt := range tests {
		if got := rowColToNote(tt.row, tt.col); got != tt.want {
			t.Errorf("rowColToNote(%d, %d) = %d, want %d", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestMapRGBToLaunchpad(t *testing.T) {
	tests := []struct {
		rgb  [3]uint8
		want uint8
	}{
		{[3]uint8{0, 0, 0}, 0},
		{[3]uint8{255, 0, 0}, 5},
		{[3]uint8{250, 250, 250}, 119},
		{[3]uint8{0, 250, 0}, 21},
	}
	for _, tt := range tests {
		if got := mapRGBToLaunchpad(tt.rgb); got != tt.want {
			t.Errorf("mapRGBToLaunchpad(%v) = %d, want %d", tt.rgb, got, tt.want)
		}
	}
}

func TestMatcher(t *testing.T) {
	match := Matcher("My Grid Out")
	for name, want := range map[string]bool{
		"Launchpad X LPX MIDI": true,
		"LPX DAW":              false,
		"my grid out":          true,
		"IAC Driver Bus 1":     false,
		"Launchpad Mini MIDI":  true,
	} {
		if got := match(name); got != want {
			t.Errorf("match(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestScanHotPlug(t *testing.T) {
	opened := map[string]*fakeController{}
	var ports []Port

	dm := NewDeviceManager()
	dm.ports = func() []Port { return ports }
	dm.open = func(p Port) (Controller, error) {
		if p.Name == "Launchpad Broken MIDI" {
			return nil, errors.New("busy")
		}
		c := &fakeController{id: p.Name}
		opened[p.Name] = c
		return c, nil
	}

	ports = []Port{{Name: "Launchpad X LPX MIDI"}, {Name: "IAC Bus"}, {Name: "Launchpad Broken MIDI"}}
	dm.scan()

	select {
	case ev := <-dm.Events():
		if ev.Type != DeviceConnected || ev.ID != "Launchpad X LPX MIDI" {
			t.Fatalf("event = %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("no connect event")
	}
	if len(dm.Controllers()) != 1 {
		t.Fatalf("controllers = %v", dm.Controllers())
	}

	// Same ports again - nothing new
	dm.scan()
	select {
	case ev := <-dm.Events():
		t.Fatalf("unexpected event %+v", ev)
	default:
	}

	// Unplugged
	ports = []Port{}
	dm.scan()
	ev := <-dm.Events()
	if ev.Type != DeviceDisconnected || ev.ID != "Launchpad X LPX MIDI" {
		t.Fatalf("event = %+v", ev)
	}
	if !opened["Launchpad X LPX MIDI"].closed {
		t.Errorf("controller should be closed on unplug")
	}

	// A failed scan keeps the current set
	ports = nil
	dm.scan()
	if len(dm.Controllers()) != 0 {
		t.Errorf("controllers = %v", dm.Controllers())
	}
}
