package hostsim

import (
	"fmt"
	"math"

	"go-surface/snapshot"
)

var (
	demoPads   = []string{"Kick", "Snare", "Closed Hat", "Open Hat", "Clap", "Rim", "Tom Lo", "Tom Hi", "Crash", "Ride", "Shaker", "Cowbell", "Perc 1", "Perc 2", "FX", "Vox"}
	demoKnobs  = []string{"Cutoff", "Resonance", "Drive", "Attack", "Decay", "Sustain", "Release", "Mix"}
	demoModes  = []string{"perform", "perform", "browse", "mix"}
	demoTracks = []struct {
		name    string
		kind    snapshot.TrackType
		devices []string
	}{
		{"Drums", snapshot.TrackGroup, []string{"Drum Machine", "Compressor"}},
		{"Bass", snapshot.TrackInstrument, []string{"Polymer", "EQ+"}},
		{"Vocals", snapshot.TrackAudio, []string{"De-Esser", "Reverb"}},
		{"Master", snapshot.TrackMaster, []string{"Limiter"}},
	}
	demoPresets = []string{"Acid Line", "Deep Sub", "Wobble", "Pluck", "Reese", "Square Lead", "Warm Pad"}
)

// Demo generates a plausible snapshot for the given tick
func Demo(tick int) *snapshot.Snapshot {
	s := &snapshot.Snapshot{
		Mode:  demoModes[(tick/50)%len(demoModes)],
		Pads:  make([]snapshot.Control, len(demoPads)),
		Knobs: make([]snapshot.Control, len(demoKnobs)),
	}

	for i, name := range demoPads {
		v := 0.0
		if (tick/4)%len(demoPads) == i {
			v = 1
		}
		s.Pads[i] = snapshot.Control{
			Name: fmt.Sprintf("Pad %d", i+1),
			Bindings: []snapshot.Binding{
				{Name: name, Value: v, DisplayedValue: fmt.Sprintf("%.0f", v*127)},
			},
		}
	}

	for i, name := range demoKnobs {
		v := 0.5 + 0.5*math.Sin(float64(tick)/20+float64(i))
		s.Knobs[i] = snapshot.Control{
			Name: fmt.Sprintf("Knob %d", i+1),
			Bindings: []snapshot.Binding{
				{Name: name, Value: v, DisplayedValue: fmt.Sprintf("%.0f%%", v*100)},
			},
		}
	}

	selectedTrack := (tick / 30) % len(demoTracks)
	for i, t := range demoTracks {
		track := snapshot.Track{
			Name:       t.name,
			Arm:        i == 1,
			IsSelected: i == selectedTrack,
			Type:       t.kind,
		}
		for j, d := range t.devices {
			track.Devices = append(track.Devices, snapshot.Device{
				Name:       d,
				Enabled:    true,
				IsSelected: i == selectedTrack && j == 0,
			})
		}
		s.Tracks = append(s.Tracks, track)
	}

	if s.Mode == "browse" {
		sel := (tick / 5) % len(demoPresets)
		for i, name := range demoPresets {
			s.BrowserResults = append(s.BrowserResults, snapshot.BrowserResult{Name: name, IsSelected: i == sel})
		}
	}

	return s
}
