package snapshot

import (
	"errors"
	"testing"
)

const fullFrame = `{
	"mode": "perform",
	"pads": [
		{"name": "p0", "bindings": [{"name": "Kick", "value": 1, "displayedValue": "on"}]},
		{"name": "p1", "bindings": []},
		{"name": "p2", "bindings": [{"name": "Snare", "value": 0.25, "displayedValue": "25%"}]}
	],
	"knobs": [
		{"name": "k0", "bindings": [{"name": "", "value": 0}, {"name": "Cutoff", "value": 0.5, "displayedValue": "1.2 kHz"}]},
		{"name": "k1", "bindings": []}
	],
	"browserResults": [
		{"name": "Bass", "isSelected": false},
		{"name": "Lead", "isSelected": true}
	],
	"tracks": [
		{"name": "Drums", "arm": true, "isSelected": false, "type": "Group", "devices": []},
		{"name": "Synth", "arm": false, "isSelected": true, "type": "Instrument",
		 "devices": [{"name": "Polymer", "enabled": true, "isSelected": true}]}
	]
}`

func TestDecodePreservesOrder(t *testing.T) {
	s, err := Decode([]byte(fullFrame))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if s.Mode != "perform" {
		t.Errorf("mode = %q", s.Mode)
	}

	wantPads := []string{"p0", "p1", "p2"}
	if len(s.Pads) != len(wantPads) {
		t.Fatalf("pads = %d, want %d", len(s.Pads), len(wantPads))
	}
	for i, name := range wantPads {
		if s.Pads[i].Name != name {
			t.Errorf("pad %d = %q, want %q", i, s.Pads[i].Name, name)
		}
	}

	if len(s.Knobs) != 2 || s.Knobs[0].Name != "k0" || s.Knobs[1].Name != "k1" {
		t.Errorf("knobs = %+v", s.Knobs)
	}

	if len(s.Tracks) != 2 || s.Tracks[0].Name != "Drums" || s.Tracks[1].Name != "Synth" {
		t.Fatalf("tracks = %+v", s.Tracks)
	}
	if s.Tracks[1].Type != TrackInstrument {
		t.Errorf("track type = %q", s.Tracks[1].Type)
	}
	if len(s.Tracks[1].Devices) != 1 || !s.Tracks[1].Devices[0].Enabled {
		t.Errorf("devices = %+v", s.Tracks[1].Devices)
	}

	b := s.Pads[2].Bindings[0]
	if b.Value != 0.25 || b.DisplayedValue != "25%" {
		t.Errorf("binding = %+v", b)
	}
}

func TestDecodeOptionalFields(t *testing.T) {
	s, err := Decode([]byte(`{"pads":[],"knobs":[],"mode":"idle"}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(s.Pads) != 0 || len(s.Knobs) != 0 {
		t.Errorf("expected empty lists, got %d pads %d knobs", len(s.Pads), len(s.Knobs))
	}
	if s.BrowserResults != nil {
		t.Errorf("browser results should be absent, got %+v", s.BrowserResults)
	}
	if s.Tracks != nil {
		t.Errorf("tracks should be absent, got %+v", s.Tracks)
	}

	s, err = Decode([]byte(`{"mode":"browse","browserResults":null}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if s.BrowserResults != nil {
		t.Errorf("null browser results should decode to nil")
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name  string
		frame string
	}{
		{"not json", `not json`},
		{"truncated", `{"pads":[{"name":"p0"`},
		{"array", `[1,2,3]`},
		{"string", `"idle"`},
		{"null", `null`},
		{"pads not a list", `{"pads":"nope"}`},
		{"bad value type", `{"knobs":[{"name":"k","bindings":[{"name":"x","value":"loud"}]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Decode([]byte(tt.frame))
			if err == nil {
				t.Fatalf("expected error, got %+v", s)
			}
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Errorf("error %v is not a *DecodeError", err)
			}
		})
	}
}

func TestControlHelpers(t *testing.T) {
	s, err := Decode([]byte(fullFrame))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if got := s.Pads[0].PadLabel(); got != "Kick" {
		t.Errorf("PadLabel = %q", got)
	}
	if got := s.Pads[1].PadLabel(); got != "" {
		t.Errorf("PadLabel of empty pad = %q", got)
	}

	b, ok := s.Knobs[0].KnobBinding()
	if !ok || b.Name != "Cutoff" {
		t.Errorf("KnobBinding = %+v, %v", b, ok)
	}
	if _, ok := s.Knobs[1].KnobBinding(); ok {
		t.Errorf("KnobBinding on empty knob should be false")
	}

	if got := SelectedResult(s.BrowserResults); got != 1 {
		t.Errorf("SelectedResult = %d", got)
	}
	if tr := s.SelectedTrack(); tr == nil || tr.Name != "Synth" {
		t.Errorf("SelectedTrack = %+v", tr)
	}

	var empty *Snapshot
	if SelectedResult(nil) != -1 || empty.SelectedTrack() != nil {
		t.Errorf("nil snapshot helpers should return empty results")
	}
}
