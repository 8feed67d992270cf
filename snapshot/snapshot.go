package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// TrackType identifies what kind of track the host reports
type TrackType string

const (
	TrackGroup      TrackType = "Group"
	TrackInstrument TrackType = "Instrument"
	TrackAudio      TrackType = "Audio"
	TrackHybrid     TrackType = "Hybrid"
	TrackEffect     TrackType = "Effect"
	TrackMaster     TrackType = "Master"
)

// Snapshot is the complete controller state pushed by the host.
// A new snapshot always replaces the previous one; nothing is merged.
type Snapshot struct {
	Pads           []Control       `json:"pads"`
	Knobs          []Control       `json:"knobs"`
	Mode           string          `json:"mode"`
	BrowserResults []BrowserResult `json:"browserResults"` // nil when no browser is open
	Tracks         []Track         `json:"tracks"`
}

// Control is a pad or knob with the values bound to it
type Control struct {
	Name     string    `json:"name"`
	Bindings []Binding `json:"bindings"`
}

// Binding is a named value attached to a control
type Binding struct {
	Name           string  `json:"name"`
	Value          float64 `json:"value"` // 0-1
	DisplayedValue string  `json:"displayedValue"`
}

// Track holds a track and its device chain
type Track struct {
	Name       string    `json:"name"`
	Arm        bool      `json:"arm"`
	IsSelected bool      `json:"isSelected"`
	Type       TrackType `json:"type"`
	Devices    []Device  `json:"devices"`
}

// Device is a single device on a track
type Device struct {
	Name       string `json:"name"`
	Enabled    bool   `json:"enabled"`
	IsSelected bool   `json:"isSelected"`
}

// BrowserResult is one entry of the host's browser search
type BrowserResult struct {
	Name       string `json:"name"`
	IsSelected bool   `json:"isSelected"`
}

// DecodeError is returned when a frame is not a valid snapshot
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode snapshot: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode parses one text frame into a Snapshot.
// The frame must be a JSON object; list order and length are preserved.
func Decode(data []byte) (*Snapshot, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &DecodeError{Err: err}
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, &DecodeError{Err: fmt.Errorf("expected object, got %T", raw)}
	}

	var s Snapshot
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &s,
	})
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	if err := dec.Decode(obj); err != nil {
		return nil, &DecodeError{Err: err}
	}

	return &s, nil
}

// PadLabel returns the name of the pad's first binding
func (c Control) PadLabel() string {
	if len(c.Bindings) == 0 {
		return ""
	}
	return c.Bindings[0].Name
}

// KnobBinding returns the first binding that has a name
func (c Control) KnobBinding() (Binding, bool) {
	for _, b := range c.Bindings {
		if len(b.Name) > 0 {
			return b, true
		}
	}
	return Binding{}, false
}

// SelectedResult returns the index of the first selected browser result, or -1
func SelectedResult(results []BrowserResult) int {
	for i, r := range results {
		if r.IsSelected {
			return i
		}
	}
	return -1
}

// SelectedTrack returns the selected track, or nil
func (s *Snapshot) SelectedTrack() *Track {
	if s == nil {
		return nil
	}
	for i := range s.Tracks {
		if s.Tracks[i].IsSelected {
			return &s.Tracks[i]
		}
	}
	return nil
}
