package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"go-surface/snapshot"
	"go-surface/theme"
)

func control(name string, bindings ...snapshot.Binding) snapshot.Control {
	return snapshot.Control{Name: name, Bindings: bindings}
}

func TestKnobPointer(t *testing.T) {
	tests := []struct {
		v     float64
		cells int
		want  int
	}{
		{0, 11, 0},
		{1, 11, 10},
		{0.5, 11, 5},
		{2, 11, 10},
		{-1, 11, 0},
		{0.5, 1, 0},
	}
	for _, tt := range tests {
		if got := KnobPointer(tt.v, tt.cells); got != tt.want {
			t.Errorf("KnobPointer(%v, %d) = %d, want %d", tt.v, tt.cells, got, tt.want)
		}
	}
}

func TestBrowserWindow(t *testing.T) {
	tests := []struct {
		total, selected, rows, want int
	}{
		{10, 8, 4, 6},
		{10, 1, 4, 0},
		{10, 5, 4, 3},
		{3, 2, 5, 0},
		{10, -1, 4, 0},
	}
	for _, tt := range tests {
		if got := BrowserWindow(tt.total, tt.selected, tt.rows); got != tt.want {
			t.Errorf("BrowserWindow(%d, %d, %d) = %d, want %d", tt.total, tt.selected, tt.rows, got, tt.want)
		}
	}
}

func TestRenderBrowser(t *testing.T) {
	th := theme.Default()
	if got := RenderBrowser(nil, th, 40, 5); got != "" {
		t.Fatalf("closed browser rendered %q", got)
	}

	var results []snapshot.BrowserResult
	for _, n := range []string{"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7", "r8", "r9"} {
		results = append(results, snapshot.BrowserResult{Name: n, IsSelected: n == "r9"})
	}
	out := RenderBrowser(results, th, 40, 3)
	for _, want := range []string{"r7", "r8", "r9"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s in\n%s", want, out)
		}
	}
	if strings.Contains(out, "r0") {
		t.Errorf("r0 should be scrolled out of view:\n%s", out)
	}
}

func TestRenderPadGrid(t *testing.T) {
	th := theme.Default()
	var pads []snapshot.Control
	for _, n := range []string{"A", "B", "C", "D", "E", "F"} {
		pads = append(pads, control("pad", snapshot.Binding{Name: n, Value: 1}))
	}

	out := RenderPadGrid(pads, th, 60)
	for _, n := range []string{"A", "B", "C", "D", "E", "F"} {
		if !strings.Contains(out, n) {
			t.Errorf("missing pad %s", n)
		}
	}
	// two rows of boxed pads, two content lines plus the border each
	if got := lipgloss.Height(out); got != 8 {
		t.Errorf("height = %d, want 8\n%s", got, out)
	}

	if RenderPadGrid(nil, th, 60) != "" {
		t.Errorf("no pads should render nothing")
	}
}

func TestRenderKnobWithoutBinding(t *testing.T) {
	th := theme.Default()
	out := RenderKnob(control("k"), th, 14)
	if strings.ContainsRune(out, th.Symbols.KnobPointer) {
		t.Errorf("unbound knob should have no pointer:\n%s", out)
	}

	out = RenderKnob(control("k", snapshot.Binding{Name: "Cut", Value: 0.5, DisplayedValue: "50%"}), th, 14)
	if !strings.ContainsRune(out, th.Symbols.KnobPointer) || !strings.Contains(out, "50%") || !strings.Contains(out, "Cut") {
		t.Errorf("bound knob rendered:\n%s", out)
	}
}

func TestRenderTracks(t *testing.T) {
	th := theme.Default()
	tracks := []snapshot.Track{
		{Name: "Drums", Type: snapshot.TrackGroup},
		{Name: "Bass", Arm: true, IsSelected: true, Type: snapshot.TrackInstrument, Devices: []snapshot.Device{
			{Name: "Poly", Enabled: true, IsSelected: true},
			{Name: "EQ", Enabled: false},
		}},
	}
	out := RenderTracks(tracks, th, 80)
	for _, want := range []string{"Drums", "Bass", "Poly", "EQ", "Instrument"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in\n%s", want, out)
		}
	}
	if !strings.ContainsRune(out, th.Symbols.Disabled) {
		t.Errorf("disabled device should be marked")
	}
	if RenderTracks(nil, th, 80) != "" {
		t.Errorf("no tracks should render nothing")
	}
}

func TestRenderReplacesEverything(t *testing.T) {
	th := theme.Default()
	if Render(nil, th, 120, 40) != "" {
		t.Fatal("nil snapshot must render nothing")
	}

	a := &snapshot.Snapshot{
		Mode:           "browse",
		Pads:           []snapshot.Control{control("p", snapshot.Binding{Name: "Kick"})},
		Knobs:          []snapshot.Control{control("k", snapshot.Binding{Name: "Drive", Value: 0.2})},
		BrowserResults: []snapshot.BrowserResult{{Name: "Preset", IsSelected: true}},
		Tracks:         []snapshot.Track{{Name: "Lead"}},
	}
	b := &snapshot.Snapshot{
		Mode: "mix",
		Pads: []snapshot.Control{control("p", snapshot.Binding{Name: "Snare"})},
	}

	outA := Render(a, th, 120, 40)
	for _, want := range []string{"Kick", "Drive", "Preset", "Lead"} {
		if !strings.Contains(outA, want) {
			t.Errorf("view A missing %q", want)
		}
	}

	outB := Render(b, th, 120, 40)
	if !strings.Contains(outB, "Snare") {
		t.Errorf("view B missing Snare")
	}
	for _, stale := range []string{"Kick", "Drive", "Preset", "Lead"} {
		if strings.Contains(outB, stale) {
			t.Errorf("view B still shows %q from A", stale)
		}
	}
}

func TestRenderStatusAndLEDs(t *testing.T) {
	th := theme.Default()
	out := RenderStatus("RECEIVING", "idle", th)
	if !strings.Contains(out, "RECEIVING") || !strings.Contains(out, "idle") {
		t.Errorf("status = %q", out)
	}

	var leds [8][8][3]uint8
	leds[0][0] = [3]uint8{255, 0, 0}
	if got := lipgloss.Height(RenderLEDGrid(leds)); got != 8 {
		t.Errorf("LED grid height = %d", got)
	}
}

func TestRenderKeyHelp(t *testing.T) {
	out := RenderKeyHelp([]KeySection{
		{Title: "View", Keys: []KeyBinding{{Key: "f", Desc: "full screen"}, {Key: "q", Desc: "quit"}}},
		{Keys: []KeyBinding{{Key: "?", Desc: "help"}}},
	}, theme.Default())

	for _, want := range []string{"View", "f", "full screen", "quit", "help"} {
		if !strings.Contains(out, want) {
			t.Errorf("help missing %q:\n%s", want, out)
		}
	}
	if got := strings.Count(out, "\n") + 1; got != 4 {
		t.Errorf("help has %d lines, want 4", got)
	}

	if item := RenderLegendItem([3]uint8{198, 70, 0}, "Lit", "pad has a binding"); !strings.Contains(item, "Lit - pad has a binding") {
		t.Errorf("legend item = %q", item)
	}
}
