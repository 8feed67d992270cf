package widgets

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-surface/snapshot"
	"go-surface/theme"
)

// knobLabelScale is the label length that renders at full size
const knobLabelScale = 6

// KnobPointer returns the gauge cell the pointer sits on for value v.
// The gauge spans the knob's 270 degree sweep.
func KnobPointer(v float64, cells int) int {
	if cells <= 1 {
		return 0
	}
	angle := math.Min(math.Max(theme.KnobAngle(v), -135), 135)
	return int(math.Round((angle + 135) / 270 * float64(cells-1)))
}

// RenderKnob renders a knob as a gauge, its displayed value and its label.
// A knob without a named binding has no pointer.
func RenderKnob(k snapshot.Control, th theme.Theme, width int) string {
	b, ok := k.KnobBinding()
	inner := max(width-2-2*th.SpaceCells(theme.SizeSm), 3)

	gauge := renderGauge(b.Value, ok, th, inner)
	value := ""
	if ok {
		value = b.DisplayedValue
	}

	body := lipgloss.NewStyle().
		Width(inner).
		Align(lipgloss.Center).
		Background(th.BGColor()).
		Render(strings.Join([]string{
			gauge,
			Text(value, th, theme.SizeSm, 0),
			Text(b.Name, th, theme.SizeLg, knobLabelScale),
		}, "\n"))

	// Knobs are always round
	round := th
	round.Roundness = math.Max(th.Roundness, 0.5)
	return Box(body, round, th.ShadowOpts(), theme.SizeSm, width)
}

func renderGauge(v float64, ok bool, th theme.Theme, cells int) string {
	track := lipgloss.NewStyle().Foreground(th.Muted()).Background(th.BGColor())
	if !ok {
		return track.Render(strings.Repeat(string(th.Symbols.KnobTrack), cells))
	}

	ptr := KnobPointer(v, cells)
	fill := lipgloss.NewStyle().Foreground(th.ValueColor(v)).Background(th.BGColor())
	pointer := lipgloss.NewStyle().Foreground(th.FGColor()).Background(th.BGColor())

	return fill.Render(strings.Repeat(string(th.Symbols.KnobFill), ptr)) +
		pointer.Render(string(th.Symbols.KnobPointer)) +
		track.Render(strings.Repeat(string(th.Symbols.KnobTrack), cells-ptr-1))
}

// RenderKnobGrid lays knobs out in rows of GridColumns
func RenderKnobGrid(knobs []snapshot.Control, th theme.Theme, width int) string {
	cells := make([]string, len(knobs))
	cw := cellWidth(th, width)
	for i, k := range knobs {
		cells[i] = RenderKnob(k, th, cw)
	}
	return grid(cells, th)
}
