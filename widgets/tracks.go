package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-surface/snapshot"
	"go-surface/theme"
)

// RenderTracks renders one column per track with its device chain.
// The selected track and selected device are drawn inset.
func RenderTracks(tracks []snapshot.Track, th theme.Theme, width int) string {
	if len(tracks) == 0 {
		return ""
	}

	gap := th.SpaceCells(theme.SizeLg)
	colWidth := max((width-gap*(len(tracks)-1))/len(tracks), 6)

	cols := make([]string, 0, len(tracks)*2)
	for i, t := range tracks {
		if i > 0 && gap > 0 {
			cols = append(cols, strings.Repeat(" ", gap))
		}
		cols = append(cols, renderTrack(t, th, colWidth))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func renderTrack(t snapshot.Track, th theme.Theme, width int) string {
	header := Text(t.Name, th, theme.SizeLg, 0)
	if t.Arm {
		armed := lipgloss.NewStyle().Foreground(th.FGColor()).Background(th.BGColor()).Blink(true)
		header = armed.Render(string(th.Symbols.Armed)) + " " + header
	}
	lines := []string{header}
	if t.Type != "" {
		lines = append(lines, Text(string(t.Type), th, theme.SizeSm, 0))
	}

	inner := max(width-2-2*th.SpaceCells(theme.SizeSm), 3)
	for _, d := range t.Devices {
		lines = append(lines, renderDevice(d, th, inner))
	}

	o := th.ShadowOpts()
	o.Inset = t.IsSelected
	return Box(strings.Join(lines, "\n"), th, o, theme.SizeSm, width)
}

func renderDevice(d snapshot.Device, th theme.Theme, width int) string {
	label := d.Name
	if !d.Enabled {
		label = string(th.Symbols.Disabled) + " " + label
	}

	dt := th.With(theme.ShadowOpts{Distance: 2, Blur: 5, Intensity: 0.3})
	o := dt.ShadowOpts()
	o.Inset = d.IsSelected
	return Box(Text(label, dt, theme.SizeMd, 0), dt, o, theme.SizeSm, width)
}
