package widgets

import (
	"github.com/charmbracelet/lipgloss"

	"go-surface/snapshot"
	"go-surface/theme"
)

// Render maps a snapshot to the full view: tracks, browser, then pads and
// knobs side by side. It is recomputed from scratch for every snapshot.
// A nil snapshot renders nothing.
func Render(s *snapshot.Snapshot, th theme.Theme, width, height int) string {
	if s == nil {
		return ""
	}

	var sections []string
	if tracks := RenderTracks(s.Tracks, th, width); tracks != "" {
		sections = append(sections, tracks)
	}

	// Browser takes at most 40% of the height
	if browser := RenderBrowser(s.BrowserResults, th, width, max(height*4/10-2, 3)); browser != "" {
		sections = append(sections, browser)
	}

	gap := th.SpaceCells(theme.SizeLg)
	half := max((width-gap)/2, 8)
	pads := RenderPadGrid(s.Pads, th, half)
	knobs := RenderKnobGrid(s.Knobs, th, half)
	bindings := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(half).Render(pads),
		lipgloss.NewStyle().Width(gap).Render(""),
		knobs,
	)
	sections = append(sections, bindings)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// RenderStatus renders the connection line
func RenderStatus(status, mode string, th theme.Theme) string {
	st := lipgloss.NewStyle().Bold(true).Foreground(th.BGColor()).Background(th.FGColor()).Padding(0, 1)
	line := st.Render(status)
	if mode != "" {
		line += " " + Text(mode, th, theme.SizeMd, 0)
	}
	return line
}
