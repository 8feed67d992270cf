package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-surface/snapshot"
	"go-surface/theme"
)

// BrowserWindow returns the first visible row so that the selected row is
// centered where possible.
func BrowserWindow(total, selected, rows int) int {
	if rows <= 0 || total <= rows {
		return 0
	}
	if selected < 0 {
		return 0
	}
	start := selected - rows/2
	return max(0, min(start, total-rows))
}

// RenderBrowser renders the browser results, at most rows of them, keeping
// the selected result in view. Returns "" when no browser is open.
func RenderBrowser(results []snapshot.BrowserResult, th theme.Theme, width, rows int) string {
	if results == nil {
		return ""
	}

	selected := snapshot.SelectedResult(results)
	if rows <= 0 {
		rows = len(results)
	}
	start := BrowserWindow(len(results), selected, rows)
	end := min(start+rows, len(results))

	inner := max(width-2-2*th.SpaceCells(theme.SizeSm), 3)
	bold := lipgloss.NewStyle().Bold(true).Foreground(th.FGColor()).Background(th.BGColor())
	plain := lipgloss.NewStyle().Foreground(th.FGColor()).Background(th.BGColor())

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		r := results[i]
		if r.IsSelected {
			line := bold.Reverse(true).Width(inner).Render(string(th.Symbols.Selected) + " " + r.Name)
			lines = append(lines, line)
			continue
		}
		lines = append(lines, plain.Width(inner).Render("  "+r.Name))
	}

	o := th.ShadowOpts()
	o.Distance = 2
	o.Intensity = 0.2
	return Box(strings.Join(lines, "\n"), th, o, theme.SizeSm, width)
}
