package widgets

import (
	"github.com/charmbracelet/lipgloss"

	"go-surface/debug"
	"go-surface/theme"
)

// Box wraps content in a soft-shadow frame. The shadow pair colors the
// border edges; inset boxes swap the light and dark edges.
func Box(content string, th theme.Theme, o theme.ShadowOpts, space theme.Size, width int) string {
	style := lipgloss.NewStyle().
		Background(th.BGColor()).
		Foreground(th.FGColor()).
		Padding(0, th.SpaceCells(space))

	pair, err := theme.Shadow(o)
	if err != nil {
		debug.LogEvery(100, "tui", "shadow: %v", err)
	}

	frame := 0
	if !pair.IsZero() {
		tl, br := pair.Edges()
		style = style.
			Border(borderFor(th, o)).
			BorderBackground(th.BGColor()).
			BorderTopForeground(tl).
			BorderLeftForeground(tl).
			BorderBottomForeground(br).
			BorderRightForeground(br)
		frame = 2
	}

	if width > 0 {
		style = style.Width(max(width-frame, 1))
	}
	return style.Render(content)
}

// borderFor picks the border shape from roundness and shadow depth
func borderFor(th theme.Theme, o theme.ShadowOpts) lipgloss.Border {
	switch {
	case o.Distance >= 8:
		return lipgloss.ThickBorder()
	case th.Roundness >= 0.5:
		return lipgloss.RoundedBorder()
	default:
		return lipgloss.NormalBorder()
	}
}

// Text renders a label at a relative size. Terminals have one font size, so
// large text is bold and small text is faint.
func Text(label string, th theme.Theme, size theme.Size, scale float64) string {
	style := lipgloss.NewStyle().Foreground(th.FGColor()).Background(th.BGColor())
	fs := theme.FontSize(size, scale, label)
	switch {
	case fs >= 2:
		style = style.Bold(true)
	case fs < 1.25:
		style = style.Faint(true)
	}
	return style.Render(label)
}
