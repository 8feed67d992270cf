package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-surface/snapshot"
	"go-surface/theme"
)

// GridColumns is the number of pads or knobs per row
const GridColumns = 4

// RenderPad renders one pad with its label
func RenderPad(label string, th theme.Theme, width int) string {
	sym := th.Symbols.PadEmpty
	if label != "" {
		sym = th.Symbols.PadLit
	}
	inner := max(width-2-2*th.SpaceCells(theme.SizeMd), 1)
	body := lipgloss.NewStyle().
		Width(inner).
		Height(2).
		Align(lipgloss.Center).
		Background(th.BGColor()).
		Render(Text(string(sym), th, theme.SizeSm, 0) + "\n" + Text(label, th, theme.SizeLg, 0))
	return Box(body, th, th.ShadowOpts(), theme.SizeMd, width)
}

// RenderPadGrid lays pads out in rows of GridColumns
func RenderPadGrid(pads []snapshot.Control, th theme.Theme, width int) string {
	cells := make([]string, len(pads))
	cw := cellWidth(th, width)
	for i, p := range pads {
		cells[i] = RenderPad(p.PadLabel(), th, cw)
	}
	return grid(cells, th)
}

// RenderLEDGrid renders an 8x8 grid of colored squares (row 0 at bottom)
func RenderLEDGrid(leds [8][8][3]uint8) string {
	var lines []string
	for row := 7; row >= 0; row-- {
		var line strings.Builder
		for col := 0; col < 8; col++ {
			if col > 0 {
				line.WriteString(" ")
			}
			line.WriteString(renderLED(leds[row][col]))
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

func renderLED(color [3]uint8) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(rgbToHex(color)))
	return style.Render("■")
}

func rgbToHex(c [3]uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

// cellWidth is the outer width of one grid cell
func cellWidth(th theme.Theme, width int) int {
	gap := th.SpaceCells(theme.SizeMd)
	return max((width-gap*(GridColumns-1))/GridColumns, 4)
}

// grid joins cells GridColumns per row with theme spacing
func grid(cells []string, th theme.Theme) string {
	if len(cells) == 0 {
		return ""
	}
	gap := th.SpaceCells(theme.SizeMd)
	spacer := strings.Repeat(" ", gap)

	var rows []string
	for start := 0; start < len(cells); start += GridColumns {
		end := min(start+GridColumns, len(cells))
		var parts []string
		for i := start; i < end; i++ {
			if i > start && gap > 0 {
				parts = append(parts, spacer)
			}
			parts = append(parts, cells[i])
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, parts...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
