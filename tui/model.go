package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-surface/debug"
	"go-surface/mirror"
	"go-surface/statesync"
	"go-surface/theme"
	"go-surface/widgets"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

type Model struct {
	Mirror   *mirror.Manager
	Theme    theme.Theme
	Endpoint string

	// SaveTheme persists the adjusted theme; the save key is ignored if nil
	SaveTheme func(theme.Theme) error

	keys KeyMap
	help help.Model

	update  statesync.Update
	seen    bool  // at least one update arrived
	lastErr error // cause of the last Error transition
	ended   bool

	width, height int
	fullscreen    bool
	showTheme     bool
	showHelp      bool
	showLEDs      bool
	field         int // index into theme.Fields
	message       string
	quitting      bool
}

// UpdateMsg carries one channel update
type UpdateMsg statesync.Update

// EndedMsg is sent once the update stream is closed
type EndedMsg struct{}

func NewModel(m *mirror.Manager, th theme.Theme, endpoint string) Model {
	h := help.New()
	h.Width = defaultWidth
	return Model{
		Mirror:   m,
		Theme:    th,
		Endpoint: endpoint,
		keys:     DefaultKeyMap(),
		help:     h,
		width:    defaultWidth,
		height:   defaultHeight,
	}
}

// ListenForUpdates waits for the next update from the mirror
func ListenForUpdates(updates <-chan statesync.Update) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return EndedMsg{}
		}
		return UpdateMsg(u)
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForUpdates(m.Mirror.UpdateChan)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width

	case UpdateMsg:
		m.update = statesync.Update(msg)
		m.seen = true
		if m.update.Err != nil {
			m.lastErr = m.update.Err
		}
		return m, ListenForUpdates(m.Mirror.UpdateChan)

	case EndedMsg:
		// No reconnect: keep showing the final state until the user quits
		m.ended = true
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		if err := m.Mirror.Disconnect(); err != nil && !errors.Is(err, statesync.ErrNotConnected) {
			debug.Warn("tui", "disconnect: %v", err)
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Fullscreen):
		m.fullscreen = !m.fullscreen
		if m.fullscreen {
			return m, tea.EnterAltScreen
		}
		return m, tea.ExitAltScreen

	case key.Matches(msg, m.keys.Theme):
		m.showTheme = !m.showTheme

	case key.Matches(msg, m.keys.LEDs):
		m.showLEDs = !m.showLEDs

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp

	case key.Matches(msg, m.keys.Up):
		if m.showTheme {
			m.field = (m.field + len(theme.Fields) - 1) % len(theme.Fields)
		}

	case key.Matches(msg, m.keys.Down):
		if m.showTheme {
			m.field = (m.field + 1) % len(theme.Fields)
		}

	case key.Matches(msg, m.keys.Left):
		if m.showTheme {
			m.adjust(-1)
		}

	case key.Matches(msg, m.keys.Right):
		if m.showTheme {
			m.adjust(1)
		}

	case key.Matches(msg, m.keys.Save):
		if m.SaveTheme == nil {
			break
		}
		if err := m.SaveTheme(m.Theme); err != nil {
			m.message = "save failed: " + err.Error()
		} else {
			m.message = "theme saved"
		}
	}

	return m, nil
}

// adjust moves the selected theme field; the theme is rebuilt, never mutated
func (m *Model) adjust(steps int) {
	f := theme.Fields[m.field]
	m.Theme = m.Theme.Adjust(f, steps)
	m.Mirror.SetTheme(m.Theme)
	debug.Log("tui", "theme %s=%.2f", f, m.Theme.Value(f))
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := m.renderHeader()
	footer := m.renderFooter()

	var panels []string
	if m.showTheme {
		panels = append(panels, m.renderThemePanel())
	}
	if m.showLEDs {
		panels = append(panels, m.renderLEDs())
	}
	side := lipgloss.JoinVertical(lipgloss.Left, panels...)

	bodyWidth := m.width
	if side != "" {
		bodyWidth = max(m.width-lipgloss.Width(side)-2, 20)
	}
	bodyHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer)-2, 4)
	body := m.renderBody(bodyWidth, bodyHeight)
	if side != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", side)
	}

	var out strings.Builder
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(body)
	out.WriteString("\n\n")
	out.WriteString(footer)
	return out.String()
}

func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(m.Theme.FGColor()).Render("go-surface")
	mode, track := "", ""
	if s := m.update.Snapshot; s != nil {
		mode = s.Mode
		if t := s.SelectedTrack(); t != nil {
			track = "  " + string(m.Theme.Symbols.Selected) + " " + t.Name
		}
	}
	dim := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	return title + "  " + widgets.RenderStatus(m.update.Status.String(), mode, m.Theme) + track + "  " + dim.Render(m.Endpoint)
}

func (m Model) renderBody(width, height int) string {
	if m.update.Snapshot == nil {
		return m.renderEmpty()
	}
	return widgets.Render(m.update.Snapshot, m.Theme, width, height)
}

// renderEmpty is shown whenever there is no snapshot
func (m Model) renderEmpty() string {
	dim := lipgloss.NewStyle().Foreground(m.Theme.Muted())

	var line string
	switch {
	case !m.seen:
		line = "connecting to " + m.Endpoint
	case m.lastErr != nil:
		line = fmt.Sprintf("disconnected: %v", m.lastErr)
	case m.ended || m.update.Status == statesync.Closed:
		line = "disconnected, restart to connect again"
	default:
		line = "connected, waiting for the first snapshot"
	}
	return dim.Render(line)
}

func (m Model) renderThemePanel() string {
	dark, light := m.Theme.ShadowColors()
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderTopForeground(light).
		BorderLeftForeground(light).
		BorderBottomForeground(dark).
		BorderRightForeground(dark).
		Padding(0, 1)

	sel := lipgloss.NewStyle().Bold(true).Foreground(m.Theme.FGColor())
	dim := lipgloss.NewStyle().Foreground(m.Theme.Muted())

	lines := []string{sel.Render("theme")}
	for i, f := range theme.Fields {
		row := fmt.Sprintf("%-10s %6.2f", f, m.Theme.Value(f))
		if i == m.field {
			lines = append(lines, sel.Render(string(m.Theme.Symbols.Selected)+" "+row))
		} else {
			lines = append(lines, dim.Render("  "+row))
		}
	}
	return box.Render(strings.Join(lines, "\n"))
}

func (m Model) renderLEDs() string {
	ramp := m.Theme.LEDRamp()
	lines := []string{
		widgets.RenderLEDGrid(m.Mirror.LEDGrid()),
		"",
		widgets.RenderLegendItem(ramp.Lookup(1), "Bright", "binding at full value"),
		widgets.RenderLegendItem(ramp.Lookup(0), "Dim", "binding at zero"),
		widgets.RenderLegendItem([3]uint8{}, "Off", "no binding"),
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	var parts []string
	if m.message != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(m.Theme.FGColor()).Render(m.message))
	}
	if m.showHelp {
		parts = append(parts, widgets.RenderKeyHelp(m.keys.helpSections(), m.Theme))
	} else {
		parts = append(parts, m.help.View(m.keys))
	}
	return strings.Join(parts, "\n")
}
