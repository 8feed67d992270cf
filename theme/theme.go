package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds every display parameter. It is a plain value: widgets get it
// passed in, and a change is made by building a new Theme.
type Theme struct {
	BG        string  `mapstructure:"bg" yaml:"bg"` // #rrggbb
	FG        string  `mapstructure:"fg" yaml:"fg"` // #rrggbb
	Blur      float64 `mapstructure:"blur" yaml:"blur"`
	Distance  float64 `mapstructure:"distance" yaml:"distance"`
	Intensity float64 `mapstructure:"intensity" yaml:"intensity"`
	Space     float64 `mapstructure:"space" yaml:"space"`
	Roundness float64 `mapstructure:"roundness" yaml:"roundness"`

	Palette *Palette `mapstructure:"-" yaml:"-"` // value ramp, derived from BG/FG if nil
	Symbols Symbols  `mapstructure:"-" yaml:"-"`
}

type Symbols struct {
	PadLit   rune // ■ pad with a binding
	PadEmpty rune // □ pad without a binding

	KnobTrack   rune // ─ unfilled gauge
	KnobFill    rune // ━ filled gauge
	KnobPointer rune // ● pointer at current value

	Armed    rune // ● track armed
	Disabled rune // ○ device bypassed
	Selected rune // ▶ selected row
}

// Default returns the stock theme
func Default() Theme {
	return Theme{
		BG:        "#f6f5f4",
		FG:        "#c64600",
		Blur:      15,
		Distance:  5,
		Intensity: 0.4,
		Space:     1,
		Roundness: 0.5,
		Symbols:   DefaultSymbols(),
	}
}

func DefaultSymbols() Symbols {
	return Symbols{
		PadLit:   '■',
		PadEmpty: '□',

		KnobTrack:   '─',
		KnobFill:    '━',
		KnobPointer: '●',

		Armed:    '●',
		Disabled: '○',
		Selected: '▶',
	}
}

// Validate checks that both colors are usable
func (t Theme) Validate() error {
	if _, err := parseHex(t.BG); err != nil {
		return fmt.Errorf("bg: %w", err)
	}
	if _, err := parseHex(t.FG); err != nil {
		return fmt.Errorf("fg: %w", err)
	}
	return nil
}

// Style helpers

func (t Theme) BGColor() lipgloss.Color {
	return lipgloss.Color(t.BG)
}

func (t Theme) FGColor() lipgloss.Color {
	return lipgloss.Color(t.FG)
}

// Muted is the foreground pushed halfway to the background
func (t Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Ramp().Lookup(0.5))
}

// Base is the default text style
func (t Theme) Base() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.FGColor()).Background(t.BGColor())
}

// Ramp returns the palette used to color values 0-1
func (t Theme) Ramp() *Palette {
	if t.Palette != nil {
		return t.Palette
	}
	p, err := Gradient(t.BG, t.FG, 8)
	if err != nil {
		return &Palette{Name: "fallback", Colors: []RGB{{0, 0, 0}, {255, 255, 255}}}
	}
	return p
}

// ValueColor returns lipgloss color for any normalized value 0-1
func (t Theme) ValueColor(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Ramp().Lookup(norm))
}

// LEDRamp runs from a dim foreground to the full foreground, for hardware pads
func (t Theme) LEDRamp() *Palette {
	dim, err := Luminance(t.FG, -0.85)
	if err != nil {
		dim = "#000000"
	}
	p, err := Gradient(dim, t.FG, 8)
	if err != nil {
		return &Palette{Name: "fallback", Colors: []RGB{{0, 0, 0}, {255, 255, 255}}}
	}
	return p
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(c.Hex())
}
