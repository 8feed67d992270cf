package theme

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

var hexColor = regexp.MustCompile(`^#([0-9a-f][0-9a-f])([0-9a-f][0-9a-f])([0-9a-f][0-9a-f])$`)

func parseHex(color string) (RGB, error) {
	m := hexColor.FindStringSubmatch(color)
	if m == nil {
		return RGB{}, fmt.Errorf("invalid color %q, want #rrggbb", color)
	}
	var c RGB
	for i := 0; i < 3; i++ {
		v, _ := strconv.ParseUint(m[i+1], 16, 8)
		c[i] = uint8(v)
	}
	return c, nil
}

// Luminance scales each channel of color by (1+intensity), clamped to 0-255
func Luminance(color string, intensity float64) (string, error) {
	c, err := parseHex(color)
	if err != nil {
		return "", err
	}
	var out RGB
	for i, v := range c {
		scaled := math.Min(math.Max(float64(v)*(1+intensity), 0), 255)
		out[i] = uint8(math.Round(scaled))
	}
	return out.Hex(), nil
}

// ShadowOpts describes one soft shadow. Start from Theme.ShadowOpts and
// override fields per widget.
type ShadowOpts struct {
	Color     string
	Distance  float64
	Blur      float64
	Intensity float64
	Inset     bool
	Disabled  bool
}

// ShadowPair is the dark/light color pair of a soft shadow
type ShadowPair struct {
	Dark     string
	Light    string
	Distance float64
	Blur     float64
	Inset    bool
}

// ShadowOpts returns the theme's default shadow
func (t Theme) ShadowOpts() ShadowOpts {
	return ShadowOpts{
		Color:     t.BG,
		Distance:  t.Distance,
		Blur:      t.Blur,
		Intensity: t.Intensity,
	}
}

// Shadow computes the color pair for o. A disabled shadow returns the zero pair.
func Shadow(o ShadowOpts) (ShadowPair, error) {
	if o.Disabled {
		return ShadowPair{}, nil
	}
	dark, err := Luminance(o.Color, -o.Intensity)
	if err != nil {
		return ShadowPair{}, err
	}
	light, err := Luminance(o.Color, o.Intensity)
	if err != nil {
		return ShadowPair{}, err
	}
	return ShadowPair{
		Dark:     dark,
		Light:    light,
		Distance: o.Distance,
		Blur:     o.Blur,
		Inset:    o.Inset,
	}, nil
}

// IsZero reports whether the pair draws nothing
func (p ShadowPair) IsZero() bool {
	return p.Dark == "" && p.Light == ""
}

// Edges returns the colors for the top-left and bottom-right edges.
// Raised boxes are lit from the top-left; inset boxes are the reverse.
func (p ShadowPair) Edges() (topLeft, bottomRight lipgloss.Color) {
	if p.Inset {
		return lipgloss.Color(p.Dark), lipgloss.Color(p.Light)
	}
	return lipgloss.Color(p.Light), lipgloss.Color(p.Dark)
}

// With returns a copy of t whose default shadow is o. Widgets that draw a
// nested surface use it to hand a shallower theme down.
func (t Theme) With(o ShadowOpts) Theme {
	t.Distance = o.Distance
	t.Blur = o.Blur
	t.Intensity = o.Intensity
	return t
}

// ShadowColors returns the dark and light colors of the default shadow
func (t Theme) ShadowColors() (dark, light lipgloss.Color) {
	p, err := Shadow(t.ShadowOpts())
	if err != nil || p.IsZero() {
		return t.Muted(), t.BGColor()
	}
	return lipgloss.Color(p.Dark), lipgloss.Color(p.Light)
}
