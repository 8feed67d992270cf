package theme

import "math"

// Field identifies an adjustable theme parameter
type Field int

const (
	FieldIntensity Field = iota
	FieldDistance
	FieldBlur
	FieldSpace
	FieldRoundness
)

// Fields lists the adjustable parameters in display order
var Fields = []Field{FieldIntensity, FieldDistance, FieldBlur, FieldSpace, FieldRoundness}

type fieldRange struct {
	name           string
	min, max, step float64
}

var fieldRanges = map[Field]fieldRange{
	FieldIntensity: {"intensity", 0, 1, 0.01},
	FieldDistance:  {"distance", 0, 20, 0.5},
	FieldBlur:      {"blur", 0, 30, 0.5},
	FieldSpace:     {"space", 0.5, 3, 0.01},
	FieldRoundness: {"roundness", 0, 2, 0.05},
}

func (f Field) String() string {
	return fieldRanges[f].name
}

// Value returns the current value of f
func (t Theme) Value(f Field) float64 {
	switch f {
	case FieldIntensity:
		return t.Intensity
	case FieldDistance:
		return t.Distance
	case FieldBlur:
		return t.Blur
	case FieldSpace:
		return t.Space
	case FieldRoundness:
		return t.Roundness
	}
	return 0
}

// Adjust returns a copy of t with f moved by steps, clamped to its range
func (t Theme) Adjust(f Field, steps int) Theme {
	r, ok := fieldRanges[f]
	if !ok {
		return t
	}
	v := t.Value(f) + float64(steps)*r.step
	v = math.Min(math.Max(v, r.min), r.max)
	// keep values on the step grid
	v = math.Round(v/r.step) * r.step

	switch f {
	case FieldIntensity:
		t.Intensity = v
	case FieldDistance:
		t.Distance = v
	case FieldBlur:
		t.Blur = v
	case FieldSpace:
		t.Space = v
	case FieldRoundness:
		t.Roundness = v
	}
	return t
}
