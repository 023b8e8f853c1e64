package scale

import (
	"fmt"
	"image/color"
	"math"

	"github.com/aclements/go-gg/palette"
	"github.com/aclements/go-gg/palette/brewer"
)

// RdBu is the diverging red-to-blue palette: 0 maps to dark red, 0.5 to a
// near-white neutral and 1 to dark blue.
var RdBu palette.Continuous = newBasis(brewer.RdBu_11)

// Sequential maps a numeric domain [d0, d1] onto a continuous palette. d0 may
// be larger than d1, which flips the palette.
type Sequential struct {
	d0, d1 float64
	interp palette.Continuous
}

// NewSequential creates a sequential colour scale over [d0, d1].
func NewSequential(interp palette.Continuous, d0, d1 float64) Sequential {
	return Sequential{d0: d0, d1: d1, interp: interp}
}

// Domain returns the domain endpoints in construction order.
func (s Sequential) Domain() [2]float64 { return [2]float64{s.d0, s.d1} }

// Map returns the colour for v. A zero-width domain maps everything to the
// palette midpoint.
func (s Sequential) Map(v float64) color.Color {
	if s.d0 == s.d1 {
		return s.interp.Map(0.5)
	}
	return s.interp.Map((v - s.d0) / (s.d1 - s.d0))
}

// Fill returns the colour for v as a CSS rgb() value.
func (s Sequential) Fill(v float64) string { return CSS(s.Map(v)) }

// CSS formats c as a CSS rgb() value, dropping alpha.
func CSS(c color.Color) string {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return fmt.Sprintf("rgb(%d, %d, %d)", rgba.R, rgba.G, rgba.B)
}

// basis is a uniform B-spline through a sequence of sRGB colours. Unlike
// palette.RGBGradient it passes through both end colours and blends smoothly
// across every segment.
type basis struct {
	colors []color.RGBA
}

func newBasis[C color.Color](cs []C) basis {
	colors := make([]color.RGBA, len(cs))
	for i, c := range cs {
		colors[i] = color.RGBAModel.Convert(c).(color.RGBA)
	}
	return basis{colors: colors}
}

// Map implements palette.Continuous. x is clamped to [0, 1].
func (b basis) Map(x float64) color.Color {
	n := len(b.colors) - 1
	if n < 1 {
		if n == 0 {
			return b.colors[0]
		}
		return color.Black
	}
	if math.IsNaN(x) {
		x = 0.5
	}

	var i int
	switch {
	case x <= 0:
		x, i = 0, 0
	case x >= 1:
		x, i = 1, n-1
	default:
		i = int(math.Floor(x * float64(n)))
	}
	t := (x - float64(i)/float64(n)) * float64(n)

	channel := func(get func(color.RGBA) uint8) uint8 {
		v1 := float64(get(b.colors[i]))
		v2 := float64(get(b.colors[i+1]))
		v0 := 2*v1 - v2
		if i > 0 {
			v0 = float64(get(b.colors[i-1]))
		}
		v3 := 2*v2 - v1
		if i < n-1 {
			v3 = float64(get(b.colors[i+2]))
		}
		return clamp8(splineSegment(t, v0, v1, v2, v3))
	}

	return color.RGBA{
		R: channel(func(c color.RGBA) uint8 { return c.R }),
		G: channel(func(c color.RGBA) uint8 { return c.G }),
		B: channel(func(c color.RGBA) uint8 { return c.B }),
		A: 255,
	}
}

// splineSegment evaluates one cubic B-spline segment at t ∈ [0, 1].
func splineSegment(t, v0, v1, v2, v3 float64) float64 {
	t2 := t * t
	t3 := t2 * t
	return ((1-3*t+3*t2-t3)*v0 +
		(4-6*t2+3*t3)*v1 +
		(1+3*t+3*t2-3*t3)*v2 +
		t3*v3) / 6
}

func clamp8(v float64) uint8 {
	v = math.Round(v)
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
