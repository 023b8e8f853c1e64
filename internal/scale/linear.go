package scale

import (
	"math"

	mscale "github.com/aclements/go-moremath/scale"
)

// Linear maps a numeric domain [d0, d1] onto a pixel range [r0, r1]. Either
// interval may be reversed.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear creates a linear scale.
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Domain returns the domain endpoints in construction order.
func (l Linear) Domain() [2]float64 { return [2]float64{l.d0, l.d1} }

// Map returns the pixel position of v. A zero-width domain maps to the middle
// of the range.
func (l Linear) Map(v float64) float64 {
	u := mscale.Linear{Min: l.d0, Max: l.d1}.Map(v)
	return l.r0 + u*(l.r1-l.r0)
}

// Ticks returns round tick values inside the domain, ordered from d0
// towards d1. count is a target rather than a limit: of the two tick levels
// around count, the one whose size is nearest to it wins.
func (l Linear) Ticks(count int) []float64 {
	lo, hi := math.Min(l.d0, l.d1), math.Max(l.d0, l.d1)
	if lo == hi {
		return []float64{lo}
	}

	// major is the densest level with at most count ticks; minor is the
	// next denser level.
	major, minor := mscale.Linear{Min: lo, Max: hi}.Ticks(mscale.TickOptions{Max: count})
	if len(minor) > 0 && abs(len(minor)-count) < abs(len(major)-count) {
		major = minor
	}

	// Tick arithmetic can overshoot the bounds by an ulp or two.
	eps := (hi - lo) * 1e-9
	ticks := make([]float64, 0, len(major))
	for _, v := range major {
		if v >= lo-eps && v <= hi+eps {
			ticks = append(ticks, v)
		}
	}

	if l.d0 > l.d1 {
		for i, j := 0, len(ticks)-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}
	return ticks
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
