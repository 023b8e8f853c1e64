package chart

import "github.com/couchcryptid/temperature-heatmap/internal/scale"

const (
	LegendWidth        = 300
	LegendSwatches     = 10
	LegendSwatchHeight = 10

	// legendBaseline is the distance from the bottom of the chart to the
	// legend axis line.
	legendBaseline = 40
)

// Legend is a strip of colour swatches over the colour domain with a linear
// temperature axis underneath.
type Legend struct {
	ID       string
	Offset   Point
	Swatches []Swatch
	Axis     Axis
}

// Swatch is one legend rectangle, relative to the legend's Offset.
type Swatch struct {
	X, Y          float64
	Width, Height float64
	Value         float64 // temperature the fill was sampled at
	Fill          string
}

func newLegend(colors scale.Sequential) Legend {
	d := colors.Domain()
	axisScale := scale.NewLinear(d[0], d[1], 0, LegendWidth)

	const w = float64(LegendWidth) / LegendSwatches
	swatches := make([]Swatch, LegendSwatches)
	for i := range swatches {
		v := d[0] + float64(i)/LegendSwatches*(d[1]-d[0])
		swatches[i] = Swatch{
			X:      w * float64(i),
			Y:      -LegendSwatchHeight,
			Width:  w,
			Height: LegendSwatchHeight,
			Value:  v,
			Fill:   colors.Fill(v),
		}
	}

	values := axisScale.Ticks(LegendSwatches)
	ticks := make([]Tick, len(values))
	for i, v := range values {
		ticks[i] = Tick{Pos: axisScale.Map(v), Label: FormatLegendTick(v)}
	}

	return Legend{
		ID:       LegendID,
		Offset:   Point{X: Padding, Y: Height - legendBaseline},
		Swatches: swatches,
		Axis: Axis{
			Orient: Bottom,
			Range:  [2]float64{0, LegendWidth},
			Ticks:  ticks,
		},
	}
}
