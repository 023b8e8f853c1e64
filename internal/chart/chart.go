package chart

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
	"github.com/couchcryptid/temperature-heatmap/internal/scale"
)

// Fixed layout of the heat map, in pixels.
const (
	Width   = 1200
	Height  = 500
	Padding = 100

	// YearTickInterval keeps the x-axis readable: only every tenth distinct
	// year gets a label.
	YearTickInterval = 10

	Title = "Monthly Global Land-Surface Temperature"
)

// Element ids on the rendering surface. External checks query these.
const (
	TitleID       = "title"
	DescriptionID = "description"
	XAxisID       = "x-axis"
	YAxisID       = "y-axis"
	LegendID      = "legend"
	TooltipID     = "tooltip"
)

// Point is a position in pixels.
type Point struct {
	X, Y float64
}

// Chart is the complete render target for one dataset. It holds every
// element the page writer emits, in float pixel coordinates.
type Chart struct {
	Title       string
	Description string
	Width       float64
	Height      float64

	XAxis   Axis
	YAxis   Axis
	Cells   []Cell
	Legend  Legend
	Tooltip *Tooltip

	GeneratedAt time.Time

	years  *scale.Band[int]
	months *scale.Band[int]
	colors scale.Sequential
}

// Cell is one heat-map rectangle, bound to exactly one MonthlyRecord.
type Cell struct {
	X, Y          float64
	Width, Height float64
	Fill          string

	Year  int
	Month int     // zero-based: 0 = January
	Temp  float64 // base + variance, °C
}

// Build lays out the heat map for ds. It never fails: records whose year or
// month fall outside the scales get NaN coordinates, and validation of that
// is left to the loader.
func Build(ds domain.Dataset) *Chart {
	years := ds.Years()
	xs := scale.NewBand(years, Padding, Width-Padding)
	ys := scale.NewBand(monthDomain(), Padding, Height-Padding)

	// Domain runs hot to cold so warm months take the red end of RdBu.
	base := ds.BaseTemperature
	lo, hi := ds.VarianceBounds()
	colors := scale.NewSequential(scale.RdBu, base+hi, base+lo)

	c := &Chart{
		Title:       Title,
		Description: describe(ds),
		Width:       Width,
		Height:      Height,
		Tooltip:     &Tooltip{ID: TooltipID},
		GeneratedAt: clock.Now().UTC(),
		years:       xs,
		months:      ys,
		colors:      colors,
	}

	c.XAxis = yearAxis(xs, years)
	c.YAxis = monthAxis(ys)
	c.Cells = cells(ds, xs, ys, colors)
	c.Legend = newLegend(colors)

	return c
}

func cells(ds domain.Dataset, xs, ys *scale.Band[int], colors scale.Sequential) []Cell {
	out := make([]Cell, len(ds.MonthlyVariance))
	for i, r := range ds.MonthlyVariance {
		x, ok := xs.Map(r.Year)
		if !ok {
			x = math.NaN()
		}
		y, ok := ys.Map(r.Month)
		if !ok {
			y = math.NaN()
		}
		temp := r.Temperature(ds.BaseTemperature)
		out[i] = Cell{
			X:      x,
			Y:      y,
			Width:  xs.Bandwidth(),
			Height: ys.Bandwidth(),
			Fill:   colors.Fill(temp),
			Year:   r.Year,
			Month:  r.Month - 1,
			Temp:   temp,
		}
	}
	return out
}

func describe(ds domain.Dataset) string {
	base := strconv.FormatFloat(ds.BaseTemperature, 'f', -1, 64)
	if len(ds.MonthlyVariance) == 0 {
		return fmt.Sprintf("Base temperature %s°C", base)
	}
	first, last := ds.YearSpan()
	return fmt.Sprintf("%d - %d: Base temperature %s°C", first, last, base)
}

func monthDomain() []int {
	months := make([]int, 12)
	for i := range months {
		months[i] = i + 1
	}
	return months
}

// ColorDomain returns the colour scale's endpoints: the hottest absolute
// temperature first, the coldest second.
func (c *Chart) ColorDomain() [2]float64 { return c.colors.Domain() }

// Fill returns the colour the chart uses for an absolute temperature.
func (c *Chart) Fill(temp float64) string { return c.colors.Fill(temp) }

// YearPosition returns the left edge of year's column.
func (c *Chart) YearPosition(year int) (float64, bool) { return c.years.Map(year) }

// MonthPosition returns the top edge of a 1-based month's row.
func (c *Chart) MonthPosition(month int) (float64, bool) { return c.months.Map(month) }

// PointerEnter dispatches a pointer-enter on cell i to the tooltip. It reports
// false if i is not a cell.
func (c *Chart) PointerEnter(i int, at Point) bool {
	if i < 0 || i >= len(c.Cells) {
		return false
	}
	c.Tooltip.Enter(c.Cells[i], at)
	return true
}

// PointerLeave dispatches a pointer-leave from any cell to the tooltip.
func (c *Chart) PointerLeave() { c.Tooltip.Leave() }
