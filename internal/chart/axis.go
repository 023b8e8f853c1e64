package chart

import (
	"strconv"

	"github.com/couchcryptid/temperature-heatmap/internal/scale"
)

// Orientation is the side of the axis line that ticks and labels sit on.
type Orientation int

const (
	Bottom Orientation = iota
	Left
)

// TickSize is the length of a tick mark in pixels.
const TickSize = 6

// Axis is an axis group: a domain line spanning Range plus labelled ticks,
// translated by Offset.
type Axis struct {
	ID     string
	Orient Orientation
	Offset Point
	Range  [2]float64
	Ticks  []Tick
}

// Tick is one labelled tick; Pos is along the axis, before Offset.
type Tick struct {
	Pos   float64
	Label string
}

func yearAxis(xs *scale.Band[int], years []int) Axis {
	half := xs.Bandwidth() / 2
	ticks := make([]Tick, 0, (len(years)+YearTickInterval-1)/YearTickInterval)
	for i, year := range years {
		if i%YearTickInterval != 0 {
			continue
		}
		x, _ := xs.Map(year)
		ticks = append(ticks, Tick{Pos: x + half, Label: strconv.Itoa(year)})
	}
	return Axis{
		ID:     XAxisID,
		Orient: Bottom,
		Offset: Point{Y: Height - Padding},
		Range:  [2]float64{Padding, Width - Padding},
		Ticks:  ticks,
	}
}

func monthAxis(ys *scale.Band[int]) Axis {
	half := ys.Bandwidth() / 2
	months := ys.Domain()
	ticks := make([]Tick, len(months))
	for i, m := range months {
		y, _ := ys.Map(m)
		ticks[i] = Tick{Pos: y + half, Label: MonthName(m)}
	}
	return Axis{
		ID:     YAxisID,
		Orient: Left,
		Offset: Point{X: Padding},
		Range:  [2]float64{Padding, Height - Padding},
		Ticks:  ticks,
	}
}

// Labels returns the tick labels in axis order.
func (a Axis) Labels() []string {
	labels := make([]string, len(a.Ticks))
	for i, t := range a.Ticks {
		labels[i] = t.Label
	}
	return labels
}
