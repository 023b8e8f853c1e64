package chart

import (
	"strconv"
	"strings"
)

// Offset of the tooltip's top-left corner from the pointer.
const (
	TooltipOffsetX = 10
	TooltipOffsetY = -10
)

// Tooltip is the single floating panel shared by every cell. Only the chart's
// pointer handlers mutate it; it keeps no memory of earlier hovers beyond the
// content last shown.
type Tooltip struct {
	ID      string
	Visible bool
	Left    float64 // page coordinates
	Top     float64
	Year    int // mirrored into data-year
	Lines   []string
}

// Enter shows the tooltip for c next to the pointer.
func (t *Tooltip) Enter(c Cell, pointer Point) {
	t.Visible = true
	t.Left = pointer.X + TooltipOffsetX
	t.Top = pointer.Y + TooltipOffsetY
	t.Year = c.Year
	t.Lines = TooltipLines(c)
}

// Leave hides the tooltip. The last content stays in place, invisible.
func (t *Tooltip) Leave() { t.Visible = false }

// Opacity is 1 while visible and 0 otherwise.
func (t *Tooltip) Opacity() float64 {
	if t.Visible {
		return 1
	}
	return 0
}

// Text returns the tooltip lines joined with newlines.
func (t *Tooltip) Text() string { return strings.Join(t.Lines, "\n") }

// TooltipLines returns the tooltip content for c.
func TooltipLines(c Cell) []string {
	return []string{
		"Year: " + strconv.Itoa(c.Year),
		"Month: " + MonthName(c.Month+1),
		"Temperature: " + FormatTemperature(c.Temp) + "°C",
	}
}
