package page

import (
	"bytes"
	"embed"
	"fmt"
	"html"
	"html/template"
	"io"
	"math"
	"strconv"
	"time"

	svg "github.com/ajstarks/svgo/float"

	"github.com/couchcryptid/temperature-heatmap/internal/chart"
)

const (
	// frameDecimals covers the svg size, tick marks and labels, which all
	// sit on whole pixels.
	frameDecimals = 0
	// bandDecimals covers cells and legend swatches, which sit at band
	// scale positions.
	bandDecimals = 6
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templatesFS, "templates/page.html"))

// view is the template model for templates/page.html.
type view struct {
	Title         string
	Description   string
	TitleID       string
	DescriptionID string
	TooltipID     string
	GeneratedAt   string
	SVG           template.HTML
	MonthNames    []string
	OffsetX       int
	OffsetY       int
}

// Write renders c as a self-contained HTML page: title, description, inline
// SVG heat map and the tooltip script.
func Write(w io.Writer, c *chart.Chart) error {
	var buf bytes.Buffer
	WriteSVG(&buf, c)

	return pageTmpl.Execute(w, view{
		Title:         c.Title,
		Description:   c.Description,
		TitleID:       chart.TitleID,
		DescriptionID: chart.DescriptionID,
		TooltipID:     c.Tooltip.ID,
		GeneratedAt:   c.GeneratedAt.Format(time.RFC3339),
		SVG:           template.HTML(inlineSVG(buf.Bytes())), //nolint:gosec // markup produced by svgo, text escaped there
		MonthNames:    chart.MonthNames(),
		OffsetX:       chart.TooltipOffsetX,
		OffsetY:       chart.TooltipOffsetY,
	})
}

// WriteSVG writes the chart as a standalone SVG document.
func WriteSVG(w io.Writer, c *chart.Chart) {
	canvas := svg.New(w)
	canvas.Decimals = frameDecimals
	canvas.Start(c.Width, c.Height, `font-family="sans-serif"`)
	canvas.Title(c.Title)
	canvas.Desc(c.Description)

	writeAxis(canvas, c.XAxis)
	writeAxis(canvas, c.YAxis)
	writeCells(canvas, c.Cells)
	writeLegend(canvas, c.Legend)

	canvas.End()
}

// inlineSVG drops the XML prolog svgo emits so the markup can sit inside an
// HTML body.
func inlineSVG(b []byte) []byte {
	if i := bytes.Index(b, []byte("<svg")); i > 0 {
		return b[i:]
	}
	return b
}

func writeCells(canvas *svg.SVG, cells []chart.Cell) {
	canvas.Decimals = bandDecimals
	defer func() { canvas.Decimals = frameDecimals }()

	for _, c := range cells {
		canvas.Rect(c.X, c.Y, c.Width, c.Height,
			`class="cell"`,
			attr("fill", c.Fill),
			attr("data-month", strconv.Itoa(c.Month)),
			attr("data-year", strconv.Itoa(c.Year)),
			// Raw value; the tooltip script applies toFixed(2).
			attr("data-temp", strconv.FormatFloat(c.Temp, 'f', -1, 64)),
		)
	}
}

func writeLegend(canvas *svg.SVG, l chart.Legend) {
	canvas.Group(attr("id", l.ID), translate(l.Offset))

	canvas.Decimals = bandDecimals
	for _, s := range l.Swatches {
		canvas.Rect(s.X, s.Y, s.Width, s.Height,
			attr("fill", s.Fill),
			attr("data-value", num(s.Value)),
		)
	}
	canvas.Decimals = frameDecimals

	writeAxis(canvas, l.Axis)
	canvas.Gend()
}

func writeAxis(canvas *svg.SVG, a chart.Axis) {
	attrs := []string{`fill="none"`, `font-size="10"`}
	if a.ID != "" {
		attrs = append(attrs, attr("id", a.ID))
	}
	if a.Orient == chart.Left {
		attrs = append(attrs, `text-anchor="end"`)
	} else {
		attrs = append(attrs, `text-anchor="middle"`)
	}
	if a.Offset != (chart.Point{}) {
		attrs = append(attrs, translate(a.Offset))
	}
	canvas.Group(attrs...)

	r0, r1 := num(a.Range[0]), num(a.Range[1])
	switch a.Orient {
	case chart.Left:
		canvas.Path(fmt.Sprintf("M-%d,%sH0V%sH-%d", chart.TickSize, r0, r1, chart.TickSize),
			`class="domain"`, `stroke="currentColor"`)
	default:
		canvas.Path(fmt.Sprintf("M%s,%dV0H%sV%d", r0, chart.TickSize, r1, chart.TickSize),
			`class="domain"`, `stroke="currentColor"`)
	}

	const labelGap = 3
	for _, t := range a.Ticks {
		switch a.Orient {
		case chart.Left:
			canvas.Group(`class="tick"`, translate(chart.Point{Y: t.Pos}))
			canvas.Line(-chart.TickSize, 0, 0, 0, `stroke="currentColor"`)
			canvas.Text(-(chart.TickSize + labelGap), 0, t.Label, `fill="currentColor"`, `dy="0.32em"`)
		default:
			canvas.Group(`class="tick"`, translate(chart.Point{X: t.Pos}))
			canvas.Line(0, 0, 0, chart.TickSize, `stroke="currentColor"`)
			canvas.Text(0, chart.TickSize+labelGap, t.Label, `fill="currentColor"`, `dy="0.71em"`)
		}
		canvas.Gend()
	}

	canvas.Gend()
}

func attr(name, value string) string {
	return fmt.Sprintf(`%s="%s"`, name, html.EscapeString(value))
}

func translate(p chart.Point) string {
	return fmt.Sprintf(`transform="translate(%s,%s)"`, num(p.X), num(p.Y))
}

// num formats v with at most two decimals.
func num(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
