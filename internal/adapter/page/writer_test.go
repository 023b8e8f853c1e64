package page

import (
	"bytes"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/couchcryptid/temperature-heatmap/internal/chart"
	"github.com/couchcryptid/temperature-heatmap/internal/domain"
)

func testDataset(nYears int) domain.Dataset {
	ds := domain.Dataset{BaseTemperature: 8.66}
	for y := range nYears {
		for m := 1; m <= 12; m++ {
			ds.MonthlyVariance = append(ds.MonthlyVariance, domain.MonthlyRecord{
				Year:     1753 + y,
				Month:    m,
				Variance: float64((y*12+m)%7) - 3,
			})
		}
	}
	return ds
}

func render(t *testing.T, ds domain.Dataset) (*html.Node, string) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, chart.Build(ds)))
	doc, err := html.Parse(strings.NewReader(buf.String()))
	require.NoError(t, err)
	return doc, buf.String()
}

func attrOf(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func byID(t *testing.T, doc *html.Node, id string) *html.Node {
	t.Helper()
	nodes := findAll(doc, func(n *html.Node) bool {
		v, ok := attrOf(n, "id")
		return ok && v == id
	})
	require.Len(t, nodes, 1, "element #%s", id)
	return nodes[0]
}

func byTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == tag }
}

func hasClass(tag, class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		v, _ := attrOf(n, "class")
		return n.Data == tag && v == class
	}
}

func text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

func TestWrite_ContractIDs(t *testing.T) {
	doc, _ := render(t, testDataset(3))

	assert.Equal(t, "h1", byID(t, doc, chart.TitleID).Data)
	assert.Equal(t, "p", byID(t, doc, chart.DescriptionID).Data)
	assert.Equal(t, "div", byID(t, doc, chart.TooltipID).Data)
	assert.Equal(t, "g", byID(t, doc, chart.XAxisID).Data)
	assert.Equal(t, "g", byID(t, doc, chart.YAxisID).Data)
	assert.Equal(t, "g", byID(t, doc, chart.LegendID).Data)

	assert.Equal(t, chart.Title, text(byID(t, doc, chart.TitleID)))
	assert.Equal(t, "1753 - 1755: Base temperature 8.66°C", text(byID(t, doc, chart.DescriptionID)))
}

func TestWrite_SVGSize(t *testing.T) {
	doc, out := render(t, testDataset(1))

	svgs := findAll(doc, byTag("svg"))
	require.Len(t, svgs, 1)
	w, _ := attrOf(svgs[0], "width")
	h, _ := attrOf(svgs[0], "height")
	assert.Equal(t, "1200", w)
	assert.Equal(t, "500", h)

	assert.NotContains(t, out, "<?xml", "svg prolog must not leak into the HTML body")
}

func TestWrite_Cells(t *testing.T) {
	ds := domain.Dataset{
		BaseTemperature: 8.66,
		MonthlyVariance: []domain.MonthlyRecord{
			{Year: 2000, Month: 1, Variance: 1.34},
			{Year: 2000, Month: 2, Variance: -0.5},
			{Year: 2001, Month: 1, Variance: 0.25},
		},
	}
	doc, _ := render(t, ds)
	c := chart.Build(ds)

	rects := findAll(doc, hasClass("rect", "cell"))
	require.Len(t, rects, len(ds.MonthlyVariance))

	for i, r := range rects {
		year, _ := attrOf(r, "data-year")
		month, _ := attrOf(r, "data-month")
		temp, _ := attrOf(r, "data-temp")
		fill, _ := attrOf(r, "fill")

		assert.Equal(t, strconv.Itoa(c.Cells[i].Year), year)
		assert.Equal(t, strconv.Itoa(c.Cells[i].Month), month)
		assert.Equal(t, c.Cells[i].Fill, fill)

		got, err := strconv.ParseFloat(temp, 64)
		require.NoError(t, err)
		assert.InDelta(t, c.Cells[i].Temp, got, 1e-9)
	}

	month, _ := attrOf(rects[0], "data-month")
	temp, _ := attrOf(rects[0], "data-temp")
	assert.Equal(t, "0", month)
	v, err := strconv.ParseFloat(temp, 64)
	require.NoError(t, err)
	assert.Equal(t, "10.00", chart.FormatTemperature(v))
}

func TestWrite_CellGeometryMatchesBandScales(t *testing.T) {
	// 1753-2015 gives a fractional year bandwidth of 1000/263 px.
	ds := testDataset(263)
	doc, _ := render(t, ds)
	c := chart.Build(ds)

	rects := findAll(doc, hasClass("rect", "cell"))
	require.Len(t, rects, 263*12)

	floatAttr := func(n *html.Node, key string) float64 {
		v, _ := attrOf(n, key)
		f, err := strconv.ParseFloat(v, 64)
		require.NoError(t, err, key)
		return f
	}

	bandwidth := 1000.0 / 263
	for i, r := range rects {
		rec := ds.MonthlyVariance[i]
		x, ok := c.YearPosition(rec.Year)
		require.True(t, ok)
		y, ok := c.MonthPosition(rec.Month)
		require.True(t, ok)

		assert.InDelta(t, x, floatAttr(r, "x"), 1e-6, "cell %d x", i)
		assert.InDelta(t, y, floatAttr(r, "y"), 1e-6, "cell %d y", i)
		assert.InDelta(t, bandwidth, floatAttr(r, "width"), 1e-6, "cell %d width", i)
		assert.InDelta(t, 25, floatAttr(r, "height"), 1e-6, "cell %d height", i)
	}

	// yearScale(1754) sits a fraction of a pixel short of 104.
	assert.InDelta(t, 103.802281, floatAttr(rects[12], "x"), 1e-6)
}

func TestWrite_Axes(t *testing.T) {
	doc, _ := render(t, testDataset(25))

	xTicks := findAll(byID(t, doc, chart.XAxisID), hasClass("g", "tick"))
	var labels []string
	for _, tick := range xTicks {
		labels = append(labels, text(tick))
	}
	assert.Equal(t, []string{"1753", "1763", "1773"}, labels)

	yTicks := findAll(byID(t, doc, chart.YAxisID), hasClass("g", "tick"))
	require.Len(t, yTicks, 12)
	assert.Equal(t, "January", text(yTicks[0]))
	assert.Equal(t, "December", text(yTicks[11]))

	tr, _ := attrOf(byID(t, doc, chart.XAxisID), "transform")
	assert.Equal(t, "translate(0,400)", tr)
	tr, _ = attrOf(byID(t, doc, chart.YAxisID), "transform")
	assert.Equal(t, "translate(100,0)", tr)
}

func TestWrite_Legend(t *testing.T) {
	ds := testDataset(2)
	doc, _ := render(t, ds)
	c := chart.Build(ds)

	legend := byID(t, doc, chart.LegendID)
	tr, _ := attrOf(legend, "transform")
	assert.Equal(t, "translate(100,460)", tr)

	rects := findAll(legend, byTag("rect"))
	require.Len(t, rects, chart.LegendSwatches)
	for i, r := range rects {
		fill, _ := attrOf(r, "fill")
		assert.Equal(t, c.Legend.Swatches[i].Fill, fill)
	}

	x, _ := attrOf(rects[9], "x")
	w, _ := attrOf(rects[9], "width")
	xf, err := strconv.ParseFloat(x, 64)
	require.NoError(t, err)
	wf, err := strconv.ParseFloat(w, 64)
	require.NoError(t, err)
	assert.InDelta(t, 270, xf, 1e-6)
	assert.InDelta(t, 30, wf, 1e-6)

	ticks := findAll(legend, hasClass("g", "tick"))
	assert.NotEmpty(t, ticks)
	for _, tick := range ticks {
		label := text(tick)
		assert.Regexp(t, `^-?\d+\.\d$`, label)
	}
}

func TestWrite_TooltipScript(t *testing.T) {
	doc, _ := render(t, testDataset(1))

	tooltip := byID(t, doc, chart.TooltipID)
	assert.Nil(t, tooltip.FirstChild, "tooltip starts empty")

	scripts := findAll(doc, byTag("script"))
	require.Len(t, scripts, 1)
	js := text(scripts[0])
	assert.Contains(t, js, `"January"`)
	assert.Contains(t, js, `"December"`)
	assert.Contains(t, js, "mouseover")
	assert.Contains(t, js, "mouseout")
	assert.Contains(t, js, "toFixed(2)")
	assert.Contains(t, js, `setAttribute("data-year"`)
}

func TestWrite_GeneratedAt(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	chart.SetClock(clockwork.NewFakeClockAt(at))
	t.Cleanup(func() { chart.SetClock(clockwork.NewRealClock()) })

	doc, _ := render(t, testDataset(1))

	metas := findAll(doc, func(n *html.Node) bool {
		name, _ := attrOf(n, "name")
		return n.Data == "meta" && name == "generated"
	})
	require.Len(t, metas, 1)
	content, _ := attrOf(metas[0], "content")
	assert.Equal(t, "2024-03-01T12:00:00Z", content)
}

func TestWriteSVG_Standalone(t *testing.T) {
	var buf bytes.Buffer
	WriteSVG(&buf, chart.Build(testDataset(1)))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, "<title>"+chart.Title+"</title>")
	assert.Equal(t, 12, strings.Count(out, `class="cell"`))
	assert.Contains(t, out, `width="1200" height="500"`)
}

func TestWrite_TempAttributeIsRawValue(t *testing.T) {
	ds := domain.Dataset{
		BaseTemperature: 8.66,
		MonthlyVariance: []domain.MonthlyRecord{{Year: 2000, Month: 1, Variance: 1.34}},
	}
	doc, _ := render(t, ds)

	rects := findAll(doc, hasClass("rect", "cell"))
	require.Len(t, rects, 1)
	temp, _ := attrOf(rects[0], "data-temp")
	assert.Equal(t, "10", temp)
}

func TestNum(t *testing.T) {
	assert.Equal(t, "103.8", num(103.8022))
	assert.Equal(t, "400", num(400))
	assert.Equal(t, "-0.5", num(-0.5))
}
