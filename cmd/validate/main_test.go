package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/couchcryptid/temperature-heatmap/internal/adapter/page"
	"github.com/couchcryptid/temperature-heatmap/internal/chart"
	"github.com/couchcryptid/temperature-heatmap/internal/domain"
)

func dataset(nYears int) domain.Dataset {
	ds := domain.Dataset{BaseTemperature: 8.66}
	for y := range nYears {
		for m := 1; m <= 12; m++ {
			ds.MonthlyVariance = append(ds.MonthlyVariance, domain.MonthlyRecord{
				Year: 1900 + y, Month: m, Variance: float64(m-6) / 4,
			})
		}
	}
	return ds
}

func renderPage(t *testing.T, ds domain.Dataset) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, page.Write(&buf, chart.Build(ds)))
	return buf.String()
}

func parse(t *testing.T, s string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(s))
	require.NoError(t, err)
	return doc
}

func TestValidate_RenderedPagePasses(t *testing.T) {
	ds := dataset(23)
	doc := parse(t, renderPage(t, ds))

	for _, p := range validate(doc, ds) {
		assert.True(t, p.passed(), "%s: %v", p.name, p.errors)
	}
}

func TestValidate_DetectsMissingCell(t *testing.T) {
	ds := dataset(2)
	out := renderPage(t, ds)

	// Validate against a dataset with one more record than the page shows.
	bigger := ds
	bigger.MonthlyVariance = append(append([]domain.MonthlyRecord(nil), ds.MonthlyVariance...),
		domain.MonthlyRecord{Year: 1901, Month: 12, Variance: 0})

	p := validateCells(parse(t, out), bigger)
	require.False(t, p.passed())
	assert.Contains(t, p.errors[0], "found 24 cells, want 25")
}

func TestValidate_DetectsWrongYearLabels(t *testing.T) {
	doc := parse(t, renderPage(t, dataset(11)))

	p := validateXAxis(doc, dataset(21))
	assert.False(t, p.passed())
}

func TestValidate_DetectsMissingIDs(t *testing.T) {
	doc := parse(t, `<html><body><h1 id="title">x</h1><svg width="1200" height="500"></svg></body></html>`)

	ids := validateIDs(doc)
	assert.Len(t, ids.errors, 5)

	size := validateSVGSize(doc)
	assert.True(t, size.passed())

	legend := validateLegend(doc)
	assert.False(t, legend.passed())
}
