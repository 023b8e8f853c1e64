// Command validate checks a rendered heat map page against the dataset it was
// built from. It verifies the element ids, SVG size, one cell per record with
// the right data attributes, axis labels and the legend.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -dataset data/mock/global-temperature.json \
//	  -page heatmap.html
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/couchcryptid/temperature-heatmap/internal/chart"
	"github.com/couchcryptid/temperature-heatmap/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	datasetPath := flag.String("dataset", "", "path to the dataset JSON the page was rendered from")
	pagePath := flag.String("page", "", "path to the rendered HTML page")
	flag.Parse()

	if *datasetPath == "" || *pagePath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*datasetPath, *pagePath); code != 0 {
		os.Exit(code)
	}
}

func run(datasetPath, pagePath string) int {
	fmt.Println("=== Heat Map Page Validation ===")
	fmt.Println()

	raw, err := os.ReadFile(datasetPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read dataset: %v\n", err)
		return 1
	}
	ds, err := domain.ParseDataset(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: parse dataset: %v\n", err)
		return 1
	}

	f, err := os.Open(pagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: open page: %v\n", err)
		return 1
	}
	doc, err := html.Parse(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: parse page: %v\n", err)
		return 1
	}

	phases := validate(doc, ds)

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d, years: %d\n", len(ds.MonthlyVariance), len(ds.Years()))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func validate(doc *html.Node, ds domain.Dataset) []*phase {
	return []*phase{
		validateIDs(doc),
		validateSVGSize(doc),
		validateCells(doc, ds),
		validateXAxis(doc, ds),
		validateYAxis(doc),
		validateLegend(doc),
	}
}

// ── Phases ──

func validateIDs(doc *html.Node) *phase {
	p := &phase{name: "Element ids"}
	for _, id := range []string{
		chart.TitleID, chart.DescriptionID, chart.XAxisID,
		chart.YAxisID, chart.LegendID, chart.TooltipID,
	} {
		if n := len(findAll(doc, withID(id))); n != 1 {
			p.errorf("#%s: found %d elements, want 1", id, n)
		}
	}
	return p
}

func validateSVGSize(doc *html.Node) *phase {
	p := &phase{name: "SVG dimensions"}
	svgs := findAll(doc, withTag("svg"))
	if len(svgs) != 1 {
		p.errorf("found %d svg elements, want 1", len(svgs))
		return p
	}
	if w := attr(svgs[0], "width"); w != strconv.Itoa(chart.Width) {
		p.errorf("width = %q, want %d", w, chart.Width)
	}
	if h := attr(svgs[0], "height"); h != strconv.Itoa(chart.Height) {
		p.errorf("height = %q, want %d", h, chart.Height)
	}
	return p
}

func validateCells(doc *html.Node, ds domain.Dataset) *phase {
	p := &phase{name: "Cells (one per record)"}
	cells := findAll(doc, withClass("rect", "cell"))
	if len(cells) != len(ds.MonthlyVariance) {
		p.errorf("found %d cells, want %d", len(cells), len(ds.MonthlyVariance))
		return p
	}

	for i, c := range cells {
		r := ds.MonthlyVariance[i]
		if got := attr(c, "data-year"); got != strconv.Itoa(r.Year) {
			p.errorf("cell %d: data-year = %q, want %d", i, got, r.Year)
		}
		if got := attr(c, "data-month"); got != strconv.Itoa(r.Month-1) {
			p.errorf("cell %d: data-month = %q, want %d", i, got, r.Month-1)
		}
		temp, err := strconv.ParseFloat(attr(c, "data-temp"), 64)
		if err != nil {
			p.errorf("cell %d: data-temp: %v", i, err)
		} else if want := r.Temperature(ds.BaseTemperature); math.Abs(temp-want) > 1e-9 {
			p.errorf("cell %d: data-temp = %g, want %g", i, temp, want)
		}
		if attr(c, "fill") == "" {
			p.errorf("cell %d: missing fill", i)
		}
	}
	return p
}

func validateXAxis(doc *html.Node, ds domain.Dataset) *phase {
	p := &phase{name: "X-axis year labels"}
	axis := findAll(doc, withID(chart.XAxisID))
	if len(axis) != 1 {
		p.errorf("missing #%s", chart.XAxisID)
		return p
	}

	var want []string
	for i, y := range ds.Years() {
		if i%chart.YearTickInterval == 0 {
			want = append(want, strconv.Itoa(y))
		}
	}
	got := tickLabels(axis[0])
	if strings.Join(got, ",") != strings.Join(want, ",") {
		p.errorf("labels = %v, want %v", got, want)
	}
	return p
}

func validateYAxis(doc *html.Node) *phase {
	p := &phase{name: "Y-axis month labels"}
	axis := findAll(doc, withID(chart.YAxisID))
	if len(axis) != 1 {
		p.errorf("missing #%s", chart.YAxisID)
		return p
	}
	got := tickLabels(axis[0])
	want := chart.MonthNames()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		p.errorf("labels = %v, want %v", got, want)
	}
	return p
}

func validateLegend(doc *html.Node) *phase {
	p := &phase{name: "Legend swatches"}
	legend := findAll(doc, withID(chart.LegendID))
	if len(legend) != 1 {
		p.errorf("missing #%s", chart.LegendID)
		return p
	}
	rects := findAll(legend[0], withTag("rect"))
	if len(rects) != chart.LegendSwatches {
		p.errorf("found %d swatches, want %d", len(rects), chart.LegendSwatches)
	}
	for i, r := range rects {
		if attr(r, "fill") == "" {
			p.errorf("swatch %d: missing fill", i)
		}
	}
	if len(tickLabels(legend[0])) == 0 {
		p.errorf("legend axis has no ticks")
	}
	return p
}

// ── HTML helpers ──

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func withID(id string) func(*html.Node) bool {
	return func(n *html.Node) bool { return attr(n, "id") == id }
}

func withTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == tag }
}

func withClass(tag, class string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == tag && attr(n, "class") == class }
}

func findAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
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
	walk(root)
	return out
}

func tickLabels(axis *html.Node) []string {
	ticks := findAll(axis, withClass("g", "tick"))
	labels := make([]string, 0, len(ticks))
	for _, t := range ticks {
		labels = append(labels, strings.TrimSpace(textContent(t)))
	}
	return labels
}

func textContent(n *html.Node) string {
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
	return sb.String()
}
