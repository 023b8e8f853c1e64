// Package page serialises a chart.Chart into a self-contained HTML document
// and saves it to a file or stream.
package page
