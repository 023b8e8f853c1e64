// Package pipeline wires the loader, the chart builder and a page sink into a
// single pass. It is the one place where failures are logged.
package pipeline
