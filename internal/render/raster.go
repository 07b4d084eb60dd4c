// Package render rasterizes a parsed ANSI document into a PNG image,
// preserving monospaced character alignment and per-character color.
package render

import (
	"github.com/vkondrat/cowpost/internal/ansi"
)

// Options control canvas geometry and colors.
type Options struct {
	// Padding is the pixel margin on all four sides.
	Padding int

	// MinWidth and MinHeight keep degenerate input displayable.
	MinWidth  int
	MinHeight int

	// LineSpacing is added to the cell height between rows.
	LineSpacing int

	// Background fills the canvas before any text is drawn.
	Background ansi.RGB
}

// DefaultOptions returns the geometry used by the stock cowpost image.
func DefaultOptions() Options {
	return Options{
		Padding:     20,
		MinWidth:    200,
		MinHeight:   120,
		LineSpacing: 4,
		Background:  ansi.RGB{R: 11, G: 14, B: 20},
	}
}

// Metrics is the fixed character cell derived from a monospace font face.
type Metrics struct {
	CellWidth  int
	CellHeight int
	Ascent     int
}

// TextRun is one same-colored horizontal span drawn as a single string.
// X and Y are the top-left pixel of the run's first cell.
type TextRun struct {
	Text  string
	X, Y  int
	Color ansi.RGB
}

// Canvas is a deterministic draw plan: pixel dimensions, a background fill,
// and text runs in top-to-bottom, left-to-right order.
type Canvas struct {
	Width      int
	Height     int
	Background ansi.RGB
	Runs       []TextRun
}

// Layout computes the draw plan for a document. Horizontal offsets are
// always derived from the character index, never accumulated from prior run
// widths, so columns stay on the cell grid no matter how often the color
// changes.
func Layout(doc ansi.Document, m Metrics, opts Options) Canvas {
	lineHeight := m.CellHeight + opts.LineSpacing

	width := opts.Padding*2 + doc.Width()*m.CellWidth
	if width < opts.MinWidth {
		width = opts.MinWidth
	}
	height := opts.Padding*2 + len(doc)*lineHeight
	if height < opts.MinHeight {
		height = opts.MinHeight
	}

	c := Canvas{Width: width, Height: height, Background: opts.Background}
	y := opts.Padding
	for _, line := range doc {
		for _, run := range line.Runs() {
			c.Runs = append(c.Runs, TextRun{
				Text:  run.Text,
				X:     opts.Padding + run.Start*m.CellWidth,
				Y:     y,
				Color: run.Color,
			})
		}
		y += lineHeight
	}
	return c
}
