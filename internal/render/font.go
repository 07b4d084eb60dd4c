package render

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// ErrNoFont means none of the candidate font files exist. Rasterization
// never proceeds with guessed metrics.
var ErrNoFont = errors.New("render: no monospace TTF font found; install DejaVu Sans Mono or set font.path")

// defaultFontPaths are common monospace TTF locations on Linux, tried after
// the configured path.
var defaultFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSansMono.ttf",
	"/usr/share/fonts/truetype/liberation2/LiberationMono-Regular.ttf",
	"/usr/share/fonts/TTF/DejaVuSansMono.ttf",
}

// fontCandidates returns the ordered list of paths to try.
func fontCandidates(requestedPath string) []string {
	var candidates []string
	if requestedPath != "" {
		candidates = append(candidates, requestedPath)
	}
	return append(candidates, defaultFontPaths...)
}

// LoadFace loads a monospace font face from the requested path or the first
// existing default candidate. Size is in points at 72 DPI.
func LoadFace(requestedPath string, size float64) (font.Face, error) {
	return loadFace(fontCandidates(requestedPath), size)
}

func loadFace(candidates []string, size float64) (font.Face, error) {
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		ft, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("render: cannot parse font %s: %w", path, err)
		}
		face, err := opentype.NewFace(ft, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, fmt.Errorf("render: cannot create face for %s: %w", path, err)
		}
		return face, nil
	}
	return nil, ErrNoFont
}

// FaceMetrics measures the character cell of a monospace face using 'M' as
// the reference glyph.
func FaceMetrics(face font.Face) (Metrics, error) {
	advance, ok := face.GlyphAdvance('M')
	if !ok {
		return Metrics{}, errors.New("render: face has no glyph for reference character 'M'")
	}

	fm := face.Metrics()
	m := Metrics{
		CellWidth:  advance.Ceil(),
		CellHeight: (fm.Ascent + fm.Descent).Ceil(),
		Ascent:     fm.Ascent.Ceil(),
	}
	if m.CellWidth < 1 {
		m.CellWidth = 1
	}
	if m.CellHeight < 1 {
		m.CellHeight = 1
	}
	return m, nil
}
