package render

import (
	"errors"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/basicfont"
)

func TestFontCandidatesOrder(t *testing.T) {
	candidates := fontCandidates("/tmp/custom.ttf")
	if candidates[0] != "/tmp/custom.ttf" {
		t.Errorf("configured path not tried first: %v", candidates)
	}
	if len(candidates) != len(defaultFontPaths)+1 {
		t.Errorf("expected %d candidates, got %d", len(defaultFontPaths)+1, len(candidates))
	}

	candidates = fontCandidates("")
	if len(candidates) != len(defaultFontPaths) {
		t.Errorf("empty path should not add a candidate: %v", candidates)
	}
}

func TestLoadFaceNoCandidates(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.ttf")

	_, err := loadFace([]string{missing}, 18)
	if !errors.Is(err, ErrNoFont) {
		t.Errorf("expected ErrNoFont, got %v", err)
	}
}

func TestFaceMetricsBasicfont(t *testing.T) {
	m, err := FaceMetrics(basicfont.Face7x13)
	if err != nil {
		t.Fatalf("FaceMetrics() failed: %v", err)
	}

	if m.CellWidth != 7 {
		t.Errorf("CellWidth = %d, expected 7", m.CellWidth)
	}
	if m.CellHeight != 13 {
		t.Errorf("CellHeight = %d, expected 13", m.CellHeight)
	}
	if m.Ascent != 11 {
		t.Errorf("Ascent = %d, expected 11", m.Ascent)
	}
}
