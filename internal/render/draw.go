package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/vkondrat/cowpost/internal/ansi"
)

// Draw renders the canvas plan onto a new RGBA image: background fill first,
// then one DrawString per text run.
func Draw(c Canvas, face font.Face, m Metrics) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	bg := image.NewUniform(rgbaOf(c.Background))
	draw.Draw(img, img.Bounds(), bg, image.Point{}, draw.Src)

	d := &font.Drawer{Dst: img, Face: face}
	for _, run := range c.Runs {
		d.Src = image.NewUniform(rgbaOf(run.Color))
		d.Dot = fixed.Point26_6{
			X: fixed.I(run.X),
			Y: fixed.I(run.Y + m.Ascent),
		}
		d.DrawString(run.Text)
	}
	return img
}

// EncodePNG writes the image to w in PNG format.
func EncodePNG(img image.Image, w io.Writer) error {
	return png.Encode(w, img)
}

func rgbaOf(c ansi.RGB) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}
