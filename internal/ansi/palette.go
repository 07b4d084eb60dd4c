// Package ansi parses ANSI SGR escape sequences into a per-character
// colored line model suitable for rasterization.
package ansi

// RGB is a 24-bit color value.
type RGB struct {
	R, G, B uint8
}

// DefaultForeground is the color in effect before any SGR code and the one
// restored by reset codes (SGR 0 and 39).
var DefaultForeground = RGB{R: 238, G: 238, B: 238}

// basicPalette holds the 16 standard and bright ANSI colors (indices 0-15).
var basicPalette = [16]RGB{
	{0, 0, 0},       // black
	{128, 0, 0},     // red
	{0, 128, 0},     // green
	{128, 128, 0},   // yellow
	{0, 0, 128},     // blue
	{128, 0, 128},   // magenta
	{0, 128, 128},   // cyan
	{192, 192, 192}, // light gray
	{128, 128, 128}, // dark gray
	{255, 0, 0},     // bright red
	{0, 255, 0},     // bright green
	{255, 255, 0},   // bright yellow
	{0, 0, 255},     // bright blue
	{255, 0, 255},   // bright magenta
	{0, 255, 255},   // bright cyan
	{255, 255, 255}, // white
}

// cubeLevels are the channel values of the 6x6x6 color cube (indices 16-231).
var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

// Palette256 maps an xterm 256-color index to its RGB value.
func Palette256(idx uint8) RGB {
	switch {
	case idx < 16:
		return basicPalette[idx]
	case idx >= 232:
		// 24-step grayscale ramp from 8 to 238.
		gray := uint8(8 + (int(idx)-232)*10)
		return RGB{R: gray, G: gray, B: gray}
	default:
		n := int(idx) - 16
		return RGB{
			R: cubeLevels[n/36],
			G: cubeLevels[(n/6)%6],
			B: cubeLevels[n%6],
		}
	}
}
