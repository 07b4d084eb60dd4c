package ansi

import (
	"regexp"
	"strconv"
	"strings"
)

const esc = 0x1b

// Cell is one display character paired with the color that was active when
// it was emitted. The color is captured by value: later SGR codes never
// change cells already appended.
type Cell struct {
	Ch    rune
	Color RGB
}

// Line is one visual row of output in left-to-right display order.
type Line []Cell

// Document is the full parsed output, one Line per terminal row. Trailing
// empty lines are trimmed; a Document is never empty.
type Document []Line

// Run is a maximal span of consecutive same-colored cells within a Line.
type Run struct {
	Start int
	Text  string
	Color RGB
}

// Parse scans ANSI-colored text into a Document. Carriage returns are
// discarded, newlines terminate lines, and CSI sequences are consumed up to
// their terminating letter. Only SGR ('m') sequences affect the tracked
// foreground color; everything else is skipped. Malformed input never fails:
// an unterminated sequence loses only its ESC byte.
func Parse(text string, defaultFG RGB) Document {
	doc := Document{{}}
	color := defaultFG
	runes := []rune(text)

	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		if ch == esc && i+1 < len(runes) && runes[i+1] == '[' {
			end, term := findTerminator(runes, i+2)
			if end < 0 {
				continue
			}
			if term == 'm' {
				color = applySGR(string(runes[i+2:end]), color, defaultFG)
			}
			i = end
			continue
		}
		switch ch {
		case '\r':
		case '\n':
			doc = append(doc, Line{})
		default:
			doc[len(doc)-1] = append(doc[len(doc)-1], Cell{Ch: ch, Color: color})
		}
	}

	for len(doc) > 0 && len(doc[len(doc)-1]) == 0 {
		doc = doc[:len(doc)-1]
	}
	if len(doc) == 0 {
		doc = Document{{Cell{Ch: ' ', Color: defaultFG}}}
	}
	return doc
}

// findTerminator scans forward from start for the first alphabetic byte,
// which ends a CSI sequence. Returns -1 if the input ends first.
func findTerminator(runes []rune, start int) (int, rune) {
	for i := start; i < len(runes); i++ {
		r := runes[i]
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
			return i, r
		}
	}
	return -1, 0
}

// applySGR folds one SGR parameter list into the current color. Empty and
// unparsable parameters count as 0. Codes that do not select a foreground
// color (bold, underline, background colors, ...) are no-ops.
func applySGR(raw string, current, defaultFG RGB) RGB {
	fields := strings.Split(raw, ";")
	params := make([]int, len(fields))
	for i, f := range fields {
		if n, err := strconv.Atoi(f); err == nil {
			params[i] = n
		}
	}

	color := current
	for j := 0; j < len(params); j++ {
		p := params[j]
		switch {
		case p == 0 || p == 39:
			color = defaultFG
		case p >= 30 && p <= 37:
			color = Palette256(uint8(p - 30))
		case p >= 90 && p <= 97:
			color = Palette256(uint8(p - 90 + 8))
		case p == 38 && j+1 < len(params):
			switch params[j+1] {
			case 5:
				if j+2 < len(params) {
					color = Palette256(clamp8(params[j+2]))
					j += 2
				}
			case 2:
				if j+4 < len(params) {
					color = RGB{
						R: clamp8(params[j+2]),
						G: clamp8(params[j+3]),
						B: clamp8(params[j+4]),
					}
					j += 4
				}
			}
		}
	}
	return color
}

func clamp8(n int) uint8 {
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}

// Width returns the length of the longest line in the document.
func (d Document) Width() int {
	max := 0
	for _, line := range d {
		if len(line) > max {
			max = len(line)
		}
	}
	return max
}

// Runs splits a line into maximal spans of identical color, preserving
// character order. Concatenating the run texts reproduces the line exactly.
func (l Line) Runs() []Run {
	var runs []Run
	for start := 0; start < len(l); {
		end := start + 1
		for end < len(l) && l[end].Color == l[start].Color {
			end++
		}
		var sb strings.Builder
		for _, cell := range l[start:end] {
			sb.WriteRune(cell.Ch)
		}
		runs = append(runs, Run{Start: start, Text: sb.String(), Color: l[start].Color})
		start = end
	}
	return runs
}

var sgrPattern = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

// StripSGR removes all escape sequences and surrounding whitespace, leaving
// the plain-text projection of the input (used for image alt text).
func StripSGR(text string) string {
	return strings.TrimSpace(sgrPattern.ReplaceAllString(text, ""))
}
