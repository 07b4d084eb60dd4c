package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vkondrat/cowpost/internal/ansi"
)

// TerminalPreview re-renders a parsed document as lipgloss-styled truecolor
// text, approximating how the rasterized image will look.
func TerminalPreview(doc ansi.Document) string {
	var sb strings.Builder
	for i, line := range doc {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, run := range line.Runs() {
			hex := fmt.Sprintf("#%02x%02x%02x", run.Color.R, run.Color.G, run.Color.B)
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
			sb.WriteString(style.Render(run.Text))
		}
	}
	return sb.String()
}
