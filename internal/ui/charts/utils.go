package charts

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Overlay writes box over background with its top-left corner at (col, row),
// keeping the background visible around it. Lines are cut on display cells
// so styled backgrounds stay intact.
func Overlay(background, box string, col, row int) string {
	bg := strings.Split(background, "\n")
	for i, line := range strings.Split(box, "\n") {
		r := row + i
		if r < 0 || r >= len(bg) {
			continue
		}
		w := lipgloss.Width(line)
		base := bg[r]
		baseWidth := lipgloss.Width(base)
		if baseWidth < col {
			base += strings.Repeat(" ", col-baseWidth)
			baseWidth = col
		}
		left := ansi.Truncate(base, col, "")
		right := ""
		if col+w < baseWidth {
			right = ansi.TruncateLeft(base, col+w, "")
		}
		bg[r] = left + line + right
	}
	return strings.Join(bg, "\n")
}
