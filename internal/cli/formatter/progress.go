package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a bar like [█████░░░░░]  50% for a fraction in
// [0, 1], colored with ScoreColor.
func RenderProgress(frac float64, width int) string {
	frac = min(max(frac, 0), 1)
	width = max(width, 2)

	filled := min(int(frac*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	return fmt.Sprintf("[%s] %3.0f%%", ScoreColor(frac).Render(bar), frac*100)
}
