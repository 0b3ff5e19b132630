package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderCompletion renders a completion bar like ████░░░░ 2/5 done.
// The bar is colored by share done: green >66%, yellow 33-66%, red <33%.
func RenderCompletion(done, total, width int) string {
	if width < 2 {
		width = 2
	}
	done = max(min(done, total), 0)

	pct := 0.0
	if total > 0 {
		pct = float64(done) / float64(total)
	}
	filled := min(int(pct*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}
	return fmt.Sprintf("%s %d/%d done", style.Render(bar), done, total)
}
