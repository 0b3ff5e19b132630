package formatter

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestRenderCompletion(t *testing.T) {
	tests := []struct {
		name        string
		done, total int
		width       int
		filled      int
		label       string
	}{
		{"none", 0, 5, 10, 0, "0/5 done"},
		{"some", 1, 5, 10, 2, "1/5 done"},
		{"all", 5, 5, 10, 10, "5/5 done"},
		{"empty catalog", 0, 0, 10, 0, "0/0 done"},
		{"done clamps to total", 7, 5, 10, 10, "5/5 done"},
		{"tiny width clamps to 2", 1, 2, 0, 1, "1/2 done"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ansi.Strip(RenderCompletion(tt.done, tt.total, tt.width))
			assert.True(t, strings.HasSuffix(got, " "+tt.label), got)
			assert.Equal(t, tt.filled, strings.Count(got, filledBlock))
			assert.Equal(t, max(tt.width, 2)-tt.filled, strings.Count(got, emptyBlock))
		})
	}
}
