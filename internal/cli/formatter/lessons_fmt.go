package formatter

import (
	"strconv"

	"github.com/alexanderramin/growthmap/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// LessonTable renders the catalog as a table for `growthmap lessons`.
func LessonTable(lessons []domain.Lesson) string {
	rows := make([][]string, 0, len(lessons))
	for i, l := range lessons {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(l.ID),
			l.Title,
			StatusPill(l.Status),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(StyleDim).
		BorderColumn(false).
		BorderLeft(false).
		BorderRight(false).
		BorderTop(false).
		BorderBottom(false).
		Headers("#", "ID", "TITLE", "STATUS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return StyleHeader.PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})
	return t.Render()
}
