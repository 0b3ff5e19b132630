package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/growthmap/internal/cli/formatter"
	"github.com/alexanderramin/growthmap/internal/domain"
	"github.com/alexanderramin/growthmap/internal/importer"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// growthHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func growthHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// lessonDraft holds the string values bound to the add-lesson form.
type lessonDraft struct {
	ID     string
	Title  string
	Status string
}

func (d lessonDraft) toImport() (importer.LessonImport, error) {
	id, err := strconv.Atoi(strings.TrimSpace(d.ID))
	if err != nil {
		return importer.LessonImport{}, fmt.Errorf("invalid lesson id %q", d.ID)
	}
	return importer.LessonImport{
		ID:     id,
		Title:  strings.TrimSpace(d.Title),
		Status: d.Status,
	}, nil
}

// wizardAddLesson creates a huh form that fills draft. Ids already in the
// catalog are rejected inline.
func wizardAddLesson(schema *importer.CatalogSchema, draft *lessonDraft) *huh.Form {
	taken := make(map[int]bool, len(schema.Lessons))
	for _, l := range schema.Lessons {
		taken[l.ID] = true
	}

	options := make([]huh.Option[string], 0, len(domain.ValidLessonStatuses))
	for _, s := range domain.ValidLessonStatuses {
		options = append(options, huh.NewOption(string(s), string(s)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Lesson Title").
				Placeholder("Source of Inspiration").
				Value(&draft.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("enter a title")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Status").
				Options(options...).
				Value(&draft.Status),
			huh.NewInput().
				Title("Lesson ID").
				Placeholder(draft.ID).
				Value(&draft.ID).
				Validate(func(s string) error {
					return validateLessonID(s, taken)
				}),
		),
	).WithTheme(growthHuhTheme()).WithShowHelp(false)
}

func validateLessonID(s string, taken map[int]bool) error {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	if taken[id] {
		return fmt.Errorf("lesson %d already exists", id)
	}
	return nil
}
