package cli

import (
	"fmt"

	"github.com/alexanderramin/growthmap/internal/cli/formatter"
	"github.com/alexanderramin/growthmap/internal/domain"
	"github.com/spf13/cobra"
)

func newLessonsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "lessons",
		Short: "List the lessons in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, closeSource, err := app.openSource()
			if err != nil {
				return err
			}
			defer closeSource()

			lessons, err := src.Lessons(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header("Lessons"))
			fmt.Fprintln(out, formatter.Dim("source: "+src.Name()))
			fmt.Fprintln(out, formatter.LessonTable(lessons))

			done := 0
			for _, l := range lessons {
				if l.Status == domain.LessonDone {
					done++
				}
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, formatter.RenderCompletion(done, len(lessons), 20))
			return nil
		},
	}
}
