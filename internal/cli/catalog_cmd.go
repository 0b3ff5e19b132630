package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/growthmap/internal/catalog"
	"github.com/alexanderramin/growthmap/internal/cli/formatter"
	"github.com/alexanderramin/growthmap/internal/db"
	"github.com/alexanderramin/growthmap/internal/domain"
	"github.com/alexanderramin/growthmap/internal/importer"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage lesson catalogs",
	}
	cmd.AddCommand(
		newCatalogImportCmd(app),
		newCatalogAddCmd(app),
	)
	return cmd
}

func newCatalogImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Load a YAML catalog into the SQLite catalog given by --db",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath := app.Config.DBPath
			if dbPath == "" {
				return errors.New("catalog import needs --db")
			}

			schema, err := importer.LoadCatalog(args[0])
			if err != nil {
				return fmt.Errorf("loading catalog %s: %w", args[0], err)
			}
			if err := errors.Join(importer.ValidateCatalog(schema)...); err != nil {
				return fmt.Errorf("invalid catalog %s: %w", args[0], err)
			}
			lessons := importer.Convert(schema)

			database, err := db.OpenDB(dbPath)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer database.Close()

			if err := catalog.Import(cmd.Context(), db.NewSQLiteUnitOfWork(database), lessons); err != nil {
				return fmt.Errorf("importing catalog: %w", err)
			}

			logger := app.Config.NewLogger(cmd.ErrOrStderr())
			for _, s := range importer.UnknownStatuses(schema) {
				logger.Warn("status is not recognized and will show as locked", "status", s)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Imported %d lessons into %s\n",
				formatter.StyleGreen.Render("✔"), len(lessons), dbPath)
			return nil
		},
	}
}

func newCatalogAddCmd(app *App) *cobra.Command {
	var (
		file   string
		draft  lessonDraft
		noForm bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a lesson to a YAML catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				file = app.Config.CatalogPath
			}
			if file == "" {
				return errors.New("catalog add needs --file or --catalog")
			}

			schema, err := importer.LoadOrEmpty(file)
			if err != nil {
				return fmt.Errorf("loading catalog %s: %w", file, err)
			}
			if draft.ID == "" {
				draft.ID = fmt.Sprint(importer.NextID(schema))
			}
			if draft.Status == "" {
				draft.Status = string(domain.LessonLocked)
			}

			if draft.Title == "" && !noForm {
				if !app.interactive() {
					return errors.New("--title is required when not running in a terminal")
				}
				if err := wizardAddLesson(schema, &draft).Run(); err != nil {
					return err
				}
			}

			lesson, err := draft.toImport()
			if err != nil {
				return err
			}
			if err := importer.AppendLesson(file, lesson); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Added lesson %d %s to %s\n",
				formatter.StyleGreen.Render("✔"), lesson.ID, formatter.Bold(lesson.Title), file)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "YAML catalog to append to (defaults to --catalog)")
	cmd.Flags().StringVar(&draft.Title, "title", "", "lesson title; skips the form")
	cmd.Flags().StringVar(&draft.Status, "status", "", "done, active or locked (default locked)")
	cmd.Flags().StringVar(&draft.ID, "id", "", "lesson id (default: next free id)")
	cmd.Flags().BoolVar(&noForm, "no-form", false, "never open the interactive form")
	return cmd
}
