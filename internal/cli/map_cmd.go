package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/growthmap/internal/catalog"
	"github.com/alexanderramin/growthmap/internal/domain"
	"github.com/alexanderramin/growthmap/internal/motion"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// staticWidth is the layout width when the map is printed, not run.
const staticWidth = 64

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Open the detail page of one lesson",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid lesson id %q", args[0])
			}
			return runMap(cmd, app, id)
		},
	}
}

// runMap loads the catalog and runs the growth map. A positive showID
// opens that lesson's page above the map.
func runMap(cmd *cobra.Command, app *App, showID int) error {
	cfg := app.Config
	src, closeSource, err := app.openSource()
	if err != nil {
		return err
	}
	defer closeSource()

	lessons, err := src.Lessons(cmd.Context())
	if err != nil {
		return err
	}

	var page *domain.Lesson
	if showID > 0 {
		l, err := catalog.Find(cmd.Context(), src, lessons, showID)
		if err != nil {
			return err
		}
		page = &l
	}

	if !app.interactive() {
		out := cmd.OutOrStdout()
		if page != nil {
			fmt.Fprintln(out, renderStaticPage(*page))
			return nil
		}
		fmt.Fprintln(out, renderStatic(lessons, staticWidth))
		return nil
	}

	logger, closeLog, err := cfg.Logger()
	if err != nil {
		return err
	}
	defer closeLog.Close()
	logger.Info("catalog loaded", "source", src.Name(), "lessons", len(lessons), "motion", cfg.Motion)

	var reload *catalogReloader
	if cfg.Watch {
		w, err := catalog.NewWatcher(cfg.CatalogPath)
		if err != nil {
			return err
		}
		defer w.Stop()
		reload = &catalogReloader{source: src, watcher: w}
	}

	state := newSharedState(motion.ProfileFor(cfg.Motion), logger, app.Starter)
	m := newAppModel(state, lessons, page, reload)

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
	)
	_, err = p.Run()
	return err
}

// renderStatic draws the map with every entrance finished, for output that
// is not a terminal.
func renderStatic(lessons []domain.Lesson, width int) string {
	now := time.Now()
	items := make([]lessonItem, 0, len(lessons))
	for _, l := range lessons {
		it := newLessonItem(l, now, motion.ProfileFor("full"))
		it.unmount()
		it.settle()
		items = append(items, it)
	}
	return renderLessonList(items, width, -1, now)
}

func renderStaticPage(l domain.Lesson) string {
	d := newLessonDetail(detailPage, &l, nil)
	d.show()
	return d.View()
}
