package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/growthmap/internal/catalog"
	"github.com/alexanderramin/growthmap/internal/config"
	"github.com/alexanderramin/growthmap/internal/domain"
	"github.com/alexanderramin/growthmap/internal/importer"
	"github.com/alexanderramin/growthmap/internal/testutil"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp builds a non-interactive App with default configuration.
func testApp(t *testing.T) *App {
	t.Helper()
	cfg, err := config.LoadFrom(map[string]string{})
	require.NoError(t, err)
	return &App{
		Config:        &cfg,
		IsInteractive: func() bool { return false },
	}
}

// stubSource serves a fixed lesson list.
type stubSource struct {
	lessons []domain.Lesson
}

func (s stubSource) Name() string { return "stub" }

func (s stubSource) Lessons(context.Context) ([]domain.Lesson, error) {
	return s.lessons, nil
}

func withLessons(app *App, lessons []domain.Lesson) *App {
	app.OpenSource = func(string, string) (catalog.Source, func() error, error) {
		return stubSource{lessons: lessons}, func() error { return nil }, nil
	}
	return app
}

// writeCatalog writes lessons as a YAML catalog in a temp dir.
func writeCatalog(t *testing.T, lessons []domain.Lesson) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lessons.yaml")
	require.NoError(t, importer.WriteCatalog(path, importer.FromLessons(lessons)))
	return path
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return ansi.Strip(buf.String()), err
}

func TestRootCmd_PrintsBuiltinMap(t *testing.T) {
	out, err := executeCmd(t, testApp(t))
	require.NoError(t, err)

	assert.Contains(t, out, "Growth Map")
	assert.Contains(t, out, "Complete the lessons in order to reach your goal")
	for _, l := range domain.BuiltinLessons() {
		assert.Contains(t, out, l.Title)
	}
	assert.Contains(t, out, "Completed")
	assert.Contains(t, out, "Tap to start")
	assert.Contains(t, out, "Locked")
}

func TestRootCmd_ReadsCatalogFile(t *testing.T) {
	path := writeCatalog(t, []domain.Lesson{
		testutil.NewTestLesson(1, testutil.WithTitle("Breathing"), testutil.WithStatus(domain.LessonActive)),
		testutil.NewTestLesson(2, testutil.WithTitle("Posture")),
	})

	out, err := executeCmd(t, testApp(t), "--catalog", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Breathing")
	assert.Contains(t, out, "Posture")
	assert.NotContains(t, out, "Welcome Journey")
}

func TestRootCmd_InvalidCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lessons.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lessons:\n  - id: 1\n    title: One\n  - id: 1\n    title: Two\n"), 0o644))

	_, err := executeCmd(t, testApp(t), "--catalog", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid catalog")
	assert.Contains(t, err.Error(), "duplicates")
}

func TestRootCmd_FlagValidation(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "--watch")
	assert.EqualError(t, err, "--watch needs a --catalog file")

	_, err = executeCmd(t, testApp(t), "--motion", "wild")
	assert.EqualError(t, err, `invalid motion level "wild"`)

	_, err = executeCmd(t, testApp(t), "--motion", "Reduced")
	assert.NoError(t, err)
}

func TestShowCmd(t *testing.T) {
	t.Run("prints the lesson page", func(t *testing.T) {
		out, err := executeCmd(t, testApp(t), "show", "2")
		require.NoError(t, err)
		assert.Contains(t, out, "← Back")
		assert.Contains(t, out, "Switching to Yourself")
		assert.Contains(t, out, "WHAT YOU WILL LEARN")
		assert.Contains(t, out, "Start lesson")
		assert.NotContains(t, out, "INSTRUCTIONS")
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := executeCmd(t, testApp(t), "show", "99")
		require.ErrorIs(t, err, catalog.ErrLessonNotFound)
		assert.Contains(t, err.Error(), "lesson 99 not found in builtin")
	})

	t.Run("bad id", func(t *testing.T) {
		for _, arg := range []string{"abc", "0", "-3"} {
			_, err := executeCmd(t, testApp(t), "show", "--", arg)
			assert.EqualError(t, err, `invalid lesson id "`+arg+`"`)
		}
	})
}

func TestLessonsCmd(t *testing.T) {
	app := withLessons(testApp(t), []domain.Lesson{
		testutil.NewTestLesson(7, testutil.WithTitle("Listening"), testutil.WithStatus(domain.LessonDone)),
		testutil.NewTestLesson(9, testutil.WithStatus("beta")),
	})

	out, err := executeCmd(t, app, "lessons")
	require.NoError(t, err)
	assert.Contains(t, out, "LESSONS")
	assert.Contains(t, out, "source: stub")
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "Listening")
	assert.Contains(t, out, "● DONE")
	assert.Contains(t, out, "● BETA")
	assert.Contains(t, out, "1/2 done")
}

func TestCatalogImportCmd(t *testing.T) {
	yamlPath := writeCatalog(t, domain.BuiltinLessons())
	dbPath := testutil.TempDBPath(t)

	_, err := executeCmd(t, testApp(t), "catalog", "import", yamlPath)
	assert.EqualError(t, err, "catalog import needs --db")

	out, err := executeCmd(t, testApp(t), "--db", dbPath, "catalog", "import", yamlPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 5 lessons into "+dbPath)

	out, err = executeCmd(t, testApp(t), "--db", dbPath, "lessons")
	require.NoError(t, err)
	assert.Contains(t, out, "source: "+dbPath)
	assert.Contains(t, out, "Final Test")

	out, err = executeCmd(t, testApp(t), "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome Journey")

	out, err = executeCmd(t, testApp(t), "--db", dbPath, "show", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Switching to Yourself")

	_, err = executeCmd(t, testApp(t), "--db", dbPath, "show", "42")
	require.ErrorIs(t, err, catalog.ErrLessonNotFound)
	assert.Contains(t, err.Error(), "lesson 42 not found in "+dbPath)
}

func TestCatalogImportCmd_WarnsOnUnknownStatus(t *testing.T) {
	yamlPath := filepath.Join(t.TempDir(), "lessons.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("lessons:\n  - id: 1\n    title: One\n    status: beta\n"), 0o644))
	dbPath := testutil.TempDBPath(t)

	out, err := executeCmd(t, testApp(t), "--db", dbPath, "catalog", "import", yamlPath)
	require.NoError(t, err)
	assert.Contains(t, out, "status is not recognized")
	assert.Contains(t, out, "beta")
	assert.Contains(t, out, "Imported 1 lessons")
}

func TestCatalogImportCmd_RejectsInvalidFile(t *testing.T) {
	yamlPath := filepath.Join(t.TempDir(), "lessons.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("lessons: []\n"), 0o644))
	dbPath := testutil.TempDBPath(t)

	_, err := executeCmd(t, testApp(t), "--db", dbPath, "catalog", "import", yamlPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one lesson is required")
}

func TestCatalogAddCmd(t *testing.T) {
	path := writeCatalog(t, domain.BuiltinLessons())

	out, err := executeCmd(t, testApp(t), "catalog", "add", "--file", path, "--title", "Encore", "--status", "active")
	require.NoError(t, err)
	assert.Contains(t, out, "Added lesson 6 Encore to "+path)

	lessons, err := importer.Load(path)
	require.NoError(t, err)
	require.Len(t, lessons, 6)
	assert.Equal(t, domain.Lesson{ID: 6, Title: "Encore", Status: domain.LessonActive}, lessons[5])

	_, err = executeCmd(t, testApp(t), "--catalog", path, "catalog", "add", "--title", "Again", "--id", "6")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicates")
}

func TestCatalogAddCmd_NeedsTitleWithoutTerminal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.yaml")

	_, err := executeCmd(t, testApp(t), "catalog", "add", "--file", path)
	assert.EqualError(t, err, "--title is required when not running in a terminal")

	_, err = executeCmd(t, testApp(t), "catalog", "add")
	assert.EqualError(t, err, "catalog add needs --file or --catalog")

	_, err = executeCmd(t, testApp(t), "catalog", "add", "--file", path, "--title", "First")
	require.NoError(t, err)
	lessons, err := importer.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []domain.Lesson{{ID: 1, Title: "First", Status: domain.LessonLocked}}, lessons)
}
