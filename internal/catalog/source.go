// Package catalog supplies the ordered lesson sequence shown on the growth
// map: the built-in list, a YAML catalog file, or a SQLite catalog.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/growthmap/internal/db"
	"github.com/alexanderramin/growthmap/internal/domain"
	"github.com/alexanderramin/growthmap/internal/importer"
	"github.com/alexanderramin/growthmap/internal/repository"
)

// Source loads the lesson sequence. Implementations return lessons in
// display order and validate them before returning.
type Source interface {
	Name() string
	Lessons(ctx context.Context) ([]domain.Lesson, error)
}

// Finder is implemented by sources that can look a single lesson up
// without scanning the whole catalog.
type Finder interface {
	Lesson(ctx context.Context, id int) (domain.Lesson, error)
}

// ErrLessonNotFound is wrapped when no lesson has the requested id.
var ErrLessonNotFound = errors.New("lesson not found")

// Find returns lesson id from src. Sources without a direct lookup are
// searched in lessons, the list they already returned.
func Find(ctx context.Context, src Source, lessons []domain.Lesson, id int) (domain.Lesson, error) {
	if f, ok := src.(Finder); ok {
		return f.Lesson(ctx, id)
	}
	if l, ok := domain.FindLesson(lessons, id); ok {
		return l, nil
	}
	return domain.Lesson{}, fmt.Errorf("lesson %d not found in %s: %w", id, src.Name(), ErrLessonNotFound)
}

// Builtin serves the lessons compiled into the binary.
type Builtin struct{}

func (Builtin) Name() string { return "builtin" }

func (Builtin) Lessons(context.Context) ([]domain.Lesson, error) {
	return domain.BuiltinLessons(), nil
}

// File reads a YAML catalog on every call so reloads pick up edits.
type File struct {
	Path string
}

func (f File) Name() string { return f.Path }

func (f File) Lessons(ctx context.Context) ([]domain.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return importer.Load(f.Path)
}

// SQLite reads the catalog stored by `growthmap catalog import`.
type SQLite struct {
	Path string
	repo repository.LessonRepo
}

// NewSQLite wraps a lesson repository as a Source.
func NewSQLite(path string, repo repository.LessonRepo) *SQLite {
	return &SQLite{Path: path, repo: repo}
}

func (s *SQLite) Name() string { return s.Path }

func (s *SQLite) Lessons(ctx context.Context) ([]domain.Lesson, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", s.Path, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("catalog %s is empty; run `growthmap catalog import` first", s.Path)
	}
	lessons, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", s.Path, err)
	}
	if err := domain.ValidateLessons(lessons); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", s.Path, err)
	}
	return lessons, nil
}

// Lesson reads one stored lesson by id.
func (s *SQLite) Lesson(ctx context.Context, id int) (domain.Lesson, error) {
	l, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Lesson{}, fmt.Errorf("lesson %d not found in %s: %w", id, s.Path, ErrLessonNotFound)
	}
	if err != nil {
		return domain.Lesson{}, fmt.Errorf("reading lesson %d from %s: %w", id, s.Path, err)
	}
	return *l, nil
}

// Open picks the source for the given settings: a YAML file wins over a
// database, and the built-in list is the fallback. The returned close
// function releases the database when one was opened.
func Open(catalogPath, dbPath string) (Source, func() error, error) {
	noop := func() error { return nil }
	switch {
	case catalogPath != "":
		return File{Path: catalogPath}, noop, nil
	case dbPath != "":
		conn, err := db.OpenDB(dbPath)
		if err != nil {
			return nil, noop, err
		}
		return NewSQLite(dbPath, repository.NewSQLiteLessonRepo(conn)), conn.Close, nil
	default:
		return Builtin{}, noop, nil
	}
}

// Import validates lessons and replaces the stored catalog in a single
// transaction.
func Import(ctx context.Context, uow db.UnitOfWork, lessons []domain.Lesson) error {
	if err := domain.ValidateLessons(lessons); err != nil {
		return err
	}
	return uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteLessonRepo(tx).ReplaceAll(ctx, lessons)
	})
}

