package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/growthmap/internal/domain"
)

// Convert transforms a validated CatalogSchema into lessons in file order.
// Call ValidateCatalog first; Convert assumes the schema is valid.
func Convert(schema *CatalogSchema) []domain.Lesson {
	lessons := make([]domain.Lesson, 0, len(schema.Lessons))
	for _, l := range schema.Lessons {
		status := domain.LessonStatus(strings.TrimSpace(l.Status))
		if status == "" {
			status = domain.LessonLocked
		}
		lessons = append(lessons, domain.Lesson{
			ID:     l.ID,
			Title:  strings.TrimSpace(l.Title),
			Status: status,
		})
	}
	return lessons
}

// FromLessons is the inverse of Convert.
func FromLessons(lessons []domain.Lesson) *CatalogSchema {
	schema := &CatalogSchema{Lessons: make([]LessonImport, 0, len(lessons))}
	for _, l := range lessons {
		schema.Lessons = append(schema.Lessons, LessonImport{
			ID:     l.ID,
			Title:  l.Title,
			Status: string(l.Status),
		})
	}
	return schema
}

// Load reads, validates and converts a catalog file in one step.
func Load(path string) ([]domain.Lesson, error) {
	schema, err := LoadCatalog(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	if err := errors.Join(ValidateCatalog(schema)...); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	return Convert(schema), nil
}

// AppendLesson adds one lesson to the end of the catalog at path, creating
// the file when it does not exist. The id must not already be taken.
func AppendLesson(path string, lesson LessonImport) error {
	schema, err := LoadOrEmpty(path)
	if err != nil {
		return fmt.Errorf("loading catalog %s: %w", path, err)
	}
	schema.Lessons = append(schema.Lessons, lesson)
	if err := errors.Join(ValidateCatalog(schema)...); err != nil {
		return fmt.Errorf("adding lesson %d: %w", lesson.ID, err)
	}
	return WriteCatalog(path, schema)
}

// NextID returns one past the highest id in the catalog.
func NextID(schema *CatalogSchema) int {
	next := 1
	for _, l := range schema.Lessons {
		if l.ID >= next {
			next = l.ID + 1
		}
	}
	return next
}
