package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Lesson is one step of the growth map.
type Lesson struct {
	ID     int
	Title  string
	Status LessonStatus
}

// Validate checks the fields of a single lesson.
func (l Lesson) Validate() error {
	if l.ID <= 0 {
		return fmt.Errorf("lesson id %d must be positive", l.ID)
	}
	if strings.TrimSpace(l.Title) == "" {
		return fmt.Errorf("lesson %d: title is required", l.ID)
	}
	return nil
}

// ValidateLessons checks every lesson and that ids are unique.
// Unknown statuses are not errors: they degrade at render time.
func ValidateLessons(lessons []Lesson) error {
	var errs []error
	seen := make(map[int]bool, len(lessons))
	for _, l := range lessons {
		if err := l.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if seen[l.ID] {
			errs = append(errs, fmt.Errorf("lesson id %d is duplicated", l.ID))
		}
		seen[l.ID] = true
	}
	return errors.Join(errs...)
}

// FindLesson returns the lesson with the given id.
func FindLesson(lessons []Lesson, id int) (Lesson, bool) {
	for _, l := range lessons {
		if l.ID == id {
			return l, true
		}
	}
	return Lesson{}, false
}

// BuiltinLessons returns the default growth map: one completed lesson, the
// current one, and three locked lessons.
func BuiltinLessons() []Lesson {
	return []Lesson{
		{ID: 1, Title: "Welcome Journey", Status: LessonDone},
		{ID: 2, Title: "Switching to Yourself", Status: LessonActive},
		{ID: 3, Title: "Source of Inspiration", Status: LessonLocked},
		{ID: 4, Title: "Space of Ideas", Status: LessonLocked},
		{ID: 5, Title: "Final Test", Status: LessonLocked},
	}
}
