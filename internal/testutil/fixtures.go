package testutil

import (
	"fmt"

	"github.com/alexanderramin/growthmap/internal/domain"
)

// Lesson options
type LessonOption func(*domain.Lesson)

func WithTitle(title string) LessonOption {
	return func(l *domain.Lesson) {
		l.Title = title
	}
}

func WithStatus(s domain.LessonStatus) LessonOption {
	return func(l *domain.Lesson) {
		l.Status = s
	}
}

// NewTestLesson builds a locked lesson titled after its id.
func NewTestLesson(id int, opts ...LessonOption) domain.Lesson {
	l := domain.Lesson{
		ID:     id,
		Title:  fmt.Sprintf("Lesson %d", id),
		Status: domain.LessonLocked,
	}
	for _, opt := range opts {
		opt(&l)
	}
	return l
}

// NewTestLessons builds one lesson per status, ids starting at 1.
func NewTestLessons(statuses ...domain.LessonStatus) []domain.Lesson {
	lessons := make([]domain.Lesson, 0, len(statuses))
	for i, s := range statuses {
		lessons = append(lessons, NewTestLesson(i+1, WithStatus(s)))
	}
	return lessons
}
