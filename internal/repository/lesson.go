package repository

import (
	"context"

	"github.com/alexanderramin/growthmap/internal/domain"
)

// LessonRepo persists the ordered lesson catalog.
type LessonRepo interface {
	List(ctx context.Context) ([]domain.Lesson, error)
	GetByID(ctx context.Context, id int) (*domain.Lesson, error)
	Count(ctx context.Context) (int, error)
	ReplaceAll(ctx context.Context, lessons []domain.Lesson) error
}
