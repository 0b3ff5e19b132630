package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/growthmap/internal/db"
	"github.com/alexanderramin/growthmap/internal/domain"
)

// SQLiteLessonRepo implements LessonRepo using a SQLite database.
type SQLiteLessonRepo struct {
	db db.DBTX
}

// NewSQLiteLessonRepo creates a new SQLiteLessonRepo.
func NewSQLiteLessonRepo(conn db.DBTX) *SQLiteLessonRepo {
	return &SQLiteLessonRepo{db: conn}
}

func (r *SQLiteLessonRepo) List(ctx context.Context) ([]domain.Lesson, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, status FROM lessons ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("listing lessons: %w", err)
	}
	defer rows.Close()

	var lessons []domain.Lesson
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lessons: %w", err)
	}
	return lessons, nil
}

func (r *SQLiteLessonRepo) GetByID(ctx context.Context, id int) (*domain.Lesson, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, status FROM lessons WHERE id = ?`, id)
	l, err := scanLesson(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("lesson %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &l, nil
}

func (r *SQLiteLessonRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lessons`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting lessons: %w", err)
	}
	return n, nil
}

// ReplaceAll deletes the stored catalog and inserts lessons in order.
// Callers run it inside a UnitOfWork so a failed insert leaves the old
// catalog untouched.
func (r *SQLiteLessonRepo) ReplaceAll(ctx context.Context, lessons []domain.Lesson) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM lessons`); err != nil {
		return fmt.Errorf("clearing lessons: %w", err)
	}

	now := nowUTC()
	for i, l := range lessons {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO lessons (id, position, title, status, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			l.ID, i, l.Title, string(l.Status), now, now,
		)
		if err != nil {
			return fmt.Errorf("inserting lesson %d: %w", l.ID, err)
		}
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLesson(s scanner) (domain.Lesson, error) {
	var (
		l      domain.Lesson
		status string
	)
	if err := s.Scan(&l.ID, &l.Title, &status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return l, err
		}
		return l, fmt.Errorf("scanning lesson: %w", err)
	}
	l.Status = domain.LessonStatus(status)
	return l, nil
}
