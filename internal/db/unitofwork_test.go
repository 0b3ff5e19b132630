package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/growthmap/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestUoW(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database)
}

func insertLesson(ctx context.Context, tx db.DBTX, id int, title string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO lessons (id, position, title, status, created_at, updated_at)
		VALUES (?, ?, ?, 'locked', '', '')`, id, id, title)
	return err
}

// lessonTitle reads a title through a fresh transaction.
func lessonTitle(uow *db.SQLiteUnitOfWork, id int) (string, bool) {
	var title string
	var found bool
	_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := tx.QueryRowContext(ctx, `SELECT title FROM lessons WHERE id = ?`, id).Scan(&title); err != nil {
			return nil
		}
		found = true
		return nil
	})
	return title, found
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertLesson(ctx, tx, 1, "Welcome Journey")
	})
	require.NoError(t, err)

	title, found := lessonTitle(uow, 1)
	assert.True(t, found, "lesson should exist after commit")
	assert.Equal(t, "Welcome Journey", title)
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow := openTestUoW(t)
	failure := errors.New("second insert failed")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertLesson(ctx, tx, 1, "Welcome Journey"); err != nil {
			return err
		}
		return failure
	})
	require.ErrorIs(t, err, failure)

	_, found := lessonTitle(uow, 1)
	assert.False(t, found, "first insert is rolled back with the second")
}

func TestWithinTx_RollbackOnConstraintViolation(t *testing.T) {
	uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertLesson(ctx, tx, 1, "Welcome Journey"); err != nil {
			return err
		}
		return insertLesson(ctx, tx, 1, "Duplicate")
	})
	require.Error(t, err)

	_, found := lessonTitle(uow, 1)
	assert.False(t, found)
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow := openTestUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertLesson(ctx, tx, 3, "Source of Inspiration")
			panic("boom")
		})
	})

	_, found := lessonTitle(uow, 3)
	assert.False(t, found, "lesson should not exist after panic rollback")
}
