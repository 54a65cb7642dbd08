package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/hoojinguyen/tech-interview-system-sub000/internal/cache"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/repositories"
)

func TestRoadmapPostgreSQL_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("clears topic question links before topics", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRoadmapPostgreSQL(db, cache.NewCacheManager(nil))

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "id" FROM "topics"`).WithArgs(3).WillReturnRows(idRows(30, 31))
		mock.ExpectExec(`DELETE FROM "topic_questions"`).WillReturnResult(sqlmock.NewResult(0, 4))
		mock.ExpectExec(`DELETE FROM "topics"`).WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM "roadmaps"`).WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		if err := repo.Delete(ctx, 3); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})

	t.Run("roadmap without topics deletes directly", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRoadmapPostgreSQL(db, cache.NewCacheManager(nil))

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "id" FROM "topics"`).WithArgs(4).WillReturnRows(idRows())
		mock.ExpectExec(`DELETE FROM "roadmaps"`).WithArgs(4).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		if err := repo.Delete(ctx, 4); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})

	t.Run("missing roadmap rolls back with not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRoadmapPostgreSQL(db, cache.NewCacheManager(nil))

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "id" FROM "topics"`).WithArgs(99).WillReturnRows(idRows())
		mock.ExpectExec(`DELETE FROM "roadmaps"`).WithArgs(99).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		if err := repo.Delete(ctx, 99); !errors.Is(err, repositories.ErrNotFound) {
			t.Errorf("got %v, want ErrNotFound", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})
}
