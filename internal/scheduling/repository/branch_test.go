package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aljoud/shifts-backend/pkg/errors"
)

func TestBranchCreate(t *testing.T) {
	t.Run("trims the name before insert", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBranchRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO branches`)).
			WithArgs("BerlinerTor").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now()))

		branch, err := repo.Create(context.Background(), "  BerlinerTor  ")
		require.NoError(t, err)
		assert.Equal(t, "BerlinerTor", branch.Name)
		assert.Equal(t, int64(1), branch.ID)
	})

	t.Run("duplicate name maps to a conflict", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBranchRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO branches`)).
			WithArgs("BerlinerTor").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "branches_name_key"})

		_, err := repo.Create(context.Background(), "BerlinerTor")
		require.Error(t, err)

		var appErr *errors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "CONFLICT", appErr.Code)
	})
}

func TestBranchGetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBranchRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, created_at FROM branches WHERE id = $1`)).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).
				AddRow(int64(1), "BerlinerTor", time.Now()))

		branch, err := repo.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "BerlinerTor", branch.Name)
	})

	t.Run("missing branch is not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBranchRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, created_at FROM branches WHERE id = $1`)).
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(context.Background(), 99)
		assert.True(t, errors.Is(err, errors.ErrNotFound))
	})
}

func TestBranchList(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBranchRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "created_at"}).
		AddRow(int64(1), "BerlinerTor", time.Now()).
		AddRow(int64(2), "Hansaplatz", time.Now())

	mock.ExpectQuery(`ORDER BY name`).WillReturnRows(rows)

	branches, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, branches, 2)
	assert.Equal(t, "BerlinerTor", branches[0].Name)
}

func TestBranchDelete(t *testing.T) {
	t.Run("missing branch is not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBranchRepository(db)

		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM branches WHERE id = $1`)).
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), 5)
		assert.True(t, errors.Is(err, errors.ErrNotFound))
	})
}
