package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"entityapi/internal/model"
	"entityapi/internal/repository"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{"id", "name", "description"}

func newMockRepo(t *testing.T) (*EntityPostgres, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewEntityPostgres(db), mock
}

func TestEntityPostgres_SaveInsert(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO entities").
		WithArgs("widget", "a widget").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(int64(7), "widget", "a widget"))

	result, err := repo.Save(ctx, &model.Entity{Name: "widget", Description: "a widget"})

	assert.NoError(t, err)
	assert.Equal(t, &model.Entity{ID: 7, Name: "widget", Description: "a widget"}, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntityPostgres_SaveUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces existing row", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery("UPDATE entities SET name = (.+), description = (.+) WHERE id = (.+) RETURNING").
			WithArgs("new", "desc", int64(3)).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(int64(3), "new", "desc"))

		result, err := repo.Save(ctx, &model.Entity{ID: 3, Name: "new", Description: "desc"})

		assert.NoError(t, err)
		assert.Equal(t, int64(3), result.ID)
		assert.Equal(t, "new", result.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery("UPDATE entities").
			WithArgs("new", "", int64(99)).
			WillReturnRows(sqlmock.NewRows(columns))

		result, err := repo.Save(ctx, &model.Entity{ID: 99, Name: "new"})

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, result)
	})

	t.Run("driver error", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery("UPDATE entities").WillReturnError(errors.New("deadlock"))

		_, err := repo.Save(ctx, &model.Entity{ID: 1, Name: "x"})

		assert.ErrorContains(t, err, "update entity 1: deadlock")
		assert.False(t, errors.Is(err, repository.ErrNotFound))
	})

	t.Run("nil entity", func(t *testing.T) {
		repo, _ := newMockRepo(t)
		_, err := repo.Save(ctx, nil)
		assert.Error(t, err)
	})
}

func TestEntityPostgres_FindByID(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM entities WHERE id = ?").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(int64(1), "widget", ""))

		e, err := repo.FindByID(ctx, 1)

		assert.NoError(t, err)
		require.NotNil(t, e)
		assert.Equal(t, int64(1), e.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM entities WHERE id = ?").
			WithArgs(int64(404)).
			WillReturnError(sql.ErrNoRows)

		e, err := repo.FindByID(ctx, 404)

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, e)
	})

	t.Run("driver error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM entities WHERE id = ?").
			WithArgs(int64(2)).
			WillReturnError(errors.New("conn reset"))

		_, err := repo.FindByID(ctx, 2)

		assert.ErrorContains(t, err, "find entity 2: conn reset")
	})
}

func TestEntityPostgres_FindByName(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM entities WHERE name = (.+) ORDER BY id ASC LIMIT 1").
			WithArgs("Test Entity").
			WillReturnRows(sqlmock.NewRows(columns).AddRow(int64(4), "Test Entity", ""))

		e, err := repo.FindByName(ctx, "Test Entity")

		assert.NoError(t, err)
		assert.Equal(t, "Test Entity", e.Name)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM entities WHERE name").
			WithArgs("nobody").
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.FindByName(ctx, "nobody")

		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestEntityPostgres_FindAll(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM entities").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		rows := sqlmock.NewRows(columns).
			AddRow(int64(1), "a", "").
			AddRow(int64(2), "b", "")

		mock.ExpectQuery("SELECT (.+) FROM entities ORDER BY id ASC LIMIT").
			WithArgs(2, 0).
			WillReturnRows(rows)

		res, err := repo.FindAll(ctx, repository.PageQuery{Limit: 2, Offset: 0})

		assert.NoError(t, err)
		assert.Equal(t, int64(3), res.Total)
		assert.Len(t, res.Items, 2)
	})

	t.Run("count error", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM entities").
			WillReturnError(errors.New("boom"))

		_, err := repo.FindAll(ctx, repository.PageQuery{Limit: 2})

		assert.ErrorContains(t, err, "count entities: boom")
	})

	t.Run("empty page", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM entities").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("SELECT (.+) FROM entities ORDER BY").
			WithArgs(10, 20).
			WillReturnRows(sqlmock.NewRows(columns))

		res, err := repo.FindAll(ctx, repository.PageQuery{Limit: 10, Offset: 20})

		assert.NoError(t, err)
		assert.NotNil(t, res.Items)
		assert.Empty(t, res.Items)
	})
}

func TestEntityPostgres_DeleteByID(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	t.Run("deleted", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM entities WHERE id = ?").
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.DeleteByID(ctx, 1))
	})

	t.Run("missing row", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM entities WHERE id = ?").
			WithArgs(int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.DeleteByID(ctx, 2), repository.ErrNotFound)
	})

	t.Run("driver error", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM entities WHERE id = ?").
			WithArgs(int64(3)).
			WillReturnError(errors.New("fk violation"))

		err := repo.DeleteByID(ctx, 3)
		assert.Error(t, err)
		assert.False(t, errors.Is(err, repository.ErrNotFound))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
