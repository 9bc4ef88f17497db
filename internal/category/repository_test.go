package category

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func categoryRows(ids ...int64) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "name", "name_hi", "image_url", "sort_order", "active",
		"created_at", "updated_at",
	})
	now := time.Now()
	for _, id := range ids {
		rows.AddRow(id, "Groceries", nil, nil, 1, true, now, now)
	}
	return rows
}

func TestRepositoryList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM categories WHERE active = TRUE").
		WillReturnRows(categoryRows(1, 2))

	categories, err := repo.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, categories, 2)
	assert.Equal(t, "Groceries", categories[0].Name)
}

func TestRepositoryGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM categories WHERE id").
		WithArgs(int64(42)).
		WillReturnRows(categoryRows())

	_, err = repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestRepositoryUpdate(t *testing.T) {
	t.Run("Partial update only touches provided columns", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		name := "Staples"
		mock.ExpectQuery(`UPDATE categories SET updated_at = NOW\(\), name = \$1 WHERE id = \$2`).
			WithArgs(name, int64(3)).
			WillReturnRows(categoryRows(3))

		c, err := repo.Update(context.Background(), 3, UpdateInput{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, int64(3), c.ID)
	})

	t.Run("Unknown category", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		active := false
		mock.ExpectQuery("UPDATE categories SET").
			WillReturnRows(categoryRows())

		_, err = repo.Update(context.Background(), 99, UpdateInput{Active: &active})
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})
}
