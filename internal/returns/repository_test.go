package returns

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func returnRow(id uuid.UUID, status Status) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "order_id", "user_id", "reason", "refund_amount",
		"refund_method", "proof_images", "status", "note", "created_at", "updated_at",
	}).AddRow(id, 11, 7, "damaged packet", 540.0, "original",
		pq.Array([]string{}), status, nil, now, now)
}

func TestRepositoryCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		ret := &Return{
			ID:           uuid.New(),
			OrderID:      11,
			UserID:       7,
			Reason:       "damaged packet",
			RefundAmount: 540,
			RefundMethod: "original",
			Status:       StatusRequested,
		}

		mock.ExpectQuery("INSERT INTO returns").
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).
				AddRow(time.Now(), time.Now()))

		require.NoError(t, repo.Create(ctx, ret))
		assert.False(t, ret.CreatedAt.IsZero())
	})

	t.Run("Duplicate order maps unique violation", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery("INSERT INTO returns").
			WillReturnError(&pq.Error{Code: "23505"})

		err = repo.Create(ctx, &Return{ID: uuid.New(), OrderID: 11})
		assert.ErrorIs(t, err, ErrReturnExists)
	})
}

func TestRepositoryUpdateStatus(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Invalid transition rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status, order_id FROM returns WHERE id (.+) FOR UPDATE").
			WithArgs(id.String()).
			WillReturnRows(sqlmock.NewRows([]string{"status", "order_id"}).
				AddRow(StatusCompleted, 11))
		mock.ExpectRollback()

		_, err = repo.UpdateStatus(ctx, id.String(), StatusApproved, nil)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown return", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status, order_id FROM returns WHERE id (.+) FOR UPDATE").
			WithArgs(id.String()).
			WillReturnRows(sqlmock.NewRows([]string{"status", "order_id"}))
		mock.ExpectRollback()

		_, err = repo.UpdateStatus(ctx, id.String(), StatusApproved, nil)
		assert.ErrorIs(t, err, ErrReturnNotFound)
	})

	t.Run("Approval restores stock in the same transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status, order_id FROM returns WHERE id (.+) FOR UPDATE").
			WithArgs(id.String()).
			WillReturnRows(sqlmock.NewRows([]string{"status", "order_id"}).
				AddRow(StatusRequested, 11))
		mock.ExpectQuery("SELECT product_id, quantity FROM order_items").
			WithArgs(int64(11)).
			WillReturnRows(sqlmock.NewRows([]string{"product_id", "quantity"}).
				AddRow(1, 2).
				AddRow(4, 1))
		mock.ExpectExec("UPDATE products").
			WithArgs(2, int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE products").
			WithArgs(1, int64(4)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE returns SET status").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		mock.ExpectQuery("SELECT (.+) FROM returns WHERE id").
			WithArgs(id.String()).
			WillReturnRows(returnRow(id, StatusApproved))

		ret, err := repo.UpdateStatus(ctx, id.String(), StatusApproved, nil)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, ret.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rejection does not touch stock", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		note := "out of return window"
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status, order_id FROM returns WHERE id (.+) FOR UPDATE").
			WithArgs(id.String()).
			WillReturnRows(sqlmock.NewRows([]string{"status", "order_id"}).
				AddRow(StatusRequested, 11))
		mock.ExpectExec("UPDATE returns SET status").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		mock.ExpectQuery("SELECT (.+) FROM returns WHERE id").
			WithArgs(id.String()).
			WillReturnRows(returnRow(id, StatusRejected))

		ret, err := repo.UpdateStatus(ctx, id.String(), StatusRejected, &note)
		require.NoError(t, err)
		assert.Equal(t, StatusRejected, ret.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
