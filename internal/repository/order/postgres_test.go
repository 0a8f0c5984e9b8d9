package order

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

func setupRepo(t *testing.T) (Repository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgres(mock), mock
}

func checkoutLines() []domain.OrderLine {
	return []domain.OrderLine{
		{ProductID: 1, Quantity: 2, PriceCents: 1999},
		{ProductID: 2, Quantity: 1, PriceCents: 450},
	}
}

func TestCreateFromCart_DecrementsStockAndFlipsAvailability(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectExec("UPDATE products").
		WithArgs(3, int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery("SELECT count").
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	// Last unit: count hits zero, availability flips in the same statement.
	mock.ExpectExec("UPDATE products").
		WithArgs(0, int64(2)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(int64(77), domain.OrderStatusConfirmed).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))
	mock.ExpectExec("INSERT INTO order_lines").
		WithArgs(int64(42), int64(1), 2, int64(1999)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO order_lines").
		WithArgs(int64(42), int64(2), 1, int64(450)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()
	mock.ExpectRollback() // deferred rollback after commit is a no-op

	orderID, err := repo.CreateFromCart(context.Background(), 77, checkoutLines())
	require.NoError(t, err)
	assert.Equal(t, int64(42), orderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFromCart_InsufficientStockRollsBack(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectExec("UPDATE products").
		WithArgs(3, int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery("SELECT count").
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectRollback()

	_, err := repo.CreateFromCart(context.Background(), 77, checkoutLines())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict), "expected ErrConflict, got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFromCart_VanishedProductRollsBack(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}))
	mock.ExpectRollback()

	_, err := repo.CreateFromCart(context.Background(), 77, checkoutLines())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict), "expected ErrConflict, got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkPaid_ConfirmedOrderOnly(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectExec("UPDATE orders").
		WithArgs(domain.OrderStatusPaid, int64(42), domain.OrderStatusConfirmed).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.MarkPaid(context.Background(), 42))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkPaid_AlreadyPaidConflicts(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectExec("UPDATE orders").
		WithArgs(domain.OrderStatusPaid, int64(42), domain.OrderStatusConfirmed).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.MarkPaid(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict), "expected ErrConflict, got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateDetails_NotFound(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectExec("UPDATE orders").
		WithArgs("online", "free", "Riga", "1 Main St", int64(9)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdateDetails(context.Background(), 9, "online", "free", "Riga", "1 Main St")
	assert.True(t, errors.Is(err, domain.ErrNotFound), "expected ErrNotFound, got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
