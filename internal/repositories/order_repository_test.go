package repository_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/takeariz/storefront/internal/models"
	repository "github.com/takeariz/storefront/internal/repositories"
)

func pendingOrder() *models.Order {
	orderID := uuid.New()

	return &models.Order{
		ID:          orderID,
		UserID:      uuid.New(),
		Status:      models.OrderStatusPending,
		TotalAmount: decimal.NewFromInt(700000),
		PaidAmount:  decimal.Zero,
		Items: []models.OrderItem{
			{
				ID:          uuid.New(),
				OrderID:     orderID,
				ProductID:   uuid.New(),
				ProductName: "Canvas Tote",
				Quantity:    2,
				UnitPrice:   decimal.NewFromInt(350000),
				Color:       "black",
			},
		},
	}
}

func TestOrderRepositoryCreateOrder(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewOrderRepo(db)
	ctx := t.Context()

	t.Run("Success", func(t *testing.T) {
		order := pendingOrder()
		item := order.Items[0]

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO orders`).
			WithArgs(order.ID, order.UserID, order.Status, order.TotalAmount, order.PaidAmount).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO order_items`).
			WithArgs(item.ID, order.ID, item.ProductID, item.ProductName, item.Quantity,
				item.UnitPrice, item.Color, item.Size, item.Material).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE products SET stock = stock - \$1`).
			WithArgs(item.Quantity, item.ProductID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.CreateOrder(ctx, order))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("InsufficientStock", func(t *testing.T) {
		order := pendingOrder()
		item := order.Items[0]

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO orders`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO order_items`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		// Conditional update touches no row when stock is too low.
		mock.ExpectExec(`UPDATE products SET stock = stock - \$1`).
			WithArgs(item.Quantity, item.ProductID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.CreateOrder(ctx, order)

		require.ErrorIs(t, err, repository.ErrInsufficientStock)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderRepositoryGetOrderByID(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewOrderRepo(db)
	ctx := t.Context()

	t.Run("Success", func(t *testing.T) {
		order := pendingOrder()
		item := order.Items[0]
		now := time.Now()

		mock.ExpectQuery(`SELECT user_id, status, total_amount, paid_amount, created_at, updated_at FROM orders WHERE id = \$1`).
			WithArgs(order.ID).
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "status", "total_amount", "paid_amount", "created_at", "updated_at"}).
				AddRow(order.UserID, order.Status, order.TotalAmount.String(), order.PaidAmount.String(), now, now))
		mock.ExpectQuery(`SELECT id, product_id, product_name, quantity, unit_price, color, size, material, created_at FROM order_items`).
			WithArgs(order.ID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "product_name", "quantity", "unit_price", "color", "size", "material", "created_at"}).
				AddRow(item.ID, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice.String(), item.Color, item.Size, item.Material, now))

		got, err := repo.GetOrderByID(ctx, order.ID)

		require.NoError(t, err)
		assert.Equal(t, order.UserID, got.UserID)
		require.Len(t, got.Items, 1)
		assert.True(t, got.Items[0].UnitPrice.Equal(decimal.NewFromInt(350000)))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		id := uuid.New()

		mock.ExpectQuery(`SELECT user_id, status, total_amount, paid_amount, created_at, updated_at FROM orders WHERE id = \$1`).
			WithArgs(id).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetOrderByID(ctx, id)

		require.ErrorIs(t, err, sql.ErrNoRows)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderRepositoryUpdateOrderStatus(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewOrderRepo(db)
	ctx := t.Context()

	t.Run("Success", func(t *testing.T) {
		id := uuid.New()

		mock.ExpectExec(`UPDATE orders SET status = \$1, updated_at = NOW\(\) WHERE id = \$2`).
			WithArgs(models.OrderStatusShipped, id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateOrderStatus(ctx, id, models.OrderStatusShipped))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		id := uuid.New()

		mock.ExpectExec(`UPDATE orders SET status = \$1, updated_at = NOW\(\) WHERE id = \$2`).
			WithArgs(models.OrderStatusShipped, id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateOrderStatus(ctx, id, models.OrderStatusShipped)

		require.ErrorIs(t, err, sql.ErrNoRows)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderRepositoryAddPayment(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewOrderRepo(db)
	ctx := t.Context()

	t.Run("Success", func(t *testing.T) {
		id := uuid.New()
		amount := decimal.NewFromInt(350000)

		mock.ExpectExec(`UPDATE orders SET paid_amount = paid_amount \+ \$1`).
			WithArgs(amount, id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.AddPayment(ctx, id, amount))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ExceedsTotal", func(t *testing.T) {
		id := uuid.New()
		amount := decimal.NewFromInt(999999999)

		// The guard clause filters the row out, so nothing is updated.
		mock.ExpectExec(`UPDATE orders SET paid_amount = paid_amount \+ \$1`).
			WithArgs(amount, id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.AddPayment(ctx, id, amount)

		require.ErrorIs(t, err, repository.ErrPaidExceedsTotal)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
