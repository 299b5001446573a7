package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/takeariz/storefront/internal/models"
	"github.com/takeariz/storefront/internal/utils"
)

// ErrInsufficientStock is returned when an order would drive a product's
// stock negative.
var ErrInsufficientStock = fmt.Errorf("insufficient stock")

// ErrPaidExceedsTotal is returned when a payment credit would break the
// paid_amount <= total_amount invariant.
var ErrPaidExceedsTotal = fmt.Errorf("paid amount exceeds order total")

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, page, size int) ([]models.Order, int, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]models.Order, int, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	AddPayment(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

// CreateOrder inserts the order with its frozen line items and decrements
// product stock, all in one transaction. The stock update is conditional so a
// concurrent checkout cannot drive stock negative.
func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback()

	query := `
		INSERT INTO orders (id, user_id, status, total_amount, paid_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`

	_, err = tx.ExecContext(dbCtx, query, order.ID, order.UserID, order.Status, order.TotalAmount, order.PaidAmount)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, product_name, quantity, unit_price, color, size, material, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
	`

	stockQuery := `
		UPDATE products SET stock = stock - $1, updated_at = NOW()
		WHERE id = $2 AND stock >= $1
	`

	for _, item := range order.Items {

		_, err := tx.ExecContext(dbCtx, itemQuery,
			item.ID, order.ID, item.ProductID, item.ProductName, item.Quantity,
			item.UnitPrice, item.Color, item.Size, item.Material)
		if err != nil {
			return fmt.Errorf("failed to insert an order item: %w", err)
		}

		result, err := tx.ExecContext(dbCtx, stockQuery, item.Quantity, item.ProductID)
		if err != nil {
			return fmt.Errorf("failed to reserve stock: %w", err)
		}

		updated, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get updated rows: %w", err)
		}

		if updated == 0 {
			return ErrInsufficientStock
		}
	}

	return tx.Commit()
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order := &models.Order{ID: id}

	query := `
		SELECT user_id, status, total_amount, paid_amount, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, id).
		Scan(&order.UserID, &order.Status, &order.TotalAmount, &order.PaidAmount, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("failed to get the order: %w", err)
	}

	items, err := r.itemsForOrder(dbCtx, id)
	if err != nil {
		return nil, err
	}

	order.Items = items

	return order, nil
}

func (r *orderRepository) itemsForOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {

	query := `
		SELECT id, product_id, product_name, quantity, unit_price, color, size, material, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at
	`

	rows, err := r.DB.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get the order items: %w", err)
	}

	defer rows.Close()

	var items []models.OrderItem

	for rows.Next() {

		item := models.OrderItem{OrderID: orderID}

		err := rows.Scan(&item.ID, &item.ProductID, &item.ProductName, &item.Quantity,
			&item.UnitPrice, &item.Color, &item.Size, &item.Material, &item.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *orderRepository) ListOrders(ctx context.Context, page, size int) ([]models.Order, int, error) {
	return r.listOrders(ctx, uuid.Nil, page, size)
}

func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]models.Order, int, error) {
	return r.listOrders(ctx, userID, page, size)
}

// listOrders pages orders newest first; uuid.Nil means "all users".
func (r *orderRepository) listOrders(ctx context.Context, userID uuid.UUID, page, size int) ([]models.Order, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	filtered := userID != uuid.Nil

	var total int

	countQuery := `SELECT COUNT(*) FROM orders`
	countArgs := []any{}

	if filtered {
		countQuery += ` WHERE user_id = $1`
		countArgs = append(countArgs, userID)
	}

	if err := r.DB.QueryRowContext(dbCtx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	query := `
		SELECT id, user_id, status, total_amount, paid_amount, created_at, updated_at
		FROM orders
	`
	args := []any{}

	if filtered {
		query += ` WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, userID, size, offset)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		args = append(args, size, offset)
	}

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	defer rows.Close()

	var orders []models.Order

	for rows.Next() {

		var order models.Order

		err := rows.Scan(&order.ID, &order.UserID, &order.Status, &order.TotalAmount,
			&order.PaidAmount, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan the orders: %w", err)
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range orders {
		items, err := r.itemsForOrder(dbCtx, orders[i].ID)
		if err != nil {
			return nil, 0, err
		}

		orders[i].Items = items
	}

	return orders, total, nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.DB.ExecContext(dbCtx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updated == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// AddPayment credits a received payment against the order. The guard clause
// keeps paid_amount within the order total no matter how the webhook retries.
func (r *orderRepository) AddPayment(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE orders SET paid_amount = paid_amount + $1, updated_at = NOW()
		WHERE id = $2 AND paid_amount + $1 <= total_amount
	`

	result, err := r.DB.ExecContext(dbCtx, query, amount, id)
	if err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updated == 0 {
		return ErrPaidExceedsTotal
	}

	return nil
}
