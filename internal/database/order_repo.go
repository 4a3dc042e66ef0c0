package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/foxxcyber/menu-board/internal/models"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("order status transition not allowed")
)

const orderColumns = `id::text, items, total, status, customer_name, table_number, notes, created_at`

func scanOrder(row pgx.Row) (*models.Order, error) {
	order := &models.Order{}
	err := row.Scan(
		&order.ID, &order.Items, &order.Total, &order.Status,
		&order.CustomerName, &order.TableNumber, &order.Notes, &order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if order.Items == nil {
		order.Items = []models.OrderLine{}
	}
	return order, nil
}

// ListOrders returns orders newest first, optionally filtered by status
func (db *DB) ListOrders(ctx context.Context, status models.OrderStatus) ([]*models.Order, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
	`, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []*models.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

// GetOrderByID retrieves an order by ID
func (db *DB) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrOrderNotFound
	}

	order, err := scanOrder(db.Pool.QueryRow(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// CreateOrder stores a new pending order with the given total
func (db *DB) CreateOrder(ctx context.Context, req *models.CreateOrderRequest, total float64) (*models.Order, error) {
	return scanOrder(db.Pool.QueryRow(ctx, `
		INSERT INTO orders (id, items, total, status, customer_name, table_number, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING `+orderColumns,
		uuid.NewString(), req.Items, total, string(models.OrderPending),
		req.CustomerName, req.TableNumber, req.Notes,
	))
}

// UpdateOrderStatus moves an order to next if its current status allows it
func (db *DB) UpdateOrderStatus(ctx context.Context, id string, next models.OrderStatus) (*models.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrOrderNotFound
	}

	var order *models.Order
	err := pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		var current models.OrderStatus
		err := tx.QueryRow(ctx,
			"SELECT status FROM orders WHERE id = $1 FOR UPDATE", id,
		).Scan(&current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrOrderNotFound
			}
			return err
		}

		if !current.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current, next)
		}

		order, err = scanOrder(tx.QueryRow(ctx, `
			UPDATE orders SET status = $1
			WHERE id = $2
			RETURNING `+orderColumns,
			string(next), id,
		))
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
