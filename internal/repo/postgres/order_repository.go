package postgres

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/wb_shop/internal/domain"
	"github.com/Gunvolt24/wb_shop/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что OrderRepository удовлетворяет интерфейсу OrderRepository.
var _ ports.OrderRepository = (*OrderRepository)(nil)

// OrderRepository — реализация репозитория заказов на Postgres (pgxpool).
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository — конструктор OrderRepository.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository { return &OrderRepository{pool: pool} }

// AddOrder — одиночная вставка заказа; id назначает база.
func (r *OrderRepository) AddOrder(ctx context.Context, order *domain.Order) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO orders (user_id, product_id, quantity, order_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, order.UserID, order.ProductID, order.Quantity, order.OrderDate).Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// AddOrders — bulk-вставка пакета через COPY (CopyFromRows); быстрее, чем INSERT в цикле.
// Пакет уходит одним стримом: либо весь, либо никакой.
func (r *OrderRepository) AddOrders(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []any{o.UserID, o.ProductID, o.Quantity, o.OrderDate})
	}

	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"orders"},
		[]string{"user_id", "product_id", "quantity", "order_date"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copy orders: %w", err)
	}
	return nil
}

// HistoryByUser — история заказов пользователя: join заказов с пользователем и товаром.
// Порядок — по дате заказа, новые первыми, при равенстве — по id.
func (r *OrderRepository) HistoryByUser(ctx context.Context, userID int64) ([]domain.OrderHistory, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT o.user_id, o.id, o.order_date, u.username, o.product_id, p.name, o.quantity, p.price
		FROM orders o
		JOIN users u ON u.id = o.user_id
		JOIN products p ON p.id = o.product_id
		WHERE o.user_id = $1
		ORDER BY o.order_date DESC, o.id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("select history: %w", err)
	}
	defer rows.Close()

	history := make([]domain.OrderHistory, 0)
	for rows.Next() {
		var h domain.OrderHistory
		if err := rows.Scan(
			&h.UserID, &h.OrderID, &h.OrderDate, &h.Username,
			&h.ProductID, &h.ProductName, &h.Quantity, &h.Price,
		); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		history = append(history, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history rows: %w", err)
	}
	return history, nil
}
