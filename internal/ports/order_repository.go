package ports

import (
	"context"

	"github.com/Gunvolt24/wb_shop/internal/domain"
)

type OrderRepository interface {
	// AddOrder — одиночная вставка (PlaceOrder пишет позиции по одной).
	AddOrder(ctx context.Context, order *domain.Order) error

	// AddOrders — единая bulk-вставка пакета валидированных заказов (CSV-импорт).
	AddOrders(ctx context.Context, orders []domain.Order) error

	// HistoryByUser — история заказов пользователя (join заказа, пользователя и товара).
	HistoryByUser(ctx context.Context, userID int64) ([]domain.OrderHistory, error)
}
