package kafka

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Gunvolt24/wb_shop/internal/domain"
	"github.com/Gunvolt24/wb_shop/internal/ports"
)

// ErrInvalidMessage — сообщение не подлежит обработке никогда (мусорный JSON
// или невалидные поля). Консьюмер коммитит такие и идёт дальше.
var ErrInvalidMessage = errors.New("invalid order message")

// placeOrderMessage — ожидаемая форма сообщения в топике заказов.
type placeOrderMessage struct {
	UserID int64 `json:"user_id"`
	Items  []struct {
		ProductID int64 `json:"product_id"`
		Quantity  int   `json:"quantity"`
	} `json:"items"`
}

// OrderIntake — мост из топика заказов в сервис заказов.
type OrderIntake struct {
	orders ports.OrderManager
	log    ports.Logger
}

// NewOrderIntake — DI-конструктор.
func NewOrderIntake(orders ports.OrderManager, log ports.Logger) *OrderIntake {
	return &OrderIntake{orders: orders, log: log}
}

// HandleMessage — разбор и оформление заказа из сырого сообщения.
// Строгий декодер: неизвестные поля отклоняются, чтобы мусор не проходил молча.
func (i *OrderIntake) HandleMessage(ctx context.Context, raw []byte) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var msg placeOrderMessage
	if err := dec.Decode(&msg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if err := validateMessage(&msg); err != nil {
		return err
	}

	items := make([]domain.OrderItem, 0, len(msg.Items))
	for _, it := range msg.Items {
		items = append(items, domain.OrderItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	if err := i.orders.PlaceOrder(ctx, msg.UserID, items); err != nil {
		return fmt.Errorf("place order user_id=%d: %w", msg.UserID, err)
	}
	i.log.Infof(ctx, "order intake: placed user_id=%d items=%d", msg.UserID, len(items))
	return nil
}

func validateMessage(msg *placeOrderMessage) error {
	if msg.UserID <= 0 {
		return fmt.Errorf("%w: user_id must be positive", ErrInvalidMessage)
	}
	if len(msg.Items) == 0 {
		return fmt.Errorf("%w: items must not be empty", ErrInvalidMessage)
	}
	for idx, it := range msg.Items {
		if it.ProductID <= 0 {
			return fmt.Errorf("%w: items[%d].product_id must be positive", ErrInvalidMessage, idx)
		}
		if it.Quantity <= 0 {
			return fmt.Errorf("%w: items[%d].quantity must be positive", ErrInvalidMessage, idx)
		}
	}
	return nil
}
