package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/Gunvolt24/wb_shop/internal/domain"
	"github.com/Gunvolt24/wb_shop/internal/ports/mocks"
)

func TestIntake_ValidMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	orders := mocks.NewMockOrderManager(ctrl)

	orders.EXPECT().
		PlaceOrder(gomock.Any(), int64(7), []domain.OrderItem{{ProductID: 1, Quantity: 2}, {ProductID: 3, Quantity: 1}}).
		Return(nil)

	in := NewOrderIntake(orders, nopLogger{})
	raw := []byte(`{"user_id":7,"items":[{"product_id":1,"quantity":2},{"product_id":3,"quantity":1}]}`)
	if err := in.HandleMessage(context.Background(), raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIntake_GarbageJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	orders := mocks.NewMockOrderManager(ctrl)
	orders.EXPECT().PlaceOrder(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	in := NewOrderIntake(orders, nopLogger{})
	if err := in.HandleMessage(context.Background(), []byte("{{{")); !errors.Is(err, ErrInvalidMessage) {
		t.Fatalf("want ErrInvalidMessage, got %v", err)
	}
}

func TestIntake_UnknownField(t *testing.T) {
	ctrl := gomock.NewController(t)
	orders := mocks.NewMockOrderManager(ctrl)
	orders.EXPECT().PlaceOrder(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	in := NewOrderIntake(orders, nopLogger{})
	raw := []byte(`{"user_id":7,"items":[{"product_id":1,"quantity":2}],"extra":true}`)
	if err := in.HandleMessage(context.Background(), raw); !errors.Is(err, ErrInvalidMessage) {
		t.Fatalf("want ErrInvalidMessage, got %v", err)
	}
}

func TestIntake_InvalidFields(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"zero user", `{"user_id":0,"items":[{"product_id":1,"quantity":1}]}`},
		{"no items", `{"user_id":7,"items":[]}`},
		{"zero product", `{"user_id":7,"items":[{"product_id":0,"quantity":1}]}`},
		{"zero quantity", `{"user_id":7,"items":[{"product_id":1,"quantity":0}]}`},
		{"negative quantity", `{"user_id":7,"items":[{"product_id":1,"quantity":-2}]}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			orders := mocks.NewMockOrderManager(ctrl)
			orders.EXPECT().PlaceOrder(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			in := NewOrderIntake(orders, nopLogger{})
			if err := in.HandleMessage(context.Background(), []byte(tt.raw)); !errors.Is(err, ErrInvalidMessage) {
				t.Fatalf("want ErrInvalidMessage, got %v", err)
			}
		})
	}
}

func TestIntake_TransientServiceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	orders := mocks.NewMockOrderManager(ctrl)

	dbErr := errors.New("db down")
	orders.EXPECT().PlaceOrder(gomock.Any(), int64(7), gomock.Any()).Return(dbErr)

	in := NewOrderIntake(orders, nopLogger{})
	raw := []byte(`{"user_id":7,"items":[{"product_id":1,"quantity":1}]}`)
	err := in.HandleMessage(context.Background(), raw)
	if !errors.Is(err, dbErr) {
		t.Fatalf("want wrapped service error, got %v", err)
	}
	if errors.Is(err, ErrInvalidMessage) {
		t.Fatal("transient error must not be classified as invalid message")
	}
}
