//go:build integration

package testutil

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gunvolt24/wb_shop/internal/auth"
	"github.com/Gunvolt24/wb_shop/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// SeedUser — вставляет пользователя с захэшированным паролем, возвращает его id.
func SeedUser(ctx context.Context, pool *pgxpool.Pool, username, password string) (int64, error) {
	hash, salt, err := auth.HashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	var id int64
	err = pool.QueryRow(ctx, `
		INSERT INTO users (username, password_hash, password_salt, created_at)
		VALUES ($1, $2, $3, now())
		RETURNING id
	`, username, hash, salt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("seed user: %w", err)
	}
	return id, nil
}

// SeedProduct — вставляет товар, возвращает его id.
func SeedProduct(ctx context.Context, pool *pgxpool.Pool, name string, price float64) (int64, error) {
	var id int64
	err := pool.QueryRow(ctx, `
		INSERT INTO products (name, description, price)
		VALUES ($1, '', $2)
		RETURNING id
	`, name, price).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("seed product: %w", err)
	}
	return id, nil
}

// MakeOrder — валидный заказ для вставки через репозиторий.
func MakeOrder(userID, productID int64, opts ...func(*domain.Order)) domain.Order {
	o := domain.Order{
		UserID:    userID,
		ProductID: productID,
		Quantity:  1,
		OrderDate: time.Now().UTC().Truncate(time.Second),
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func WithQuantity(q int) func(*domain.Order) {
	return func(o *domain.Order) { o.Quantity = q }
}

func WithOrderDate(t time.Time) func(*domain.Order) {
	return func(o *domain.Order) { o.OrderDate = t }
}

// MakeOrdersCSV — собирает CSV-документ импорта из строк вида "1,1001,2,2023-01-01".
func MakeOrdersCSV(rows ...string) string {
	doc := "ProductId,UserId,Quantity,OrderDate\n"
	for _, r := range rows {
		doc += r + "\n"
	}
	return doc
}
