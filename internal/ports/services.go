package ports

import (
	"context"
	"io"

	"github.com/Gunvolt24/wb_shop/internal/domain"
)

// ProductCatalog — сервис каталога товаров (для транспорта и импорта).
type ProductCatalog interface {
	GetAll(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, draft domain.ProductDraft) (*domain.Product, error)
	Update(ctx context.Context, id int64, draft domain.ProductDraft) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

// OrderManager — сервис заказов: оформление, история, CSV-импорт.
type OrderManager interface {
	PlaceOrder(ctx context.Context, userID int64, items []domain.OrderItem) error
	OrderHistory(ctx context.Context, userID int64) ([]domain.OrderHistory, error)
	ImportCsv(ctx context.Context, r io.Reader) (*domain.ImportOutcome, error)
}

// UserAuth — регистрация, вход и проверка токенов.
type UserAuth interface {
	// Register — false, если имя занято.
	Register(ctx context.Context, username, password string) (bool, error)

	// Login — пустой токен при неверных учётных данных (это не ошибка).
	Login(ctx context.Context, username, password string) (string, error)

	IsTokenValid(token string) bool
	GetSession(token string) (domain.Session, bool)
}
