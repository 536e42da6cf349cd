package ports

import (
	"context"

	"github.com/Gunvolt24/wb_shop/internal/domain"
)

type ProductRepository interface {
	GetAll(ctx context.Context) ([]domain.Product, error)

	// GetByID — (nil, nil), если товара нет.
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	Add(ctx context.Context, product *domain.Product) error

	// Update/Delete возвращают domain.ErrNotFound при отсутствующем id.
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
}
