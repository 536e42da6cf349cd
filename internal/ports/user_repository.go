package ports

import (
	"context"

	"github.com/Gunvolt24/wb_shop/internal/domain"
)

type UserRepository interface {
	// GetByUsername — (nil, nil), если пользователя нет.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	Add(ctx context.Context, user *domain.User) error
}
