package usecase

import (
	"context"
	"time"

	"github.com/Gunvolt24/wb_shop/internal/cache"
	"github.com/Gunvolt24/wb_shop/internal/domain"
	"github.com/Gunvolt24/wb_shop/internal/ports"
)

// orderListKey — единый общий ключ кэша истории заказов (не per-user).
const orderListKey = "order_list"

// Проверка, что OrderService удовлетворяет интерфейсу OrderManager.
var _ ports.OrderManager = (*OrderService)(nil)

// OrderService — оформление заказов, история с cache-aside чтением и CSV-импорт.
type OrderService struct {
	repo     ports.OrderRepository
	products ports.ProductCatalog
	history  *cache.Collection[domain.OrderHistory]
	log      ports.Logger
	now      func() time.Time
}

// NewOrderService — DI-конструктор. ttl — время жизни "order_list" в кэше.
func NewOrderService(
	repo ports.OrderRepository,
	products ports.ProductCatalog,
	backend ports.CacheBackend,
	log ports.Logger,
	ttl time.Duration,
) *OrderService {
	return &OrderService{
		repo:     repo,
		products: products,
		history:  cache.NewCollection[domain.OrderHistory](backend, log, orderListKey, ttl),
		log:      log,
		now:      time.Now,
	}
}

// PlaceOrder — оформить заказ: по одной вставке на позицию, в порядке запроса.
// Позиции пишутся отдельными вызовами без общей транзакции: сбой в середине
// оставляет уже записанные строки (известный пробел атомарности, сохранён).
// Кэш истории сбрасывается один раз после успешной записи всех позиций.
func (s *OrderService) PlaceOrder(ctx context.Context, userID int64, items []domain.OrderItem) error {
	for _, item := range items {
		order := &domain.Order{
			UserID:    userID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			OrderDate: s.now().UTC(),
		}
		if err := s.repo.AddOrder(ctx, order); err != nil {
			s.log.Errorf(ctx, "place order failed user_id=%d product_id=%d err=%v", userID, item.ProductID, err)
			return err
		}
	}

	s.history.Invalidate(ctx)
	s.log.Infof(ctx, "order placed user_id=%d items=%d", userID, len(items))
	return nil
}

// OrderHistory — история заказов пользователя через общий ключ "order_list".
//
// Попадание: список фильтруется в памяти до строк запрашивающего пользователя,
// и отфильтрованное подмножество пишется ОБРАТНО под тот же ключ с тем же TTL —
// после каждого попадания общий кэш сужается до данных последнего пользователя.
// Поведение перенесено как есть; вероятно непреднамеренное, вопрос о per-user
// ключах открыт (см. DESIGN.md). Закэшированный пустой список считается промахом.
//
// Промах: из репозитория читается история именно этого пользователя, и в общий
// ключ попадает этот per-user результат.
func (s *OrderService) OrderHistory(ctx context.Context, userID int64) ([]domain.OrderHistory, error) {
	if cached, ok := s.history.Get(ctx); ok && len(cached) > 0 {
		filtered := make([]domain.OrderHistory, 0, len(cached))
		for _, h := range cached {
			if h.UserID == userID {
				filtered = append(filtered, h)
			}
		}
		s.history.Set(ctx, filtered)
		return filtered, nil
	}

	orders, err := s.repo.HistoryByUser(ctx, userID)
	if err != nil {
		s.log.Errorf(ctx, "order history failed user_id=%d err=%v", userID, err)
		return nil, err
	}

	s.history.Set(ctx, orders)
	return orders, nil
}
