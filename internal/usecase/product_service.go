package usecase

import (
	"context"
	"time"

	"github.com/Gunvolt24/wb_shop/internal/cache"
	"github.com/Gunvolt24/wb_shop/internal/domain"
	"github.com/Gunvolt24/wb_shop/internal/ports"
)

// productListKey — общий ключ кэша списка товаров.
const productListKey = "product_list"

// Проверка, что ProductService удовлетворяет интерфейсу ProductCatalog.
var _ ports.ProductCatalog = (*ProductService)(nil)

// ProductService — CRUD каталога товаров поверх репозитория
// с cache-aside чтением списка и сбросом кэша на каждой записи.
type ProductService struct {
	repo ports.ProductRepository
	list *cache.Collection[domain.Product]
	log  ports.Logger
	now  func() time.Time
}

// NewProductService — DI-конструктор. ttl — время жизни списка в кэше.
func NewProductService(repo ports.ProductRepository, backend ports.CacheBackend, log ports.Logger, ttl time.Duration) *ProductService {
	return &ProductService{
		repo: repo,
		list: cache.NewCollection[domain.Product](backend, log, productListKey, ttl),
		log:  log,
		now:  time.Now,
	}
}

// GetAll — список товаров: сначала кэш, при промахе — репозиторий с записью в кэш.
// Закэшированный пустой список — тоже попадание.
func (s *ProductService) GetAll(ctx context.Context) ([]domain.Product, error) {
	if products, ok := s.list.Get(ctx); ok {
		return products, nil
	}

	products, err := s.repo.GetAll(ctx)
	if err != nil {
		s.log.Errorf(ctx, "products GetAll failed: %v", err)
		return nil, err
	}

	s.list.Set(ctx, products)
	return products, nil
}

// Get — товар по id, всегда напрямую из репозитория.
// Поштучный кэш сознательно не ведём: свежесть карточки важнее экономии чтения.
// (nil, nil), если товара нет.
func (s *ProductService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Errorf(ctx, "product Get failed id=%d err=%v", id, err)
		return nil, err
	}
	return product, nil
}

// Create — создать товар и сбросить кэш списка.
func (s *ProductService) Create(ctx context.Context, draft domain.ProductDraft) (*domain.Product, error) {
	product := &domain.Product{
		Name:        draft.Name,
		Description: draft.Description,
		Price:       draft.Price,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.repo.Add(ctx, product); err != nil {
		s.log.Errorf(ctx, "product Create failed name=%q err=%v", draft.Name, err)
		return nil, err
	}

	s.list.Invalidate(ctx)
	return product, nil
}

// Update — обновить товар по id; domain.ErrNotFound при отсутствующем id.
// Кэш сбрасывается только после успешной записи.
func (s *ProductService) Update(ctx context.Context, id int64, draft domain.ProductDraft) (*domain.Product, error) {
	product := &domain.Product{
		ID:          id,
		Name:        draft.Name,
		Description: draft.Description,
		Price:       draft.Price,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.repo.Update(ctx, product); err != nil {
		s.log.Errorf(ctx, "product Update failed id=%d err=%v", id, err)
		return nil, err
	}

	s.list.Invalidate(ctx)
	return product, nil
}

// Delete — удалить товар по id; domain.ErrNotFound при отсутствующем id.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Errorf(ctx, "product Delete failed id=%d err=%v", id, err)
		return err
	}

	s.list.Invalidate(ctx)
	return nil
}
