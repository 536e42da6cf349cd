package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Gunvolt24/wb_shop/internal/cache/memory"
	"github.com/Gunvolt24/wb_shop/internal/domain"
	"github.com/Gunvolt24/wb_shop/internal/ports/mocks"
	"github.com/Gunvolt24/wb_shop/internal/usecase"
	"github.com/golang/mock/gomock"
)

func TestPlaceOrder_WritesItemsInOrderAndInvalidatesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockOrderRepository(ctrl)
	products := mocks.NewMockProductCatalog(ctrl)
	backend := mocks.NewMockCacheBackend(ctrl)

	matchItem := func(productID int64, qty int) gomock.Matcher {
		return orderMatcher{userID: 1, productID: productID, quantity: qty}
	}

	gomock.InOrder(
		repo.EXPECT().AddOrder(gomock.Any(), matchItem(100, 2)).Return(nil),
		repo.EXPECT().AddOrder(gomock.Any(), matchItem(101, 3)).Return(nil),
		backend.EXPECT().Remove(gomock.Any(), "order_list").Return(nil).Times(1),
	)

	svc := usecase.NewOrderService(repo, products, backend, noopLogger{}, 10*time.Minute)

	err := svc.PlaceOrder(context.Background(), 1, []domain.OrderItem{
		{ProductID: 100, Quantity: 2},
		{ProductID: 101, Quantity: 3},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

type orderMatcher struct {
	userID    int64
	productID int64
	quantity  int
}

func (m orderMatcher) Matches(x any) bool {
	o, ok := x.(*domain.Order)
	return ok && o.UserID == m.userID && o.ProductID == m.productID &&
		o.Quantity == m.quantity && !o.OrderDate.IsZero()
}

func (m orderMatcher) String() string {
	return "order matching user/product/quantity with non-zero date"
}

func TestPlaceOrder_MidBatchFailure_NoInvalidation(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockOrderRepository(ctrl)
	products := mocks.NewMockProductCatalog(ctrl)
	backend := mocks.NewMockCacheBackend(ctrl)

	repoErr := errors.New("insert failed")
	gomock.InOrder(
		repo.EXPECT().AddOrder(gomock.Any(), gomock.Any()).Return(nil),
		repo.EXPECT().AddOrder(gomock.Any(), gomock.Any()).Return(repoErr),
	)
	// вторая позиция упала: кэш не сбрасываем, ошибка уходит наверх как есть
	backend.EXPECT().Remove(gomock.Any(), gomock.Any()).Times(0)

	svc := usecase.NewOrderService(repo, products, backend, noopLogger{}, 10*time.Minute)

	err := svc.PlaceOrder(context.Background(), 1, []domain.OrderItem{
		{ProductID: 100, Quantity: 1},
		{ProductID: 101, Quantity: 1},
		{ProductID: 102, Quantity: 1},
	})
	if !errors.Is(err, repoErr) {
		t.Fatalf("want repo error, got %v", err)
	}
}

// Попадание в общий ключ: результат фильтруется до запрашивающего пользователя,
// и общий кэш сужается до его подмножества (воспроизводим поведение точно).
func TestOrderHistory_CacheHit_FilterAndNarrow(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockOrderRepository(ctrl)
	products := mocks.NewMockProductCatalog(ctrl)
	backend := memory.NewBackend()
	ctx := context.Background()

	mixed := []domain.OrderHistory{
		{UserID: 1, OrderID: 10, ProductName: "mouse"},
		{UserID: 2, OrderID: 20, ProductName: "keyboard"},
		{UserID: 1, OrderID: 11, ProductName: "ssd"},
	}
	_ = backend.Set(ctx, "order_list", mustJSON(t, mixed), 10*time.Minute)

	// репозиторий при попадании не вызывается
	repo.EXPECT().HistoryByUser(gomock.Any(), gomock.Any()).Times(0)

	svc := usecase.NewOrderService(repo, products, backend, noopLogger{}, 10*time.Minute)

	got, err := svc.OrderHistory(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].OrderID != 10 || got[1].OrderID != 11 {
		t.Fatalf("expected only user 1 entries in input order, got %+v", got)
	}

	// общий ключ перезаписан отфильтрованным подмножеством
	raw, found, _ := backend.Get(ctx, "order_list")
	if !found {
		t.Fatalf("order_list must stay cached")
	}
	var cached []domain.OrderHistory
	if err := json.Unmarshal(raw, &cached); err != nil {
		t.Fatalf("invalid cached json: %v", err)
	}
	if len(cached) != 2 || cached[0].UserID != 1 || cached[1].UserID != 1 {
		t.Fatalf("cache must narrow to user 1 subset, got %+v", cached)
	}
}

func TestOrderHistory_CacheMiss_LoadsAndCachesPerUserResult(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockOrderRepository(ctrl)
	products := mocks.NewMockProductCatalog(ctrl)
	backend := memory.NewBackend()
	ctx := context.Background()

	want := []domain.OrderHistory{{UserID: 3, OrderID: 30}, {UserID: 3, OrderID: 31}}
	repo.EXPECT().HistoryByUser(gomock.Any(), int64(3)).Return(want, nil).Times(1)

	svc := usecase.NewOrderService(repo, products, backend, noopLogger{}, 10*time.Minute)

	got, err := svc.OrderHistory(ctx, 3)
	if err != nil || len(got) != 2 {
		t.Fatalf("unexpected result: %+v err=%v", got, err)
	}

	raw, found, _ := backend.Get(ctx, "order_list")
	if !found {
		t.Fatalf("per-user result must be cached under shared key")
	}
	var cached []domain.OrderHistory
	_ = json.Unmarshal(raw, &cached)
	if len(cached) != 2 || cached[0].OrderID != 30 {
		t.Fatalf("unexpected cached value: %+v", cached)
	}
}

// Закэшированный пустой список — промах: идём в репозиторий (как в исходной логике).
func TestOrderHistory_EmptyCachedListIsAMiss(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockOrderRepository(ctrl)
	products := mocks.NewMockProductCatalog(ctrl)
	backend := memory.NewBackend()
	ctx := context.Background()

	_ = backend.Set(ctx, "order_list", []byte("[]"), 10*time.Minute)
	repo.EXPECT().HistoryByUser(gomock.Any(), int64(5)).Return(nil, nil).Times(1)

	svc := usecase.NewOrderService(repo, products, backend, noopLogger{}, 10*time.Minute)

	if _, err := svc.OrderHistory(ctx, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOrderHistory_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockOrderRepository(ctrl)
	products := mocks.NewMockProductCatalog(ctrl)
	backend := memory.NewBackend()

	repoErr := errors.New("db down")
	repo.EXPECT().HistoryByUser(gomock.Any(), int64(1)).Return(nil, repoErr)

	svc := usecase.NewOrderService(repo, products, backend, noopLogger{}, 10*time.Minute)

	if _, err := svc.OrderHistory(context.Background(), 1); !errors.Is(err, repoErr) {
		t.Fatalf("want repo error, got %v", err)
	}
}
