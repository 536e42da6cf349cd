// Пакет cache — cache-aside шлюз над строковым key-value бэкендом.
// Кэш — не источник истины: любой сбой бэкенда логируется и поглощается,
// бизнес-операция при полностью лежащем кэше обязана работать (медленнее).
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Gunvolt24/wb_shop/internal/ports"
	"github.com/Gunvolt24/wb_shop/pkg/metrics"
)

// Collection — типизированный доступ к именованному списку в кэше
// (например, "product_list" или "order_list") с фиксированным TTL.
type Collection[T any] struct {
	backend ports.CacheBackend
	log     ports.Logger
	key     string
	ttl     time.Duration
}

// NewCollection — конструктор.
func NewCollection[T any](backend ports.CacheBackend, log ports.Logger, key string, ttl time.Duration) *Collection[T] {
	return &Collection[T]{
		backend: backend,
		log:     log,
		key:     key,
		ttl:     ttl,
	}
}

// Key — имя ключа коллекции.
func (c *Collection[T]) Key() string { return c.key }

// Get — прочитать список из кэша.
// Ошибка бэкенда или битый payload считаются промахом, не ошибкой вызова.
func (c *Collection[T]) Get(ctx context.Context) ([]T, bool) {
	raw, found, err := c.backend.Get(ctx, c.key)
	if err != nil {
		c.log.Warnf(ctx, "cache get failed key=%s err=%v", c.key, err)
		metrics.CacheOps.WithLabelValues("error").Inc()
		return nil, false
	}
	if !found {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return nil, false
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		c.log.Warnf(ctx, "cache decode failed key=%s err=%v", c.key, err)
		metrics.CacheOps.WithLabelValues("error").Inc()
		return nil, false
	}

	metrics.CacheOps.WithLabelValues("hit").Inc()
	return items, true
}

// Set — сериализовать и положить список под TTL коллекции.
// Неуспех записи не должен валить бизнес-операцию.
func (c *Collection[T]) Set(ctx context.Context, items []T) {
	raw, err := json.Marshal(items)
	if err != nil {
		c.log.Warnf(ctx, "cache encode failed key=%s err=%v", c.key, err)
		metrics.CacheOps.WithLabelValues("error").Inc()
		return
	}
	if err := c.backend.Set(ctx, c.key, raw, c.ttl); err != nil {
		c.log.Warnf(ctx, "cache set failed key=%s err=%v", c.key, err)
		metrics.CacheOps.WithLabelValues("error").Inc()
	}
}

// Invalidate — удалить ключ после записи в хранилище (кэш не обновляем, а сбрасываем).
func (c *Collection[T]) Invalidate(ctx context.Context) {
	if err := c.backend.Remove(ctx, c.key); err != nil {
		c.log.Warnf(ctx, "cache remove failed key=%s err=%v", c.key, err)
		metrics.CacheOps.WithLabelValues("error").Inc()
		return
	}
	metrics.CacheOps.WithLabelValues("invalidate").Inc()
}
