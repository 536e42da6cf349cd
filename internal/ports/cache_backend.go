package ports

import (
	"context"
	"time"
)

// CacheBackend — строковый key-value бэкенд с TTL (Redis или in-memory).
// Бэкенд сам следит за истечением TTL; слой cache-aside его не перепроверяет.
// Ошибки бэкенда НЕ должны просачиваться дальше cache-aside шлюза.
type CacheBackend interface {
	// Get — (nil, false, nil) при промахе; ошибка только при сбое бэкенда.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Remove — удаление отсутствующего ключа не считается ошибкой.
	Remove(ctx context.Context, key string) error
}
