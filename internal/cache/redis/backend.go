// Пакет redis — реализация кэш-бэкенда на Redis (go-redis v9).
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/wb_shop/internal/ports"
	goredis "github.com/redis/go-redis/v9"
)

// Проверка, что Backend удовлетворяет интерфейсу CacheBackend.
var _ ports.CacheBackend = (*Backend)(nil)

// Backend — обёртка над goredis.Client под контракт ports.CacheBackend.
// TTL ключей обслуживает сам Redis; ленивых проверок на этой стороне нет.
type Backend struct {
	client *goredis.Client
}

// NewBackend — подключение к Redis с fail-fast ping.
// Один клиент на процесс; goredis.Client сам держит пул соединений.
func NewBackend(ctx context.Context, addr, password string, db int) (*Backend, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Backend{client: client}, nil
}

// NewBackendFromClient — для тестов с уже поднятым клиентом.
func NewBackendFromClient(client *goredis.Client) *Backend {
	return &Backend{client: client}
}

func (b *Backend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := b.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %q: %w", key, err)
	}
	return raw, true, nil
}

func (b *Backend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := b.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (b *Backend) Remove(ctx context.Context, key string) error {
	if err := b.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}

// Close — закрыть клиент при остановке приложения.
func (b *Backend) Close() error { return b.client.Close() }
