// Пакет memory — in-memory реализация кэш-бэкенда с TTL.
// Используется в тестах и при локальном запуске без Redis.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/wb_shop/internal/ports"
)

type entry struct {
	value     []byte
	expiresAt time.Time // нулевое время — без истечения
}

// Проверка, что Backend удовлетворяет интерфейсу CacheBackend.
var _ ports.CacheBackend = (*Backend)(nil)

// Backend — потокобезопасная map ключ -> значение с ленивой очисткой по TTL.
type Backend struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

func NewBackend() *Backend {
	return &Backend{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (b *Backend) Get(_ context.Context, key string) ([]byte, bool, error) {
	b.mu.RLock()
	ent, ok := b.entries[key]
	b.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if !ent.expiresAt.IsZero() && !ent.expiresAt.After(b.now()) {
		b.mu.Lock()
		// перечитываем под write-lock: запись могли успеть заменить
		if cur, still := b.entries[key]; still && !cur.expiresAt.After(b.now()) {
			delete(b.entries, key)
		}
		b.mu.Unlock()
		return nil, false, nil
	}

	cp := append([]byte(nil), ent.value...)
	return cp, true, nil
}

func (b *Backend) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	ent := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		ent.expiresAt = b.now().Add(ttl)
	}

	b.mu.Lock()
	b.entries[key] = ent
	b.mu.Unlock()
	return nil
}

func (b *Backend) Remove(_ context.Context, key string) error {
	b.mu.Lock()
	delete(b.entries, key)
	b.mu.Unlock()
	return nil
}

// Len — число записей, включая ещё не вычищенные истёкшие.
func (b *Backend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}
