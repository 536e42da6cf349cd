package session

import (
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/wb_shop/internal/domain"
	"github.com/Gunvolt24/wb_shop/internal/ports"
	"github.com/Gunvolt24/wb_shop/pkg/metrics"
	"github.com/google/uuid"
)

// Проверка, что Store удовлетворяет интерфейсу SessionStore.
var _ ports.SessionStore = (*Store)(nil)

// Store — in-memory хранилище сессий: токен -> domain.Session.
// Один экземпляр на процесс, внедряется зависимостью (без глобального состояния).
//
// Истечение проверяется лениво, при обращении к токену: фонового чистильщика нет,
// поэтому никогда не читаемые токены остаются в памяти до Sweep/StartSweeper.
// Это осознанный компромисс, а не скрытая утечка.
type Store struct {
	entries sync.Map // string -> domain.Session; атомарность на уровне ключа
	ttl     time.Duration
	now     func() time.Time // подменяется в тестах
}

// NewStore — конструктор. ttl <= 0 заменяется часом (значение по умолчанию).
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Store{
		ttl: ttl,
		now: time.Now,
	}
}

// Issue — выдать токен на пару userID/username.
// Токен — uuid v4 (crypto/rand), глобально уникальный и неугадываемый.
// Повторный Login даёт новую сессию; несколько активных сессий на пользователя — норма.
func (s *Store) Issue(userID int64, username string) string {
	token := uuid.NewString()
	s.entries.Store(token, domain.Session{
		UserID:   userID,
		Username: username,
		Expiry:   s.now().UTC().Add(s.ttl),
	})
	metrics.SessionsIssued.Inc()
	return token
}

// IsValid — true только для известного токена с неистёкшим Expiry.
// Истёкшая запись удаляется здесь же; повторное удаление безвредно
// (LoadAndDelete на отсутствующем ключе — no-op).
func (s *Store) IsValid(token string) bool {
	_, ok := s.Get(token)
	return ok
}

// Get — полная запись сессии с той же ленивой очисткой, что и IsValid.
func (s *Store) Get(token string) (domain.Session, bool) {
	if token == "" {
		return domain.Session{}, false
	}
	v, ok := s.entries.Load(token)
	if !ok {
		return domain.Session{}, false
	}
	sess := v.(domain.Session)
	if !sess.Expiry.After(s.now().UTC()) {
		s.evict(token)
		return domain.Session{}, false
	}
	return sess, true
}

// Invalidate — явное удаление токена (logout). Отсутствующий токен — no-op.
func (s *Store) Invalidate(token string) {
	s.evict(token)
}

// Sweep — разовый проход по всем записям с удалением истёкших.
// Возвращает число удалённых. Доступ к отдельным ключам при этом не блокируется.
func (s *Store) Sweep() int {
	now := s.now().UTC()
	removed := 0
	s.entries.Range(func(key, value any) bool {
		if sess := value.(domain.Session); !sess.Expiry.After(now) {
			if _, loaded := s.entries.LoadAndDelete(key); loaded {
				removed++
				metrics.SessionsEvicted.Inc()
			}
		}
		return true
	})
	return removed
}

// StartSweeper — необязательное усиление: периодический Sweep до отмены контекста.
// Ленивая проверка при доступе остаётся базовой гарантией корректности.
func (s *Store) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep()
			}
		}
	}()
}

// Len — текущее число записей (включая ещё не вычищенные истёкшие).
func (s *Store) Len() int {
	n := 0
	s.entries.Range(func(any, any) bool { n++; return true })
	return n
}

func (s *Store) evict(token string) {
	if _, loaded := s.entries.LoadAndDelete(token); loaded {
		metrics.SessionsEvicted.Inc()
	}
}
