package session

import (
	"sync"
	"testing"
	"time"
)

// сдвигаемые часы для проверки истечения без time.Sleep
type fakeClock struct {
	mu  sync.Mutex
	cur time.Time
}

func (f *fakeClock) now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cur
}

func (f *fakeClock) advance(d time.Duration) {
	f.mu.Lock()
	f.cur = f.cur.Add(d)
	f.mu.Unlock()
}

func newTestStore(ttl time.Duration) (*Store, *fakeClock) {
	clock := &fakeClock{cur: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := NewStore(ttl)
	s.now = clock.now
	return s, clock
}

func TestIsValid_UnknownToken(t *testing.T) {
	s, _ := newTestStore(time.Hour)

	if s.IsValid("") {
		t.Fatalf("empty token must be invalid")
	}
	if s.IsValid("never-issued") {
		t.Fatalf("never issued token must be invalid")
	}
}

func TestIssue_ValidUntilTTL(t *testing.T) {
	s, clock := newTestStore(time.Hour)

	token := s.Issue(42, "alice")
	if token == "" {
		t.Fatalf("expected non-empty token")
	}
	if !s.IsValid(token) {
		t.Fatalf("token must be valid right after Issue")
	}

	sess, ok := s.Get(token)
	if !ok || sess.UserID != 42 || sess.Username != "alice" {
		t.Fatalf("unexpected session: %+v ok=%v", sess, ok)
	}
	wantExpiry := clock.now().Add(time.Hour)
	if !sess.Expiry.Equal(wantExpiry) {
		t.Fatalf("expiry: want %v, got %v", wantExpiry, sess.Expiry)
	}
}

func TestGet_ExpiredTokenEvicted(t *testing.T) {
	s, clock := newTestStore(time.Hour)

	token := s.Issue(1, "bob")
	clock.advance(time.Hour + time.Second)

	if _, ok := s.Get(token); ok {
		t.Fatalf("expired token must miss")
	}
	// запись вычищена: повторный Get — промах без «воскрешения»
	if _, ok := s.Get(token); ok {
		t.Fatalf("evicted token must stay absent")
	}
	if s.Len() != 0 {
		t.Fatalf("store must be empty after eviction, len=%d", s.Len())
	}
}

func TestIsValid_ExactExpiryBoundary(t *testing.T) {
	s, clock := newTestStore(time.Hour)

	token := s.Issue(1, "bob")
	// ровно в момент Expiry токен уже невалиден (valid только при expiry > now)
	clock.advance(time.Hour)
	if s.IsValid(token) {
		t.Fatalf("token must be invalid at exact expiry instant")
	}
}

func TestIssue_MultipleSessionsPerUser(t *testing.T) {
	s, _ := newTestStore(time.Hour)

	t1 := s.Issue(7, "carol")
	t2 := s.Issue(7, "carol")
	if t1 == t2 {
		t.Fatalf("tokens must be unique")
	}
	if !s.IsValid(t1) || !s.IsValid(t2) {
		t.Fatalf("both sessions must stay valid")
	}
}

func TestInvalidate_Idempotent(t *testing.T) {
	s, _ := newTestStore(time.Hour)

	token := s.Issue(1, "dave")
	s.Invalidate(token)
	s.Invalidate(token) // повторное удаление — no-op
	if s.IsValid(token) {
		t.Fatalf("invalidated token must be invalid")
	}
}

func TestSweep_RemovesOnlyExpired(t *testing.T) {
	s, clock := newTestStore(time.Hour)

	old := s.Issue(1, "old")
	clock.advance(30 * time.Minute)
	fresh := s.Issue(2, "fresh")
	clock.advance(31 * time.Minute) // old истёк, fresh ещё жив

	if removed := s.Sweep(); removed != 1 {
		t.Fatalf("want 1 removed, got %d", removed)
	}
	if s.IsValid(old) {
		t.Fatalf("old token must be gone")
	}
	if !s.IsValid(fresh) {
		t.Fatalf("fresh token must survive sweep")
	}
}

func TestConcurrentIssueAndRead(t *testing.T) {
	s, _ := newTestStore(time.Hour)

	const workers = 16
	const perWorker = 100

	var wg sync.WaitGroup
	tokens := make([][]string, workers)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				tok := s.Issue(int64(w), "user")
				tokens[w] = append(tokens[w], tok)
				if !s.IsValid(tok) {
					t.Errorf("token invalid right after issue")
					return
				}
			}
		}(w)
	}
	wg.Wait()

	if got := s.Len(); got != workers*perWorker {
		t.Fatalf("want %d sessions, got %d", workers*perWorker, got)
	}
	for w := range tokens {
		for _, tok := range tokens[w] {
			if sess, ok := s.Get(tok); !ok || sess.UserID != int64(w) {
				t.Fatalf("torn or lost session for token %s", tok)
			}
		}
	}
}
