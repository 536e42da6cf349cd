package usecase

import (
	"context"
	"time"

	"github.com/Gunvolt24/wb_shop/internal/auth"
	"github.com/Gunvolt24/wb_shop/internal/domain"
	"github.com/Gunvolt24/wb_shop/internal/ports"
)

// Проверка, что UserService удовлетворяет интерфейсу UserAuth.
var _ ports.UserAuth = (*UserService)(nil)

// UserService — регистрация/вход и делегирование проверок токена в хранилище сессий.
type UserService struct {
	repo     ports.UserRepository
	sessions ports.SessionStore
	log      ports.Logger
	now      func() time.Time
}

// NewUserService — DI-конструктор.
func NewUserService(repo ports.UserRepository, sessions ports.SessionStore, log ports.Logger) *UserService {
	return &UserService{
		repo:     repo,
		sessions: sessions,
		log:      log,
		now:      time.Now,
	}
}

// Register — завести пользователя. false без ошибки — имя уже занято.
func (s *UserService) Register(ctx context.Context, username, password string) (bool, error) {
	existing, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		s.log.Errorf(ctx, "register: lookup failed username=%q err=%v", username, err)
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	hash, salt, err := auth.HashPassword(password)
	if err != nil {
		s.log.Errorf(ctx, "register: hash failed username=%q err=%v", username, err)
		return false, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		PasswordSalt: salt,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Add(ctx, user); err != nil {
		s.log.Errorf(ctx, "register: insert failed username=%q err=%v", username, err)
		return false, err
	}

	s.log.Infof(ctx, "user registered username=%q id=%d", username, user.ID)
	return true, nil
}

// Login — проверить учётные данные и выдать токен сессии.
// Пустой токен без ошибки — неизвестное имя или неверный пароль.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		s.log.Errorf(ctx, "login: lookup failed username=%q err=%v", username, err)
		return "", err
	}
	if user == nil {
		return "", nil
	}

	if !auth.VerifyPassword(password, user.PasswordHash, user.PasswordSalt) {
		s.log.Warnf(ctx, "login: wrong password username=%q", username)
		return "", nil
	}

	token := s.sessions.Issue(user.ID, user.Username)
	s.log.Infof(ctx, "login ok username=%q user_id=%d", username, user.ID)
	return token, nil
}

// IsTokenValid — прокси в хранилище сессий.
func (s *UserService) IsTokenValid(token string) bool {
	return s.sessions.IsValid(token)
}

// GetSession — прокси в хранилище сессий.
func (s *UserService) GetSession(token string) (domain.Session, bool) {
	return s.sessions.Get(token)
}
