package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Gunvolt24/wb_shop/internal/auth"
	"github.com/Gunvolt24/wb_shop/internal/domain"
	"github.com/Gunvolt24/wb_shop/internal/ports/mocks"
	"github.com/Gunvolt24/wb_shop/internal/usecase"
	"github.com/golang/mock/gomock"
)

func newUserService(t *testing.T) (*usecase.UserService, *mocks.MockUserRepository, *mocks.MockSessionStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUserRepository(ctrl)
	sessions := mocks.NewMockSessionStore(ctrl)
	return usecase.NewUserService(repo, sessions, noopLogger{}), repo, sessions
}

func TestRegister_NewUser(t *testing.T) {
	svc, repo, _ := newUserService(t)

	repo.EXPECT().GetByUsername(gomock.Any(), "alice").Return(nil, nil)
	repo.EXPECT().Add(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u *domain.User) error {
			if u.Username != "alice" {
				t.Fatalf("unexpected username: %q", u.Username)
			}
			if u.PasswordHash == "" || u.PasswordSalt == "" {
				t.Fatal("hash and salt must be populated before insert")
			}
			if u.PasswordHash == "secret" {
				t.Fatal("password must not be stored in the clear")
			}
			if !auth.VerifyPassword("secret", u.PasswordHash, u.PasswordSalt) {
				t.Fatal("stored hash must verify against the original password")
			}
			u.ID = 7
			return nil
		},
	)

	ok, err := svc.Register(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("want registration to succeed")
	}
}

func TestRegister_UsernameTaken(t *testing.T) {
	svc, repo, _ := newUserService(t)

	repo.EXPECT().GetByUsername(gomock.Any(), "alice").Return(&domain.User{ID: 1, Username: "alice"}, nil)
	repo.EXPECT().Add(gomock.Any(), gomock.Any()).Times(0)

	ok, err := svc.Register(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("taken username is not an error: %v", err)
	}
	if ok {
		t.Fatal("want registration refused")
	}
}

func TestRegister_LookupError(t *testing.T) {
	svc, repo, _ := newUserService(t)

	lookupErr := errors.New("db down")
	repo.EXPECT().GetByUsername(gomock.Any(), "alice").Return(nil, lookupErr)

	if _, err := svc.Register(context.Background(), "alice", "secret"); !errors.Is(err, lookupErr) {
		t.Fatalf("want lookup error, got %v", err)
	}
}

func TestLogin_ValidCredentials(t *testing.T) {
	svc, repo, sessions := newUserService(t)

	hash, salt, err := auth.HashPassword("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo.EXPECT().GetByUsername(gomock.Any(), "alice").Return(&domain.User{
		ID: 7, Username: "alice", PasswordHash: hash, PasswordSalt: salt,
	}, nil)
	sessions.EXPECT().Issue(int64(7), "alice").Return("token-1")

	token, err := svc.Login(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "token-1" {
		t.Fatalf("want issued token, got %q", token)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, repo, sessions := newUserService(t)

	repo.EXPECT().GetByUsername(gomock.Any(), "ghost").Return(nil, nil)
	sessions.EXPECT().Issue(gomock.Any(), gomock.Any()).Times(0)

	token, err := svc.Login(context.Background(), "ghost", "secret")
	if err != nil {
		t.Fatalf("unknown user is not an error: %v", err)
	}
	if token != "" {
		t.Fatalf("want empty token, got %q", token)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, repo, sessions := newUserService(t)

	hash, salt, err := auth.HashPassword("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo.EXPECT().GetByUsername(gomock.Any(), "alice").Return(&domain.User{
		ID: 7, Username: "alice", PasswordHash: hash, PasswordSalt: salt,
	}, nil)
	sessions.EXPECT().Issue(gomock.Any(), gomock.Any()).Times(0)

	token, err := svc.Login(context.Background(), "alice", "wrong")
	if err != nil {
		t.Fatalf("wrong password is not an error: %v", err)
	}
	if token != "" {
		t.Fatalf("want empty token, got %q", token)
	}
}

func TestTokenProxies(t *testing.T) {
	svc, _, sessions := newUserService(t)

	sessions.EXPECT().IsValid("t1").Return(true)
	sessions.EXPECT().Get("t1").Return(domain.Session{UserID: 7, Username: "alice"}, true)

	if !svc.IsTokenValid("t1") {
		t.Fatal("want token valid")
	}
	sess, ok := svc.GetSession("t1")
	if !ok || sess.UserID != 7 || sess.Username != "alice" {
		t.Fatalf("unexpected session: %+v ok=%v", sess, ok)
	}
}
