package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SidhantUppal/roombook/internal/models"
	"github.com/SidhantUppal/roombook/internal/storage"
)

type fakeUserStore struct {
	users  map[string]models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]models.User{}, nextID: 1}
}

func (f *fakeUserStore) SaveUser(_ context.Context, firstName, lastName, email string, passHash []byte) (int64, error) {
	if _, ok := f.users[email]; ok {
		return -1, storage.ErrUserExists
	}

	id := f.nextID
	f.nextID++
	f.users[email] = models.User{
		ID:        id,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		PassHash:  passHash,
	}

	return id, nil
}

func (f *fakeUserStore) UserByEmail(_ context.Context, email string) (models.User, error) {
	usr, ok := f.users[email]
	if !ok {
		return models.User{}, storage.ErrUserNotFound
	}
	return usr, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRegisterAndLogin(t *testing.T) {
	store := newFakeUserStore()
	svc := New(discardLogger(), store, store, "test-secret", time.Hour)

	id, err := svc.RegisterNewUser(context.Background(), "Jo", "Doe", "jo@example.com", "sup3r-secret")
	if err != nil {
		t.Fatalf("RegisterNewUser: %v", err)
	}
	if id <= 0 {
		t.Fatalf("RegisterNewUser returned id %d", id)
	}

	token, err := svc.Login(context.Background(), "jo@example.com", "sup3r-secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("Login returned an empty token")
	}
}

func TestRegisterDuplicate(t *testing.T) {
	store := newFakeUserStore()
	svc := New(discardLogger(), store, store, "test-secret", time.Hour)

	if _, err := svc.RegisterNewUser(context.Background(), "Jo", "Doe", "jo@example.com", "sup3r-secret"); err != nil {
		t.Fatalf("RegisterNewUser: %v", err)
	}

	_, err := svc.RegisterNewUser(context.Background(), "Jo", "Doe", "jo@example.com", "other-pass")
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("err = %v, want ErrUserExists", err)
	}
}

func TestLoginFailures(t *testing.T) {
	store := newFakeUserStore()
	svc := New(discardLogger(), store, store, "test-secret", time.Hour)

	if _, err := svc.RegisterNewUser(context.Background(), "Jo", "Doe", "jo@example.com", "sup3r-secret"); err != nil {
		t.Fatalf("RegisterNewUser: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "wrong password", email: "jo@example.com", password: "wrong"},
		{name: "unknown email", email: "nobody@example.com", password: "sup3r-secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.email, tt.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("err = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}
