package jwt

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SidhantUppal/roombook/internal/models"
)

const secret = "test-secret"

func TestAuthMiddleware(t *testing.T) {
	token, err := NewToken(models.User{ID: 42, Email: "user@example.com"}, secret, time.Hour)
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}

	wrongToken, err := NewToken(models.User{ID: 42}, "other-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}

	expiredToken, err := NewToken(models.User{ID: 42}, secret, -time.Minute)
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantUID    int64
	}{
		{
			name:       "valid token",
			authHeader: "Bearer " + token,
			wantStatus: http.StatusOK,
			wantUID:    42,
		},
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "not a bearer token",
			authHeader: "Basic abc",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong secret",
			authHeader: "Bearer " + wrongToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			authHeader: "Bearer " + expiredToken,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUID int64
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUID, _ = UserID(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rr := httptest.NewRecorder()
			AuthMiddleware(secret)(next).ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if tt.wantUID != 0 && gotUID != tt.wantUID {
				t.Errorf("uid = %d, want %d", gotUID, tt.wantUID)
			}
		})
	}
}

func TestUserID_Absent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	if _, ok := UserID(req.Context()); ok {
		t.Error("UserID reported ok on a context without uid")
	}
}
