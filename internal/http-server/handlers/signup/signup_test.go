package signup

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SidhantUppal/roombook/internal/services/auth"
)

type fakeRegisterer struct {
	err error
}

func (f *fakeRegisterer) RegisterNewUser(_ context.Context, _, _, _, _ string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return 11, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSignup(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
	}{
		{
			name:       "success",
			body:       `{"first_name":"Jo","last_name":"Doe","email":"jo@example.com","password":"sup3r-secret"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing fields",
			body:       `{"email":"jo@example.com"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad email",
			body:       `{"first_name":"Jo","last_name":"Doe","email":"nope","password":"sup3r-secret"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "short password",
			body:       `{"first_name":"Jo","last_name":"Doe","email":"jo@example.com","password":"short"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "duplicate user",
			body:       `{"first_name":"Jo","last_name":"Doe","email":"jo@example.com","password":"sup3r-secret"}`,
			svcErr:     auth.ErrUserExists,
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := New(discardLogger(), &fakeRegisterer{err: tt.svcErr})

			req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			handler(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rr.Code, tt.wantStatus, rr.Body.String())
			}

			if tt.wantStatus == http.StatusCreated {
				var got Response
				if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
					t.Fatalf("bad response body: %v", err)
				}
				if got.UserID != 11 {
					t.Errorf("UserID = %d, want 11", got.UserID)
				}
			}
		})
	}
}
