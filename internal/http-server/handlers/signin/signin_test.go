package signin

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

type fakeLoginer struct {
	err error
}

func (f *fakeLoginer) Login(_ context.Context, _, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "signed-token", nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSignin(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
	}{
		{
			name:       "success",
			body:       `{"email":"jo@example.com","password":"sup3r-secret"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid credentials",
			body:       `{"email":"jo@example.com","password":"wrong"}`,
			svcErr:     auth.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing password",
			body:       `{"email":"jo@example.com"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "garbage body",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := New(discardLogger(), &fakeLoginer{err: tt.svcErr})

			req := httptest.NewRequest(http.MethodPost, "/signin", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			handler(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rr.Code, tt.wantStatus, rr.Body.String())
			}

			if tt.wantStatus == http.StatusOK {
				var got Response
				if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
					t.Fatalf("bad response body: %v", err)
				}
				if got.Token != "signed-token" {
					t.Errorf("Token = %q", got.Token)
				}
			}
		})
	}
}
