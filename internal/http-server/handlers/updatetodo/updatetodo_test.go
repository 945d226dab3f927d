package updatetodo

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/SidhantUppal/roombook/internal/lib/jwt"
	"github.com/SidhantUppal/roombook/internal/models"
	"github.com/SidhantUppal/roombook/internal/storage"
)

type fakeUpdater struct {
	err          error
	gotText      *string
	gotCompleted *bool
}

func (f *fakeUpdater) UpdateTodo(_ context.Context, id, userID int64, text *string, completed *bool) (models.Todo, error) {
	if f.err != nil {
		return models.Todo{}, f.err
	}
	f.gotText = text
	f.gotCompleted = completed
	return models.Todo{ID: id, UserID: userID}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func doRequest(handler http.HandlerFunc, id, body string, uid int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/todo/"+id, bytes.NewBufferString(body))

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if uid > 0 {
		ctx = context.WithValue(ctx, jwt.UIDKey, uid)
	}

	rr := httptest.NewRecorder()
	handler(rr, req.WithContext(ctx))
	return rr
}

func TestUpdateTodo(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		body       string
		uid        int64
		svcErr     error
		wantStatus int
	}{
		{
			name:       "success",
			id:         "3",
			body:       `{"completed":true}`,
			uid:        7,
			wantStatus: http.StatusOK,
		},
		{
			name:       "not found",
			id:         "99",
			body:       `{"completed":true}`,
			uid:        7,
			svcErr:     storage.ErrTodoNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "invalid id",
			id:         "zero",
			body:       `{"completed":true}`,
			uid:        7,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "no user in context",
			id:         "3",
			body:       `{"completed":true}`,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(New(discardLogger(), &fakeUpdater{err: tt.svcErr}), tt.id, tt.body, tt.uid)

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rr.Code, tt.wantStatus, rr.Body.String())
			}
		})
	}
}

func TestUpdateTodo_OmittedFieldsStayNil(t *testing.T) {
	svc := &fakeUpdater{}
	rr := doRequest(New(discardLogger(), svc), "3", `{"text":"new text"}`, 7)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}

	if svc.gotText == nil || *svc.gotText != "new text" {
		t.Errorf("text = %v, want pointer to %q", svc.gotText, "new text")
	}
	if svc.gotCompleted != nil {
		t.Error("completed should stay nil when omitted")
	}
}
