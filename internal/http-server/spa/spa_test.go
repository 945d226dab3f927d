package spa

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHandler(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "index.html", "<html>app</html>")
	writeFile(t, dir, "assets/app.js", "console.log('hi')")

	handler := Handler(dir)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "root serves index",
			path:       "/",
			wantStatus: http.StatusOK,
			wantBody:   "<html>app</html>",
		},
		{
			name:       "existing asset",
			path:       "/assets/app.js",
			wantStatus: http.StatusOK,
			wantBody:   "console.log('hi')",
		},
		{
			name:       "client route falls back to index",
			path:       "/bookings/new",
			wantStatus: http.StatusOK,
			wantBody:   "<html>app</html>",
		},
		{
			name:       "missing asset is a 404",
			path:       "/assets/missing.js",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "path traversal is rejected",
			path:       "/../../etc/passwd",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rr := httptest.NewRecorder()
			handler(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if tt.wantBody != "" && !strings.Contains(rr.Body.String(), tt.wantBody) {
				t.Errorf("body = %q, want it to contain %q", rr.Body.String(), tt.wantBody)
			}
		})
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
