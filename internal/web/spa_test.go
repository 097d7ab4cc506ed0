package web

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestSPA(t *testing.T) *SPA {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"index.html":     "<html>shell</html>",
		"app.js":         "console.log('admin')",
		"sub/index.html": "<html>sub</html>",
	}
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return NewSPA(dir)
}

func get(t *testing.T, spa *SPA, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	spa.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestSPA(t *testing.T) {
	spa := newTestSPA(t)

	t.Run("root serves the shell", func(t *testing.T) {
		rec := get(t, spa, "/")
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "shell") {
			t.Fatalf("got %d %q", rec.Code, rec.Body.String())
		}
	})

	t.Run("real files are served as-is", func(t *testing.T) {
		rec := get(t, spa, "/app.js")
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "admin") {
			t.Fatalf("got %d %q", rec.Code, rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "javascript") {
			t.Errorf("Content-Type = %q", ct)
		}
	})

	t.Run("directories serve their index", func(t *testing.T) {
		rec := get(t, spa, "/sub")
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "sub") {
			t.Fatalf("got %d %q", rec.Code, rec.Body.String())
		}
	})

	t.Run("unresolved html paths fall back to the shell", func(t *testing.T) {
		rec := get(t, spa, "/settings.html")
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "shell") {
			t.Fatalf("got %d %q", rec.Code, rec.Body.String())
		}
	})

	t.Run("unresolved assets are 404", func(t *testing.T) {
		if rec := get(t, spa, "/missing.png"); rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		if rec := get(t, spa, "/api/unknown"); rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("dotdot cannot escape the bundle", func(t *testing.T) {
		rec := get(t, spa, "/../../../etc/passwd")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("writes are rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		spa.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("status = %d, want 405", rec.Code)
		}
	})
}
