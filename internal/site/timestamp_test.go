package site

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestStampLastUpdated(t *testing.T) {
	day := time.Date(2026, time.March, 7, 12, 0, 0, 0, time.UTC)

	t.Run("rewrites the marker", func(t *testing.T) {
		root := t.TempDir()
		page := filepath.Join(root, "index.html")
		html := `<footer><span>Last Updated:</span> 1 Jan 2020</footer>`
		if err := os.WriteFile(page, []byte(html), 0o644); err != nil {
			t.Fatal(err)
		}

		stamped := StampLastUpdated(root, day)
		if len(stamped) != 1 {
			t.Fatalf("stamped: got %v", stamped)
		}

		got, err := os.ReadFile(page)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(got), "Last Updated:</span> 07 Mar 2026") {
			t.Errorf("content: got %s", got)
		}
		if strings.Contains(string(got), "1 Jan 2020") {
			t.Errorf("old date survived: %s", got)
		}
	})

	t.Run("page without the marker is untouched", func(t *testing.T) {
		root := t.TempDir()
		page := filepath.Join(root, "index.html")
		html := `<footer>no timestamp here</footer>`
		if err := os.WriteFile(page, []byte(html), 0o644); err != nil {
			t.Fatal(err)
		}

		if stamped := StampLastUpdated(root, day); len(stamped) != 0 {
			t.Errorf("stamped: got %v", stamped)
		}

		got, _ := os.ReadFile(page)
		if string(got) != html {
			t.Errorf("content changed: %s", got)
		}
	})

	t.Run("missing file is skipped", func(t *testing.T) {
		if stamped := StampLastUpdated(t.TempDir(), day); len(stamped) != 0 {
			t.Errorf("stamped: got %v", stamped)
		}
	})
}
