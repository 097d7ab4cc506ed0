// store_test.go provides the shared fixtures for content store tests:
// a temp-dir data directory and a stub site configuration.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"folio/internal/models"
)

// stubSite implements SiteConfig over a fixed category map.
type stubSite struct {
	dir        string
	categories map[string]string // id -> filename
	codes      []string
	lang       string
}

func (s *stubSite) CategoryDataFile(id string) (string, bool) {
	if name, ok := s.categories[id]; ok {
		return filepath.Join(s.dir, name), true
	}
	return filepath.Join(s.dir, id+".json"), false
}

func (s *stubSite) LanguageCodes() []string {
	if s.codes == nil {
		return []string{"en", "fr"}
	}
	return s.codes
}

func (s *stubSite) DefaultLanguage() string {
	if s.lang == "" {
		return "en"
	}
	return s.lang
}

// newTestStore creates a ContentStore over a temp data dir with "painting"
// and "music" configured.
func newTestStore(t *testing.T) (*ContentStore, *stubSite) {
	t.Helper()

	site := &stubSite{
		dir: t.TempDir(),
		categories: map[string]string{
			"painting": "painting.json",
			"music":    "music.json",
		},
	}
	return NewContentStore(site), site
}

// writeData writes raw file contents into the test data dir.
func writeData(t *testing.T, site *stubSite, name, content string) string {
	t.Helper()
	path := filepath.Join(site.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// writeItems marshals items into a category file as a bare array.
func writeItems(t *testing.T, site *stubSite, name string, items []models.Item) string {
	t.Helper()
	data, err := json.Marshal(items)
	if err != nil {
		t.Fatalf("marshal items: %v", err)
	}
	return writeData(t, site, name, string(data))
}

// readRaw returns the current bytes of a category file.
func readRaw(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return data
}

// loadSaved re-reads a category file through the store's own decoder.
func loadSaved(t *testing.T, store *ContentStore, category string) []models.Item {
	t.Helper()
	items, err := store.List(category)
	if err != nil {
		t.Fatalf("List(%s): %v", category, err)
	}
	return items
}
