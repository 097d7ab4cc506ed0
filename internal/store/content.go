// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store implements the content repository over per-category JSON
// files. Each category is one file holding an ordered array of items; every
// operation reopens the file fresh, mutates the in-memory sequence, and
// rewrites the whole file in one save.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"folio/internal/models"
)

// SiteConfig is the slice of site configuration the store depends on.
// *config.Site satisfies it; tests substitute fixtures.
type SiteConfig interface {
	// CategoryDataFile resolves the data file for a category and reports
	// whether the category is configured.
	CategoryDataFile(id string) (path string, configured bool)
	// LanguageCodes returns the supported language codes in order.
	LanguageCodes() []string
	// DefaultLanguage returns the code used for title fallback matching.
	DefaultLanguage() string
}

// ContentStore reads and mutates category data files.
//
// The per-category mutex serializes load-mutate-save cycles within this
// process only; writers in other processes still race on the file and the
// last save wins.
type ContentStore struct {
	site SiteConfig

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewContentStore creates a ContentStore bound to the given site config.
func NewContentStore(site SiteConfig) *ContentStore {
	return &ContentStore{
		site:  site,
		locks: make(map[string]*sync.Mutex),
	}
}

// lockCategory returns the mutex for one category, creating it on first use.
func (s *ContentStore) lockCategory(category string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[category]
	if !ok {
		l = &sync.Mutex{}
		s.locks[category] = l
	}
	return l
}

// List returns all items of a category. A missing file is an empty
// category; a file that exists but does not parse is an error wrapping
// ErrMalformedData. This is the strict read used by listing endpoints;
// mutation paths go through loadForWrite instead.
func (s *ContentStore) List(category string) ([]models.Item, error) {
	lock := s.lockCategory(category)
	lock.Lock()
	defer lock.Unlock()

	return s.load(category)
}

// Get resolves a single item by id or default-language title.
func (s *ContentStore) Get(category, identifier string) (models.Item, error) {
	lock := s.lockCategory(category)
	lock.Lock()
	defer lock.Unlock()

	items, err := s.load(category)
	if err != nil {
		return nil, err
	}
	idx, ok := findItem(items, identifier, s.site.DefaultLanguage())
	if !ok {
		return nil, fmt.Errorf("%q in %s: %w", identifier, category, ErrNotFound)
	}
	return items[idx], nil
}

// Replace overwrites a category's whole sequence, normalizing shape. Used
// by the save-category endpoint; unlike the item mutations it accepts any
// category name so legacy workspaces with unlisted categories keep working.
func (s *ContentStore) Replace(category string, items []models.Item) error {
	lock := s.lockCategory(category)
	lock.Lock()
	defer lock.Unlock()

	return s.save(category, items)
}

// ReplaceRaw decodes a client-submitted category document and replaces the
// category with it. The document must be a bare item array or the legacy
// {"items": [...]} wrapper; anything else wraps ErrMalformedData.
func (s *ContentStore) ReplaceRaw(category string, raw []byte) error {
	items, err := decodeItems(raw)
	if err != nil {
		return err
	}
	return s.Replace(category, items)
}

// load is the strict read: missing file means empty, anything unparseable
// is an error.
func (s *ContentStore) load(category string) ([]models.Item, error) {
	path, _ := s.site.CategoryDataFile(category)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []models.Item{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	items, err := decodeItems(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return items, nil
}

// loadForWrite is the lenient read used by every mutation: missing, empty,
// and unparseable files all come back as an empty sequence ("no data yet").
func (s *ContentStore) loadForWrite(category string) []models.Item {
	items, err := s.load(category)
	if err != nil {
		return []models.Item{}
	}
	return items
}

// save serializes the full sequence as a bare, indented JSON array and
// rewrites the file, creating the data directory on first write. HTML in
// descriptions is stored raw, not escaped.
func (s *ContentStore) save(category string, items []models.Item) error {
	if items == nil {
		items = []models.Item{}
	}

	path, _ := s.site.CategoryDataFile(category)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encode %s: %w", category, err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// decodeItems parses a category document. Both a bare array and the legacy
// {"items": [...]} wrapper are accepted; anything else wraps
// ErrMalformedData.
func decodeItems(raw []byte) ([]models.Item, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return []models.Item{}, nil
	}

	var items []models.Item
	if err := json.Unmarshal(trimmed, &items); err == nil {
		if items == nil {
			items = []models.Item{}
		}
		return items, nil
	}

	var wrapped struct {
		Items []models.Item `json:"items"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err == nil && wrapped.Items != nil {
		return wrapped.Items, nil
	}

	return nil, ErrMalformedData
}

// requireCategory gates mutations on a configured category mapping.
func (s *ContentStore) requireCategory(category string) error {
	if _, ok := s.site.CategoryDataFile(category); !ok {
		return fmt.Errorf("category %q: %w", category, ErrInvalidCategory)
	}
	return nil
}
