// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"fmt"

	"folio/internal/models"
)

// UpdateFields overwrites (or creates) every key in updates on the matched
// item. The merge is shallow: a multilingual field in updates replaces the
// stored mapping wholesale. Returns the updated item.
func (s *ContentStore) UpdateFields(category, identifier string, updates map[string]any) (models.Item, error) {
	if err := s.requireCategory(category); err != nil {
		return nil, err
	}

	lock := s.lockCategory(category)
	lock.Lock()
	defer lock.Unlock()

	items := s.loadForWrite(category)
	idx, ok := findItem(items, identifier, s.site.DefaultLanguage())
	if !ok {
		return nil, fmt.Errorf("%q in %s: %w", identifier, category, ErrNotFound)
	}

	for k, v := range updates {
		items[idx][k] = v
	}

	if err := s.save(category, items); err != nil {
		return nil, err
	}
	return items[idx], nil
}

// Append adds a new item to the end of a category's sequence. No id
// uniqueness check is performed on appended items; legacy data already
// contains duplicates and uploads keep the permissive behavior.
func (s *ContentStore) Append(category string, item models.Item) error {
	if err := s.requireCategory(category); err != nil {
		return err
	}

	lock := s.lockCategory(category)
	lock.Lock()
	defer lock.Unlock()

	items := s.loadForWrite(category)
	items = append(items, item)
	return s.save(category, items)
}

// Delete removes the matched item from the sequence and returns it, so the
// caller can clean up the item's remote media afterwards. The JSON mutation
// is complete once Delete returns; remote cleanup failures are the caller's
// concern and never undo it.
func (s *ContentStore) Delete(category, identifier string) (models.Item, error) {
	if err := s.requireCategory(category); err != nil {
		return nil, err
	}

	lock := s.lockCategory(category)
	lock.Lock()
	defer lock.Unlock()

	items := s.loadForWrite(category)
	idx, ok := findItem(items, identifier, s.site.DefaultLanguage())
	if !ok {
		return nil, fmt.Errorf("%q in %s: %w", identifier, category, ErrNotFound)
	}

	removed := items[idx]
	items = append(items[:idx], items[idx+1:]...)

	if err := s.save(category, items); err != nil {
		return nil, err
	}
	return removed, nil
}
