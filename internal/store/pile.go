// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// pile.go holds the gallery grouping operations. A "pile" is an item whose
// gallery field groups multiple images under one cover; these operations
// merge items into piles, extract standalone items back out, and move
// single images between piles.
package store

import (
	"fmt"
	"time"

	"folio/internal/models"
)

// PileResult reports the state of the target after a gallery move.
type PileResult struct {
	TargetGalleryCount int
}

// ExtractResult identifies the item born from a gallery extraction.
type ExtractResult struct {
	NewID    string
	NewTitle string
}

// MoveToPile absorbs the source item into the target's gallery: the
// source's url (when present) and then its gallery entries, in order, are
// appended to the target's gallery, and the source item is removed from
// the sequence. Metadata entries travel with their URLs. Source and target
// resolving to the same item is rejected with ErrSameItem.
func (s *ContentStore) MoveToPile(category, sourceID, targetID string) (PileResult, error) {
	if err := s.requireCategory(category); err != nil {
		return PileResult{}, err
	}

	lock := s.lockCategory(category)
	lock.Lock()
	defer lock.Unlock()

	items := s.loadForWrite(category)
	lang := s.site.DefaultLanguage()

	si, ok := findItem(items, sourceID, lang)
	if !ok {
		return PileResult{}, fmt.Errorf("source %q in %s: %w", sourceID, category, ErrNotFound)
	}
	ti, ok := findItem(items, targetID, lang)
	if !ok {
		return PileResult{}, fmt.Errorf("target %q in %s: %w", targetID, category, ErrNotFound)
	}
	if si == ti {
		return PileResult{}, fmt.Errorf("%q in %s: %w", sourceID, category, ErrSameItem)
	}

	source, target := items[si], items[ti]

	var moved []string
	if u := source.URL(); u != "" {
		moved = append(moved, u)
	}
	moved = append(moved, source.Gallery()...)

	target.SetGallery(append(target.Gallery(), moved...))
	for _, u := range moved {
		if meta, had := source.TakeGalleryMetadata(u); had {
			target.SetGalleryMetadata(u, meta)
		}
	}

	items = append(items[:si], items[si+1:]...)

	if err := s.save(category, items); err != nil {
		return PileResult{}, err
	}
	return PileResult{TargetGalleryCount: len(target.Gallery())}, nil
}

// ExtractFromPile removes the gallery entry at imageIndex from the source
// item and births a new standalone item for it, appended to the sequence.
// The source keeps its place even when its gallery empties out. imageURL
// mirrors what the admin UI sends alongside the index; the index is
// authoritative.
func (s *ContentStore) ExtractFromPile(category, sourceID, imageURL string, imageIndex int, customTitle, customDescription string) (ExtractResult, error) {
	if err := s.requireCategory(category); err != nil {
		return ExtractResult{}, err
	}

	lock := s.lockCategory(category)
	lock.Lock()
	defer lock.Unlock()

	items := s.loadForWrite(category)
	lang := s.site.DefaultLanguage()

	si, ok := findItem(items, sourceID, lang)
	if !ok {
		return ExtractResult{}, fmt.Errorf("source %q in %s: %w", sourceID, category, ErrNotFound)
	}
	source := items[si]

	gallery := source.Gallery()
	if imageIndex < 0 || imageIndex >= len(gallery) {
		return ExtractResult{}, fmt.Errorf("index %d of %d in %q: %w", imageIndex, len(gallery), sourceID, ErrInvalidIndex)
	}

	extracted := gallery[imageIndex]
	gallery = append(gallery[:imageIndex:imageIndex], gallery[imageIndex+1:]...)
	source.SetGallery(gallery)
	source.TakeGalleryMetadata(extracted)

	title := customTitle
	if title == "" {
		title = fmt.Sprintf("Photo %d from %s", imageIndex+1, source.DisplayTitle(lang))
	}

	codes := s.site.LanguageCodes()
	now := time.Now()
	today := now.Format(models.DateLayout)

	// Timestamp ids can collide when extractions land in the same second;
	// bump until unique within the loaded sequence.
	ts := now.Unix()
	id := fmt.Sprintf("%s_%d", category, ts)
	for hasID(items, id) {
		ts++
		id = fmt.Sprintf("%s_%d", category, ts)
	}

	newItem := models.Item{
		"id":      id,
		"title":   models.Multilingual(title, codes),
		"url":     extracted,
		"date":    today,
		"created": today,
	}
	if d := models.Multilingual(customDescription, codes); d != nil {
		newItem["description"] = d
	}
	items = append(items, newItem)

	if err := s.save(category, items); err != nil {
		return ExtractResult{}, err
	}
	return ExtractResult{NewID: id, NewTitle: title}, nil
}

// AddToPile moves the gallery entry at imageIndex from the source item to
// the end of the target's gallery (created if absent), along with any
// metadata entry for it. Neither item is removed. imageURL is advisory,
// as in ExtractFromPile.
func (s *ContentStore) AddToPile(category, sourceID, targetID, imageURL string, imageIndex int) (PileResult, error) {
	if err := s.requireCategory(category); err != nil {
		return PileResult{}, err
	}

	lock := s.lockCategory(category)
	lock.Lock()
	defer lock.Unlock()

	items := s.loadForWrite(category)
	lang := s.site.DefaultLanguage()

	si, ok := findItem(items, sourceID, lang)
	if !ok {
		return PileResult{}, fmt.Errorf("source %q in %s: %w", sourceID, category, ErrNotFound)
	}
	ti, ok := findItem(items, targetID, lang)
	if !ok {
		return PileResult{}, fmt.Errorf("target %q in %s: %w", targetID, category, ErrNotFound)
	}
	if si == ti {
		return PileResult{}, fmt.Errorf("%q in %s: %w", sourceID, category, ErrSameItem)
	}
	source, target := items[si], items[ti]

	gallery := source.Gallery()
	if imageIndex < 0 || imageIndex >= len(gallery) {
		return PileResult{}, fmt.Errorf("index %d of %d in %q: %w", imageIndex, len(gallery), sourceID, ErrInvalidIndex)
	}

	moved := gallery[imageIndex]
	gallery = append(gallery[:imageIndex:imageIndex], gallery[imageIndex+1:]...)
	source.SetGallery(gallery)

	target.SetGallery(append(target.Gallery(), moved))
	if meta, had := source.TakeGalleryMetadata(moved); had {
		target.SetGalleryMetadata(moved, meta)
	}

	if err := s.save(category, items); err != nil {
		return PileResult{}, err
	}
	return PileResult{TargetGalleryCount: len(target.Gallery())}, nil
}

// hasID reports whether any item in the sequence carries the given id.
func hasID(items []models.Item, id string) bool {
	for _, item := range items {
		if item.ID() == id {
			return true
		}
	}
	return false
}
