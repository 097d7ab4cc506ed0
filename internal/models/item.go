// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the portfolio content item shape shared by the
// stores, handlers, and CLI. Items are schemaless JSON objects; typed
// accessors coerce the well-known fields without dropping unknown ones.
package models

import (
	"fmt"
	"time"
)

// DateLayout is the date format used for the "date" and "created" fields.
const DateLayout = "2006-01-02"

// Item is a single portfolio entry as stored in a category JSON file.
// Entries are open maps: the admin UI and legacy data files carry arbitrary
// extra fields that must survive a load/mutate/save round trip untouched.
type Item map[string]any

// ID returns the item's stable identifier, or "" when absent.
func (it Item) ID() string {
	s, _ := it["id"].(string)
	return s
}

// URL returns the item's primary media URL, or "" when absent.
func (it Item) URL() string {
	s, _ := it["url"].(string)
	return s
}

// Gallery returns the ordered gallery URLs. Accepts both []string (items
// built in memory) and []any (items decoded from JSON); non-string entries
// are skipped.
func (it Item) Gallery() []string {
	switch v := it["gallery"].(type) {
	case []string:
		return v
	case []any:
		urls := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				urls = append(urls, s)
			}
		}
		return urls
	default:
		return nil
	}
}

// SetGallery replaces the gallery list. An empty slice is kept as an empty
// JSON array rather than removing the key, so a drained pile stays a pile.
func (it Item) SetGallery(urls []string) {
	if urls == nil {
		urls = []string{}
	}
	it["gallery"] = urls
}

// HasGallery reports whether the item carries a gallery key at all.
func (it Item) HasGallery() bool {
	_, ok := it["gallery"]
	return ok
}

// GalleryMetadata returns the per-URL metadata map, or nil when absent.
func (it Item) GalleryMetadata() map[string]any {
	m, _ := it["galleryMetadata"].(map[string]any)
	return m
}

// TakeGalleryMetadata removes and returns the metadata entry for url.
// The second result is false when no entry exists. An emptied metadata
// map is removed entirely to keep saved files tidy.
func (it Item) TakeGalleryMetadata(url string) (any, bool) {
	m := it.GalleryMetadata()
	if m == nil {
		return nil, false
	}
	v, ok := m[url]
	if !ok {
		return nil, false
	}
	delete(m, url)
	if len(m) == 0 {
		delete(it, "galleryMetadata")
	}
	return v, true
}

// SetGalleryMetadata records metadata for a gallery URL, creating the
// metadata map if needed.
func (it Item) SetGalleryMetadata(url string, value any) {
	m := it.GalleryMetadata()
	if m == nil {
		m = make(map[string]any)
		it["galleryMetadata"] = m
	}
	m[url] = value
}

// DisplayTitle returns the item's title in the given language: the value
// under lang for multilingual titles, the string itself for scalar titles,
// and "" otherwise.
func (it Item) DisplayTitle(lang string) string {
	switch v := it["title"].(type) {
	case string:
		return v
	case map[string]any:
		s, _ := v[lang].(string)
		return s
	case map[string]string:
		return v[lang]
	default:
		return ""
	}
}

// Multilingual wraps a single-language value as a multilingual object with
// the same value under every supported language code. Returns nil for an
// empty value so optional fields are omitted rather than stored as empty
// mappings.
func Multilingual(value string, codes []string) map[string]string {
	if value == "" {
		return nil
	}
	m := make(map[string]string, len(codes))
	for _, code := range codes {
		m[code] = value
	}
	return m
}

// EntryFields carries the editor-supplied metadata for a new media entry.
// Title is required by the upload paths; the rest are optional.
type EntryFields struct {
	Title       string
	Medium      string
	Genre       string
	Description string
	Created     string // "2006-01-02"; defaults to today when empty
}

// NewEntry builds a fresh item for uploaded media. The id is derived from
// the category and the current unix timestamp, matching the identifiers
// already present in legacy data files. Optional fields are only set when
// non-empty; gallery is only set when the upload produced one (pile mode).
func NewEntry(category, url string, gallery []string, f EntryFields, codes []string) Item {
	today := time.Now().Format(DateLayout)
	created := f.Created
	if created == "" {
		created = today
	}

	entry := Item{
		"id":      fmt.Sprintf("%s_%d", category, time.Now().Unix()),
		"title":   Multilingual(f.Title, codes),
		"url":     url,
		"date":    today,
		"created": created,
	}
	if len(gallery) > 0 {
		entry["gallery"] = gallery
	}
	if m := Multilingual(f.Medium, codes); m != nil {
		entry["medium"] = m
	}
	if g := Multilingual(f.Genre, codes); g != nil {
		entry["genre"] = g
	}
	if d := Multilingual(f.Description, codes); d != nil {
		entry["description"] = d
	}
	return entry
}
