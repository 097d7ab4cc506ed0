// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"folio/internal/models"
	"folio/internal/store"
)

// ContentAll returns every category's items keyed by category id. Categories
// are discovered by scanning the data directory, so legacy files without a
// configured mapping still show up.
func (a *API) ContentAll(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(a.cfg.DataPath())
	if os.IsNotExist(err) {
		writeJSON(w, http.StatusOK, map[string][]models.Item{})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	all := make(map[string][]models.Item)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		category := strings.TrimSuffix(name, ".json")
		items, err := a.content.List(category)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		all[category] = items
	}
	writeJSON(w, http.StatusOK, all)
}

// ContentCategory returns one category's data file as stored, without
// normalization. The admin editor works on the raw document; a missing file
// reads as an empty wrapper so fresh categories open cleanly.
func (a *API) ContentCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if !requireName(w, category) {
		return
	}

	raw, err := os.ReadFile(filepath.Join(a.cfg.DataPath(), category+".json"))
	if os.IsNotExist(err) {
		writeJSON(w, http.StatusOK, map[string]any{"items": []models.Item{}})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("%s.json: %v", category, err))
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// ContentSave replaces a category's whole sequence with the submitted
// document. Both a bare array and the {"items": [...]} wrapper are accepted;
// either way the file is rewritten in the canonical bare-array form.
func (a *API) ContentSave(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if !requireName(w, category) {
		return
	}

	defer r.Body.Close()
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := a.content.ReplaceRaw(category, raw); err != nil {
		if errors.Is(err, store.ErrMalformedData) {
			writeError(w, http.StatusBadRequest, "Request body must be an item array or {\"items\": [...]}")
			return
		}
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// ItemGet returns a single item resolved by id or default-language title.
func (a *API) ItemGet(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if !requireName(w, category) {
		return
	}
	identifier := chi.URLParam(r, "identifier")

	item, err := a.content.Get(category, identifier)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// ItemUpdate merges the submitted fields into the matched item.
func (a *API) ItemUpdate(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if !requireName(w, category) {
		return
	}
	identifier := chi.URLParam(r, "identifier")

	var updates map[string]any
	if err := decodeBody(r, &updates); err != nil || len(updates) == 0 {
		writeError(w, http.StatusBadRequest, "No update data provided")
		return
	}

	item, err := a.content.UpdateFields(category, identifier, updates)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": item})
}

// ItemDelete removes the matched item and then best-effort deletes its
// remote media. The JSON mutation is already durable when cleanup runs, so
// remote failures downgrade to a warning instead of failing the request.
func (a *API) ItemDelete(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if !requireName(w, category) {
		return
	}
	identifier := chi.URLParam(r, "identifier")

	removed, err := a.content.Delete(category, identifier)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	a.stampSite()

	urls := append([]string{removed.URL()}, removed.Gallery()...)
	var deleted, failed []string
	if a.uploader != nil {
		report := a.uploader.RemoveBatch(r.Context(), urls)
		deleted, failed = report.Deleted, report.Failed
	}

	resp := map[string]any{
		"success":      true,
		"message":      fmt.Sprintf("Deleted '%s' from %s", identifier, category),
		"deleted_urls": len(deleted),
		"failed_urls":  len(failed),
	}
	if len(failed) > 0 {
		resp["warning"] = fmt.Sprintf("Some cloud files could not be deleted: %v", failed)
	}
	writeJSON(w, http.StatusOK, resp)
}
