// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
)

// TranslationsGet returns one language's translation file. A missing file
// reads as an empty object so new languages start blank in the editor.
func (a *API) TranslationsGet(w http.ResponseWriter, r *http.Request) {
	lang := chi.URLParam(r, "lang")
	if !requireName(w, lang) {
		return
	}
	a.serveJSONFile(w, filepath.Join(a.cfg.LangPath(), lang+".json"))
}

// TranslationsSave overwrites one language's translation file.
func (a *API) TranslationsSave(w http.ResponseWriter, r *http.Request) {
	lang := chi.URLParam(r, "lang")
	if !requireName(w, lang) {
		return
	}

	var doc map[string]any
	if err := decodeBody(r, &doc); err != nil {
		writeError(w, http.StatusBadRequest, "Request body must be a JSON object")
		return
	}

	if err := writeJSONFile(filepath.Join(a.cfg.LangPath(), lang+".json"), doc); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// ConfigGet returns one site configuration file (app, categories,
// languages, media-types) as stored.
func (a *API) ConfigGet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !requireName(w, name) {
		return
	}
	a.serveJSONFile(w, filepath.Join(a.cfg.ConfigPath(), name+".json"))
}

// ConfigSave overwrites one site configuration file and reloads the live
// snapshot, so category routing and languages pick up the change without a
// restart. The file is already written when a reload failure surfaces.
func (a *API) ConfigSave(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !requireName(w, name) {
		return
	}

	var doc map[string]any
	if err := decodeBody(r, &doc); err != nil {
		writeError(w, http.StatusBadRequest, "Request body must be a JSON object")
		return
	}

	if err := writeJSONFile(filepath.Join(a.cfg.ConfigPath(), name+".json"), doc); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := a.site.Reload(); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("saved, but reload failed: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Publish commits and pushes the content workspace to its git remote.
func (a *API) Publish(w http.ResponseWriter, r *http.Request) {
	if a.publisher == nil {
		writeError(w, http.StatusServiceUnavailable, "publishing is not configured")
		return
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := decodeBody(r, &body); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	message := body.Message
	if message == "" {
		message = "Update portfolio content"
	}

	published, err := a.publisher.Push(r.Context(), message)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "published": published})
}

// serveJSONFile writes a stored JSON document through as-is; a missing file
// reads as an empty object.
func (a *API) serveJSONFile(w http.ResponseWriter, path string) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		writeJSON(w, http.StatusOK, map[string]any{})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("%s: %v", filepath.Base(path), err))
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// writeJSONFile writes a workspace JSON document with two-space indentation.
// HTML in translated strings is stored raw, not escaped.
func writeJSONFile(path string, doc any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
