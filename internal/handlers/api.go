// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the folio admin API.
// Handlers are grouped on the API struct and receive their dependencies
// through the constructor. Every endpoint speaks JSON and shares one
// error envelope, {"error": "..."}.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"folio/internal/config"
	"folio/internal/storage"
	"folio/internal/store"
)

// Uploader is the media coordination surface the handlers depend on.
// *storage.Coordinator satisfies it; tests substitute fakes.
type Uploader interface {
	Upload(ctx context.Context, category, file, name string) (storage.Result, error)
	RemoveBatch(ctx context.Context, urls []string) storage.RemoveReport
}

// Publisher pushes the content tree to its git remote.
type Publisher interface {
	Push(ctx context.Context, message string) (bool, error)
}

// API groups the admin JSON endpoints and their dependencies.
type API struct {
	cfg       *config.Config
	site      *config.Site
	content   *store.ContentStore
	uploader  Uploader
	publisher Publisher
}

// NewAPI creates the API handler group. uploader and publisher may be
// nil when the backing services are not configured; the endpoints that
// need them answer 503.
func NewAPI(cfg *config.Config, site *config.Site, content *store.ContentStore, uploader Uploader, publisher Publisher) *API {
	return &API{
		cfg:       cfg,
		site:      site,
		content:   content,
		uploader:  uploader,
		publisher: publisher,
	}
}

// Health reports liveness.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// safeName gates path parameters that become file names. Anything
// outside it would let a request walk out of the content tree.
var safeName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// requireName validates one path parameter and writes the 400 itself
// when the value is unusable.
func requireName(w http.ResponseWriter, value string) bool {
	if !safeName.MatchString(value) {
		writeError(w, http.StatusBadRequest, "Invalid name")
		return false
	}
	return true
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes the shared error envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}

// writeStoreError maps a store failure onto its status code.
func writeStoreError(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err.Error())
}

// statusFor maps store errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrInvalidCategory), errors.Is(err, store.ErrInvalidIndex):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrSameItem):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody parses a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
