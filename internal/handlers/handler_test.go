// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for the API handler
// tests: a throwaway content workspace plus fake media and git backends.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"

	"folio/internal/config"
	"folio/internal/storage"
	"folio/internal/store"
)

// testEnv holds all dependencies for handler tests.
type testEnv struct {
	api       *API
	cfg       *config.Config
	site      *config.Site
	store     *store.ContentStore
	uploader  *fakeUploader
	publisher *fakePublisher
	root      string
}

// newTestEnv creates an API over a fresh workspace with painting and music
// categories and en/fr languages configured.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	root := t.TempDir()
	cfg := &config.Config{
		ContentRoot: root,
		AdminDir:    root,
		UploadDir:   filepath.Join(root, "temp_uploads"),
	}

	mustWriteFile(t, filepath.Join(cfg.ConfigPath(), "categories.json"), `{
  "contentTypes": [
    {"id": "painting", "name": "Painting", "mediaType": "image", "dataFile": "data/painting.json"},
    {"id": "music", "name": "Music", "mediaType": "audio", "dataFile": "data/music.json"}
  ]
}`)
	mustWriteFile(t, filepath.Join(cfg.ConfigPath(), "languages.json"), `{
  "supportedLanguages": [
    {"code": "en", "name": "English"},
    {"code": "fr", "name": "French"}
  ],
  "defaultLanguage": "en"
}`)

	siteCfg, err := config.LoadSite(cfg.ConfigPath(), cfg.DataPath(), cfg.LangPath())
	if err != nil {
		t.Fatalf("load site config: %v", err)
	}

	uploader := &fakeUploader{failURLs: map[string]bool{}}
	publisher := &fakePublisher{}
	contentStore := store.NewContentStore(siteCfg)

	return &testEnv{
		api:       NewAPI(cfg, siteCfg, contentStore, uploader, publisher),
		cfg:       cfg,
		site:      siteCfg,
		store:     contentStore,
		uploader:  uploader,
		publisher: publisher,
		root:      root,
	}
}

// writeData writes a raw category data file into the workspace and returns
// its path.
func (e *testEnv) writeData(t *testing.T, category, content string) string {
	t.Helper()
	path := filepath.Join(e.cfg.DataPath(), category+".json")
	mustWriteFile(t, path, content)
	return path
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// withURLParams injects chi route parameters into a request, the way the
// router would during dispatch. Pairs alternate key, value.
func withURLParams(r *http.Request, pairs ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(pairs); i += 2 {
		rctx.URLParams.Add(pairs[i], pairs[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

// uploadFile describes one file part for multipartBody.
type uploadFile struct {
	field   string
	name    string
	content string
}

func multipartBody(t *testing.T, fields map[string]string, files ...uploadFile) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(f.field, f.name)
		if err != nil {
			t.Fatalf("create file part %s: %v", f.field, err)
		}
		if _, err := io.WriteString(part, f.content); err != nil {
			t.Fatalf("write file part %s: %v", f.field, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

type uploadCall struct {
	category string
	file     string
	name     string
	staged   bool
}

// fakeUploader records uploads and deletions. Upload answers with a
// deterministic URL; staged reports whether the handed-over file existed on
// disk at call time.
type fakeUploader struct {
	uploads   []uploadCall
	removed   []string
	uploadErr error
	failURLs  map[string]bool
}

func (f *fakeUploader) Upload(ctx context.Context, category, file, name string) (storage.Result, error) {
	if f.uploadErr != nil {
		return storage.Result{}, f.uploadErr
	}
	_, statErr := os.Stat(file)
	f.uploads = append(f.uploads, uploadCall{
		category: category,
		file:     file,
		name:     name,
		staged:   statErr == nil,
	})
	return storage.Result{URL: "https://cdn.example.com/" + category + "/" + name, Provider: "cloudinary"}, nil
}

func (f *fakeUploader) RemoveBatch(ctx context.Context, urls []string) storage.RemoveReport {
	var report storage.RemoveReport
	for _, u := range urls {
		if u == "" {
			continue
		}
		if f.failURLs[u] {
			report.Failed = append(report.Failed, u)
			continue
		}
		f.removed = append(f.removed, u)
		report.Deleted = append(report.Deleted, u)
	}
	return report
}

// fakePublisher records push messages.
type fakePublisher struct {
	messages []string
	nothing  bool
	err      error
}

func (f *fakePublisher) Push(ctx context.Context, message string) (bool, error) {
	f.messages = append(f.messages, message)
	if f.err != nil {
		return false, f.err
	}
	return !f.nothing, nil
}
