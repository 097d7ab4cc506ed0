// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package web serves the static admin UI bundle.
package web

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// SPA serves a single-page admin bundle from a directory. Real files are
// served as-is, the root and unresolved .html paths fall back to
// index.html, and everything else is a 404.
type SPA struct {
	dir string
}

// NewSPA creates a handler rooted at dir.
func NewSPA(dir string) *SPA {
	return &SPA{dir: dir}
}

func (s *SPA) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Cleaning the rooted URL path first makes ".." segments inert.
	rel := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	if rel == "" || rel == "." {
		rel = "index.html"
	}
	full := filepath.Join(s.dir, filepath.FromSlash(rel))

	info, err := os.Stat(full)
	switch {
	case err == nil && !info.IsDir():
		http.ServeFile(w, r, full)
	case err == nil && info.IsDir():
		index := filepath.Join(full, "index.html")
		if _, err := os.Stat(index); err == nil {
			http.ServeFile(w, r, index)
			return
		}
		http.NotFound(w, r)
	case strings.HasSuffix(rel, ".html"):
		// Page requests resolve to the shell; the bundle routes
		// client-side.
		http.ServeFile(w, r, filepath.Join(s.dir, "index.html"))
	default:
		http.NotFound(w, r)
	}
}
