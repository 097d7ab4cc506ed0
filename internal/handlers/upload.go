package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"folio/internal/models"
	"folio/internal/site"
)

// maxUploadSize bounds one multipart request. Release-asset audio runs far
// larger than CDN images.
const maxUploadSize = 200 << 20

// Upload ingests one media file: stage to disk, push to the routed storage
// backend, append the new entry to the category's data file.
func (a *API) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or malformed form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		// A part named "file" with an empty filename parses as a plain
		// value, which is how "no file picked" arrives.
		if r.MultipartForm != nil && len(r.MultipartForm.Value["file"]) > 0 {
			writeError(w, http.StatusBadRequest, "No selected file")
			return
		}
		writeError(w, http.StatusBadRequest, "No file part")
		return
	}
	defer file.Close()

	title := r.FormValue("title")
	category := r.FormValue("category")
	if title == "" || category == "" {
		writeError(w, http.StatusBadRequest, "Title and Category are required")
		return
	}
	if _, ok := a.site.CategoryDataFile(category); !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Category '%s' is invalid.", category))
		return
	}
	if a.uploader == nil {
		writeError(w, http.StatusServiceUnavailable, "media storage is not configured")
		return
	}

	entry, err := a.ingest(r.Context(), file, header.Filename, category, models.EntryFields{
		Title:       title,
		Medium:      r.FormValue("medium"),
		Genre:       r.FormValue("genre"),
		Description: r.FormValue("description"),
		Created:     r.FormValue("created"),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": entry})
}

// UploadBulk ingests a batch of files in one request. Fields follow the
// admin UI's N-suffixed convention: file_0 pairs with title_0, category_0
// and so on, and title falls back to the filename. Each file succeeds or
// fails on its own; the response always carries both counts.
func (a *API) UploadBulk(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or malformed form")
		return
	}

	type filePart struct {
		n      int
		key    string
		suffix string
	}
	var parts []filePart
	for key := range r.MultipartForm.File {
		suffix, ok := strings.CutPrefix(key, "file_")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		parts = append(parts, filePart{n: n, key: key, suffix: suffix})
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].n < parts[j].n })

	results := make([]map[string]any, 0, len(parts))
	errorDetails := make([]map[string]any, 0)

	for _, p := range parts {
		fh := r.MultipartForm.File[p.key][0]
		name := fh.Filename

		title := r.FormValue("title_" + p.suffix)
		if title == "" {
			title = name
		}
		category := r.FormValue("category_" + p.suffix)
		if category == "" {
			errorDetails = append(errorDetails, map[string]any{"file": name, "error": "Missing category"})
			continue
		}

		entry, err := a.ingestPart(r.Context(), fh, category, models.EntryFields{
			Title:       title,
			Medium:      r.FormValue("medium_" + p.suffix),
			Genre:       r.FormValue("genre_" + p.suffix),
			Description: r.FormValue("description_" + p.suffix),
			Created:     r.FormValue("created_" + p.suffix),
		})
		if err != nil {
			errorDetails = append(errorDetails, map[string]any{"file": name, "error": err.Error()})
			continue
		}
		results = append(results, map[string]any{"file": name, "success": true, "data": entry})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":      len(results),
		"errors":       len(errorDetails),
		"results":      results,
		"errorDetails": errorDetails,
	})
}

// ingestPart opens one multipart file and runs the shared ingest path,
// repeating the checks the single-file handler does up front so each bulk
// entry reports its own failure.
func (a *API) ingestPart(ctx context.Context, fh *multipart.FileHeader, category string, fields models.EntryFields) (models.Item, error) {
	if _, ok := a.site.CategoryDataFile(category); !ok {
		return nil, fmt.Errorf("Category '%s' is invalid.", category)
	}
	if a.uploader == nil {
		return nil, errors.New("media storage is not configured")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return a.ingest(ctx, f, fh.Filename, category, fields)
}

// ingest stages the stream to the upload dir, pushes it to the routed
// backend, and appends the resulting entry to the category sequence.
func (a *API) ingest(ctx context.Context, src io.Reader, filename, category string, fields models.EntryFields) (models.Item, error) {
	tempPath, err := saveTemp(a.cfg.UploadDir, src, filename)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tempPath)

	result, err := a.uploader.Upload(ctx, category, tempPath, filepath.Base(filename))
	if err != nil {
		return nil, err
	}

	entry := models.NewEntry(category, result.URL, nil, fields, a.site.LanguageCodes())
	if err := a.content.Append(category, entry); err != nil {
		return nil, err
	}
	a.stampSite()
	return entry, nil
}

// saveTemp stages an uploaded stream on disk so the storage backends can
// read it by path. The caller removes the returned file when done.
func saveTemp(dir string, src io.Reader, original string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	path := filepath.Join(dir, uuid.New().String()+filepath.Ext(original))
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return "", err
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// stampSite refreshes the "Last Updated" marker in the site HTML after a
// media mutation.
func (a *API) stampSite() {
	site.StampLastUpdated(a.cfg.ContentRoot, time.Now())
}
