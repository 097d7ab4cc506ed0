package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// pileRequest is the shared body shape of the pile endpoints; each handler
// uses the fields its operation needs. ImageIndex is a pointer so a missing
// index is distinguishable from 0 and rejected as invalid.
type pileRequest struct {
	SourceID          string `json:"sourceId"`
	TargetID          string `json:"targetId"`
	ImageURL          string `json:"imageUrl"`
	ImageIndex        *int   `json:"imageIndex"`
	CustomTitle       string `json:"customTitle"`
	CustomDescription string `json:"customDescription"`
}

func (p pileRequest) index() int {
	if p.ImageIndex == nil {
		return -1
	}
	return *p.ImageIndex
}

// PileMove merges the source item into the target's gallery and removes the
// source from the category.
func (a *API) PileMove(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if !requireName(w, category) {
		return
	}

	var body pileRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.SourceID == "" || body.TargetID == "" {
		writeError(w, http.StatusBadRequest, "sourceId and targetId are required")
		return
	}

	res, err := a.content.MoveToPile(category, body.SourceID, body.TargetID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":            true,
		"targetGalleryCount": res.TargetGalleryCount,
	})
}

// PileExtract removes one gallery image from the source item and creates a
// standalone item for it.
func (a *API) PileExtract(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if !requireName(w, category) {
		return
	}

	var body pileRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.SourceID == "" {
		writeError(w, http.StatusBadRequest, "sourceId is required")
		return
	}

	res, err := a.content.ExtractFromPile(category, body.SourceID, body.ImageURL, body.index(), body.CustomTitle, body.CustomDescription)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"newId":    res.NewID,
		"newTitle": res.NewTitle,
	})
}

// PileAdd moves one gallery image from the source item into the target's
// gallery; both items survive.
func (a *API) PileAdd(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if !requireName(w, category) {
		return
	}

	var body pileRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.SourceID == "" || body.TargetID == "" {
		writeError(w, http.StatusBadRequest, "sourceId and targetId are required")
		return
	}

	res, err := a.content.AddToPile(category, body.SourceID, body.TargetID, body.ImageURL, body.index())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":            true,
		"targetGalleryCount": res.TargetGalleryCount,
	})
}
