package rest

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/recordapi/internal/common"
	"github.com/dmitrijs2005/recordapi/internal/server/auth"
	"github.com/dmitrijs2005/recordapi/internal/server/models"
)

type createNoteRequest struct {
	Text string `json:"text"`
}

func (h *handler) owner(w http.ResponseWriter, r *http.Request) (*models.Principal, bool) {
	p, err := auth.AuthorizeContext(r.Context(), models.RoleBasic)
	if err != nil {
		h.reject(w, r, err)
		return nil, false
	}
	return p, true
}

func (h *handler) listNotes(w http.ResponseWriter, r *http.Request) {
	p, ok := h.owner(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()

	page, err := parsePagination(q)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	res, err := h.notes.List(r.Context(), p.ID, optional(q, "search"), page)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set(common.TotalCountHeader, strconv.FormatInt(res.Total, 10))
	writeJSON(w, http.StatusOK, res.Items)
}

func (h *handler) createNote(w http.ResponseWriter, r *http.Request) {
	p, ok := h.owner(w, r)
	if !ok {
		return
	}

	var req createNoteRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	note, err := h.notes.Create(r.Context(), p.ID, req.Text)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (h *handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	p, ok := h.owner(w, r)
	if !ok {
		return
	}

	id, err := parseID(r.URL.Query(), "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	note, err := h.notes.Delete(r.Context(), p.ID, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}
