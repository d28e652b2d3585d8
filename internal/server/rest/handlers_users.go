package rest

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/recordapi/internal/common"
	"github.com/dmitrijs2005/recordapi/internal/server/models"
	usersrepo "github.com/dmitrijs2005/recordapi/internal/server/repositories/users"
)

type promoteRequest struct {
	ID   int64  `json:"id"`
	Role *int64 `json:"role"`
}

func (h *handler) listUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := parsePagination(q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	role, err := parseRoleParam(q)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	res, err := h.users.List(r.Context(), usersrepo.Filters{Role: role, Search: optional(q, "search")}, page)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set(common.TotalCountHeader, strconv.FormatInt(res.Total, 10))
	writeJSON(w, http.StatusOK, res.Items)
}

func (h *handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Delete(r.Context(), r.URL.Query().Get("username"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *handler) promoteUser(w http.ResponseWriter, r *http.Request) {
	var req promoteRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if req.Role == nil {
		h.fail(w, r, fmt.Errorf("%w: role is required", common.ErrValidation))
		return
	}
	role, err := models.ParseRole(*req.Role)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	user, err := h.users.Promote(r.Context(), req.ID, role)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
