package rest

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/recordapi/internal/common"
	"github.com/dmitrijs2005/recordapi/internal/server/auth"
	"github.com/dmitrijs2005/recordapi/internal/server/models"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signInResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *handler) signUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	user, err := h.users.SignUp(r.Context(), req.Username, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *handler) signIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	username := strings.TrimSpace(req.Username)

	decision, err := h.limiter.Allow(r.Context(), strings.ToLower(username))
	if err != nil {
		h.logger.Warn(r.Context(), "rate limiter unavailable, allowing sign-in", "error", err)
	} else if !decision.Allowed {
		h.metrics.RateLimited()
		if wait := time.Until(decision.ResetAt); wait > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(int(wait.Seconds())+1))
		}
		h.fail(w, r, common.ErrRateLimited)
		return
	}

	session, err := h.issuer.SignIn(r.Context(), username, req.Password, h.now())
	if err != nil {
		h.reject(w, r, err)
		return
	}

	http.SetCookie(w, session.Cookie)
	writeJSON(w, http.StatusOK, signInResponse{Token: session.Token, ExpiresAt: session.Claims.ExpiresAt})
}

func (h *handler) signOut(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.issuer.SignOutCookie())
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

func (h *handler) me(w http.ResponseWriter, r *http.Request) {
	p, err := auth.AuthorizeContext(r.Context(), models.RoleBasic)
	if err != nil {
		h.reject(w, r, err)
		return
	}

	user, err := h.users.Me(r.Context(), p.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
