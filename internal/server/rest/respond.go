package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/recordapi/internal/common"
	"github.com/dmitrijs2005/recordapi/internal/logging"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// failure is the client-facing rendering of an error.
type failure struct {
	status  int
	message string
	// reason is a short label for logs and metrics.
	reason string
	gate   string
}

var gateFailures = []struct {
	err error
	f   failure
}{
	{common.ErrMissingToken, failure{http.StatusUnauthorized, "missing token", "missing_token", "authentication"}},
	{common.ErrTokenExpired, failure{http.StatusUnauthorized, "token expired", "expired", "authentication"}},
	{common.ErrInvalidToken, failure{http.StatusUnauthorized, "invalid token", "invalid_token", "authentication"}},
	{common.ErrPrincipalNotFound, failure{http.StatusUnauthorized, "unknown principal", "principal_not_found", "authentication"}},
	{common.ErrAuthenticationFailed, failure{http.StatusUnauthorized, "invalid username or password", "bad_credentials", "credential"}},
	{common.ErrNotAuthenticated, failure{http.StatusForbidden, "not authenticated", "not_authenticated", "authorization"}},
	{common.ErrInsufficientRole, failure{http.StatusForbidden, "insufficient role", "insufficient_role", "authorization"}},
}

// classify maps err onto the status taxonomy. Store failures and anything
// unrecognised collapse into a generic 500.
func classify(err error) failure {
	for _, g := range gateFailures {
		if errors.Is(err, g.err) {
			return g.f
		}
	}

	switch {
	case errors.Is(err, common.ErrStore):
		return failure{status: http.StatusInternalServerError, message: common.ErrorInternal.Error(), reason: "internal"}
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrUnknownRole):
		return failure{status: http.StatusBadRequest, message: err.Error(), reason: "bad_request"}
	case errors.Is(err, common.ErrAlreadyExists):
		return failure{status: http.StatusConflict, message: "username already taken", reason: "conflict"}
	case errors.Is(err, common.ErrRateLimited):
		return failure{status: http.StatusTooManyRequests, message: "too many sign-in attempts", reason: "rate_limited"}
	case errors.Is(err, common.ErrorNotFound):
		return failure{status: http.StatusNotFound, message: "not found", reason: "not_found"}
	default:
		return failure{status: http.StatusInternalServerError, message: common.ErrorInternal.Error(), reason: "internal"}
	}
}

// writeError logs err and writes its client-facing form. The diagnostic of a
// 5xx never reaches the client.
func writeError(ctx context.Context, w http.ResponseWriter, log logging.Logger, err error) failure {
	f := classify(err)

	switch {
	case f.status >= http.StatusInternalServerError:
		log.Error(ctx, "request failed", "error", err)
	case f.gate != "":
		log.Warn(ctx, "request rejected", "gate", f.gate, "reason", f.reason)
	default:
		log.Debug(ctx, "bad request", "reason", f.reason, "error", err)
	}

	writeJSON(w, f.status, errorBody{Error: f.message})
	return f
}
