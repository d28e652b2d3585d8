package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/recordapi/internal/common"
	"github.com/dmitrijs2005/recordapi/internal/server/models"
	"github.com/dmitrijs2005/recordapi/internal/server/query"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
	maxBodyBytes = 1 << 20
)

func nonNegative(q url.Values, name string, def int64) (int64, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", common.ErrValidation, name)
	}
	return v, nil
}

// parsePagination reads limit and offset. A missing limit means 100 and any
// limit is capped at 1000.
func parsePagination(q url.Values) (query.Pagination, error) {
	limit, err := nonNegative(q, "limit", defaultLimit)
	if err != nil {
		return query.Pagination{}, err
	}
	offset, err := nonNegative(q, "offset", 0)
	if err != nil {
		return query.Pagination{}, err
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return query.Pagination{Limit: limit, Offset: offset}, nil
}

func parseRoleParam(q url.Values) (*models.Role, error) {
	raw := q.Get("role")
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: role must be an integer", common.ErrValidation)
	}
	r, err := models.ParseRole(v)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// optional returns nil when name is absent from q.
func optional(q url.Values, name string) *string {
	if !q.Has(name) {
		return nil
	}
	v := q.Get(name)
	return &v
}

func parseID(q url.Values, name string) (int64, error) {
	v, err := strconv.ParseInt(q.Get(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", common.ErrValidation, name)
	}
	return v, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed JSON body", common.ErrValidation)
	}
	return nil
}
