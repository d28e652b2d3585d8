package users

import (
	"github.com/dmitrijs2005/recordapi/internal/server/models"
	"github.com/dmitrijs2005/recordapi/internal/server/query"
)

// Filters are the optional inputs of a users listing. Nil fields are not
// filtered on.
type Filters struct {
	Role   *models.Role
	Search *string
}

// Spec renders f in a fixed order: role, then username search.
func (f Filters) Spec() query.Spec {
	var s query.Spec
	if f.Role != nil {
		s = s.Where(RoleEquals, query.Int(int64(*f.Role)))
	}
	if f.Search != nil {
		s = s.Where(UsernameContains, query.Substring(*f.Search))
	}
	return s
}
