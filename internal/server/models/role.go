package models

import (
	"fmt"

	"github.com/dmitrijs2005/recordapi/internal/common"
)

// Role is the caller's rank. Roles are only ever compared, never combined.
type Role int16

const (
	RoleBasic     Role = 0
	RoleModerator Role = 1
	RoleAdmin     Role = 2
)

// ParseRole converts a stored or transmitted ordinal into a Role.
func ParseRole(v int64) (Role, error) {
	if v < int64(RoleBasic) || v > int64(RoleAdmin) {
		return 0, fmt.Errorf("%w: %d", common.ErrUnknownRole, v)
	}
	return Role(v), nil
}

// AtLeast reports whether r ranks at or above required.
func (r Role) AtLeast(required Role) bool {
	return r >= required
}

func (r Role) String() string {
	switch r {
	case RoleBasic:
		return "basic"
	case RoleModerator:
		return "moderator"
	case RoleAdmin:
		return "admin"
	default:
		return fmt.Sprintf("role(%d)", int16(r))
	}
}
