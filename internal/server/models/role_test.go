package models

import (
	"testing"

	"github.com/dmitrijs2005/recordapi/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, v := range []int64{0, 1, 2} {
		r, err := ParseRole(v)
		require.NoError(t, err)
		assert.Equal(t, Role(v), r)
	}

	for _, v := range []int64{-1, 3, 32768, 65538} {
		_, err := ParseRole(v)
		assert.ErrorIs(t, err, common.ErrUnknownRole, "value %d", v)
	}
}

func TestRole_Ordering(t *testing.T) {
	ordered := []Role{RoleBasic, RoleModerator, RoleAdmin}

	for i, a := range ordered {
		for j, b := range ordered {
			assert.Equal(t, i >= j, a.AtLeast(b), "%s.AtLeast(%s)", a, b)
		}
	}

	assert.True(t, RoleBasic < RoleModerator)
	assert.True(t, RoleModerator < RoleAdmin)
}

func TestRole_String(t *testing.T) {
	assert.Equal(t, "basic", RoleBasic.String())
	assert.Equal(t, "moderator", RoleModerator.String())
	assert.Equal(t, "admin", RoleAdmin.String())
	assert.Equal(t, "role(7)", Role(7).String())
}
