package auth

import (
	"context"

	"github.com/dmitrijs2005/recordapi/internal/common"
	"github.com/dmitrijs2005/recordapi/internal/server/models"
)

// Authorize permits p iff its role ranks at or above required.
func Authorize(p *models.Principal, required models.Role) error {
	if p == nil {
		return common.ErrNotAuthenticated
	}
	if !p.Role.AtLeast(required) {
		return common.ErrInsufficientRole
	}
	return nil
}

// AuthorizeContext runs Authorize against the Principal stored in ctx.
func AuthorizeContext(ctx context.Context, required models.Role) (*models.Principal, error) {
	p, _ := PrincipalFromContext(ctx)
	if err := Authorize(p, required); err != nil {
		return nil, err
	}
	return p, nil
}
