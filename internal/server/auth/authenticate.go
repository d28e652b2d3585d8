package auth

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/recordapi/internal/common"
	"github.com/dmitrijs2005/recordapi/internal/server/models"
)

// PrincipalStore resolves a subject id into the current users row.
type PrincipalStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// Authenticator turns a raw session token into a Principal.
type Authenticator struct {
	codec *SessionCodec
	users PrincipalStore
}

func NewAuthenticator(codec *SessionCodec, users PrincipalStore) *Authenticator {
	return &Authenticator{codec: codec, users: users}
}

// Authenticate verifies token as of now and loads its subject. The role is
// taken from the store, not from the token, so promotions apply at once.
//
// Errors: common.ErrMissingToken, common.ErrInvalidToken,
// common.ErrTokenExpired, common.ErrPrincipalNotFound, or a store error.
func (a *Authenticator) Authenticate(ctx context.Context, token string, now time.Time) (*models.Principal, error) {
	if token == "" {
		return nil, common.ErrMissingToken
	}

	claims, err := a.codec.Decode(token, now)
	if err != nil {
		return nil, err
	}

	user, err := a.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrPrincipalNotFound
		}
		return nil, err
	}

	return user, nil
}
