package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/recordapi/internal/common"
	"github.com/dmitrijs2005/recordapi/internal/server/models"
)

// CredentialStore loads a user together with its password digest.
type CredentialStore interface {
	GetCredentials(ctx context.Context, username string) (*models.Credentials, error)
}

// CookieSettings are the deployment-specific session cookie attributes.
type CookieSettings struct {
	Secure   bool
	SameSite http.SameSite
}

// Session is the result of a successful sign-in.
type Session struct {
	Token  string
	Claims SessionClaims
	Cookie *http.Cookie
}

// Issuer verifies credentials and hands out session tokens.
type Issuer struct {
	codec  *SessionCodec
	hasher *PasswordHasher
	users  CredentialStore
	cookie CookieSettings
}

func NewIssuer(codec *SessionCodec, hasher *PasswordHasher, users CredentialStore, cookie CookieSettings) *Issuer {
	return &Issuer{codec: codec, hasher: hasher, users: users, cookie: cookie}
}

// SignIn checks username/password and issues a session. An unknown username
// and a wrong password both return common.ErrAuthenticationFailed after the
// same digest work.
func (i *Issuer) SignIn(ctx context.Context, username, password string, now time.Time) (*Session, error) {
	creds, err := i.users.GetCredentials(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			i.hasher.Digest(password)
			return nil, common.ErrAuthenticationFailed
		}
		return nil, err
	}

	if !i.hasher.Verify(password, creds.PasswordDigest) {
		return nil, common.ErrAuthenticationFailed
	}

	token, claims, err := i.codec.Issue(creds.ID, creds.Role, now)
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}

	return &Session{Token: token, Claims: claims, Cookie: i.sessionCookie(token)}, nil
}

func (i *Issuer) sessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(i.codec.TTL() / time.Second),
		HttpOnly: true,
		Secure:   i.cookie.Secure,
		SameSite: i.cookie.SameSite,
	}
}

// SignOutCookie tells the client to drop its session cookie immediately.
// The token itself stays valid until it expires.
func (i *Issuer) SignOutCookie() *http.Cookie {
	return &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   i.cookie.Secure,
		SameSite: i.cookie.SameSite,
	}
}
