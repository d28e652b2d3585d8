// Package auth holds the session lifecycle: issuing and decoding signed
// session tokens, verifying credentials at sign-in, resolving a token into a
// Principal and gating a Principal by role.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/recordapi/internal/common"
	"github.com/dmitrijs2005/recordapi/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims is the wire form: sub, role, iat and exp in epoch seconds.
type tokenClaims struct {
	jwt.RegisteredClaims
	Role int16 `json:"role"`
}

// SessionClaims is the decoded content of a session token.
type SessionClaims struct {
	Subject   int64
	Role      models.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// SessionCodec signs and verifies HS256 session tokens with a fixed TTL.
type SessionCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewSessionCodec(secret []byte, ttl time.Duration) *SessionCodec {
	return &SessionCodec{secret: secret, ttl: ttl}
}

// TTL is the lifetime given to every issued token.
func (c *SessionCodec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for subject valid from now until now+TTL.
func (c *SessionCodec) Issue(subject int64, role models.Role, now time.Time) (string, SessionClaims, error) {
	iat := jwt.NewNumericDate(now)
	exp := jwt.NewNumericDate(now.Add(c.ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subject, 10),
			IssuedAt:  iat,
			ExpiresAt: exp,
		},
		Role: int16(role),
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", SessionClaims{}, fmt.Errorf("sign session token: %w", err)
	}

	return signed, SessionClaims{
		Subject:   subject,
		Role:      role,
		IssuedAt:  iat.Time,
		ExpiresAt: exp.Time,
	}, nil
}

// Decode verifies the signature and structure of token, then its expiry as
// of now. Signature or structure problems yield common.ErrInvalidToken
// (wrapping common.ErrTokenSignatureInvalid for bad signatures); an elapsed
// token yields common.ErrTokenExpired.
func (c *SessionCodec) Decode(token string, now time.Time) (*SessionClaims, error) {
	claims := &tokenClaims{}

	_, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, common.ErrTokenSignatureInvalid)
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, common.ErrTokenExpired
		default:
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
		}
	}

	subject, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", common.ErrInvalidToken)
	}
	role, err := models.ParseRole(int64(claims.Role))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	out := &SessionClaims{Subject: subject, Role: role}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
