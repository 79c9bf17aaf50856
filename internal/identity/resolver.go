// Package identity resolves the acting user from bearer tokens issued by the
// external identity provider. Token issuance, sessions, and login flows all
// live outside this service; only verification happens here, and it is best
// effort: an absent or invalid token simply yields no actor, and audit entries
// fall back to the issue's reporter.
package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/metroworks/issue-service/internal/config"
	"github.com/metroworks/issue-service/internal/repository"
)

// Resolver verifies externally-issued JWTs against the shared secret and
// checks the subject against the user table.
type Resolver struct {
	secret []byte
	users  repository.UserRepository
}

// NewResolver constructs a resolver. An empty secret disables resolution.
func NewResolver(cfg config.IdentityConfig, users repository.UserRepository) *Resolver {
	return &Resolver{secret: []byte(cfg.JWTSecret), users: users}
}

// ActorID returns the user id carried by a valid bearer token, or "" when the
// header is absent, malformed, expired, or names an unknown user.
func (r *Resolver) ActorID(ctx context.Context, authorization string) string {
	if r == nil || len(r.secret) == 0 || authorization == "" {
		return ""
	}
	parts := strings.SplitN(authorization, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return r.secret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return ""
	}
	if _, err := r.users.GetByID(ctx, claims.Subject); err != nil {
		return ""
	}
	return claims.Subject
}
