package api

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"
	"github.com/tendant/simple-blog/pkg/simpleblog"
)

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity returns a context carrying the resolved identity. Exposed so
// tests and alternative resolvers can inject one directly.
func WithIdentity(ctx context.Context, identity simpleblog.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext returns the identity resolved for the request, or the
// zero (anonymous) identity when none was resolved.
func IdentityFromContext(ctx context.Context) simpleblog.Identity {
	identity, _ := ctx.Value(identityKey).(simpleblog.Identity)
	return identity
}

// Verifier seeks, verifies and stores a JWT from the request. It never
// rejects the request itself.
func Verifier(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return jwtauth.Verifier(ja)
}

// IdentityResolver converts verified JWT claims into the explicit Identity
// value the service operates on. Requests without a valid token proceed
// anonymously; the service's own gates decide what anonymous callers may
// do.
//
// Expected claims: "sub" (user id, UUID), "name" (display name), "roles"
// (array of role names).
func IdentityResolver(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			next.ServeHTTP(w, r)
			return
		}

		identity := identityFromClaims(claims)
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

func identityFromClaims(claims map[string]interface{}) simpleblog.Identity {
	var identity simpleblog.Identity

	if sub, ok := claims["sub"].(string); ok {
		if id, err := uuid.Parse(sub); err == nil {
			identity.ID = id
		}
	}
	if name, ok := claims["name"].(string); ok {
		identity.DisplayName = name
	}
	if roles, ok := claims["roles"].([]interface{}); ok {
		for _, role := range roles {
			if name, ok := role.(string); ok {
				identity.Roles = append(identity.Roles, simpleblog.Role(name))
			}
		}
	}

	return identity
}
