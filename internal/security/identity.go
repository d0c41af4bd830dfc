package security

import (
	"context"

	"cabanas-backoffice/internal/domain"
)

type claimsKey struct{}

// WithClaims stores the authenticated session in ctx
func WithClaims(ctx context.Context, claims *UserClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the session stored by WithClaims, if any
func ClaimsFromContext(ctx context.Context) (*UserClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*UserClaims)
	return claims, ok && claims != nil
}

// Identity resolves the user performing a write
type Identity interface {
	CurrentUserID(ctx context.Context) (string, error)
}

type contextIdentity struct{}

// NewContextIdentity reads the user from the request-scoped session
func NewContextIdentity() Identity {
	return contextIdentity{}
}

func (contextIdentity) CurrentUserID(ctx context.Context) (string, error) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok || claims.UserID() == "" {
		return "", domain.NewUnauthorizedError(ErrMissingToken)
	}
	return claims.UserID(), nil
}
