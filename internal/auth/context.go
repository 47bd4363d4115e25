package auth

import "context"

type contextKey string

const claimsKey contextKey = "auth_claims"

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// GetBusinessID returns the tenant scope of the authenticated caller,
// or "" when the request is unauthenticated.
func GetBusinessID(ctx context.Context) string {
	if claims, ok := ctx.Value(claimsKey).(*Claims); ok {
		return claims.BusinessID
	}
	return ""
}

func GetUserID(ctx context.Context) string {
	if claims, ok := ctx.Value(claimsKey).(*Claims); ok {
		return claims.UserID
	}
	return ""
}
