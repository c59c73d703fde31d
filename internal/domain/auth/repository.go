package auth

import "context"

// TokenRepository persists refresh tokens (hashed) so they can be revoked.
type TokenRepository interface {
	CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64, sessionReq SessionTrackingRequest) error
	// LookupRefreshToken returns the owner and whether the token is revoked or expired.
	LookupRefreshToken(ctx context.Context, token string) (userID string, revoked bool, err error)
	RevokeRefreshToken(ctx context.Context, token string) error
}
