package access

import (
	"context"
)

type ctxKey struct{}

// WithUserID stores the resolved caller id in the context.
// Set by the auth middleware only.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserIDFromContext returns the caller id resolved for this request, or "".
func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(ctxKey{}).(string)
	return userID
}

// RequireUser fails with ErrUnauthorized when no caller identity was resolved.
func RequireUser(userID string) error {
	if userID == "" {
		return ErrUnauthorized
	}
	return nil
}

// CheckOwner fails with ErrForbidden when the record owner is not the caller.
func CheckOwner(ownerID, callerID string) error {
	if ownerID != callerID {
		return ErrForbidden
	}
	return nil
}
