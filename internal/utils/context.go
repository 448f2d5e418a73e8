// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, HTTP client initialization, identity token
// generation and validation, and client address resolution.
package utils

import (
	"context"

	"github.com/MKhiriev/report-buddy/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key used to store the identity provider uid of the
// authenticated user in the context.
//
//	ctx := context.WithValue(ctx, utils.UserIDCtxKey, "firebase-uid")
var UserIDCtxKey = contextKey("userID")

// UserCtxKey is the key used to store the loaded *models.User in the context.
var UserCtxKey = contextKey("user")

// GetUserIDFromContext retrieves the user identifier from the context.
// ok is false when the value is missing, empty or not a string.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok && userID != ""
}

// WithUser stores the authenticated user and its id in the context.
func WithUser(ctx context.Context, user *models.User) context.Context {
	ctx = context.WithValue(ctx, UserIDCtxKey, user.ID)
	return context.WithValue(ctx, UserCtxKey, user)
}

// GetUserFromContext retrieves the user stored by WithUser.
func GetUserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(*models.User)
	return user, ok && user != nil
}
