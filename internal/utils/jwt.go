package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/report-buddy/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidAuthorizationHeader is returned for a header that is not of the
// form "Bearer <token>".
var ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")

// IdentityClaims are the claims of a locally signed identity token. They
// mirror the subset of Firebase ID token claims the server uses.
type IdentityClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// GenerateIdentityToken signs an HS256 identity token for the given identity.
// It is used in local identity mode and in tests.
//
//	token, err := utils.GenerateIdentityToken("report-buddy", identity, time.Hour, "secret")
func GenerateIdentityToken(issuer string, identity models.Identity, tokenDuration time.Duration, signKey string) (string, error) {
	if issuer == "" || identity.UID == "" || tokenDuration == 0 || signKey == "" {
		return "", errors.New("invalid params for generating identity token")
	}

	now := time.Now()
	claims := &IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   identity.UID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email: identity.Email,
		Name:  identity.Name,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing identity token: %w", err)
	}

	return signed, nil
}

// ValidateIdentityToken verifies an HS256 identity token and returns the
// identity it carries. jwt.ErrTokenExpired is preserved in the error chain.
func ValidateIdentityToken(tokenString, signKey, issuer string) (models.Identity, error) {
	claims := &IdentityClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Identity{}, fmt.Errorf("error occurred validating identity token: %w", err)
	}

	if claims.Subject == "" {
		return models.Identity{}, fmt.Errorf("%w: empty subject", jwt.ErrTokenInvalidSubject)
	}

	return models.Identity{UID: claims.Subject, Email: claims.Email, Name: claims.Name}, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}
	return parts[1], nil
}
