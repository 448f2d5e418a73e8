package adapter

import (
	"context"
	"fmt"

	"github.com/MKhiriev/report-buddy/internal/config"
	"github.com/MKhiriev/report-buddy/internal/utils"
	"github.com/MKhiriev/report-buddy/models"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

const firebaseIssuerPrefix = "https://securetoken.google.com/"

// NewTokenVerifier builds the [TokenVerifier] for the configured identity
// mode. In firebase mode the JWKS is fetched once here and refreshed in the
// background for the lifetime of ctx.
func NewTokenVerifier(ctx context.Context, cfg config.Identity) (TokenVerifier, error) {
	switch cfg.Mode {
	case config.IdentityModeLocal:
		return &localVerifier{signKey: cfg.SignKey, issuer: cfg.Issuer}, nil
	case config.IdentityModeFirebase:
		jwks, err := keyfunc.NewDefaultCtx(ctx, []string{cfg.JWKSURL})
		if err != nil {
			return nil, fmt.Errorf("loading identity provider keys: %w", err)
		}
		return newFirebaseVerifier(jwks.Keyfunc, cfg.ProjectID), nil
	default:
		return nil, fmt.Errorf("unknown identity mode %q", cfg.Mode)
	}
}

// firebaseClaims are the Firebase ID token claims the server reads.
type firebaseClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

type firebaseVerifier struct {
	keyFunc jwt.Keyfunc
	parser  *jwt.Parser
}

func newFirebaseVerifier(keyFunc jwt.Keyfunc, projectID string) *firebaseVerifier {
	return &firebaseVerifier{
		keyFunc: keyFunc,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
			jwt.WithIssuer(firebaseIssuerPrefix+projectID),
			jwt.WithAudience(projectID),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
		),
	}
}

func (v *firebaseVerifier) Verify(_ context.Context, token string) (models.Identity, error) {
	claims := &firebaseClaims{}
	if _, err := v.parser.ParseWithClaims(token, claims, v.keyFunc); err != nil {
		return models.Identity{}, mapTokenError(err)
	}
	if claims.Subject == "" {
		return models.Identity{}, fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}

	return models.Identity{UID: claims.Subject, Email: claims.Email, Name: claims.Name}, nil
}

// localVerifier accepts HS256 tokens minted by utils.GenerateIdentityToken.
type localVerifier struct {
	signKey string
	issuer  string
}

func (v *localVerifier) Verify(_ context.Context, token string) (models.Identity, error) {
	identity, err := utils.ValidateIdentityToken(token, v.signKey, v.issuer)
	if err != nil {
		return models.Identity{}, mapTokenError(err)
	}

	return identity, nil
}
