package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
)

const ProviderOIDC = "oidc"

// ProfileClaims are the OpenID Connect profile claims read from the token.
type ProfileClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (c *ProfileClaims) Validate(ctx context.Context) error {
	return nil
}

// JWKSVerifier validates RS256 tokens of any OpenID Connect issuer publishing its keys at the
// well known JWKS location.
type JWKSVerifier struct {
	validator *validator.Validator
}

func NewJWKSVerifier(issuer string, audience string) (*JWKSVerifier, error) {
	if audience == "" {
		return nil, errors.New("an audience is required to verify tokens of " + issuer)
	}

	issuerURL, err := url.Parse(issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to parse the issuer url: %w", err)
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{audience},
		validator.WithCustomClaims(
			func() validator.CustomClaims {
				return &ProfileClaims{}
			},
		),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set up the jwt validator: %w", err)
	}

	return &JWKSVerifier{validator: jwtValidator}, nil
}

func (v *JWKSVerifier) Verify(ctx context.Context, token string) (*Claims, error) {
	claimsI, err := v.validator.ValidateToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	validated := claimsI.(*validator.ValidatedClaims)
	claims := &Claims{
		Subject:  validated.RegisteredClaims.Subject,
		Provider: ProviderOIDC,
	}

	if profile, ok := validated.CustomClaims.(*ProfileClaims); ok {
		claims.Email = profile.Email
		claims.Name = profile.Name
		claims.Picture = profile.Picture
	}

	return claims, nil
}
