package auth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

const ProviderGoogle = "google"

// GoogleVerifier validates Google ID tokens issued for ClientID.
type GoogleVerifier struct {
	ClientID string
}

func (v GoogleVerifier) Verify(ctx context.Context, token string) (*Claims, error) {
	payload, err := idtoken.Validate(ctx, token, v.ClientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return &Claims{
		Subject:  payload.Subject,
		Email:    stringClaim(payload.Claims, "email"),
		Name:     stringClaim(payload.Claims, "name"),
		Picture:  stringClaim(payload.Claims, "picture"),
		Provider: ProviderGoogle,
	}, nil
}

func stringClaim(claims map[string]interface{}, key string) string {
	value, _ := claims[key].(string)

	return value
}
