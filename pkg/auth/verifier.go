package auth

import (
	"context"
	"errors"
)

var ErrInvalidToken = errors.New("invalid identity token")

// Claims are the identity facts taken from a verified provider token.
type Claims struct {
	Subject  string `json:"sub"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Picture  string `json:"picture,omitempty"`
	Provider string `json:"provider"`
}

// Verifier checks a provider issued token and extracts the identity in it. Handlers only
// depend on this interface, never on a provider library.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}
