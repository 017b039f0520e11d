package auth

import (
	"context"
	"errors"
)

// Chain accepts a token if any of its verifiers does.
type Chain []Verifier

func (c Chain) Verify(ctx context.Context, token string) (*Claims, error) {
	if len(c) == 0 {
		return nil, ErrNotConfigured
	}

	var errs []error
	for _, verifier := range c {
		claims, err := verifier.Verify(ctx, token)
		if err == nil {
			return claims, nil
		}
		errs = append(errs, err)
	}

	return nil, errors.Join(errs...)
}

var ErrNotConfigured = errors.New("no identity provider is configured")
