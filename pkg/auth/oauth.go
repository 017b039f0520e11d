package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var ErrMissingIDToken = errors.New("token response has no id_token")

func NewGoogleOAuthConfig(clientID string, clientSecret string, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"openid", "email", "profile"},
	}
}

// NewState returns an unguessable value for the OAuth state parameter.
func NewState() (string, error) {
	buffer := make([]byte, 24)
	if _, err := rand.Read(buffer); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(buffer), nil
}

// IDToken extracts the OpenID Connect ID token returned next to the access token.
func IDToken(token *oauth2.Token) (string, error) {
	if token == nil {
		return "", ErrMissingIDToken
	}

	idToken, ok := token.Extra("id_token").(string)
	if !ok || idToken == "" {
		return "", ErrMissingIDToken
	}

	return idToken, nil
}
