package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/ecocitty/ecocitty/pkg/util"
)

const (
	SessionCookie = "ecocitty_session"
	StateCookie   = "ecocitty_oauth_state"

	SessionLifetime = 24 * time.Hour
)

var ErrSessionExpired = errors.New("session expired")

// Session is the identity kept in the encrypted session cookie after login.
type Session struct {
	Subject   string `json:"sub"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Picture   string `json:"picture,omitempty"`
	Provider  string `json:"provider"`
	ExpiresAt int64  `json:"exp"`
}

func NewSession(claims *Claims, now time.Time) Session {
	return Session{
		Subject:   claims.Subject,
		Email:     claims.Email,
		Name:      claims.Name,
		Picture:   claims.Picture,
		Provider:  claims.Provider,
		ExpiresAt: now.Add(SessionLifetime).Unix(),
	}
}

// Encode gives a cookie-safe value. Confidentiality comes from the cookie encryption
// middleware, not from this encoding.
func (s Session) Encode() (string, error) {
	body, err := json.Marshal(s)
	if err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(body), nil
}

func DecodeSession(value string, now time.Time) (*Session, error) {
	body, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, err
	}

	if session.Subject == "" {
		return nil, errors.New("session has no subject")
	}
	if now.Unix() >= session.ExpiresAt {
		return nil, ErrSessionExpired
	}

	return &session, nil
}

// IsAdmin reports whether the session email is one of admins. Emails in admins are expected in
// lower case.
func (s *Session) IsAdmin(admins []string) bool {
	if s == nil || s.Email == "" {
		return false
	}

	return util.ContainsString(admins, strings.ToLower(s.Email))
}

// CookieKey derives the base64 AES-256 key the cookie encryption middleware expects from an
// arbitrary length secret.
func CookieKey(secret string) string {
	sum := sha256.Sum256([]byte(secret))

	return base64.StdEncoding.EncodeToString(sum[:])
}
