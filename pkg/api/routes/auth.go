package routes

import (
	"errors"
	"time"

	"github.com/ecocitty/ecocitty/pkg/auth"
	"github.com/ecocitty/ecocitty/pkg/ctdf"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator/source"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const stateCookieLifetime = 10 * time.Minute

var errNotLoggedIn = &AccessError{StatusCode: fiber.StatusUnauthorized, Message: "Not logged in"}

type authHandlers struct {
	services *Services
}

// AuthRouter mounts the browser login flow on router and the token endpoints on api.
func AuthRouter(router fiber.Router, api fiber.Router, services *Services) {
	handlers := &authHandlers{services: services}

	router.Get("/login", handlers.login)
	router.Get("/auth/callback", handlers.callback)
	router.Post("/logout", handlers.logout)

	api.Post("/auth/session", handlers.createSession)
	api.Get("/me", handlers.me)
}

func (h *authHandlers) login(c *fiber.Ctx) error {
	if h.services.OAuth == nil {
		return sendError(c, oauthNotConfigured(), ctdf.DataProvenanceLive)
	}

	state, err := auth.NewState()
	if err != nil {
		return sendError(c, err, ctdf.DataProvenanceLive)
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.StateCookie,
		Value:    state,
		Expires:  h.services.now().Add(stateCookieLifetime),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Redirect(h.services.OAuth.AuthCodeURL(state), fiber.StatusFound)
}

func (h *authHandlers) callback(c *fiber.Ctx) error {
	if h.services.OAuth == nil {
		return sendError(c, oauthNotConfigured(), ctdf.DataProvenanceLive)
	}

	state := c.Query("state")
	if state == "" || state != c.Cookies(auth.StateCookie) {
		return sendError(c, &ValidationError{Message: "OAuth state does not match"}, ctdf.DataProvenanceLive)
	}
	c.ClearCookie(auth.StateCookie)

	code := c.Query("code")
	if code == "" {
		return sendError(c, &ValidationError{Message: "Missing required parameters: code"}, ctdf.DataProvenanceLive)
	}

	token, err := h.services.OAuth.Exchange(c.UserContext(), code)
	if err != nil {
		log.Warn().Err(err).Msg("OAuth code exchange failed")
		return sendError(c, &AccessError{StatusCode: fiber.StatusUnauthorized, Message: "Login failed"}, ctdf.DataProvenanceLive)
	}

	idToken, err := auth.IDToken(token)
	if err != nil {
		return sendError(c, &AccessError{StatusCode: fiber.StatusUnauthorized, Message: err.Error()}, ctdf.DataProvenanceLive)
	}

	if _, err := h.establishSession(c, idToken); err != nil {
		return h.sessionError(c, err)
	}

	target := h.services.Config.PostLoginURL
	if target == "" {
		target = "/"
	}

	return c.Redirect(target, fiber.StatusFound)
}

// createSession accepts an ID token obtained by the client directly from the provider.
func (h *authHandlers) createSession(c *fiber.Ctx) error {
	var body struct {
		Credential string `json:"credential"`
		IDToken    string `json:"id_token"`
	}
	if err := c.BodyParser(&body); err != nil {
		return sendError(c, &ValidationError{Message: "Body must be a JSON object"}, ctdf.DataProvenanceLive)
	}

	token := body.Credential
	if token == "" {
		token = body.IDToken
	}
	if token == "" {
		return sendError(c, &ValidationError{Message: "Missing required parameters: credential"}, ctdf.DataProvenanceLive)
	}

	session, err := h.establishSession(c, token)
	if err != nil {
		return h.sessionError(c, err)
	}

	return sendData(c, fiber.Map{"user": session}, ctdf.DataProvenanceLive)
}

func (h *authHandlers) me(c *fiber.Ctx) error {
	session := currentSession(c, h.services.now())
	if session == nil {
		return sendError(c, errNotLoggedIn, ctdf.DataProvenanceLive)
	}

	return sendData(c, fiber.Map{
		"user":     session,
		"is_admin": session.IsAdmin(h.services.Config.AdminEmails),
	}, ctdf.DataProvenanceLive)
}

func (h *authHandlers) logout(c *fiber.Ctx) error {
	c.ClearCookie(auth.SessionCookie)

	return sendData(c, fiber.Map{"message": "Logged out"}, ctdf.DataProvenanceLive)
}

// establishSession verifies the provider token, records the identity and sets the session
// cookie.
func (h *authHandlers) establishSession(c *fiber.Ctx, token string) (*auth.Session, error) {
	if h.services.Verifier == nil {
		return nil, auth.ErrNotConfigured
	}

	claims, err := h.services.Verifier.Verify(c.UserContext(), token)
	if err != nil {
		return nil, err
	}

	identity := &ctdf.Identity{
		Subject:  claims.Subject,
		Email:    claims.Email,
		Name:     claims.Name,
		Picture:  claims.Picture,
		Provider: claims.Provider,
	}
	if _, err := h.services.Store.Identities.Insert(c.UserContext(), identity); err != nil {
		return nil, &PersistenceError{Kind: ctdf.RecordKindIdentity, Err: err}
	}

	now := h.services.now()
	session := auth.NewSession(claims, now)
	value, err := session.Encode()
	if err != nil {
		return nil, err
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookie,
		Value:    value,
		Expires:  now.Add(auth.SessionLifetime),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	log.Info().Str("provider", claims.Provider).Str("subject", claims.Subject).Msg("User logged in")

	return &session, nil
}

func (h *authHandlers) sessionError(c *fiber.Ctx, err error) error {
	var persistenceError *PersistenceError

	switch {
	case errors.Is(err, auth.ErrNotConfigured):
		return sendError(c, &source.ConfigurationError{
			Source:   "identity provider",
			Settings: []string{"ECOCITTY_GOOGLE_CLIENT_ID", "ECOCITTY_JWKS_ISSUER"},
		}, ctdf.DataProvenanceLive)
	case errors.As(err, &persistenceError):
		return sendError(c, err, ctdf.DataProvenanceLive)
	default:
		log.Warn().Err(err).Msg("Rejected identity token")
		return sendError(c, &AccessError{StatusCode: fiber.StatusUnauthorized, Message: auth.ErrInvalidToken.Error()}, ctdf.DataProvenanceLive)
	}
}

func oauthNotConfigured() error {
	return &source.ConfigurationError{
		Source:   "Google OAuth",
		Settings: []string{"ECOCITTY_GOOGLE_CLIENT_ID", "ECOCITTY_GOOGLE_CLIENT_SECRET", "ECOCITTY_OAUTH_REDIRECT_URL"},
	}
}

// currentSession returns nil for a missing, malformed or expired session cookie.
func currentSession(c *fiber.Ctx, now time.Time) *auth.Session {
	value := c.Cookies(auth.SessionCookie)
	if value == "" {
		return nil
	}

	session, err := auth.DecodeSession(value, now)
	if err != nil {
		log.Debug().Err(err).Msg("Ignoring invalid session cookie")
		return nil
	}

	return session
}
