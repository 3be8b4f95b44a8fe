package http

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/oauth2"

	"github.com/taskmaster/focusboard/internal/infrastructure/logger"
	"github.com/taskmaster/focusboard/internal/ports"
)

const (
	oauthStateCookie    = "oauth_state"
	oauthVerifierCookie = "oauth_verifier"
	oauthCookiePath     = "/api/v1/auth/google"
	oauthCookieTTL      = 5 * time.Minute
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	authService   ports.AuthService
	google        ports.OAuthProvider
	secureCookies bool
	logger        *logger.Logger
}

// NewAuthHandler creates a new auth handler. google may be nil when Google
// sign-in is not configured.
func NewAuthHandler(authService ports.AuthService, google ports.OAuthProvider, secureCookies bool, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		google:        google,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

// Register godoc
// @Summary Register a new account
// @Description Create an email/password account. Sign in with /auth/login afterwards.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ports.RegisterRequest true "Registration data"
// @Success 201 {object} ports.RegisterResponse
// @Failure 400 {object} ports.ValidationErrorResponse
// @Failure 409 {object} ports.MessageResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req ports.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest()
	}

	user, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, ports.RegisterResponse{
		Message: "User registered successfully",
		User:    ports.RegisteredUser{ID: user.ID, Email: user.Email, Name: user.Name},
	})
}

// Login godoc
// @Summary Sign in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ports.LoginRequest true "Credentials"
// @Success 200 {object} ports.AuthResponse
// @Failure 400 {object} ports.ValidationErrorResponse
// @Failure 401 {object} ports.MessageResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest()
	}

	response, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response)
}

// RefreshToken godoc
// @Summary Rotate a refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ports.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} ports.AuthResponse
// @Failure 401 {object} ports.MessageResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	var req ports.RefreshTokenRequest
	if err := c.Bind(&req); err != nil {
		return badRequest()
	}

	response, err := h.authService.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response)
}

// Logout godoc
// @Summary Revoke every refresh token of the caller
// @Tags auth
// @Produce json
// @Success 200 {object} ports.MessageResponse
// @Failure 401 {object} ports.MessageResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), userID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Logged out successfully"})
}

// GoogleLogin godoc
// @Summary Start Google sign-in
// @Description Redirects to the Google consent page.
// @Tags auth
// @Success 307
// @Failure 503 {object} ports.MessageResponse
// @Router /auth/google/login [get]
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	if h.google == nil {
		return googleDisabled()
	}

	state, err := randomState()
	if err != nil {
		return err
	}
	verifier := oauth2.GenerateVerifier()

	h.setCookie(c, oauthStateCookie, state, oauthCookieTTL)
	h.setCookie(c, oauthVerifierCookie, verifier, oauthCookieTTL)

	return c.Redirect(http.StatusTemporaryRedirect, h.google.AuthCodeURL(state, verifier))
}

// GoogleCallback godoc
// @Summary Finish Google sign-in
// @Tags auth
// @Produce json
// @Param state query string true "OAuth state"
// @Param code query string true "Authorization code"
// @Success 200 {object} ports.AuthResponse
// @Failure 400 {object} ports.MessageResponse
// @Failure 401 {object} ports.MessageResponse
// @Failure 503 {object} ports.MessageResponse
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c echo.Context) error {
	if h.google == nil {
		return googleDisabled()
	}

	stateCookie, err := c.Cookie(oauthStateCookie)
	if err != nil || !sameString(stateCookie.Value, c.QueryParam("state")) {
		h.logger.LogSecurityEvent("oauth_state_mismatch", "", c.RealIP(), nil)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid OAuth state")
	}
	verifierCookie, err := c.Cookie(oauthVerifierCookie)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid OAuth state")
	}

	h.setCookie(c, oauthStateCookie, "", -1)
	h.setCookie(c, oauthVerifierCookie, "", -1)

	if errParam := c.QueryParam("error"); errParam != "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Google sign-in was cancelled")
	}
	code := c.QueryParam("code")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing authorization code")
	}

	profile, err := h.google.Exchange(c.Request().Context(), code, verifierCookie.Value)
	if err != nil {
		h.logger.Warnw("Google code exchange failed", "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "Google sign-in failed")
	}

	response, err := h.authService.LoginWithGoogle(c.Request().Context(), *profile)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response)
}

func (h *AuthHandler) setCookie(c echo.Context, name, value string, ttl time.Duration) {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     oauthCookiePath,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl < 0 {
		cookie.MaxAge = -1
	} else {
		cookie.MaxAge = int(ttl.Seconds())
	}
	c.SetCookie(cookie)
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func sameString(a, b string) bool {
	return a != "" && subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func googleDisabled() error {
	return echo.NewHTTPError(http.StatusServiceUnavailable, "Google sign-in is not configured")
}

func badRequest() error {
	return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
}
