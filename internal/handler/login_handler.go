package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/amanraj069/m-frontend-sub001/internal/auth"
	"github.com/amanraj069/m-frontend-sub001/internal/login"
	"github.com/amanraj069/m-frontend-sub001/internal/model"
	"github.com/amanraj069/m-frontend-sub001/internal/session"
)

const actionTogglePassword = "toggle-password"

// LoginPage is the view model of the login screen.
type LoginPage struct {
	Email           string
	Password        string
	Role            string
	PasswordVisible bool
	Roles           []model.Role
	State           login.State
}

// InfoPage is the view model of the auxiliary pages.
type InfoPage struct {
	Title   string
	Message string
}

// LoginHandler serves the login screen.
type LoginHandler struct {
	screens   *login.Registry
	sessions  session.Capability
	tokens    *auth.JWTService
	cookies   CookieOptions
	screenTTL time.Duration
	log       *zap.Logger
}

// NewLoginHandler creates the login screen handler.
func NewLoginHandler(
	screens *login.Registry,
	sessions session.Capability,
	tokens *auth.JWTService,
	cookies CookieOptions,
	screenTTL time.Duration,
	log *zap.Logger,
) *LoginHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoginHandler{
		screens:   screens,
		sessions:  sessions,
		tokens:    tokens,
		cookies:   cookies,
		screenTTL: screenTTL,
		log:       log,
	}
}

// Show renders the login screen, mounting one if the browser has none.
func (h *LoginHandler) Show(c echo.Context) error {
	if h.signedIn(c) {
		return c.Redirect(http.StatusSeeOther, login.LandingRoute)
	}
	screen := h.screen(c)
	return h.render(c, http.StatusOK, screen)
}

// Submit applies the posted fields and either toggles password visibility or
// runs one login attempt.
func (h *LoginHandler) Submit(c echo.Context) error {
	screen := h.screen(c)

	params, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	for _, field := range login.Fields() {
		if values, ok := params[string(field)]; ok && len(values) > 0 {
			screen.Form.SetField(field, values[0])
		}
	}

	if c.FormValue("action") == actionTogglePassword {
		screen.Form.TogglePasswordVisibility()
		return h.render(c, http.StatusOK, screen)
	}

	err = screen.Controller.Submit(c.Request().Context())
	switch {
	case errors.Is(err, login.ErrNotSubmittable):
		return h.render(c, http.StatusBadRequest, screen)
	case errors.Is(err, login.ErrSubmitInFlight):
		return h.render(c, http.StatusConflict, screen)
	case errors.Is(err, login.ErrClosed):
		return h.restart(c)
	case err != nil:
		return err
	}

	// swept while the attempt was pending; its outcome was dropped
	if screen.Controller.Closed() {
		return h.restart(c)
	}

	route, moved := screen.Destination()
	if !moved {
		screen.Form.SetField(login.FieldPassword, "")
		return h.render(c, http.StatusUnauthorized, screen)
	}

	if sess := screen.Controller.Session(); sess != nil {
		h.cookies.setAuthCookies(c, sess.Tokens)
		h.log.Info("user logged in", zap.Uint("user_id", sess.User.ID), zap.String("role", string(sess.User.Role)))
	}
	h.screens.Unmount(screen.ID)
	h.cookies.clearScreenCookie(c)
	return c.Redirect(http.StatusSeeOther, route)
}

// Logout ends the browser session and returns to the login screen.
func (h *LoginHandler) Logout(c echo.Context) error {
	tokens := session.Tokens{
		AccessToken:  cookieValue(c, AccessTokenCookie),
		RefreshToken: cookieValue(c, RefreshTokenCookie),
	}
	if tokens.AccessToken != "" || tokens.RefreshToken != "" {
		if err := h.sessions.Logout(c.Request().Context(), tokens); err != nil {
			h.log.Warn("logout failed", zap.Error(err))
		}
	}
	h.cookies.clearAuthCookies(c)
	return c.Redirect(http.StatusSeeOther, "/login")
}

// ForgotPassword renders the password reset notice.
func (h *LoginHandler) ForgotPassword(c echo.Context) error {
	return c.Render(http.StatusOK, "info", InfoPage{
		Title:   "Forgot password",
		Message: "Password resets are handled by support. Contact your administrator to reset your password.",
	})
}

// Signup renders the registration notice.
func (h *LoginHandler) Signup(c echo.Context) error {
	return c.Render(http.StatusOK, "info", InfoPage{
		Title:   "Sign up",
		Message: "New freelancer and employer accounts are created by the marketplace team.",
	})
}

// screen resumes the browser's login screen or mounts a new one.
func (h *LoginHandler) screen(c echo.Context) *login.Screen {
	if id := cookieValue(c, LoginScreenCookie); id != "" {
		if s, ok := h.screens.Lookup(id); ok {
			return s
		}
	}
	s := h.screens.Mount()
	h.cookies.setScreenCookie(c, s.ID, h.screenTTL)
	return s
}

// restart drops the browser's stale screen and sends it back to a fresh one.
func (h *LoginHandler) restart(c echo.Context) error {
	h.cookies.clearScreenCookie(c)
	return c.Redirect(http.StatusSeeOther, "/login")
}

func (h *LoginHandler) signedIn(c echo.Context) bool {
	token := cookieValue(c, AccessTokenCookie)
	if token == "" {
		return false
	}
	claims, err := h.tokens.ValidateToken(token)
	return err == nil && claims.IsAccess()
}

func (h *LoginHandler) render(c echo.Context, code int, screen *login.Screen) error {
	values := screen.Form.Values()
	return c.Render(code, "login", LoginPage{
		Email:           values.Email,
		Password:        values.Password,
		Role:            values.Role,
		PasswordVisible: screen.Form.PasswordVisible(),
		Roles:           model.Roles(),
		State:           screen.Controller.State(),
	})
}
