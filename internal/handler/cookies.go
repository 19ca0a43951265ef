package handler

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/amanraj069/m-frontend-sub001/internal/auth"
	"github.com/amanraj069/m-frontend-sub001/internal/session"
)

// Cookie names shared with the router's token lookup.
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
	LoginScreenCookie  = "login_screen"
)

// CookieOptions controls the attributes of the cookies the handlers set.
type CookieOptions struct {
	Secure bool
}

func (o CookieOptions) cookie(name, value string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   o.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// setAuthCookies sets access and refresh token cookies
func (o CookieOptions) setAuthCookies(c echo.Context, tokens session.Tokens) {
	c.SetCookie(o.cookie(AccessTokenCookie, tokens.AccessToken, auth.AccessTokenExpiry))
	c.SetCookie(o.cookie(RefreshTokenCookie, tokens.RefreshToken, auth.RefreshTokenExpiry))
}

// clearAuthCookies clears auth cookies
func (o CookieOptions) clearAuthCookies(c echo.Context) {
	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie} {
		expired := o.cookie(name, "", 0)
		expired.MaxAge = -1
		expired.Expires = time.Now().Add(-time.Hour)
		c.SetCookie(expired)
	}
}

func (o CookieOptions) setScreenCookie(c echo.Context, id string, ttl time.Duration) {
	c.SetCookie(o.cookie(LoginScreenCookie, id, ttl))
}

func (o CookieOptions) clearScreenCookie(c echo.Context) {
	expired := o.cookie(LoginScreenCookie, "", 0)
	expired.MaxAge = -1
	c.SetCookie(expired)
}

func cookieValue(c echo.Context, name string) string {
	ck, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return ck.Value
}

// ClaimsFrom returns the claims echo-jwt stored on the context.
func ClaimsFrom(c echo.Context) (*auth.Claims, bool) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, false
	}
	claims, ok := token.Claims.(*auth.Claims)
	return claims, ok
}
