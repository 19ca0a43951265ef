// Package session provides the login/logout capability handed to the login screen
// and any other consumer that needs to start or end a session.
package session

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	apperrors "github.com/amanraj069/m-frontend-sub001/internal/errors"
	"github.com/amanraj069/m-frontend-sub001/internal/model"
	"github.com/amanraj069/m-frontend-sub001/internal/service"
)

// Credential is the (email, password, role) triple submitted for authentication.
type Credential struct {
	Email    string
	Password string
	Role     model.Role
}

// Tokens is the token pair issued for a session.
type Tokens struct {
	AccessToken  string
	RefreshToken string
}

// Session is an authenticated member together with its tokens.
type Session struct {
	User model.User
	Tokens
}

// Outcome is the single result of a login attempt: either a session or a reason
// fit to show the person who typed the credential.
type Outcome struct {
	Success bool
	Session *Session
	Error   string
}

// Succeeded builds a successful outcome.
func Succeeded(s *Session) Outcome {
	return Outcome{Success: true, Session: s}
}

// Failed builds a failed outcome carrying reason verbatim.
func Failed(reason string) Outcome {
	return Outcome{Error: reason}
}

// Capability starts and ends sessions.
type Capability interface {
	Login(ctx context.Context, cred Credential) Outcome
	Logout(ctx context.Context, tokens Tokens) error
}

type capability struct {
	auth service.AuthService
	log  *zap.Logger
}

// New adapts an AuthService to a Capability.
func New(auth service.AuthService, log *zap.Logger) Capability {
	if log == nil {
		log = zap.NewNop()
	}
	return &capability{auth: auth, log: log}
}

// Login never returns a Go error; every failure becomes a user-facing reason.
func (c *capability) Login(ctx context.Context, cred Credential) Outcome {
	if !cred.Role.Valid() {
		return Failed(apperrors.UserMessage(apperrors.ErrInvalidRole))
	}

	res, err := c.auth.Login(ctx, cred.Email, cred.Password, cred.Role)
	if err != nil {
		reason := apperrors.UserMessage(err)
		if apperrors.MapErrorToHTTP(err).StatusCode >= http.StatusInternalServerError {
			c.log.Error("login failed", zap.String("role", string(cred.Role)), zap.Error(err))
		} else {
			c.log.Debug("login rejected", zap.String("role", string(cred.Role)), zap.String("reason", reason))
		}
		return Failed(reason)
	}

	return Succeeded(&Session{
		User: *res.User,
		Tokens: Tokens{
			AccessToken:  res.AccessToken,
			RefreshToken: res.RefreshToken,
		},
	})
}

func (c *capability) Logout(ctx context.Context, tokens Tokens) error {
	return c.auth.Logout(ctx, tokens.RefreshToken, tokens.AccessToken)
}
