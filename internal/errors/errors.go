package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrRoleMismatch is returned when the selected role is not the account's role.
	ErrRoleMismatch = errors.New("role does not match account")
	// ErrAccountInactive is returned when the account has been deactivated.
	ErrAccountInactive = errors.New("account is not active")
	// ErrUserAlreadyExists is returned when registering an email that is taken.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidRefreshToken is returned when refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrInvalidRole is returned when a role token is not one of the marketplace roles.
	ErrInvalidRole = errors.New("invalid role")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	msg := UserMessage(err)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, msg, "INVALID_CREDENTIALS")
	case errors.Is(err, ErrRoleMismatch):
		return NewHTTPError(http.StatusUnauthorized, msg, "ROLE_MISMATCH")
	case errors.Is(err, ErrAccountInactive):
		return NewHTTPError(http.StatusForbidden, msg, "ACCOUNT_INACTIVE")
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusConflict, msg, "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusUnauthorized, msg, "INVALID_REFRESH_TOKEN")
	case errors.Is(err, ErrInvalidRole):
		return NewHTTPError(http.StatusBadRequest, msg, "INVALID_ROLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, msg, "INTERNAL_ERROR")
	}
}

// UserMessage returns the text shown to a person for err.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, ErrRoleMismatch):
		return "This account is not registered for the selected role"
	case errors.Is(err, ErrAccountInactive):
		return "This account has been deactivated"
	case errors.Is(err, ErrUserAlreadyExists):
		return "An account with this email already exists"
	case errors.Is(err, ErrInvalidRefreshToken):
		return "Your session has expired, please log in again"
	case errors.Is(err, ErrInvalidRole):
		return "Please choose Freelancer, Employer or Admin"
	default:
		return "Something went wrong, please try again"
	}
}
