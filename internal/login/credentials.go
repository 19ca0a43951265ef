package login

import (
	"sync/atomic"

	"github.com/amanraj069/m-frontend-sub001/internal/model"
	"github.com/amanraj069/m-frontend-sub001/internal/session"
)

// Field names a credential input.
type Field string

const (
	FieldEmail    Field = "email"
	FieldPassword Field = "password"
	FieldRole     Field = "role"
)

// Fields lists the credential inputs in display order.
func Fields() []Field {
	return []Field{FieldEmail, FieldPassword, FieldRole}
}

// Credentials is an immutable snapshot of the login form inputs. Role is the raw
// token from the role choice and is empty while unselected.
type Credentials struct {
	Email    string
	Password string
	Role     string
}

// With returns a copy with only field replaced. Unknown fields leave the
// snapshot unchanged.
func (c Credentials) With(field Field, value string) Credentials {
	switch field {
	case FieldEmail:
		c.Email = value
	case FieldPassword:
		c.Password = value
	case FieldRole:
		c.Role = value
	}
	return c
}

// Get returns the value of field.
func (c Credentials) Get(field Field) string {
	switch field {
	case FieldEmail:
		return c.Email
	case FieldPassword:
		return c.Password
	case FieldRole:
		return c.Role
	}
	return ""
}

// Submittable reports whether all three inputs are filled in.
func (c Credentials) Submittable() bool {
	return c.Email != "" && c.Password != "" && c.Role != ""
}

func (c Credentials) credential() session.Credential {
	return session.Credential{
		Email:    c.Email,
		Password: c.Password,
		Role:     model.Role(c.Role),
	}
}

// Form holds the current credential snapshot and the password visibility flag.
// Readers always see a complete snapshot.
type Form struct {
	values          atomic.Pointer[Credentials]
	passwordVisible atomic.Bool
}

// NewForm returns an empty form with the password masked.
func NewForm() *Form {
	f := &Form{}
	f.values.Store(&Credentials{})
	return f
}

// SetField replaces one input and returns the new snapshot.
func (f *Form) SetField(field Field, value string) Credentials {
	for {
		cur := f.values.Load()
		next := cur.With(field, value)
		if f.values.CompareAndSwap(cur, &next) {
			return next
		}
	}
}

// Values returns the current snapshot.
func (f *Form) Values() Credentials {
	return *f.values.Load()
}

// IsSubmittable reports whether the current snapshot can be submitted.
func (f *Form) IsSubmittable() bool {
	return f.Values().Submittable()
}

// TogglePasswordVisibility flips the masking flag and returns the new value.
func (f *Form) TogglePasswordVisibility() bool {
	for {
		cur := f.passwordVisible.Load()
		if f.passwordVisible.CompareAndSwap(cur, !cur) {
			return !cur
		}
	}
}

// PasswordVisible reports whether the password is shown in plain text.
func (f *Form) PasswordVisible() bool {
	return f.passwordVisible.Load()
}
