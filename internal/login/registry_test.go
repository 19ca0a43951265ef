package login

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_MountLookupUnmount(t *testing.T) {
	r := NewRegistry(&fakeAuth{outcome: okOutcome()}, time.Minute)

	a := r.Mount()
	b := r.Mount()
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, r.Len())

	got, ok := r.Lookup(a.ID)
	require.True(t, ok)
	assert.Same(t, a, got)

	a.Form.SetField(FieldEmail, "a@b.com")
	assert.Empty(t, b.Form.Values().Email)

	r.Unmount(a.ID)
	_, ok = r.Lookup(a.ID)
	assert.False(t, ok)
	assert.ErrorIs(t, a.Controller.Submit(context.Background()), ErrNotSubmittable)

	r.Unmount("missing")
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_ScreenRecordsNavigation(t *testing.T) {
	r := NewRegistry(&fakeAuth{outcome: okOutcome()}, time.Minute)
	s := r.Mount()
	_, moved := s.Destination()
	assert.False(t, moved)

	s.Form.SetField(FieldEmail, "a@b.com")
	s.Form.SetField(FieldPassword, "secret")
	s.Form.SetField(FieldRole, "Freelancer")
	require.NoError(t, s.Controller.Submit(context.Background()))

	route, moved := s.Destination()
	assert.True(t, moved)
	assert.Equal(t, "/", route)
}

func TestRegistry_Expiry(t *testing.T) {
	now := time.Now()
	r := NewRegistry(&fakeAuth{outcome: okOutcome()}, time.Minute)
	r.now = func() time.Time { return now }

	old := r.Mount()
	old.Form.SetField(FieldEmail, "a@b.com")
	old.Form.SetField(FieldPassword, "secret")
	old.Form.SetField(FieldRole, "Freelancer")

	now = now.Add(30 * time.Second)
	_, ok := r.Lookup(old.ID)
	require.True(t, ok)

	// lookup slid the expiry forward
	now = now.Add(45 * time.Second)
	_, ok = r.Lookup(old.ID)
	require.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = r.Lookup(old.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
	assert.ErrorIs(t, old.Controller.Submit(context.Background()), ErrClosed)
}
