package login

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amanraj069/m-frontend-sub001/internal/model"
	"github.com/amanraj069/m-frontend-sub001/internal/session"
)

// fakeAuth answers with outcome. When release is set, calls block until it is
// closed; started receives one value per call.
type fakeAuth struct {
	outcome   session.Outcome
	release   chan struct{}
	started   chan struct{}
	panicWith any

	calls atomic.Int32
	mu    sync.Mutex
	last  session.Credential
}

func (f *fakeAuth) Login(_ context.Context, cred session.Credential) session.Outcome {
	f.calls.Add(1)
	f.mu.Lock()
	f.last = cred
	f.mu.Unlock()
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	if f.panicWith != nil {
		panic(f.panicWith)
	}
	return f.outcome
}

type recorder struct {
	mu     sync.Mutex
	routes []string
}

func (r *recorder) GoTo(route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
}

func (r *recorder) Routes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.routes...)
}

func filledForm(role string) *Form {
	f := NewForm()
	f.SetField(FieldEmail, "a@b.com")
	f.SetField(FieldPassword, "secret")
	f.SetField(FieldRole, role)
	return f
}

func okOutcome() session.Outcome {
	return session.Succeeded(&session.Session{
		User:   model.User{ID: 1, Email: "a@b.com", Role: model.RoleFreelancer},
		Tokens: session.Tokens{AccessToken: "access", RefreshToken: "refresh"},
	})
}

func TestController_SuccessNavigatesOnce(t *testing.T) {
	auth := &fakeAuth{outcome: okOutcome()}
	nav := &recorder{}
	c := NewController(filledForm("Freelancer"), auth, nav)

	require.NoError(t, c.Submit(context.Background()))

	assert.Equal(t, []string{"/"}, nav.Routes())
	assert.Equal(t, int32(1), auth.calls.Load())
	assert.Equal(t, session.Credential{Email: "a@b.com", Password: "secret", Role: model.RoleFreelancer}, auth.last)

	st := c.State()
	assert.False(t, st.Pending())
	assert.False(t, st.ErrorVisible())
	require.NotNil(t, c.Session())
	assert.Equal(t, "access", c.Session().AccessToken)
}

func TestController_FailureShowsReasonVerbatim(t *testing.T) {
	auth := &fakeAuth{outcome: session.Failed("Invalid credentials")}
	nav := &recorder{}
	c := NewController(filledForm("Freelancer"), auth, nav)

	require.NoError(t, c.Submit(context.Background()))

	st := c.State()
	assert.Equal(t, Failed, st.Phase)
	assert.Equal(t, "Invalid credentials", st.Error)
	assert.True(t, st.CanSubmit())
	assert.False(t, st.Pending())
	assert.Empty(t, nav.Routes())
	assert.Nil(t, c.Session())
}

func TestController_NotSubmittableSkipsAuthenticator(t *testing.T) {
	auth := &fakeAuth{outcome: okOutcome()}
	nav := &recorder{}
	c := NewController(filledForm(""), auth, nav)

	assert.ErrorIs(t, c.Submit(context.Background()), ErrNotSubmittable)
	assert.Equal(t, int32(0), auth.calls.Load())
	assert.Equal(t, State{}, c.State())
	assert.Empty(t, nav.Routes())
}

func TestController_SingleFlight(t *testing.T) {
	auth := &fakeAuth{
		outcome: okOutcome(),
		release: make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	nav := &recorder{}
	c := NewController(filledForm("Employer"), auth, nav)

	first := make(chan error, 1)
	go func() { first <- c.Submit(context.Background()) }()
	<-auth.started

	assert.True(t, c.State().Pending())
	assert.Equal(t, "Logging In...", c.State().SubmitLabel())
	assert.ErrorIs(t, c.Submit(context.Background()), ErrSubmitInFlight)

	close(auth.release)
	require.NoError(t, <-first)

	assert.Equal(t, int32(1), auth.calls.Load())
	assert.Equal(t, []string{"/"}, nav.Routes())
}

func TestController_ResubmitClearsError(t *testing.T) {
	auth := &fakeAuth{outcome: session.Failed("Invalid credentials")}
	c := NewController(filledForm("Admin"), auth, &recorder{})
	require.NoError(t, c.Submit(context.Background()))
	require.True(t, c.State().ErrorVisible())

	auth.release = make(chan struct{})
	auth.started = make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() { done <- c.Submit(context.Background()) }()
	<-auth.started

	st := c.State()
	assert.Equal(t, Pending, st.Phase)
	assert.Empty(t, st.Error)
	assert.False(t, st.ErrorVisible())

	close(auth.release)
	require.NoError(t, <-done)
	assert.Equal(t, "Invalid credentials", c.State().Error)
}

func TestController_Timeout(t *testing.T) {
	auth := &fakeAuth{outcome: okOutcome(), release: make(chan struct{})}
	nav := &recorder{}
	c := NewController(filledForm("Freelancer"), auth, nav, WithTimeout(20*time.Millisecond))

	require.NoError(t, c.Submit(context.Background()))
	assert.Equal(t, State{Phase: Failed, Error: ReasonTimeout}, c.State())

	// the late success is never applied
	close(auth.release)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, Failed, c.State().Phase)
	assert.Empty(t, nav.Routes())
}

func TestController_ContextCancelled(t *testing.T) {
	auth := &fakeAuth{outcome: okOutcome(), release: make(chan struct{}), started: make(chan struct{}, 1)}
	defer close(auth.release)
	c := NewController(filledForm("Freelancer"), auth, &recorder{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Submit(ctx) }()
	<-auth.started
	cancel()

	require.NoError(t, <-done)
	assert.Equal(t, ReasonTimeout, c.State().Error)
}

func TestController_CloseDiscardsLateOutcome(t *testing.T) {
	auth := &fakeAuth{outcome: okOutcome(), release: make(chan struct{}), started: make(chan struct{}, 1)}
	nav := &recorder{}
	c := NewController(filledForm("Freelancer"), auth, nav)

	done := make(chan error, 1)
	go func() { done <- c.Submit(context.Background()) }()
	<-auth.started

	assert.False(t, c.Closed())
	c.Close()
	assert.True(t, c.Closed())
	close(auth.release)
	require.NoError(t, <-done)

	assert.Empty(t, nav.Routes())
	assert.Nil(t, c.Session())
	assert.ErrorIs(t, c.Submit(context.Background()), ErrClosed)
}

func TestController_PanickingAuthenticatorClearsPending(t *testing.T) {
	auth := &fakeAuth{panicWith: "boom"}
	c := NewController(filledForm("Freelancer"), auth, &recorder{})

	require.NoError(t, c.Submit(context.Background()))
	assert.Equal(t, State{Phase: Failed, Error: ReasonUnavailable}, c.State())
}

func TestNavigatorFunc(t *testing.T) {
	var got string
	c := NewController(filledForm("Admin"), &fakeAuth{outcome: okOutcome()}, NavigatorFunc(func(route string) { got = route }))
	require.NoError(t, c.Submit(context.Background()))
	assert.Equal(t, LandingRoute, got)
}
