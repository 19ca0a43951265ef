package login

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/amanraj069/m-frontend-sub001/internal/session"
)

// LandingRoute is where a successful login navigates to.
const LandingRoute = "/"

const (
	// ReasonTimeout is shown when the authenticator does not answer in time.
	ReasonTimeout = "Login timed out. Please try again."
	// ReasonUnavailable is shown when the authenticator crashed mid-call.
	ReasonUnavailable = "Login is unavailable right now. Please try again."
)

var (
	// ErrNotSubmittable is returned when a field is still empty.
	ErrNotSubmittable = errors.New("login: form is not submittable")
	// ErrSubmitInFlight is returned when an attempt is already pending.
	ErrSubmitInFlight = errors.New("login: submission already in flight")
	// ErrClosed is returned after the screen was torn down.
	ErrClosed = errors.New("login: screen closed")
)

// Authenticator verifies a credential and returns exactly one outcome.
type Authenticator interface {
	Login(ctx context.Context, cred session.Credential) session.Outcome
}

// Navigator moves the user to another route.
type Navigator interface {
	GoTo(route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route string)

func (f NavigatorFunc) GoTo(route string) { f(route) }

// Option configures a Controller.
type Option func(*Controller)

// WithTimeout bounds each authenticator call. Zero or negative waits forever.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

// WithLogger sets the controller logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// Controller runs login attempts for one form. At most one attempt is in
// flight at a time.
type Controller struct {
	form    *Form
	auth    Authenticator
	nav     Navigator
	timeout time.Duration
	log     *zap.Logger

	mu      sync.Mutex
	state   State
	session *session.Session
	closed  bool
}

// NewController wires a form to its authenticator and navigator.
func NewController(form *Form, auth Authenticator, nav Navigator, opts ...Option) *Controller {
	c := &Controller{
		form: form,
		auth: auth,
		nav:  nav,
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Form returns the form the controller submits.
func (c *Controller) Form() *Form {
	return c.form
}

// State returns the current submission state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Session returns the session from the last successful attempt, if any.
func (c *Controller) Session() *session.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Submit runs one login attempt with the current form values and blocks until
// it resolves. Authentication failures are recorded in State, not returned.
func (c *Controller) Submit(ctx context.Context) error {
	cred := c.form.Values()
	if !cred.Submittable() {
		return ErrNotSubmittable
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	next, _, ok := Transition(c.state, Event{Kind: EventSubmit})
	if !ok {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	c.state = next
	c.mu.Unlock()

	defer c.settle()

	c.resolve(c.await(ctx, cred))
	return nil
}

// await calls the authenticator once and waits for its outcome, the timeout
// or ctx, whichever comes first.
func (c *Controller) await(ctx context.Context, cred Credentials) session.Outcome {
	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	// buffered so an abandoned call can still deliver and exit
	done := make(chan session.Outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				c.log.Error("authenticator panicked", zap.Any("panic", r))
				done <- session.Failed(ReasonUnavailable)
			}
		}()
		done <- c.auth.Login(callCtx, cred.credential())
	}()

	select {
	case out := <-done:
		return out
	case <-callCtx.Done():
		c.log.Warn("login attempt abandoned", zap.Error(callCtx.Err()))
		return session.Failed(ReasonTimeout)
	}
}

func (c *Controller) resolve(out session.Outcome) {
	ev := Event{Kind: EventSucceeded}
	if !out.Success {
		ev = Event{Kind: EventFailed, Reason: out.Error}
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.log.Debug("discarding login outcome for closed screen", zap.Bool("success", out.Success))
		return
	}
	next, navigate, ok := Transition(c.state, ev)
	if !ok {
		c.mu.Unlock()
		return
	}
	c.state = next
	if navigate {
		c.session = out.Session
	}
	c.mu.Unlock()

	if navigate {
		c.nav.GoTo(LandingRoute)
	}
}

// settle leaves Pending if the attempt exited without resolving.
func (c *Controller) settle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed && c.state.Phase == Pending {
		c.state = State{Phase: Failed, Error: ReasonUnavailable}
	}
}

// Closed reports whether Close was called.
func (c *Controller) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Close tears the controller down. Outcomes arriving afterwards are dropped.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}
