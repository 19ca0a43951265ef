package login

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Screen is one mounted login form with its controller. It is the controller's
// navigator and records where a resolved attempt wants to go.
type Screen struct {
	ID         string
	Form       *Form
	Controller *Controller

	mu          sync.Mutex
	destination string

	// guarded by Registry.mu
	expires time.Time
}

// GoTo records route as the screen's destination.
func (s *Screen) GoTo(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destination = route
}

// Destination returns the recorded route, if navigation happened.
func (s *Screen) Destination() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.destination, s.destination != ""
}

// Registry keeps the mounted login screens. Screens idle for longer than the
// TTL are unmounted on the next registry access.
type Registry struct {
	auth Authenticator
	ttl  time.Duration
	opts []Option
	now  func() time.Time

	mu      sync.Mutex
	screens map[string]*Screen
}

// NewRegistry creates a registry whose screens authenticate through auth.
func NewRegistry(auth Authenticator, ttl time.Duration, opts ...Option) *Registry {
	return &Registry{
		auth:    auth,
		ttl:     ttl,
		opts:    opts,
		now:     time.Now,
		screens: make(map[string]*Screen),
	}
}

// Mount creates a fresh screen with an empty form in the Idle phase.
func (r *Registry) Mount() *Screen {
	s := &Screen{
		ID:   uuid.NewString(),
		Form: NewForm(),
	}
	s.Controller = NewController(s.Form, r.auth, s, r.opts...)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked()
	s.expires = r.now().Add(r.ttl)
	r.screens[s.ID] = s
	return s
}

// Lookup returns a live screen and extends its lifetime.
func (r *Registry) Lookup(id string) (*Screen, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked()
	s, ok := r.screens[id]
	if !ok {
		return nil, false
	}
	s.expires = r.now().Add(r.ttl)
	return s, true
}

// Unmount closes the screen's controller and forgets it. Unknown ids are ignored.
func (r *Registry) Unmount(id string) {
	r.mu.Lock()
	s, ok := r.screens[id]
	delete(r.screens, id)
	r.mu.Unlock()
	if ok {
		s.Controller.Close()
	}
}

// Len returns the number of mounted screens.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.screens)
}

func (r *Registry) sweepLocked() {
	now := r.now()
	for id, s := range r.screens {
		if now.After(s.expires) {
			s.Controller.Close()
			delete(r.screens, id)
		}
	}
}
