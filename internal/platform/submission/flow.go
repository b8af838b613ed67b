package submission

import (
	"context"
	"sync"

	"github.com/onehealth/clinicdesk/internal/platform/auth"
)

// Flow binds a Submitter to the values of one open form. After a
// successful submit the values go back to their initial state and the reset
// hooks run, so address cascades can drop their records.
type Flow[F, P, R any] struct {
	sub     *Submitter[F, P, R]
	initial func() F

	mu     sync.Mutex
	values F
	hooks  []func()
}

func NewFlow[F, P, R any](sub *Submitter[F, P, R], initial func() F) *Flow[F, P, R] {
	return &Flow[F, P, R]{sub: sub, initial: initial, values: initial()}
}

// Values exposes the form for binding. The pointer stays valid across
// resets. Do not edit through it while Submit is running.
func (f *Flow[F, P, R]) Values() *F {
	return &f.values
}

// OnReset adds a hook run after the values are restored.
func (f *Flow[F, P, R]) OnReset(fn func()) {
	f.mu.Lock()
	f.hooks = append(f.hooks, fn)
	f.mu.Unlock()
}

func (f *Flow[F, P, R]) Submitter() *Submitter[F, P, R] {
	return f.sub
}

// Submit sends the current values. A failed submit leaves them untouched.
func (f *Flow[F, P, R]) Submit(ctx context.Context, sess auth.Session, user auth.User) Outcome[R] {
	f.mu.Lock()
	form := f.values
	f.mu.Unlock()

	out := f.sub.Submit(ctx, sess, user, form)
	if out.Success {
		f.Clear()
	}
	return out
}

// Clear restores the initial values and runs the reset hooks.
func (f *Flow[F, P, R]) Clear() {
	f.mu.Lock()
	f.values = f.initial()
	hooks := append([]func(){}, f.hooks...)
	f.mu.Unlock()

	for _, h := range hooks {
		h()
	}
}
