// Package submission is the one registration state machine behind every
// create form. An Entity supplies the endpoint, the messages and the
// payload mapping; the Submitter runs idle → loading → success|error and
// turns every failure into a single message for the operator.
package submission

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/onehealth/clinicdesk/internal/platform/apiclient"
	"github.com/onehealth/clinicdesk/internal/platform/auth"
	"github.com/onehealth/clinicdesk/internal/platform/validation"
)

// AuthFailedMessage replaces any message when the API answers 401.
const AuthFailedMessage = "Authentication failed. Please login again."

type Status int

const (
	Idle Status = iota
	Loading
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Succeeded:
		return "success"
	case Failed:
		return "error"
	default:
		return "idle"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Outcome is what a submit returns to the caller. Message is always set.
type Outcome[R any] struct {
	Success bool   `json:"success"`
	Data    R      `json:"data,omitempty"`
	Message string `json:"message"`
	// Err is the underlying failure, nil on success.
	Err error `json:"-"`
}

// Poster performs the single create call.
type Poster interface {
	Post(ctx context.Context, token, path string, body, out any) error
}

// Rejection is an error whose text is shown to the operator as is. Guards
// and mappings return it for problems they detect before the network call.
type Rejection struct {
	Message string
}

func (r *Rejection) Error() string { return r.Message }

func Reject(msg string) error { return &Rejection{Message: msg} }

// Entity describes one registrable thing.
type Entity[F, P any] struct {
	Name string
	// Path is the create endpoint.
	Path string

	SuccessMessage string
	// FailureMessage is used when nothing more specific is known.
	FailureMessage string
	// UnsuccessfulMessage is used when the API answers success=false.
	UnsuccessfulMessage string
	// LoginMessage is returned when there is no signed-in session.
	LoginMessage string

	// Guard runs after validation and before Map. Optional.
	Guard func(user auth.User, form F) error
	// Map builds the request payload. It runs exactly once per submit.
	Map func(user auth.User, form F, now time.Time) (P, error)
}

// Submitter runs submissions for one Entity. Nothing stops two overlapping
// submits; each makes its own call and the last to finish sets the state.
type Submitter[F, P, R any] struct {
	entity Entity[F, P]
	api    Poster
	logger zerolog.Logger
	now    func() time.Time

	mu       sync.Mutex
	status   Status
	message  string
	observer func(Status, string)
}

func New[F, P, R any](entity Entity[F, P], api Poster, logger zerolog.Logger) *Submitter[F, P, R] {
	return &Submitter[F, P, R]{
		entity: entity,
		api:    api,
		logger: logger.With().Str("entity", entity.Name).Logger(),
		now:    time.Now,
	}
}

// OnChange registers fn to be called after every state transition.
func (s *Submitter[F, P, R]) OnChange(fn func(Status, string)) {
	s.mu.Lock()
	s.observer = fn
	s.mu.Unlock()
}

// Submit validates, maps and posts form. It never returns an error; the
// outcome and the submitter state carry the message.
func (s *Submitter[F, P, R]) Submit(ctx context.Context, sess auth.Session, user auth.User, form F) Outcome[R] {
	var zero R

	if !sess.Authenticated() {
		return s.fail(zero, s.entity.LoginMessage, auth.ErrNotAuthenticated)
	}
	s.set(Loading, "")

	if err := validation.Struct(form); err != nil {
		return s.fail(zero, s.failureMessage(err), err)
	}
	if s.entity.Guard != nil {
		if err := s.entity.Guard(user, form); err != nil {
			return s.fail(zero, s.failureMessage(err), err)
		}
	}
	payload, err := s.entity.Map(user, form, s.now())
	if err != nil {
		return s.fail(zero, s.failureMessage(err), err)
	}

	var out R
	if err := s.api.Post(ctx, sess.AccessToken, s.entity.Path, payload, &out); err != nil {
		return s.fail(zero, s.failureMessage(err), err)
	}

	s.set(Succeeded, s.entity.SuccessMessage)
	s.logger.Info().Msg("registered")
	return Outcome[R]{Success: true, Data: out, Message: s.entity.SuccessMessage}
}

// Reset returns to idle and clears the message.
func (s *Submitter[F, P, R]) Reset() {
	s.set(Idle, "")
}

func (s *Submitter[F, P, R]) State() (Status, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.message
}

func (s *Submitter[F, P, R]) Loading() bool   { st, _ := s.State(); return st == Loading }
func (s *Submitter[F, P, R]) Succeeded() bool { st, _ := s.State(); return st == Succeeded }
func (s *Submitter[F, P, R]) Failed() bool    { st, _ := s.State(); return st == Failed }

func (s *Submitter[F, P, R]) fail(zero R, msg string, err error) Outcome[R] {
	s.set(Failed, msg)
	s.logger.Warn().Err(err).Str("message", msg).Msg("registration failed")
	return Outcome[R]{Success: false, Data: zero, Message: msg, Err: err}
}

func (s *Submitter[F, P, R]) set(st Status, msg string) {
	s.mu.Lock()
	s.status, s.message = st, msg
	fn := s.observer
	s.mu.Unlock()
	if fn != nil {
		fn(st, msg)
	}
}

// failureMessage picks, in order: the fixed 401 text, the server's message,
// a local rejection or validation message, the success=false text, and the
// generic fallback.
func (s *Submitter[F, P, R]) failureMessage(err error) string {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		return AuthFailedMessage
	}
	if msg := apiclient.Message(err); msg != "" {
		return msg
	}
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej.Message
	}
	var verr *validation.Error
	if errors.As(err, &verr) {
		return verr.Message
	}
	if errors.Is(err, apiclient.ErrUnsuccessful) && s.entity.UnsuccessfulMessage != "" {
		return s.entity.UnsuccessfulMessage
	}
	return s.entity.FailureMessage
}
