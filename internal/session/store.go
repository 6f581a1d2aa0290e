package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/retail-kit/backoffice-console/internal/domain"
	"github.com/retail-kit/backoffice-console/internal/observability"
	"github.com/retail-kit/backoffice-console/internal/storage"
	"github.com/retail-kit/backoffice-console/internal/upstream"
)

// genericLoginError is shown when the upstream gives no usable message.
const genericLoginError = "Login failed"

// AuthAPI is the credential exchange collaborator.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*upstream.LoginResult, error)
	Verify(ctx context.Context, token string) (upstream.VerifyOutcome, error)
	Logout(ctx context.Context, token string) error
}

// Store is the single source of truth for the console's Session. It is an
// explicitly constructed service: tests instantiate isolated stores, the
// console wires exactly one.
//
// Every mutation funnels through apply, which merges onto the current
// session, compares field by field (permission sets order-insensitively) and
// only replaces state and notifies subscribers on an effective change.
// Mutating operations carry a generation; a call that settles after a newer
// operation started discards its write instead of clobbering newer state.
type Store struct {
	mu         sync.Mutex
	session    domain.Session
	credential string
	generation uint64

	api         AuthAPI
	storage     storage.Store
	broadcaster *Broadcaster
	logger      *zap.Logger
	metrics     *observability.Metrics
	now         func() time.Time
}

// NewStore builds a session store. The session starts empty and loading
// until the first CheckAuth settles.
func NewStore(api AuthAPI, store storage.Store, logger *zap.Logger, metrics *observability.Metrics) *Store {
	return &Store{
		session:     domain.Session{IsLoading: true},
		api:         api,
		storage:     store,
		broadcaster: NewBroadcaster(),
		logger:      logger,
		metrics:     metrics,
		now:         time.Now,
	}
}

// Session returns a defensive snapshot of the current state.
func (s *Store) Session() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Clone()
}

// Subscribe registers a listener for effective session changes and returns
// its unsubscribe function.
func (s *Store) Subscribe(fn Listener) func() {
	return s.broadcaster.Subscribe(fn)
}

// HasPermission reports whether the current session holds the capability.
func (s *Store) HasPermission(key string) bool {
	return s.Session().HasPermission(key)
}

// HasRole reports whether the current session's role equals role.
func (s *Store) HasRole(role domain.Role) bool {
	return s.Session().HasRole(role)
}

// Login exchanges credentials with the upstream. Returns true on acceptance.
// Failures of any kind are recovered into the session's Error field; Login
// never surfaces transport errors to the caller. Concurrent logins are not
// deduplicated; the operation that settles last under the newest generation
// determines final state.
func (s *Store) Login(ctx context.Context, email, password string) bool {
	gen := s.nextGeneration()
	s.apply(gen, func(sess *domain.Session, _ *string) {
		sess.IsLoading = true
		sess.Error = ""
	})

	result, err := s.api.Login(ctx, email, password)
	if err != nil {
		message := genericLoginError
		var rejection *upstream.RejectionError
		if errors.As(err, &rejection) && rejection.Message != "" {
			message = rejection.Message
		}
		s.metrics.RecordAuthEvent("login.rejected")
		s.logger.Info("login rejected", zap.String("email", email), zap.Error(err))

		s.apply(gen, func(sess *domain.Session, cred *string) {
			*cred = ""
			sess.User = nil
			sess.IsAuthenticated = false
			sess.IsLoading = false
			sess.Error = message
		})
		return false
	}

	user := result.User
	applied := s.apply(gen, func(sess *domain.Session, cred *string) {
		*cred = result.Token
		profile := user
		sess.User = &profile
		sess.IsAuthenticated = true
		sess.IsLoading = false
		sess.Error = ""
	})
	if !applied {
		// superseded mid-flight (e.g. logout); do not persist the stale grant
		return false
	}

	if err := s.storage.Save(ctx, storage.Record{Token: result.Token, Profile: user}); err != nil {
		s.logger.Warn("failed to persist session", zap.Error(err))
	}
	s.metrics.RecordAuthEvent("login.success")
	s.logger.Info("login accepted", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return true
}

// Logout clears durable storage and resets the session. The local reset
// always succeeds; the server-side revoke is best effort and cannot leave
// local state inconsistent.
func (s *Store) Logout(ctx context.Context) {
	gen := s.nextGeneration()

	s.mu.Lock()
	token := s.credential
	s.mu.Unlock()

	if err := s.storage.Clear(ctx); err != nil {
		s.logger.Warn("failed to clear persisted session", zap.Error(err))
	}
	s.apply(gen, func(sess *domain.Session, cred *string) {
		*cred = ""
		sess.User = nil
		sess.IsAuthenticated = false
		sess.IsLoading = false
		sess.Error = ""
	})
	s.metrics.RecordAuthEvent("logout")

	if token != "" {
		if err := s.api.Logout(ctx, token); err != nil {
			s.logger.Debug("server-side revoke failed", zap.Error(err))
		}
	}
}

// CheckAuth reconciles the session against durable storage and the upstream
// verify endpoint. With no stored credential it settles unauthenticated.
// With one, the session hydrates optimistically and the credential is
// verified; an explicit upstream refusal is the one path that silently
// downgrades the session, clearing storage exactly once. Repeated calls with
// no intervening login/logout are idempotent and notify nobody.
func (s *Store) CheckAuth(ctx context.Context) bool {
	gen := s.nextGeneration()

	rec, err := s.storage.Load(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("failed to read persisted session", zap.Error(err))
		}
		s.apply(gen, func(sess *domain.Session, cred *string) {
			*cred = ""
			sess.User = nil
			sess.IsAuthenticated = false
			sess.IsLoading = false
			sess.Error = ""
		})
		return false
	}

	// Optimistic hydrate. IsLoading is left as-is: the initial check keeps
	// its loading state until verification settles, and a re-check of an
	// already settled session stays a no-op for subscribers.
	s.apply(gen, func(sess *domain.Session, cred *string) {
		*cred = rec.Token
		profile := rec.Profile
		sess.User = &profile
		sess.IsAuthenticated = true
		sess.Error = ""
	})

	outcome := upstream.VerifyIndeterminate
	if exp, ok := tokenExpiry(rec.Token); ok && s.now().After(exp) {
		// locally expired; skip the doomed round trip
		outcome = upstream.VerifyInvalid
	} else {
		var verifyErr error
		outcome, verifyErr = s.api.Verify(ctx, rec.Token)
		if outcome == upstream.VerifyIndeterminate {
			s.logger.Warn("session verification indeterminate", zap.Error(verifyErr))
		}
	}

	switch outcome {
	case upstream.VerifyValid:
		s.apply(gen, func(sess *domain.Session, _ *string) {
			sess.IsLoading = false
		})
		return s.Session().IsAuthenticated

	case upstream.VerifyInvalid:
		// Silent downgrade: the operator is routed to login, not shown an
		// error. Storage is cleared before the state flips so a crash in
		// between cannot resurrect the stale credential.
		if err := s.storage.Clear(ctx); err != nil {
			s.logger.Warn("failed to clear stale session", zap.Error(err))
		}
		s.metrics.RecordAuthEvent("session.expired")
		s.logger.Info("stored session invalidated", zap.String("user_id", rec.Profile.ID))
		s.apply(gen, func(sess *domain.Session, cred *string) {
			*cred = ""
			sess.User = nil
			sess.IsAuthenticated = false
			sess.IsLoading = false
			sess.Error = ""
		})
		return false

	default:
		// No trustworthy answer: keep the hydrated session and the stored
		// credential, surface a recoverable error, stop loading.
		s.apply(gen, func(sess *domain.Session, _ *string) {
			sess.IsLoading = false
			sess.Error = "Could not reach the server to verify your session"
		})
		return s.Session().IsAuthenticated
	}
}

// Credential exposes the opaque token for collaborator calls made on behalf
// of the current session. Empty while unauthenticated.
func (s *Store) Credential() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credential
}

func (s *Store) nextGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

// apply runs the update path: merge, compare, replace, notify. It returns
// false without side effects when gen has been superseded by a newer
// operation.
func (s *Store) apply(gen uint64, mutate func(sess *domain.Session, cred *string)) bool {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return false
	}

	next := s.session.Clone()
	cred := s.credential
	mutate(&next, &cred)

	s.credential = cred
	changed := !sessionsEqual(s.session, next)
	if changed {
		s.session = next
	}
	snapshot := s.session.Clone()
	s.mu.Unlock()

	if changed {
		s.broadcaster.Publish(snapshot)
	}
	return true
}
