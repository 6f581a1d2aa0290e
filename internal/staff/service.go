package staff

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/retail-kit/backoffice-console/internal/domain"
	"github.com/retail-kit/backoffice-console/internal/observability"
	"github.com/retail-kit/backoffice-console/internal/rbac"
	"github.com/retail-kit/backoffice-console/internal/session"
	"github.com/retail-kit/backoffice-console/internal/upstream"
	apperrors "github.com/retail-kit/backoffice-console/pkg/util"
)

// StaffAPI is the upstream staff administration surface.
type StaffAPI interface {
	ListStaff(ctx context.Context, token string) ([]domain.StaffAccount, error)
	ListRoles(ctx context.Context, token string) ([]domain.RoleRef, error)
	CreateStaff(ctx context.Context, token string, req upstream.CreateStaffRequest) (*domain.StaffAccount, error)
	AssignRole(ctx context.Context, token, staffID, roleID string) error
	ResetPassword(ctx context.Context, token, staffID, newPassword string) error
	DisableAccount(ctx context.Context, token, staffID string) error
}

// Service manages back-office accounts on behalf of the current session.
// Every mutating call is gated on the admin role before any network traffic,
// validation failures never reach the wire, and the upstream owns the
// resulting account state: the service reloads instead of mutating its list
// optimistically. Failures carry the most specific upstream message
// available and are never retried.
type Service struct {
	sessions *session.Store
	api      StaffAPI
	logger   *zap.Logger
	metrics  *observability.Metrics

	mu       sync.Mutex
	accounts []domain.StaffAccount
	roles    []domain.RoleRef
	loading  bool
}

// ListState is a snapshot of the staff list and its in-flight flag.
type ListState struct {
	Accounts []domain.StaffAccount
	Roles    []domain.RoleRef
	Loading  bool
}

// NewService constructs the staff administration service.
func NewService(sessions *session.Store, api StaffAPI, logger *zap.Logger, metrics *observability.Metrics) *Service {
	return &Service{sessions: sessions, api: api, logger: logger, metrics: metrics}
}

var adminGate = rbac.NewGate("staff-administration", rbac.Requirement{Role: domain.RoleAdmin})

// authorize enforces the admin gate against the live session.
func (s *Service) authorize() (string, error) {
	sess := s.sessions.Session()
	if sess.IsLoading {
		return "", apperrors.NewUnauthorized("session check in progress")
	}
	if !sess.IsAuthenticated {
		return "", apperrors.NewUnauthorized("authentication required")
	}
	if !adminGate.Allowed(sess) {
		return "", apperrors.NewForbidden("admin role required")
	}
	return s.sessions.Credential(), nil
}

// State returns the current list snapshot.
func (s *Service) State() ListState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ListState{
		Accounts: append([]domain.StaffAccount(nil), s.accounts...),
		Roles:    append([]domain.RoleRef(nil), s.roles...),
		Loading:  s.loading,
	}
}

// Refresh reloads accounts and roles from the upstream.
func (s *Service) Refresh(ctx context.Context) error {
	token, err := s.authorize()
	if err != nil {
		return err
	}

	s.setLoading(true)
	defer s.setLoading(false)

	accounts, err := s.api.ListStaff(ctx, token)
	if err != nil {
		s.metrics.RecordAuthEvent("staff.refresh_failed")
		return mapUpstreamError(err)
	}
	roles, err := s.api.ListRoles(ctx, token)
	if err != nil {
		s.metrics.RecordAuthEvent("staff.refresh_failed")
		return mapUpstreamError(err)
	}

	s.mu.Lock()
	s.accounts = accounts
	s.roles = roles
	s.mu.Unlock()
	return nil
}

// CreateStaff creates a new back-office account and refreshes the list.
func (s *Service) CreateStaff(ctx context.Context, name, email, password string) (*domain.StaffAccount, error) {
	if name == "" || email == "" || password == "" {
		return nil, apperrors.NewValidationError("name, email and password are required", nil)
	}
	token, err := s.authorize()
	if err != nil {
		return nil, err
	}

	account, err := s.api.CreateStaff(ctx, token, upstream.CreateStaffRequest{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, mapUpstreamError(err)
	}
	s.logger.Info("staff account created", zap.String("staff_id", account.ID))

	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("staff list refresh failed after create", zap.Error(err))
	}
	return account, nil
}

// AssignRole attaches a role to an account. Idempotent for the caller:
// reassigning an already held role is not an error. The upstream is the
// source of truth for the resulting role set, so the list is reloaded rather
// than mutated.
func (s *Service) AssignRole(ctx context.Context, staffID, roleID string) error {
	if staffID == "" || roleID == "" {
		return apperrors.NewValidationError("staff id and role id are required", nil)
	}
	token, err := s.authorize()
	if err != nil {
		return err
	}

	if err := s.api.AssignRole(ctx, token, staffID, roleID); err != nil {
		var rejection *upstream.RejectionError
		if errors.As(err, &rejection) && rejection.Status == http.StatusConflict {
			// role already assigned
		} else {
			return mapUpstreamError(err)
		}
	}
	s.logger.Info("role assigned", zap.String("staff_id", staffID), zap.String("role_id", roleID))

	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("staff list refresh failed after assignment", zap.Error(err))
	}
	return nil
}

// ResetPassword sets a new password for an account. Upstream error text is
// surfaced verbatim.
func (s *Service) ResetPassword(ctx context.Context, staffID, newPassword string) error {
	if newPassword == "" {
		return apperrors.NewValidationError("new password is required", nil)
	}
	if staffID == "" {
		return apperrors.NewValidationError("staff id is required", nil)
	}
	token, err := s.authorize()
	if err != nil {
		return err
	}

	if err := s.api.ResetPassword(ctx, token, staffID, newPassword); err != nil {
		return mapUpstreamError(err)
	}
	s.logger.Info("staff password reset", zap.String("staff_id", staffID))
	return nil
}

// DisableAccount suspends login for an account. Refuses without an explicit
// confirmation; disabling never deletes the record or its role history.
func (s *Service) DisableAccount(ctx context.Context, staffID string, confirmed bool) error {
	if staffID == "" {
		return apperrors.NewValidationError("staff id is required", nil)
	}
	if !confirmed {
		return apperrors.NewValidationError("disabling an account requires confirmation", nil)
	}
	token, err := s.authorize()
	if err != nil {
		return err
	}

	if err := s.api.DisableAccount(ctx, token, staffID); err != nil {
		return mapUpstreamError(err)
	}
	s.logger.Info("staff account disabled", zap.String("staff_id", staffID))

	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("staff list refresh failed after disable", zap.Error(err))
	}
	return nil
}

func (s *Service) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// mapUpstreamError converts client errors into the operator-facing taxonomy:
// explicit refusals keep the upstream's message, transport failures collapse
// into the unavailable class, everything else is internal.
func mapUpstreamError(err error) error {
	var rejection *upstream.RejectionError
	if errors.As(err, &rejection) {
		return apperrors.NewUpstreamRejected(rejection.Message, rejection.Status)
	}
	var transport *upstream.TransportError
	if errors.As(err, &transport) {
		return apperrors.NewUpstreamUnavailable(transport.Err)
	}
	return apperrors.MapError(err)
}
