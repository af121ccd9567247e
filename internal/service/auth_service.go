package service

import (
	"context"
	"errors"
	"time"

	"github.com/campus-helpdesk/grievance-service/internal/auth"
	"github.com/campus-helpdesk/grievance-service/internal/config"
	"github.com/campus-helpdesk/grievance-service/internal/domain"
	"github.com/campus-helpdesk/grievance-service/internal/repository"
	apperrors "github.com/campus-helpdesk/grievance-service/pkg/util/errorutil"
)

// Session is an issued staff login.
type Session struct {
	Token        string
	ExpiresAt    time.Time
	Name         string
	Email        string
	Role         domain.StaffRole
	DepartmentID int64
}

// AuthService coordinates staff login. Office bearers and admins live in one
// table, approving authorities in another; login checks bearers first.
type AuthService struct {
	bearers     repository.OfficeBearerRepository
	authorities repository.AuthorityRepository
	tokenMgr    *auth.TokenManager
}

// AuthDependencies encapsulates repo requirements for the auth service.
type AuthDependencies struct {
	BearerRepo    repository.OfficeBearerRepository
	AuthorityRepo repository.AuthorityRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		bearers:     deps.BearerRepo,
		authorities: deps.AuthorityRepo,
		tokenMgr:    auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
	}
}

// TokenManager exposes the manager for the HTTP auth middleware.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Login authenticates a staff member by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	bearer, err := s.bearers.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if err := auth.ComparePassword(bearer.PasswordHash, password); err != nil {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		token, expiresAt, err := s.tokenMgr.GenerateToken(bearer.ID, bearer.Email, bearer.Role, bearer.DepartmentID)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		return &Session{
			Token:        token,
			ExpiresAt:    expiresAt,
			Name:         bearer.Name,
			Email:        bearer.Email,
			Role:         bearer.Role,
			DepartmentID: bearer.DepartmentID,
		}, nil
	case errors.Is(err, repository.ErrNotFound):
		// fall through to authorities
	default:
		return nil, apperrors.MapError(err)
	}

	authority, err := s.authorities.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(authority.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	token, expiresAt, err := s.tokenMgr.GenerateToken(authority.ID, authority.Email, domain.StaffRoleAuthority, 0)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &Session{
		Token:     token,
		ExpiresAt: expiresAt,
		Name:      authority.Name,
		Email:     authority.Email,
		Role:      domain.StaffRoleAuthority,
	}, nil
}
