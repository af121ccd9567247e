package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/campus-helpdesk/grievance-service/internal/domain"
	"github.com/campus-helpdesk/grievance-service/internal/repository"
	apperrors "github.com/campus-helpdesk/grievance-service/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated staff member.
type Principal struct {
	Role      domain.StaffRole
	Bearer    *domain.OfficeBearer
	Authority *domain.ApprovingAuthority
}

// Email returns the authenticated account's email.
func (p *Principal) Email() string {
	if p.Bearer != nil {
		return p.Bearer.Email
	}
	if p.Authority != nil {
		return p.Authority.Email
	}
	return ""
}

// DepartmentID returns the bearer's department, or zero for authorities
// and admins without one.
func (p *Principal) DepartmentID() int64 {
	if p.Bearer != nil {
		return p.Bearer.DepartmentID
	}
	return 0
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens      *TokenManager
	bearers     repository.OfficeBearerRepository
	authorities repository.AuthorityRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, bearers repository.OfficeBearerRepository, authorities repository.AuthorityRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, bearers: bearers, authorities: authorities}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	principal := &Principal{Role: claims.Role}

	switch claims.Role {
	case domain.StaffRoleOfficeBearer, domain.StaffRoleAdmin:
		bearer, err := m.bearers.GetByID(c.Context(), claims.StaffID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.NewUnauthorized("account not found")
			}
			return apperrors.MapError(err)
		}
		principal.Bearer = bearer
	case domain.StaffRoleAuthority:
		authority, err := m.authorities.GetByID(c.Context(), claims.StaffID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.NewUnauthorized("account not found")
			}
			return apperrors.MapError(err)
		}
		principal.Authority = authority
	default:
		return apperrors.NewUnauthorized("unknown role")
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
