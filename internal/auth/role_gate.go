package auth

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/commerce-management/internal"
	"github.com/frahmantamala/commerce-management/internal/transport"
)

// RoleGate produces middleware that checks the resolved principal's role
// against an explicitly enumerated required set. It must run after
// AuthMiddleware; a missing principal is an authentication failure, not a
// role failure.
type RoleGate struct {
	*transport.BaseHandler
	logger *slog.Logger
}

func NewRoleGate(logger *slog.Logger) *RoleGate {
	return &RoleGate{
		BaseHandler: transport.NewBaseHandler(logger),
		logger:      logger,
	}
}

func (g *RoleGate) Require(roles ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := UserFromContext(r.Context())
			if !ok || principal == nil {
				g.HandleServiceError(w, internal.ErrAuthRequired)
				return
			}

			if !principal.HasRole(roles...) {
				g.logger.Warn("access denied: insufficient role",
					"user_id", principal.ID,
					"role", principal.Role,
					"required_roles", roles)
				g.HandleServiceError(w, internal.ErrForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (g *RoleGate) RequireAdmin() func(http.Handler) http.Handler {
	return g.Require(RoleAdmin)
}

func (g *RoleGate) RequireManagerOrAdmin() func(http.Handler) http.Handler {
	return g.Require(RoleManager, RoleAdmin)
}
