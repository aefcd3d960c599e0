package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/peoplecore/hrms-backend-go/internal/domain/user"
	"github.com/peoplecore/hrms-backend-go/internal/handler/http/response"
)

// PermissionChecker guards routes with repo-backed (role, module, action)
// grants. Admin bypasses the lookup entirely.
type PermissionChecker struct {
	permissions user.RolePermissionRepository
}

func NewPermissionChecker(permissions user.RolePermissionRepository) *PermissionChecker {
	return &PermissionChecker{permissions: permissions}
}

// Require returns middleware that rejects the request unless the caller's
// role is granted the module/action pair.
func (c *PermissionChecker) Require(module user.Module, action user.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, user.ErrPermissionDenied)
				return
			}

			roleStr, ok := claims["role"].(string)
			if !ok {
				response.HandleError(w, user.ErrPermissionDenied)
				return
			}

			role := user.Role(roleStr)
			if role == user.RoleAdmin {
				next.ServeHTTP(w, r)
				return
			}

			allowed, err := c.permissions.IsAllowed(r.Context(), role, module, action)
			if err != nil || !allowed {
				response.HandleError(w, user.ErrPermissionDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
