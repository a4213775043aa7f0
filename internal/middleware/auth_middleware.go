package middleware

import (
	"context"
	"errors"
	"strings"

	autherrors "go-rrhh/internal/auth/errors"
	"go-rrhh/internal/domain"
	"go-rrhh/internal/shared/apperror"
	"go-rrhh/internal/shared/contextutil"
	"go-rrhh/internal/shared/response"
	"go-rrhh/internal/shared/token"

	"github.com/gin-gonic/gin"
)

// IdentityResolver fills in the canonical user id for a token that only
// carries a username.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, userID, username string) domain.Identity
}

// AuthMiddleware accepts a bearer token or the access_token cookie and
// stores the caller identity in the request context.
func AuthMiddleware(secret string, resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found || strings.TrimSpace(raw) == "" {
			raw = ""
			if cookie, err := c.Cookie("access_token"); err == nil {
				raw = cookie
			}
		}
		if raw == "" {
			abortWith(c, autherrors.ErrTokenNotFound)
			return
		}

		claims, err := token.Parse(secret, strings.TrimSpace(raw), token.TypeAccess)
		if err != nil {
			if errors.Is(err, token.ErrExpired) {
				abortWith(c, autherrors.ErrTokenExpired)
				return
			}
			abortWith(c, autherrors.ErrInvalidToken)
			return
		}

		identity := domain.Identity{Username: claims.Username}
		if resolver != nil {
			identity = resolver.ResolveIdentity(c.Request.Context(), claims.UserID, claims.Username)
		}

		c.Set("username", identity.Username)
		c.Set("user_id", identity.UserIDString())
		c.Set("role", claims.Role)
		c.Request = c.Request.WithContext(contextutil.WithIdentity(c.Request.Context(), identity))

		c.Next()
	}
}

// Guard bundles authentication and authorization so feature routes can
// declare both without knowing how they are built.
type Guard struct {
	Authenticate gin.HandlerFunc
	RBAC         RBACService
}

func (g Guard) Authorize(resource, action string) gin.HandlerFunc {
	return RBACAuthorize(g.RBAC, resource, action)
}

func abortWith(c *gin.Context, appErr *apperror.AppError) {
	response.Abort(c, appErr.HTTPStatus, appErr.Code, appErr.Message)
}
