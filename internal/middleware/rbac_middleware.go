package middleware

import (
	"net/http"

	autherrors "go-rrhh/internal/auth/errors"
	"go-rrhh/internal/domain"
	"go-rrhh/internal/shared/apperror"
	"go-rrhh/internal/shared/contextutil"
	"go-rrhh/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RBACService is satisfied by rbac.Service.
type RBACService interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

// RBACAuthorize must run after AuthMiddleware; the subject is the username.
func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := contextutil.GetIdentity(c.Request.Context())
		if identity.Username == "" {
			abortWith(c, autherrors.ErrTokenNotFound)
			return
		}

		allowed, err := service.Enforce(domain.EnforceRequest{
			Subject:  identity.Username,
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			contextutil.GetLogger(c.Request.Context(), zap.L()).Error("rbac enforce failed",
				zap.String("resource", resource),
				zap.String("action", action),
				zap.Error(err),
			)
			response.Abort(c, http.StatusInternalServerError, apperror.CodeInternalError, apperror.ErrInternal.Message)
			return
		}
		if !allowed {
			response.Error(c, http.StatusForbidden, autherrors.ErrForbidden.Code, autherrors.ErrForbidden.Message, gin.H{
				"required": resource + ":" + action,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
