package rbac

import (
	"go-rrhh/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, guard middleware.Guard) {
	group := r.Group("/rbac")
	group.Use(guard.Authenticate)
	{
		group.POST("/enforce", guard.Authorize("rbac", "read"), handler.Enforce)
		group.GET("/permissions", guard.Authorize("rbac", "read"), handler.ListPermissions)
		group.POST("/permissions", guard.Authorize("rbac", "manage"), handler.Grant)
		group.DELETE("/permissions", guard.Authorize("rbac", "manage"), handler.Revoke)
	}
}
