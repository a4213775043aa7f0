package leave

import (
	"go-rrhh/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, guard middleware.Guard, rdb *redis.Client) {
	leaves := r.Group("/leaves")
	leaves.Use(guard.Authenticate)
	{
		leaves.GET("", guard.Authorize("leave", "read"), handler.GetHistory)
		leaves.GET("/pending", guard.Authorize("leave", "read"), handler.GetPending)
		leaves.GET("/by-employee/:employeeId", guard.Authorize("leave", "read"), handler.GetByEmployee)
		leaves.GET("/balance/:employeeId", guard.Authorize("leave", "read"), handler.GetBalance)
		leaves.POST("", guard.Authorize("leave", "create"), middleware.Idempotency(rdb), handler.Submit)
		leaves.PUT("/:id/resolve", guard.Authorize("leave", "approve"), handler.Resolve)
	}
}
