package payroll

import (
	"go-rrhh/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, guard middleware.Guard, rdb *redis.Client) {
	payrolls := r.Group("/payrolls")
	payrolls.Use(guard.Authenticate)
	{
		payrolls.GET("/by-employee/:employeeId", guard.Authorize("payroll", "read"), handler.GetByEmployee)
		payrolls.GET("/:id/download", guard.Authorize("payroll", "read"), handler.Download)
		payrolls.POST("",
			middleware.RateLimitByUser(0.5, 5),
			guard.Authorize("payroll", "create"),
			middleware.Idempotency(rdb),
			handler.Upload,
		)
	}
}
