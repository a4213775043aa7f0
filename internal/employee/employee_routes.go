package employee

import (
	"go-rrhh/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, guard middleware.Guard) {
	employees := r.Group("/employees")
	employees.Use(guard.Authenticate)
	{
		employees.GET("",
			middleware.RateLimitByUser(3, 10),
			guard.Authorize("employee", "read"),
			handler.GetAll,
		)

		employees.GET("/options",
			middleware.RateLimitByUser(5, 20),
			guard.Authorize("employee", "read"),
			handler.GetOptions,
		)

		employees.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			guard.Authorize("employee", "read"),
			handler.GetByID,
		)

		employees.POST("",
			middleware.RateLimitByUser(0.5, 2),
			guard.Authorize("employee", "create"),
			handler.Create,
		)

		employees.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			guard.Authorize("employee", "update"),
			handler.Update,
		)

		employees.PATCH("/:id/deactivate",
			middleware.RateLimitByUser(0.2, 1),
			guard.Authorize("employee", "update"),
			handler.Deactivate,
		)
	}
}
