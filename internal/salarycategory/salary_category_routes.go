package salarycategory

import (
	"go-rrhh/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, guard middleware.Guard) {
	categories := r.Group("/categories")
	categories.Use(guard.Authenticate)
	{
		categories.GET("",
			middleware.RateLimitByUser(3, 10),
			guard.Authorize("salary_category", "read"),
			handler.GetAll,
		)

		categories.GET("/history/export",
			middleware.RateLimitByUser(0.2, 2),
			guard.Authorize("salary_category", "read"),
			handler.ExportHistory,
		)

		categories.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			guard.Authorize("salary_category", "read"),
			handler.GetByID,
		)

		categories.GET("/:id/history",
			middleware.RateLimitByUser(3, 10),
			guard.Authorize("salary_category", "read"),
			handler.GetHistory,
		)

		categories.PUT("/bulk-by-agreement",
			middleware.RateLimitByUser(0.2, 1),
			guard.Authorize("salary_category", "update"),
			handler.UpdateBulk,
		)

		categories.PUT("/:id/salary",
			middleware.RateLimitByUser(0.5, 2),
			guard.Authorize("salary_category", "update"),
			handler.UpdateSalary,
		)
	}
}
