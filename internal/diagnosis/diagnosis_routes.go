package diagnosis

import (
	"go-rrhh/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, guard middleware.Guard) {
	diagnoses := r.Group("/diagnoses")
	diagnoses.Use(guard.Authenticate)
	{
		diagnoses.GET("",
			middleware.RateLimitByUser(2, 10),
			guard.Authorize("diagnosis", "read"),
			handler.Search,
		)
	}
}
