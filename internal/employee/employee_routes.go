package employee

import (
	"github.com/Roma1011/EmployeeManagmentSys/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	logger *zap.Logger,
) {
	employees := r.Group("/employees")
	employees.Use(middleware.ContextLogger(logger))
	{
		employees.GET("",
			middleware.RateLimitByClient(3, 10),
			handler.GetAll,
		)

		employees.GET("/:id",
			middleware.RateLimitByClient(3, 10),
			handler.GetById,
		)

		employees.POST("",
			middleware.RateLimitByClient(0.5, 2),
			handler.Create,
		)

		employees.PUT("/:id",
			middleware.RateLimitByClient(0.5, 2),
			handler.Update,
		)

		employees.POST("/:id/deactivate",
			middleware.RateLimitByClient(0.2, 1),
			handler.Deactivate,
		)

		employees.DELETE("/:id",
			middleware.RateLimitByClient(0.1, 1),
			handler.Delete,
		)
	}
}
