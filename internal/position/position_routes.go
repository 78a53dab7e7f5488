package position

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
	positions := r.Group("/positions")
	positions.Use(middleware.ContextLogger(logger))
	{
		positions.GET("",
			middleware.RateLimitByClient(3, 10),
			handler.GetAll,
		)

		positions.GET("/tree",
			middleware.RateLimitByClient(5, 20), // Ringan karena di-cache di Redis
			handler.GetTree,
		)

		positions.GET("/:id",
			middleware.RateLimitByClient(3, 10),
			handler.GetById,
		)

		positions.POST("",
			middleware.RateLimitByClient(0.5, 2),
			handler.Create,
		)

		positions.PUT("/:id",
			middleware.RateLimitByClient(0.5, 2),
			handler.Update,
		)

		positions.DELETE("/:id",
			middleware.RateLimitByClient(0.1, 1),
			handler.Delete,
		)
	}
}
