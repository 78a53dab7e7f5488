package app

import (
	"database/sql"

	"github.com/Roma1011/EmployeeManagmentSys/internal/employee"
	"github.com/Roma1011/EmployeeManagmentSys/internal/messaging/kafka"
	"github.com/Roma1011/EmployeeManagmentSys/internal/position"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) {
	logger := zap.L()

	// --- Repositories ---
	positionRepo := position.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	positionService := position.NewService(db, positionRepo, rdb)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, positionRepo, outboxRepo)

	// --- Handlers ---
	positionHandler := position.NewHandler(positionService)
	employeeHandler := employee.NewHandler(employeeService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		position.RegisterRoutes(api, positionHandler, logger)
		employee.RegisterRoutes(api, employeeHandler, logger)
	}
}
