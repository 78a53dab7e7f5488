package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Roma1011/EmployeeManagmentSys/internal/activation"
	"github.com/Roma1011/EmployeeManagmentSys/internal/messaging/kafka"
	"github.com/Roma1011/EmployeeManagmentSys/internal/messaging/kafka/producer"
	"github.com/Roma1011/EmployeeManagmentSys/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker menjalankan dua loop background: sweep aktivasi employee
// (sekali per menit) dan relay outbox ke Kafka.
func RunWorker() error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	activationRepo := activation.NewRepository(sqlDB)
	activationService := activation.NewService(sqlDB, activationRepo, outboxRepo, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Kafka opsional: tanpa broker, sweep tetap jalan, event hanya
	// menumpuk di outbox.
	if kafkaBroker := os.Getenv("KAFKA_BROKER"); kafkaBroker != "" {
		kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
		if err != nil {
			return err
		}
		defer kafkaWriter.Close()

		go producer.ProcessOutboxEvents(
			ctx,
			outboxRepo,
			kafkaWriter,
			logger,
			3*time.Second,
		)
	} else {
		logger.Warn("KAFKA_BROKER not set, outbox relay disabled")
	}

	go activationService.RunLoop(ctx, activation.DefaultInterval)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}
