package activation

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	"github.com/Roma1011/EmployeeManagmentSys/internal/employee"
	"github.com/Roma1011/EmployeeManagmentSys/internal/events"
	"github.com/Roma1011/EmployeeManagmentSys/internal/messaging/kafka"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultInterval adalah jadwal sweep; satu kali per menit.
const DefaultInterval = time.Minute

//go:generate mockgen -source=activation_service.go -destination=mock/activation_service_mock.go -package=mock
type Service interface {
	Run(ctx context.Context) error
	RunLoop(ctx context.Context, interval time.Duration)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
	now    func() time.Time

	// mu menjamin invarian no-overlap di level core, tidak hanya
	// mengandalkan scheduler.
	mu sync.Mutex
}

func NewService(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithClock(db, repo, outboxRepo, time.Now, logger...)
}

func NewServiceWithClock(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	now func() time.Time,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("activation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("activation.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		logger: l,
		now:    now,
	}
}

// Run mengeksekusi satu siklus sweep: pilih semua employee nonaktif yang
// dibuat >= 1 jam lalu, aktifkan, dan commit sekali untuk seluruh batch.
// Kegagalan di tengah loop membatalkan seluruh batch (rollback); employee
// yang sama masih eligible di run berikutnya.
func (s *service) Run(ctx context.Context) error {
	if !s.mu.TryLock() {
		// Run sebelumnya masih jalan; overlap bisa double-activate.
		s.logger.Warn("activation sweep skipped: previous run still in flight")
		return nil
	}
	defer s.mu.Unlock()

	started := s.now().UTC()
	s.logger.Info("activation sweep started", zap.Time("at", started))

	cutoff := started.Add(-employee.ActivationDelay)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("activation sweep begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	pending, err := qtx.ListPending(ctx, cutoff)
	if err != nil {
		s.logger.Error("activation sweep list pending failed", zap.Error(err))
		return err
	}

	if len(pending) == 0 {
		s.logger.Info("no employees to activate")
		return nil
	}

	for i := range pending {
		empl := &pending[i]

		if err := empl.Activate(); err != nil {
			// Seharusnya tidak terjadi untuk hasil ListPending; kalau
			// sampai terjadi, buang seluruh batch daripada commit sebagian.
			s.logger.Error("activation sweep activate failed",
				zap.Int("employee_id", empl.ID),
				zap.Error(err),
			)
			return err
		}

		if err := qtx.MarkActive(ctx, empl.ID, *empl.UpdatedAt); err != nil {
			s.logger.Error("activation sweep persist failed",
				zap.Int("employee_id", empl.ID),
				zap.Error(err),
			)
			return err
		}

		s.logger.Info("activating employee",
			zap.Int("employee_id", empl.ID),
			zap.String("first_name", empl.FirstName),
			zap.String("last_name", empl.LastName),
		)

		if s.outbox != nil {
			event := events.EmployeeActivatedEvent{
				EventType:   "employee_activated",
				EmployeeID:  empl.ID,
				ActivatedAt: *empl.UpdatedAt,
			}
			payload, err := json.Marshal(event)
			if err != nil {
				return err
			}
			if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
				ID:            uuid.NewString(),
				AggregateType: "employee",
				AggregateID:   empl.PersonalNumber,
				EventType:     event.EventType,
				Topic:         events.EmployeeActivatedTopic,
				Payload:       payload,
				Status:        kafka.OutboxStatusPending,
			}); err != nil {
				s.logger.Error("activation sweep outbox persist failed",
					zap.Int("employee_id", empl.ID),
					zap.Error(err),
				)
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("activation sweep commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("activated employees", zap.Int("count", len(pending)))
	return nil
}

// RunLoop menjalankan sweep pada interval tetap sampai ctx selesai.
func (s *service) RunLoop(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("activation sweep loop started", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("activation sweep loop stopped")
			return
		case <-ticker.C:
			if err := s.Run(ctx); err != nil {
				s.logger.Error("activation sweep run failed", zap.Error(err))
			}
		}
	}
}
