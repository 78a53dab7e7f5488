package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	employeeerrors "github.com/Roma1011/EmployeeManagmentSys/internal/employee/errors"
	"github.com/Roma1011/EmployeeManagmentSys/internal/events"
	"github.com/Roma1011/EmployeeManagmentSys/internal/messaging/kafka"
	"github.com/Roma1011/EmployeeManagmentSys/internal/position"
	"github.com/Roma1011/EmployeeManagmentSys/internal/shared/apperror"
	"github.com/Roma1011/EmployeeManagmentSys/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	Search(ctx context.Context, term string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id int) (EmployeeResponse, error)
	Update(ctx context.Context, id int, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Deactivate(ctx context.Context, id int) (EmployeeResponse, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	positions position.Repository
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	positions position.Repository,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, positions, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	positions position.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		positions: positions,
		outbox:    outboxRepo,
		logger:    l,
	}
}

func (s *service) Create(
	ctx context.Context,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("personal_number", req.PersonalNumber),
		zap.Int("position_id", req.PositionID),
	)

	gender, err := parseGender(req.Gender)
	if err != nil {
		return EmployeeResponse{}, err
	}
	status, err := parseStatus(req.Status)
	if err != nil {
		return EmployeeResponse{}, err
	}
	dateOfBirth, err := parseDate(req.DateOfBirth, "Date Of Birth")
	if err != nil {
		s.logger.Warn("create employee invalid date_of_birth",
			zap.String("date_of_birth", req.DateOfBirth),
		)
		return EmployeeResponse{}, err
	}
	dismissalDate, err := parseOptionalDate(req.DismissalDate, "Dismissal Date")
	if err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Urutan cek: personal number -> email -> posisi -> validasi field.
	// Pre-check ini advisory; unique constraint di store tetap backstop-nya.
	exists, err := qtx.ExistsByPersonalNumber(ctx, req.PersonalNumber)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if exists {
		s.logger.Warn("create employee personal number taken",
			zap.String("request_id", rid),
			zap.String("personal_number", req.PersonalNumber),
		)
		return EmployeeResponse{}, employeeerrors.ErrPersonalNumberAlreadyExists
	}

	if req.Email != "" {
		exists, err := qtx.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return EmployeeResponse{}, mapRepositoryError(err)
		}
		if exists {
			return EmployeeResponse{}, employeeerrors.ErrEmailAlreadyExists
		}
	}

	if _, err := s.positions.WithTx(tx).FindByID(ctx, req.PositionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("create employee position not found",
				zap.String("request_id", rid),
				zap.Int("position_id", req.PositionID),
			)
			return EmployeeResponse{}, employeeerrors.ErrPositionNotFound
		}
		return EmployeeResponse{}, err
	}

	empl, err := NewEmployee(
		req.PersonalNumber,
		req.FirstName,
		req.LastName,
		gender,
		dateOfBirth,
		req.Email,
		req.PositionID,
		status,
		dismissalDate,
	)
	if err != nil {
		s.logger.Warn("create employee validation failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.EmployeeCreatedEvent{
			EventType:  "employee_created",
			RequestID:  rid,
			EmployeeID: empl.ID,
			PositionID: empl.PositionID,
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return EmployeeResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "employee",
			AggregateID:   empl.PersonalNumber,
			EventType:     event.EventType,
			Topic:         events.EmployeeCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.Int("employee_id", empl.ID),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.Int("employee_id", empl.ID),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested")
	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(empls), nil
}

func (s *service) Search(ctx context.Context, term string) ([]EmployeeResponse, error) {
	s.logger.Debug("search employees requested", zap.String("term", term))
	empls, err := s.repo.Search(ctx, term)
	if err != nil {
		s.logger.Error("search employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(empls), nil
}

func (s *service) GetByID(ctx context.Context, id int) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested", zap.Int("employee_id", id))
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get employee by id failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(
	ctx context.Context,
	id int,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.Int("employee_id", id),
		zap.Int("position_id", req.PositionID),
	)

	gender, err := parseGender(req.Gender)
	if err != nil {
		return EmployeeResponse{}, err
	}
	status, err := parseStatus(req.Status)
	if err != nil {
		return EmployeeResponse{}, err
	}
	dateOfBirth, err := parseDate(req.DateOfBirth, "Date Of Birth")
	if err != nil {
		return EmployeeResponse{}, err
	}
	dismissalDate, err := parseOptionalDate(req.DismissalDate, "Dismissal Date")
	if err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("update employee fetch existing failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if req.PersonalNumber != empl.PersonalNumber {
		exists, err := qtx.ExistsByPersonalNumber(ctx, req.PersonalNumber)
		if err != nil {
			return EmployeeResponse{}, mapRepositoryError(err)
		}
		if exists {
			return EmployeeResponse{}, employeeerrors.ErrPersonalNumberAlreadyExists
		}
	}

	if req.Email != "" && normalizeEmail(req.Email) != empl.Email {
		exists, err := qtx.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return EmployeeResponse{}, mapRepositoryError(err)
		}
		if exists {
			return EmployeeResponse{}, employeeerrors.ErrEmailAlreadyExists
		}
	}

	if _, err := s.positions.WithTx(tx).FindByID(ctx, req.PositionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("update employee position not found",
				zap.String("request_id", rid),
				zap.Int("position_id", req.PositionID),
			)
			return EmployeeResponse{}, employeeerrors.ErrPositionNotFound
		}
		return EmployeeResponse{}, err
	}

	if err := empl.UpdatePersonalInfo(req.PersonalNumber, req.FirstName, req.LastName, gender, dateOfBirth); err != nil {
		return EmployeeResponse{}, err
	}
	if err := empl.UpdateEmail(req.Email); err != nil {
		return EmployeeResponse{}, err
	}
	if err := empl.ChangePosition(req.PositionID); err != nil {
		return EmployeeResponse{}, err
	}
	if err := empl.ChangeStatus(status, dismissalDate); err != nil {
		return EmployeeResponse{}, err
	}

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("update employee success", zap.Int("employee_id", id))

	return mapToResponse(*empl), nil
}

// Deactivate adalah operasi manual; sweep tidak pernah menonaktifkan.
func (s *service) Deactivate(ctx context.Context, id int) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("deactivate employee requested",
		zap.String("request_id", rid),
		zap.Int("employee_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("deactivate employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := empl.Deactivate(); err != nil {
		s.logger.Warn("deactivate employee rejected",
			zap.String("request_id", rid),
			zap.Int("employee_id", id),
			zap.Error(err),
		)
		return EmployeeResponse{}, err
	}

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("deactivate employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("deactivate employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("deactivate employee success", zap.Int("employee_id", id))

	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested",
		zap.String("request_id", rid),
		zap.Int("employee_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete employee success", zap.Int("employee_id", id))
	return nil
}

func parseGender(s string) (Gender, error) {
	switch Gender(s) {
	case GenderMale, GenderFemale, GenderOther:
		return Gender(s), nil
	default:
		return "", employeeerrors.ErrInvalidGender
	}
}

func parseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusActive, StatusProbation, StatusDismissed:
		return Status(s), nil
	default:
		return "", employeeerrors.ErrInvalidStatus
	}
}

func parseDate(s, field string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, apperror.InvalidField(field)
	}
	return t, nil
}

func parseOptionalDate(s, field string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseDate(s, field)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
