package position

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	positionerrors "github.com/Roma1011/EmployeeManagmentSys/internal/position/errors"
	"github.com/Roma1011/EmployeeManagmentSys/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const PositionTreeKey = "positions:tree"

//go:generate mockgen -source=position_service.go -destination=mock/position_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreatePositionRequest) (PositionResponse, error)
	GetAll(ctx context.Context) ([]PositionResponse, error)
	GetTree(ctx context.Context) ([]*Node, error)
	GetByID(ctx context.Context, id int) (PositionResponse, error)
	Update(ctx context.Context, id int, req UpdatePositionRequest) (PositionResponse, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("position.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("position.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(
	ctx context.Context,
	req CreatePositionRequest,
) (PositionResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create position requested",
		zap.String("request_id", rid),
		zap.String("name", req.Name),
	)

	// Validasi entity dulu — gagal di sini berarti store belum tersentuh.
	pos, err := NewPosition(req.Name, req.ParentID)
	if err != nil {
		s.logger.Warn("create position validation failed", zap.String("request_id", rid), zap.Error(err))
		return PositionResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create position begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return PositionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if req.ParentID != nil {
		if _, err := qtx.FindByID(ctx, *req.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.Warn("create position parent not found",
					zap.String("request_id", rid),
					zap.Int("parent_id", *req.ParentID),
				)
				return PositionResponse{}, positionerrors.ErrParentNotFound
			}
			return PositionResponse{}, err
		}
	}

	if err := qtx.Create(ctx, pos); err != nil {
		s.logger.Error("create position persist failed", zap.Error(err))
		return PositionResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create position commit failed", zap.String("request_id", rid), zap.Error(err))
		return PositionResponse{}, err
	}

	s.invalidateTreeCache(ctx)

	s.logger.Info("create position success",
		zap.String("request_id", rid),
		zap.Int("position_id", pos.ID),
	)

	return mapToResponse(*pos), nil
}

func (s *service) GetAll(ctx context.Context) ([]PositionResponse, error) {
	s.logger.Debug("get all positions requested")
	positions, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all positions failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(positions), nil
}

func (s *service) GetTree(ctx context.Context) ([]*Node, error) {
	// Coba ambil dari Redis
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, PositionTreeKey).Result(); err == nil {
			var forest []*Node
			if json.Unmarshal([]byte(cached), &forest) == nil {
				return forest, nil
			}
		}
	}

	// Singleflight untuk mencegah query berulang ke DB
	v, err, _ := s.sf.Do(PositionTreeKey, func() (interface{}, error) {
		positions, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		forest := BuildTree(positions)

		// Simpan ke Redis (TTL 30 menit cukup untuk data master)
		if s.rdb != nil {
			if jsonData, err := json.Marshal(forest); err == nil {
				s.rdb.Set(ctx, PositionTreeKey, jsonData, 30*time.Minute)
			}
		}

		return forest, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]*Node), nil
}

func (s *service) GetByID(ctx context.Context, id int) (PositionResponse, error) {
	s.logger.Debug("get position by id requested", zap.Int("position_id", id))
	pos, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get position by id failed", zap.Error(err))
		return PositionResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*pos), nil
}

func (s *service) Update(
	ctx context.Context,
	id int,
	req UpdatePositionRequest,
) (PositionResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update position requested",
		zap.String("request_id", rid),
		zap.Int("position_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update position begin tx failed", zap.Error(err))
		return PositionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	pos, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("update position fetch existing failed", zap.Error(err))
		return PositionResponse{}, mapRepositoryError(err)
	}

	if req.ParentID != nil {
		if _, err := qtx.FindByID(ctx, *req.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return PositionResponse{}, positionerrors.ErrParentNotFound
			}
			return PositionResponse{}, err
		}

		// Cek siklus transitif atas snapshot penuh. ChangeParent di bawah
		// hanya menangkap self-parent.
		positions, err := qtx.FindAll(ctx)
		if err != nil {
			return PositionResponse{}, mapRepositoryError(err)
		}
		byID := make(map[int]Position, len(positions))
		for _, p := range positions {
			byID[p.ID] = p
		}
		if *req.ParentID != id && WouldCreateCycle(byID, id, req.ParentID) {
			s.logger.Warn("update position rejected: cycle",
				zap.String("request_id", rid),
				zap.Int("position_id", id),
				zap.Int("parent_id", *req.ParentID),
			)
			return PositionResponse{}, positionerrors.ErrCycleDetected
		}
	}

	if err := pos.Rename(req.Name); err != nil {
		return PositionResponse{}, err
	}
	if err := pos.ChangeParent(req.ParentID); err != nil {
		return PositionResponse{}, err
	}

	if err := qtx.Update(ctx, pos); err != nil {
		s.logger.Error("update position persist failed", zap.Error(err))
		return PositionResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update position commit failed", zap.Error(err))
		return PositionResponse{}, err
	}

	s.invalidateTreeCache(ctx)

	s.logger.Info("update position success", zap.Int("position_id", id))

	return mapToResponse(*pos), nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete position requested",
		zap.String("request_id", rid),
		zap.Int("position_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete position begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	pos, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("delete position fetch existing failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	children, err := qtx.CountChildren(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	employees, err := qtx.CountEmployees(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	if !pos.CanBeDeleted(children, employees) {
		s.logger.Warn("delete position rejected: in use",
			zap.String("request_id", rid),
			zap.Int("position_id", id),
			zap.Int64("children", children),
			zap.Int64("employees", employees),
		)
		return positionerrors.ErrPositionInUse
	}

	// FK RESTRICT di store adalah backstop kalau ada insert balapan
	// di antara count dan delete.
	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete position failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete position commit failed", zap.Error(err))
		return err
	}

	s.invalidateTreeCache(ctx)

	s.logger.Info("delete position success", zap.Int("position_id", id))
	return nil
}

func (s *service) invalidateTreeCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, PositionTreeKey).Err(); err != nil {
		s.logger.Error("failed to invalidate position tree cache",
			zap.Error(err),
			zap.String("key", PositionTreeKey),
		)
	}
}
