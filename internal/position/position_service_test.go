package position_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Roma1011/EmployeeManagmentSys/internal/position"
	positionerrors "github.com/Roma1011/EmployeeManagmentSys/internal/position/errors"

	positionMock "github.com/Roma1011/EmployeeManagmentSys/internal/position/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   position.Service
	repo      *positionMock.MockRepository
	redisMock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	dbRedis, redisMock := redismock.NewClientMock()
	repo := positionMock.NewMockRepository(ctrl)

	svc := position.NewService(db, repo, dbRedis)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		redisMock: redisMock,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestPositionService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success without parent", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := position.CreatePositionRequest{Name: "CTO"}

		expectTx(t, deps.sqlMock, true)
		deps.redisMock.ExpectDel(position.PositionTreeKey).SetVal(1)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, p *position.Position) error {
				assert.Equal(t, "CTO", p.Name)
				assert.Nil(t, p.ParentID)
				p.ID = 1
				return nil
			})

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, 1, resp.ID)
		assert.Equal(t, "CTO", resp.Name)
	})

	t.Run("success with existing parent", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := position.CreatePositionRequest{Name: "Backend Lead", ParentID: intPtr(1)}

		expectTx(t, deps.sqlMock, true)
		deps.redisMock.ExpectDel(position.PositionTreeKey).SetVal(1)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByID(ctx, 1).
			Return(&position.Position{ID: 1, Name: "CTO"}, nil)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, p *position.Position) error {
				assert.Equal(t, 1, *p.ParentID)
				p.ID = 2
				return nil
			})

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, 2, resp.ID)
		assert.Equal(t, 1, *resp.ParentID)
	})

	t.Run("validation error - store never touched", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := position.CreatePositionRequest{Name: "  "}

		// Tidak ada ekspektasi sqlmock/repo: validasi gagal sebelum tx.
		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, positionerrors.ErrNameRequired)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("parent not found -> rollback", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := position.CreatePositionRequest{Name: "Backend Lead", ParentID: intPtr(99)}

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByID(ctx, 99).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, positionerrors.ErrParentNotFound)
	})

	t.Run("repo error -> rollback", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := position.CreatePositionRequest{Name: "CTO"}

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(errors.New("db error"))

		_, err := deps.service.Create(ctx, req)

		assert.Error(t, err)
	})
}

func TestPositionService_GetTree(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit - repo not touched", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		cached := []*position.Node{
			{ID: 1, Name: "CEO", Children: []*position.Node{
				{ID: 2, Name: "CTO", ParentID: intPtr(1), Children: []*position.Node{}},
			}},
		}
		jsonData, _ := json.Marshal(cached)

		deps.redisMock.ExpectGet(position.PositionTreeKey).SetVal(string(jsonData))

		forest, err := deps.service.GetTree(ctx)

		assert.NoError(t, err)
		assert.Len(t, forest, 1)
		assert.Equal(t, "CEO", forest[0].Name)
		assert.Len(t, forest[0].Children, 1)

		deps.repo.EXPECT().FindAll(gomock.Any()).Times(0)
	})

	t.Run("cache miss - builds from store and fills cache", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		flat := []position.Position{
			{ID: 1, Name: "CEO"},
			{ID: 2, Name: "CTO", ParentID: intPtr(1)},
		}
		expected := position.BuildTree(flat)
		jsonData, _ := json.Marshal(expected)

		deps.redisMock.ExpectGet(position.PositionTreeKey).RedisNil()
		deps.repo.EXPECT().FindAll(ctx).Return(flat, nil).Times(1)
		deps.redisMock.ExpectSet(position.PositionTreeKey, jsonData, 30*time.Minute).SetVal("OK")

		forest, err := deps.service.GetTree(ctx)

		assert.NoError(t, err)
		assert.Len(t, forest, 1)
		assert.Equal(t, 2, forest[0].Children[0].ID)
	})

	t.Run("store error propagates", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.redisMock.ExpectGet(position.PositionTreeKey).RedisNil()
		deps.repo.EXPECT().FindAll(ctx).Return(nil, errors.New("db connection error"))

		forest, err := deps.service.GetTree(ctx)

		assert.Error(t, err)
		assert.Nil(t, forest)
	})
}

func TestPositionService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("success rename and reparent", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := position.UpdatePositionRequest{Name: "VP Engineering", ParentID: intPtr(1)}

		expectTx(t, deps.sqlMock, true)
		deps.redisMock.ExpectDel(position.PositionTreeKey).SetVal(1)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByID(ctx, 2).
			Return(&position.Position{ID: 2, Name: "CTO"}, nil)
		deps.repo.EXPECT().
			FindByID(ctx, 1).
			Return(&position.Position{ID: 1, Name: "CEO"}, nil)
		deps.repo.EXPECT().
			FindAll(ctx).
			Return([]position.Position{
				{ID: 1, Name: "CEO"},
				{ID: 2, Name: "CTO"},
			}, nil)
		deps.repo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, p *position.Position) error {
				assert.Equal(t, "VP Engineering", p.Name)
				assert.Equal(t, 1, *p.ParentID)
				return nil
			})

		resp, err := deps.service.Update(ctx, 2, req)

		assert.NoError(t, err)
		assert.Equal(t, "VP Engineering", resp.Name)
		assert.Equal(t, 1, *resp.ParentID)
	})

	t.Run("position not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByID(ctx, 99).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Update(ctx, 99, position.UpdatePositionRequest{Name: "X"})

		assert.ErrorIs(t, err, positionerrors.ErrPositionNotFound)
	})

	t.Run("reparent under descendant -> cycle detected", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		// 1 -> 2 -> 3; pindahkan 1 ke bawah 3.
		req := position.UpdatePositionRequest{Name: "CEO", ParentID: intPtr(3)}

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByID(ctx, 1).
			Return(&position.Position{ID: 1, Name: "CEO"}, nil)
		deps.repo.EXPECT().
			FindByID(ctx, 3).
			Return(&position.Position{ID: 3, Name: "Lead", ParentID: intPtr(2)}, nil)
		deps.repo.EXPECT().
			FindAll(ctx).
			Return([]position.Position{
				{ID: 1, Name: "CEO"},
				{ID: 2, Name: "CTO", ParentID: intPtr(1)},
				{ID: 3, Name: "Lead", ParentID: intPtr(2)},
			}, nil)

		_, err := deps.service.Update(ctx, 1, req)

		assert.ErrorIs(t, err, positionerrors.ErrCycleDetected)
	})

	t.Run("self parent -> own parent error", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := position.UpdatePositionRequest{Name: "CTO", ParentID: intPtr(2)}

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByID(ctx, 2).
			Return(&position.Position{ID: 2, Name: "CTO"}, nil).
			Times(2)
		deps.repo.EXPECT().
			FindAll(ctx).
			Return([]position.Position{{ID: 2, Name: "CTO"}}, nil)

		_, err := deps.service.Update(ctx, 2, req)

		assert.ErrorIs(t, err, positionerrors.ErrOwnParent)
	})
}

func TestPositionService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success when leaf and unoccupied", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.redisMock.ExpectDel(position.PositionTreeKey).SetVal(1)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByID(ctx, 4).
			Return(&position.Position{ID: 4, Name: "Intern"}, nil)
		deps.repo.EXPECT().CountChildren(ctx, 4).Return(int64(0), nil)
		deps.repo.EXPECT().CountEmployees(ctx, 4).Return(int64(0), nil)
		deps.repo.EXPECT().Delete(ctx, 4).Return(nil)

		err := deps.service.Delete(ctx, 4)

		assert.NoError(t, err)
	})

	t.Run("rejected when children exist", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByID(ctx, 1).
			Return(&position.Position{ID: 1, Name: "CEO"}, nil)
		deps.repo.EXPECT().CountChildren(ctx, 1).Return(int64(2), nil)
		deps.repo.EXPECT().CountEmployees(ctx, 1).Return(int64(0), nil)

		err := deps.service.Delete(ctx, 1)

		assert.ErrorIs(t, err, positionerrors.ErrPositionInUse)
	})

	t.Run("rejected when employees assigned", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByID(ctx, 3).
			Return(&position.Position{ID: 3, Name: "Lead"}, nil)
		deps.repo.EXPECT().CountChildren(ctx, 3).Return(int64(0), nil)
		deps.repo.EXPECT().CountEmployees(ctx, 3).Return(int64(5), nil)

		err := deps.service.Delete(ctx, 3)

		assert.ErrorIs(t, err, positionerrors.ErrPositionInUse)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByID(ctx, 99).
			Return(nil, gorm.ErrRecordNotFound)

		err := deps.service.Delete(ctx, 99)

		assert.ErrorIs(t, err, positionerrors.ErrPositionNotFound)
	})
}

func TestPositionService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			FindByID(ctx, 2).
			Return(&position.Position{ID: 2, Name: "CTO", ParentID: intPtr(1)}, nil).
			Times(1)

		resp, err := deps.service.GetByID(ctx, 2)

		assert.NoError(t, err)
		assert.Equal(t, 2, resp.ID)
		assert.Equal(t, "CTO", resp.Name)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			FindByID(ctx, 99).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(ctx, 99)

		assert.ErrorIs(t, err, positionerrors.ErrPositionNotFound)
	})
}
