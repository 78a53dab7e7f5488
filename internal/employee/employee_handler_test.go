package employee_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Roma1011/EmployeeManagmentSys/internal/employee"
	employeeerrors "github.com/Roma1011/EmployeeManagmentSys/internal/employee/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeEmployeeService struct {
	CreateFn     func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	GetAllFn     func(ctx context.Context) ([]employee.EmployeeResponse, error)
	SearchFn     func(ctx context.Context, term string) ([]employee.EmployeeResponse, error)
	GetByIDFn    func(ctx context.Context, id int) (employee.EmployeeResponse, error)
	UpdateFn     func(ctx context.Context, id int, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	DeactivateFn func(ctx context.Context, id int) (employee.EmployeeResponse, error)
	DeleteFn     func(ctx context.Context, id int) error
}

func (f *fakeEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeEmployeeService) GetAll(ctx context.Context) ([]employee.EmployeeResponse, error) {
	return f.GetAllFn(ctx)
}
func (f *fakeEmployeeService) Search(ctx context.Context, term string) ([]employee.EmployeeResponse, error) {
	return f.SearchFn(ctx, term)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, id int) (employee.EmployeeResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeEmployeeService) Update(ctx context.Context, id int, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeEmployeeService) Deactivate(ctx context.Context, id int) (employee.EmployeeResponse, error) {
	return f.DeactivateFn(ctx, id)
}
func (f *fakeEmployeeService) Delete(ctx context.Context, id int) error {
	return f.DeleteFn(ctx, id)
}

func newTestContext(w *httptest.ResponseRecorder) (*gin.Context, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	return gin.CreateTestContext(w)
}

const createBody = `{
	"personal_number": "12345678901",
	"first_name": "Budi",
	"last_name": "Santoso",
	"gender": "male",
	"date_of_birth": "1990-05-01",
	"email": "budi.santoso@example.com",
	"position_id": 1,
	"status": "probation"
}`

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, "12345678901", req.PersonalNumber)
				assert.Equal(t, "probation", req.Status)
				return employee.EmployeeResponse{ID: 10, PersonalNumber: req.PersonalNumber, IsActive: false}, nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := newTestContext(w)

		c.Request = httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(createBody))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"is_active":false`)
	})

	t.Run("binding error - bad gender enum", func(t *testing.T) {
		h := employee.NewHandler(&fakeEmployeeService{})
		w := httptest.NewRecorder()
		c, _ := newTestContext(w)

		body := strings.Replace(createBody, `"male"`, `"robot"`, 1)
		c.Request = httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_INPUT")
	})

	t.Run("duplicate personal number -> conflict", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrPersonalNumberAlreadyExists
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := newTestContext(w)

		c.Request = httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(createBody))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "CONFLICT")
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	manyEmployees := func(n int) []employee.EmployeeResponse {
		out := make([]employee.EmployeeResponse, n)
		for i := range out {
			out[i] = employee.EmployeeResponse{ID: i + 1, LastName: fmt.Sprintf("Emp%02d", i+1)}
		}
		return out
	}

	t.Run("without q uses GetAll", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetAllFn: func(ctx context.Context) ([]employee.EmployeeResponse, error) {
				return manyEmployees(3), nil
			},
			SearchFn: func(ctx context.Context, term string) ([]employee.EmployeeResponse, error) {
				t.Fatal("Search tidak boleh dipanggil tanpa query q")
				return nil, nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := newTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/employees", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("with q uses Search", func(t *testing.T) {
		var searched string
		svc := &fakeEmployeeService{
			SearchFn: func(ctx context.Context, term string) ([]employee.EmployeeResponse, error) {
				searched = term
				return manyEmployees(1), nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := newTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/employees?q=san", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "san", searched)
	})

	t.Run("pagination slices and reports meta", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetAllFn: func(ctx context.Context) ([]employee.EmployeeResponse, error) {
				return manyEmployees(25), nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := newTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/employees?page=3&page_size=10", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Ok   bool                        `json:"ok"`
			Data []employee.EmployeeResponse `json:"data"`
			Meta struct {
				Total      int64 `json:"total"`
				TotalPages int   `json:"totalPages"`
				Page       int   `json:"page"`
			} `json:"meta"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Len(t, body.Data, 5)
		assert.Equal(t, int64(25), body.Meta.Total)
		assert.Equal(t, 3, body.Meta.TotalPages)
		assert.Equal(t, 3, body.Meta.Page)
	})
}

func TestEmployeeHandler_Deactivate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			DeactivateFn: func(ctx context.Context, id int) (employee.EmployeeResponse, error) {
				assert.Equal(t, 10, id)
				return employee.EmployeeResponse{ID: 10, IsActive: false}, nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := newTestContext(w)

		c.Request = httptest.NewRequest(http.MethodPost, "/employees/10/deactivate", nil)
		c.Params = gin.Params{{Key: "id", Value: "10"}}

		h.Deactivate(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("already inactive -> conflict", func(t *testing.T) {
		svc := &fakeEmployeeService{
			DeactivateFn: func(ctx context.Context, id int) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrAlreadyInactive
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := newTestContext(w)

		c.Request = httptest.NewRequest(http.MethodPost, "/employees/10/deactivate", nil)
		c.Params = gin.Params{{Key: "id", Value: "10"}}

		h.Deactivate(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_STATE")
	})
}

func TestEmployeeHandler_GetById(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		h := employee.NewHandler(&fakeEmployeeService{})
		w := httptest.NewRecorder()
		c, _ := newTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/employees/zero", nil)
		c.Params = gin.Params{{Key: "id", Value: "zero"}}

		h.GetById(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetByIDFn: func(ctx context.Context, id int) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := newTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/employees/99", nil)
		c.Params = gin.Params{{Key: "id", Value: "99"}}

		h.GetById(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEmployeeHandler_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			DeleteFn: func(ctx context.Context, id int) error {
				assert.Equal(t, 10, id)
				return nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := newTestContext(w)

		c.Request = httptest.NewRequest(http.MethodDelete, "/employees/10", nil)
		c.Params = gin.Params{{Key: "id", Value: "10"}}

		h.Delete(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
