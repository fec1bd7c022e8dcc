package employee_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	appErrors "github.com/frahmantamala/talento-plus/internal"
	"github.com/frahmantamala/talento-plus/internal/employee"
	"github.com/frahmantamala/talento-plus/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type stubService struct {
	lastFilter employee.ListFilter
	lastUpdate employee.UpdateEmployeeDTO
	deleted    []int64
	created    employee.CreateEmployeeDTO
	createErr  error
}

func (s *stubService) Create(_ context.Context, dto employee.CreateEmployeeDTO) (*employee.EmployeeResponse, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = dto
	return &employee.EmployeeResponse{ID: 1, Document: dto.Document, Email: dto.Email}, nil
}

func (s *stubService) GetByID(_ context.Context, id int64) (*employee.EmployeeResponse, error) {
	if id != 7 {
		return nil, appErrors.ErrEmployeeNotFound
	}
	return &employee.EmployeeResponse{ID: 7, Document: "1001"}, nil
}

func (s *stubService) List(_ context.Context, filter employee.ListFilter) ([]employee.EmployeeResponse, error) {
	s.lastFilter = filter
	return []employee.EmployeeResponse{{ID: 7}, {ID: 8}}, nil
}

func (s *stubService) Update(_ context.Context, id int64, dto employee.UpdateEmployeeDTO) (*employee.EmployeeResponse, error) {
	s.lastUpdate = dto
	return &employee.EmployeeResponse{ID: id}, nil
}

func (s *stubService) Delete(_ context.Context, id int64) error {
	if id != 7 {
		return appErrors.ErrEmployeeNotFound
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubService) Stats(context.Context) (*employee.Stats, error) {
	return &employee.Stats{Total: 2, Active: 1}, nil
}

var _ = Describe("Employee Handler", func() {
	var (
		svc    *stubService
		router *chi.Mux
	)

	BeforeEach(func() {
		svc = &stubService{}
		base := transport.NewBaseHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
		h := employee.NewHandler(base, svc)

		router = chi.NewRouter()
		router.Get("/me", h.GetMe)
		router.Get("/employees", h.ListEmployees)
		router.Post("/employees", h.CreateEmployee)
		router.Get("/employees/stats", h.GetStats)
		router.Get("/employees/{id}", h.GetEmployee)
		router.Put("/employees/{id}", h.UpdateEmployee)
		router.Delete("/employees/{id}", h.DeleteEmployee)
	})

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	It("creates an employee from a JSON body", func() {
		body := `{"document":"1001","given_names":"Ana","surname":"Gómez","email":"ana@empresa.com","salary":"2500000"}`
		rec := serve(httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body)))

		Expect(rec.Code).To(Equal(http.StatusCreated))
		Expect(svc.created.Document).To(Equal("1001"))
		Expect(svc.created.Salary.String()).To(Equal("2500000"))
	})

	It("rejects a malformed body", func() {
		rec := serve(httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader("{")))
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("renders service errors with their status", func() {
		svc.createErr = appErrors.ErrDuplicateDocument
		rec := serve(httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{"document":"1001"}`)))
		Expect(rec.Code).To(Equal(http.StatusConflict))
	})

	It("passes list filters through", func() {
		rec := serve(httptest.NewRequest(http.MethodGet, "/employees?search=ana&status=active&department_id=3", nil))

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(svc.lastFilter).To(Equal(employee.ListFilter{
			Search:       "ana",
			Status:       employee.StatusActive,
			DepartmentID: 3,
		}))

		var body struct {
			Total int `json:"total"`
		}
		Expect(json.NewDecoder(rec.Body).Decode(&body)).To(Succeed())
		Expect(body.Total).To(Equal(2))
	})

	It("rejects an unknown status filter", func() {
		rec := serve(httptest.NewRequest(http.MethodGet, "/employees?status=retired", nil))
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(rec.Body.String()).To(ContainSubstring("INVALID_STATUS"))
	})

	It("rejects a non-numeric department filter", func() {
		rec := serve(httptest.NewRequest(http.MethodGet, "/employees?department_id=x", nil))
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("returns one employee or 404", func() {
		Expect(serve(httptest.NewRequest(http.MethodGet, "/employees/7", nil)).Code).To(Equal(http.StatusOK))
		Expect(serve(httptest.NewRequest(http.MethodGet, "/employees/9", nil)).Code).To(Equal(http.StatusNotFound))
		Expect(serve(httptest.NewRequest(http.MethodGet, "/employees/abc", nil)).Code).To(Equal(http.StatusBadRequest))
	})

	It("applies partial updates", func() {
		rec := serve(httptest.NewRequest(http.MethodPut, "/employees/7", strings.NewReader(`{"phone":"3001234567"}`)))

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(svc.lastUpdate.Phone).NotTo(BeNil())
		Expect(*svc.lastUpdate.Phone).To(Equal("3001234567"))
		Expect(svc.lastUpdate.GivenNames).To(BeNil())
	})

	It("deletes with 204", func() {
		rec := serve(httptest.NewRequest(http.MethodDelete, "/employees/7", nil))
		Expect(rec.Code).To(Equal(http.StatusNoContent))
		Expect(svc.deleted).To(ConsistOf(int64(7)))
	})

	It("serves stats", func() {
		rec := serve(httptest.NewRequest(http.MethodGet, "/employees/stats", nil))
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring(`"total":2`))
	})

	Describe("GetMe", func() {
		It("requires an employee in the context", func() {
			rec := serve(httptest.NewRequest(http.MethodGet, "/me", nil))
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})

		It("returns the caller's profile", func() {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req = req.WithContext(appErrors.ContextWithEmployeeID(req.Context(), 7))
			rec := serve(req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring(`"document":"1001"`))
		})
	})
})
