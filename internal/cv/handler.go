package cv

import (
	"context"
	"fmt"
	"net/http"

	appErrors "github.com/frahmantamala/talento-plus/internal"
	"github.com/frahmantamala/talento-plus/internal/employee"
	"github.com/frahmantamala/talento-plus/internal/transport"
)

type EmployeeReader interface {
	GetByID(ctx context.Context, id int64) (*employee.EmployeeResponse, error)
}

type Handler struct {
	*transport.BaseHandler
	Employees EmployeeReader
}

func NewHandler(baseHandler *transport.BaseHandler, employees EmployeeReader) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Employees:   employees,
	}
}

// GetMyCV handles GET /me/cv
func (h *Handler) GetMyCV(w http.ResponseWriter, r *http.Request) {
	id := appErrors.EmployeeIDFromContext(r.Context())
	if id == 0 {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	emp, err := h.Employees.GetByID(r.Context(), id)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	doc, err := Render(emp)
	if err != nil {
		h.WriteAppError(w, appErrors.NewInternalError("failed to render CV", err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="hoja-de-vida-%s.pdf"`, emp.Document))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		h.Logger.Error("failed to write CV", "employee_id", id, "error", err)
	}
}
