package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/khiasu/UniManagePro/internal/api/response"
	"github.com/khiasu/UniManagePro/internal/domain"
	"github.com/khiasu/UniManagePro/internal/service"
)

// DepartmentHandler handles department endpoints
type DepartmentHandler struct {
	departmentService *service.DepartmentService
}

// NewDepartmentHandler creates a new department handler
func NewDepartmentHandler(departmentService *service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departmentService: departmentService}
}

// List handles listing all departments
func (h *DepartmentHandler) List(w http.ResponseWriter, r *http.Request) {
	departments, err := h.departmentService.List(r.Context())
	if err != nil {
		response.InternalError(w, "failed to fetch departments")
		return
	}

	response.OK(w, departments)
}

// Create handles department creation
func (h *DepartmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.DepartmentCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	dept := &domain.Department{
		ID:          uuid.New(),
		Name:        input.Name,
		Code:        input.Code,
		Description: input.Description,
		Icon:        input.Icon,
		Color:       input.Color,
	}
	if err := h.departmentService.Create(r.Context(), dept); err != nil {
		response.InternalError(w, "failed to create department")
		return
	}

	response.Created(w, dept)
}
