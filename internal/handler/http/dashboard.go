package http

import (
	"net/http"

	"github.com/greythr-lite/hrms-backend-go/internal/domain/dashboard"
	"github.com/greythr-lite/hrms-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	AdminSummary(w http.ResponseWriter, r *http.Request)
	EmployeeSummary(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &DashboardHandlerImpl{dashboardService: dashboardService}
}

// AdminSummary implements DashboardHandler.
func (h *DashboardHandlerImpl) AdminSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboardService.AdminSummary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// EmployeeSummary implements DashboardHandler.
func (h *DashboardHandlerImpl) EmployeeSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboardService.EmployeeSummary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}
