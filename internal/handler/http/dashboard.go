package http

import (
	"net/http"

	"github.com/rovicpogi/Stoninonew/internal/domain/dashboard"
	"github.com/rovicpogi/Stoninonew/internal/handler/http/response"
	"github.com/rovicpogi/Stoninonew/internal/pkg/session"
)

type DashboardHandler interface {
	// GetAdminStats returns school-wide counts and today's attendance rate
	GetAdminStats(w http.ResponseWriter, r *http.Request)
	// GetTeacherStats returns counts for the signed-in teacher
	GetTeacherStats(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetAdminStats handles GET /admin/stats
func (h *dashboardHandlerImpl) GetAdminStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetAdminStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetTeacherStats handles GET /teacher/stats
func (h *dashboardHandlerImpl) GetTeacherStats(w http.ResponseWriter, r *http.Request) {
	s, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dashboardService.GetTeacherStats(r.Context(), s.TeacherID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
