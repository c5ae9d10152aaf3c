package handlers

import (
	"net/http"

	"github.com/Collinul/home-task-management-sub001/internal/auth"
	"github.com/Collinul/home-task-management-sub001/internal/dto"
	"github.com/Collinul/home-task-management-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	svc *service.DashboardService
}

func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Stats godoc
// @Summary      Dashboard aggregate for the caller
// @Tags         dashboard
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.DashboardStatsResponse
// @Failure      500  {object}  map[string]string
// @Router       /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute dashboard stats"})
		return
	}
	c.JSON(http.StatusOK, dto.FromDashboardStats(stats))
}
