package handlers

import (
	"net/http"

	"github.com/Collinul/home-task-management-sub001/internal/auth"
	"github.com/Collinul/home-task-management-sub001/internal/repo"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	repo repo.HealthRepo
}

func NewHealthHandler(r repo.HealthRepo) *HealthHandler {
	return &HealthHandler{repo: r}
}

// Check godoc
// @Summary      Per-user health check
// @Description  Reports the caller's entity counts, or unhealthy on database failure.
// @Tags         meta
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	snap, err := h.repo.Snapshot(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"tasks":      snap.Tasks,
		"categories": snap.Categories,
		"households": snap.Households,
	})
}
