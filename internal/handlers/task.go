package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Collinul/home-task-management-sub001/internal/auth"
	dom "github.com/Collinul/home-task-management-sub001/internal/domain"
	"github.com/Collinul/home-task-management-sub001/internal/dto"
	"github.com/Collinul/home-task-management-sub001/internal/repo"
	"github.com/Collinul/home-task-management-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// List godoc
// @Summary      List visible tasks
// @Tags         tasks
// @Produce      json
// @Security     CookieAuth
// @Param        status        query  string  false  "all | pending | completed"
// @Param        priority      query  string  false  "low | medium | high"
// @Param        category_id   query  int     false  "Filter by category"
// @Param        household_id  query  int     false  "Filter by household"
// @Param        limit         query  int     false  "Page size (default 20, max 100)"
// @Param        offset        query  int     false  "Page offset"
// @Success      200  {object}  dto.ListTasksResponse
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	var q dto.ListTasksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	page, err := h.svc.List(c.Request.Context(), auth.UserIDFromContext(c), repo.TaskFilter{
		Status:      q.Status,
		Priority:    dom.Priority(q.Priority),
		CategoryID:  q.CategoryID,
		HouseholdID: q.HouseholdID,
		Limit:       q.Limit,
		Offset:      q.Offset,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tasks"})
		return
	}
	c.JSON(http.StatusOK, dto.ListTasksResponse{
		Items:   dto.FromTasks(page.Items),
		Total:   page.Total,
		HasMore: page.HasMore,
	})
}

// Create godoc
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.CreateTaskRequest  true  "Task body"
// @Success      201   {object}  dto.TaskResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in := service.CreateTaskInput{
		Title:            req.Title,
		Description:      req.Description,
		DueDate:          req.DueDate.Ptr(),
		Priority:         dom.Priority(req.Priority),
		CategoryID:       req.CategoryID,
		HouseholdID:      req.HouseholdID,
		AssignedToID:     req.AssignedToID,
		EstimatedMinutes: req.EstimatedMinutes,
	}
	if req.Recurrence != nil {
		in.Recurrence = &dom.RecurrenceRule{
			Frequency:      req.Recurrence.Frequency,
			Interval:       req.Recurrence.Interval,
			DaysOfWeek:     req.Recurrence.DaysOfWeek,
			EndDate:        req.Recurrence.EndDate,
			MaxOccurrences: req.Recurrence.MaxOccurrences,
		}
	}
	t, err := h.svc.Create(c.Request.Context(), auth.UserIDFromContext(c), in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrHouseholdAccess), errors.Is(err, service.ErrCategoryAccess):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create task"})
		}
		return
	}
	c.JSON(http.StatusCreated, dto.FromTask(t))
}

// GetByID godoc
// @Summary      Get a task with related records
// @Tags         tasks
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  dto.TaskDetailResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	detail, err := h.svc.Get(c.Request.Context(), auth.UserIDFromContext(c), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load task"})
		return
	}
	c.JSON(http.StatusOK, taskDetailToResponse(detail))
}

// Update godoc
// @Summary      Partially update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      int  true  "Task ID"
// @Param        body  body      dto.UpdateTaskRequest  true  "Partial update"
// @Success      200   {object}  dto.TaskResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /tasks/{id} [patch]
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	patch := dom.TaskPatch{
		Title:            req.Title,
		Description:      req.Description,
		IsCompleted:      req.IsCompleted,
		EstimatedMinutes: req.EstimatedMinutes,
		ActualMinutes:    req.ActualMinutes,
		CategoryID:       req.CategoryID,
		AssignedToID:     req.AssignedToID,
	}
	if req.DueDate != nil {
		patch.DueDate = req.DueDate.Ptr()
	}
	if req.Priority != nil {
		p := dom.Priority(*req.Priority)
		patch.Priority = &p
	}
	t, err := h.svc.Update(c.Request.Context(), auth.UserIDFromContext(c), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrCategoryAccess):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update task"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.FromTask(t))
}

// Delete godoc
// @Summary      Delete a task
// @Tags         tasks
// @Security     CookieAuth
// @Param        id   path  int  true  "Task ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	err := h.svc.Delete(c.Request.Context(), auth.UserIDFromContext(c), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		case errors.Is(err, service.ErrAdminRequired):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete task"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// Upcoming godoc
// @Summary      Nearest incomplete tasks with relative due labels
// @Tags         tasks
// @Produce      json
// @Security     CookieAuth
// @Param        limit  query  int  false  "Number of tasks (default 5, max 50)"
// @Success      200  {object}  dto.UpcomingTasksResponse
// @Failure      500  {object}  map[string]string
// @Router       /tasks/upcoming [get]
func (h *TaskHandler) Upcoming(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	list, err := h.svc.Upcoming(c.Request.Context(), auth.UserIDFromContext(c), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list upcoming tasks"})
		return
	}
	items := make([]dto.UpcomingTaskResponse, len(list))
	for i, u := range list {
		items[i] = dto.UpcomingTaskResponse{TaskResponse: dto.FromTask(u.Task), DueLabel: u.DueLabel}
	}
	c.JSON(http.StatusOK, dto.UpcomingTasksResponse{Items: items})
}

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func taskDetailToResponse(d dom.TaskDetail) dto.TaskDetailResponse {
	resp := dto.TaskDetailResponse{
		TaskResponse: dto.FromTask(d.Task),
		Category:     dto.FromCategory(d.Category),
		History:      make([]dto.TaskHistoryResponse, len(d.History)),
	}
	for i, h := range d.History {
		resp.History[i] = dto.TaskHistoryResponse{
			ID:        h.ID,
			UserID:    h.UserID,
			Action:    h.Action,
			CreatedAt: h.CreatedAt,
		}
	}
	if d.Household != nil {
		hh := dto.FromHousehold(*d.Household)
		resp.Household = &hh
	}
	if d.Assignee != nil {
		u := dto.FromUser(*d.Assignee)
		resp.Assignee = &u
	}
	if d.Recurrence != nil {
		resp.Recurrence = &dto.RecurrenceRuleResponse{
			Frequency:      d.Recurrence.Frequency,
			Interval:       d.Recurrence.Interval,
			DaysOfWeek:     d.Recurrence.DaysOfWeek,
			EndDate:        d.Recurrence.EndDate,
			MaxOccurrences: d.Recurrence.MaxOccurrences,
		}
	}
	return resp
}
