package handlers

import (
	"errors"
	"net/http"

	"github.com/Collinul/home-task-management-sub001/internal/auth"
	dom "github.com/Collinul/home-task-management-sub001/internal/domain"
	"github.com/Collinul/home-task-management-sub001/internal/dto"
	"github.com/Collinul/home-task-management-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type HouseholdHandler struct {
	svc *service.HouseholdService
}

func NewHouseholdHandler(svc *service.HouseholdService) *HouseholdHandler {
	return &HouseholdHandler{svc: svc}
}

// List godoc
// @Summary      List the caller's households
// @Tags         households
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.ListHouseholdsResponse
// @Failure      500  {object}  map[string]string
// @Router       /households [get]
func (h *HouseholdHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list households"})
		return
	}
	items := make([]dto.HouseholdResponse, len(list))
	for i, d := range list {
		items[i] = dto.FromHouseholdDetail(d)
	}
	c.JSON(http.StatusOK, dto.ListHouseholdsResponse{Items: items})
}

// Create godoc
// @Summary      Create a household
// @Description  The caller becomes the first member with role admin.
// @Tags         households
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.CreateHouseholdRequest  true  "Household body"
// @Success      201   {object}  dto.HouseholdResponse
// @Failure      400   {object}  map[string]string
// @Router       /households [post]
func (h *HouseholdHandler) Create(c *gin.Context) {
	var req dto.CreateHouseholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	hh, err := h.svc.Create(c.Request.Context(), auth.UserIDFromContext(c), req.Name, req.Description)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create household"})
		return
	}
	c.JSON(http.StatusCreated, dto.FromHousehold(hh))
}

// Invite godoc
// @Summary      Invite a registered user into a household
// @Description  Caller must be an admin member. Inviting an email with no
// @Description  account is not implemented and answers 501.
// @Tags         households
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.InviteMemberRequest  true  "Invite body"
// @Success      201   {object}  dto.MemberResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      501   {object}  map[string]string
// @Router       /households/invite [post]
func (h *HouseholdHandler) Invite(c *gin.Context) {
	var req dto.InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m, err := h.svc.Invite(c.Request.Context(), auth.UserIDFromContext(c),
		req.Email, req.HouseholdID, dom.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrHouseholdAccess), errors.Is(err, service.ErrAdminRequired):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrAlreadyMember):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInviteUnregistered):
			c.JSON(http.StatusNotImplemented, gin.H{
				"error":    err.Error(),
				"guidance": service.InviteGuidance,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to invite member"})
		}
		return
	}
	c.JSON(http.StatusCreated, dto.MemberResponse{
		UserID:   m.UserID,
		Role:     string(m.Role),
		JoinedAt: m.JoinedAt,
	})
}
