package schedule

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/physiocare/physiocare-api/internal/handler"
	"github.com/physiocare/physiocare-api/internal/middleware"
	"github.com/physiocare/physiocare-api/internal/model"
	"github.com/physiocare/physiocare-api/internal/service/schedule"
)

type Handler struct {
	service *schedule.Service
	authMW  *middleware.AuthMiddleware
}

func NewHandler(service *schedule.Service, authMW *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, authMW: authMW}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	slots := r.Group("/slots")
	{
		slots.GET("", h.ListSlots)
		slots.POST("", h.authMW.RequireRoles(model.RoleTherapist, model.RoleAdmin), h.CreateSlot)
		slots.DELETE("/:id", h.authMW.RequireRoles(model.RoleTherapist, model.RoleAdmin), h.DeleteSlot)
	}

	leaves := r.Group("/leaves")
	{
		leaves.GET("", h.ListLeaves)
		leaves.POST("", h.authMW.RequireRoles(model.RoleTherapist, model.RoleAdmin), h.RequestLeave)
		leaves.POST("/:id/approve", h.authMW.RequireRoles(model.RoleAdmin), h.ApproveLeave)
	}

	coverage := r.Group("/coverage", h.authMW.RequireRoles(model.RoleTherapist))
	{
		coverage.GET("", h.ListCoverage)
		coverage.POST("", h.CreateCoverage)
		coverage.PUT("/:id", h.UpdateCoverage)
		coverage.DELETE("/:id", h.DeleteCoverage)
	}
}

func (h *Handler) CreateSlot(c *gin.Context) {
	therapistID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user ID"))
		return
	}

	var req model.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	// Admins may create slots on behalf of a therapist.
	if middleware.Role(c) == model.RoleAdmin && req.TherapistID != "" {
		id, err := uuid.Parse(req.TherapistID)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid therapist ID"))
			return
		}
		therapistID = id
	}

	slot, err := h.service.CreateSlot(c.Request.Context(), therapistID, &req)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(slot))
}

func (h *Handler) ListSlots(c *gin.Context) {
	filters := &model.SlotFilters{
		OnlyOpen: c.Query("open") == "true",
	}
	if raw := c.Query("therapist_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid therapist ID"))
			return
		}
		filters.TherapistID = id
	}
	if raw := c.Query("date"); raw != "" {
		date, err := time.Parse(model.DateOnly, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid date"))
			return
		}
		filters.Date = date
	}

	slots, err := h.service.ListSlots(c.Request.Context(), filters)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(slots))
}

func (h *Handler) DeleteSlot(c *gin.Context) {
	therapistID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user ID"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid slot ID"))
		return
	}

	if middleware.Role(c) == model.RoleAdmin {
		therapistID = uuid.Nil
	}

	if err := h.service.DeleteSlot(c.Request.Context(), id, therapistID); err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) RequestLeave(c *gin.Context) {
	therapistID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user ID"))
		return
	}

	var req model.CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if middleware.Role(c) == model.RoleAdmin && req.TherapistID != "" {
		id, err := uuid.Parse(req.TherapistID)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid therapist ID"))
			return
		}
		therapistID = id
	}

	leave, err := h.service.RequestLeave(c.Request.Context(), therapistID, &req)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(leave))
}

func (h *Handler) ListLeaves(c *gin.Context) {
	var therapistID uuid.UUID
	if raw := c.Query("therapist_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid therapist ID"))
			return
		}
		therapistID = id
	} else if middleware.Role(c) == model.RoleTherapist {
		therapistID, _ = middleware.UserID(c)
	}

	leaves, err := h.service.ListLeaves(c.Request.Context(), therapistID)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(leaves))
}

func (h *Handler) ApproveLeave(c *gin.Context) {
	approverID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user ID"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid leave ID"))
		return
	}

	if err := h.service.ApproveLeave(c.Request.Context(), id, approverID); err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) CreateCoverage(c *gin.Context) {
	therapistID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user ID"))
		return
	}

	var req model.CreateCoverageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	coverage, err := h.service.CreateCoverage(c.Request.Context(), therapistID, &req)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(coverage))
}

func (h *Handler) ListCoverage(c *gin.Context) {
	therapistID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user ID"))
		return
	}

	areas, err := h.service.ListCoverage(c.Request.Context(), therapistID)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(areas))
}

func (h *Handler) UpdateCoverage(c *gin.Context) {
	therapistID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user ID"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid coverage ID"))
		return
	}

	var req model.UpdateCoverageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	coverage, err := h.service.UpdateCoverage(c.Request.Context(), id, therapistID, &req)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(coverage))
}

func (h *Handler) DeleteCoverage(c *gin.Context) {
	therapistID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user ID"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid coverage ID"))
		return
	}

	if err := h.service.DeleteCoverage(c.Request.Context(), id, therapistID); err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
