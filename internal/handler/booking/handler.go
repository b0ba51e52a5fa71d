package booking

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/physiocare/physiocare-api/internal/handler"
	"github.com/physiocare/physiocare-api/internal/middleware"
	"github.com/physiocare/physiocare-api/internal/model"
	"github.com/physiocare/physiocare-api/internal/service/booking"
)

type Handler struct {
	service *booking.Service
	authMW  *middleware.AuthMiddleware
}

func NewHandler(service *booking.Service, authMW *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, authMW: authMW}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.authMW.RequireRoles(model.RolePatient), h.Book)
		appointments.GET("", h.List)
		appointments.GET("/:id", h.Get)
		appointments.PUT("/:id", h.authMW.RequireRoles(model.RoleTherapist, model.RoleAdmin, model.RoleSupportStaff), h.Update)
		appointments.POST("/:id/cancel", h.Cancel)
	}
}

func (h *Handler) Book(c *gin.Context) {
	patientID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user ID"))
		return
	}

	var req model.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	appointment, err := h.service.Book(c.Request.Context(), patientID, &req)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(appointment))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	appointment, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	if !h.canAccess(c, appointment) {
		c.JSON(http.StatusForbidden, handler.NewErrorResponse("insufficient permissions"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointment))
}

// List scopes results to the caller: patients see their own bookings,
// therapists their own schedule, staff everything.
func (h *Handler) List(c *gin.Context) {
	filters := &model.AppointmentFilters{
		Status: model.BookingStatus(c.Query("status")),
	}

	callerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user ID"))
		return
	}

	switch middleware.Role(c) {
	case model.RolePatient:
		filters.PatientID = callerID
	case model.RoleTherapist:
		filters.TherapistID = callerID
	default:
		if raw := c.Query("patient_id"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
				return
			}
			filters.PatientID = id
		}
		if raw := c.Query("therapist_id"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid therapist ID"))
				return
			}
			filters.TherapistID = id
		}
	}

	appointments, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	// Therapists are scoped to their own appointments, staff see all.
	therapistID := uuid.Nil
	if middleware.Role(c) == model.RoleTherapist {
		callerID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user ID"))
			return
		}
		therapistID = callerID
	}

	appointment, err := h.service.Update(c.Request.Context(), id, therapistID, &req)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointment))
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	appointment, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	if !h.canAccess(c, appointment) {
		c.JSON(http.StatusForbidden, handler.NewErrorResponse("insufficient permissions"))
		return
	}

	cancelled, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(cancelled))
}

func (h *Handler) canAccess(c *gin.Context, appointment *model.Appointment) bool {
	callerID, ok := middleware.UserID(c)
	if !ok {
		return false
	}
	switch middleware.Role(c) {
	case model.RoleAdmin, model.RoleSupportStaff:
		return true
	case model.RolePatient:
		return appointment.PatientID == callerID
	case model.RoleTherapist:
		return appointment.TherapistID == callerID
	}
	return false
}
