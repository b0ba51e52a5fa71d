package support

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/physiocare/physiocare-api/internal/handler"
	"github.com/physiocare/physiocare-api/internal/middleware"
	"github.com/physiocare/physiocare-api/internal/model"
	"github.com/physiocare/physiocare-api/internal/service/support"
)

type Handler struct {
	service *support.Service
	authMW  *middleware.AuthMiddleware
}

func NewHandler(service *support.Service, authMW *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, authMW: authMW}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	emergencies := r.Group("/emergencies")
	{
		emergencies.POST("", h.authMW.RequireRoles(model.RolePatient), h.CreateEmergency)
		emergencies.GET("", h.authMW.RequireRoles(model.RoleAdmin, model.RoleSupportStaff, model.RoleTherapist), h.ListEmergencies)
		emergencies.GET("/:id", h.GetEmergency)
		emergencies.PUT("/:id", h.authMW.RequireRoles(model.RoleAdmin, model.RoleSupportStaff), h.UpdateEmergency)
	}

	chat := r.Group("/chat")
	{
		chat.POST("", h.SendMessage)
		chat.GET("/:userID", h.ListConversation)
		chat.DELETE("/:id", h.DeleteMessage)
	}

	tickets := r.Group("/tickets")
	{
		tickets.POST("", h.CreateTicket)
		tickets.GET("", h.ListTickets)
		tickets.GET("/:id", h.GetTicket)
		tickets.PUT("/:id", h.authMW.RequireRoles(model.RoleAdmin, model.RoleSupportStaff), h.UpdateTicket)
	}

	reminders := r.Group("/reminders")
	{
		reminders.POST("", h.authMW.RequireRoles(model.RoleTherapist, model.RoleAdmin), h.CreateReminder)
		reminders.GET("/mine", h.authMW.RequireRoles(model.RolePatient), h.ListMyReminders)
		reminders.POST("/:id/complete", h.authMW.RequireRoles(model.RolePatient), h.CompleteReminder)
	}
}

func (h *Handler) CreateEmergency(c *gin.Context) {
	patientID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user ID"))
		return
	}

	var req model.CreateEmergencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	er, err := h.service.CreateEmergency(c.Request.Context(), patientID, &req)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(er))
}

func (h *Handler) GetEmergency(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid emergency ID"))
		return
	}

	er, err := h.service.GetEmergency(c.Request.Context(), id)
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	if middleware.Role(c) == model.RolePatient {
		callerID, _ := middleware.UserID(c)
		if er.PatientID != callerID {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("emergency request belongs to another patient"))
			return
		}
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(er))
}

func (h *Handler) UpdateEmergency(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid emergency ID"))
		return
	}

	var req model.UpdateEmergencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	er, err := h.service.UpdateEmergency(c.Request.Context(), id, &req)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(er))
}

func (h *Handler) ListEmergencies(c *gin.Context) {
	status := model.EmergencyStatus(c.Query("status"))
	emergencies, err := h.service.ListEmergencies(c.Request.Context(), status)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(emergencies))
}

func (h *Handler) SendMessage(c *gin.Context) {
	senderID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user ID"))
		return
	}

	var req model.SendChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	msg, err := h.service.SendChatMessage(c.Request.Context(), senderID, &req)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(msg))
}

func (h *Handler) ListConversation(c *gin.Context) {
	callerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user ID"))
		return
	}

	otherID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid user ID"))
		return
	}

	messages, err := h.service.ListConversation(c.Request.Context(), callerID, otherID)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(messages))
}

func (h *Handler) DeleteMessage(c *gin.Context) {
	callerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user ID"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid message ID"))
		return
	}

	if err := h.service.DeleteChatMessage(c.Request.Context(), id, callerID); err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) CreateTicket(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user ID"))
		return
	}

	var req model.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	ticket, err := h.service.CreateTicket(c.Request.Context(), userID, &req)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(ticket))
}

func (h *Handler) GetTicket(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid ticket ID"))
		return
	}

	ticket, err := h.service.GetTicket(c.Request.Context(), id)
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	role := middleware.Role(c)
	if role != model.RoleAdmin && role != model.RoleSupportStaff {
		callerID, _ := middleware.UserID(c)
		if ticket.UserID != callerID {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("ticket belongs to another user"))
			return
		}
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(ticket))
}

func (h *Handler) UpdateTicket(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid ticket ID"))
		return
	}

	var req model.UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	ticket, err := h.service.UpdateTicket(c.Request.Context(), id, &req)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(ticket))
}

// ListTickets scopes to the caller unless staff ask for everything.
func (h *Handler) ListTickets(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user ID"))
		return
	}

	role := middleware.Role(c)
	if (role == model.RoleAdmin || role == model.RoleSupportStaff) && c.Query("all") == "true" {
		userID = uuid.Nil
	}

	tickets, err := h.service.ListTickets(c.Request.Context(), userID)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(tickets))
}

func (h *Handler) CreateReminder(c *gin.Context) {
	var req model.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	reminder, err := h.service.CreateReminder(c.Request.Context(), &req)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(reminder))
}

func (h *Handler) ListMyReminders(c *gin.Context) {
	patientID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user ID"))
		return
	}

	reminders, err := h.service.ListRemindersForPatient(c.Request.Context(), patientID)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(reminders))
}

func (h *Handler) CompleteReminder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid reminder ID"))
		return
	}

	if err := h.service.CompleteReminder(c.Request.Context(), id); err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
