package analytics

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/physiocare/physiocare-api/internal/handler"
	"github.com/physiocare/physiocare-api/internal/middleware"
	"github.com/physiocare/physiocare-api/internal/model"
	"github.com/physiocare/physiocare-api/internal/service/analytics"
)

type Handler struct {
	service *analytics.Service
	authMW  *middleware.AuthMiddleware
}

func NewHandler(service *analytics.Service, authMW *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, authMW: authMW}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/analytics")
	{
		group.POST("/reports", h.authMW.RequireRoles(model.RoleAdmin), h.CreateReport)
		group.GET("/reports/therapists/:id", h.authMW.RequireRoles(model.RoleAdmin, model.RoleTherapist), h.ListReportsForTherapist)
		group.POST("/predictions", h.authMW.RequireRoles(model.RoleAdmin), h.CreatePrediction)
		group.GET("/predictions", h.authMW.RequireRoles(model.RoleAdmin, model.RoleTherapist), h.ListPredictions)
	}
}

func (h *Handler) CreateReport(c *gin.Context) {
	var req model.CreateAnalyticsReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	report, err := h.service.CreateReport(c.Request.Context(), &req)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(report))
}

func (h *Handler) ListReportsForTherapist(c *gin.Context) {
	therapistID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid therapist ID"))
		return
	}

	if middleware.Role(c) == model.RoleTherapist {
		callerID, _ := middleware.UserID(c)
		if callerID != therapistID {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("therapists may only view their own reports"))
			return
		}
	}

	reports, err := h.service.ListReportsForTherapist(c.Request.Context(), therapistID)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(reports))
}

func (h *Handler) CreatePrediction(c *gin.Context) {
	var req model.CreateRecoveryPredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	prediction, err := h.service.CreatePrediction(c.Request.Context(), &req)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(prediction))
}

func (h *Handler) ListPredictions(c *gin.Context) {
	predictions, err := h.service.ListPredictions(c.Request.Context())
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(predictions))
}
