package billing

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/physiocare/physiocare-api/internal/handler"
	"github.com/physiocare/physiocare-api/internal/middleware"
	"github.com/physiocare/physiocare-api/internal/model"
	"github.com/physiocare/physiocare-api/internal/service/billing"
)

type Handler struct {
	service *billing.Service
	authMW  *middleware.AuthMiddleware
}

func NewHandler(service *billing.Service, authMW *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, authMW: authMW}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	payments := r.Group("/payments")
	{
		payments.POST("/checkout", h.authMW.RequireRoles(model.RoleTherapist, model.RoleAdmin), h.Checkout)
		payments.GET("/:id", h.GetPayment)
		payments.GET("/appointments/:id", h.ListForAppointment)
	}

	coupons := r.Group("/coupons")
	{
		coupons.POST("", h.authMW.RequireRoles(model.RoleAdmin), h.CreateCoupon)
		coupons.GET("", h.authMW.RequireRoles(model.RoleAdmin, model.RoleSupportStaff), h.ListCoupons)
		coupons.POST("/:code/apply", h.ApplyCoupon)
	}
}

// RegisterPublicRoutes mounts the gateway callback, which arrives
// unauthenticated from the provider.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/payments/callback", h.Callback)
}

func (h *Handler) Checkout(c *gin.Context) {
	therapistID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user ID"))
		return
	}

	// Admins initiate payments for any appointment.
	if middleware.Role(c) == model.RoleAdmin {
		therapistID = uuid.Nil
	}

	var req model.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	checkout, err := h.service.InitiateCheckout(c.Request.Context(), therapistID, &req)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(checkout))
}

func (h *Handler) Callback(c *gin.Context) {
	var cb model.GatewayCallback
	if err := c.ShouldBind(&cb); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	payment, err := h.service.HandleCallback(c.Request.Context(), &cb)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(payment))
}

func (h *Handler) GetPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid payment ID"))
		return
	}

	payment, err := h.service.GetPayment(c.Request.Context(), id)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(payment))
}

func (h *Handler) ListForAppointment(c *gin.Context) {
	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	payments, err := h.service.ListPaymentsForAppointment(c.Request.Context(), appointmentID)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(payments))
}

func (h *Handler) CreateCoupon(c *gin.Context) {
	var req model.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	coupon, err := h.service.CreateCoupon(c.Request.Context(), &req)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(coupon))
}

func (h *Handler) ApplyCoupon(c *gin.Context) {
	var req model.ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	resp, err := h.service.ApplyCoupon(c.Request.Context(), c.Param("code"), req.Amount)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(resp))
}

func (h *Handler) ListCoupons(c *gin.Context) {
	coupons, err := h.service.ListCoupons(c.Request.Context())
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(coupons))
}
