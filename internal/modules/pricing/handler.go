package pricing

import (
	"errors"
	"net/http"
	"strconv"

	"hotelbooking/internal/backend"
	"hotelbooking/internal/modules/booking"
	"hotelbooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Mount registers every backend route under /api. authMW guards all of them
// except login.
func (h *Handler) Mount(r gin.IRouter, authMW gin.HandlerFunc) {
	api := r.Group("/api")
	h.RegisterPublicRoutes(api)

	protected := api.Group("")
	protected.Use(authMW)
	h.RegisterProtectedRoutes(protected)
}

// RegisterPublicRoutes mounts the login endpoint. rg is the /api group.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", h.Login)
}

// RegisterProtectedRoutes mounts the endpoints that need a bearer token.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/detallesHabitacion/detalles/:id", h.RoomDetail)
	rg.GET("/habitaciones", h.Rooms)
	rg.GET("/promociones/stats", h.PromotionStats)
	rg.GET("/hoteles", h.Hotels)
	rg.POST("/reservas/calculate-total", h.CalculateTotal)
}

func (h *Handler) Login(c *gin.Context) {
	var req backend.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "email and password are required")
		return
	}

	out, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Login failed")
		return
	}

	c.JSON(http.StatusOK, out)
}

func (h *Handler) RoomDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room ID")
		return
	}

	out, err := h.service.RoomDetail(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) Rooms(c *gin.Context) {
	out, err := h.service.Rooms(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) PromotionStats(c *gin.Context) {
	out, err := h.service.PromotionStats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) Hotels(c *gin.Context) {
	out, err := h.service.Hotels(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) CalculateTotal(c *gin.Context) {
	var req backend.CalculateTotalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	out, err := h.service.CalculateTotal(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func writeError(c *gin.Context, err error) {
	if verr := booking.IsValidationError(err); verr != nil {
		response.Error(c, http.StatusUnprocessableEntity, verr.Code, verr.Message)
		return
	}

	switch {
	case errors.Is(err, ErrRoomNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
	case errors.Is(err, ErrPriceNotSet):
		response.Error(c, http.StatusUnprocessableEntity, "PRICE_NOT_SET", "Room has no price for this tariff")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
