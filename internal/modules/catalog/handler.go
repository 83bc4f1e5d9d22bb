package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"hotelbooking/internal/backend"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/modules/auth"
	"hotelbooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/rooms", h.GetRooms)
	rg.GET("/rooms/:id", h.GetRoom)
	rg.GET("/hotels", h.GetHotels)
}

// GetRooms handles GET /api/v1/rooms?hotel_id=&status=&available=
func (h *Handler) GetRooms(c *gin.Context) {
	session, ok := auth.SessionFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var f RoomFilters
	if hotelID := c.Query("hotel_id"); hotelID != "" {
		val, err := strconv.ParseInt(hotelID, 10, 64)
		if err != nil || val <= 0 {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid hotel_id")
			return
		}
		f.HotelID = val
	}
	if status := c.Query("status"); status != "" {
		parsed, err := domain.ParseRoomStatus(status)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid status")
			return
		}
		f.Status = parsed
	}
	if available := c.Query("available"); available != "" {
		val, err := strconv.ParseBool(available)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid available flag")
			return
		}
		f.AvailableOnly = val
	}

	page, err := h.service.ListRooms(c.Request.Context(), session, f)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// GetRoom handles GET /api/v1/rooms/:id
func (h *Handler) GetRoom(c *gin.Context) {
	session, ok := auth.SessionFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room ID")
		return
	}

	room, err := h.service.GetRoom(c.Request.Context(), session, id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
}

// GetHotels handles GET /api/v1/hotels
func (h *Handler) GetHotels(c *gin.Context) {
	session, ok := auth.SessionFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	hotels, err := h.service.ListHotels(c.Request.Context(), session)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hotels": hotels})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
	case errors.Is(err, ErrRoomNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
	case backend.IsUnauthorized(err):
		response.Error(c, http.StatusUnauthorized, "BACKEND_UNAUTHORIZED", "Session rejected by the catalog service")
	case backend.IsRemoteError(err) != nil:
		_ = c.Error(err)
		response.Error(c, http.StatusBadGateway, "BACKEND_ERROR", "Catalog service unavailable")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load catalog")
	}
}
