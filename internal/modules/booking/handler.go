package booking

import (
	"errors"
	"net/http"

	"hotelbooking/internal/backend"
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
	booking := rg.Group("/booking")
	{
		booking.POST("/validate", h.Validate)
		booking.POST("/quote", h.Quote)
		booking.POST("/submit", h.Submit)
	}
}

func (h *Handler) Validate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	sel, err := h.service.Validate(req.Start, req.End, tariffKind(req.Kind))
	if err != nil {
		if errors.Is(err, ErrNoTariff) {
			response.Success(c, http.StatusOK, ValidateResponse{Status: DraftIdle})
			return
		}
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, ValidateResponse{Status: DraftPriced, Selection: sel})
}

func (h *Handler) Quote(c *gin.Context) {
	session, ok := auth.SessionFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	d := h.service.Quote(c.Request.Context(), session, req)
	if d.Status == DraftRemoteError {
		status := http.StatusBadGateway
		if d.Code == "BACKEND_UNAUTHORIZED" {
			status = http.StatusUnauthorized
		}
		response.ErrorWithDetails(c, status, d.Code, d.Message, gin.H{"draft": d.View()})
		return
	}

	response.Success(c, http.StatusOK, gin.H{"draft": d.View()})
}

func (h *Handler) Submit(c *gin.Context) {
	session, ok := auth.SessionFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	handoff, err := h.service.SubmitRequest(c.Request.Context(), session, req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"handoff": handoff})
}

type errorInfo struct {
	status  int
	code    string
	message string
}

// classify maps booking errors to the HTTP envelope and the websocket error
// event alike.
func classify(err error) errorInfo {
	if verr := IsValidationError(err); verr != nil {
		return errorInfo{http.StatusUnprocessableEntity, verr.Code, verr.Message}
	}

	switch {
	case errors.Is(err, ErrUnauthenticated):
		return errorInfo{http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required"}
	case errors.Is(err, ErrRoomNotFound):
		return errorInfo{http.StatusNotFound, "ROOM_NOT_FOUND", "Room not found"}
	case errors.Is(err, ErrRoomUnavailable):
		return errorInfo{http.StatusConflict, "ROOM_UNAVAILABLE", "The room is not available for booking"}
	case errors.Is(err, ErrIncompleteSelection):
		return errorInfo{http.StatusUnprocessableEntity, "INCOMPLETE_SELECTION", "Select dates and a tariff before booking"}
	case errors.Is(err, ErrTotalMissing):
		return errorInfo{http.StatusUnprocessableEntity, "TOTAL_MISSING", "Wait for the total to be calculated before booking"}
	case errors.Is(err, ErrInvalidDates):
		return errorInfo{http.StatusUnprocessableEntity, CodeInvalidDates, "Check-out must be after check-in"}
	case backend.IsUnauthorized(err):
		return errorInfo{http.StatusUnauthorized, "BACKEND_UNAUTHORIZED", "Session rejected by the booking service"}
	case backend.IsRemoteError(err) != nil:
		return errorInfo{http.StatusBadGateway, "BACKEND_ERROR", "Booking service unavailable"}
	default:
		return errorInfo{http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error"}
	}
}

func writeError(c *gin.Context, err error) {
	info := classify(err)
	if info.status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	if verr := IsValidationError(err); verr != nil && verr.Suggested != "" {
		response.ErrorWithDetails(c, info.status, info.code, info.message, gin.H{"suggested_kind": verr.Suggested})
		return
	}
	response.Error(c, info.status, info.code, info.message)
}
