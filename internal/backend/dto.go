package backend

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"hotelbooking/internal/domain"
)

const (
	PathLogin          = "/api/auth/login"
	PathRoomDetail     = "/api/detallesHabitacion/detalles/"
	PathCalculateTotal = "/api/reservas/calculate-total"
	PathRooms          = "/api/habitaciones"
	PathPromotionStats = "/api/promociones/stats"
	PathHotels         = "/api/hoteles"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

type UserDTO struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
	Rol    string `json:"rol"`
}

type RoomDTO struct {
	ID               int64        `json:"id"`
	IDHotel          int64        `json:"id_hotel"`
	Numero           string       `json:"numero"`
	IDTipoHabitacion int64        `json:"id_tipo_habitacion"`
	TipoHabitacion   string       `json:"tipo_habitacion,omitempty"`
	Estado           string       `json:"estado"`
	PrecioHora       domain.Price `json:"precio_hora"`
	PrecioDia        domain.Price `json:"precio_dia"`
	PrecioNoche      domain.Price `json:"precio_noche"`
	PrecioSemana     domain.Price `json:"precio_semana"`
	Imagenes         []string     `json:"imagenes,omitempty"`
}

type PromotionDTO struct {
	ID                  int64   `json:"id"`
	IDHotel             int64   `json:"id_hotel"`
	Titulo              string  `json:"titulo,omitempty"`
	PorcentajeDescuento float64 `json:"porcentaje_descuento"`
	FechaInicio         string  `json:"fecha_inicio"`
	FechaFin            string  `json:"fecha_fin"`
}

type RoomDetailResponse struct {
	Habitacion RoomDTO       `json:"habitacion"`
	Promocion  *PromotionDTO `json:"promocion"`
}

type CalculateTotalRequest struct {
	IDHabitacion int64  `json:"id_habitacion"`
	FechaInicio  string `json:"fechainicio"`
	FechaFin     string `json:"fechafin"`
	TipoTarifa   string `json:"tipo_tarifa"`
}

type CalculateTotalResponse struct {
	TotalPagar   json.Number     `json:"totalpagar"`
	PriceDetails json.RawMessage `json:"priceDetails,omitempty"`
}

type HotelDTO struct {
	ID        int64  `json:"id"`
	Nombre    string `json:"nombre"`
	Direccion string `json:"direccion,omitempty"`
	Ciudad    string `json:"ciudad,omitempty"`
	Telefono  string `json:"telefono,omitempty"`
	Email     string `json:"email,omitempty"`
}

type PromotionStatsDTO struct {
	Total             int64   `json:"total"`
	Activas           int64   `json:"activas"`
	DescuentoMaximo   float64 `json:"descuento_maximo"`
	DescuentoPromedio float64 `json:"descuento_promedio"`
}

// Quote is the backend-computed total for a stay.
type Quote struct {
	Amount  float64
	Details json.RawMessage
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate reads the date formats the backend uses for promotion windows.
// Values without an offset are interpreted in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

func (r RoomDTO) ToDomain() domain.Room {
	status, err := domain.ParseRoomStatus(r.Estado)
	if err != nil {
		status = domain.RoomUnavailable
	}
	return domain.Room{
		ID:         r.ID,
		HotelID:    r.IDHotel,
		Number:     r.Numero,
		RoomTypeID: r.IDTipoHabitacion,
		RoomType:   r.TipoHabitacion,
		Status:     status,
		Prices: domain.UnitPrices{
			Hour:  r.PrecioHora,
			Day:   r.PrecioDia,
			Night: r.PrecioNoche,
			Week:  r.PrecioSemana,
		},
		Images: r.Imagenes,
	}
}

func (p PromotionDTO) ToDomain(loc *time.Location) (*domain.Promotion, error) {
	start, err := ParseDate(p.FechaInicio, loc)
	if err != nil {
		return nil, fmt.Errorf("fecha_inicio: %w", err)
	}
	end, err := ParseDate(p.FechaFin, loc)
	if err != nil {
		return nil, fmt.Errorf("fecha_fin: %w", err)
	}
	promo := &domain.Promotion{
		ID:              p.ID,
		HotelID:         p.IDHotel,
		Title:           p.Titulo,
		DiscountPercent: p.PorcentajeDescuento,
		StartDate:       start,
		EndDate:         end,
	}
	if err := promo.Validate(); err != nil {
		return nil, err
	}
	return promo, nil
}

func (h HotelDTO) ToDomain() domain.Hotel {
	return domain.Hotel{
		ID:      h.ID,
		Name:    h.Nombre,
		Address: h.Direccion,
		City:    h.Ciudad,
		Phone:   h.Telefono,
		Email:   h.Email,
	}
}

func (s PromotionStatsDTO) ToDomain() domain.PromotionStats {
	return domain.PromotionStats{
		Total:           s.Total,
		Active:          s.Activas,
		MaxDiscount:     s.DescuentoMaximo,
		AverageDiscount: s.DescuentoPromedio,
	}
}
