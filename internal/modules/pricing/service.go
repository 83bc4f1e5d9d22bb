package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"hotelbooking/internal/backend"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/modules/booking"
	"hotelbooking/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service implements the REST backend the gateway talks to. It exists for
// local development and integration tests.
type Service struct {
	users      UserStore
	rooms      RoomStore
	promotions PromotionStore
	hotels     HotelStore
	tokens     TokenIssuer
	selector   *booking.TariffSelector
	loc        *time.Location
	now        func() time.Time
	loggerf    func(format string, args ...interface{})
}

func NewService(
	users UserStore,
	rooms RoomStore,
	promotions PromotionStore,
	hotels HotelStore,
	tokens TokenIssuer,
	loc *time.Location,
	loggerf func(format string, args ...interface{}),
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		users:      users,
		rooms:      rooms,
		promotions: promotions,
		hotels:     hotels,
		tokens:     tokens,
		selector:   booking.NewTariffSelector(loc),
		loc:        loc,
		now:        time.Now,
		loggerf:    loggerf,
	}
}

func (s *Service) Login(ctx context.Context, req backend.LoginRequest) (*backend.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, string(user.Role), user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &backend.LoginResponse{
		Token: token,
		User: backend.UserDTO{
			ID:     user.ID,
			Nombre: user.Name,
			Email:  user.Email,
			Rol:    string(user.Role),
		},
	}, nil
}

func (s *Service) RoomDetail(ctx context.Context, roomID int64) (*backend.RoomDetailResponse, error) {
	room, err := s.getRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	promo, err := s.promotions.ActiveForHotel(ctx, room.HotelID, s.now())
	if err != nil {
		return nil, fmt.Errorf("active promotion: %w", err)
	}

	out := &backend.RoomDetailResponse{Habitacion: toRoomDTO(*room)}
	if promo != nil {
		dto := toPromotionDTO(*promo, s.loc)
		out.Promocion = &dto
	}
	return out, nil
}

func (s *Service) Rooms(ctx context.Context) ([]backend.RoomDTO, error) {
	rooms, err := s.rooms.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	out := make([]backend.RoomDTO, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toRoomDTO(r))
	}
	return out, nil
}

func (s *Service) PromotionStats(ctx context.Context) (*backend.PromotionStatsDTO, error) {
	stats, err := s.promotions.Stats(ctx, s.now())
	if err != nil {
		return nil, err
	}
	return &backend.PromotionStatsDTO{
		Total:             stats.Total,
		Activas:           stats.Active,
		DescuentoMaximo:   round2(stats.MaxDiscount),
		DescuentoPromedio: round2(stats.AverageDiscount),
	}, nil
}

func (s *Service) Hotels(ctx context.Context) ([]backend.HotelDTO, error) {
	hotels, err := s.hotels.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]backend.HotelDTO, 0, len(hotels))
	for _, h := range hotels {
		out = append(out, backend.HotelDTO{
			ID:        h.ID,
			Nombre:    h.Name,
			Direccion: h.Address,
			Ciudad:    h.City,
			Telefono:  h.Phone,
			Email:     h.Email,
		})
	}
	return out, nil
}

// CalculateTotal prices a stay: units of the chosen tariff times the unit
// price after the hotel's active promotion, rounded to cents. The promotion
// is evaluated at request time, not at the stay's start.
func (s *Service) CalculateTotal(ctx context.Context, req backend.CalculateTotalRequest) (*backend.CalculateTotalResponse, error) {
	kind, err := domain.ParseTariffKind(req.TipoTarifa)
	if err != nil {
		kind = domain.TariffKind(req.TipoTarifa)
	}
	if kind == "" {
		return nil, &booking.ValidationError{Code: booking.CodeUnknownTariff, Message: "tipo_tarifa is required"}
	}

	sel, err := s.selector.ValidateAndCalculate(req.FechaInicio, req.FechaFin, kind)
	if err != nil {
		return nil, err
	}

	room, err := s.getRoom(ctx, req.IDHabitacion)
	if err != nil {
		return nil, err
	}

	unit, err := s.rooms.GetUnitPrice(ctx, room.ID, sel.Kind)
	if err != nil {
		if errors.Is(err, repository.ErrPriceNotSet) {
			return nil, ErrPriceNotSet
		}
		return nil, fmt.Errorf("unit price: %w", err)
	}

	promo, err := s.promotions.ActiveForHotel(ctx, room.HotelID, s.now())
	if err != nil {
		return nil, fmt.Errorf("active promotion: %w", err)
	}

	units := sel.Elapsed.Units(sel.Kind)
	details := PriceDetails{
		TipoTarifa:              sel.Kind,
		Unidades:                units,
		PrecioUnitario:          round2(unit),
		PrecioUnitarioDescuento: round2(unit),
	}
	if promo != nil {
		id := promo.ID
		details.IDPromocion = &id
		details.DescuentoPorcentaje = promo.DiscountPercent
		details.PrecioUnitarioDescuento = round2(unit * (1 - promo.DiscountPercent/100))
	}
	details.Subtotal = round2(float64(units) * details.PrecioUnitario)
	details.Total = round2(float64(units) * details.PrecioUnitarioDescuento)
	details.Descuento = round2(details.Subtotal - details.Total)

	raw, err := json.Marshal(details)
	if err != nil {
		return nil, err
	}

	s.loggerf("level=info msg=total calculated room_id=%d kind=%s units=%d total=%.2f", room.ID, sel.Kind, units, details.Total)

	return &backend.CalculateTotalResponse{
		TotalPagar:   json.Number(strconv.FormatFloat(details.Total, 'f', 2, 64)),
		PriceDetails: raw,
	}, nil
}

func (s *Service) getRoom(ctx context.Context, roomID int64) (*domain.Room, error) {
	if roomID <= 0 {
		return nil, ErrRoomNotFound
	}
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

func toRoomDTO(r domain.Room) backend.RoomDTO {
	return backend.RoomDTO{
		ID:               r.ID,
		IDHotel:          r.HotelID,
		Numero:           r.Number,
		IDTipoHabitacion: r.RoomTypeID,
		TipoHabitacion:   r.RoomType,
		Estado:           string(r.Status),
		PrecioHora:       r.Prices.Hour,
		PrecioDia:        r.Prices.Day,
		PrecioNoche:      r.Prices.Night,
		PrecioSemana:     r.Prices.Week,
		Imagenes:         r.Images,
	}
}

func toPromotionDTO(p domain.Promotion, loc *time.Location) backend.PromotionDTO {
	return backend.PromotionDTO{
		ID:                  p.ID,
		IDHotel:             p.HotelID,
		Titulo:              p.Title,
		PorcentajeDescuento: p.DiscountPercent,
		FechaInicio:         p.StartDate.In(loc).Format(time.RFC3339),
		FechaFin:            p.EndDate.In(loc).Format(time.RFC3339),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
