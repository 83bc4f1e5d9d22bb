package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"hotelbooking/internal/backend"
	"hotelbooking/internal/database"
	"hotelbooking/internal/modules/booking"
	"hotelbooking/internal/pkg/jwt"
	"hotelbooking/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Seeded ids: hotels 1 (active 20% promotion) and 2 (future promotion);
// rooms 1 "101", 2 "102" occupied, 3 "201", 4 "11" unavailable without an
// hourly price, 5 "12".
func setupService(t *testing.T) (*Service, *jwt.Service, *gorm.DB) {
	t.Helper()
	db, err := database.ConnectWithConfig(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()), database.Quiet())
	require.NoError(t, err)

	_, err = Seed(context.Background(), db, time.Now(), nil)
	require.NoError(t, err)

	tokens := jwt.New("dev-backend-secret", time.Hour)
	svc := NewService(
		repository.NewUserRepository(db),
		repository.NewRoomRepository(db),
		repository.NewPromotionRepository(db),
		repository.NewHotelRepository(db),
		tokens,
		time.UTC,
		nil,
	)
	return svc, tokens, db
}

func TestSeed_IsIdempotentForUsersAndHotels(t *testing.T) {
	_, _, db := setupService(t)

	res, err := Seed(context.Background(), db, time.Now(), nil)

	require.NoError(t, err)
	assert.Equal(t, 0, res.Users)
	assert.Equal(t, 0, res.Hotels)
	assert.Equal(t, len(DefaultUsers)+2, res.Skipped)
}

func TestLogin(t *testing.T) {
	svc, tokens, _ := setupService(t)
	ctx := context.Background()

	out, err := svc.Login(ctx, backend.LoginRequest{Email: "Cliente@Hotel.local", Password: "client123"})
	require.NoError(t, err)
	assert.Equal(t, "cliente", out.User.Rol)

	claims, err := tokens.ValidateToken(out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, claims.UserID)

	_, err = svc.Login(ctx, backend.LoginRequest{Email: "cliente@hotel.local", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, backend.LoginRequest{Email: "nobody@hotel.local", Password: "client123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRoomDetail_IncludesActivePromotion(t *testing.T) {
	svc, _, _ := setupService(t)

	out, err := svc.RoomDetail(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "101", out.Habitacion.Numero)
	assert.Equal(t, "Disponible", out.Habitacion.Estado)
	require.NotNil(t, out.Promocion)
	assert.Equal(t, 20.0, out.Promocion.PorcentajeDescuento)

	out, err = svc.RoomDetail(context.Background(), 5)
	require.NoError(t, err)
	assert.Nil(t, out.Promocion)

	_, err = svc.RoomDetail(context.Background(), 99)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func details(t *testing.T, out *backend.CalculateTotalResponse) PriceDetails {
	t.Helper()
	var d PriceDetails
	require.NoError(t, json.Unmarshal(out.PriceDetails, &d))
	return d
}

func TestCalculateTotal_HourlyWithPromotion(t *testing.T) {
	svc, _, _ := setupService(t)

	out, err := svc.CalculateTotal(context.Background(), backend.CalculateTotalRequest{
		IDHabitacion: 1, FechaInicio: "2025-01-10T10:00", FechaFin: "2025-01-10T14:00", TipoTarifa: "hora",
	})

	require.NoError(t, err)
	assert.Equal(t, json.Number("80.00"), out.TotalPagar)
	d := details(t, out)
	assert.Equal(t, int64(4), d.Unidades)
	assert.Equal(t, 25.0, d.PrecioUnitario)
	assert.Equal(t, 20.0, d.PrecioUnitarioDescuento)
	assert.Equal(t, 100.0, d.Subtotal)
	assert.Equal(t, 20.0, d.Descuento)
	assert.NotNil(t, d.IDPromocion)
}

func TestCalculateTotal_DailyAndNightly(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	out, err := svc.CalculateTotal(ctx, backend.CalculateTotalRequest{
		IDHabitacion: 3, FechaInicio: "2025-01-10T12:00:00Z", FechaFin: "2025-01-12T12:00:00Z", TipoTarifa: "dia",
	})
	require.NoError(t, err)
	assert.Equal(t, json.Number("608.00"), out.TotalPagar)

	out, err = svc.CalculateTotal(ctx, backend.CalculateTotalRequest{
		IDHabitacion: 5, FechaInicio: "2025-01-10T22:00", FechaFin: "2025-01-12T10:00", TipoTarifa: "noche",
	})
	require.NoError(t, err)
	assert.Equal(t, json.Number("280.00"), out.TotalPagar)
	assert.Nil(t, details(t, out).IDPromocion)
}

func TestCalculateTotal_Rejections(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.CalculateTotal(ctx, backend.CalculateTotalRequest{
		IDHabitacion: 1, FechaInicio: "2025-01-10T10:00", FechaFin: "2025-01-10T14:00", TipoTarifa: "dia",
	})
	verr := booking.IsValidationError(err)
	require.NotNil(t, verr)
	assert.Equal(t, booking.CodeDayTooShort, verr.Code)

	_, err = svc.CalculateTotal(ctx, backend.CalculateTotalRequest{
		IDHabitacion: 1, FechaInicio: "2025-01-10T10:00", FechaFin: "2025-01-10T14:00",
	})
	require.NotNil(t, booking.IsValidationError(err))

	_, err = svc.CalculateTotal(ctx, backend.CalculateTotalRequest{
		IDHabitacion: 4, FechaInicio: "2025-01-10T10:00", FechaFin: "2025-01-10T14:00", TipoTarifa: "hora",
	})
	assert.ErrorIs(t, err, ErrPriceNotSet)

	_, err = svc.CalculateTotal(ctx, backend.CalculateTotalRequest{
		IDHabitacion: 99, FechaInicio: "2025-01-10T10:00", FechaFin: "2025-01-10T14:00", TipoTarifa: "hora",
	})
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestPromotionStats(t *testing.T) {
	svc, _, _ := setupService(t)

	stats, err := svc.PromotionStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.Activas)
	assert.Equal(t, 20.0, stats.DescuentoMaximo)
}
