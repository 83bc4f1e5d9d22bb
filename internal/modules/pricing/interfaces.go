package pricing

import (
	"context"
	"time"

	"hotelbooking/internal/domain"
)

type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type RoomStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context, hotelID int64) ([]domain.Room, error)
	GetUnitPrice(ctx context.Context, roomID int64, kind domain.TariffKind) (float64, error)
}

type PromotionStore interface {
	ActiveForHotel(ctx context.Context, hotelID int64, now time.Time) (*domain.Promotion, error)
	Stats(ctx context.Context, now time.Time) (*domain.PromotionStats, error)
}

type HotelStore interface {
	List(ctx context.Context) ([]domain.Hotel, error)
}

type TokenIssuer interface {
	GenerateToken(userID int64, role, email string) (string, error)
}
