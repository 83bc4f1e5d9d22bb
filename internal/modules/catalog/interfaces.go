package catalog

import (
	"context"

	"hotelbooking/internal/domain"
)

type Backend interface {
	GetRoomDetail(ctx context.Context, token string, roomID int64) (*domain.Room, error)
	ListRooms(ctx context.Context, token string) ([]domain.Room, error)
	PromotionStats(ctx context.Context, token string) (*domain.PromotionStats, error)
	ListHotels(ctx context.Context, token string) ([]domain.Hotel, error)
}
