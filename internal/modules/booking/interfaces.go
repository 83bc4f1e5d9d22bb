package booking

import (
	"context"

	"hotelbooking/internal/backend"
	"hotelbooking/internal/domain"
)

type PriceResolver interface {
	CalculateTotal(ctx context.Context, token string, req backend.CalculateTotalRequest) (*backend.Quote, error)
}

type RoomReader interface {
	GetRoomDetail(ctx context.Context, token string, roomID int64) (*domain.Room, error)
}
