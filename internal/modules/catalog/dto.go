package catalog

import (
	"hotelbooking/internal/domain"
	"hotelbooking/internal/modules/booking"
)

type RoomFilters struct {
	HotelID       int64
	Status        domain.RoomStatus
	AvailableOnly bool
}

// RoomView pairs a room with the discounted per-tariff estimates shown in
// the catalog. These are display values only.
type RoomView struct {
	domain.Room
	DisplayPrices booking.RoomDisplayPrices `json:"display_prices"`
}

type RoomsPage struct {
	Rooms []RoomView            `json:"rooms"`
	Stats domain.PromotionStats `json:"promotion_stats"`
	Total int                   `json:"total"`
}
