package domain

import (
	"errors"
	"time"
)

var ErrInvalidPromotion = errors.New("invalid promotion")

// Promotion is a hotel-wide percentage discount valid inside [StartDate, EndDate].
type Promotion struct {
	ID              int64     `json:"id"`
	HotelID         int64     `json:"hotel_id"`
	Title           string    `json:"title,omitempty"`
	DiscountPercent float64   `json:"discount_percent"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
}

// IsActive reports whether now falls inside the window, both ends inclusive.
func (p *Promotion) IsActive(now time.Time) bool {
	if p == nil {
		return false
	}
	return !now.Before(p.StartDate) && !now.After(p.EndDate)
}

func (p *Promotion) Validate() error {
	if p.DiscountPercent < 0 || p.DiscountPercent > 100 {
		return ErrInvalidPromotion
	}
	if p.EndDate.Before(p.StartDate) {
		return ErrInvalidPromotion
	}
	return nil
}
