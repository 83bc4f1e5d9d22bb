package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "Disponible"
	RoomOccupied    RoomStatus = "Ocupado"
	RoomUnavailable RoomStatus = "No disponible"
)

func ParseRoomStatus(s string) (RoomStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "disponible", "available":
		return RoomAvailable, nil
	case "ocupado", "ocupada", "occupied":
		return RoomOccupied, nil
	case "no disponible", "unavailable", "mantenimiento":
		return RoomUnavailable, nil
	default:
		return "", fmt.Errorf("unknown room status %q", s)
	}
}

// Price is a per-unit amount exactly as the backend sent it. The backend
// emits numbers for some rooms and numeric strings for others, so parsing is
// deferred to display time.
type Price string

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Price(strings.TrimSpace(s))
		return nil
	}
	*p = Price(data)
	return nil
}

// Float returns NaN when the price is missing or not a number.
func (p Price) Float() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(string(p)), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func PriceOf(v float64) Price {
	return Price(strconv.FormatFloat(v, 'f', 2, 64))
}

type UnitPrices struct {
	Hour  Price `json:"hora"`
	Day   Price `json:"dia"`
	Night Price `json:"noche"`
	Week  Price `json:"semana"`
}

func (u UnitPrices) For(kind TariffKind) Price {
	switch kind {
	case TariffHour:
		return u.Hour
	case TariffDay:
		return u.Day
	case TariffNight:
		return u.Night
	case TariffWeek:
		return u.Week
	default:
		return ""
	}
}

type Room struct {
	ID         int64      `json:"id"`
	HotelID    int64      `json:"hotel_id"`
	Number     string     `json:"number"`
	RoomTypeID int64      `json:"room_type_id"`
	RoomType   string     `json:"room_type,omitempty"`
	Status     RoomStatus `json:"status"`
	Prices     UnitPrices `json:"prices"`
	Images     []string   `json:"images,omitempty"`
	Promotion  *Promotion `json:"promotion,omitempty"`
}

func (r *Room) IsAvailable() bool {
	return r != nil && r.Status == RoomAvailable
}
