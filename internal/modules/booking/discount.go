package booking

import (
	"encoding/json"
	"math"
	"strconv"
	"time"

	"hotelbooking/internal/domain"
)

const undefinedDisplay = "undefined"

// DisplayPrice is a catalog estimate shown next to a room. It is never sent
// to the backend and has no conversion to AuthoritativeTotal.
type DisplayPrice struct {
	amount  float64
	defined bool
}

// AuthoritativeTotal is the backend-computed amount for a stay. It is the
// only amount that reaches the payment step.
type AuthoritativeTotal struct {
	Amount  float64         `json:"amount"`
	Details json.RawMessage `json:"details,omitempty"`
}

func (p DisplayPrice) Amount() (float64, bool) {
	return p.amount, p.defined
}

func (p DisplayPrice) Defined() bool {
	return p.defined
}

func (p DisplayPrice) String() string {
	if !p.defined {
		return undefinedDisplay
	}
	return strconv.FormatFloat(p.amount, 'f', 2, 64)
}

func (p DisplayPrice) MarshalJSON() ([]byte, error) {
	out := struct {
		Amount  *float64 `json:"amount"`
		Display string   `json:"display"`
	}{Display: p.String()}
	if p.defined {
		amount := p.amount
		out.Amount = &amount
	}
	return json.Marshal(out)
}

// DiscountedPrice applies promo to base when now is inside the promotion
// window. Outside the window, or with no promotion, base is returned as is.
func DiscountedPrice(base float64, promo *domain.Promotion, now time.Time) DisplayPrice {
	if math.IsNaN(base) || math.IsInf(base, 0) {
		return DisplayPrice{}
	}
	if !promo.IsActive(now) {
		return DisplayPrice{amount: base, defined: true}
	}

	discounted := base * (1 - promo.DiscountPercent/100)
	return DisplayPrice{amount: math.Round(discounted*100) / 100, defined: true}
}

type RoomDisplayPrices struct {
	Hour            DisplayPrice `json:"hora"`
	Day             DisplayPrice `json:"dia"`
	Night           DisplayPrice `json:"noche"`
	Week            DisplayPrice `json:"semana"`
	PromotionActive bool         `json:"promotion_active"`
}

func DisplayPrices(room *domain.Room, now time.Time) RoomDisplayPrices {
	if room == nil {
		return RoomDisplayPrices{}
	}
	promo := room.Promotion
	return RoomDisplayPrices{
		Hour:            DiscountedPrice(room.Prices.Hour.Float(), promo, now),
		Day:             DiscountedPrice(room.Prices.Day.Float(), promo, now),
		Night:           DiscountedPrice(room.Prices.Night.Float(), promo, now),
		Week:            DiscountedPrice(room.Prices.Week.Float(), promo, now),
		PromotionActive: promo.IsActive(now),
	}
}
