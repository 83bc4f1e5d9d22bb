package domain

type Hotel struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// PromotionStats summarises promotions per hotel for the catalog listing.
type PromotionStats struct {
	Total           int64   `json:"total"`
	Active          int64   `json:"active"`
	MaxDiscount     float64 `json:"max_discount"`
	AverageDiscount float64 `json:"average_discount"`
}
