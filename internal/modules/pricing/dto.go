package pricing

import "hotelbooking/internal/domain"

// PriceDetails is the breakdown returned next to totalpagar.
type PriceDetails struct {
	TipoTarifa              domain.TariffKind `json:"tipo_tarifa"`
	Unidades                int64             `json:"unidades"`
	PrecioUnitario          float64           `json:"precio_unitario"`
	DescuentoPorcentaje     float64           `json:"descuento_porcentaje"`
	PrecioUnitarioDescuento float64           `json:"precio_unitario_descuento"`
	Subtotal                float64           `json:"subtotal"`
	Descuento               float64           `json:"descuento"`
	Total                   float64           `json:"total"`
	IDPromocion             *int64            `json:"id_promocion,omitempty"`
}
