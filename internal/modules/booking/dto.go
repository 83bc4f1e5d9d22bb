package booking

import "hotelbooking/internal/domain"

type ValidateRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Kind  string `json:"kind"`
}

type QuoteRequest struct {
	RoomID int64  `json:"room_id" binding:"required,gt=0"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Kind   string `json:"kind"`
}

type SubmitRequest struct {
	RoomID int64               `json:"room_id" binding:"required,gt=0"`
	Start  string              `json:"start"`
	End    string              `json:"end"`
	Kind   string              `json:"kind"`
	Total  *AuthoritativeTotal `json:"total"`
}

type ValidateResponse struct {
	Status    DraftStatus         `json:"status"`
	Selection *ValidatedSelection `json:"selection,omitempty"`
}

// tariffKind normalises aliases. Unknown values are kept verbatim so the
// selector can reject them with a proper message.
func tariffKind(raw string) domain.TariffKind {
	kind, err := domain.ParseTariffKind(raw)
	if err != nil {
		return domain.TariffKind(raw)
	}
	return kind
}
