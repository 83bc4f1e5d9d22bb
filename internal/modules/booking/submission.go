package booking

import (
	"time"

	"hotelbooking/internal/domain"
)

// PaymentRoute is the SPA route that receives the handoff state.
const PaymentRoute = "/cliente/catalopagos"

type PaymentState struct {
	DraftID string             `json:"draftId,omitempty"`
	UserID  int64              `json:"userId"`
	RoomID  int64              `json:"roomId"`
	Start   time.Time          `json:"start"`
	End     time.Time          `json:"end"`
	Kind    domain.TariffKind  `json:"kind"`
	Total   AuthoritativeTotal `json:"total"`
}

type PaymentHandoff struct {
	Route string       `json:"route"`
	State PaymentState `json:"state"`
}

// Submit checks the booking preconditions and builds the payment handoff.
// Nothing is persisted and no backend call is made.
func Submit(room *domain.Room, sel *ValidatedSelection, total *AuthoritativeTotal, userID int64) (*PaymentHandoff, error) {
	if userID <= 0 {
		return nil, ErrUnauthenticated
	}
	if !room.IsAvailable() {
		return nil, ErrRoomUnavailable
	}
	if sel == nil || sel.Kind == "" || sel.Start.IsZero() || sel.End.IsZero() {
		return nil, ErrIncompleteSelection
	}
	if total == nil {
		return nil, ErrTotalMissing
	}
	if !sel.Start.Before(sel.End) {
		return nil, ErrInvalidDates
	}

	return &PaymentHandoff{
		Route: PaymentRoute,
		State: PaymentState{
			UserID: userID,
			RoomID: room.ID,
			Start:  sel.Start,
			End:    sel.End,
			Kind:   sel.Kind,
			Total:  *total,
		},
	}, nil
}
