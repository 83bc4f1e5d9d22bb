package booking

import (
	"time"

	"hotelbooking/internal/domain"

	"github.com/google/uuid"
)

type DraftStatus string

const (
	DraftIdle        DraftStatus = "idle"
	DraftInvalid     DraftStatus = "invalid"
	DraftCorrected   DraftStatus = "corrected"
	DraftPriced      DraftStatus = "priced"
	DraftRemoteError DraftStatus = "remote_error"
	DraftSubmitted   DraftStatus = "submitted"
)

// Draft is one in-progress reservation. It lives only as long as the
// interaction that owns it and is never shared between connections.
type Draft struct {
	ID        uuid.UUID
	RoomID    int64
	Start     string
	End       string
	Kind      domain.TariffKind
	Selection *ValidatedSelection
	Total     *AuthoritativeTotal
	Status    DraftStatus
	Code      string
	Message   string
	UpdatedAt time.Time
}

func NewDraft(roomID int64) *Draft {
	return &Draft{
		ID:     uuid.New(),
		RoomID: roomID,
		Status: DraftIdle,
	}
}

// DraftEdit carries the form fields that changed. Nil fields are left alone.
type DraftEdit struct {
	Start *string
	End   *string
	Kind  *domain.TariffKind
}

func (d *Draft) Apply(edit DraftEdit) {
	if edit.Start != nil {
		d.Start = *edit.Start
	}
	if edit.End != nil {
		d.End = *edit.End
	}
	if edit.Kind != nil {
		d.Kind = *edit.Kind
	}
}

// invalidate drops everything derived from the previous field values.
func (d *Draft) invalidate() {
	d.Selection = nil
	d.Total = nil
	d.Code = ""
	d.Message = ""
}

type DraftView struct {
	ID        string              `json:"id"`
	RoomID    int64               `json:"room_id"`
	Start     string              `json:"start"`
	End       string              `json:"end"`
	Kind      domain.TariffKind   `json:"kind"`
	Status    DraftStatus         `json:"status"`
	Selection *ValidatedSelection `json:"selection,omitempty"`
	Total     *AuthoritativeTotal `json:"total"`
	Code      string              `json:"code,omitempty"`
	Message   string              `json:"message,omitempty"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func (d *Draft) View() DraftView {
	return DraftView{
		ID:        d.ID.String(),
		RoomID:    d.RoomID,
		Start:     d.Start,
		End:       d.End,
		Kind:      d.Kind,
		Status:    d.Status,
		Selection: d.Selection,
		Total:     d.Total,
		Code:      d.Code,
		Message:   d.Message,
		UpdatedAt: d.UpdatedAt,
	}
}
