package booking

const (
	wsEdit        = "edit"
	wsRecalculate = "recalculate"
	wsSubmit      = "submit"
	wsPing        = "ping"
)

type WSClientMessage struct {
	Type  string  `json:"type" validate:"required,oneof=edit recalculate submit ping"`
	Start *string `json:"start,omitempty"`
	End   *string `json:"end,omitempty"`
	Kind  *string `json:"kind,omitempty" validate:"omitempty,max=16"`
}

type WSServerMessage struct {
	Type         string          `json:"type"`
	Draft        *DraftView      `json:"draft,omitempty"`
	Handoff      *PaymentHandoff `json:"handoff,omitempty"`
	ErrorCode    string          `json:"code,omitempty"`
	ErrorMessage string          `json:"message,omitempty"`
}

func NewDraftEvent(d *Draft) *WSServerMessage {
	view := d.View()
	return &WSServerMessage{
		Type:  "draft",
		Draft: &view,
	}
}

func NewHandoffEvent(h *PaymentHandoff) *WSServerMessage {
	return &WSServerMessage{
		Type:    "handoff",
		Handoff: h,
	}
}

func NewPongEvent() *WSServerMessage {
	return &WSServerMessage{
		Type: "pong",
	}
}

func NewErrorEvent(code, message string) *WSServerMessage {
	return &WSServerMessage{
		Type:         "error",
		ErrorCode:    code,
		ErrorMessage: message,
	}
}
