package booking

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/modules/auth"
	"hotelbooking/internal/pkg/response"
	"hotelbooking/internal/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	pongWait     = 60 * time.Second
	pingPeriod   = 30 * time.Second
	writeWait    = 10 * time.Second
	maxFrameSize = 4096
)

type SessionSource interface {
	SessionFromToken(token string) (auth.Session, error)
}

// WSHandler keeps one Draft per connection for the live booking form.
type WSHandler struct {
	service  *Service
	sessions SessionSource
	hub      *Hub
	upgrader websocket.Upgrader
	loggerf  func(format string, args ...interface{})
}

func NewWSHandler(service *Service, sessions SessionSource, hub *Hub, origins []string, loggerf func(format string, args ...interface{})) *WSHandler {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	if hub == nil {
		hub = NewHub()
	}
	return &WSHandler{
		service:  service,
		sessions: sessions,
		hub:      hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(origins),
		},
		loggerf: loggerf,
	}
}

func checkOrigin(origins []string) func(r *http.Request) bool {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		if _, ok := allowed["*"]; ok {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}

func (h *WSHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/ws/booking", h.HandleWebSocket)
}

// HandleWebSocket serves GET /ws/booking?token=JWT&room_id=ID. Browsers cannot
// set headers on the upgrade request, so the token travels in the query.
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	session, err := h.sessions.SessionFromToken(c.Query("token"))
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Token is required. Use ?token=YOUR_JWT_TOKEN")
		return
	}
	if session.Role != domain.RoleClient && session.Role != domain.RoleAdmin {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
		return
	}

	roomID, err := strconv.ParseInt(c.Query("room_id"), 10, 64)
	if err != nil || roomID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "room_id is required")
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	if _, err := h.service.LoadRoom(ctx, session, roomID); err != nil {
		writeError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.loggerf("level=warn msg=websocket upgrade failed user_id=%d err=%v", session.UserID, err)
		return
	}
	defer conn.Close()

	draft := NewDraft(roomID)
	h.hub.Register(draft.ID, conn)
	defer h.hub.Unregister(draft.ID)
	h.loggerf("level=info msg=booking session opened user_id=%d room_id=%d draft_id=%s", session.UserID, roomID, draft.ID)
	defer func() {
		h.loggerf("level=info msg=booking session closed user_id=%d draft_id=%s status=%s", session.UserID, draft.ID, draft.Status)
	}()

	conn.SetReadLimit(maxFrameSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go pingLoop(conn, done)

	if err := h.send(conn, NewDraftEvent(draft)); err != nil {
		return
	}
	h.readLoop(ctx, conn, session, draft)
}

// pingLoop only uses WriteControl, which is safe alongside the read loop's
// data writes.
func pingLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, session auth.Session, draft *Draft) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.loggerf("level=warn msg=websocket read failed user_id=%d err=%v", session.UserID, err)
			}
			return
		}

		var msg WSClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			if h.send(conn, NewErrorEvent("INVALID_JSON", "Failed to parse message")) != nil {
				return
			}
			continue
		}
		if fields := validator.Validate(msg); fields != nil {
			if h.send(conn, NewErrorEvent("INVALID_MESSAGE", "Invalid message: "+describe(fields))) != nil {
				return
			}
			continue
		}

		if err := h.send(conn, h.handle(ctx, session, draft, msg)); err != nil {
			return
		}
	}
}

func (h *WSHandler) handle(ctx context.Context, session auth.Session, draft *Draft, msg WSClientMessage) *WSServerMessage {
	switch msg.Type {
	case wsEdit:
		edit := DraftEdit{Start: msg.Start, End: msg.End}
		if msg.Kind != nil {
			kind := tariffKind(*msg.Kind)
			edit.Kind = &kind
		}
		draft.Apply(edit)
		h.service.Recalculate(ctx, session, draft)
		return NewDraftEvent(draft)
	case wsRecalculate:
		h.service.Recalculate(ctx, session, draft)
		return NewDraftEvent(draft)
	case wsSubmit:
		handoff, err := h.service.SubmitDraft(ctx, session, draft)
		if err != nil {
			info := classify(err)
			return NewErrorEvent(info.code, info.message)
		}
		return NewHandoffEvent(handoff)
	default:
		return NewPongEvent()
	}
}

func (h *WSHandler) send(conn *websocket.Conn, msg *WSServerMessage) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}

func describe(fields map[string]string) string {
	out := ""
	for field, tag := range fields {
		if out != "" {
			out += ", "
		}
		out += field + " (" + tag + ")"
	}
	return out
}
