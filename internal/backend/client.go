package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"hotelbooking/internal/domain"
)

const maxBodyBytes = 1 << 20

// Client talks to the external reservation backend. It never retries: a
// failed call is reported once and the caller decides what happens next.
type Client struct {
	baseURL string
	http    *http.Client
	loc     *time.Location
	loggerf func(format string, args ...interface{})
}

// New builds a client. A zero timeout leaves requests bounded only by ctx.
func New(baseURL string, timeout time.Duration, loc *time.Location, loggerf func(format string, args ...interface{})) *Client {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		loc:     loc,
		loggerf: loggerf,
	}
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.do(ctx, "login", http.MethodPost, PathLogin, "", LoginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, &RemoteError{Op: "login", StatusCode: http.StatusOK, Err: fmt.Errorf("%w: empty token", ErrMalformedBody)}
	}
	return &out, nil
}

// GetRoomDetail returns the room with its hotel promotion, if any.
func (c *Client) GetRoomDetail(ctx context.Context, token string, roomID int64) (*domain.Room, error) {
	var out RoomDetailResponse
	path := PathRoomDetail + strconv.FormatInt(roomID, 10)
	if err := c.do(ctx, "room_detail", http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	if out.Habitacion.ID == 0 {
		return nil, &RemoteError{Op: "room_detail", StatusCode: http.StatusOK, Err: fmt.Errorf("%w: missing habitacion", ErrMalformedBody)}
	}

	room := out.Habitacion.ToDomain()
	if out.Promocion != nil {
		promo, err := out.Promocion.ToDomain(c.loc)
		if err != nil {
			return nil, &RemoteError{Op: "room_detail", StatusCode: http.StatusOK, Err: fmt.Errorf("%w: promocion: %v", ErrMalformedBody, err)}
		}
		room.Promotion = promo
	}
	return &room, nil
}

// CalculateTotal asks the backend for the authoritative amount of a stay.
func (c *Client) CalculateTotal(ctx context.Context, token string, req CalculateTotalRequest) (*Quote, error) {
	var out CalculateTotalResponse
	if err := c.do(ctx, "calculate_total", http.MethodPost, PathCalculateTotal, token, req, &out); err != nil {
		return nil, err
	}
	if out.TotalPagar == "" {
		return nil, &RemoteError{Op: "calculate_total", StatusCode: http.StatusOK, Err: fmt.Errorf("%w: missing totalpagar", ErrMalformedBody)}
	}
	amount, err := out.TotalPagar.Float64()
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return nil, &RemoteError{Op: "calculate_total", StatusCode: http.StatusOK, Err: fmt.Errorf("%w: totalpagar %q", ErrMalformedBody, out.TotalPagar)}
	}
	return &Quote{Amount: amount, Details: out.PriceDetails}, nil
}

func (c *Client) ListRooms(ctx context.Context, token string) ([]domain.Room, error) {
	var out []RoomDTO
	if err := c.do(ctx, "list_rooms", http.MethodGet, PathRooms, token, nil, &out); err != nil {
		return nil, err
	}
	rooms := make([]domain.Room, 0, len(out))
	for _, r := range out {
		rooms = append(rooms, r.ToDomain())
	}
	return rooms, nil
}

func (c *Client) PromotionStats(ctx context.Context, token string) (*domain.PromotionStats, error) {
	var out PromotionStatsDTO
	if err := c.do(ctx, "promotion_stats", http.MethodGet, PathPromotionStats, token, nil, &out); err != nil {
		return nil, err
	}
	stats := out.ToDomain()
	return &stats, nil
}

func (c *Client) ListHotels(ctx context.Context, token string) ([]domain.Hotel, error) {
	var out []HotelDTO
	if err := c.do(ctx, "list_hotels", http.MethodGet, PathHotels, token, nil, &out); err != nil {
		return nil, err
	}
	hotels := make([]domain.Hotel, 0, len(out))
	for _, h := range out {
		hotels = append(hotels, h.ToDomain())
	}
	return hotels, nil
}

func (c *Client) do(ctx context.Context, op, method, path, token string, in, out any) error {
	err := c.roundTrip(ctx, op, method, path, token, in, out)
	if err != nil {
		status := 0
		if re := IsRemoteError(err); re != nil {
			status = re.StatusCode
		}
		c.loggerf("level=error msg=backend request failed op=%s method=%s path=%s status=%d err=%v", op, method, path, status, err)
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, op, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &RemoteError{Op: op, Err: err}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &RemoteError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &RemoteError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &RemoteError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RemoteError{Op: op, StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &RemoteError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("%w: %v", ErrMalformedBody, err)}
	}
	return nil
}

// errorMessage pulls a human message out of the backend's error bodies, which
// come as {"message": ...}, {"error": "..."} or {"error": {"message": ...}}.
func errorMessage(raw []byte) string {
	var body struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	if len(body.Error) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(body.Error, &s); err == nil {
		return s
	}
	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body.Error, &nested); err == nil {
		return nested.Message
	}
	return ""
}

// IsUnauthorized reports a 401/403 from the backend.
func IsUnauthorized(err error) bool {
	re := IsRemoteError(err)
	return re != nil && (re.StatusCode == http.StatusUnauthorized || re.StatusCode == http.StatusForbidden)
}

// IsNotFound reports a 404 from the backend.
func IsNotFound(err error) bool {
	re := IsRemoteError(err)
	return re != nil && re.StatusCode == http.StatusNotFound
}
