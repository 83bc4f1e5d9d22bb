package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotelbooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, 0, time.UTC, nil)
}

func TestClient_CalculateTotal_Success(t *testing.T) {
	var got CalculateTotalRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, PathCalculateTotal, r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"totalpagar":"240.50","priceDetails":{"unidades":2}}`))
	})

	q, err := c.CalculateTotal(context.Background(), "tok", CalculateTotalRequest{
		IDHabitacion: 5,
		FechaInicio:  "2025-01-10T10:00",
		FechaFin:     "2025-01-12T10:00",
		TipoTarifa:   "dia",
	})
	require.NoError(t, err)
	assert.Equal(t, 240.5, q.Amount)
	assert.JSONEq(t, `{"unidades":2}`, string(q.Details))
	assert.Equal(t, int64(5), got.IDHabitacion)
	assert.Equal(t, "dia", got.TipoTarifa)
}

func TestClient_CalculateTotal_Non2xx(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":{"message":"fechas invalidas"}}`))
	})

	_, err := c.CalculateTotal(context.Background(), "", CalculateTotalRequest{})
	re := IsRemoteError(err)
	require.NotNil(t, re)
	assert.Equal(t, http.StatusUnprocessableEntity, re.StatusCode)
	assert.Equal(t, "fechas invalidas", re.Message)
}

func TestClient_CalculateTotal_Malformed(t *testing.T) {
	bodies := []string{
		`not json`,
		`{}`,
		`{"totalpagar":"abc"}`,
		`{"totalpagar":-3}`,
	}
	for _, body := range bodies {
		body := body
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		})
		_, err := c.CalculateTotal(context.Background(), "", CalculateTotalRequest{})
		require.NotNil(t, IsRemoteError(err), body)
		assert.ErrorIs(t, err, ErrMalformedBody, body)
	}
}

func TestClient_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(url, 0, time.UTC, nil)
	_, err := c.CalculateTotal(context.Background(), "", CalculateTotalRequest{})
	re := IsRemoteError(err)
	require.NotNil(t, re)
	assert.Equal(t, 0, re.StatusCode)
}

func TestClient_NoRetry(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.CalculateTotal(context.Background(), "", CalculateTotalRequest{})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestClient_GetRoomDetail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PathRoomDetail+"12", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"habitacion": {"id": 12, "id_hotel": 1, "numero": "204", "estado": "Ocupado",
				"precio_hora": "20.00", "precio_dia": 150, "precio_noche": "120", "precio_semana": null},
			"promocion": {"id": 3, "id_hotel": 1, "porcentaje_descuento": 20,
				"fecha_inicio": "2025-01-01", "fecha_fin": "2025-01-31"}
		}`))
	})

	room, err := c.GetRoomDetail(context.Background(), "", 12)
	require.NoError(t, err)
	assert.Equal(t, "204", room.Number)
	assert.Equal(t, domain.RoomOccupied, room.Status)
	assert.Equal(t, 150.0, room.Prices.Day.Float())
	require.NotNil(t, room.Promotion)
	assert.Equal(t, 20.0, room.Promotion.DiscountPercent)
	assert.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), room.Promotion.EndDate)
}

func TestClient_GetRoomDetail_BadPromotion(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"habitacion": {"id": 1, "estado": "Disponible"},
			"promocion": {"porcentaje_descuento": 10, "fecha_inicio": "ayer", "fecha_fin": "2025-01-31"}}`))
	})

	_, err := c.GetRoomDetail(context.Background(), "", 1)
	assert.ErrorIs(t, err, ErrMalformedBody)
}

func TestClient_Login(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"credenciales invalidas"}`))
			return
		}
		_, _ = w.Write([]byte(`{"token":"jwt","user":{"id":4,"nombre":"Ana","email":"ana@hotel.test","rol":"cliente"}}`))
	})

	out, err := c.Login(context.Background(), "ana@hotel.test", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt", out.Token)
	assert.Equal(t, int64(4), out.User.ID)

	_, err = c.Login(context.Background(), "ana@hotel.test", "nope")
	assert.True(t, IsUnauthorized(err))
}

func TestClient_ListsAndStats(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case PathRooms:
			_, _ = w.Write([]byte(`[{"id":1,"numero":"101","estado":"Disponible"},{"id":2,"numero":"102","estado":"???"}]`))
		case PathHotels:
			_, _ = w.Write([]byte(`[{"id":1,"nombre":"Hotel Sol","ciudad":"Lima"}]`))
		case PathPromotionStats:
			_, _ = w.Write([]byte(`{"total":4,"activas":1,"descuento_maximo":30,"descuento_promedio":17.5}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	rooms, err := c.ListRooms(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, domain.RoomUnavailable, rooms[1].Status)

	hotels, err := c.ListHotels(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Hotel Sol", hotels[0].Name)

	stats, err := c.PromotionStats(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Active)
	assert.Equal(t, 17.5, stats.AverageDiscount)
}
