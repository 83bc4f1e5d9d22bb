package booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"hotelbooking/internal/backend"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/modules/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPriceResolver struct {
	mock.Mock
}

func (m *MockPriceResolver) CalculateTotal(ctx context.Context, token string, req backend.CalculateTotalRequest) (*backend.Quote, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backend.Quote), args.Error(1)
}

type MockRoomReader struct {
	mock.Mock
}

func (m *MockRoomReader) GetRoomDetail(ctx context.Context, token string, roomID int64) (*domain.Room, error) {
	args := m.Called(ctx, token, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

var testSession = auth.Session{UserID: 5, Role: domain.RoleClient, Token: "tok"}

func newTestService() (*Service, *MockPriceResolver, *MockRoomReader) {
	prices := new(MockPriceResolver)
	rooms := new(MockRoomReader)
	return NewService(prices, rooms, time.UTC, nil), prices, rooms
}

func remoteFailure(status int) error {
	return &backend.RemoteError{Op: "calculate total", StatusCode: status, Message: "boom"}
}

func TestResolveTotal_SendsValidatedSelection(t *testing.T) {
	svc, prices, _ := newTestService()
	sel, err := svc.Validate("2025-01-10T10:00", "2025-01-10T14:00", domain.TariffHour)
	require.NoError(t, err)

	prices.On("CalculateTotal", mock.Anything, "tok", backend.CalculateTotalRequest{
		IDHabitacion: 12,
		FechaInicio:  "2025-01-10T10:00:00Z",
		FechaFin:     "2025-01-10T14:00:00Z",
		TipoTarifa:   "hora",
	}).Return(&backend.Quote{Amount: 80, Details: json.RawMessage(`{"unidades":4}`)}, nil).Once()

	total, err := svc.ResolveTotal(context.Background(), testSession, 12, sel)

	require.NoError(t, err)
	assert.Equal(t, 80.0, total.Amount)
	assert.JSONEq(t, `{"unidades":4}`, string(total.Details))
	prices.AssertExpectations(t)
}

func TestResolveTotal_RemoteErrorNotRetried(t *testing.T) {
	svc, prices, _ := newTestService()
	sel, _ := svc.Validate("2025-01-10T10:00", "2025-01-10T14:00", domain.TariffHour)

	prices.On("CalculateTotal", mock.Anything, "tok", mock.Anything).Return(nil, remoteFailure(http.StatusInternalServerError)).Once()

	total, err := svc.ResolveTotal(context.Background(), testSession, 12, sel)

	assert.Nil(t, total)
	require.NotNil(t, backend.IsRemoteError(err))
	prices.AssertNumberOfCalls(t, "CalculateTotal", 1)
}

func TestResolveTotal_RequiresSession(t *testing.T) {
	svc, prices, _ := newTestService()
	sel, _ := svc.Validate("2025-01-10T10:00", "2025-01-10T14:00", domain.TariffHour)

	_, err := svc.ResolveTotal(context.Background(), auth.Session{}, 12, sel)

	assert.ErrorIs(t, err, ErrUnauthenticated)
	prices.AssertNotCalled(t, "CalculateTotal", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecalculate_IdleWithoutKind(t *testing.T) {
	svc, prices, _ := newTestService()
	d := NewDraft(12)
	d.Start = "2025-01-10T10:00"
	d.End = "2025-01-10T14:00"

	svc.Recalculate(context.Background(), testSession, d)

	assert.Equal(t, DraftIdle, d.Status)
	assert.Nil(t, d.Total)
	prices.AssertNotCalled(t, "CalculateTotal", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecalculate_SinglePassCorrection(t *testing.T) {
	svc, prices, _ := newTestService()
	d := NewDraft(12)
	d.Start = "2025-01-10T10:00"
	d.End = "2025-01-10T14:00"
	d.Kind = domain.TariffDay

	svc.Recalculate(context.Background(), testSession, d)

	assert.Equal(t, DraftCorrected, d.Status)
	assert.Equal(t, domain.TariffHour, d.Kind)
	assert.Equal(t, CodeDayTooShort, d.Code)
	assert.NotEmpty(t, d.Message)
	assert.Nil(t, d.Selection)
	assert.Nil(t, d.Total)
	prices.AssertNotCalled(t, "CalculateTotal", mock.Anything, mock.Anything, mock.Anything)

	// The next pass validates the corrected kind and prices it.
	prices.On("CalculateTotal", mock.Anything, "tok", mock.Anything).Return(&backend.Quote{Amount: 40}, nil).Once()
	svc.Recalculate(context.Background(), testSession, d)

	assert.Equal(t, DraftPriced, d.Status)
	require.NotNil(t, d.Total)
	assert.Equal(t, 40.0, d.Total.Amount)
	assert.Empty(t, d.Message)
}

func TestRecalculate_InvalidDatesNoSuggestion(t *testing.T) {
	svc, _, _ := newTestService()
	d := NewDraft(12)
	d.Start = "2025-01-10T14:00"
	d.End = "2025-01-10T10:00"
	d.Kind = domain.TariffHour

	svc.Recalculate(context.Background(), testSession, d)

	assert.Equal(t, DraftInvalid, d.Status)
	assert.Equal(t, domain.TariffHour, d.Kind)
	assert.Equal(t, CodeInvalidDates, d.Code)
}

func TestRecalculate_FailureClearsTotalAndSuccessRestoresIt(t *testing.T) {
	svc, prices, _ := newTestService()
	d := NewDraft(12)
	d.Start = "2025-01-10T10:00"
	d.End = "2025-01-10T14:00"
	d.Kind = domain.TariffHour

	prices.On("CalculateTotal", mock.Anything, "tok", mock.Anything).Return(&backend.Quote{Amount: 80}, nil).Once()
	svc.Recalculate(context.Background(), testSession, d)
	require.NotNil(t, d.Total)

	prices.On("CalculateTotal", mock.Anything, "tok", mock.Anything).Return(nil, remoteFailure(http.StatusBadGateway)).Once()
	d.End = "2025-01-10T15:00"
	svc.Recalculate(context.Background(), testSession, d)
	assert.Equal(t, DraftRemoteError, d.Status)
	assert.Nil(t, d.Total)
	assert.Equal(t, "BACKEND_ERROR", d.Code)
	assert.NotEmpty(t, d.Message)

	prices.On("CalculateTotal", mock.Anything, "tok", mock.Anything).Return(&backend.Quote{Amount: 100}, nil).Once()
	svc.Recalculate(context.Background(), testSession, d)
	assert.Equal(t, DraftPriced, d.Status)
	require.NotNil(t, d.Total)
	assert.Equal(t, 100.0, d.Total.Amount)
	prices.AssertNumberOfCalls(t, "CalculateTotal", 3)
}

func TestRecalculate_BackendRejectsSession(t *testing.T) {
	svc, prices, _ := newTestService()
	d := NewDraft(12)
	d.Start = "2025-01-10T10:00"
	d.End = "2025-01-10T14:00"
	d.Kind = domain.TariffHour

	prices.On("CalculateTotal", mock.Anything, "tok", mock.Anything).Return(nil, remoteFailure(http.StatusUnauthorized)).Once()
	svc.Recalculate(context.Background(), testSession, d)

	assert.Equal(t, DraftRemoteError, d.Status)
	assert.Equal(t, "BACKEND_UNAUTHORIZED", d.Code)
}

func TestLoadRoom_NotFound(t *testing.T) {
	svc, _, rooms := newTestService()
	rooms.On("GetRoomDetail", mock.Anything, "tok", int64(99)).
		Return(nil, &backend.RemoteError{Op: "room detail", StatusCode: http.StatusNotFound}).Once()

	_, err := svc.LoadRoom(context.Background(), testSession, 99)

	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestSubmitDraft(t *testing.T) {
	svc, prices, rooms := newTestService()
	d := NewDraft(12)
	d.Start = "2025-01-10T10:00"
	d.End = "2025-01-10T14:00"
	d.Kind = domain.TariffHour
	prices.On("CalculateTotal", mock.Anything, "tok", mock.Anything).Return(&backend.Quote{Amount: 80}, nil).Once()
	svc.Recalculate(context.Background(), testSession, d)

	rooms.On("GetRoomDetail", mock.Anything, "tok", int64(12)).
		Return(&domain.Room{ID: 12, Status: domain.RoomAvailable}, nil).Once()

	handoff, err := svc.SubmitDraft(context.Background(), testSession, d)

	require.NoError(t, err)
	assert.Equal(t, d.ID.String(), handoff.State.DraftID)
	assert.Equal(t, 80.0, handoff.State.Total.Amount)
	assert.Equal(t, DraftSubmitted, d.Status)
}

func TestSubmitDraft_RoomBecameOccupied(t *testing.T) {
	svc, prices, rooms := newTestService()
	d := NewDraft(12)
	d.Start = "2025-01-10T10:00"
	d.End = "2025-01-10T14:00"
	d.Kind = domain.TariffHour
	prices.On("CalculateTotal", mock.Anything, "tok", mock.Anything).Return(&backend.Quote{Amount: 80}, nil).Once()
	svc.Recalculate(context.Background(), testSession, d)

	rooms.On("GetRoomDetail", mock.Anything, "tok", int64(12)).
		Return(&domain.Room{ID: 12, Status: domain.RoomOccupied}, nil).Once()

	_, err := svc.SubmitDraft(context.Background(), testSession, d)

	assert.ErrorIs(t, err, ErrRoomUnavailable)
	assert.Equal(t, DraftPriced, d.Status)
}

func TestSubmitRequest(t *testing.T) {
	svc, _, rooms := newTestService()
	rooms.On("GetRoomDetail", mock.Anything, "tok", int64(12)).
		Return(&domain.Room{ID: 12, Status: domain.RoomAvailable}, nil)

	handoff, err := svc.SubmitRequest(context.Background(), testSession, SubmitRequest{
		RoomID: 12, Start: "2025-01-10T10:00", End: "2025-01-10T14:00", Kind: "hour",
		Total: &AuthoritativeTotal{Amount: 80},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TariffHour, handoff.State.Kind)

	_, err = svc.SubmitRequest(context.Background(), testSession, SubmitRequest{
		RoomID: 12, Start: "2025-01-10T10:00", End: "2025-01-10T14:00", Kind: "hora",
	})
	assert.ErrorIs(t, err, ErrTotalMissing)

	_, err = svc.SubmitRequest(context.Background(), testSession, SubmitRequest{
		RoomID: 12, Start: "2025-01-10T10:00", Kind: "hora", Total: &AuthoritativeTotal{Amount: 80},
	})
	assert.ErrorIs(t, err, ErrIncompleteSelection)

	_, err = svc.SubmitRequest(context.Background(), testSession, SubmitRequest{
		RoomID: 12, Start: "2025-01-10T10:00", End: "2025-01-10T14:00", Kind: "dia",
		Total: &AuthoritativeTotal{Amount: 80},
	})
	require.NotNil(t, IsValidationError(err))
}

func TestSubmitRequest_OccupiedRoom(t *testing.T) {
	svc, _, rooms := newTestService()
	rooms.On("GetRoomDetail", mock.Anything, "tok", int64(12)).
		Return(&domain.Room{ID: 12, Status: domain.RoomOccupied}, nil)

	_, err := svc.SubmitRequest(context.Background(), testSession, SubmitRequest{
		RoomID: 12, Start: "2025-01-10T10:00", End: "2025-01-10T14:00", Kind: "hora",
		Total: &AuthoritativeTotal{Amount: 80},
	})

	assert.True(t, errors.Is(err, ErrRoomUnavailable))
}
