package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotelbooking/internal/backend"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/modules/auth"
)

type Service struct {
	prices   PriceResolver
	rooms    RoomReader
	selector *TariffSelector
	now      func() time.Time
	loggerf  func(format string, args ...interface{})
}

func NewService(prices PriceResolver, rooms RoomReader, loc *time.Location, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		prices:   prices,
		rooms:    rooms,
		selector: NewTariffSelector(loc),
		now:      time.Now,
		loggerf:  loggerf,
	}
}

func (s *Service) Validate(start, end string, kind domain.TariffKind) (*ValidatedSelection, error) {
	return s.selector.ValidateAndCalculate(start, end, kind)
}

// ResolveTotal asks the backend for the price of a validated stay. The call
// is made exactly once; failures are returned to the caller untouched.
func (s *Service) ResolveTotal(ctx context.Context, session auth.Session, roomID int64, sel *ValidatedSelection) (*AuthoritativeTotal, error) {
	if !session.Authenticated() {
		return nil, ErrUnauthenticated
	}
	if sel == nil {
		return nil, ErrIncompleteSelection
	}

	loc := s.selector.Location()
	quote, err := s.prices.CalculateTotal(ctx, session.Token, backend.CalculateTotalRequest{
		IDHabitacion: roomID,
		FechaInicio:  sel.Start.In(loc).Format(time.RFC3339),
		FechaFin:     sel.End.In(loc).Format(time.RFC3339),
		TipoTarifa:   string(sel.Kind),
	})
	if err != nil {
		return nil, fmt.Errorf("resolve total: %w", err)
	}

	return &AuthoritativeTotal{Amount: quote.Amount, Details: quote.Details}, nil
}

// Recalculate re-runs validation and pricing for the current draft fields.
// A tariff correction is applied once and not validated again here; the
// next Recalculate call picks it up.
func (s *Service) Recalculate(ctx context.Context, session auth.Session, d *Draft) {
	d.invalidate()
	d.UpdatedAt = s.now()

	sel, err := s.selector.ValidateAndCalculate(d.Start, d.End, d.Kind)
	if err != nil {
		if errors.Is(err, ErrNoTariff) {
			d.Status = DraftIdle
			return
		}
		verr := IsValidationError(err)
		if verr == nil {
			d.Status = DraftInvalid
			d.Message = err.Error()
			return
		}
		d.Code = verr.Code
		d.Message = verr.Message
		if verr.Suggested != "" {
			d.Kind = verr.Suggested
			d.Status = DraftCorrected
			return
		}
		d.Status = DraftInvalid
		return
	}

	d.Selection = sel
	total, err := s.ResolveTotal(ctx, session, d.RoomID, sel)
	if err != nil {
		s.loggerf("level=warn msg=price resolution failed draft_id=%s room_id=%d kind=%s err=%v", d.ID, d.RoomID, sel.Kind, err)
		d.Status = DraftRemoteError
		d.Code = remoteCode(err)
		d.Message = "Could not calculate the total. Change the dates or tariff to try again."
		return
	}

	d.Total = total
	d.Status = DraftPriced
}

func (s *Service) LoadRoom(ctx context.Context, session auth.Session, roomID int64) (*domain.Room, error) {
	if !session.Authenticated() {
		return nil, ErrUnauthenticated
	}
	room, err := s.rooms.GetRoomDetail(ctx, session.Token, roomID)
	if err != nil {
		if backend.IsNotFound(err) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("load room %d: %w", roomID, err)
	}
	return room, nil
}

// Quote runs one stateless recalculation for the HTTP API.
func (s *Service) Quote(ctx context.Context, session auth.Session, req QuoteRequest) *Draft {
	d := NewDraft(req.RoomID)
	d.Start = req.Start
	d.End = req.End
	d.Kind = tariffKind(req.Kind)
	s.Recalculate(ctx, session, d)
	return d
}

// SubmitDraft hands off a draft held by a live session. The room is read
// again so a status change since the draft was opened blocks submission.
func (s *Service) SubmitDraft(ctx context.Context, session auth.Session, d *Draft) (*PaymentHandoff, error) {
	if !session.Authenticated() {
		return nil, ErrUnauthenticated
	}
	room, err := s.LoadRoom(ctx, session, d.RoomID)
	if err != nil {
		return nil, err
	}

	handoff, err := Submit(room, d.Selection, d.Total, session.UserID)
	if err != nil {
		return nil, err
	}
	handoff.State.DraftID = d.ID.String()
	d.Status = DraftSubmitted
	d.UpdatedAt = s.now()

	s.loggerf("level=info msg=booking handed off draft_id=%s user_id=%d room_id=%d kind=%s total=%.2f",
		d.ID, session.UserID, room.ID, handoff.State.Kind, handoff.State.Total.Amount)
	return handoff, nil
}

// SubmitRequest is the stateless variant: the client echoes the total it
// received from a quote.
func (s *Service) SubmitRequest(ctx context.Context, session auth.Session, req SubmitRequest) (*PaymentHandoff, error) {
	if !session.Authenticated() {
		return nil, ErrUnauthenticated
	}
	room, err := s.LoadRoom(ctx, session, req.RoomID)
	if err != nil {
		return nil, err
	}
	if !room.IsAvailable() {
		return nil, ErrRoomUnavailable
	}
	if strings.TrimSpace(req.Start) == "" || strings.TrimSpace(req.End) == "" || strings.TrimSpace(req.Kind) == "" {
		return nil, ErrIncompleteSelection
	}

	sel, err := s.selector.ValidateAndCalculate(req.Start, req.End, tariffKind(req.Kind))
	if err != nil {
		return nil, err
	}

	return Submit(room, sel, req.Total, session.UserID)
}

func remoteCode(err error) string {
	if backend.IsUnauthorized(err) {
		return "BACKEND_UNAUTHORIZED"
	}
	return "BACKEND_ERROR"
}
