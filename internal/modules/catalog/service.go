package catalog

import (
	"context"
	"fmt"
	"time"

	"hotelbooking/internal/backend"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/modules/auth"
	"hotelbooking/internal/modules/booking"

	"golang.org/x/sync/errgroup"
)

type Service struct {
	backend Backend
	now     func() time.Time
	loggerf func(format string, args ...interface{})
}

func NewService(backend Backend, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{backend: backend, now: time.Now, loggerf: loggerf}
}

func (s *Service) GetRoom(ctx context.Context, session auth.Session, roomID int64) (*RoomView, error) {
	if !session.Authenticated() {
		return nil, ErrUnauthenticated
	}

	room, err := s.backend.GetRoomDetail(ctx, session.Token, roomID)
	if err != nil {
		if backend.IsNotFound(err) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("room detail %d: %w", roomID, err)
	}

	view := s.view(*room, s.now())
	return &view, nil
}

// ListRooms fetches the rooms list and the promotion stats concurrently and
// waits for both. Either failure fails the whole page.
func (s *Service) ListRooms(ctx context.Context, session auth.Session, f RoomFilters) (*RoomsPage, error) {
	if !session.Authenticated() {
		return nil, ErrUnauthenticated
	}

	var (
		rooms []domain.Room
		stats *domain.PromotionStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rooms, err = s.backend.ListRooms(gctx, session.Token)
		if err != nil {
			return fmt.Errorf("list rooms: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		stats, err = s.backend.PromotionStats(gctx, session.Token)
		if err != nil {
			return fmt.Errorf("promotion stats: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.loggerf("level=warn msg=catalog fetch failed user_id=%d err=%v", session.UserID, err)
		return nil, err
	}

	now := s.now()
	page := &RoomsPage{Rooms: make([]RoomView, 0, len(rooms))}
	for _, room := range rooms {
		if !f.match(room) {
			continue
		}
		page.Rooms = append(page.Rooms, s.view(room, now))
	}
	if stats != nil {
		page.Stats = *stats
	}
	page.Total = len(page.Rooms)
	return page, nil
}

func (s *Service) ListHotels(ctx context.Context, session auth.Session) ([]domain.Hotel, error) {
	if !session.Authenticated() {
		return nil, ErrUnauthenticated
	}
	hotels, err := s.backend.ListHotels(ctx, session.Token)
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	return hotels, nil
}

func (s *Service) view(room domain.Room, now time.Time) RoomView {
	return RoomView{Room: room, DisplayPrices: booking.DisplayPrices(&room, now)}
}

func (f RoomFilters) match(room domain.Room) bool {
	if f.HotelID > 0 && room.HotelID != f.HotelID {
		return false
	}
	if f.Status != "" && room.Status != f.Status {
		return false
	}
	if f.AvailableOnly && !room.IsAvailable() {
		return false
	}
	return true
}
