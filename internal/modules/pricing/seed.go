package pricing

import (
	"context"
	"fmt"
	"time"

	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type SeedUser struct {
	Email    string
	Password string
	Name     string
	Role     domain.UserRole
}

// DefaultUsers are the development logins printed by cmd/seed.
var DefaultUsers = []SeedUser{
	{Email: "admin@hotel.local", Password: "admin123", Name: "Administrador", Role: domain.RoleAdmin},
	{Email: "propietario@hotel.local", Password: "owner123", Name: "Propietario", Role: domain.RoleOwner},
	{Email: "cliente@hotel.local", Password: "client123", Name: "Cliente Demo", Role: domain.RoleClient},
}

type SeedResult struct {
	Users      int
	Hotels     int
	Rooms      int
	Promotions int
	Skipped    int
}

// Seed loads demo data. Rows that already exist are skipped, so running it
// twice is harmless for users and rooms.
func Seed(ctx context.Context, db *gorm.DB, now time.Time, loggerf func(format string, args ...interface{})) (*SeedResult, error) {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	if err := repository.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	users := repository.NewUserRepository(db)
	hotels := repository.NewHotelRepository(db)
	rooms := repository.NewRoomRepository(db)
	promotions := repository.NewPromotionRepository(db)

	res := &SeedResult{}

	for _, su := range DefaultUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u := &domain.User{Email: su.Email, PasswordHash: string(hash), Name: su.Name, Role: su.Role}
		if err := users.Create(ctx, u); err != nil {
			if database.IsUniqueViolation(err) {
				res.Skipped++
				continue
			}
			return nil, fmt.Errorf("user %s: %w", su.Email, err)
		}
		res.Users++
		loggerf("level=info msg=user seeded email=%s role=%s", su.Email, su.Role)
	}

	existing, err := hotels.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		res.Skipped += len(existing)
		return res, nil
	}

	seedHotels := []domain.Hotel{
		{Name: "Hotel Costa Azul", Address: "Av. Larco 123", City: "Lima", Phone: "+51 1 555 0101"},
		{Name: "Hotel Sierra Andina", Address: "Jr. Ayacucho 45", City: "Cusco", Phone: "+51 84 555 0202"},
	}
	for i := range seedHotels {
		if err := hotels.Create(ctx, &seedHotels[i]); err != nil {
			return nil, fmt.Errorf("hotel %s: %w", seedHotels[i].Name, err)
		}
		res.Hotels++
	}

	seedRooms := []domain.Room{
		{HotelID: seedHotels[0].ID, Number: "101", RoomTypeID: 1, RoomType: "Simple", Status: domain.RoomAvailable,
			Prices: domain.UnitPrices{Hour: "25", Day: "150", Night: "120", Week: "900"},
			Images: []string{"/uploads/rooms/101-1.jpg", "/uploads/rooms/101-2.jpg"}},
		{HotelID: seedHotels[0].ID, Number: "102", RoomTypeID: 2, RoomType: "Doble", Status: domain.RoomOccupied,
			Prices: domain.UnitPrices{Hour: "35", Day: "210", Night: "170", Week: "1300"}},
		{HotelID: seedHotels[0].ID, Number: "201", RoomTypeID: 3, RoomType: "Suite", Status: domain.RoomAvailable,
			Prices: domain.UnitPrices{Hour: "60", Day: "380", Night: "300", Week: "2400"}},
		{HotelID: seedHotels[1].ID, Number: "11", RoomTypeID: 1, RoomType: "Simple", Status: domain.RoomUnavailable,
			Prices: domain.UnitPrices{Day: "120", Night: "95"}},
		{HotelID: seedHotels[1].ID, Number: "12", RoomTypeID: 2, RoomType: "Doble", Status: domain.RoomAvailable,
			Prices: domain.UnitPrices{Hour: "30", Day: "180", Night: "140", Week: "1100"}},
	}
	for i := range seedRooms {
		if err := rooms.Create(ctx, &seedRooms[i]); err != nil {
			if database.IsUniqueViolation(err) {
				res.Skipped++
				continue
			}
			return nil, fmt.Errorf("room %s: %w", seedRooms[i].Number, err)
		}
		res.Rooms++
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	seedPromotions := []domain.Promotion{
		{HotelID: seedHotels[0].ID, Title: "Temporada baja", DiscountPercent: 20,
			StartDate: today.AddDate(0, 0, -7), EndDate: today.AddDate(0, 1, 0)},
		{HotelID: seedHotels[1].ID, Title: "Fiestas patrias", DiscountPercent: 15,
			StartDate: today.AddDate(0, 2, 0), EndDate: today.AddDate(0, 2, 10)},
	}
	for i := range seedPromotions {
		if err := promotions.Create(ctx, &seedPromotions[i]); err != nil {
			return nil, fmt.Errorf("promotion %s: %w", seedPromotions[i].Title, err)
		}
		res.Promotions++
	}

	return res, nil
}
