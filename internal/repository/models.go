package repository

import (
	"time"

	"gorm.io/gorm"
)

type hotelModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Address   string    `gorm:"column:address"`
	City      string    `gorm:"column:city"`
	Phone     string    `gorm:"column:phone"`
	Email     string    `gorm:"column:email"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (hotelModel) TableName() string { return "hotels" }

type roomModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	HotelID    int64     `gorm:"column:hotel_id;not null;uniqueIndex:idx_rooms_hotel_number"`
	Number     string    `gorm:"column:number;not null;uniqueIndex:idx_rooms_hotel_number"`
	RoomTypeID int64     `gorm:"column:room_type_id"`
	RoomType   string    `gorm:"column:room_type"`
	Status     string    `gorm:"column:status;not null"`
	PriceHour  *float64  `gorm:"column:price_hour"`
	PriceDay   *float64  `gorm:"column:price_day"`
	PriceNight *float64  `gorm:"column:price_night"`
	PriceWeek  *float64  `gorm:"column:price_week"`
	Images     string    `gorm:"column:images;type:text"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (roomModel) TableName() string { return "rooms" }

type promotionModel struct {
	ID              int64     `gorm:"column:id;primaryKey"`
	HotelID         int64     `gorm:"column:hotel_id;not null;index"`
	Title           string    `gorm:"column:title"`
	DiscountPercent float64   `gorm:"column:discount_percent;not null"`
	StartDate       time.Time `gorm:"column:start_date;not null"`
	EndDate         time.Time `gorm:"column:end_date;not null"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (promotionModel) TableName() string { return "promotions" }

type userModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Email        string    `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Role         string    `gorm:"column:role;not null"`
	Name         string    `gorm:"column:name"`
	Phone        *string   `gorm:"column:phone"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

// Migrate creates or updates the dev backend schema, parents first.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&hotelModel{},
		&userModel{},
		&roomModel{},
		&promotionModel{},
	)
}
