package repository

import (
	"context"
	"database/sql"
	"errors"
	"math"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/utils"

	"gorm.io/gorm"
)

var ErrPriceNotSet = errors.New("room has no price for this tariff")

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

var priceColumns = map[domain.TariffKind]string{
	domain.TariffHour:  "price_hour",
	domain.TariffDay:   "price_day",
	domain.TariffNight: "price_night",
	domain.TariffWeek:  "price_week",
}

func toDomainRoom(m roomModel) domain.Room {
	return domain.Room{
		ID:         m.ID,
		HotelID:    m.HotelID,
		Number:     m.Number,
		RoomTypeID: m.RoomTypeID,
		RoomType:   m.RoomType,
		Status:     domain.RoomStatus(m.Status),
		Prices: domain.UnitPrices{
			Hour:  priceOf(m.PriceHour),
			Day:   priceOf(m.PriceDay),
			Night: priceOf(m.PriceNight),
			Week:  priceOf(m.PriceWeek),
		},
		Images: utils.StringToImages(m.Images),
	}
}

func toRoomModel(r *domain.Room) roomModel {
	return roomModel{
		ID:         r.ID,
		HotelID:    r.HotelID,
		Number:     r.Number,
		RoomTypeID: r.RoomTypeID,
		RoomType:   r.RoomType,
		Status:     string(r.Status),
		PriceHour:  floatOf(r.Prices.Hour),
		PriceDay:   floatOf(r.Prices.Day),
		PriceNight: floatOf(r.Prices.Night),
		PriceWeek:  floatOf(r.Prices.Week),
		Images:     utils.ImagesToString(r.Images),
	}
}

func priceOf(v *float64) domain.Price {
	if v == nil {
		return ""
	}
	return domain.PriceOf(*v)
}

func floatOf(p domain.Price) *float64 {
	v := p.Float()
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	room.ID = m.ID
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	room := toDomainRoom(m)
	return &room, nil
}

// List returns rooms ordered by hotel and number. hotelID 0 lists all hotels.
func (r *RoomRepository) List(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	q := r.db.WithContext(ctx).Model(&roomModel{})
	if hotelID > 0 {
		q = q.Where("hotel_id = ?", hotelID)
	}

	var models []roomModel
	if err := q.Order("hotel_id ASC, number ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Room, 0, len(models))
	for _, m := range models {
		out = append(out, toDomainRoom(m))
	}
	return out, nil
}

func (r *RoomRepository) UpdateStatus(ctx context.Context, roomID int64, status domain.RoomStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&roomModel{}).
		Where("id = ?", roomID).
		Update("status", string(status))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetUnitPrice reads the stored per-unit price for one tariff.
func (r *RoomRepository) GetUnitPrice(ctx context.Context, roomID int64, kind domain.TariffKind) (float64, error) {
	column, ok := priceColumns[kind]
	if !ok {
		return 0, ErrPriceNotSet
	}

	var price sql.NullFloat64
	tx := r.db.WithContext(ctx).
		Table("rooms").
		Select(column).
		Where("id = ?", roomID).
		Limit(1).
		Scan(&price)
	if tx.Error != nil {
		return 0, tx.Error
	}
	if tx.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	if !price.Valid {
		return 0, ErrPriceNotSet
	}
	return price.Float64, nil
}
