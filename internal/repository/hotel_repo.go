package repository

import (
	"context"

	"hotelbooking/internal/domain"

	"gorm.io/gorm"
)

type HotelRepository struct {
	db *gorm.DB
}

func NewHotelRepository(db *gorm.DB) *HotelRepository {
	return &HotelRepository{db: db}
}

func toDomainHotel(m hotelModel) domain.Hotel {
	return domain.Hotel{
		ID:      m.ID,
		Name:    m.Name,
		Address: m.Address,
		City:    m.City,
		Phone:   m.Phone,
		Email:   m.Email,
	}
}

func (r *HotelRepository) Create(ctx context.Context, h *domain.Hotel) error {
	m := hotelModel{
		Name:    h.Name,
		Address: h.Address,
		City:    h.City,
		Phone:   h.Phone,
		Email:   h.Email,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	h.ID = m.ID
	return nil
}

func (r *HotelRepository) List(ctx context.Context) ([]domain.Hotel, error) {
	var models []hotelModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Hotel, 0, len(models))
	for _, m := range models {
		out = append(out, toDomainHotel(m))
	}
	return out, nil
}
