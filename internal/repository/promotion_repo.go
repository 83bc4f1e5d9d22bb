package repository

import (
	"context"
	"errors"
	"time"

	"hotelbooking/internal/domain"

	"gorm.io/gorm"
)

type PromotionRepository struct {
	db *gorm.DB
}

func NewPromotionRepository(db *gorm.DB) *PromotionRepository {
	return &PromotionRepository{db: db}
}

func toDomainPromotion(m promotionModel) *domain.Promotion {
	return &domain.Promotion{
		ID:              m.ID,
		HotelID:         m.HotelID,
		Title:           m.Title,
		DiscountPercent: m.DiscountPercent,
		StartDate:       m.StartDate,
		EndDate:         m.EndDate,
	}
}

func (r *PromotionRepository) Create(ctx context.Context, p *domain.Promotion) error {
	if err := p.Validate(); err != nil {
		return err
	}
	// UTC keeps text-encoded timestamps comparable in SQLite.
	m := promotionModel{
		HotelID:         p.HotelID,
		Title:           p.Title,
		DiscountPercent: p.DiscountPercent,
		StartDate:       p.StartDate.UTC(),
		EndDate:         p.EndDate.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	p.ID = m.ID
	return nil
}

// ActiveForHotel returns the promotion covering now with the largest
// discount, or nil when none applies.
func (r *PromotionRepository) ActiveForHotel(ctx context.Context, hotelID int64, now time.Time) (*domain.Promotion, error) {
	now = now.UTC()
	var m promotionModel
	err := r.db.WithContext(ctx).
		Where("hotel_id = ? AND start_date <= ? AND end_date >= ?", hotelID, now, now).
		Order("discount_percent DESC, id ASC").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDomainPromotion(m), nil
}

// Stats summarises all promotions. Max and average discount cover active
// promotions only.
func (r *PromotionRepository) Stats(ctx context.Context, now time.Time) (*domain.PromotionStats, error) {
	now = now.UTC()
	var stats domain.PromotionStats

	if err := r.db.WithContext(ctx).Model(&promotionModel{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	var active struct {
		Count int64
		Max   float64
		Avg   float64
	}
	err := r.db.WithContext(ctx).
		Model(&promotionModel{}).
		Select("COUNT(*) AS count, COALESCE(MAX(discount_percent), 0) AS max, COALESCE(AVG(discount_percent), 0) AS avg").
		Where("start_date <= ? AND end_date >= ?", now, now).
		Scan(&active).Error
	if err != nil {
		return nil, err
	}

	stats.Active = active.Count
	stats.MaxDiscount = active.Max
	stats.AverageDiscount = active.Avg
	return &stats, nil
}
