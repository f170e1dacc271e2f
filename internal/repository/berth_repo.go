package repository

import (
	"context"
	"errors"
	"time"

	"marinaclub/internal/domain"
	"marinaclub/internal/pkg/numeric"

	"gorm.io/gorm"
)

type BerthRepository struct {
	db *gorm.DB
}

func NewBerthRepository(db *gorm.DB) *BerthRepository {
	return &BerthRepository{db: db}
}

type berthModel struct {
	ID          int64          `gorm:"column:id;primaryKey"`
	ClubID      int64          `gorm:"column:club_id;index"`
	Number      string         `gorm:"column:number"`
	MaxLength   numeric.Meters `gorm:"column:max_length"`
	MaxWidth    numeric.Meters `gorm:"column:max_width"`
	IsAvailable bool           `gorm:"column:is_available"`
	PricePerDay *float64       `gorm:"column:price_per_day"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (berthModel) TableName() string { return "berths" }

func toDomainBerth(m berthModel) *domain.Berth {
	return &domain.Berth{
		ID:          m.ID,
		ClubID:      m.ClubID,
		Number:      m.Number,
		MaxLength:   m.MaxLength,
		MaxWidth:    m.MaxWidth,
		IsAvailable: m.IsAvailable,
		PricePerDay: m.PricePerDay,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toBerthModel(b *domain.Berth) berthModel {
	return berthModel{
		ID:          b.ID,
		ClubID:      b.ClubID,
		Number:      b.Number,
		MaxLength:   b.MaxLength,
		MaxWidth:    b.MaxWidth,
		IsAvailable: b.IsAvailable,
		PricePerDay: b.PricePerDay,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (r *BerthRepository) Create(ctx context.Context, b *domain.Berth) error {
	m := toBerthModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBerth(m)
	return nil
}

func (r *BerthRepository) GetByID(ctx context.Context, id int64) (*domain.Berth, error) {
	var m berthModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainBerth(m), nil
}

func (r *BerthRepository) ListByClub(ctx context.Context, clubID int64) ([]domain.Berth, error) {
	var rows []berthModel
	tx := r.db.WithContext(ctx).Where("club_id = ?", clubID).Order("number ASC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Berth, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBerth(m))
	}
	return out, nil
}

// Update writes the mutable columns as a map so that false/zero values
// (an unavailable berth in particular) are not skipped by gorm.
func (r *BerthRepository) Update(ctx context.Context, b *domain.Berth) error {
	tx := r.db.WithContext(ctx).Model(&berthModel{}).Where("id = ?", b.ID).
		Updates(map[string]any{
			"number":        b.Number,
			"max_length":    b.MaxLength,
			"max_width":     b.MaxWidth,
			"is_available":  b.IsAvailable,
			"price_per_day": b.PricePerDay,
			"updated_at":    time.Now(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
