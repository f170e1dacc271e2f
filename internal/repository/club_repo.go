package repository

import (
	"context"
	"errors"
	"time"

	"marinaclub/internal/domain"

	"gorm.io/gorm"
)

type ClubRepository struct {
	db *gorm.DB
}

func NewClubRepository(db *gorm.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

type clubModel struct {
	ID           int64            `gorm:"column:id;primaryKey"`
	OwnerID      int64            `gorm:"column:owner_id"`
	Name         string           `gorm:"column:name"`
	Address      *string          `gorm:"column:address"`
	SeasonYear   int              `gorm:"column:season_year"`
	ActiveMonths domain.MonthList `gorm:"column:active_months;type:json"`
	BasePrice    float64          `gorm:"column:base_price"`
	BerthCount   int              `gorm:"column:berth_count"`
	CreatedAt    time.Time        `gorm:"column:created_at"`
	UpdatedAt    time.Time        `gorm:"column:updated_at"`
}

func (clubModel) TableName() string { return "clubs" }

func toDomainClub(m clubModel) *domain.Club {
	var address string
	if m.Address != nil {
		address = *m.Address
	}
	return &domain.Club{
		ID:           m.ID,
		OwnerID:      m.OwnerID,
		Name:         m.Name,
		Address:      address,
		SeasonYear:   m.SeasonYear,
		ActiveMonths: m.ActiveMonths,
		BasePrice:    m.BasePrice,
		BerthCount:   m.BerthCount,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toClubModel(c *domain.Club) clubModel {
	var address *string
	if c.Address != "" {
		v := c.Address
		address = &v
	}
	return clubModel{
		ID:           c.ID,
		OwnerID:      c.OwnerID,
		Name:         c.Name,
		Address:      address,
		SeasonYear:   c.SeasonYear,
		ActiveMonths: c.ActiveMonths,
		BasePrice:    c.BasePrice,
		BerthCount:   c.BerthCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (r *ClubRepository) Create(ctx context.Context, c *domain.Club) error {
	m := toClubModel(c)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*c = *toDomainClub(m)
	return nil
}

func (r *ClubRepository) GetByID(ctx context.Context, id int64) (*domain.Club, error) {
	var m clubModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainClub(m), nil
}

func (r *ClubRepository) List(ctx context.Context, limit, offset int) ([]domain.Club, error) {
	var rows []clubModel
	tx := r.db.WithContext(ctx).Order("id ASC").Limit(limit).Offset(offset).Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Club, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainClub(m))
	}
	return out, nil
}

func (r *ClubRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Club, error) {
	var rows []clubModel
	tx := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id ASC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Club, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainClub(m))
	}
	return out, nil
}

func (r *ClubRepository) Update(ctx context.Context, c *domain.Club) error {
	m := toClubModel(c)
	m.UpdatedAt = time.Now()
	tx := r.db.WithContext(ctx).Model(&clubModel{}).Where("id = ?", c.ID).Updates(&m)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ClubRepository) GetOwnerID(ctx context.Context, clubID int64) (int64, error) {
	var ownerID int64
	tx := r.db.WithContext(ctx).Raw(`SELECT owner_id FROM clubs WHERE id = ?`, clubID).Scan(&ownerID)
	if tx.Error != nil {
		return 0, tx.Error
	}
	if ownerID == 0 {
		return 0, ErrNotFound
	}
	return ownerID, nil
}
