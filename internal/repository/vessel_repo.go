package repository

import (
	"context"
	"errors"
	"time"

	"marinaclub/internal/domain"
	"marinaclub/internal/pkg/numeric"

	"gorm.io/gorm"
)

type VesselRepository struct {
	db *gorm.DB
}

func NewVesselRepository(db *gorm.DB) *VesselRepository {
	return &VesselRepository{db: db}
}

type vesselModel struct {
	ID          int64          `gorm:"column:id;primaryKey"`
	OwnerID     int64          `gorm:"column:owner_id;index"`
	Name        string         `gorm:"column:name"`
	Length      numeric.Meters `gorm:"column:length"`
	Width       numeric.Meters `gorm:"column:width"`
	Capacity    int            `gorm:"column:capacity"`
	IsActive    bool           `gorm:"column:is_active"`
	IsValidated bool           `gorm:"column:is_validated"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (vesselModel) TableName() string { return "vessels" }

func toDomainVessel(m vesselModel) *domain.Vessel {
	return &domain.Vessel{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Name:        m.Name,
		Length:      m.Length,
		Width:       m.Width,
		Capacity:    m.Capacity,
		IsActive:    m.IsActive,
		IsValidated: m.IsValidated,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toVesselModel(v *domain.Vessel) vesselModel {
	return vesselModel{
		ID:          v.ID,
		OwnerID:     v.OwnerID,
		Name:        v.Name,
		Length:      v.Length,
		Width:       v.Width,
		Capacity:    v.Capacity,
		IsActive:    v.IsActive,
		IsValidated: v.IsValidated,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func (r *VesselRepository) Create(ctx context.Context, v *domain.Vessel) error {
	m := toVesselModel(v)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*v = *toDomainVessel(m)
	return nil
}

func (r *VesselRepository) GetByID(ctx context.Context, id int64) (*domain.Vessel, error) {
	var m vesselModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainVessel(m), nil
}

func (r *VesselRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Vessel, error) {
	var rows []vesselModel
	tx := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id ASC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Vessel, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainVessel(m))
	}
	return out, nil
}

func (r *VesselRepository) Update(ctx context.Context, v *domain.Vessel) error {
	m := toVesselModel(v)
	m.UpdatedAt = time.Now()
	tx := r.db.WithContext(ctx).Model(&vesselModel{}).Where("id = ?", v.ID).Updates(&m)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *VesselRepository) SetValidated(ctx context.Context, vesselID int64, validated bool) error {
	tx := r.db.WithContext(ctx).Model(&vesselModel{}).
		Where("id = ?", vesselID).
		Updates(map[string]any{"is_validated": validated, "updated_at": time.Now()})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *VesselRepository) Deactivate(ctx context.Context, vesselID, ownerID int64) error {
	tx := r.db.WithContext(ctx).Model(&vesselModel{}).
		Where("id = ? AND owner_id = ?", vesselID, ownerID).
		Updates(map[string]any{"is_active": false, "updated_at": time.Now()})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
