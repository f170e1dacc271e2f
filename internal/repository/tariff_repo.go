package repository

import (
	"context"
	"errors"
	"time"

	"marinaclub/internal/domain"

	"gorm.io/gorm"
)

type TariffRepository struct {
	db *gorm.DB
}

func NewTariffRepository(db *gorm.DB) *TariffRepository {
	return &TariffRepository{db: db}
}

type tariffModel struct {
	ID        int64            `gorm:"column:id;primaryKey"`
	ClubID    int64            `gorm:"column:club_id;index"`
	Kind      string           `gorm:"column:kind"`
	Amount    float64          `gorm:"column:amount"`
	Months    domain.MonthList `gorm:"column:months;type:json"`
	StartDate *time.Time       `gorm:"column:start_date"`
	EndDate   *time.Time       `gorm:"column:end_date"`
	CreatedAt time.Time        `gorm:"column:created_at"`
	UpdatedAt time.Time        `gorm:"column:updated_at"`
}

func (tariffModel) TableName() string { return "tariffs" }

type bookingRuleModel struct {
	ID            int64            `gorm:"column:id;primaryKey"`
	ClubID        int64            `gorm:"column:club_id;index"`
	TariffID      *int64           `gorm:"column:tariff_id"`
	Kind          string           `gorm:"column:kind"`
	DepositAmount float64          `gorm:"column:deposit_amount"`
	Months        domain.MonthList `gorm:"column:months;type:json"`
	CreatedAt     time.Time        `gorm:"column:created_at"`
}

func (bookingRuleModel) TableName() string { return "booking_rules" }

func toDomainTariff(m tariffModel) *domain.Tariff {
	return &domain.Tariff{
		ID:        m.ID,
		ClubID:    m.ClubID,
		Kind:      domain.TariffKind(m.Kind),
		Amount:    m.Amount,
		Months:    m.Months,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toTariffModel(t *domain.Tariff) tariffModel {
	return tariffModel{
		ID:        t.ID,
		ClubID:    t.ClubID,
		Kind:      string(t.Kind),
		Amount:    t.Amount,
		Months:    t.Months,
		StartDate: t.StartDate,
		EndDate:   t.EndDate,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func toDomainRule(m bookingRuleModel) domain.BookingRule {
	return domain.BookingRule{
		ID:            m.ID,
		ClubID:        m.ClubID,
		TariffID:      m.TariffID,
		Kind:          domain.RuleKind(m.Kind),
		DepositAmount: m.DepositAmount,
		Months:        m.Months,
		CreatedAt:     m.CreatedAt,
	}
}

func (r *TariffRepository) Create(ctx context.Context, t *domain.Tariff) error {
	m := toTariffModel(t)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*t = *toDomainTariff(m)
	return nil
}

func (r *TariffRepository) GetByID(ctx context.Context, id int64) (*domain.Tariff, error) {
	var m tariffModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainTariff(m), nil
}

func (r *TariffRepository) ListByClub(ctx context.Context, clubID int64) ([]domain.Tariff, error) {
	var rows []tariffModel
	tx := r.db.WithContext(ctx).Where("club_id = ?", clubID).Order("id ASC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Tariff, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainTariff(m))
	}
	return out, nil
}

func (r *TariffRepository) Delete(ctx context.Context, id, clubID int64) error {
	tx := r.db.WithContext(ctx).Where("id = ? AND club_id = ?", id, clubID).Delete(&tariffModel{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TariffRepository) CreateRule(ctx context.Context, rule *domain.BookingRule) error {
	m := bookingRuleModel{
		ClubID:        rule.ClubID,
		TariffID:      rule.TariffID,
		Kind:          string(rule.Kind),
		DepositAmount: rule.DepositAmount,
		Months:        rule.Months,
		CreatedAt:     rule.CreatedAt,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*rule = toDomainRule(m)
	return nil
}

func (r *TariffRepository) ListRulesByClub(ctx context.Context, clubID int64) ([]domain.BookingRule, error) {
	var rows []bookingRuleModel
	tx := r.db.WithContext(ctx).Where("club_id = ?", clubID).Order("id ASC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.BookingRule, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainRule(m))
	}
	return out, nil
}

func (r *TariffRepository) DeleteRule(ctx context.Context, id, clubID int64) error {
	tx := r.db.WithContext(ctx).Where("id = ? AND club_id = ?", id, clubID).Delete(&bookingRuleModel{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
