package repository

import (
	"context"
	"encoding/json"
	"time"

	"marinaclub/internal/domain"

	"gorm.io/gorm"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

type activityModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	UserID    int64     `gorm:"column:user_id;index"`
	Action    string    `gorm:"column:action"`
	Entity    string    `gorm:"column:entity;index"`
	EntityID  int64     `gorm:"column:entity_id"`
	Before    *string   `gorm:"column:before_value;type:json"`
	After     *string   `gorm:"column:after_value;type:json"`
	IP        string    `gorm:"column:ip"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (activityModel) TableName() string { return "activity_logs" }

func toActivityModel(a *domain.ActivityLog) activityModel {
	var before, after *string
	if len(a.Before) > 0 {
		v := string(a.Before)
		before = &v
	}
	if len(a.After) > 0 {
		v := string(a.After)
		after = &v
	}
	return activityModel{
		ID:        a.ID,
		UserID:    a.UserID,
		Action:    string(a.Action),
		Entity:    a.Entity,
		EntityID:  a.EntityID,
		Before:    before,
		After:     after,
		IP:        a.IP,
		CreatedAt: a.CreatedAt,
	}
}

func toDomainActivity(m activityModel) domain.ActivityLog {
	var before, after json.RawMessage
	if m.Before != nil {
		before = json.RawMessage(*m.Before)
	}
	if m.After != nil {
		after = json.RawMessage(*m.After)
	}
	return domain.ActivityLog{
		ID:        m.ID,
		UserID:    m.UserID,
		Action:    domain.ActivityAction(m.Action),
		Entity:    m.Entity,
		EntityID:  m.EntityID,
		Before:    before,
		After:     after,
		IP:        m.IP,
		CreatedAt: m.CreatedAt,
	}
}

func (r *ActivityRepository) Create(ctx context.Context, a *domain.ActivityLog) error {
	m := toActivityModel(a)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*a = toDomainActivity(m)
	return nil
}

func (r *ActivityRepository) List(ctx context.Context, entity string, limit, offset int) ([]domain.ActivityLog, error) {
	q := r.db.WithContext(ctx).Model(&activityModel{})
	if entity != "" {
		q = q.Where("entity = ?", entity)
	}
	var rows []activityModel
	tx := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.ActivityLog, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainActivity(m))
	}
	return out, nil
}
