package activity

import (
	"context"
	"log"
	"time"

	"marinaclub/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, a *domain.ActivityLog) error
	List(ctx context.Context, entity string, limit, offset int) ([]domain.ActivityLog, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Log writes an audit entry. Failures are reported to the operator and
// swallowed: the audit trail never blocks the operation it records.
func (s *Service) Log(ctx context.Context, entry *domain.ActivityLog) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		log.Printf("activity_log_error action=%s entity=%s entity_id=%d err=%v",
			entry.Action, entry.Entity, entry.EntityID, err)
	}
}

func (s *Service) List(ctx context.Context, entity string, limit, offset int) ([]domain.ActivityLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.List(ctx, entity, limit, offset)
}
