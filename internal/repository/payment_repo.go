package repository

import (
	"context"
	"errors"
	"time"

	"marinaclub/internal/domain"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

type paymentModel struct {
	ID        int64      `gorm:"column:id;primaryKey"`
	Reference string     `gorm:"column:reference;uniqueIndex"`
	BookingID int64      `gorm:"column:booking_id;index"`
	UserID    int64      `gorm:"column:user_id;index"`
	Amount    float64    `gorm:"column:amount"`
	Status    string     `gorm:"column:status"`
	DueDate   time.Time  `gorm:"column:due_date"`
	Penalty   float64    `gorm:"column:penalty"`
	PaidAt    *time.Time `gorm:"column:paid_at"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
}

func (paymentModel) TableName() string { return "payments" }

func toDomainPayment(m paymentModel) *domain.Payment {
	return &domain.Payment{
		ID:        m.ID,
		Reference: m.Reference,
		BookingID: m.BookingID,
		UserID:    m.UserID,
		Amount:    m.Amount,
		Status:    domain.PaymentStatus(m.Status),
		DueDate:   m.DueDate,
		Penalty:   m.Penalty,
		PaidAt:    m.PaidAt,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toPaymentModel(p *domain.Payment) paymentModel {
	return paymentModel{
		ID:        p.ID,
		Reference: p.Reference,
		BookingID: p.BookingID,
		UserID:    p.UserID,
		Amount:    p.Amount,
		Status:    string(p.Status),
		DueDate:   p.DueDate,
		Penalty:   p.Penalty,
		PaidAt:    p.PaidAt,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	var m paymentModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainPayment(m), nil
}

func (r *PaymentRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	var rows []paymentModel
	tx := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).Order("due_date ASC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Payment, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainPayment(m))
	}
	return out, nil
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Payment, error) {
	var rows []paymentModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("due_date ASC").
		Limit(limit).Offset(offset).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Payment, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainPayment(m))
	}
	return out, nil
}

// MarkPaidIdempotent flips a pending or overdue payment to paid. Returns
// false without error when the payment was already paid, so a duplicate
// confirmation is a no-op.
func (r *PaymentRepository) MarkPaidIdempotent(ctx context.Context, paymentID int64, paidAt time.Time) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&paymentModel{}).
		Where("id = ? AND status IN ?", paymentID, []string{
			string(domain.PaymentPending),
			string(domain.PaymentOverdue),
		}).
		Updates(map[string]any{
			"status":     string(domain.PaymentPaid),
			"paid_at":    &paidAt,
			"updated_at": paidAt,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, paymentID int64, status domain.PaymentStatus) error {
	tx := r.db.WithContext(ctx).Model(&paymentModel{}).
		Where("id = ?", paymentID).
		Updates(map[string]any{"status": string(status), "updated_at": time.Now()})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkOverdueIfPending is the sweep's guarded transition: it only fires when
// the payment is still pending, tolerating a concurrent manual payment.
func (r *PaymentRepository) MarkOverdueIfPending(ctx context.Context, paymentID int64) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&paymentModel{}).
		Where("id = ? AND status = ?", paymentID, string(domain.PaymentPending)).
		Updates(map[string]any{"status": string(domain.PaymentOverdue), "updated_at": time.Now()})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// ListPendingCreatedBefore returns pending payments created before the
// cutoff. Due-date-vs-creation arithmetic is done by the caller so the query
// stays portable across postgres and sqlite.
func (r *PaymentRepository) ListPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]domain.Payment, error) {
	var rows []paymentModel
	tx := r.db.WithContext(ctx).
		Where("status = ? AND created_at <= ?", string(domain.PaymentPending), cutoff).
		Order("created_at ASC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Payment, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainPayment(m))
	}
	return out, nil
}

func (r *PaymentRepository) AddPenalty(ctx context.Context, paymentID int64, penalty float64) error {
	tx := r.db.WithContext(ctx).Model(&paymentModel{}).
		Where("id = ?", paymentID).
		Updates(map[string]any{"penalty": gorm.Expr("penalty + ?", penalty), "updated_at": time.Now()})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
