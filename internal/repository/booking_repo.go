package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"marinaclub/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrBerthOverlap  = errors.New("berth already booked for overlapping dates")
	ErrVesselOverlap = errors.New("vessel already booked for overlapping dates")
)

// PaymentsNotPendingError aborts a cancellation because some of the booking's
// payments already left the pending state by the time the transaction ran.
type PaymentsNotPendingError struct {
	Count int
}

func (e *PaymentsNotPendingError) Error() string {
	return fmt.Sprintf("%d payments are no longer pending", e.Count)
}

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID          int64      `gorm:"column:id;primaryKey"`
	ClubID      int64      `gorm:"column:club_id;index"`
	BerthID     int64      `gorm:"column:berth_id;index"`
	VesselID    int64      `gorm:"column:vessel_id;index"`
	UserID      int64      `gorm:"column:user_id;index"`
	TariffID    *int64     `gorm:"column:tariff_id"`
	StartDate   time.Time  `gorm:"column:start_date"`
	EndDate     time.Time  `gorm:"column:end_date"`
	TotalPrice  float64    `gorm:"column:total_price"`
	Status      string     `gorm:"column:status"`
	AutoRenewal bool       `gorm:"column:auto_renewal"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	CancelledAt *time.Time `gorm:"column:cancelled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:          m.ID,
		ClubID:      m.ClubID,
		BerthID:     m.BerthID,
		VesselID:    m.VesselID,
		UserID:      m.UserID,
		TariffID:    m.TariffID,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		TotalPrice:  m.TotalPrice,
		Status:      domain.BookingStatus(m.Status),
		AutoRenewal: m.AutoRenewal,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		CancelledAt: m.CancelledAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:          b.ID,
		ClubID:      b.ClubID,
		BerthID:     b.BerthID,
		VesselID:    b.VesselID,
		UserID:      b.UserID,
		TariffID:    b.TariffID,
		StartDate:   b.StartDate,
		EndDate:     b.EndDate,
		TotalPrice:  b.TotalPrice,
		Status:      string(b.Status),
		AutoRenewal: b.AutoRenewal,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
		CancelledAt: b.CancelledAt,
	}
}

const overlapByBerthQuery = `
SELECT COUNT(1)
FROM bookings
WHERE berth_id = ?
  AND status <> 'cancelled'
  AND start_date <= ?
  AND end_date >= ?
`

const overlapByVesselQuery = `
SELECT COUNT(1)
FROM bookings
WHERE vessel_id = ?
  AND status <> 'cancelled'
  AND start_date <= ?
  AND end_date >= ?
`

// CreateChecked runs the overlap checks and the insert of the booking plus
// its payment schedule in one transaction, serializable on postgres so that
// two concurrent requests for a contested slot cannot both pass the check.
// SQLite transactions are serializable by default, so no options are passed
// there. A unique/exclusion violation from a deployment-level constraint is
// mapped to the same conflict error.
func (r *BookingRepository) CreateChecked(ctx context.Context, b *domain.Booking, payments []domain.Payment) error {
	run := func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Raw(overlapByBerthQuery, b.BerthID, b.EndDate, b.StartDate).Scan(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return ErrBerthOverlap
		}

		if err := tx.Raw(overlapByVesselQuery, b.VesselID, b.EndDate, b.StartDate).Scan(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return ErrVesselOverlap
		}

		m := toBookingModel(b)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		*b = *toDomainBooking(m)

		for i := range payments {
			payments[i].BookingID = m.ID
			pm := toPaymentModel(&payments[i])
			if err := tx.Create(&pm).Error; err != nil {
				return err
			}
			payments[i] = *toDomainPayment(pm)
		}
		return nil
	}

	var err error
	if r.db.Dialector.Name() == "postgres" {
		err = r.db.WithContext(ctx).Transaction(run, &sql.TxOptions{Isolation: sql.LevelSerializable})
	} else {
		err = r.db.WithContext(ctx).Transaction(run)
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// 23505 unique_violation, 23P01 exclusion_violation
			if pgErr.Code == "23505" || pgErr.Code == "23P01" {
				return ErrBerthOverlap
			}
		}
		return err
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date DESC").
		Limit(limit).Offset(offset).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) ListByClub(ctx context.Context, clubID int64) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).Where("club_id = ?", clubID).Order("start_date DESC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) error {
	updates := map[string]any{"status": string(status), "updated_at": time.Now()}
	if status == domain.BookingCancelled {
		now := time.Now()
		updates["cancelled_at"] = &now
	}
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).Where("id = ?", bookingID).Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CancelIfPending cancels the booking only while it is still pending,
// cancels its remaining pending payments and frees the berth. Returns false
// when the booking already left the pending state, which makes the expiry
// sweep idempotent under races with a concurrent manual action.
func (r *BookingRepository) CancelIfPending(ctx context.Context, bookingID, berthID int64) (bool, error) {
	changed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		res := tx.Model(&bookingModel{}).
			Where("id = ? AND status = ?", bookingID, string(domain.BookingPending)).
			Updates(map[string]any{
				"status":       string(domain.BookingCancelled),
				"cancelled_at": &now,
				"updated_at":   now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		changed = true

		res = tx.Model(&paymentModel{}).
			Where("booking_id = ? AND status = ?", bookingID, string(domain.PaymentPending)).
			Updates(map[string]any{"status": string(domain.PaymentCancelled), "updated_at": now})
		if res.Error != nil {
			return res.Error
		}

		res = tx.Model(&berthModel{}).
			Where("id = ?", berthID).
			Updates(map[string]any{"is_available": true, "updated_at": now})
		return res.Error
	})
	return changed, err
}

// CancelWithPayments cancels the booking's pending payments, the booking
// itself and frees the berth, all in one transaction. The all-pending
// precondition is verified inside the transaction: the payment update only
// touches pending rows, and any payment left in another state afterwards
// aborts the whole cancellation with PaymentsNotPendingError. A payment that
// settles concurrently either blocks on the row lock and becomes a no-op, or
// commits first and is caught by the re-count, so a paid payment can never be
// flipped to cancelled here.
func (r *BookingRepository) CancelWithPayments(ctx context.Context, bookingID, berthID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		res := tx.Model(&paymentModel{}).
			Where("booking_id = ? AND status = ?", bookingID, string(domain.PaymentPending)).
			Updates(map[string]any{"status": string(domain.PaymentCancelled), "updated_at": now})
		if res.Error != nil {
			return res.Error
		}

		var blocked int64
		if err := tx.Model(&paymentModel{}).
			Where("booking_id = ? AND status <> ?", bookingID, string(domain.PaymentCancelled)).
			Count(&blocked).Error; err != nil {
			return err
		}
		if blocked > 0 {
			return &PaymentsNotPendingError{Count: int(blocked)}
		}

		res = tx.Model(&bookingModel{}).
			Where("id = ? AND status <> ?", bookingID, string(domain.BookingCancelled)).
			Updates(map[string]any{
				"status":       string(domain.BookingCancelled),
				"cancelled_at": &now,
				"updated_at":   now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		res = tx.Model(&berthModel{}).
			Where("id = ?", berthID).
			Updates(map[string]any{"is_available": true, "updated_at": now})
		return res.Error
	})
}
