package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marinaclub/internal/domain"
)

func newTestSweeper(payments *MockPaymentRepository, bookings *MockBookingRepository) *Sweeper {
	return NewSweeper(payments, bookings, 2*time.Minute, 5*time.Minute, nil)
}

func TestSweep_ExpiresImmediatePaymentAndCancelsBooking(t *testing.T) {
	payments := new(MockPaymentRepository)
	bookings := new(MockBookingRepository)
	s := newTestSweeper(payments, bookings)
	ctx := context.Background()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	created := now.Add(-10 * time.Minute)
	expired := domain.Payment{
		ID:        1,
		BookingID: 7,
		Status:    domain.PaymentPending,
		CreatedAt: created,
		DueDate:   created.Add(time.Minute), // immediate-due
	}

	payments.On("ListPendingCreatedBefore", ctx, now.Add(-2*time.Minute)).Return([]domain.Payment{expired}, nil)
	payments.On("MarkOverdueIfPending", ctx, int64(1)).Return(true, nil)
	bookings.On("GetByID", ctx, int64(7)).Return(&domain.Booking{ID: 7, BerthID: 3, Status: domain.BookingPending}, nil)
	bookings.On("CancelIfPending", ctx, int64(7), int64(3)).Return(true, nil)

	stats, err := s.RunOnce(ctx, now)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Scanned)
	assert.Equal(t, 1, stats.MarkedOverdue)
	assert.Equal(t, 1, stats.BookingsCancelled)
	bookings.AssertExpectations(t)
}

func TestSweep_SkipsScheduledPayments(t *testing.T) {
	payments := new(MockPaymentRepository)
	bookings := new(MockBookingRepository)
	s := newTestSweeper(payments, bookings)
	ctx := context.Background()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	created := now.Add(-time.Hour)
	scheduled := domain.Payment{
		ID:        2,
		BookingID: 7,
		Status:    domain.PaymentPending,
		CreatedAt: created,
		DueDate:   created.AddDate(0, 1, 0), // due next month, not immediate
	}

	payments.On("ListPendingCreatedBefore", ctx, mock.AnythingOfType("time.Time")).Return([]domain.Payment{scheduled}, nil)

	stats, err := s.RunOnce(ctx, now)
	require.NoError(t, err)

	assert.Zero(t, stats.Scanned)
	assert.Zero(t, stats.MarkedOverdue)
	payments.AssertNotCalled(t, "MarkOverdueIfPending", mock.Anything, mock.Anything)
}

func TestSweep_ConcurrentPaymentWinsOverSweep(t *testing.T) {
	payments := new(MockPaymentRepository)
	bookings := new(MockBookingRepository)
	s := newTestSweeper(payments, bookings)
	ctx := context.Background()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	created := now.Add(-10 * time.Minute)
	p := domain.Payment{
		ID:        1,
		BookingID: 7,
		Status:    domain.PaymentPending,
		CreatedAt: created,
		DueDate:   created.Add(time.Minute),
	}

	payments.On("ListPendingCreatedBefore", ctx, mock.AnythingOfType("time.Time")).Return([]domain.Payment{p}, nil)
	// paid between the scan and the guarded update
	payments.On("MarkOverdueIfPending", ctx, int64(1)).Return(false, nil)

	stats, err := s.RunOnce(ctx, now)
	require.NoError(t, err)

	assert.Zero(t, stats.MarkedOverdue)
	bookings.AssertNotCalled(t, "CancelIfPending", mock.Anything, mock.Anything, mock.Anything)
}

func TestSweep_ConfirmedBookingLeftAlone(t *testing.T) {
	payments := new(MockPaymentRepository)
	bookings := new(MockBookingRepository)
	s := newTestSweeper(payments, bookings)
	ctx := context.Background()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	created := now.Add(-10 * time.Minute)
	p := domain.Payment{
		ID:        1,
		BookingID: 7,
		Status:    domain.PaymentPending,
		CreatedAt: created,
		DueDate:   created.Add(time.Minute),
	}

	payments.On("ListPendingCreatedBefore", ctx, mock.AnythingOfType("time.Time")).Return([]domain.Payment{p}, nil)
	payments.On("MarkOverdueIfPending", ctx, int64(1)).Return(true, nil)
	bookings.On("GetByID", ctx, int64(7)).Return(&domain.Booking{ID: 7, BerthID: 3, Status: domain.BookingConfirmed}, nil)

	stats, err := s.RunOnce(ctx, now)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.MarkedOverdue)
	assert.Zero(t, stats.BookingsCancelled)
	bookings.AssertNotCalled(t, "CancelIfPending", mock.Anything, mock.Anything, mock.Anything)
}

// Running the same pass twice must not double-count: the second pass sees
// the payment already overdue and does nothing.
func TestSweep_SecondPassIsNoop(t *testing.T) {
	payments := new(MockPaymentRepository)
	bookings := new(MockBookingRepository)
	s := newTestSweeper(payments, bookings)
	ctx := context.Background()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	payments.On("ListPendingCreatedBefore", ctx, mock.AnythingOfType("time.Time")).Return([]domain.Payment{}, nil)

	stats, err := s.RunOnce(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, stats.Scanned)
	assert.Zero(t, stats.MarkedOverdue)
	assert.Zero(t, stats.BookingsCancelled)
}

func TestSweep_OverduePenaltyApplied(t *testing.T) {
	payments := new(MockPaymentRepository)
	bookings := new(MockBookingRepository)
	s := newTestSweeper(payments, bookings).WithOverduePenalty(500)
	ctx := context.Background()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	created := now.Add(-10 * time.Minute)
	p := domain.Payment{ID: 1, BookingID: 7, Status: domain.PaymentPending, CreatedAt: created, DueDate: created.Add(time.Minute)}

	payments.On("ListPendingCreatedBefore", ctx, mock.AnythingOfType("time.Time")).Return([]domain.Payment{p}, nil)
	payments.On("MarkOverdueIfPending", ctx, int64(1)).Return(true, nil)
	payments.On("AddPenalty", ctx, int64(1), float64(500)).Return(nil)
	bookings.On("GetByID", ctx, int64(7)).Return(&domain.Booking{ID: 7, BerthID: 3, Status: domain.BookingPending}, nil)
	bookings.On("CancelIfPending", ctx, int64(7), int64(3)).Return(true, nil)

	_, err := s.RunOnce(ctx, now)
	require.NoError(t, err)
	payments.AssertExpectations(t)
}

func TestSweep_IndividualErrorDoesNotAbortPass(t *testing.T) {
	payments := new(MockPaymentRepository)
	bookings := new(MockBookingRepository)
	s := newTestSweeper(payments, bookings)
	ctx := context.Background()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	created := now.Add(-10 * time.Minute)
	first := domain.Payment{ID: 1, BookingID: 7, Status: domain.PaymentPending, CreatedAt: created, DueDate: created.Add(time.Minute)}
	second := domain.Payment{ID: 2, BookingID: 8, Status: domain.PaymentPending, CreatedAt: created, DueDate: created.Add(time.Minute)}

	payments.On("ListPendingCreatedBefore", ctx, mock.AnythingOfType("time.Time")).Return([]domain.Payment{first, second}, nil)
	payments.On("MarkOverdueIfPending", ctx, int64(1)).Return(false, assert.AnError)
	payments.On("MarkOverdueIfPending", ctx, int64(2)).Return(true, nil)
	bookings.On("GetByID", ctx, int64(8)).Return(&domain.Booking{ID: 8, BerthID: 4, Status: domain.BookingPending}, nil)
	bookings.On("CancelIfPending", ctx, int64(8), int64(4)).Return(true, nil)

	stats, err := s.RunOnce(ctx, now)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Scanned)
	assert.Equal(t, 1, stats.MarkedOverdue)
	assert.Equal(t, 1, stats.BookingsCancelled)
}
