package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marinaclub/internal/domain"
	"marinaclub/internal/modules/booking"
)

func sumAmounts(payments []domain.Payment) float64 {
	var total float64
	for _, p := range payments {
		total += p.Amount
	}
	return total
}

func TestBuild_MonthlySplitsPerMonth(t *testing.T) {
	b := NewScheduleBuilder(time.Minute)
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	res := &booking.Resolution{
		StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 8, 31, 0, 0, 0, 0, time.UTC),
		Months:    domain.MonthList{6, 7, 8},
		Base:      3000,
		Monthly:   true,
	}

	payments := b.Build(42, res, false, now)
	require.Len(t, payments, 3)

	assert.Equal(t, res.Total(), sumAmounts(payments))
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), payments[0].DueDate)
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), payments[1].DueDate)
	assert.Equal(t, time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), payments[2].DueDate)
	for _, p := range payments {
		assert.Equal(t, float64(1000), p.Amount)
		assert.Equal(t, domain.PaymentPending, p.Status)
		assert.Equal(t, int64(42), p.UserID)
		assert.NotEmpty(t, p.Reference)
	}
}

func TestBuild_IndivisibleSplitKeepsExactTotal(t *testing.T) {
	b := NewScheduleBuilder(time.Minute)
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	// 1000 over three months does not split evenly; the last instalment
	// carries the remainder
	res := &booking.Resolution{
		StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Months:    domain.MonthList{6, 7, 8},
		Base:      1000,
		Monthly:   true,
	}

	payments := b.Build(42, res, false, now)
	require.Len(t, payments, 3)

	assert.Equal(t, 333.33, payments[0].Amount)
	assert.Equal(t, 333.33, payments[1].Amount)
	assert.InDelta(t, 333.34, payments[2].Amount, 1e-9)
	assert.InDelta(t, res.Total(), sumAmounts(payments), 1e-9)
}

func TestBuild_PayNowPullsFirstPaymentForward(t *testing.T) {
	b := NewScheduleBuilder(time.Minute)
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	res := &booking.Resolution{
		StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Months:    domain.MonthList{6, 7},
		Base:      2000,
		Monthly:   true,
	}

	payments := b.Build(42, res, true, now)
	require.Len(t, payments, 2)

	assert.Equal(t, now.Add(time.Minute), payments[0].DueDate)
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), payments[1].DueDate)
}

func TestBuild_PastDueMonthsBecomeImmediate(t *testing.T) {
	b := NewScheduleBuilder(time.Minute)
	// booking made mid-season: June and July already started
	now := time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC)

	res := &booking.Resolution{
		StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Months:    domain.MonthList{6, 7, 8},
		Base:      3000,
		Monthly:   true,
	}

	payments := b.Build(42, res, false, now)
	require.Len(t, payments, 3)

	assert.Equal(t, now.Add(time.Minute), payments[0].DueDate)
	assert.Equal(t, now.Add(time.Minute), payments[1].DueDate)
	assert.Equal(t, time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), payments[2].DueDate)
	assert.Equal(t, res.Total(), sumAmounts(payments))
}

func TestBuild_SingleLumpSum(t *testing.T) {
	b := NewScheduleBuilder(time.Minute)
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	res := &booking.Resolution{
		StartDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Months:    domain.MonthList{5, 6, 7, 8, 9},
		Base:      200000,
	}

	payments := b.Build(42, res, false, now)
	require.Len(t, payments, 1)
	assert.Equal(t, float64(200000), payments[0].Amount)
	assert.Equal(t, res.StartDate, payments[0].DueDate)
}

func TestBuild_DepositAlwaysImmediate(t *testing.T) {
	b := NewScheduleBuilder(time.Minute)
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	res := &booking.Resolution{
		StartDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Months:    domain.MonthList{5, 6, 7, 8, 9},
		Base:      200000,
		Deposit:   20000,
	}

	payments := b.Build(42, res, false, now)
	require.Len(t, payments, 2)

	assert.Equal(t, float64(20000), payments[0].Amount)
	assert.Equal(t, now.Add(time.Minute), payments[0].DueDate)
	assert.Equal(t, float64(200000), payments[1].Amount)
	assert.Equal(t, res.Total(), sumAmounts(payments))
}

func TestBuild_UniqueReferences(t *testing.T) {
	b := NewScheduleBuilder(time.Minute)
	now := time.Now().UTC()

	res := &booking.Resolution{
		StartDate: time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC),
		Months:    domain.MonthList{6, 7, 8},
		Base:      300,
		Deposit:   50,
		Monthly:   true,
	}

	seen := map[string]bool{}
	for _, p := range b.Build(42, res, false, now) {
		assert.False(t, seen[p.Reference])
		seen[p.Reference] = true
	}
	assert.Len(t, seen, 4)
}
