package service

import (
	"context"
	"testing"
	"time"

	"cabanas-backoffice/internal/booking"
	"cabanas-backoffice/internal/cache"
	"cabanas-backoffice/internal/domain"
	"cabanas-backoffice/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

func TestAlertService_GetAlerts(t *testing.T) {
	ctx := context.Background()
	resRepo := new(MockReservationRepo)
	payRepo := new(MockPaymentRepo)
	msgRepo := new(MockMessageRepo)

	svc := NewAlertService(resRepo, payRepo, msgRepo, AlertSettings{WindowDays: 3, Epsilon: 0.1, Policy: booking.SumAll}, time.UTC)
	svc.(*alertService).now = func() time.Time { return fixedNow }

	today := utils.NewDate(2024, time.March, 10)
	arriving := stay("a", "C1", "2024-03-12", "2024-03-15", domain.ReservationStatusConfirmed)
	arriving.Amount = money(100000)
	leaving := stay("l", "C2", "2024-03-05", "2024-03-11", domain.ReservationStatusCheckedIn)
	leaving.Amount = money(50000)
	later := stay("x", "C3", "2024-04-01", "2024-04-03", domain.ReservationStatusPending)
	later.Amount = money(20000)

	resRepo.On("ListUpcoming", ctx, today, today.AddDays(3)).Return([]domain.Reservation{leaving, arriving}, nil)
	resRepo.On("List", ctx, domain.ReservationFilter{ActiveOnly: true}).Return([]domain.Reservation{arriving, leaving, later}, nil)
	payRepo.On("ListByReservations", ctx, mock.Anything).Return([]domain.Payment{
		{ReservationID: "a", Amount: 30000, Status: domain.PaymentStatusConfirmed},
		{ReservationID: "a", Amount: 20000, Status: domain.PaymentStatusConfirmed},
		{ReservationID: "l", Amount: 50000, Status: domain.PaymentStatusConfirmed},
	}, nil)
	msgRepo.On("List", ctx, domain.MessageFilter{UnreadOnly: true}).Return([]domain.Message{{ID: "m1"}}, nil)

	alerts, err := svc.GetAlerts(ctx)
	require.NoError(t, err)

	assert.Equal(t, today, alerts.Today)
	require.Len(t, alerts.UpcomingCheckIns, 1)
	assert.Equal(t, "a", alerts.UpcomingCheckIns[0].Reservation.ID)
	assert.Equal(t, 50000.0, alerts.UpcomingCheckIns[0].Balance.Balance)
	require.Len(t, alerts.UpcomingCheckOuts, 1)
	assert.Equal(t, "l", alerts.UpcomingCheckOuts[0].Reservation.ID)

	pending := make([]string, 0)
	for _, a := range alerts.PendingBalances {
		pending = append(pending, a.Reservation.ID)
	}
	assert.ElementsMatch(t, []string{"a", "x"}, pending)
	assert.Len(t, alerts.UnreadMessages, 1)
	assert.False(t, alerts.Empty())
}

func TestDashboardService_GetStats(t *testing.T) {
	ctx := context.Background()
	resRepo := new(MockReservationRepo)
	payRepo := new(MockPaymentRepo)
	msgRepo := new(MockMessageRepo)
	cabinSvc := new(MockCabinService)

	svc := NewDashboardService(resRepo, payRepo, msgRepo, cabinSvc, cache.NewNoopCache(), time.UTC)
	svc.(*dashboardService).now = func() time.Time { return fixedNow }

	today := utils.NewDate(2024, time.March, 10)
	cabinSvc.On("ListCabins", ctx).Return([]domain.Cabin{{ID: "C1"}, {ID: "C2"}, {ID: "C3"}, {ID: "C4"}}, nil)
	resRepo.On("ListOccupying", ctx, today, today.AddDays(1)).Return([]domain.Reservation{
		stay("r1", "C1", "2024-03-08", "2024-03-12", domain.ReservationStatusCheckedIn),
		stay("r2", "C2", "2024-03-10", "2024-03-11", domain.ReservationStatusConfirmed),
		stay("r3", "C3", "2024-03-09", "2024-03-13", domain.ReservationStatusPending),
	}, nil)
	resRepo.On("CountByStatus", ctx, domain.ReservationStatusPending).Return(5, nil)
	payRepo.On("SumSince", ctx, fixedNow.Add(-7*24*time.Hour)).Return(150000.0, nil)
	msgRepo.On("CountUnread", ctx).Return(2, nil)

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.OccupiedCabins)
	assert.Equal(t, 4, stats.TotalCabins)
	assert.Equal(t, 50.0, stats.OccupancyRate)
	assert.Equal(t, 5, stats.PendingReservations)
	assert.Equal(t, 150000.0, stats.RecentPayments)
	assert.Equal(t, 2, stats.UnreadMessages)
}

func TestDashboardService_GetCalendar(t *testing.T) {
	ctx := context.Background()
	resRepo := new(MockReservationRepo)
	cabinSvc := new(MockCabinService)

	svc := NewDashboardService(resRepo, new(MockPaymentRepo), new(MockMessageRepo), cabinSvc, cache.NewNoopCache(), time.UTC)
	svc.(*dashboardService).now = func() time.Time { return fixedNow }

	// March 2024 starts on a Friday, so the grid opens on Monday Feb 26
	gridStart := utils.NewDate(2024, time.February, 26)
	cabinSvc.On("ListCabins", ctx).Return([]domain.Cabin{{ID: "C1", Name: "Lenga"}, {ID: "C2", Name: "Coihue"}}, nil)
	resRepo.On("ListOccupying", ctx, gridStart.AddDays(-1), gridStart.AddDays(42)).Return([]domain.Reservation{
		stay("r1", "C1", "2024-03-10", "2024-03-12", domain.ReservationStatusConfirmed),
		stay("r2", "C1", "2024-03-12", "2024-03-14", domain.ReservationStatusPending),
		stay("r3", "C2", "2024-03-11", "2024-03-12", domain.ReservationStatusCancelled),
	}, nil)

	t.Run("Grid", func(t *testing.T) {
		cal, err := svc.GetCalendar(ctx, "2024-03", "")
		require.NoError(t, err)
		assert.Equal(t, "2024-03", cal.Month)
		require.Len(t, cal.Weeks, 6)
		for _, w := range cal.Weeks {
			require.Len(t, w, 7)
			assert.Equal(t, time.Monday, w[0].Date.Weekday())
		}
		assert.Equal(t, gridStart, cal.Weeks[0][0].Date)
		assert.False(t, cal.Weeks[0][0].InMonth)
		assert.True(t, cal.Weeks[0][4].InMonth)

		// Sunday March 10: r1 checks in
		mar10 := cal.Weeks[1][6]
		assert.Equal(t, utils.NewDate(2024, time.March, 10), mar10.Date)
		require.Len(t, mar10.Cabins, 1)
		assert.True(t, mar10.Cabins[0].CheckIn)
		assert.True(t, mar10.Occupied)

		// Tuesday March 12: r1 checks out, r2 checks in on the same cabin
		mar12 := cal.Weeks[2][1]
		require.Len(t, mar12.Cabins, 1)
		assert.Equal(t, "r2", mar12.Cabins[0].ReservationID)
		assert.True(t, mar12.Cabins[0].CheckIn)
		assert.True(t, mar12.Cabins[0].CheckOut)

		// Thursday March 14: r2 checked out, night is free
		mar14 := cal.Weeks[2][3]
		assert.False(t, mar14.Occupied)
		require.Len(t, mar14.Cabins, 1)
		assert.True(t, mar14.Cabins[0].CheckOut)
		assert.False(t, mar14.Cabins[0].Occupied)

		// cancelled stays never show
		mar11 := cal.Weeks[2][0]
		for _, c := range mar11.Cabins {
			assert.NotEqual(t, "C2", c.CabinID)
		}
	})

	t.Run("UnknownCabin", func(t *testing.T) {
		_, err := svc.GetCalendar(ctx, "2024-03", "C9")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("BadMonth", func(t *testing.T) {
		_, err := svc.GetCalendar(ctx, "March", "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestCabinService_ListCabins(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCabinRepo)
	repo.On("List", ctx).Return([]domain.Cabin{{ID: "C1", Name: "Lenga"}}, nil)

	svc := NewCabinService(repo, cache.NewNoopCache())
	cabins, err := svc.ListCabins(ctx)
	require.NoError(t, err)
	assert.Len(t, cabins, 1)
	repo.AssertNumberOfCalls(t, "List", 1)
}
