package service

import (
	"context"
	"errors"
	"math"
	"time"

	"cabanas-backoffice/internal/cache"
	"cabanas-backoffice/internal/domain"
	"cabanas-backoffice/internal/logger"
	"cabanas-backoffice/internal/repository"
	"cabanas-backoffice/internal/utils"
)

// recentPaymentsWindow is how far back the dashboard sums payments
const recentPaymentsWindow = 7 * 24 * time.Hour

const calendarDays = 42

type dashboardService struct {
	resRepo  repository.ReservationRepository
	payRepo  repository.PaymentRepository
	msgRepo  repository.MessageRepository
	cabinSvc CabinService
	cache    cache.Cache
	loc      *time.Location
	now      func() time.Time
}

func NewDashboardService(
	resRepo repository.ReservationRepository,
	payRepo repository.PaymentRepository,
	msgRepo repository.MessageRepository,
	cabinSvc CabinService,
	c cache.Cache,
	loc *time.Location,
) DashboardService {
	return &dashboardService{
		resRepo:  resRepo,
		payRepo:  payRepo,
		msgRepo:  msgRepo,
		cabinSvc: cabinSvc,
		cache:    c,
		loc:      loc,
		now:      time.Now,
	}
}

func (s *dashboardService) GetStats(ctx context.Context) (*domain.DashboardStats, error) {
	var cached domain.DashboardStats
	err := s.cache.Get(ctx, cache.KeyDashboard, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		logger.Warn("Dashboard cache unavailable", "error", err)
	}

	logger.EnterMethod("dashboardService.GetStats")
	now := s.now()
	today := utils.Today(now, s.loc)

	cabins, err := s.cabinSvc.ListCabins(ctx)
	if err != nil {
		logger.ExitMethodWithError("dashboardService.GetStats", err, false)
		return nil, err
	}
	occupying, err := s.resRepo.ListOccupying(ctx, today, today.AddDays(1))
	if err != nil {
		err = backendError("list occupied cabins", err)
		logger.ExitMethodWithError("dashboardService.GetStats", err, false)
		return nil, err
	}
	pending, err := s.resRepo.CountByStatus(ctx, domain.ReservationStatusPending)
	if err != nil {
		err = backendError("count pending reservations", err)
		logger.ExitMethodWithError("dashboardService.GetStats", err, false)
		return nil, err
	}
	recent, err := s.payRepo.SumSince(ctx, now.Add(-recentPaymentsWindow))
	if err != nil {
		err = backendError("sum recent payments", err)
		logger.ExitMethodWithError("dashboardService.GetStats", err, false)
		return nil, err
	}
	unread, err := s.msgRepo.CountUnread(ctx)
	if err != nil {
		err = backendError("count unread messages", err)
		logger.ExitMethodWithError("dashboardService.GetStats", err, false)
		return nil, err
	}

	// A cabin counts as occupied tonight only once the stay is confirmed
	occupied := make(map[string]struct{})
	for _, r := range occupying {
		if r.Status != domain.ReservationStatusConfirmed && r.Status != domain.ReservationStatusCheckedIn {
			continue
		}
		if r.Occupies(today) {
			occupied[r.CabinID] = struct{}{}
		}
	}

	stats := &domain.DashboardStats{
		OccupiedCabins:      len(occupied),
		TotalCabins:         len(cabins),
		PendingReservations: pending,
		RecentPayments:      recent,
		UnreadMessages:      unread,
	}
	if stats.TotalCabins > 0 {
		stats.OccupancyRate = math.Round(float64(stats.OccupiedCabins) * 100 / float64(stats.TotalCabins))
	}

	if err := s.cache.Set(ctx, cache.KeyDashboard, stats); err != nil {
		logger.Warn("Failed to cache dashboard stats", "error", err)
	}
	logger.ExitMethod("dashboardService.GetStats", "occupied", stats.OccupiedCabins, "total", stats.TotalCabins)
	return stats, nil
}

// invalidateDashboard drops the cached stats after a write that changes them
func invalidateDashboard(ctx context.Context, c cache.Cache) {
	if err := c.Delete(ctx, cache.KeyDashboard); err != nil {
		logger.Warn("Failed to invalidate dashboard cache", "error", err)
	}
}

// GetCalendar builds a six week grid starting on the Monday on or before the
// first of month. An empty month means the current one.
func (s *dashboardService) GetCalendar(ctx context.Context, month, cabinID string) (*domain.CalendarMonth, error) {
	var first utils.Date
	if month == "" {
		today := utils.Today(s.now(), s.loc)
		first = utils.NewDate(today.Year, today.Month, 1)
	} else {
		var err error
		first, err = utils.ParseMonth(month)
		if err != nil {
			return nil, domain.NewValidationError("month", err.Error())
		}
	}

	cabins, err := s.cabinSvc.ListCabins(ctx)
	if err != nil {
		return nil, err
	}
	if cabinID != "" {
		filtered := cabins[:0:0]
		for _, c := range cabins {
			if c.ID == cabinID {
				filtered = append(filtered, c)
			}
		}
		if len(filtered) == 0 {
			return nil, domain.NewNotFoundError("cabin")
		}
		cabins = filtered
	}

	start := first.AddDays(-((int(first.Weekday()) + 6) % 7))
	end := start.AddDays(calendarDays)

	// Widen by a day so stays ending on the first cell still get a checkout flag
	reservations, err := s.resRepo.ListOccupying(ctx, start.AddDays(-1), end)
	if err != nil {
		return nil, backendError("list reservations", err)
	}
	byCabin := make(map[string][]domain.Reservation)
	for _, r := range reservations {
		byCabin[r.CabinID] = append(byCabin[r.CabinID], r)
	}

	cal := &domain.CalendarMonth{
		Month:   first.String()[:7],
		CabinID: cabinID,
		Weeks:   make([][]domain.CalendarDay, 0, calendarDays/7),
	}
	for w := 0; w < calendarDays/7; w++ {
		week := make([]domain.CalendarDay, 0, 7)
		for d := 0; d < 7; d++ {
			day := start.AddDays(w*7 + d)
			week = append(week, buildDay(day, first, cabins, byCabin))
		}
		cal.Weeks = append(cal.Weeks, week)
	}
	return cal, nil
}

func buildDay(day, first utils.Date, cabins []domain.Cabin, byCabin map[string][]domain.Reservation) domain.CalendarDay {
	cd := domain.CalendarDay{
		Date:    day,
		InMonth: day.Year == first.Year && day.Month == first.Month,
		Cabins:  []domain.CabinDayStatus{},
	}
	for _, c := range cabins {
		status := domain.CabinDayStatus{CabinID: c.ID, Name: c.Name}
		for i := range byCabin[c.ID] {
			r := &byCabin[c.ID][i]
			if !r.Status.IsActive() {
				continue
			}
			if r.Occupies(day) {
				status.Occupied = true
				status.ReservationID = r.ID
				status.GuestName = r.GuestName
				status.CheckIn = r.CheckIn.Equal(day)
			}
			if r.CheckOut.Equal(day) {
				status.CheckOut = true
				if status.ReservationID == "" {
					status.ReservationID = r.ID
					status.GuestName = r.GuestName
				}
			}
		}
		if status.Occupied || status.CheckOut {
			cd.Cabins = append(cd.Cabins, status)
		}
		if status.Occupied {
			cd.Occupied = true
		}
	}
	return cd
}
