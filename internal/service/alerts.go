package service

import (
	"context"
	"time"

	"cabanas-backoffice/internal/booking"
	"cabanas-backoffice/internal/domain"
	"cabanas-backoffice/internal/logger"
	"cabanas-backoffice/internal/repository"
	"cabanas-backoffice/internal/utils"
)

// AlertSettings are the business rules behind the alerts screen
type AlertSettings struct {
	WindowDays int
	Epsilon    float64
	Policy     booking.SumPolicy
}

type alertService struct {
	resRepo  repository.ReservationRepository
	payRepo  repository.PaymentRepository
	msgRepo  repository.MessageRepository
	settings AlertSettings
	loc      *time.Location
	now      func() time.Time
}

func NewAlertService(
	resRepo repository.ReservationRepository,
	payRepo repository.PaymentRepository,
	msgRepo repository.MessageRepository,
	settings AlertSettings,
	loc *time.Location,
) AlertService {
	return &alertService{
		resRepo:  resRepo,
		payRepo:  payRepo,
		msgRepo:  msgRepo,
		settings: settings,
		loc:      loc,
		now:      time.Now,
	}
}

func (s *alertService) GetAlerts(ctx context.Context) (*domain.Alerts, error) {
	today := utils.Today(s.now(), s.loc)
	until := today.AddDays(s.settings.WindowDays)
	logger.EnterMethod("alertService.GetAlerts", "today", today, "until", until)

	upcoming, err := s.resRepo.ListUpcoming(ctx, today, until)
	if err != nil {
		err = backendError("list upcoming reservations", err)
		logger.ExitMethodWithError("alertService.GetAlerts", err, false)
		return nil, err
	}
	active, err := s.resRepo.List(ctx, domain.ReservationFilter{ActiveOnly: true})
	if err != nil {
		err = backendError("list reservations", err)
		logger.ExitMethodWithError("alertService.GetAlerts", err, false)
		return nil, err
	}

	ids := make([]string, 0, len(active)+len(upcoming))
	for _, r := range active {
		ids = append(ids, r.ID)
	}
	for _, r := range upcoming {
		ids = append(ids, r.ID)
	}
	payments, err := s.payRepo.ListByReservations(ctx, dedupe(ids))
	if err != nil {
		err = backendError("list payments", err)
		logger.ExitMethodWithError("alertService.GetAlerts", err, false)
		return nil, err
	}
	byReservation := booking.GroupPayments(payments)
	withBalance := func(r domain.Reservation) domain.ReservationAlert {
		return domain.ReservationAlert{
			Reservation: r,
			Balance:     booking.ComputeBalance(r.Amount, byReservation[r.ID], s.settings.Policy),
		}
	}

	alerts := &domain.Alerts{
		Today:             today,
		UpcomingCheckIns:  []domain.ReservationAlert{},
		UpcomingCheckOuts: []domain.ReservationAlert{},
		PendingBalances:   []domain.ReservationAlert{},
	}
	for _, r := range upcoming {
		if !r.Status.IsActive() {
			continue
		}
		if within(r.CheckIn, today, until) {
			alerts.UpcomingCheckIns = append(alerts.UpcomingCheckIns, withBalance(r))
		}
		if within(r.CheckOut, today, until) {
			alerts.UpcomingCheckOuts = append(alerts.UpcomingCheckOuts, withBalance(r))
		}
	}
	for _, r := range active {
		a := withBalance(r)
		if booking.HasPendingBalance(r.Status, a.Balance, s.settings.Epsilon) {
			alerts.PendingBalances = append(alerts.PendingBalances, a)
		}
	}

	alerts.UnreadMessages, err = s.msgRepo.List(ctx, domain.MessageFilter{UnreadOnly: true})
	if err != nil {
		err = backendError("list messages", err)
		logger.ExitMethodWithError("alertService.GetAlerts", err, false)
		return nil, err
	}
	if alerts.UnreadMessages == nil {
		alerts.UnreadMessages = []domain.Message{}
	}

	logger.ExitMethod("alertService.GetAlerts", "checkIns", len(alerts.UpcomingCheckIns),
		"checkOuts", len(alerts.UpcomingCheckOuts), "pendingBalances", len(alerts.PendingBalances),
		"unread", len(alerts.UnreadMessages))
	return alerts, nil
}

// within reports whether from <= d <= to
func within(d, from, to utils.Date) bool {
	return !d.Before(from) && !d.After(to)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
