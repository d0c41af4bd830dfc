package service

import (
	"context"

	"cabanas-backoffice/internal/booking"
	"cabanas-backoffice/internal/domain"
)

type ReservationService interface {
	CreateReservation(ctx context.Context, input ReservationInput) (*domain.Reservation, error)
	UpdateReservation(ctx context.Context, id string, input ReservationInput) (*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id string, status string) (*domain.Reservation, error)
	CancelReservation(ctx context.Context, id string) (*domain.Reservation, error)
	GetReservation(ctx context.Context, id string) (*domain.Reservation, error)
	ListReservations(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error)
	CheckAvailability(ctx context.Context, input AvailabilityInput) (*Availability, error)
	ListBlocks(ctx context.Context, cabinID string) (map[string][]booking.Block, error)
}

type PaymentService interface {
	CreatePayment(ctx context.Context, input PaymentInput) (*domain.Payment, error)
	DeletePayment(ctx context.Context, id string) error
	ListPayments(ctx context.Context, reservationID string) (*domain.ReservationPayments, error)
	ListPaymentSummaries(ctx context.Context, search string) ([]domain.ReservationPayments, error)
}

type MessageService interface {
	SubmitMessage(ctx context.Context, input MessageInput) (*domain.Message, error)
	ListMessages(ctx context.Context, filter domain.MessageFilter) ([]domain.Message, error)
	MarkRead(ctx context.Context, id string) error
	Archive(ctx context.Context, id string, isRead, archived *bool) error
}

type CabinService interface {
	ListCabins(ctx context.Context) ([]domain.Cabin, error)
}

type AlertService interface {
	GetAlerts(ctx context.Context) (*domain.Alerts, error)
}

type DashboardService interface {
	GetStats(ctx context.Context) (*domain.DashboardStats, error)
	GetCalendar(ctx context.Context, month, cabinID string) (*domain.CalendarMonth, error)
}

type EmailService interface {
	SendNewMessageNotification(ctx context.Context, to string, msg *domain.Message) error
	SendDailyDigest(ctx context.Context, to string, alerts *domain.Alerts) error
}

type PushService interface {
	NotifyStaff(ctx context.Context, title, body string, data map[string]string) error
}
