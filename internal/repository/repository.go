package repository

import (
	"context"
	"time"

	"cabanas-backoffice/internal/domain"
	"cabanas-backoffice/internal/utils"
)

type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) error
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	Update(ctx context.Context, r *domain.Reservation) error
	UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error
	List(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error)

	// Stays touching [from, to] by check-in or check-out, cancelled excluded
	ListUpcoming(ctx context.Context, from, to utils.Date) ([]domain.Reservation, error)
	// Active reservations with at least one night in [from, to)
	ListOccupying(ctx context.Context, from, to utils.Date) ([]domain.Reservation, error)
	CountByStatus(ctx context.Context, status domain.ReservationStatus) (int, error)
	// CompleteFinishedStays moves checked_in stays that ended before today to checked_out
	CompleteFinishedStays(ctx context.Context, today utils.Date) ([]string, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	Delete(ctx context.Context, id string) error
	ListByReservation(ctx context.Context, reservationID string) ([]domain.Payment, error)
	ListByReservations(ctx context.Context, reservationIDs []string) ([]domain.Payment, error)
	SumSince(ctx context.Context, since time.Time) (float64, error)
}

type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) error
	GetByID(ctx context.Context, id string) (*domain.Message, error)
	List(ctx context.Context, filter domain.MessageFilter) ([]domain.Message, error)
	UpdateFlags(ctx context.Context, id string, isRead, archived bool) error
	CountUnread(ctx context.Context) (int, error)
}

type CabinRepository interface {
	List(ctx context.Context) ([]domain.Cabin, error)
	GetByID(ctx context.Context, id string) (*domain.Cabin, error)
}

// Pinger reports backend reachability
type Pinger interface {
	PingContext(ctx context.Context) error
}
