package http

import (
	"context"

	"cabanas-backoffice/internal/booking"
	"cabanas-backoffice/internal/domain"
	"cabanas-backoffice/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockReservationService struct{ mock.Mock }

func (m *MockReservationService) CreateReservation(ctx context.Context, input service.ReservationInput) (*domain.Reservation, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationService) UpdateReservation(ctx context.Context, id string, input service.ReservationInput) (*domain.Reservation, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationService) UpdateStatus(ctx context.Context, id string, status string) (*domain.Reservation, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationService) CancelReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationService) GetReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationService) ListReservations(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationService) CheckAvailability(ctx context.Context, input service.AvailabilityInput) (*service.Availability, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Availability), args.Error(1)
}

func (m *MockReservationService) ListBlocks(ctx context.Context, cabinID string) (map[string][]booking.Block, error) {
	args := m.Called(ctx, cabinID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]booking.Block), args.Error(1)
}

type MockMessageService struct{ mock.Mock }

func (m *MockMessageService) SubmitMessage(ctx context.Context, input service.MessageInput) (*domain.Message, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

func (m *MockMessageService) ListMessages(ctx context.Context, filter domain.MessageFilter) ([]domain.Message, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *MockMessageService) MarkRead(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockMessageService) Archive(ctx context.Context, id string, isRead, archived *bool) error {
	return m.Called(ctx, id, isRead, archived).Error(0)
}

type MockPaymentService struct{ mock.Mock }

func (m *MockPaymentService) CreatePayment(ctx context.Context, input service.PaymentInput) (*domain.Payment, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentService) DeletePayment(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPaymentService) ListPayments(ctx context.Context, reservationID string) (*domain.ReservationPayments, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReservationPayments), args.Error(1)
}

func (m *MockPaymentService) ListPaymentSummaries(ctx context.Context, search string) ([]domain.ReservationPayments, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReservationPayments), args.Error(1)
}

type MockPinger struct{ mock.Mock }

func (m *MockPinger) PingContext(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
