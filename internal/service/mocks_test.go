package service

import (
	"context"
	"time"

	"cabanas-backoffice/internal/domain"
	"cabanas-backoffice/internal/utils"

	"github.com/stretchr/testify/mock"
)

// MockReservationRepo
type MockReservationRepo struct {
	mock.Mock
}

func (m *MockReservationRepo) Create(ctx context.Context, r *domain.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockReservationRepo) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) Update(ctx context.Context, r *domain.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockReservationRepo) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockReservationRepo) List(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) ListUpcoming(ctx context.Context, from, to utils.Date) ([]domain.Reservation, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) ListOccupying(ctx context.Context, from, to utils.Date) ([]domain.Reservation, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) CountByStatus(ctx context.Context, status domain.ReservationStatus) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}
func (m *MockReservationRepo) CompleteFinishedStays(ctx context.Context, today utils.Date) ([]string, error) {
	args := m.Called(ctx, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPaymentRepo) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockPaymentRepo) ListByReservation(ctx context.Context, reservationID string) ([]domain.Payment, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) ListByReservations(ctx context.Context, reservationIDs []string) ([]domain.Payment, error) {
	args := m.Called(ctx, reservationIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) SumSince(ctx context.Context, since time.Time) (float64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(float64), args.Error(1)
}

// MockMessageRepo
type MockMessageRepo struct {
	mock.Mock
}

func (m *MockMessageRepo) Create(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
func (m *MockMessageRepo) GetByID(ctx context.Context, id string) (*domain.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}
func (m *MockMessageRepo) List(ctx context.Context, filter domain.MessageFilter) ([]domain.Message, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Message), args.Error(1)
}
func (m *MockMessageRepo) UpdateFlags(ctx context.Context, id string, isRead, archived bool) error {
	args := m.Called(ctx, id, isRead, archived)
	return args.Error(0)
}
func (m *MockMessageRepo) CountUnread(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockCabinRepo
type MockCabinRepo struct {
	mock.Mock
}

func (m *MockCabinRepo) List(ctx context.Context) ([]domain.Cabin, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Cabin), args.Error(1)
}
func (m *MockCabinRepo) GetByID(ctx context.Context, id string) (*domain.Cabin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cabin), args.Error(1)
}

// MockIdentity
type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) CurrentUserID(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, eventType, key, actorID string, payload any) error {
	args := m.Called(ctx, eventType, key, actorID, payload)
	return args.Error(0)
}
func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendNewMessageNotification(ctx context.Context, to string, msg *domain.Message) error {
	args := m.Called(ctx, to, msg)
	return args.Error(0)
}
func (m *MockEmailService) SendDailyDigest(ctx context.Context, to string, alerts *domain.Alerts) error {
	args := m.Called(ctx, to, alerts)
	return args.Error(0)
}

// MockPushService
type MockPushService struct {
	mock.Mock
}

func (m *MockPushService) NotifyStaff(ctx context.Context, title, body string, data map[string]string) error {
	args := m.Called(ctx, title, body, data)
	return args.Error(0)
}

// MockCabinService
type MockCabinService struct {
	mock.Mock
}

func (m *MockCabinService) ListCabins(ctx context.Context) ([]domain.Cabin, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Cabin), args.Error(1)
}

// MockCache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, dest any) error {
	args := m.Called(ctx, key, dest)
	return args.Error(0)
}

func (m *MockCache) Set(ctx context.Context, key string, value any) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}
