package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"cabanas-backoffice/internal/config"
	"cabanas-backoffice/internal/domain"
	"cabanas-backoffice/internal/events"
	"cabanas-backoffice/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockReservationRepo struct{ mock.Mock }

func (m *MockReservationRepo) Create(ctx context.Context, r *domain.Reservation) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReservationRepo) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepo) Update(ctx context.Context, r *domain.Reservation) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReservationRepo) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockReservationRepo) List(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationRepo) ListUpcoming(ctx context.Context, from, to utils.Date) ([]domain.Reservation, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationRepo) ListOccupying(ctx context.Context, from, to utils.Date) ([]domain.Reservation, error) {
	args := m.Called(ctx, from, to)
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

type MockAlertService struct{ mock.Mock }

func (m *MockAlertService) GetAlerts(ctx context.Context) (*domain.Alerts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Alerts), args.Error(1)
}

type MockEmailService struct{ mock.Mock }

func (m *MockEmailService) SendNewMessageNotification(ctx context.Context, to string, msg *domain.Message) error {
	return m.Called(ctx, to, msg).Error(0)
}

func (m *MockEmailService) SendDailyDigest(ctx context.Context, to string, alerts *domain.Alerts) error {
	return m.Called(ctx, to, alerts).Error(0)
}

type MockPushService struct{ mock.Mock }

func (m *MockPushService) NotifyStaff(ctx context.Context, title, body string, data map[string]string) error {
	return m.Called(ctx, title, body, data).Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, eventType, key, actorID string, payload any) error {
	return m.Called(ctx, eventType, key, actorID, payload).Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}

type jobFixture struct {
	repo      *MockReservationRepo
	alerts    *MockAlertService
	email     *MockEmailService
	push      *MockPushService
	publisher *MockPublisher
	runner    *JobRunner
}

func newJobFixture(staffEmail string) *jobFixture {
	f := &jobFixture{
		repo:      new(MockReservationRepo),
		alerts:    new(MockAlertService),
		email:     new(MockEmailService),
		push:      new(MockPushService),
		publisher: new(MockPublisher),
	}
	cfg := &config.Config{Business: config.BusinessConfig{TimeZone: "America/Santiago", StaffEmail: staffEmail}}
	f.runner = NewJobRunner(f.repo, &Services{Alerts: f.alerts, Email: f.email, Push: f.push}, f.publisher, cfg)
	return f
}

func TestCompleteFinishedStays(t *testing.T) {
	// 02:00 UTC on March 11 is still March 10 in Santiago
	now := time.Date(2024, time.March, 11, 2, 0, 0, 0, time.UTC)

	t.Run("PublishesEachCompletedStay", func(t *testing.T) {
		f := newJobFixture("")
		f.runner.now = func() time.Time { return now }
		f.repo.On("CompleteFinishedStays", mock.Anything, utils.NewDate(2024, time.March, 10)).Return([]string{"r1", "r2"}, nil)
		f.publisher.On("Publish", mock.Anything, events.ReservationStatusChanged, mock.Anything, "", mock.Anything).Return(nil)

		f.runner.CompleteFinishedStays()

		f.repo.AssertExpectations(t)
		f.publisher.AssertNumberOfCalls(t, "Publish", 2)
	})

	t.Run("RepositoryFailure", func(t *testing.T) {
		f := newJobFixture("")
		f.runner.now = func() time.Time { return now }
		f.repo.On("CompleteFinishedStays", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

		f.runner.CompleteFinishedStays()

		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSendDailyDigest(t *testing.T) {
	today := utils.NewDate(2024, time.March, 10)

	t.Run("SendsWhenThereIsSomethingToReport", func(t *testing.T) {
		f := newJobFixture("staff@example.com")
		alerts := &domain.Alerts{
			Today:            today,
			UpcomingCheckIns: []domain.ReservationAlert{{Reservation: domain.Reservation{ID: "r1"}}},
		}
		f.alerts.On("GetAlerts", mock.Anything).Return(alerts, nil)
		f.email.On("SendDailyDigest", mock.Anything, "staff@example.com", alerts).Return(nil)
		f.push.On("NotifyStaff", mock.Anything, "Daily summary",
			"1 check-ins, 0 check-outs, 0 pending balances, 0 unread messages",
			map[string]string{"date": "2024-03-10"}).Return(nil)

		f.runner.SendDailyDigest()

		f.email.AssertExpectations(t)
		f.push.AssertExpectations(t)
	})

	t.Run("NothingToReport", func(t *testing.T) {
		f := newJobFixture("staff@example.com")
		f.alerts.On("GetAlerts", mock.Anything).Return(&domain.Alerts{Today: today}, nil)

		f.runner.SendDailyDigest()

		f.email.AssertNotCalled(t, "SendDailyDigest", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NoStaffEmail", func(t *testing.T) {
		f := newJobFixture("")

		f.runner.SendDailyDigest()

		f.alerts.AssertNotCalled(t, "GetAlerts", mock.Anything)
	})
}

func TestRunWithRecovery(t *testing.T) {
	f := newJobFixture("")
	assert.NotPanics(t, func() {
		f.runner.runWithRecovery("Panicky", func() { panic("boom") })
	})
}
