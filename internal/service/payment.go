package service

import (
	"context"
	"strings"

	"cabanas-backoffice/internal/booking"
	"cabanas-backoffice/internal/cache"
	"cabanas-backoffice/internal/domain"
	"cabanas-backoffice/internal/events"
	"cabanas-backoffice/internal/logger"
	"cabanas-backoffice/internal/repository"
	"cabanas-backoffice/internal/security"

	"github.com/google/uuid"
)

// PaymentInput is the staff form for recording a payment
type PaymentInput struct {
	ReservationID string   `json:"reservation_id" validate:"required,uuid"`
	Amount        *float64 `json:"amount" validate:"required,gte=0"`
	Currency      string   `json:"currency" validate:"omitempty,len=3"`
	PaymentType   string   `json:"payment_type" validate:"omitempty,oneof=partial full"`
	Method        string   `json:"method" validate:"omitempty,oneof=transfer cash debit credit"`
	Reference     string   `json:"reference" validate:"omitempty,max=200"`
	Notes         string   `json:"notes"`
	Status        string   `json:"status" validate:"omitempty,oneof=pending confirmed failed"`
}

type paymentService struct {
	payRepo   repository.PaymentRepository
	resRepo   repository.ReservationRepository
	identity  security.Identity
	publisher events.Publisher
	cache     cache.Cache
	currency  string
	policy    booking.SumPolicy
}

func NewPaymentService(
	payRepo repository.PaymentRepository,
	resRepo repository.ReservationRepository,
	identity security.Identity,
	publisher events.Publisher,
	c cache.Cache,
	currency string,
	policy booking.SumPolicy,
) PaymentService {
	return &paymentService{
		payRepo:   payRepo,
		resRepo:   resRepo,
		identity:  identity,
		publisher: publisher,
		cache:     c,
		currency:  currency,
		policy:    policy,
	}
}

func (s *paymentService) build(input PaymentInput) (*domain.Payment, error) {
	input.ReservationID = strings.TrimSpace(input.ReservationID)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	p := &domain.Payment{
		ReservationID: input.ReservationID,
		Amount:        *input.Amount,
		Currency:      strings.ToUpper(input.Currency),
		Type:          domain.PaymentType(input.PaymentType),
		Method:        domain.PaymentMethod(input.Method),
		Reference:     optional(input.Reference),
		Notes:         optional(input.Notes),
		Status:        domain.PaymentStatus(input.Status),
	}
	if p.Currency == "" {
		p.Currency = s.currency
	}
	if p.Type == "" {
		p.Type = domain.PaymentTypePartial
	}
	if p.Method == "" {
		p.Method = domain.PaymentMethodTransfer
	}
	if p.Status == "" {
		p.Status = domain.PaymentStatusConfirmed
	}
	return p, nil
}

func (s *paymentService) CreatePayment(ctx context.Context, input PaymentInput) (*domain.Payment, error) {
	logger.EnterMethod("paymentService.CreatePayment", "reservationID", input.ReservationID)

	p, err := s.build(input)
	if err != nil {
		logger.ExitMethodWithError("paymentService.CreatePayment", err, true)
		return nil, err
	}

	userID, err := s.identity.CurrentUserID(ctx)
	if err != nil {
		logger.ExitMethodWithError("paymentService.CreatePayment", err, true)
		return nil, err
	}

	if _, err := s.resRepo.GetByID(ctx, p.ReservationID); err != nil {
		err = backendError("load reservation", err)
		logger.ExitMethodWithError("paymentService.CreatePayment", err, domain.IsExpected(err), "reservationID", p.ReservationID)
		return nil, err
	}

	p.ID = uuid.NewString()
	p.CreatedBy = userID
	if err := s.payRepo.Create(ctx, p); err != nil {
		err = backendError("record payment", err)
		logger.ExitMethodWithError("paymentService.CreatePayment", err, false, "reservationID", p.ReservationID)
		return nil, err
	}

	invalidateDashboard(ctx, s.cache)
	if err := s.publisher.Publish(ctx, events.PaymentCreated, p.ReservationID, userID, p); err != nil {
		logger.Warn("Failed to publish payment event", "paymentID", p.ID, "error", err)
	}
	logger.ExitMethod("paymentService.CreatePayment", "paymentID", p.ID)
	return p, nil
}

func (s *paymentService) DeletePayment(ctx context.Context, id string) error {
	logger.EnterMethod("paymentService.DeletePayment", "paymentID", id)

	if err := validateID(id); err != nil {
		logger.ExitMethodWithError("paymentService.DeletePayment", err, true)
		return err
	}

	userID, err := s.identity.CurrentUserID(ctx)
	if err != nil {
		logger.ExitMethodWithError("paymentService.DeletePayment", err, true)
		return err
	}

	p, err := s.payRepo.GetByID(ctx, id)
	if err != nil {
		err = backendError("load payment", err)
		logger.ExitMethodWithError("paymentService.DeletePayment", err, domain.IsExpected(err), "paymentID", id)
		return err
	}

	if err := s.payRepo.Delete(ctx, id); err != nil {
		err = backendError("delete payment", err)
		logger.ExitMethodWithError("paymentService.DeletePayment", err, domain.IsExpected(err), "paymentID", id)
		return err
	}

	invalidateDashboard(ctx, s.cache)
	if err := s.publisher.Publish(ctx, events.PaymentDeleted, p.ReservationID, userID, p); err != nil {
		logger.Warn("Failed to publish payment event", "paymentID", id, "error", err)
	}
	logger.ExitMethod("paymentService.DeletePayment", "paymentID", id)
	return nil
}

func (s *paymentService) ListPayments(ctx context.Context, reservationID string) (*domain.ReservationPayments, error) {
	if err := validateID(reservationID); err != nil {
		return nil, err
	}
	res, err := s.resRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, backendError("load reservation", err)
	}
	payments, err := s.payRepo.ListByReservation(ctx, reservationID)
	if err != nil {
		return nil, backendError("list payments", err)
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	return &domain.ReservationPayments{
		Reservation: *res,
		Payments:    payments,
		Balance:     booking.ComputeBalance(res.Amount, payments, s.policy),
	}, nil
}

// ListPaymentSummaries returns every reservation matching search with its
// payments and derived balance
func (s *paymentService) ListPaymentSummaries(ctx context.Context, search string) ([]domain.ReservationPayments, error) {
	logger.EnterMethod("paymentService.ListPaymentSummaries", "search", search)

	reservations, err := s.resRepo.List(ctx, domain.ReservationFilter{Search: search})
	if err != nil {
		err = backendError("list reservations", err)
		logger.ExitMethodWithError("paymentService.ListPaymentSummaries", err, false)
		return nil, err
	}

	ids := make([]string, 0, len(reservations))
	for _, r := range reservations {
		ids = append(ids, r.ID)
	}
	payments, err := s.payRepo.ListByReservations(ctx, ids)
	if err != nil {
		err = backendError("list payments", err)
		logger.ExitMethodWithError("paymentService.ListPaymentSummaries", err, false)
		return nil, err
	}
	byReservation := booking.GroupPayments(payments)

	summaries := make([]domain.ReservationPayments, 0, len(reservations))
	for _, r := range reservations {
		list := byReservation[r.ID]
		if list == nil {
			list = []domain.Payment{}
		}
		summaries = append(summaries, domain.ReservationPayments{
			Reservation: r,
			Payments:    list,
			Balance:     booking.ComputeBalance(r.Amount, list, s.policy),
		})
	}

	logger.ExitMethod("paymentService.ListPaymentSummaries", "count", len(summaries))
	return summaries, nil
}
