package service

import (
	"context"
	"strings"
	"time"

	"cabanas-backoffice/internal/booking"
	"cabanas-backoffice/internal/cache"
	"cabanas-backoffice/internal/domain"
	"cabanas-backoffice/internal/events"
	"cabanas-backoffice/internal/logger"
	"cabanas-backoffice/internal/repository"
	"cabanas-backoffice/internal/security"

	"github.com/google/uuid"
)

// ReservationInput is the staff form for creating or editing a reservation
type ReservationInput struct {
	CabinID     string   `json:"cabin_id" validate:"required"`
	GuestName   string   `json:"guest_name" validate:"required,max=200"`
	GuestPhone  string   `json:"guest_phone" validate:"omitempty,max=50"`
	GuestEmail  string   `json:"guest_email" validate:"omitempty,email"`
	GuestsCount int      `json:"guests_count" validate:"omitempty,gte=1"`
	CheckIn     string   `json:"check_in" validate:"required"`
	CheckOut    string   `json:"check_out" validate:"required"`
	Status      string   `json:"status" validate:"omitempty,oneof=pending confirmed checked_in checked_out cancelled"`
	Amount      *float64 `json:"amount" validate:"omitempty,gte=0"`
	Notes       string   `json:"notes"`
}

type AvailabilityInput struct {
	CabinID   string `json:"cabin_id" validate:"required"`
	CheckIn   string `json:"check_in" validate:"required"`
	CheckOut  string `json:"check_out" validate:"required"`
	ExcludeID string `json:"exclude_id"`
}

// Availability is the answer to a live availability check
type Availability struct {
	Available bool                 `json:"available"`
	Conflicts []domain.Reservation `json:"conflicts"`
}

type reservationService struct {
	resRepo   repository.ReservationRepository
	identity  security.Identity
	publisher events.Publisher
	cache     cache.Cache
	loc       *time.Location
}

func NewReservationService(
	resRepo repository.ReservationRepository,
	identity security.Identity,
	publisher events.Publisher,
	c cache.Cache,
	loc *time.Location,
) ReservationService {
	return &reservationService{
		resRepo:   resRepo,
		identity:  identity,
		publisher: publisher,
		cache:     c,
		loc:       loc,
	}
}

// build validates input and fills the schema defaults. No backend call is made.
func (s *reservationService) build(input ReservationInput) (*domain.Reservation, error) {
	input.GuestName = strings.TrimSpace(input.GuestName)
	input.GuestEmail = strings.TrimSpace(input.GuestEmail)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	checkIn, checkOut, err := parseStay(input.CheckIn, input.CheckOut, s.loc)
	if err != nil {
		return nil, err
	}

	res := &domain.Reservation{
		CabinID:     input.CabinID,
		GuestName:   input.GuestName,
		GuestPhone:  optional(input.GuestPhone),
		GuestEmail:  optional(input.GuestEmail),
		GuestsCount: input.GuestsCount,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Status:      domain.ReservationStatus(input.Status),
		Amount:      input.Amount,
		Notes:       optional(input.Notes),
	}
	if res.GuestsCount == 0 {
		res.GuestsCount = 1
	}
	if res.Status == "" {
		res.Status = domain.ReservationStatusPending
	}
	return res, nil
}

// ensureAvailable re-reads the cabin's reservations and rejects overlapping stays
func (s *reservationService) ensureAvailable(ctx context.Context, res *domain.Reservation) error {
	if !res.Status.IsActive() {
		return nil
	}

	existing, err := s.resRepo.List(ctx, domain.ReservationFilter{CabinID: res.CabinID, ActiveOnly: true})
	if err != nil {
		return backendError("check availability", err)
	}

	conflicts := booking.FindConflicts(existing, booking.Request{
		CabinID:   res.CabinID,
		CheckIn:   res.CheckIn,
		CheckOut:  res.CheckOut,
		ExcludeID: res.ID,
	})
	if len(conflicts) > 0 {
		logger.Info("Reservation conflict detected", "cabinID", res.CabinID, "checkIn", res.CheckIn,
			"checkOut", res.CheckOut, "conflictWith", conflicts[0].ID)
		return domain.NewConflictError("the cabin is already booked for the selected dates")
	}
	return nil
}

func (s *reservationService) publish(ctx context.Context, eventType, actorID string, res *domain.Reservation) {
	invalidateDashboard(ctx, s.cache)
	if err := s.publisher.Publish(ctx, eventType, res.ID, actorID, res); err != nil {
		logger.Warn("Failed to publish reservation event", "type", eventType, "reservationID", res.ID, "error", err)
	}
}

func (s *reservationService) CreateReservation(ctx context.Context, input ReservationInput) (*domain.Reservation, error) {
	logger.EnterMethod("reservationService.CreateReservation", "cabinID", input.CabinID, "checkIn", input.CheckIn, "checkOut", input.CheckOut)

	res, err := s.build(input)
	if err != nil {
		logger.ExitMethodWithError("reservationService.CreateReservation", err, true)
		return nil, err
	}

	userID, err := s.identity.CurrentUserID(ctx)
	if err != nil {
		logger.ExitMethodWithError("reservationService.CreateReservation", err, true)
		return nil, err
	}

	if err := s.ensureAvailable(ctx, res); err != nil {
		logger.ExitMethodWithError("reservationService.CreateReservation", err, domain.IsExpected(err), "cabinID", res.CabinID)
		return nil, err
	}

	res.ID = uuid.NewString()
	res.CreatedBy = userID
	if err := s.resRepo.Create(ctx, res); err != nil {
		err = backendError("create reservation", err)
		logger.ExitMethodWithError("reservationService.CreateReservation", err, false, "cabinID", res.CabinID)
		return nil, err
	}

	s.publish(ctx, events.ReservationCreated, userID, res)
	logger.ExitMethod("reservationService.CreateReservation", "reservationID", res.ID)
	return res, nil
}

func (s *reservationService) UpdateReservation(ctx context.Context, id string, input ReservationInput) (*domain.Reservation, error) {
	logger.EnterMethod("reservationService.UpdateReservation", "reservationID", id)

	if err := validateID(id); err != nil {
		logger.ExitMethodWithError("reservationService.UpdateReservation", err, true, "reservationID", id)
		return nil, err
	}

	res, err := s.build(input)
	if err != nil {
		logger.ExitMethodWithError("reservationService.UpdateReservation", err, true, "reservationID", id)
		return nil, err
	}

	userID, err := s.identity.CurrentUserID(ctx)
	if err != nil {
		logger.ExitMethodWithError("reservationService.UpdateReservation", err, true)
		return nil, err
	}

	current, err := s.resRepo.GetByID(ctx, id)
	if err != nil {
		err = backendError("load reservation", err)
		logger.ExitMethodWithError("reservationService.UpdateReservation", err, domain.IsExpected(err), "reservationID", id)
		return nil, err
	}
	res.ID = current.ID
	res.CreatedBy = current.CreatedBy
	res.CreatedAt = current.CreatedAt
	if input.Status == "" {
		res.Status = current.Status
	}

	if err := s.ensureAvailable(ctx, res); err != nil {
		logger.ExitMethodWithError("reservationService.UpdateReservation", err, domain.IsExpected(err), "reservationID", id)
		return nil, err
	}

	if err := s.resRepo.Update(ctx, res); err != nil {
		err = backendError("update reservation", err)
		logger.ExitMethodWithError("reservationService.UpdateReservation", err, domain.IsExpected(err), "reservationID", id)
		return nil, err
	}

	s.publish(ctx, events.ReservationUpdated, userID, res)
	logger.ExitMethod("reservationService.UpdateReservation", "reservationID", id)
	return res, nil
}

func (s *reservationService) UpdateStatus(ctx context.Context, id string, status string) (*domain.Reservation, error) {
	logger.EnterMethod("reservationService.UpdateStatus", "reservationID", id, "status", status)

	if err := validateID(id); err != nil {
		logger.ExitMethodWithError("reservationService.UpdateStatus", err, true, "reservationID", id)
		return nil, err
	}

	next := domain.ReservationStatus(status)
	if !next.Valid() {
		err := domain.NewValidationError("status", "must be one of: pending, confirmed, checked_in, checked_out, cancelled")
		logger.ExitMethodWithError("reservationService.UpdateStatus", err, true)
		return nil, err
	}

	userID, err := s.identity.CurrentUserID(ctx)
	if err != nil {
		logger.ExitMethodWithError("reservationService.UpdateStatus", err, true)
		return nil, err
	}

	res, err := s.resRepo.GetByID(ctx, id)
	if err != nil {
		err = backendError("load reservation", err)
		logger.ExitMethodWithError("reservationService.UpdateStatus", err, domain.IsExpected(err), "reservationID", id)
		return nil, err
	}

	// Reviving a cancelled stay must not double-book the cabin
	if !res.Status.IsActive() && next.IsActive() {
		res.Status = next
		if err := s.ensureAvailable(ctx, res); err != nil {
			logger.ExitMethodWithError("reservationService.UpdateStatus", err, domain.IsExpected(err), "reservationID", id)
			return nil, err
		}
	}

	if err := s.resRepo.UpdateStatus(ctx, id, next); err != nil {
		err = backendError("update reservation status", err)
		logger.ExitMethodWithError("reservationService.UpdateStatus", err, domain.IsExpected(err), "reservationID", id)
		return nil, err
	}
	res.Status = next

	s.publish(ctx, events.ReservationStatusChanged, userID, res)
	logger.ExitMethod("reservationService.UpdateStatus", "reservationID", id, "status", next)
	return res, nil
}

func (s *reservationService) CancelReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	return s.UpdateStatus(ctx, id, string(domain.ReservationStatusCancelled))
}

func (s *reservationService) GetReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	res, err := s.resRepo.GetByID(ctx, id)
	if err != nil {
		return nil, backendError("load reservation", err)
	}
	return res, nil
}

func (s *reservationService) ListReservations(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.NewValidationError("status", "unknown reservation status")
	}
	list, err := s.resRepo.List(ctx, filter)
	if err != nil {
		return nil, backendError("list reservations", err)
	}
	return list, nil
}

func (s *reservationService) CheckAvailability(ctx context.Context, input AvailabilityInput) (*Availability, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	checkIn, checkOut, err := parseStay(input.CheckIn, input.CheckOut, s.loc)
	if err != nil {
		return nil, err
	}

	existing, err := s.resRepo.List(ctx, domain.ReservationFilter{CabinID: input.CabinID, ActiveOnly: true})
	if err != nil {
		return nil, backendError("check availability", err)
	}

	conflicts := booking.FindConflicts(existing, booking.Request{
		CabinID:   input.CabinID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		ExcludeID: input.ExcludeID,
	})
	if conflicts == nil {
		conflicts = []domain.Reservation{}
	}
	return &Availability{Available: len(conflicts) == 0, Conflicts: conflicts}, nil
}

// ListBlocks returns the occupied intervals per cabin for the booking form preview
func (s *reservationService) ListBlocks(ctx context.Context, cabinID string) (map[string][]booking.Block, error) {
	list, err := s.resRepo.List(ctx, domain.ReservationFilter{CabinID: cabinID, ActiveOnly: true})
	if err != nil {
		return nil, backendError("list reservations", err)
	}
	return booking.BlocksByCabin(list), nil
}
