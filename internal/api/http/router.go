package http

import (
	"context"
	"net/http"
	"time"

	"cabanas-backoffice/internal/config"
	"cabanas-backoffice/internal/repository"
	"cabanas-backoffice/internal/security"
	"cabanas-backoffice/internal/service"

	"github.com/gorilla/mux"
)

const healthCheckTimeout = 2 * time.Second

// Services bundles everything the handlers call into
type Services struct {
	Reservations service.ReservationService
	Payments     service.PaymentService
	Messages     service.MessageService
	Cabins       service.CabinService
	Alerts       service.AlertService
	Dashboard    service.DashboardService
}

type Handler struct {
	svc    Services
	db     repository.Pinger
	tokens security.TokenManager
}

func NewHandler(svc Services, db repository.Pinger, tokens security.TokenManager) *Handler {
	return &Handler{svc: svc, db: db, tokens: tokens}
}

// Router registers every route under its security name
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(Recover, AccessLog, NewAuthMiddleware(h.tokens).Handler)

	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet).Name(config.RouteHealth)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/messages", h.submitMessage).Methods(http.MethodPost).Name(config.RouteSubmitMessage)
	api.HandleFunc("/messages", h.listMessages).Methods(http.MethodGet).Name(config.RouteListMessages)
	api.HandleFunc("/messages/{id}/read", h.markMessageRead).Methods(http.MethodPost).Name(config.RouteMarkMessageRead)
	api.HandleFunc("/messages/{id}/archive", h.archiveMessage).Methods(http.MethodPost).Name(config.RouteArchiveMessage)

	api.HandleFunc("/cabins", h.listCabins).Methods(http.MethodGet).Name(config.RouteListCabins)

	api.HandleFunc("/reservations", h.listReservations).Methods(http.MethodGet).Name(config.RouteListReservations)
	api.HandleFunc("/reservations", h.createReservation).Methods(http.MethodPost).Name(config.RouteCreateReservation)
	api.HandleFunc("/reservations/{id}", h.getReservation).Methods(http.MethodGet).Name(config.RouteGetReservation)
	api.HandleFunc("/reservations/{id}", h.updateReservation).Methods(http.MethodPut).Name(config.RouteUpdateReservation)
	api.HandleFunc("/reservations/{id}/status", h.updateStatus).Methods(http.MethodPatch).Name(config.RouteUpdateStatus)
	api.HandleFunc("/reservations/{id}/cancel", h.cancelReservation).Methods(http.MethodPost).Name(config.RouteCancelReservation)
	api.HandleFunc("/reservations/{id}/payments", h.reservationPayments).Methods(http.MethodGet).Name(config.RouteReservationPayment)

	api.HandleFunc("/availability", h.checkAvailability).Methods(http.MethodPost).Name(config.RouteCheckAvailability)
	api.HandleFunc("/availability/blocks", h.listBlocks).Methods(http.MethodGet).Name(config.RouteListBlocks)

	api.HandleFunc("/payments", h.listPayments).Methods(http.MethodGet).Name(config.RouteListPayments)
	api.HandleFunc("/payments", h.createPayment).Methods(http.MethodPost).Name(config.RouteCreatePayment)
	api.HandleFunc("/payments/{id}", h.deletePayment).Methods(http.MethodDelete).Name(config.RouteDeletePayment)

	api.HandleFunc("/alerts", h.alerts).Methods(http.MethodGet).Name(config.RouteAlerts)
	api.HandleFunc("/dashboard", h.dashboard).Methods(http.MethodGet).Name(config.RouteDashboard)
	api.HandleFunc("/calendar", h.calendar).Methods(http.MethodGet).Name(config.RouteCalendar)

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{OK: false, Error: "database unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{OK: true})
}
