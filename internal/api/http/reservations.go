package http

import (
	"net/http"
	"strconv"

	"cabanas-backoffice/internal/domain"
	"cabanas-backoffice/internal/service"

	"github.com/gorilla/mux"
)

func (h *Handler) listCabins(w http.ResponseWriter, r *http.Request) {
	cabins, err := h.svc.Cabins.ListCabins(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, cabins)
}

func (h *Handler) listReservations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ReservationFilter{
		CabinID: q.Get("cabin_id"),
		Status:  domain.ReservationStatus(q.Get("status")),
		Search:  q.Get("search"),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		writeError(w, domain.NewValidationError("status", "unknown reservation status"))
		return
	}
	if v := q.Get("active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, domain.NewValidationError("active", "must be true or false"))
			return
		}
		filter.ActiveOnly = active
	}

	reservations, err := h.svc.Reservations.ListReservations(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, reservations)
}

func (h *Handler) getReservation(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Reservations.GetReservation(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, res)
}

func (h *Handler) createReservation(w http.ResponseWriter, r *http.Request) {
	var input service.ReservationInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, err)
		return
	}
	res, err := h.svc.Reservations.CreateReservation(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, res)
}

func (h *Handler) updateReservation(w http.ResponseWriter, r *http.Request) {
	var input service.ReservationInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, err)
		return
	}
	res, err := h.svc.Reservations.UpdateReservation(r.Context(), mux.Vars(r)["id"], input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, res)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := h.svc.Reservations.UpdateStatus(r.Context(), mux.Vars(r)["id"], req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, res)
}

func (h *Handler) cancelReservation(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Reservations.CancelReservation(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, res)
}

func (h *Handler) checkAvailability(w http.ResponseWriter, r *http.Request) {
	var input service.AvailabilityInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, err)
		return
	}
	availability, err := h.svc.Reservations.CheckAvailability(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, availability)
}

func (h *Handler) listBlocks(w http.ResponseWriter, r *http.Request) {
	blocks, err := h.svc.Reservations.ListBlocks(r.Context(), r.URL.Query().Get("cabin_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, blocks)
}
