package http

import (
	"net/http"

	"cabanas-backoffice/internal/service"

	"github.com/gorilla/mux"
)

func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.Payments.ListPaymentSummaries(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, rows)
}

func (h *Handler) reservationPayments(w http.ResponseWriter, r *http.Request) {
	row, err := h.svc.Payments.ListPayments(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, row)
}

func (h *Handler) createPayment(w http.ResponseWriter, r *http.Request) {
	var input service.PaymentInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, err)
		return
	}
	payment, err := h.svc.Payments.CreatePayment(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, payment)
}

func (h *Handler) deletePayment(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Payments.DeletePayment(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, nil)
}
