package http

import "net/http"

func (h *Handler) alerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.svc.Alerts.GetAlerts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, alerts)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Dashboard.GetStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, stats)
}

// calendar takes ?month=YYYY-MM, defaulting to the current month
func (h *Handler) calendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cal, err := h.svc.Dashboard.GetCalendar(r.Context(), q.Get("month"), q.Get("cabin_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, cal)
}
