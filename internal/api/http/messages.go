package http

import (
	"net/http"
	"strconv"

	"cabanas-backoffice/internal/domain"
	"cabanas-backoffice/internal/service"

	"github.com/gorilla/mux"
)

// submitMessage is the public contact form endpoint
func (h *Handler) submitMessage(w http.ResponseWriter, r *http.Request) {
	var input service.MessageInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, err)
		return
	}
	msg, err := h.svc.Messages.SubmitMessage(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, msg)
}

func (h *Handler) listMessages(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter domain.MessageFilter
	var err error
	if v := q.Get("unread"); v != "" {
		if filter.UnreadOnly, err = strconv.ParseBool(v); err != nil {
			writeError(w, domain.NewValidationError("unread", "must be true or false"))
			return
		}
	}
	if v := q.Get("archived"); v != "" {
		if filter.IncludeArchived, err = strconv.ParseBool(v); err != nil {
			writeError(w, domain.NewValidationError("archived", "must be true or false"))
			return
		}
	}

	messages, err := h.svc.Messages.ListMessages(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, messages)
}

func (h *Handler) markMessageRead(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Messages.MarkRead(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, nil)
}

type archiveRequest struct {
	IsRead   *bool `json:"is_read"`
	Archived *bool `json:"archived"`
}

func (h *Handler) archiveMessage(w http.ResponseWriter, r *http.Request) {
	var req archiveRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, err)
			return
		}
	}
	if err := h.svc.Messages.Archive(r.Context(), mux.Vars(r)["id"], req.IsRead, req.Archived); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, nil)
}
