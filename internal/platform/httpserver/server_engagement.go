package httpserver

import (
	"errors"
	"net/http"

	contactdomainerrors "estatehub/contexts/engagement/contact-service/domain/errors"
	contacthttp "estatehub/contexts/engagement/contact-service/transport/http"
	notificationdomainerrors "estatehub/contexts/engagement/notification-service/domain/errors"
)

func (s *Server) registerNotificationRoutes() {
	s.mux.HandleFunc("GET /notifications", s.handleListNotifications)
	s.mux.HandleFunc("PATCH /notifications/{notification_id}/read", s.handleMarkNotificationRead)
}

func (s *Server) registerContactRoutes() {
	s.mux.HandleFunc("POST /contacts", s.handleSubmitContact)
	s.mux.HandleFunc("GET /contacts", s.handleListContacts)
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	resp, err := s.notifications.Handler.ListNotificationsHandler(r.Context(), s.principal(r))
	if err != nil {
		s.writeNotificationDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	resp, err := s.notifications.Handler.MarkReadHandler(r.Context(), s.principal(r), r.PathValue("notification_id"))
	if err != nil {
		s.writeNotificationDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubmitContact(w http.ResponseWriter, r *http.Request) {
	var req contacthttp.SubmitContactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.contacts.Handler.SubmitContactHandler(r.Context(), req)
	if err != nil {
		s.writeContactDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	resp, err := s.contacts.Handler.ListContactsHandler(r.Context(), s.principal(r))
	if err != nil {
		s.writeContactDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeNotificationDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, notificationdomainerrors.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
	case errors.Is(err, notificationdomainerrors.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, notificationdomainerrors.ErrNotificationNotFound):
		writeError(w, http.StatusNotFound, "notification_not_found", err.Error())
	default:
		s.logInternal(r, err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) writeContactDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, contactdomainerrors.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
	case errors.Is(err, contactdomainerrors.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, contactdomainerrors.ErrInvalidContact):
		writeError(w, http.StatusUnprocessableEntity, "invalid_contact", err.Error())
	default:
		s.logInternal(r, err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
