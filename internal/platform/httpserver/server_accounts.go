package httpserver

import (
	"errors"
	"net/http"
	"time"

	accountdomainerrors "estatehub/contexts/identity-access/account-service/domain/errors"
	accounthttp "estatehub/contexts/identity-access/account-service/transport/http"
)

func (s *Server) registerAccountRoutes() {
	s.mux.HandleFunc("POST /auth/signup", s.handleSignUp)
	s.mux.HandleFunc("POST /auth/login", s.handleLogin)
	s.mux.HandleFunc("POST /auth/logout", s.handleLogout)
	s.mux.HandleFunc("GET /auth/me", s.handleMe)

	s.mux.HandleFunc("GET /users", s.handleListUsers)
	s.mux.HandleFunc("GET /users/me", s.handleMe)
	s.mux.HandleFunc("PUT /users/{user_id}/profile", s.handleUpdateProfile)
	s.mux.HandleFunc("PUT /users/{user_id}", s.handleAdminUpdateUser)
	s.mux.HandleFunc("DELETE /users/{user_id}", s.handleDeleteUser)
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req accounthttp.SignUpRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.accounts.Handler.SignUpHandler(r.Context(), req)
	if err != nil {
		s.writeAccountDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req accounthttp.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.accounts.Handler.LoginHandler(r.Context(), req)
	if err != nil {
		s.writeAccountDomainError(w, r, err)
		return
	}
	cookie := &http.Cookie{
		Name:     tokenCookie,
		Value:    resp.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.options.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	if expiresAt, err := time.Parse(time.RFC3339, resp.ExpiresAt); err == nil {
		cookie.Expires = expiresAt
	}
	http.SetCookie(w, cookie)
	writeJSON(w, http.StatusOK, resp)
}

// handleLogout godoc
// @Summary Clear the session cookie
// @Description Clears the session cookie. Bearer tokens stay valid until they expire.
// @Tags accounts
// @Produce json
// @Success 200 {object} accounthttp.MessageResponse
// @Router /auth/logout [post]
func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.options.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, accounthttp.MessageResponse{Message: "Logged out successfully"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	resp, err := s.accounts.Handler.MeHandler(r.Context(), s.principal(r))
	if err != nil {
		s.writeAccountDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	resp, err := s.accounts.Handler.ListUsersHandler(r.Context(), s.principal(r))
	if err != nil {
		s.writeAccountDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req accounthttp.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.accounts.Handler.UpdateProfileHandler(r.Context(), s.principal(r), r.PathValue("user_id"), req)
	if err != nil {
		s.writeAccountDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAdminUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req accounthttp.AdminUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.accounts.Handler.AdminUpdateHandler(r.Context(), s.principal(r), r.PathValue("user_id"), req)
	if err != nil {
		s.writeAccountDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	resp, err := s.accounts.Handler.DeleteUserHandler(r.Context(), s.principal(r), r.PathValue("user_id"))
	if err != nil {
		s.writeAccountDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeAccountDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, accountdomainerrors.ErrUnauthenticated),
		errors.Is(err, accountdomainerrors.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
	case errors.Is(err, accountdomainerrors.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, accountdomainerrors.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, accountdomainerrors.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user_not_found", err.Error())
	case errors.Is(err, accountdomainerrors.ErrEmailTaken):
		writeError(w, http.StatusConflict, "email_taken", err.Error())
	case errors.Is(err, accountdomainerrors.ErrInvalidInput):
		writeError(w, http.StatusUnprocessableEntity, "invalid_input", err.Error())
	default:
		s.logInternal(r, err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
