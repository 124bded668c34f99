package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	contactservice "estatehub/contexts/engagement/contact-service"
	notificationservice "estatehub/contexts/engagement/notification-service"
	accountservice "estatehub/contexts/identity-access/account-service"
	policyentities "estatehub/contexts/identity-access/access-policy/domain/entities"
	propertyservice "estatehub/contexts/listings/property-service"
	"estatehub/internal/platform/observability"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "estatehub/internal/platform/httpserver/docs"
)

const tokenCookie = "token"

// Modules is every context the API serves.
type Modules struct {
	Accounts      accountservice.Module
	Properties    propertyservice.Module
	Notifications notificationservice.Module
	Contacts      contactservice.Module
}

type Options struct {
	CORSOrigins []string
	// MaxUploadBytes bounds multipart property requests.
	MaxUploadBytes int64
	SecureCookies  bool
}

type Server struct {
	mux     *http.ServeMux
	handler http.Handler
	http    *http.Server
	logger  *slog.Logger
	addr    string
	options Options

	accounts      accountservice.Module
	properties    propertyservice.Module
	notifications notificationservice.Module
	contacts      contactservice.Module
}

func New(modules Modules, logger *slog.Logger, addr string, options Options) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}
	if options.MaxUploadBytes <= 0 {
		options.MaxUploadBytes = 32 << 20
	}

	s := &Server{
		mux:           http.NewServeMux(),
		logger:        logger,
		addr:          addr,
		options:       options,
		accounts:      modules.Accounts,
		properties:    modules.Properties,
		notifications: modules.Notifications,
		contacts:      modules.Contacts,
	}
	s.registerRoutes()
	s.handler = observability.Middleware(s.cors(s.mux))
	return s
}

// Handler exposes the full middleware chain, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	s.http = &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	s.registerAccountRoutes()
	s.registerPropertyRoutes()
	s.registerNotificationRoutes()
	s.registerContactRoutes()
}

// handleHealth godoc
// @Summary Liveness check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// principal resolves the caller from a bearer token, falling back to the
// session cookie set at login. Any failure yields the anonymous principal.
func (s *Server) principal(r *http.Request) policyentities.Principal {
	return s.accounts.Handler.ResolvePrincipal(r.Context(), bearerToken(r))
}

func bearerToken(r *http.Request) string {
	if header := strings.TrimSpace(r.Header.Get("Authorization")); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := r.Cookie(tokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func (s *Server) cors(next http.Handler) http.Handler {
	if len(s.options.CORSOrigins) == 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (slices.Contains(s.options.CORSOrigins, origin) || slices.Contains(s.options.CORSOrigins, "*")) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			w.Header().Add("Vary", "Origin")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// writeJSON encodes before committing the status, so an unencodable payload
// becomes a 500 instead of an empty success.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(errorResponse{Code: "internal_error", Message: "response could not be encoded"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func decodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}

func (s *Server) logInternal(r *http.Request, err error) {
	s.logger.Error("request failed",
		"event", "http_request_failed",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err.Error(),
	)
}
