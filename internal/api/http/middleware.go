package http

import (
	"net/http"
	"strings"
	"time"

	"cabanas-backoffice/internal/config"
	"cabanas-backoffice/internal/domain"
	"cabanas-backoffice/internal/logger"
	"cabanas-backoffice/internal/security"

	"github.com/gorilla/mux"
)

type AuthMiddleware struct {
	tokenManager security.TokenManager
}

func NewAuthMiddleware(tm security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tm}
}

// Handler authenticates requests to staff routes and stores the session in
// the request context
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		level := config.GetSecurityLevel(routeName(r))

		// Public endpoint - skip auth
		if level == config.SecurityPublic {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.tokenManager.ValidateToken(extractToken(r))
		if err != nil {
			writeError(w, domain.NewUnauthorizedError(err))
			return
		}

		next.ServeHTTP(w, r.WithContext(security.WithClaims(r.Context(), claims)))
	})
}

func extractToken(r *http.Request) string {
	token := r.Header.Get("Authorization")
	// Remove Bearer prefix if present
	if len(token) > 7 && strings.ToUpper(token[0:7]) == "BEARER " {
		token = token[7:]
	}
	return strings.TrimSpace(token)
}

func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		return route.GetName()
	}
	return ""
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// AccessLog logs every routed request with its route name
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.HTTPRequest(r.Method, routeName(r), rec.status, time.Since(start), "path", r.URL.Path)
	})
}

// Recover turns handler panics into 500 responses
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("Handler panicked", "route", routeName(r), "panic", rec)
				writeJSON(w, http.StatusInternalServerError, errorResponse{OK: false, Error: "internal error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
