// Package handler exposes the core services over an echo JSON API.
package handler

import (
	"errors"
	"net/http"

	"github.com/shoppingk/jitsi-session-keeper/internal/auth"
	"github.com/shoppingk/jitsi-session-keeper/internal/model"
	"github.com/shoppingk/jitsi-session-keeper/internal/recording"
	"github.com/shoppingk/jitsi-session-keeper/internal/tenant"
	"github.com/shoppingk/jitsi-session-keeper/pkg/config"
)

// Handler carries the service dependencies of all routes. Services are
// constructed once at startup and injected here; there are no package-level
// singletons.
type Handler struct {
	Tenants    *tenant.Service
	Auth       *auth.Service
	Recordings *recording.Ledger
	Conference config.ConferenceConfig
}

// New creates a handler bundle around the given services.
func New(tenants *tenant.Service, authSvc *auth.Service, ledger *recording.Ledger, conference config.ConferenceConfig) *Handler {
	return &Handler{
		Tenants:    tenants,
		Auth:       authSvc,
		Recordings: ledger,
		Conference: conference,
	}
}

// statusFor maps the service error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, model.ErrTenantNotFound), errors.Is(err, model.ErrRecordingNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrTenantExists), errors.Is(err, model.ErrRecordingActive):
		return http.StatusConflict
	case errors.Is(err, model.ErrNoTenantContext), errors.Is(err, model.ErrRecordingNotReady):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
