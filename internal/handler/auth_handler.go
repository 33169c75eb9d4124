package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/shoppingk/jitsi-session-keeper/internal/model"
	"github.com/shoppingk/jitsi-session-keeper/pkg/logger"
	"github.com/shoppingk/jitsi-session-keeper/prometheus"
)

// Login resolves the request's tenant and authenticates the credentials
// against its user table. The tenant identifier comes from the Host
// subdomain, or from the ?tenant= override on local-development hosts.
func (h *Handler) Login(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.LoginCounter.Inc()

	var req model.Credentials
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	identifier := h.Tenants.DetectIdentifier(c.Request().Host, c.QueryParam("tenant"))
	if identifier == "" {
		log.Warn("no tenant identifier in request", zap.String("host", c.Request().Host))
		prometheus.RecordAuthError("no_tenant")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": model.ErrNoTenantContext.Error()})
	}

	prometheus.RecordTenantOperation("resolve")
	resolved, err := h.Tenants.Resolve(c.Request().Context(), identifier)
	if err != nil {
		log.Warn("tenant resolution failed", zap.String("identifier", identifier), zap.Error(err))
		prometheus.RecordAuthError("tenant_not_found")
		return c.JSON(statusFor(err), echo.Map{"error": err.Error()})
	}

	if err := h.Auth.Login(req); err != nil {
		prometheus.RecordAuthError("invalid_credentials")
		return c.JSON(statusFor(err), echo.Map{"error": err.Error()})
	}

	prometheus.ActiveSessionsGauge.Inc()
	state := h.Auth.State()

	return c.JSON(http.StatusOK, echo.Map{
		"token":  state.Token,
		"user":   state.User,
		"tenant": resolved,
	})
}

// Logout clears the session synchronously. There is no server round-trip to
// invalidate the token; it simply ages out.
func (h *Handler) Logout(c echo.Context) error {
	h.Auth.Logout()
	prometheus.ActiveSessionsGauge.Dec()
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// Me returns the current session state.
func (h *Handler) Me(c echo.Context) error {
	state := h.Auth.State()
	return c.JSON(http.StatusOK, echo.Map{
		"isAuthenticated": state.IsAuthenticated,
		"user":            state.User,
		"isAdmin":         h.Auth.IsAdmin(),
		"isSuperAdmin":    h.Auth.IsSuperAdmin(),
	})
}

// ListTenantUsers returns the resolved tenant's full user table, passwords
// included. Admin only.
func (h *Handler) ListTenantUsers(c echo.Context) error {
	users, err := h.Auth.TenantUsers()
	if err != nil {
		logger.FromEcho(c).Warn("user table denied", zap.Error(err))
		return c.JSON(statusFor(err), echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}
