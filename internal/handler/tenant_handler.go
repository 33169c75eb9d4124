package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/shoppingk/jitsi-session-keeper/internal/model"
	"github.com/shoppingk/jitsi-session-keeper/pkg/logger"
	"github.com/shoppingk/jitsi-session-keeper/prometheus"
)

// ResolveTenant resolves and returns the tenant of the request host, for
// the embedding page to pick up branding before login. Public.
func (h *Handler) ResolveTenant(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordTenantOperation("resolve")

	identifier := h.Tenants.DetectIdentifier(c.Request().Host, c.QueryParam("tenant"))
	if identifier == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": model.ErrNoTenantContext.Error()})
	}

	resolved, err := h.Tenants.Resolve(c.Request().Context(), identifier)
	if err != nil {
		log.Warn("tenant resolution failed", zap.String("identifier", identifier))
		return c.JSON(statusFor(err), echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{"tenant": resolved})
}

// ListTenants returns the full tenant directory. Super-admin only: the
// caller must be an admin signed in under the reserved admin tenant.
func (h *Handler) ListTenants(c echo.Context) error {
	prometheus.RecordTenantOperation("list")

	if !h.Auth.IsSuperAdmin() {
		return c.JSON(http.StatusForbidden, echo.Map{"error": model.ErrUnauthorized.Error()})
	}

	tenants, err := h.Tenants.List()
	if err != nil {
		return c.JSON(statusFor(err), echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"tenants": tenants})
}

// CreateTenant adds a tenant to the directory. Super-admin only. The new
// record lives in memory only and is lost on restart.
func (h *Handler) CreateTenant(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordTenantOperation("create")

	if !h.Auth.IsSuperAdmin() {
		return c.JSON(http.StatusForbidden, echo.Map{"error": model.ErrUnauthorized.Error()})
	}

	var req model.Tenant
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse tenant creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Subdomain == "" || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "subdomain and name are required"})
	}

	created, err := h.Tenants.Create(req)
	if err != nil {
		return c.JSON(statusFor(err), echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, echo.Map{"tenant": created})
}

// UpdateTenant patches a tenant by ID. Super-admin only.
func (h *Handler) UpdateTenant(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordTenantOperation("update")

	if !h.Auth.IsSuperAdmin() {
		return c.JSON(http.StatusForbidden, echo.Map{"error": model.ErrUnauthorized.Error()})
	}

	var patch model.TenantPatch
	if err := c.Bind(&patch); err != nil {
		log.Error("Failed to parse tenant update request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	updated, err := h.Tenants.Update(c.Param("id"), patch)
	if err != nil {
		return c.JSON(statusFor(err), echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{"tenant": updated})
}
