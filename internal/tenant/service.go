// Package tenant resolves the tenant a request belongs to and manages the
// in-memory tenant directory.
package tenant

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/shoppingk/jitsi-session-keeper/internal/model"
)

// Service is the tenant resolver. It keeps the seeded tenant directory, a
// process-wide cache of the last resolved tenant, and the admin-gated
// directory management operations.
type Service struct {
	mu      sync.RWMutex
	tenants []model.Tenant
	current *model.Tenant

	lookupDelay time.Duration
	now         func() time.Time
	log         *zap.Logger
}

// NewService creates a tenant resolver seeded with the demo tenant
// directory. lookupDelay simulates the network round-trip of a real
// directory lookup; pass zero to disable it.
func NewService(lookupDelay time.Duration, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		tenants:     seedTenants(),
		lookupDelay: lookupDelay,
		now:         time.Now,
		log:         log,
	}
}

// DetectIdentifier derives a tenant identifier from a request host. For
// local-development hosts the explicit override parameter wins (and an empty
// override means no identifier). Production hosts with a subdomain yield the
// first label; hosts without one default to the reserved admin identifier.
func (s *Service) DetectIdentifier(host, override string) string {
	hostname := host
	if h, _, err := net.SplitHostPort(host); err == nil {
		hostname = h
	}

	if hostname == "localhost" || hostname == "127.0.0.1" {
		return override
	}

	parts := strings.Split(hostname, ".")
	if len(parts) > 2 {
		return parts[0]
	}

	return model.AdminSubdomain
}

// Resolve looks up an active tenant by exact subdomain match and caches it
// as the current tenant. A miss (absent or inactive) clears the cache and
// returns ErrTenantNotFound. The fixed delay simulates a directory lookup;
// the context can cut it short.
func (s *Service) Resolve(ctx context.Context, identifier string) (*model.Tenant, error) {
	if s.lookupDelay > 0 {
		timer := time.NewTimer(s.lookupDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tenants {
		if s.tenants[i].Subdomain == identifier && s.tenants[i].Active {
			t := s.tenants[i]
			s.current = &t
			s.log.Info("tenant resolved",
				zap.String("subdomain", t.Subdomain),
				zap.String("tenant_id", t.ID))
			return &t, nil
		}
	}

	s.current = nil
	s.log.Warn("tenant not found", zap.String("identifier", identifier))
	return nil, fmt.Errorf("%w: %s", model.ErrTenantNotFound, identifier)
}

// Current returns the last successfully resolved tenant, or nil if none has
// been resolved yet (or the last resolution missed).
func (s *Service) Current() *model.Tenant {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}
	t := *s.current
	return &t
}

// IsAdminTenant reports whether the current tenant is the reserved admin
// tenant.
func (s *Service) IsAdminTenant() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil && s.current.Subdomain == model.AdminSubdomain
}

// requireAdminTenant guards the directory management operations. Callers
// must hold at least a read lock.
func (s *Service) requireAdminTenant() error {
	if s.current == nil || s.current.Subdomain != model.AdminSubdomain {
		return model.ErrUnauthorized
	}
	return nil
}

// List returns the full tenant directory. Only available while the admin
// tenant is resolved.
func (s *Service) List() ([]model.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.requireAdminTenant(); err != nil {
		return nil, err
	}

	out := make([]model.Tenant, len(s.tenants))
	copy(out, s.tenants)
	return out, nil
}

// Create adds a tenant to the directory, assigning a fresh ID and creation
// timestamp. Only available while the admin tenant is resolved; duplicate
// subdomains among active tenants are rejected.
func (s *Service) Create(data model.Tenant) (*model.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAdminTenant(); err != nil {
		return nil, err
	}

	for i := range s.tenants {
		if s.tenants[i].Subdomain == data.Subdomain && s.tenants[i].Active {
			return nil, fmt.Errorf("%w: %s", model.ErrTenantExists, data.Subdomain)
		}
	}

	data.ID = fmt.Sprintf("tenant-%d", s.now().UnixMilli())
	data.CreatedAt = s.now()
	s.tenants = append(s.tenants, data)

	s.log.Info("tenant created",
		zap.String("tenant_id", data.ID),
		zap.String("subdomain", data.Subdomain))

	t := data
	return &t, nil
}

// Update applies a patch to a tenant by ID. Only available while the admin
// tenant is resolved.
func (s *Service) Update(id string, patch model.TenantPatch) (*model.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAdminTenant(); err != nil {
		return nil, err
	}

	for i := range s.tenants {
		if s.tenants[i].ID != id {
			continue
		}

		t := &s.tenants[i]
		if patch.Name != nil {
			t.Name = *patch.Name
		}
		if patch.Logo != nil {
			t.Logo = *patch.Logo
		}
		if patch.PrimaryColor != nil {
			t.PrimaryColor = *patch.PrimaryColor
		}
		if patch.SecondaryColor != nil {
			t.SecondaryColor = *patch.SecondaryColor
		}
		if patch.Active != nil {
			t.Active = *patch.Active
		}
		if patch.Settings != nil {
			t.Settings = *patch.Settings
		}

		s.log.Info("tenant updated", zap.String("tenant_id", id))
		updated := *t
		return &updated, nil
	}

	return nil, fmt.Errorf("%w: %s", model.ErrTenantNotFound, id)
}
