package model

import "time"

// TenantSettings holds per-tenant feature switches. The values are advisory:
// the core services surface them to the embedding page but do not enforce
// them.
type TenantSettings struct {
	AllowRegistration bool `json:"allowRegistration"`
	MaxUsers          int  `json:"maxUsers"`
	RecordingsEnabled bool `json:"recordingsEnabled"`
	CustomBranding    bool `json:"customBranding"`
	AllowGuestAccess  bool `json:"allowGuestAccess"`
}

// Tenant represents an isolated configuration namespace (branding, user
// table, settings) selected by URL subdomain. Subdomains are unique among
// active tenants.
type Tenant struct {
	ID             string         `json:"id"`
	Subdomain      string         `json:"subdomain"`
	Name           string         `json:"name"`
	Logo           string         `json:"logo,omitempty"`
	PrimaryColor   string         `json:"primaryColor,omitempty"`
	SecondaryColor string         `json:"secondaryColor,omitempty"`
	Active         bool           `json:"isActive"`
	CreatedAt      time.Time      `json:"createdAt"`
	Settings       TenantSettings `json:"settings"`
}

// TenantPatch carries the mutable fields of a tenant update. Nil fields are
// left untouched.
type TenantPatch struct {
	Name           *string         `json:"name,omitempty"`
	Logo           *string         `json:"logo,omitempty"`
	PrimaryColor   *string         `json:"primaryColor,omitempty"`
	SecondaryColor *string         `json:"secondaryColor,omitempty"`
	Active         *bool           `json:"isActive,omitempty"`
	Settings       *TenantSettings `json:"settings,omitempty"`
}

// AdminSubdomain is the reserved identifier of the administrative tenant.
// Tenant management operations are only permitted while this tenant is the
// resolved one, and super-admin status requires it.
const AdminSubdomain = "admin"
