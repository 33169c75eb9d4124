package model

import "errors"

// Sentinel errors shared across services. All failures are returned as
// values; callers match with errors.Is and map them to HTTP status codes at
// the handler layer.
var (
	ErrNoTenantContext    = errors.New("no tenant context available")
	ErrTenantNotFound     = errors.New("tenant not found")
	ErrTenantExists       = errors.New("tenant subdomain already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("unauthorized: admin access required")
	ErrRecordingActive    = errors.New("a recording is already active for this room")
	ErrRecordingNotFound  = errors.New("recording not found")
	ErrRecordingNotReady  = errors.New("recording is not ready for download")
)
