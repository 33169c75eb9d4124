// Package auth implements the per-tenant credential check, session token
// issuance, and the durable session snapshot.
package auth

import (
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/shoppingk/jitsi-session-keeper/internal/model"
	"github.com/shoppingk/jitsi-session-keeper/internal/tenant"
	"github.com/shoppingk/jitsi-session-keeper/pkg/jwtutil"
	"github.com/shoppingk/jitsi-session-keeper/pkg/sessionstore"
)

const storageKeyPrefix = "session-auth-"

// Subscriber observes auth state transitions. Callbacks run synchronously on
// the goroutine that caused the transition.
type Subscriber func(model.AuthState)

// Service is the auth store: one session state, loaded from the durable
// store at construction, mutated only by Login/Logout/Load.
type Service struct {
	mu          sync.RWMutex
	state       model.AuthState
	users       map[string][]model.SeededUser
	subscribers []Subscriber

	tenants *tenant.Service
	store   sessionstore.Store
	jwt     *jwtutil.JWTUtil
	log     *zap.Logger
}

// NewService creates an auth store seeded with the per-tenant user tables
// and loads any persisted session for the current tenant.
func NewService(tenants *tenant.Service, store sessionstore.Store, jwt *jwtutil.JWTUtil, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{
		users:   seedUsers(),
		tenants: tenants,
		store:   store,
		jwt:     jwt,
		log:     log,
	}
	s.Load()
	return s
}

// storageKey returns the tenant-scoped key the session snapshot lives under,
// falling back to a default key when no tenant is resolved. Scoping by
// tenant keeps concurrent tenants on the same device from sharing sessions.
func (s *Service) storageKey() string {
	if t := s.tenants.Current(); t != nil {
		return storageKeyPrefix + t.ID
	}
	return storageKeyPrefix + "default"
}

// Load reads the persisted session snapshot and adopts it if it parses and
// its token still validates. Anything else wipes the key and resets to
// logged out: parse failures are treated identically to expiry, fail closed.
func (s *Service) Load() {
	key := s.storageKey()

	data, ok := s.store.Get(key)
	if !ok {
		return
	}

	var stored model.AuthState
	if err := json.Unmarshal(data, &stored); err != nil {
		s.log.Warn("session snapshot unreadable, resetting", zap.String("key", key))
		s.reset(key)
		return
	}

	if stored.Token == "" || stored.User == nil {
		s.reset(key)
		return
	}
	if _, err := s.jwt.ValidateToken(stored.Token); err != nil {
		s.log.Info("persisted session expired", zap.String("key", key))
		s.reset(key)
		return
	}

	s.mu.Lock()
	s.state = stored
	s.mu.Unlock()
	s.notify()
}

// reset wipes the storage key and returns the state to logged out.
func (s *Service) reset(key string) {
	if err := s.store.Delete(key); err != nil {
		s.log.Warn("failed to clear session snapshot", zap.Error(err))
	}
	s.mu.Lock()
	s.state = model.AuthState{}
	s.mu.Unlock()
	s.notify()
}

// Login validates credentials against the resolved tenant's user table and,
// on success, mints a session token and persists the new state. The check is
// a linear, case-sensitive scan over seeded demo tables: advisory-only
// security, not a hardened credential store.
func (s *Service) Login(credentials model.Credentials) error {
	currentTenant := s.tenants.Current()
	if currentTenant == nil {
		return model.ErrNoTenantContext
	}

	var match *model.SeededUser
	for i, u := range s.users[currentTenant.Subdomain] {
		if u.Username == credentials.Username && u.Password == credentials.Password {
			match = &s.users[currentTenant.Subdomain][i]
			break
		}
	}
	if match == nil {
		s.log.Info("login rejected",
			zap.String("username", credentials.Username),
			zap.String("tenant", currentTenant.Subdomain))
		return model.ErrInvalidCredentials
	}

	// Strip the password before the user leaves the seed table.
	user := match.User

	token, err := s.jwt.GenerateToken(user.ID, user.Username, string(user.Role), currentTenant.ID)
	if err != nil {
		return fmt.Errorf("generate session token: %w", err)
	}

	state := model.AuthState{
		IsAuthenticated: true,
		User:            &user,
		Token:           token,
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session snapshot: %w", err)
	}
	if err := s.store.Set(s.storageKey(), data); err != nil {
		return fmt.Errorf("persist session snapshot: %w", err)
	}

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	s.notify()

	s.log.Info("user logged in",
		zap.String("username", user.Username),
		zap.String("user_id", user.ID),
		zap.String("tenant", currentTenant.Subdomain))
	return nil
}

// Logout clears the persisted session and resets the state synchronously.
func (s *Service) Logout() {
	s.reset(s.storageKey())
	s.log.Info("user logged out")
}

// State returns a copy of the current auth state.
func (s *Service) State() model.AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := s.state
	if state.User != nil {
		user := *state.User
		state.User = &user
	}
	return state
}

// CurrentUser returns the authenticated user, or nil.
func (s *Service) CurrentUser() *model.User {
	return s.State().User
}

// Token returns the current session token, or the empty string.
func (s *Service) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// IsAdmin reports whether the current user holds the admin role.
func (s *Service) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.User != nil && s.state.User.Role == model.RoleAdmin
}

// IsSuperAdmin reports whether the current user is an admin signed in under
// the reserved admin tenant. This is a second authorization axis layered on
// top of the role.
func (s *Service) IsSuperAdmin() bool {
	return s.IsAdmin() && s.tenants.IsAdminTenant()
}

// TenantUsers returns the resolved tenant's full user table, passwords
// included, for tenant admins. Non-admin callers get ErrUnauthorized.
func (s *Service) TenantUsers() ([]model.SeededUser, error) {
	currentTenant := s.tenants.Current()
	if currentTenant == nil {
		return nil, model.ErrNoTenantContext
	}
	if !s.IsAdmin() {
		return nil, model.ErrUnauthorized
	}

	table := s.users[currentTenant.Subdomain]
	out := make([]model.SeededUser, len(table))
	copy(out, table)
	return out, nil
}

// Subscribe registers a callback invoked synchronously on every state
// transition. This replaces polling: observers are told about changes
// instead of diffing snapshots.
func (s *Service) Subscribe(fn Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// notify delivers the current state to all subscribers. Called after the
// state mutex is released so callbacks may read back through the service.
func (s *Service) notify() {
	s.mu.RLock()
	state := s.state
	if state.User != nil {
		user := *state.User
		state.User = &user
	}
	subs := make([]Subscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(state)
	}
}
