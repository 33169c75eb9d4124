package model

// Role is the authorization role of a user within its tenant.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is the public shape of an authenticated user. The password of the
// seeded table entry is stripped before a User is exposed anywhere.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Avatar   string `json:"avatar,omitempty"`
}

// SeededUser pairs a user with its plaintext demo password. It only ever
// lives in the server-side seed table; handlers expose it to tenant admins
// via the user-management listing and nowhere else.
type SeededUser struct {
	User
	Password string `json:"password"`
}

// Credentials is a login request.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthState is the session snapshot persisted under the tenant-scoped
// storage key and reloaded at startup. Invariant: IsAuthenticated is true
// iff User is non-nil and Token denotes an unexpired session.
type AuthState struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	User            *User  `json:"user"`
	Token           string `json:"token"`
}
